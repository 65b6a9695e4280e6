package invite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Domains treated as freemail without asking the validation provider
var denylist = map[string]bool{
	"gmail.com": true,
	"yahoo.com": true,
}

// DomainChecker asks the freemail provider whether an email domain is a
// public consumer domain, caching verdicts per domain. Denylisted domains
// never hit the network; provider failures fall back to the denylist
// verdict (degraded, never fatal).
type DomainChecker struct {
	baseURL string
	httpc   *http.Client
	log     *zap.Logger

	mu    sync.Mutex
	cache map[string]bool // domain -> valid for whitelisting
}

// NewDomainChecker creates a checker against the given provider URL
func NewDomainChecker(baseURL string, log *zap.Logger) *DomainChecker {
	if log == nil {
		log = zap.NewNop()
	}
	return &DomainChecker{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
		log:     log,
		cache:   make(map[string]bool),
	}
}

// Known returns the cached verdict for a domain, if any. Denylisted
// domains are always known invalid.
func (c *DomainChecker) Known(emailDomain string) (valid, known bool) {
	if denylist[emailDomain] {
		return false, true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	valid, known = c.cache[emailDomain]
	return valid, known
}

// Check resolves whether the domain is valid for team whitelisting.
// Verdicts are cached; only the first call per domain can block on I/O.
func (c *DomainChecker) Check(ctx context.Context, emailDomain string) bool {
	if denylist[emailDomain] {
		return false
	}

	c.mu.Lock()
	if valid, ok := c.cache[emailDomain]; ok {
		c.mu.Unlock()
		return valid
	}
	c.mu.Unlock()

	valid := true // the denylist verdict, used when the provider is unreachable
	free, err := c.lookup(ctx, emailDomain)
	if err != nil {
		c.log.Warn("freemail lookup failed", zap.String("domain", emailDomain), zap.Error(err))
	} else {
		valid = !free
	}

	c.mu.Lock()
	c.cache[emailDomain] = valid
	c.mu.Unlock()
	return valid
}

func (c *DomainChecker) lookup(ctx context.Context, emailDomain string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+emailDomain, nil)
	if err != nil {
		return false, fmt.Errorf("build freemail request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return false, fmt.Errorf("freemail request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("freemail request: status %d", resp.StatusCode)
	}

	var out struct {
		Free bool `json:"free"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("decode freemail response: %w", err)
	}
	return out.Free, nil
}
