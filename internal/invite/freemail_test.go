package invite

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hubgrip/internal/domain"
)

func TestDenylistShortCircuits(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `{"free": false}`)
	}))
	defer srv.Close()

	checker := NewDomainChecker(srv.URL, nil)
	assert.False(t, checker.Check(context.Background(), "gmail.com"))
	assert.False(t, checker.Check(context.Background(), "yahoo.com"))
	assert.Equal(t, int32(0), hits.Load(), "denylisted domains never hit the provider")

	valid, known := checker.Known("gmail.com")
	assert.True(t, known, "denylist verdicts are always known")
	assert.False(t, valid)
}

func TestProviderVerdictIsCached(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		require.Equal(t, "/corp.example.com", r.URL.Path)
		fmt.Fprint(w, `{"free": false}`)
	}))
	defer srv.Close()

	checker := NewDomainChecker(srv.URL, nil)

	_, known := checker.Known("corp.example.com")
	assert.False(t, known, "no verdict before the first check")

	assert.True(t, checker.Check(context.Background(), "corp.example.com"))
	assert.True(t, checker.Check(context.Background(), "corp.example.com"))
	assert.Equal(t, int32(1), hits.Load(), "only the first check hits the provider")

	valid, known := checker.Known("corp.example.com")
	assert.True(t, known)
	assert.True(t, valid)
}

func TestFreemailDomainIsInvalid(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"free": true}`)
	}))
	defer srv.Close()

	checker := NewDomainChecker(srv.URL, nil)
	assert.False(t, checker.Check(context.Background(), "hotmail.example"),
		"a provider-confirmed freemail domain is not whitelistable")
}

func TestProviderFailureFallsBackToDenylist(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	checker := NewDomainChecker(srv.URL, nil)
	assert.True(t, checker.Check(context.Background(), "corp.example.com"),
		"an unreachable provider degrades to the denylist verdict")
	assert.False(t, checker.Check(context.Background(), "gmail.com"),
		"the denylist still applies when the provider is down")
}

func TestCanOfferWhitelist(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"free": false}`)
	}))
	defer srv.Close()

	checker := NewDomainChecker(srv.URL, nil)
	team := domain.Team{ID: 1}

	assert.False(t, CanOfferWhitelist(team, "corp.example.com", checker),
		"no offer before the verdict is known")

	checker.Check(context.Background(), "corp.example.com")
	assert.True(t, CanOfferWhitelist(team, "corp.example.com", checker))

	assert.False(t, CanOfferWhitelist(team, "gmail.com", checker),
		"freemail domains get no offer")
	assert.False(t, CanOfferWhitelist(team, "", checker))

	team.WhitelistedDomain = "other.example.com"
	assert.False(t, CanOfferWhitelist(team, "corp.example.com", checker),
		"a team with a whitelisted domain gets no second offer")
}
