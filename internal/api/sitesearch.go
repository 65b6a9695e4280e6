package api

import (
	"context"
	"net/url"

	"hubgrip/internal/domain"
)

// EntityRef identifies one entity inside the curated topResults list.
// The referenced entity also appears in its per-type list; display code
// uses the ref to avoid showing it twice.
type EntityRef struct {
	Type string `json:"type"` // team | user | project | collection
	ID   string `json:"id"`
}

// SiteSearchResponse is the unified search payload. Starter kits and
// topResults are curated server-side, not computed by the client.
type SiteSearchResponse struct {
	StarterKits []domain.StarterKit `json:"starterKit"`
	TopResults  []EntityRef         `json:"topResults"`
	Teams       []domain.Team       `json:"team"`
	Users       []domain.User       `json:"user"`
	Projects    []domain.Project    `json:"project"`
	Collections []domain.Collection `json:"collection"`
}

// SiteSearch runs the unified site search used by the autocomplete form
func (c *Client) SiteSearch(ctx context.Context, query string) (SiteSearchResponse, error) {
	var resp SiteSearchResponse
	if err := c.Get(ctx, "search?q="+url.QueryEscape(query), &resp); err != nil {
		return SiteSearchResponse{}, err
	}
	return resp, nil
}

// CurrentUser fetches the signed-in user from the boot endpoint
func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var boot struct {
		User domain.User `json:"user"`
	}
	if err := c.Get(ctx, "boot", &boot); err != nil {
		return domain.User{}, err
	}
	return boot.User, nil
}
