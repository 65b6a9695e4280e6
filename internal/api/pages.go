package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Page is one page of a paginated list endpoint
type Page[T any] struct {
	Items          []T    `json:"items"`
	HasMore        bool   `json:"hasMore"`
	LastOrderValue string `json:"lastOrderValue"`
}

// FollowPages fetches every page of a paginated list endpoint and
// concatenates the items into one ordered slice
func FollowPages[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var all []T
	cursor := ""

	for {
		pagePath := path
		if cursor != "" {
			sep := "?"
			if strings.Contains(path, "?") {
				sep = "&"
			}
			pagePath = path + sep + "lastOrderValue=" + url.QueryEscape(cursor)
		}

		var page Page[T]
		if err := c.Get(ctx, pagePath, &page); err != nil {
			return nil, fmt.Errorf("follow pages: %w", err)
		}

		all = append(all, page.Items...)
		if !page.HasMore {
			return all, nil
		}
		cursor = page.LastOrderValue
	}
}
