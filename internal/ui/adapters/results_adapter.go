// Package adapters converts wire payloads into the shapes the UI's state
// machines consume.
package adapters

import (
	"fmt"

	"hubgrip/internal/api"
	"hubgrip/internal/domain"
	"hubgrip/internal/search"
)

// RawFromSite converts a site search response into the engine's raw
// result lists. Entities referenced by topResults keep the same key as
// their per-type entry so the engine can filter duplicate display.
func RawFromSite(resp api.SiteSearchResponse) search.RawResults {
	byKey := make(map[string]search.Result)

	var raw search.RawResults
	for _, kit := range resp.StarterKits {
		raw.StarterKits = append(raw.StarterKits, starterKitResult(kit))
	}
	for _, t := range resp.Teams {
		r := teamResult(t)
		byKey[r.Key] = r
		raw.Teams = append(raw.Teams, r)
	}
	for _, u := range resp.Users {
		r := userResult(u)
		byKey[r.Key] = r
		raw.Users = append(raw.Users, r)
	}
	for _, p := range resp.Projects {
		r := projectResult(p)
		byKey[r.Key] = r
		raw.Projects = append(raw.Projects, r)
	}
	for _, c := range resp.Collections {
		r := collectionResult(c)
		byKey[r.Key] = r
		raw.Collections = append(raw.Collections, r)
	}

	for _, ref := range resp.TopResults {
		if r, ok := byKey[ref.Type+":"+ref.ID]; ok {
			raw.TopResults = append(raw.TopResults, r)
		}
	}

	return raw
}

func starterKitResult(kit domain.StarterKit) search.Result {
	return search.Result{
		Type:     search.TypeStarterKit,
		Key:      fmt.Sprintf("starterKit:%d", kit.ID),
		Title:    kit.Name,
		Subtitle: kit.Description,
		URL:      kit.URL,
	}
}

func teamResult(t domain.Team) search.Result {
	return search.Result{
		Type:     search.TypeTeam,
		Key:      fmt.Sprintf("team:%d", t.ID),
		Title:    t.Name,
		Subtitle: "@" + t.URL,
		URL:      domain.TeamLink(t),
	}
}

func userResult(u domain.User) search.Result {
	return search.Result{
		Type:     search.TypeUser,
		Key:      fmt.Sprintf("user:%d", u.ID),
		Title:    u.DisplayName(),
		Subtitle: "@" + u.Login,
		URL:      domain.UserLink(u),
	}
}

func projectResult(p domain.Project) search.Result {
	return search.Result{
		Type:     search.TypeProject,
		Key:      "project:" + p.ID,
		Title:    p.Domain,
		Subtitle: p.Description,
		URL:      domain.ProjectLink(p),
	}
}

func collectionResult(c domain.Collection) search.Result {
	return search.Result{
		Type:     search.TypeCollection,
		Key:      fmt.Sprintf("collection:%d", c.ID),
		Title:    c.Name,
		Subtitle: c.Description,
		URL:      domain.CollectionLink(c),
	}
}
