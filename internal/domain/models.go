package domain

import "strings"

// User represents a community member
type User struct {
	ID          int      `json:"id"`
	Login       string   `json:"login"`
	Name        string   `json:"name"`
	AvatarURL   string   `json:"avatarUrl"`
	Color       string   `json:"color"`
	ThanksCount int      `json:"thanksCount"`
	Emails      []string `json:"emails,omitempty"`
	TeamIDs     []int    `json:"teamIds,omitempty"`
}

// DisplayName returns the user's name, falling back to their login
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}

// Team represents a team of users
type Team struct {
	ID                int    `json:"id"`
	URL               string `json:"url"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	WhitelistedDomain string `json:"whitelistedDomain"`
	AdminIDs          []int  `json:"adminIds"`
	Users             []User `json:"users"`
}

// Project represents a hosted project
type Project struct {
	ID          string `json:"id"`
	Domain      string `json:"domain"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
	ReadmeURL   string `json:"readmeUrl,omitempty"`
}

// Collection represents a curated list of projects
type Collection struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	FullURL     string    `json:"fullUrl"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CoverColor  string    `json:"coverColor"`
	UserID      int       `json:"userId"`
	TeamID      int       `json:"teamId"`
	Projects    []Project `json:"projects"`
}

// StarterKit is a curated entry point surfaced at the top of search results
type StarterKit struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Canonical relative links for each entity type.

func UserLink(u User) string             { return "/@" + u.Login }
func TeamLink(t Team) string             { return "/@" + t.URL }
func ProjectLink(p Project) string       { return "/~" + p.Domain }
func CollectionLink(c Collection) string { return "/@" + c.FullURL }

// Admins returns the team members that are admins
func (t Team) Admins() []User {
	var admins []User
	for _, u := range t.Users {
		for _, id := range t.AdminIDs {
			if u.ID == id {
				admins = append(admins, u)
				break
			}
		}
	}
	return admins
}

// CurrentUserIsOnTeam reports whether the current user is a member of the team
func CurrentUserIsOnTeam(currentUser *User, team Team) bool {
	if currentUser == nil {
		return false
	}
	for _, u := range team.Users {
		if u.ID == currentUser.ID {
			return true
		}
	}
	return false
}

// CurrentUserIsTeamAdmin reports whether the current user administers the team
func CurrentUserIsTeamAdmin(currentUser *User, team Team) bool {
	if currentUser == nil {
		return false
	}
	for _, id := range team.AdminIDs {
		if id == currentUser.ID {
			return true
		}
	}
	return false
}

// UserCanJoinTeam reports whether the current user could join through the
// team's whitelisted email domain
func UserCanJoinTeam(currentUser *User, team Team) bool {
	if currentUser == nil || team.WhitelistedDomain == "" {
		return false
	}
	if CurrentUserIsOnTeam(currentUser, team) {
		return false
	}
	suffix := "@" + strings.ToLower(team.WhitelistedDomain)
	for _, email := range currentUser.Emails {
		if strings.HasSuffix(strings.ToLower(email), suffix) {
			return true
		}
	}
	return false
}

// CurrentUserIsAuthor reports whether the current user owns the collection
func CurrentUserIsAuthor(currentUser *User, collection Collection) bool {
	if currentUser == nil {
		return false
	}
	return collection.UserID == currentUser.ID
}
