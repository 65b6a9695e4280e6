package api

import (
	"context"
	"fmt"
	"net/url"

	"hubgrip/internal/domain"
)

// UserService covers user endpoints
type UserService struct {
	c *Client
}

// Users returns the user service
func (c *Client) Users() *UserService { return &UserService{c: c} }

// Get fetches one user by id
func (s *UserService) Get(ctx context.Context, id int) (domain.User, error) {
	var user domain.User
	if err := s.c.Get(ctx, fmt.Sprintf("users/%d", id), &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Search runs the server-side user search. Filtering is the server's job;
// callers only rank and display what comes back.
func (s *UserService) Search(ctx context.Context, query string) ([]domain.User, error) {
	var users []domain.User
	path := "users/search?q=" + url.QueryEscape(query)
	if err := s.c.Get(ctx, path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// TeamService covers team endpoints
type TeamService struct {
	c *Client
}

// Teams returns the team service
func (c *Client) Teams() *TeamService { return &TeamService{c: c} }

// Get fetches one team by id
func (s *TeamService) Get(ctx context.Context, id int) (domain.Team, error) {
	var team domain.Team
	if err := s.c.Get(ctx, fmt.Sprintf("teams/%d", id), &team); err != nil {
		return domain.Team{}, err
	}
	return team, nil
}

// Update patches team fields and returns the server's authoritative copy
func (s *TeamService) Update(ctx context.Context, id int, changes map[string]any) (domain.Team, error) {
	var team domain.Team
	if err := s.c.Patch(ctx, fmt.Sprintf("teams/%d", id), changes, &team); err != nil {
		return domain.Team{}, err
	}
	return team, nil
}

// InviteUser invites an existing user to the team
func (s *TeamService) InviteUser(ctx context.Context, teamID, userID int) error {
	return s.c.Post(ctx, fmt.Sprintf("teams/%d/invitations/%d", teamID, userID), nil, nil)
}

// InviteEmail invites someone to the team by email address
func (s *TeamService) InviteEmail(ctx context.Context, teamID int, email string) error {
	body := map[string]string{"email": email}
	return s.c.Post(ctx, fmt.Sprintf("teams/%d/invitations", teamID), body, nil)
}

// SetWhitelistedDomain lets anyone with a matching email domain join the team
func (s *TeamService) SetWhitelistedDomain(ctx context.Context, teamID int, emailDomain string) (domain.Team, error) {
	return s.Update(ctx, teamID, map[string]any{"whitelistedDomain": emailDomain})
}

// InvitedMembers fetches the team's pending invitees, following pagination
func (s *TeamService) InvitedMembers(ctx context.Context, teamID int) ([]domain.User, error) {
	return FollowPages[domain.User](ctx, s.c, fmt.Sprintf("teams/%d/invited", teamID))
}

// ProjectService covers project endpoints
type ProjectService struct {
	c *Client
}

// Projects returns the project service
func (c *Client) Projects() *ProjectService { return &ProjectService{c: c} }

// Get fetches one project by domain name
func (s *ProjectService) Get(ctx context.Context, projectDomain string) (domain.Project, error) {
	var project domain.Project
	if err := s.c.Get(ctx, "projects/"+url.PathEscape(projectDomain), &project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

// Readme fetches a project's readme text for the embedded preview
func (s *ProjectService) Readme(ctx context.Context, projectDomain string) (string, error) {
	var out struct {
		Content string `json:"content"`
	}
	if err := s.c.Get(ctx, "projects/"+url.PathEscape(projectDomain)+"/readme", &out); err != nil {
		return "", err
	}
	return out.Content, nil
}

// CollectionService covers collection endpoints
type CollectionService struct {
	c *Client
}

// Collections returns the collection service
func (c *Client) Collections() *CollectionService { return &CollectionService{c: c} }

// Get fetches one collection by id
func (s *CollectionService) Get(ctx context.Context, id int) (domain.Collection, error) {
	var collection domain.Collection
	if err := s.c.Get(ctx, fmt.Sprintf("collections/%d", id), &collection); err != nil {
		return domain.Collection{}, err
	}
	return collection, nil
}

// Update patches collection fields and returns the server's authoritative copy
func (s *CollectionService) Update(ctx context.Context, id int, changes map[string]any) (domain.Collection, error) {
	var collection domain.Collection
	if err := s.c.Patch(ctx, fmt.Sprintf("collections/%d", id), changes, &collection); err != nil {
		return domain.Collection{}, err
	}
	return collection, nil
}

// AddProject adds a project to the collection
func (s *CollectionService) AddProject(ctx context.Context, id int, projectID string) error {
	return s.c.Post(ctx, fmt.Sprintf("collections/%d/projects/%s", id, projectID), nil, nil)
}

// RemoveProject removes a project from the collection
func (s *CollectionService) RemoveProject(ctx context.Context, id int, projectID string) error {
	return s.c.Patch(ctx, fmt.Sprintf("collections/%d/remove/%s", id, projectID), nil, nil)
}
