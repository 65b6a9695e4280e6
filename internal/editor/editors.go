package editor

import (
	"context"
	"fmt"

	"hubgrip/internal/api"
	"hubgrip/internal/domain"
)

// CollectionEditor is the state container for one collection page
type CollectionEditor struct {
	container *Container[domain.Collection]
	svc       *api.CollectionService
}

// NewCollectionEditor seeds an editor from the initial server payload
func NewCollectionEditor(initial domain.Collection, svc *api.CollectionService) *CollectionEditor {
	return &CollectionEditor{
		container: NewContainer(initial),
		svc:       svc,
	}
}

// Collection returns the current local copy
func (e *CollectionEditor) Collection() domain.Collection {
	return e.container.Get()
}

// Restore applies a caller-side compensation after a failed mutation
func (e *CollectionEditor) Restore(mutate func(*domain.Collection)) {
	e.container.Apply(mutate)
}

// UserIsAuthor reports whether the current user owns this collection.
// Computed fresh on every call, never cached.
func (e *CollectionEditor) UserIsAuthor(currentUser *domain.User) bool {
	return domain.CurrentUserIsAuthor(currentUser, e.container.Get())
}

func (e *CollectionEditor) updateFields(ctx context.Context, apply func(*domain.Collection), changes map[string]any) error {
	id := e.container.Get().ID
	return e.container.Mutate(ctx, apply, func(ctx context.Context) (domain.Collection, error) {
		return e.svc.Update(ctx, id, changes)
	})
}

// UpdateName renames the collection
func (e *CollectionEditor) UpdateName(ctx context.Context, name string) error {
	return e.updateFields(ctx, func(c *domain.Collection) { c.Name = name },
		map[string]any{"name": name})
}

// UpdateDescription changes the collection description
func (e *CollectionEditor) UpdateDescription(ctx context.Context, description string) error {
	return e.updateFields(ctx, func(c *domain.Collection) { c.Description = description },
		map[string]any{"description": description})
}

// UpdateColor changes the collection's cover color
func (e *CollectionEditor) UpdateColor(ctx context.Context, color string) error {
	return e.updateFields(ctx, func(c *domain.Collection) {
		c.Color = color
		c.CoverColor = color
	}, map[string]any{"coverColor": color})
}

// AddProject prepends a project to the collection
func (e *CollectionEditor) AddProject(ctx context.Context, project domain.Project) error {
	id := e.container.Get().ID
	e.container.Apply(func(c *domain.Collection) {
		c.Projects = append([]domain.Project{project}, c.Projects...)
	})
	if err := e.svc.AddProject(ctx, id, project.ID); err != nil {
		return fmt.Errorf("add project: %w", err)
	}
	return nil
}

// RemoveProject removes a project from the collection
func (e *CollectionEditor) RemoveProject(ctx context.Context, projectID string) error {
	id := e.container.Get().ID
	e.container.Apply(func(c *domain.Collection) {
		kept := c.Projects[:0]
		for _, p := range c.Projects {
			if p.ID != projectID {
				kept = append(kept, p)
			}
		}
		c.Projects = kept
	})
	if err := e.svc.RemoveProject(ctx, id, projectID); err != nil {
		return fmt.Errorf("remove project: %w", err)
	}
	return nil
}

// TeamEditor is the state container for one team page
type TeamEditor struct {
	container *Container[domain.Team]
	svc       *api.TeamService
}

// NewTeamEditor seeds an editor from the initial server payload
func NewTeamEditor(initial domain.Team, svc *api.TeamService) *TeamEditor {
	return &TeamEditor{
		container: NewContainer(initial),
		svc:       svc,
	}
}

// Team returns the current local copy
func (e *TeamEditor) Team() domain.Team {
	return e.container.Get()
}

// Restore applies a caller-side compensation after a failed mutation
func (e *TeamEditor) Restore(mutate func(*domain.Team)) {
	e.container.Apply(mutate)
}

// CurrentUserIsAdmin reports whether the current user administers the team
func (e *TeamEditor) CurrentUserIsAdmin(currentUser *domain.User) bool {
	return domain.CurrentUserIsTeamAdmin(currentUser, e.container.Get())
}

// CurrentUserIsMember reports whether the current user is on the team
func (e *TeamEditor) CurrentUserIsMember(currentUser *domain.User) bool {
	return domain.CurrentUserIsOnTeam(currentUser, e.container.Get())
}

func (e *TeamEditor) updateFields(ctx context.Context, apply func(*domain.Team), changes map[string]any) error {
	id := e.container.Get().ID
	return e.container.Mutate(ctx, apply, func(ctx context.Context) (domain.Team, error) {
		return e.svc.Update(ctx, id, changes)
	})
}

// UpdateName renames the team
func (e *TeamEditor) UpdateName(ctx context.Context, name string) error {
	return e.updateFields(ctx, func(t *domain.Team) { t.Name = name },
		map[string]any{"name": name})
}

// UpdateDescription changes the team description
func (e *TeamEditor) UpdateDescription(ctx context.Context, description string) error {
	return e.updateFields(ctx, func(t *domain.Team) { t.Description = description },
		map[string]any{"description": description})
}

// MergeTeam replaces local state with a server copy (used when another
// surface, like the invite pop-over, receives a fresh team)
func (e *TeamEditor) MergeTeam(team domain.Team) {
	e.container.Merge(team)
}

// UserEditor is the state container for one user profile page
type UserEditor struct {
	container *Container[domain.User]
	c         *api.Client
}

// NewUserEditor seeds an editor from the initial server payload
func NewUserEditor(initial domain.User, c *api.Client) *UserEditor {
	return &UserEditor{
		container: NewContainer(initial),
		c:         c,
	}
}

// User returns the current local copy
func (e *UserEditor) User() domain.User {
	return e.container.Get()
}

// Restore applies a caller-side compensation after a failed mutation
func (e *UserEditor) Restore(mutate func(*domain.User)) {
	e.container.Apply(mutate)
}

// IsCurrentUser reports whether this profile belongs to the viewer
func (e *UserEditor) IsCurrentUser(currentUser *domain.User) bool {
	return currentUser != nil && currentUser.ID == e.container.Get().ID
}

func (e *UserEditor) updateFields(ctx context.Context, apply func(*domain.User), changes map[string]any) error {
	id := e.container.Get().ID
	return e.container.Mutate(ctx, apply, func(ctx context.Context) (domain.User, error) {
		var user domain.User
		if err := e.c.Patch(ctx, fmt.Sprintf("users/%d", id), changes, &user); err != nil {
			return domain.User{}, err
		}
		return user, nil
	})
}

// UpdateName changes the profile display name
func (e *UserEditor) UpdateName(ctx context.Context, name string) error {
	return e.updateFields(ctx, func(u *domain.User) { u.Name = name },
		map[string]any{"name": name})
}

// ProjectEditor is the state container for one project page
type ProjectEditor struct {
	container *Container[domain.Project]
	c         *api.Client
}

// NewProjectEditor seeds an editor from the initial server payload
func NewProjectEditor(initial domain.Project, c *api.Client) *ProjectEditor {
	return &ProjectEditor{
		container: NewContainer(initial),
		c:         c,
	}
}

// Project returns the current local copy
func (e *ProjectEditor) Project() domain.Project {
	return e.container.Get()
}

// Restore applies a caller-side compensation after a failed mutation
func (e *ProjectEditor) Restore(mutate func(*domain.Project)) {
	e.container.Apply(mutate)
}

func (e *ProjectEditor) updateFields(ctx context.Context, apply func(*domain.Project), changes map[string]any) error {
	projectDomain := e.container.Get().Domain
	return e.container.Mutate(ctx, apply, func(ctx context.Context) (domain.Project, error) {
		var project domain.Project
		if err := e.c.Patch(ctx, "projects/"+projectDomain, changes, &project); err != nil {
			return domain.Project{}, err
		}
		return project, nil
	})
}

// UpdateDescription changes the project description
func (e *ProjectEditor) UpdateDescription(ctx context.Context, description string) error {
	return e.updateFields(ctx, func(p *domain.Project) { p.Description = description },
		map[string]any{"description": description})
}

// SetPrivate toggles project visibility
func (e *ProjectEditor) SetPrivate(ctx context.Context, private bool) error {
	return e.updateFields(ctx, func(p *domain.Project) { p.Private = private },
		map[string]any{"private": private})
}
