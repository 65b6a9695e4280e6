package invite

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"hubgrip/internal/api"
	"hubgrip/internal/domain"
	"hubgrip/internal/eventbus"
)

// PendingEmail is an invite addressed to someone without an account yet.
// The ID is generated locally; the server assigns its own on confirmation.
type PendingEmail struct {
	ID    string
	Email string
}

// Controller owns the invite surface for one team: the locally tracked
// invitees and the invite calls themselves. Invites are optimistic: the
// invitee appears immediately and is removed again if the call fails.
type Controller struct {
	teams *api.TeamService
	bus   eventbus.EventBus

	mu            sync.Mutex
	teamID        int
	newlyInvited  []domain.User
	pendingEmails []PendingEmail
}

// NewController creates an invite controller for a team
func NewController(teamID int, teams *api.TeamService, bus eventbus.EventBus) *Controller {
	return &Controller{
		teams:  teams,
		bus:    bus,
		teamID: teamID,
	}
}

// NewlyInvited returns the users invited during this session, deduplicated
// against the already-invited list by user id
func (c *Controller) NewlyInvited(alreadyInvited []domain.User) []domain.User {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[int]bool, len(alreadyInvited))
	merged := make([]domain.User, 0, len(alreadyInvited)+len(c.newlyInvited))
	for _, u := range alreadyInvited {
		if !seen[u.ID] {
			seen[u.ID] = true
			merged = append(merged, u)
		}
	}
	for _, u := range c.newlyInvited {
		if !seen[u.ID] {
			seen[u.ID] = true
			merged = append(merged, u)
		}
	}
	return merged
}

// PendingEmails returns the email invites not yet confirmed by the server
func (c *Controller) PendingEmails() []PendingEmail {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]PendingEmail, len(c.pendingEmails))
	copy(out, c.pendingEmails)
	return out
}

// InviteUser invites an existing user, tracking them optimistically and
// rolling back when the server rejects the invite
func (c *Controller) InviteUser(ctx context.Context, user domain.User) error {
	c.mu.Lock()
	c.newlyInvited = append(c.newlyInvited, user)
	c.mu.Unlock()

	if err := c.teams.InviteUser(ctx, c.teamID, user.ID); err != nil {
		c.mu.Lock()
		for i, u := range c.newlyInvited {
			if u.ID == user.ID {
				c.newlyInvited = append(c.newlyInvited[:i], c.newlyInvited[i+1:]...)
				break
			}
		}
		c.mu.Unlock()

		if c.bus != nil {
			c.bus.Publish(eventbus.InviteFailedEvent{
				TeamID:  c.teamID,
				Invitee: user.DisplayName(),
				Err:     err,
			})
		}
		return fmt.Errorf("invite user %q: %w", user.Login, err)
	}

	if c.bus != nil {
		c.bus.Publish(eventbus.InviteSentEvent{TeamID: c.teamID, Invitee: user.DisplayName()})
	}
	return nil
}

// InviteEmail invites by email address, same optimistic lifecycle
func (c *Controller) InviteEmail(ctx context.Context, email string) error {
	pending := PendingEmail{ID: uuid.NewString(), Email: email}
	c.mu.Lock()
	c.pendingEmails = append(c.pendingEmails, pending)
	c.mu.Unlock()

	if err := c.teams.InviteEmail(ctx, c.teamID, email); err != nil {
		c.mu.Lock()
		for i, p := range c.pendingEmails {
			if p.ID == pending.ID {
				c.pendingEmails = append(c.pendingEmails[:i], c.pendingEmails[i+1:]...)
				break
			}
		}
		c.mu.Unlock()

		if c.bus != nil {
			c.bus.Publish(eventbus.InviteFailedEvent{TeamID: c.teamID, Invitee: email, Err: err})
		}
		return fmt.Errorf("invite email: %w", err)
	}

	if c.bus != nil {
		c.bus.Publish(eventbus.InviteSentEvent{TeamID: c.teamID, Invitee: email})
	}
	return nil
}

// InvitedMembers fetches the users already invited to the team. A
// missing list reads as empty; other failures are reported on the bus
// and degrade to empty rather than blocking the invite surface.
func (c *Controller) InvitedMembers(ctx context.Context) []domain.User {
	users, err := c.teams.InvitedMembers(ctx, c.teamID)
	if err != nil {
		if !api.IsNotFound(err) && c.bus != nil {
			c.bus.Publish(eventbus.ErrorEvent{Message: "could not load invited members", Err: err})
		}
		return nil
	}
	return users
}

// SetWhitelistedDomain lets anyone at the domain join the team
func (c *Controller) SetWhitelistedDomain(ctx context.Context, emailDomain string) (domain.Team, error) {
	team, err := c.teams.SetWhitelistedDomain(ctx, c.teamID, emailDomain)
	if err != nil {
		return domain.Team{}, fmt.Errorf("whitelist domain: %w", err)
	}
	if c.bus != nil {
		c.bus.Publish(eventbus.DomainWhitelistedEvent{TeamID: c.teamID, Domain: emailDomain})
	}
	return team, nil
}

// CanOfferWhitelist reports whether the whitelist affordance should show:
// the query's domain is confirmed non-freemail and the team has no
// whitelisted domain yet
func CanOfferWhitelist(team domain.Team, emailDomain string, checker *DomainChecker) bool {
	if emailDomain == "" || team.WhitelistedDomain != "" {
		return false
	}
	valid, known := checker.Known(emailDomain)
	return known && valid
}
