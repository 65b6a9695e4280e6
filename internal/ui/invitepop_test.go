package ui

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hubgrip/internal/api"
	"hubgrip/internal/domain"
	"hubgrip/internal/eventbus"
	"hubgrip/internal/invite"
	"hubgrip/internal/ui/views"
)

func newTestInvitePop(t *testing.T, emailInvites bool) (*InvitePop, *invite.DomainChecker) {
	t.Helper()

	freemail := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"free": false}`)
	}))
	t.Cleanup(freemail.Close)

	bus := eventbus.New(nil)
	t.Cleanup(bus.Close)

	client := api.ForToken("http://invite-pop-test.invalid", "tok")
	checker := invite.NewDomainChecker(freemail.URL, nil)
	controller := invite.NewController(42, client.Teams(), bus)

	pop := NewInvitePop(controller, client.Users(), checker, views.NewStyles(), nil, emailInvites)
	return pop, checker
}

func typeIntoPop(pop *InvitePop, s string) {
	for _, r := range s {
		pop.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestStaleCandidateResultsAreDropped(t *testing.T) {
	t.Parallel()
	pop, _ := newTestInvitePop(t, false)

	typeIntoPop(pop, "al")
	pop.Update(inviteDebounceMsg{version: pop.version})
	firstID := pop.nextRequestID

	typeIntoPop(pop, "i")
	pop.Update(inviteDebounceMsg{version: pop.version})
	secondID := pop.nextRequestID
	require.Greater(t, secondID, firstID)

	pop.Update(inviteResultsMsg{requestID: secondID, users: []domain.User{{ID: 1, Login: "ali"}}})
	require.Len(t, pop.candidates, 1)

	pop.Update(inviteResultsMsg{requestID: firstID, users: []domain.User{{ID: 2}, {ID: 3}}})
	assert.Len(t, pop.candidates, 1, "the slower earlier search must not replace newer results")
	assert.Equal(t, "ali", pop.candidates[0].Login)
}

func TestSupersededDebounceTimerDoesNotSearch(t *testing.T) {
	t.Parallel()
	pop, _ := newTestInvitePop(t, false)

	typeIntoPop(pop, "a")
	stale := pop.version
	typeIntoPop(pop, "b")

	_, cmd := pop.Update(inviteDebounceMsg{version: stale})
	assert.Nil(t, cmd)
	assert.Zero(t, pop.nextRequestID)
}

func TestResponseAfterClearingQueryIsDropped(t *testing.T) {
	t.Parallel()
	pop, _ := newTestInvitePop(t, false)

	typeIntoPop(pop, "ab")
	pop.Update(inviteDebounceMsg{version: pop.version})
	id := pop.nextRequestID
	require.NotZero(t, id)

	pop.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	pop.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	require.Empty(t, pop.input.Value())

	pop.Update(inviteResultsMsg{requestID: id, users: []domain.User{{ID: 1, Login: "ab"}}})
	assert.Empty(t, pop.candidates, "a late response must not render against an empty query")
	assert.Empty(t, pop.rows())
}

func TestCandidatesExcludeExistingMembers(t *testing.T) {
	t.Parallel()
	pop, _ := newTestInvitePop(t, false)
	pop.team = domain.Team{ID: 42, Users: []domain.User{{ID: 1, Login: "member"}}}
	pop.teamLoaded = true

	typeIntoPop(pop, "m")
	pop.Update(inviteDebounceMsg{version: pop.version})
	pop.Update(inviteResultsMsg{
		requestID: pop.nextRequestID,
		users:     []domain.User{{ID: 1, Login: "member"}, {ID: 2, Login: "newbie"}},
	})

	require.Len(t, pop.candidates, 1, "existing members are not invite candidates")
	assert.Equal(t, "newbie", pop.candidates[0].Login)
}

func TestEmailAffordanceIsGatedByToggle(t *testing.T) {
	t.Parallel()

	pop, _ := newTestInvitePop(t, true)
	typeIntoPop(pop, "someone@corp.example.com")
	rows := pop.rows()
	require.NotEmpty(t, rows)
	assert.Equal(t, rowEmailInvite, rows[0].kind, "a full address offers an email invite")

	popOff, _ := newTestInvitePop(t, false)
	typeIntoPop(popOff, "someone@corp.example.com")
	for _, row := range popOff.rows() {
		assert.NotEqual(t, rowEmailInvite, row.kind, "toggle off means no email invites")
	}
}

func TestWhitelistAffordanceNeedsKnownGoodDomain(t *testing.T) {
	t.Parallel()
	pop, checker := newTestInvitePop(t, false)
	pop.team = domain.Team{ID: 42}
	pop.teamLoaded = true

	typeIntoPop(pop, "@corp.example.com")
	assert.Empty(t, pop.rows(), "no affordance before the freemail verdict is in")

	// resolve the verdict the way the debounce command would
	checker.Check(context.Background(), "corp.example.com")
	rows := pop.rows()
	require.Len(t, rows, 1)
	assert.Equal(t, rowWhitelist, rows[0].kind)
}

func TestNoWhitelistAffordanceWhenTeamAlreadyHasOne(t *testing.T) {
	t.Parallel()
	pop, checker := newTestInvitePop(t, false)
	pop.team = domain.Team{ID: 42, WhitelistedDomain: "old.example.com"}
	pop.teamLoaded = true

	checker.Check(context.Background(), "corp.example.com")
	typeIntoPop(pop, "@corp.example.com")
	assert.Empty(t, pop.rows())
}

func TestWhitelistSuccessUpdatesTeam(t *testing.T) {
	t.Parallel()
	pop, _ := newTestInvitePop(t, false)
	pop.team = domain.Team{ID: 42}
	pop.teamLoaded = true

	pop.Update(whitelistDoneMsg{
		domain: "corp.example.com",
		team:   domain.Team{ID: 42, WhitelistedDomain: "corp.example.com"},
	})
	assert.Equal(t, "corp.example.com", pop.team.WhitelistedDomain)
	assert.Contains(t, pop.status, "corp.example.com")
}

func TestStaleTeamLoadDoesNotApply(t *testing.T) {
	t.Parallel()
	pop, _ := newTestInvitePop(t, false)

	stale := pop.teamLoader.Begin()
	pop.teamLoader.Begin() // a newer load supersedes it

	pop.Update(teamLoadedMsg{
		version: 1,
		team:    domain.Team{ID: 42, Name: "Old Load"},
		apply:   stale,
	})
	assert.False(t, pop.teamLoaded, "a superseded team load must not apply")
}
