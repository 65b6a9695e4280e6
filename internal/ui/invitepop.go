package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"hubgrip/internal/api"
	"hubgrip/internal/domain"
	"hubgrip/internal/invite"
	"hubgrip/internal/resource"
	"hubgrip/internal/ui/views"
)

const inviteDebounce = 300 * time.Millisecond

const maxInviteCandidates = 5

// rowKind tags one selectable row in the invite pop-over
type rowKind int

const (
	rowCandidate rowKind = iota
	rowEmailInvite
	rowWhitelist
)

type inviteRow struct {
	kind rowKind
	user domain.User // rowCandidate
}

// InvitePop is the team invite pop-over: a debounced user search with
// ranked candidates, plus email-invite and domain-whitelist affordances
// derived from the query. It is hosted by the generic popover shell.
type InvitePop struct {
	input textinput.Model

	teamLoader resource.Loader[domain.Team]
	team       domain.Team
	teamLoaded bool

	// invitees already on the server's list, fetched with the team
	alreadyInvited []domain.User

	controller *invite.Controller
	users      *api.UserService
	checker    *invite.DomainChecker

	emailInvites bool // email-invites toggle

	version          uint64 // invalidates pending debounce timers
	nextRequestID    uint64
	appliedRequestID uint64

	candidates []domain.User
	cursor     int
	status     string
	statusErr  bool

	styles *views.Styles
	log    *zap.Logger
}

// NewInvitePop creates the invite pop-over for one team
func NewInvitePop(controller *invite.Controller, users *api.UserService, checker *invite.DomainChecker, styles *views.Styles, log *zap.Logger, emailInvites bool) *InvitePop {
	input := textinput.New()
	input.Placeholder = "Search for a user to invite"
	input.Prompt = "> "
	input.CharLimit = 200
	input.Focus()

	if log == nil {
		log = zap.NewNop()
	}
	return &InvitePop{
		input:        input,
		controller:   controller,
		users:        users,
		checker:      checker,
		emailInvites: emailInvites,
		styles:       styles,
		log:          log,
	}
}

// LoadTeam starts fetching the team backing this pop-over, along with
// its already-invited list. Re-entrant: a newer load supersedes any
// still in flight.
func (p *InvitePop) LoadTeam(teams *api.TeamService, teamID int) tea.Cmd {
	apply := p.teamLoader.Begin()
	version := p.teamLoader.Version()
	controller := p.controller

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchFetchTimeout)
		defer cancel()
		team, err := teams.Get(ctx, teamID)
		if err != nil {
			return teamLoadedMsg{version: version, apply: apply, err: err}
		}
		invited := controller.InvitedMembers(ctx)
		return teamLoadedMsg{version: version, team: team, invited: invited, apply: apply}
	}
}

// Update implements PopoverContent
func (p *InvitePop) Update(msg tea.Msg) (PopoverContent, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p, p.handleKey(msg)

	case teamLoadedMsg:
		if msg.err != nil {
			if msg.version == p.teamLoader.Version() {
				p.setStatus("Could not load team", true)
			}
			p.log.Warn("team load failed", zap.Error(msg.err))
			return p, nil
		}
		if msg.apply(msg.team) {
			p.team = msg.team
			p.alreadyInvited = msg.invited
			p.teamLoaded = true
		}

	case inviteDebounceMsg:
		return p, p.debounceElapsed(msg)

	case inviteResultsMsg:
		p.applyResults(msg)

	case domainCheckedMsg:
		// verdict already cached by the checker; re-render picks it up

	case inviteDoneMsg:
		if msg.err != nil {
			p.setStatus("Could not invite "+msg.invitee, true)
		} else {
			p.setStatus("Invited "+msg.invitee, false)
		}

	case whitelistDoneMsg:
		if msg.err != nil {
			p.setStatus("Could not whitelist "+msg.domain, true)
		} else {
			p.team = msg.team
			p.setStatus("Anyone @"+msg.domain+" can now join", false)
		}
	}
	return p, nil
}

func (p *InvitePop) handleKey(msg tea.KeyMsg) tea.Cmd {
	rows := p.rows()

	switch msg.String() {
	case "up":
		if len(rows) > 0 {
			p.cursor = (p.cursor - 1 + len(rows)) % len(rows)
		}
		return nil
	case "down":
		if len(rows) > 0 {
			p.cursor = (p.cursor + 1) % len(rows)
		}
		return nil
	case "enter":
		if p.cursor < len(rows) {
			return p.activate(rows[p.cursor])
		}
		return nil
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	after := p.input.Value()
	if after == before {
		return cmd
	}

	p.version++
	p.status = ""
	if after == "" {
		p.candidates = nil
		p.cursor = 0
		// retire any in-flight search so a late response cannot
		// repopulate candidates for an empty query
		p.appliedRequestID = p.nextRequestID
		return cmd
	}

	v := p.version
	return tea.Batch(cmd, tea.Tick(inviteDebounce, func(time.Time) tea.Msg {
		return inviteDebounceMsg{version: v}
	}))
}

func (p *InvitePop) debounceElapsed(msg inviteDebounceMsg) tea.Cmd {
	if msg.version != p.version {
		return nil
	}
	query := p.input.Value()
	if query == "" {
		return nil
	}

	p.nextRequestID++
	requestID := p.nextRequestID

	cmds := []tea.Cmd{p.fetchCandidates(requestID, query)}

	// kick off the freemail verdict alongside the user search so the
	// whitelist affordance is ready by the time results render
	if emailDomain := invite.EmailDomain(query); emailDomain != "" {
		if _, known := p.checker.Known(emailDomain); !known {
			cmds = append(cmds, p.checkDomain(emailDomain))
		}
	}
	return tea.Batch(cmds...)
}

func (p *InvitePop) fetchCandidates(requestID uint64, query string) tea.Cmd {
	users := p.users
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchFetchTimeout)
		defer cancel()

		found, err := users.Search(ctx, query)
		if err != nil {
			return inviteResultsMsg{requestID: requestID, err: err}
		}
		return inviteResultsMsg{requestID: requestID, users: invite.RankAll(found, query)}
	}
}

func (p *InvitePop) checkDomain(emailDomain string) tea.Cmd {
	checker := p.checker
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchFetchTimeout)
		defer cancel()
		valid := checker.Check(ctx, emailDomain)
		return domainCheckedMsg{domain: emailDomain, valid: valid}
	}
}

func (p *InvitePop) applyResults(msg inviteResultsMsg) {
	// Only the latest issued request may apply
	if msg.requestID != p.nextRequestID || msg.requestID <= p.appliedRequestID {
		return
	}
	p.appliedRequestID = msg.requestID

	if msg.err != nil {
		p.log.Warn("user search failed", zap.Error(msg.err))
		p.setStatus("Search failed", true)
		return
	}

	candidates := invite.ExcludeMembers(msg.users, p.memberIDs())
	if len(candidates) > maxInviteCandidates {
		candidates = candidates[:maxInviteCandidates]
	}
	p.candidates = candidates
	p.cursor = 0
}

// memberIDs is everyone already on the team, already invited, or
// invited this session
func (p *InvitePop) memberIDs() []int {
	var ids []int
	for _, u := range p.team.Users {
		ids = append(ids, u.ID)
	}
	for _, u := range p.controller.NewlyInvited(p.alreadyInvited) {
		ids = append(ids, u.ID)
	}
	return ids
}

// rows builds the selectable rows: ranked candidates, then the derived
// email-invite and whitelist affordances
func (p *InvitePop) rows() []inviteRow {
	var rows []inviteRow
	for _, u := range p.candidates {
		rows = append(rows, inviteRow{kind: rowCandidate, user: u})
	}

	query := p.input.Value()
	if p.emailInvites {
		if _, ok := invite.ParseEmail(query); ok {
			rows = append(rows, inviteRow{kind: rowEmailInvite})
		}
	}
	if emailDomain := invite.EmailDomain(query); emailDomain != "" && p.teamLoaded {
		if invite.CanOfferWhitelist(p.team, emailDomain, p.checker) {
			rows = append(rows, inviteRow{kind: rowWhitelist})
		}
	}
	return rows
}

func (p *InvitePop) activate(row inviteRow) tea.Cmd {
	controller := p.controller

	switch row.kind {
	case rowCandidate:
		user := row.user
		// remove optimistically; the controller rolls its own list back on failure
		p.removeCandidate(user.ID)
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), searchFetchTimeout)
			defer cancel()
			err := controller.InviteUser(ctx, user)
			return inviteDoneMsg{invitee: user.DisplayName(), err: err}
		}

	case rowEmailInvite:
		email, ok := invite.ParseEmail(p.input.Value())
		if !ok {
			return nil
		}
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), searchFetchTimeout)
			defer cancel()
			err := controller.InviteEmail(ctx, email)
			return inviteDoneMsg{invitee: email, err: err}
		}

	case rowWhitelist:
		emailDomain := invite.EmailDomain(p.input.Value())
		if emailDomain == "" {
			return nil
		}
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), searchFetchTimeout)
			defer cancel()
			team, err := controller.SetWhitelistedDomain(ctx, emailDomain)
			return whitelistDoneMsg{domain: emailDomain, team: team, err: err}
		}
	}
	return nil
}

func (p *InvitePop) removeCandidate(userID int) {
	for i, u := range p.candidates {
		if u.ID == userID {
			p.candidates = append(p.candidates[:i], p.candidates[i+1:]...)
			break
		}
	}
	if p.cursor >= len(p.rows()) && p.cursor > 0 {
		p.cursor--
	}
}

func (p *InvitePop) setStatus(s string, isErr bool) {
	p.status = s
	p.statusErr = isErr
}

// View implements PopoverContent
func (p *InvitePop) View(width int) string {
	title := "Invite teammates"
	if p.teamLoaded {
		title = "Invite to " + p.team.Name
	}
	out := p.styles.Title.Render(title) + "\n"
	if !p.teamLoaded && p.teamLoader.State().Status == resource.StatusLoading {
		out += p.styles.StatusLoading.Render("Loading team…") + "\n"
	}
	out += p.input.View() + "\n"

	rows := p.rows()
	for i, row := range rows {
		line := p.rowLabel(row)
		if i == p.cursor {
			line = p.styles.SelectionBg.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		out += "\n" + line
	}

	if p.status != "" {
		style := p.styles.StatusSuccess
		if p.statusErr {
			style = p.styles.StatusError
		}
		out += "\n\n" + style.Render(p.status)
	}

	if invited := p.controller.PendingEmails(); len(invited) > 0 {
		out += "\n\n" + p.styles.Dim.Render(fmt.Sprintf("%d email invite(s) pending", len(invited)))
	}
	return out
}

func (p *InvitePop) rowLabel(row inviteRow) string {
	switch row.kind {
	case rowCandidate:
		return row.user.DisplayName() + " " + p.styles.ResultSub.Render("@"+row.user.Login)
	case rowEmailInvite:
		email, _ := invite.ParseEmail(p.input.Value())
		return "Invite " + email + " via email"
	case rowWhitelist:
		return "Allow anyone @" + invite.EmailDomain(p.input.Value()) + " to join"
	}
	return ""
}
