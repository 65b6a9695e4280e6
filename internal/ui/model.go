package ui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"hubgrip/internal/api"
	"hubgrip/internal/domain"
	"hubgrip/internal/eventbus"
	"hubgrip/internal/invite"
	"hubgrip/internal/prefs"
	"hubgrip/internal/resource"
	"hubgrip/internal/search"
	"hubgrip/internal/ui/views"
)

// Model is the root application model: the search form front and center,
// with pop-overs layered on top for invites, collection editing and dev
// toggles. Pop-overs capture all input while open.
type Model struct {
	client  *api.Client
	bus     eventbus.EventBus
	store   *prefs.Store
	checker *invite.DomainChecker
	styles  *views.Styles
	log     *zap.Logger

	form    *SearchForm
	popover *Popover

	currentUser *domain.User
	showCounts  bool

	// a stale collection load must never open a pop-over the user
	// didn't just ask for; the loader drops superseded results
	collectionLoader resource.Loader[domain.Collection]

	width     int
	height    int
	status    string
	statusErr bool
	lastURL   string

	quitting bool
}

// New creates the root model
func New(client *api.Client, bus eventbus.EventBus, store *prefs.Store, checker *invite.DomainChecker, log *zap.Logger, showCounts bool) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	styles := views.NewStyles()

	form := NewSearchForm(client, bus, styles, log, store.ToggleEnabled(prefs.ToggleEnhancedSearch))
	form.SetQuery(store.GetString(prefs.KeyLastQuery, ""))

	return &Model{
		client:     client,
		bus:        bus,
		store:      store,
		checker:    checker,
		styles:     styles,
		log:        log,
		form:       form,
		popover:    NewPopover(log),
		showCounts: showCounts,
		width:      80,
		height:     24,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	client := m.client
	return tea.Batch(textinput.Blink, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchFetchTimeout)
		defer cancel()
		user, err := client.CurrentUser(ctx)
		return currentUserMsg{user: user, err: err}
	})
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.form.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case currentUserMsg:
		if msg.err != nil {
			m.log.Warn("could not load current user", zap.Error(msg.err))
			return m, nil
		}
		user := msg.user
		m.currentUser = &user
		return m, nil

	case redirectMsg:
		m.lastURL = msg.url
		m.setStatus("→ "+msg.url, false)
		if q := m.form.Query(); q != "" {
			if err := m.store.Set(prefs.KeyLastQuery, q); err != nil {
				m.log.Warn("could not persist last query", zap.Error(err))
			}
		}
		return m, nil

	case searchDebounceMsg, searchResultsMsg:
		return m, m.form.Update(msg)

	case collectionLoadedMsg:
		return m, m.openCollection(msg)

	case previewLoadedMsg:
		if msg.err != nil {
			m.setStatus("Could not load readme for "+msg.projectDomain, true)
			return m, nil
		}
		return m, OpenPagerCmd(msg.projectDomain, msg.content)

	case pagerClosedMsg:
		if msg.err != nil {
			m.log.Warn("pager exited with error", zap.Error(msg.err))
		}
		return m, nil

	default:
		// everything else belongs to whatever pop-over is open
		return m, m.popover.Update(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return tea.Quit
	}

	if m.popover.Visible() {
		return m.popover.Update(msg)
	}

	switch msg.String() {
	case "ctrl+t":
		m.popover.Open(NewTogglesPop(m.store, m.styles, m.log))
		return nil
	case "ctrl+n":
		return m.openInvite()
	case "ctrl+e":
		return m.loadCollection()
	case "ctrl+v":
		return m.openPreview()
	}
	return m.form.Update(msg)
}

// openInvite opens the invite pop-over for the selected team result
func (m *Model) openInvite() tea.Cmd {
	id, ok := selectedEntityID(m.form.State(), search.TypeTeam)
	if !ok {
		m.setStatus("Select a team first", true)
		return nil
	}

	controller := invite.NewController(id, m.client.Teams(), m.bus)
	pop := NewInvitePop(controller, m.client.Users(), m.checker, m.styles, m.log,
		m.store.ToggleEnabled(prefs.ToggleEmailInvites))
	m.popover.Open(pop)

	return pop.LoadTeam(m.client.Teams(), id)
}

// loadCollection fetches the selected collection before opening its editor
func (m *Model) loadCollection() tea.Cmd {
	id, ok := selectedEntityID(m.form.State(), search.TypeCollection)
	if !ok {
		m.setStatus("Select a collection first", true)
		return nil
	}

	apply := m.collectionLoader.Begin()
	version := m.collectionLoader.Version()
	collections := m.client.Collections()
	m.setStatus("Loading collection…", false)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchFetchTimeout)
		defer cancel()
		collection, err := collections.Get(ctx, id)
		return collectionLoadedMsg{version: version, collection: collection, apply: apply, err: err}
	}
}

func (m *Model) openCollection(msg collectionLoadedMsg) tea.Cmd {
	if msg.err != nil {
		if msg.version == m.collectionLoader.Version() {
			m.setStatus("Could not load collection", true)
		}
		return nil
	}
	if !msg.apply(msg.collection) {
		return nil
	}

	m.status = ""
	m.popover.Open(NewCollectionPop(msg.collection, m.client.Collections(),
		m.currentUser, m.bus, m.styles, m.log))
	return nil
}

// openPreview pages the selected project's readme
func (m *Model) openPreview() tea.Cmd {
	selected := m.form.State().SelectedResult()
	if selected == nil || selected.Type != search.TypeProject {
		m.setStatus("Select a project first", true)
		return nil
	}
	// project results carry the domain as their title
	return LoadPreviewCmd(m.client.Projects(), selected.Title)
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch ev := event.(type) {
	case eventbus.PrefChangedEvent:
		m.form.SetEnhanced(m.store.ToggleEnabled(prefs.ToggleEnhancedSearch))
	case eventbus.InviteSentEvent:
		m.setStatus("Invited "+ev.Invitee, false)
	case eventbus.InviteFailedEvent:
		m.setStatus("Invite to "+ev.Invitee+" failed", true)
	case eventbus.DomainWhitelistedEvent:
		m.setStatus("Whitelisted @"+ev.Domain, false)
	case eventbus.FieldRevertedEvent:
		m.setStatus(ev.Message, true)
	case eventbus.ErrorEvent:
		m.setStatus(ev.Message, true)
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("hubgrip"))
	b.WriteString("\n")

	if m.store.ToggleEnabled(prefs.ToggleShowNewStuff) {
		b.WriteString(m.styles.SeeAll.Render("✨ New stuff: pop-over editing and email invites"))
		b.WriteString("\n\n")
	}

	b.WriteString(m.form.View(m.showCounts))

	if m.status != "" {
		style := m.styles.StatusSuccess
		if m.statusErr {
			style = m.styles.StatusError
		}
		b.WriteString("\n\n")
		b.WriteString(style.Render(m.status))
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("ctrl+n invite · ctrl+e edit collection · ctrl+v preview project · ctrl+t toggles · ctrl+c quit"))

	background := m.styles.Main.Render(b.String())
	if !m.popover.Visible() {
		return background
	}
	return views.RenderPopup(m.styles, background, m.popover.View(m.width-12), m.width, m.height)
}

// selectedEntityID extracts the numeric id from the selected result's key
// when the selection has the wanted type
func selectedEntityID(st search.State, want search.ResultType) (int, bool) {
	selected := st.SelectedResult()
	if selected == nil || selected.Type != want {
		return 0, false
	}
	_, raw, found := strings.Cut(selected.Key, ":")
	if !found {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}
