// Package threadview is the interactive thread viewer: one assembled thread
// rendered as a scrollable column with the focused message highlighted,
// ancestors above it and the flattened reply tree below.
package threadview

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/strandtui/strand/internal/loader"
	"github.com/strandtui/strand/internal/log"
	"github.com/strandtui/strand/internal/paginate"
	"github.com/strandtui/strand/internal/store"
	"github.com/strandtui/strand/internal/thread"
)

// Options configures a thread view model.
type Options struct {
	Store    store.Store
	Pager    paginate.Pager
	FocusID  string
	Debounce time.Duration
}

// Model is the thread view program state.
type Model struct {
	store    store.Store
	cache    *thread.ViewCache
	session  *paginate.Session
	results  chan paginate.Result
	zones    *zone.Manager
	debounce time.Duration

	view     thread.View
	rows     []Row
	spans    []rowSpan
	selected int

	viewport viewport.Model
	spinner  spinner.Model
	compose  textinput.Model

	width, height int
	ready         bool
	loading       bool
	composing     bool
	showBody      bool
	bodyText      string
	notFound      bool
	err           error

	now func() time.Time
}

// rowSpan records where a row's lines land in the viewport content.
type rowSpan struct {
	start int
	lines int
}

// New creates a thread view focused on opts.FocusID.
func New(opts Options) Model {
	results := make(chan paginate.Result, 1)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	ti := textinput.New()
	ti.Placeholder = "write a reply"
	ti.CharLimit = 500

	m := Model{
		store:    opts.Store,
		cache:    thread.NewViewCache(0),
		session:  paginate.NewSession(opts.Pager, opts.Debounce, func(r paginate.Result) { results <- r }),
		results:  results,
		zones:    zone.New(),
		debounce: opts.Debounce,
		spinner:  sp,
		compose:  ti,
		now:      time.Now,
	}
	m.focus(opts.FocusID)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.waitForPage()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(msg.Width, max(msg.Height-chromeHeight, 1))
		m.compose.Width = max(msg.Width-4, 10)
		m.ready = true
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case pageMsg:
		m.loading = false
		if msg.res.Err != nil {
			m.err = msg.res.Err
			log.ErrorErr(log.CatFetch, "page fetch failed", msg.res.Err, "parent", msg.res.ParentID)
			return m, m.waitForPage()
		}
		if _, err := m.store.ApplyPage(msg.res.ParentID, msg.res.Page.Children); err != nil {
			m.err = err
			return m, m.waitForPage()
		}
		m.err = nil
		m.refresh()
		return m, m.waitForPage()

	case ReloadMsg:
		m.session.Refocus()
		m.session = paginate.NewSession(msg.Pager, m.debounce, func(r paginate.Result) { m.results <- r })
		m.store = msg.Store
		// Views cached against the old store are keyed by its versions;
		// a fresh cache avoids cross-store collisions.
		m.cache = thread.NewViewCache(0)
		m.loading = false
		m.err = nil
		focus := m.view.FocusedID
		if !m.store.Has(focus) {
			focus = msg.FocusID
		}
		m.focus(focus)
		log.Info(log.CatUI, "thread reloaded", "focus", focus)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.syncViewport()
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.composing {
		switch msg.String() {
		case "esc":
			m.composing = false
			return m, nil
		case "enter":
			m.composing = false
			body := strings.TrimSpace(m.compose.Value())
			if body == "" {
				return m, nil
			}
			reply := loader.NewPendingReply(m.view.FocusedID, "you", body)
			if _, err := m.store.Add(reply); err != nil {
				m.err = err
				return m, nil
			}
			m.refresh()
			return m, nil
		}
		var cmd tea.Cmd
		m.compose, cmd = m.compose.Update(msg)
		return m, cmd
	}

	if m.showBody {
		switch msg.String() {
		case "esc", "b", "q":
			m.showBody = false
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		return m, m.move(thread.DirectionUp)

	case "down", "j":
		return m, m.move(thread.DirectionDown)

	case "g":
		m.selected = 0
		m.syncViewport()
		return m, nil

	case "G":
		if len(m.rows) > 0 {
			m.selected = len(m.rows) - 1
		}
		m.syncViewport()
		if m.selectedRow().Kind == RowLoadMore {
			return m, m.requestMore()
		}
		return m, nil

	case "enter":
		return m, m.activate(m.selectedRow())

	case "b":
		m.openBody()
		return m, nil

	case "r":
		if m.notFound {
			return m, nil
		}
		m.composing = true
		m.compose.SetValue("")
		return m, m.compose.Focus()
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for i, row := range m.rows {
		if m.zones.Get(rowZoneID(row.ID)).InBounds(msg) {
			m.selected = i
			return m, m.activate(row)
		}
	}
	return m, nil
}

// move shifts the selection one row using the focus navigation arithmetic;
// landing on the load-more row schedules a fetch.
func (m *Model) move(dir thread.Direction) tea.Cmd {
	if len(m.rows) == 0 {
		return nil
	}

	cur := m.selectedRow()
	if cur.Kind == RowLoadMore {
		if dir == thread.DirectionUp && m.selected > 0 {
			m.selected--
			m.syncViewport()
		}
		return nil
	}

	if idx, ok := thread.MoveFocus(cur.ID, dir, m.view); ok {
		m.selected = idx
	} else if dir == thread.DirectionDown && len(m.rows) > m.view.Len() && m.selected == m.view.Len()-1 {
		m.selected = len(m.rows) - 1
	}
	m.syncViewport()

	if m.selectedRow().Kind == RowLoadMore {
		return m.requestMore()
	}
	return nil
}

// activate refocuses on a message row or fetches on the load-more row.
func (m *Model) activate(row Row) tea.Cmd {
	switch row.Kind {
	case RowLoadMore:
		return m.requestMore()
	case RowFocused:
		return nil
	default:
		m.refocus(row.ID)
		return nil
	}
}

func (m *Model) requestMore() tea.Cmd {
	focusID := m.view.FocusedID
	m.session.Request(focusID, nextCursor(focusID, m.store))
	if m.loading {
		return nil
	}
	m.loading = true
	m.syncViewport()
	return m.spinner.Tick
}

func (m *Model) refocus(id string) {
	if id == m.view.FocusedID {
		return
	}
	m.session.Refocus()
	m.loading = false
	m.err = nil
	m.focus(id)
	log.Debug(log.CatUI, "refocused", "id", id)
}

// focus rebuilds the view centered on id and selects the focused row. An id
// the store has never seen skips assembly entirely and renders the not-found
// state instead.
func (m *Model) focus(id string) {
	m.notFound = !m.store.Has(id)
	if m.notFound {
		m.view = thread.View{FocusedID: id}
		m.rows = nil
		m.selected = 0
		return
	}
	m.view = m.cache.Assemble(id, m.store.Snapshot())
	m.rows = buildRows(m.view, m.store)
	m.selected = m.view.FocusIndex()
	m.syncViewport()
}

// refresh rebuilds rows after a store mutation, keeping the selection on the
// same message when it still exists.
func (m *Model) refresh() {
	selID := ""
	if m.selected < len(m.rows) {
		selID = m.rows[m.selected].ID
	}

	m.view = m.cache.Assemble(m.view.FocusedID, m.store.Snapshot())
	m.rows = buildRows(m.view, m.store)

	m.selected = m.view.FocusIndex()
	for i, row := range m.rows {
		if row.ID == selID {
			m.selected = i
			break
		}
	}
	m.syncViewport()
}

func (m Model) selectedRow() Row {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return Row{}
	}
	return m.rows[m.selected]
}

// FocusedID returns the id the view is currently centered on.
func (m Model) FocusedID() string {
	return m.view.FocusedID
}

// Selected returns the id of the cursor row.
func (m Model) Selected() string {
	return m.selectedRow().ID
}

func (m *Model) openBody() {
	row := m.selectedRow()
	if row.Kind == RowLoadMore || row.ID == "" {
		return
	}
	msg, err := m.store.Message(row.ID)
	if err != nil {
		return
	}
	rendered, err := renderBody(msg.Body, m.width)
	if err != nil {
		m.err = err
		return
	}
	m.bodyText = rendered
	m.showBody = true
}

var _ tea.Model = Model{}
