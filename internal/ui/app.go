package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trawltui/trawl/internal/filter"
	"github.com/trawltui/trawl/internal/object"
	"github.com/trawltui/trawl/internal/prefs"
	"github.com/trawltui/trawl/internal/state"
)

const defaultRefresh = time.Second

// Actions is the subset of the daemon client the UI invokes on the
// selected torrent.
type Actions interface {
	TorrentStart(ctx context.Context, ids ...int64) error
	TorrentStop(ctx context.Context, ids ...int64) error
	TorrentVerify(ctx context.Context, ids ...int64) error
	TorrentRemove(ctx context.Context, deleteData bool, ids ...int64) error
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Store        *state.Store
	Actions      Actions
	OnFilter     func(*filter.Chain)
	OnDetail     func(ctx context.Context, id int64) (*Detail, error)
	Filter       string
	Prefs        prefs.Prefs
	PrefsPath    string
	RefreshEvery time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx      context.Context
	store    *state.Store
	actions  Actions
	onFilter func(*filter.Chain)
	onDetail func(ctx context.Context, id int64) (*Detail, error)
	refresh  time.Duration

	keys   keyMap
	theme  Theme
	styles Styles

	width  int
	height int
	ready  bool

	snapshot state.Snapshot
	views    []*object.View

	selected int
	offset   int
	sortKey  string

	registry    *filter.Registry
	chain       *filter.Chain
	filterInput textinput.Model
	filtering   bool

	detail        *Detail
	detailSection int
	detailChain   *filter.Chain
	detailView    viewport.Model

	showHelp bool
	flash    string

	prefs     prefs.Prefs
	prefsPath string
}

type tickMsg time.Time

type actionDoneMsg struct {
	verb string
	err  error
}

// NewModel builds the root model. The initial filter expression comes from
// preferences; an invalid one degrades to no filter rather than refusing
// to start.
func NewModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	refresh := opts.RefreshEvery
	if refresh <= 0 {
		refresh = defaultRefresh
	}

	theme := ThemeByName(opts.Prefs.Theme)

	input := textinput.New()
	input.Prompt = "filter> "
	input.CharLimit = 256

	reg := filter.Torrents()
	m := Model{
		ctx:         ctx,
		store:       opts.Store,
		actions:     opts.Actions,
		onFilter:    opts.OnFilter,
		onDetail:    opts.OnDetail,
		refresh:     refresh,
		keys:        DefaultKeyMap(),
		theme:       theme,
		styles:      theme.Styles(),
		sortKey:     opts.Prefs.Sort,
		registry:    reg,
		filterInput: input,
		detailView:  viewport.New(0, 0),
		prefs:       opts.Prefs,
		prefsPath:   opts.PrefsPath,
	}
	if opts.Filter != "" {
		if chain, err := filter.ParseChain(reg, opts.Filter); err == nil {
			m.chain = chain
		}
	}
	return m
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.clampSelection()
		if m.detail != nil {
			m.detailView.Width = m.width
			m.detailView.Height = m.tableHeight()
			m.refreshDetail()
		}
		return m, nil

	case tickMsg:
		if m.store != nil {
			m.snapshot = m.store.Snapshot()
			m.views = m.snapshot.Torrents
			sortViews(m.views, m.sortKey)
			m.clampSelection()
		}
		return m, m.tick()

	case actionDoneMsg:
		if msg.err != nil {
			m.flash = fmt.Sprintf("%s failed: %v", msg.verb, msg.err)
		} else {
			m.flash = ""
		}
		return m, nil

	case detailMsg:
		if msg.err != nil {
			m.flash = fmt.Sprintf("details failed: %v", msg.err)
			return m, nil
		}
		m.showDetail(msg.detail)
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilterInput(msg)
		}
		if m.detail != nil {
			return m.updateDetailKeys(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if m.detail != nil {
			return m.applyDetailFilter(m.filterInput.Value())
		}
		return m.applyFilter(m.filterInput.Value())
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m Model) applyFilter(expr string) (tea.Model, tea.Cmd) {
	m.filtering = false
	m.filterInput.Blur()

	chain, err := filter.ParseChain(m.registry, expr)
	if err != nil {
		m.flash = err.Error()
		return m, nil
	}
	m.chain = chain
	m.flash = ""
	if m.onFilter != nil {
		m.onFilter(chain)
	}
	m.prefs.Filter = chain.String()
	// Best effort; a read-only config dir should not break filtering.
	_ = prefs.Save(m.prefsPath, m.prefs)
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.showHelp = false
		m.flash = ""
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = NextTheme(m.theme.Name)
		m.styles = m.theme.Styles()
		m.prefs.Theme = m.theme.Name
		_ = prefs.Save(m.prefsPath, m.prefs)
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInput.SetValue(m.chainString())
		m.filterInput.CursorEnd()
		return m, m.filterInput.Focus()

	case key.Matches(msg, m.keys.ClearFilter):
		return m.applyFilter("")

	case key.Matches(msg, m.keys.CycleSort):
		m.sortKey = NextSortKey(m.sortKey)
		sortViews(m.views, m.sortKey)
		m.prefs.Sort = m.sortKey
		_ = prefs.Save(m.prefsPath, m.prefs)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		m.clampSelection()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.selected = len(m.views) - 1
		m.clampSelection()
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.moveSelection(-m.tableHeight())
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.moveSelection(m.tableHeight())
		return m, nil

	case key.Matches(msg, m.keys.Details):
		return m, m.openDetail()

	case key.Matches(msg, m.keys.Start):
		return m, m.torrentAction("start", m.actions.TorrentStart)
	case key.Matches(msg, m.keys.Stop):
		return m, m.torrentAction("stop", m.actions.TorrentStop)
	case key.Matches(msg, m.keys.Verify):
		return m, m.torrentAction("verify", m.actions.TorrentVerify)
	case key.Matches(msg, m.keys.Remove):
		return m, m.torrentAction("remove", func(ctx context.Context, ids ...int64) error {
			return m.actions.TorrentRemove(ctx, false, ids...)
		})
	}
	return m, nil
}

func (m *Model) torrentAction(verb string, do func(context.Context, ...int64) error) tea.Cmd {
	if m.actions == nil || m.selected < 0 || m.selected >= len(m.views) {
		return nil
	}
	id := toInt(m.views[m.selected].Value("id"))
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{verb: verb, err: do(ctx, id)}
	}
}

func (m *Model) moveSelection(delta int) {
	m.selected += delta
	m.clampSelection()
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.views) {
		m.selected = len(m.views) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	h := m.tableHeight()
	if h <= 0 {
		m.offset = 0
		return
	}
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+h {
		m.offset = m.selected - h + 1
	}
}

// tableHeight is the number of torrent rows that fit between the header
// and the footer.
func (m Model) tableHeight() int {
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) chainString() string {
	if m.chain == nil {
		return ""
	}
	return m.chain.String()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.detail != nil {
		return m.renderDetail()
	}

	header := m.renderHeader()
	table := renderTable(m.styles, m.views, m.selected, m.offset, m.width, m.tableHeight())
	footer := m.renderStatus()

	body := lipgloss.JoinVertical(lipgloss.Left, header, table)
	gap := m.height - lipgloss.Height(body) - lipgloss.Height(footer)
	for i := 0; i < gap; i++ {
		body += "\n"
	}
	return body + footer
}

func (m Model) renderHeader() string {
	title := "trawl"
	if expr := m.chainString(); expr != "" {
		title += "  [" + expr + "]"
	}
	if m.filtering {
		return m.styles.FilterBar.Width(m.width).Render(m.filterInput.View())
	}
	return m.styles.Header.Width(m.width).Render(title)
}
