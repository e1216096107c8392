package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/ragdesk/internal/busy"
	"github.com/five82/ragdesk/internal/chat"
	"github.com/five82/ragdesk/internal/config"
	"github.com/five82/ragdesk/internal/explore"
	"github.com/five82/ragdesk/internal/ingest"
	"github.com/five82/ragdesk/internal/nav"
	"github.com/five82/ragdesk/internal/outcome"
	"github.com/five82/ragdesk/internal/prefs"
	"github.com/five82/ragdesk/internal/ragapi"
	"github.com/five82/ragdesk/internal/registry"
	"github.com/five82/ragdesk/internal/state"
)

// Kicker asks the status poller for an immediate probe.
type Kicker interface {
	Kick()
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	API       ragapi.API
	Store     *state.Store
	Poller    Kicker
	Config    config.Config
	Logger    *zap.Logger
	ThemeName string
	PrefsPath string
}

// alert is a modal message. reload triggers a client reload on dismiss.
type alert struct {
	message string
	reload  bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	poller    Kicker
	cfg       config.Config
	log       *zap.Logger
	prefsPath string

	// Backend clients
	registry  *registry.Registry
	extractor *ingest.Extractor
	submitter *ingest.Submitter
	chatter   *chat.Client
	explorer  *explore.Service

	// UI state
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	// gen is bumped by every client reload; results from older generations
	// are dropped.
	gen        int
	tabs       nav.Group
	uploadTabs nav.Group
	busy       busy.Tracker
	alert      *alert
	snapshot   state.Snapshot
	selectors  registry.Selectors

	upload  uploadState
	chat    chatState
	explore exploreState
	console consoleState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	poller := opts.Poller
	if poller == nil {
		poller = noKick{}
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:       ctx,
		store:     store,
		poller:    poller,
		cfg:       opts.Config,
		log:       log.Named("ui"),
		prefsPath: prefsPath,
		registry:  registry.New(opts.API, log.Named("registry")),
		extractor: ingest.NewExtractor(log.Named("ingest")),
		submitter: ingest.NewSubmitter(opts.API, log.Named("ingest")),
		chatter:   chat.New(opts.API, log.Named("chat")),
		explorer:  explore.New(opts.API, log.Named("explore")),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		theme:     GetTheme(themeName),
	}
	m.resetState()
	return m
}

type noKick struct{}

func (noKick) Kick() {}

// resetState rebuilds every piece of per-session state.
func (m *Model) resetState() {
	m.stopWatch()
	m.busy = busy.Tracker{}
	m.alert = nil
	m.showHelp = false
	m.tabs = nav.TopLevel()
	m.uploadTabs = nav.UploadTabs()
	m.selectors = registry.Selectors{}
	m.upload = newUploadState(m.cfg)
	m.chat = newChatState(m.cfg)
	m.explore = newExploreState(m.cfg)
	m.console = newConsoleState()
	if m.ready {
		m.resize()
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(UITick),
		fetchSnapshotCmd(m.store),
		refreshCollectionsCmd(m.ctx, m.registry, m.gen),
		m.spinner.Tick,
		textinput.Blink,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case refreshCollectionsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m, refreshCollectionsCmd(m.ctx, m.registry, m.gen)

	case collectionsMsg:
		if msg.gen != m.gen || msg.err != nil {
			return m, nil
		}
		m.selectors.ReplaceAll(msg.names)
		return m, nil

	case collectionOpMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m.handleCollectionOp(msg)

	case stagedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m.handleStaged(msg)

	case fileChangedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.upload.pipeline.MarkStale(msg.path)
		return m, waitForChange(msg.gen, msg.path, msg.changes)

	case ingestedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m.handleIngested(msg)

	case chatReplyMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m.handleChatReply(msg)

	case sessionClearedMsg:
		if msg.gen != m.gen || !msg.res.OK {
			return m, nil
		}
		return m.notify(msg.res, true)

	case sessionMsg:
		if msg.gen != m.gen || msg.err != nil {
			return m, nil
		}
		m.chat.session.Show(msg.content)
		m.refreshTranscript()
		return m, nil

	case exploreLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m.handleExploreLoaded(msg)

	case chunkOpMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m.handleChunkOp(msg)

	case consoleMsg:
		m.handleConsole(msg)
		return m, nil
	}

	// Cursor blink and other widget messages go to whatever input has focus.
	return m.updateFocusedInput(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	switch {
	case m.busy.Active():
		return m.renderBusy()
	case m.alert != nil:
		return m.renderAlert()
	case m.showHelp:
		return m.renderHelp()
	case m.explore.editor != nil:
		return m.renderEditor()
	}
	return m.renderMain()
}

// handleKey routes keyboard input. Overlays take precedence over panes.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.stopWatch()
		return m, tea.Quit
	}

	// The busy overlay blocks all interaction.
	if m.busy.Active() {
		return m, nil
	}

	if m.alert != nil {
		if !key.Matches(msg, m.keys.Dismiss) {
			return m, nil
		}
		reload := m.alert.reload
		m.alert = nil
		if reload {
			return m.reload()
		}
		return m, nil
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.explore.editor != nil {
		return m.handleEditorKey(msg)
	}
	if m.tabs.IsActive(nav.Explore) && m.explore.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.log.Warn("save prefs", zap.String("path", m.prefsPath), zap.Error(err))
		}
		m.invalidateTranscript()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m.reload()

	case key.Matches(msg, m.keys.NextTab):
		return m.selectTab(m.peekTab(1))

	case key.Matches(msg, m.keys.PrevTab):
		return m.selectTab(m.peekTab(-1))

	case key.Matches(msg, m.keys.JumpTab):
		g := m.tabs
		pane, err := g.SelectIndex(int(msg.String()[len(msg.String())-1] - '1'))
		if err != nil {
			return m, nil
		}
		return m.selectTab(pane)

	case key.Matches(msg, m.keys.SubTab):
		if !m.tabs.IsActive(nav.Upload) {
			return m, nil
		}
		m.uploadTabs.Next()
		cmd := m.syncFocus()
		return m, cmd
	}

	switch m.tabs.Active() {
	case nav.Upload:
		if m.uploadTabs.IsActive(nav.UploadCollections) {
			return m.handleCollectionsKey(msg)
		}
		return m.handleFileKey(msg)
	case nav.Chat:
		return m.handleChatKey(msg)
	case nav.Explore:
		return m.handleExploreKey(msg)
	case nav.Console:
		return m.handleConsoleKey(msg)
	}
	return m, nil
}

// peekTab returns the pane offset steps from the active one without
// activating it.
func (m Model) peekTab(offset int) nav.Pane {
	g := m.tabs
	if offset > 0 {
		return g.Next()
	}
	return g.Prev()
}

// selectTab activates pane and schedules the work entering it needs.
func (m Model) selectTab(pane nav.Pane) (tea.Model, tea.Cmd) {
	if _, err := m.tabs.Select(pane); err != nil {
		m.log.Debug("select tab", zap.Error(err))
		return m, nil
	}
	cmds := []tea.Cmd{m.syncFocus()}
	if pane.NeedsCollections() {
		cmds = append(cmds, delayedCollectionRefresh(m.gen))
	}
	if pane == nav.Console {
		cmds = append(cmds, consoleCmd(m.cfg.LogFile))
	}
	return m, tea.Batch(cmds...)
}

// reload is the client-side equivalent of a page refresh: every component
// is rebuilt, status is re-probed and collections are fetched again.
func (m Model) reload() (tea.Model, tea.Cmd) {
	m.gen++
	m.resetState()
	m.store.Reset()
	m.snapshot = m.store.Snapshot()
	m.poller.Kick()
	m.log.Info("client reloaded", zap.Int("generation", m.gen))
	cmd := tea.Batch(
		refreshCollectionsCmd(m.ctx, m.registry, m.gen),
		m.syncFocus(),
	)
	return m, cmd
}

// notify shows res as an alert. With reloadOnDismiss the client reloads
// once the alert is dismissed, or right away when there is nothing to show.
func (m Model) notify(res outcome.Outcome, reloadOnDismiss bool) (tea.Model, tea.Cmd) {
	if res.Alert == "" {
		if reloadOnDismiss {
			return m.reload()
		}
		return m, nil
	}
	m.alert = &alert{message: res.Alert, reload: reloadOnDismiss}
	return m, nil
}

// handleTick processes the UI tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{fetchSnapshotCmd(m.store), tickCmd(UITick)}
	if m.tabs.IsActive(nav.Console) {
		cmds = append(cmds, consoleCmd(m.cfg.LogFile))
	}
	return m, tea.Batch(cmds...)
}

// syncFocus focuses the input that owns the keyboard in the visible pane
// and blurs the rest.
func (m *Model) syncFocus() tea.Cmd {
	m.chat.commitChunkCount()
	m.upload.path.Blur()
	m.upload.chunkSize.Blur()
	m.upload.newName.Blur()
	m.chat.message.Blur()
	m.chat.chunkCount.Blur()
	m.explore.search.Blur()

	switch m.tabs.Active() {
	case nav.Upload:
		if m.uploadTabs.IsActive(nav.UploadCollections) {
			return m.upload.newName.Focus()
		}
		if m.upload.focus == fieldPath && m.upload.pipeline.ChooserVisible() {
			return m.upload.path.Focus()
		}
		return m.upload.chunkSize.Focus()
	case nav.Chat:
		if m.chat.focus == fieldChunkCount {
			return m.chat.chunkCount.Focus()
		}
		return m.chat.message.Focus()
	case nav.Explore:
		if m.explore.searching {
			return m.explore.search.Focus()
		}
	}
	return nil
}

// updateFocusedInput forwards msg to the focused input of the visible pane.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.explore.editor != nil:
		m.explore.editor.text, cmd = m.explore.editor.text.Update(msg)
	case m.tabs.IsActive(nav.Upload) && m.uploadTabs.IsActive(nav.UploadCollections):
		m.upload.newName, cmd = m.upload.newName.Update(msg)
	case m.tabs.IsActive(nav.Upload):
		cmd = m.upload.updateInputs(msg)
	case m.tabs.IsActive(nav.Chat):
		cmd = m.chat.updateInputs(msg)
	case m.tabs.IsActive(nav.Explore) && m.explore.searching:
		m.explore.search, cmd = m.explore.search.Update(msg)
	}
	return m, cmd
}

// resize lays out widgets for the current terminal size.
func (m *Model) resize() {
	m.help.Width = m.width
	inner := max(m.width-4, 10)
	height := m.contentHeight()

	m.upload.staged.Width = inner
	m.upload.staged.Height = max(height-uploadFormRows, 3)
	m.upload.path.Width = max(inner-16, 10)
	m.upload.newName.Width = max(inner-16, 10)

	m.chat.view.Width = inner
	m.chat.view.Height = max(height-chatFormRows, 3)
	m.chat.message.Width = max(inner-16, 10)
	m.invalidateTranscript()

	m.explore.resize(inner, height)

	m.console.view.Width = inner
	m.console.view.Height = max(height-2, 3)
	m.refreshConsoleView()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	header := m.renderHeader()
	tabs := m.renderTabBar()
	content := m.renderContent()
	commands := m.renderCommandBar()
	return header + "\n" + tabs + "\n" + content + "\n" + commands
}

// renderContent renders the active pane.
func (m Model) renderContent() string {
	switch m.tabs.Active() {
	case nav.Upload:
		return m.renderUpload()
	case nav.Chat:
		return m.renderChat()
	case nav.Explore:
		return m.renderExplore()
	case nav.Console:
		return m.renderConsolePane()
	default:
		return m.renderHome()
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.stopWatch()
	}
	return err
}
