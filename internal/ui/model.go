package ui

import (
	"reflect"
	"strings"
	"time"

	"github.com/atomicstack/ohsdash/internal/backend"
	"github.com/atomicstack/ohsdash/internal/data/dispatcher"
	"github.com/atomicstack/ohsdash/internal/directory"
	"github.com/atomicstack/ohsdash/internal/medical"
	"github.com/atomicstack/ohsdash/internal/menu"
	"github.com/atomicstack/ohsdash/internal/record"
	"github.com/atomicstack/ohsdash/internal/state"
	"github.com/atomicstack/ohsdash/internal/theme"
	"github.com/atomicstack/ohsdash/internal/ui/command"
	uistate "github.com/atomicstack/ohsdash/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

const (
	menuHeaderSeparator = " → "
	defaultRootTitle    = "ohsdash"
)

var styles = theme.Default()

var headerSegmentCleaner = strings.NewReplacer("_", " ", "-", " ")

type msgHandler func(tea.Msg) tea.Cmd

func newLevel(id, title string, items []menu.Item, node *menu.Node) *level {
	return uistate.NewLevel(id, title, items, node)
}

// Sources are the record sources behind the record screens.
type Sources struct {
	Employees      record.Source[medical.Employee]
	Reports        record.Source[medical.MedicalReport]
	MensHealth     record.Source[medical.MensHealth]
	Histories      record.Source[medical.MedicalHistory]
	Investigations record.Source[medical.SpecialInvestigation]
	// Documents renders signed report PDFs. Nil disables downloads.
	Documents medical.Documents
}

// Options configure a Model.
type Options struct {
	Width       int
	Height      int
	ShowFooter  bool
	Verbose     bool
	PageLimit   int
	Split       uistate.SplitConfig
	DownloadDir string
	RootSection string
	// MarkdownStyle is a glamour standard style name; "" renders plain text.
	MarkdownStyle string
}

// Model implements the Bubble Tea model for the console.
type Model struct {
	stack             []screen
	loading           bool
	pendingID         string
	pendingLabel      string
	errMsg            string
	infoMsg           string
	infoExpire        time.Time
	width             int
	height            int
	fixedWidth        bool
	fixedHeight       bool
	backend           *backend.Watcher
	backendState      map[directory.Kind]error
	backendLastErr    string
	opts              Options
	filterCursor      cursor.Model
	filterCursorDirty bool
	cursorFocused     bool
	spinner           spinner.Model
	help              help.Model

	handlers map[reflect.Type]msgHandler

	registry   *menu.Registry
	bus        *command.Bus
	route      *uistate.RouteState
	rootMenuID string
	rootTitle  string
	sources    Sources
	directory  state.DirectoryStore
	dispatcher *dispatcher.Dispatcher
	screenSeq  int
	now        func() time.Time
	startup    tea.Cmd
}

// NewModel initialises the UI state with the section menu and configuration.
func NewModel(sources Sources, watcher *backend.Watcher, opts Options) *Model {
	registry := menu.BuildRegistry()
	dir := state.NewDirectoryStore()
	root := newLevel("root", "Sections", menu.RootItems(), registry.Root())
	opts.Split = opts.Split.Normalize()
	if opts.PageLimit <= 0 {
		opts.PageLimit = uistate.DefaultPageLimit
	}
	m := &Model{
		stack:        []screen{&menuScreen{level: root}},
		registry:     registry,
		bus:          command.New(),
		route:        uistate.NewRouteState(),
		backend:      watcher,
		backendState: map[directory.Kind]error{},
		opts:         opts,
		rootTitle:    defaultRootTitle,
		sources:      sources,
		directory:    dir,
		dispatcher:   dispatcher.New(dir),
		now:          time.Now,
		help:         help.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if styles.Loading != nil {
		m.spinner.Style = styles.Loading.Copy()
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	m.syncViewport(root)
	m.applyRootSection(opts.RootSection)
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.startup != nil {
		cmds = append(cmds, m.startup)
		m.startup = nil
	}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	m.cursorFocused = true
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.BlurMsg{}):       m.handleBlurMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
		reflect.TypeOf(categoryLoadedMsg{}): m.handleCategoryLoadedMsg,
		reflect.TypeOf(menu.ActionResult{}): m.handleActionResultMsg,
		reflect.TypeOf(menu.OpenKind{}):     m.handleOpenKindMsg,
		reflect.TypeOf(menu.EditSection{}):  m.handleEditSectionMsg,
		reflect.TypeOf(menu.PickValue{}):    m.handlePickValueMsg,
		reflect.TypeOf(screenMsg{}):         m.handleScreenMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if m.cursorFocused {
			if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}

func (m *Model) handleBlurMsg(tea.Msg) tea.Cmd {
	for _, s := range m.stack {
		if pane, ok := s.(recordPane); ok {
			pane.endDrag(dragEndBlur)
		}
	}
	return nil
}

// Directory exposes the reference lists the model resolves names from.
func (m *Model) Directory() state.DirectoryStore {
	return m.directory
}

// Route exposes the route state shared by every screen.
func (m *Model) Route() *uistate.RouteState {
	return m.route
}
