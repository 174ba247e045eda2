package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"blockedit/internal/config"
	"blockedit/internal/eventbus"
	"blockedit/internal/logic"
	"blockedit/internal/sanitize"
	"blockedit/internal/ui/coordinator"
	"blockedit/internal/ui/handlers"
	"blockedit/internal/ui/input"
	inputtypes "blockedit/internal/ui/input/types"
	"blockedit/internal/ui/services/caret"
	"blockedit/internal/ui/services/navigation"
	"blockedit/internal/ui/services/selection"
	"blockedit/internal/ui/services/textsel"
	"blockedit/internal/ui/views"
)

// Deps are the services the model is built on
type Deps struct {
	Store     logic.BlockStore
	Bus       eventbus.EventBus
	Clipboard selection.Clipboard
	Log       zerolog.Logger
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	store  logic.BlockStore
	coord  *coordinator.Coordinator

	// UI-specific state
	width       int
	height      int
	help        help.Model
	keys        keyMap
	status      handlers.Status
	inPagerMode bool // tracks if we're currently in pager mode
	textAnchor  int  // start of the text range being extended, -1 when none

	// Handlers
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	inputHandler *input.Handler
	scheduler    *TickScheduler
	sanitizer    *sanitize.Sanitizer
	helpRenderer *HelpRenderer
	pager        *Pager

	log zerolog.Logger
}

// NewModel creates a new UI model and registers its shortcuts
func NewModel(cfg *config.Config, deps Deps) (*Model, error) {
	mode, ok := selection.ParseSelectAllMode(cfg.Selection.SelectAllMode)
	if !ok {
		return nil, fmt.Errorf("unknown select-all mode %q", cfg.Selection.SelectAllMode)
	}

	bus := deps.Bus
	if bus == nil {
		bus = eventbus.NullBus{}
	}

	m := &Model{
		bus:          bus,
		config:       cfg,
		store:        deps.Store,
		help:         help.New(),
		textAnchor:   -1,
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		scheduler:    NewTickScheduler(),
		sanitizer:    sanitize.New(),
		helpRenderer: NewHelpRenderer(),
		pager:        NewPager(),
		log:          deps.Log.With().Str("cmp", "ui").Logger(),
	}
	m.eventHandler = handlers.NewEventHandler(&m.status)

	m.coord = coordinator.NewCoordinator(coordinator.Deps{
		Store:     deps.Store,
		Bus:       bus,
		Sanitizer: m.sanitizer,
		Clipboard: deps.Clipboard,
		Scheduler: m.scheduler,
		Options: selection.Options{
			SelectAllKeys: []string{cfg.Selection.SelectAllKey},
			CopyKeys:      []string{cfg.Selection.CopyKey},
			Mode:          mode,
			InsertDelay:   cfg.Selection.InsertDelay(),
		},
		Log: deps.Log,
	})
	if err := m.coord.Prepare(); err != nil {
		return nil, err
	}
	m.coord.SetBlockOrigin(views.BlockAreaTop)
	m.keys = newKeyMap(m.coord.Shortcuts.Bindings())

	if deps.Store.Len() > 0 {
		m.coord.Focus(0)
	}
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.coord.SetViewportHeight(msg.Height)

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		if m.inPagerMode {
			return m, nil
		}
		cmd = m.handleMouse(msg)

	default:
		cmd = m.handleNonKeyboardMsg(msg)
	}

	m.coord.Navigation.Sync()
	return m, m.flush(cmd)
}

// flush adds the scheduler's queued tasks to cmd
func (m *Model) flush(cmd tea.Cmd) tea.Cmd {
	cmds := m.scheduler.Drain()
	if len(cmds) == 0 {
		return cmd
	}
	return tea.Batch(append(cmds, cmd)...)
}

func (m *Model) context() *input.ModelContext {
	return &input.ModelContext{Store: m.store, Selection: m.coord.Selection}
}

func (m *Model) editing() bool {
	return m.inputHandler.CurrentMode() == inputtypes.ModeEdit
}

// handleKey routes a key: registered shortcuts first, then shift
// extension, then the selection, then the current input mode
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	sel := m.coord.Selection

	if m.coord.Shortcuts.Dispatch(msg) {
		if sel.AnyBlockSelected() {
			m.leaveEdit()
		}
		return nil
	}

	if m.coord.CrossBlock.HandleKey(msg) {
		m.leaveEdit()
		return nil
	}

	if sel.AnyBlockSelected() && !selectionKey(msg) {
		_, printable := selection.PrintableKey(msg)
		sel.ClearSelection(msg, false)
		if printable {
			// The typed text lands once the scheduled insert runs
			return m.beginEdit(caret.PositionStart)
		}
	}

	ctx := m.context()
	actions, cmd := m.inputHandler.HandleKey(msg, ctx)

	cmds := []tea.Cmd{}
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	for _, action := range actions {
		if actionCmd := m.processAction(action); actionCmd != nil {
			cmds = append(cmds, actionCmd)
		}
	}
	return tea.Batch(cmds...)
}

// selectionKey reports keys that act on the block selection itself rather
// than dismissing it
func selectionKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyBackspace, tea.KeyDelete:
		return true
	}
	return false
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	row := m.coord.BlockAtRow(views.BlockAreaTop, msg.Y)

	if msg.Shift && m.coord.CrossBlock.HandleClick(msg, row) {
		m.leaveEdit()
		return nil
	}

	consumed := m.coord.Rect.HandleMouse(msg)
	if m.coord.Rect.IsActive() {
		m.leaveEdit()
		return nil
	}

	isClick := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !msg.Shift
	if consumed || !isClick || row < 0 {
		return nil
	}

	wasEditing := m.editing()
	m.coord.Focus(row)
	if wasEditing {
		return m.beginEdit(caret.PositionEnd)
	}
	return nil
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	m.log.Debug().Str("action", action.Type()).Msg("processAction")

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.coord.Native.RemoveAllRanges()
		m.textAnchor = -1
		m.coord.Navigation.Navigate(navigation.Direction(a.Direction))
		if m.editing() {
			return m.beginEdit(caret.PositionEnd)
		}

	case inputtypes.EditAction:
		return m.beginEdit(caret.PositionEnd)

	case inputtypes.UpdateTextAction:
		if block := m.store.CurrentBlock(); block != nil {
			block.Content = a.Text
			m.coord.Caret.SetOffset(a.Cursor)
		}
		m.coord.Native.RemoveAllRanges()
		m.textAnchor = -1

	case inputtypes.CommitTextAction:
		if block := m.store.CurrentBlock(); block != nil {
			block.Content = a.Text
		}
		m.textAnchor = -1

	case inputtypes.ExtendTextAction:
		m.extendTextRange(a.Delta)

	case inputtypes.NewBlockAction:
		index := m.store.CurrentIndex()
		switch {
		case index < 0:
			index = m.store.Len()
		case a.Below:
			index++
		}
		m.store.InsertBlock(index, true)
		return m.beginEdit(caret.PositionStart)

	case inputtypes.RemoveSelectedAction:
		if m.coord.Selection.RemoveSelectedBlocks() {
			return m.beginEdit(caret.PositionStart)
		}

	case inputtypes.ClearSelectionAction:
		m.coord.Selection.ClearSelection(nil, a.Restore)
		return m.resumeTextRange()

	case inputtypes.ToggleHelpAction:
		if !m.pager.Available() {
			m.help.ShowAll = !m.help.ShowAll
			return nil
		}
		return m.showInPager(m.helpRenderer.RenderHelpContent(m.keys))

	case inputtypes.PreviewAction:
		if !m.pager.Available() {
			return nil
		}
		return m.showInPager(m.documentMarkup())

	case inputtypes.QuitAction:
		return tea.Quit
	}

	return nil
}

// beginEdit switches to edit mode on the current block with the caret at
// pos
func (m *Model) beginEdit(pos caret.Position) tea.Cmd {
	block := m.store.CurrentBlock()
	if block == nil {
		return nil
	}
	m.coord.Caret.SetToBlock(block, pos)
	m.textAnchor = -1
	return m.inputHandler.BeginEdit(block.Content, m.coord.Caret.Offset(), m.context())
}

func (m *Model) leaveEdit() {
	if m.editing() {
		m.inputHandler.Reset()
	}
	m.textAnchor = -1
}

// extendTextRange grows the text range in the edited block by delta runes
// from a fixed anchor
func (m *Model) extendTextRange(delta int) {
	block := m.store.CurrentBlock()
	ti := m.inputHandler.TextInput()
	if block == nil || ti == nil {
		return
	}

	pos := ti.Position()
	if m.textAnchor < 0 {
		m.textAnchor = pos
	}

	next := pos + delta
	if next < 0 {
		next = 0
	}
	if n := len([]rune(ti.Value())); next > n {
		next = n
	}

	m.inputHandler.SetCursor(next)
	m.coord.Caret.SetOffset(next)
	m.coord.Native.Select(textsel.Range{BlockID: block.ID, Start: m.textAnchor, End: next})
}

// resumeTextRange re-enters edit mode when clearing the selection brought
// back a text range in the current block
func (m *Model) resumeTextRange() tea.Cmd {
	rng, ok := m.coord.Native.Current()
	block := m.store.CurrentBlock()
	if !ok || block == nil || block.ID != rng.BlockID {
		return nil
	}

	cmd := m.inputHandler.BeginEdit(block.Content, rng.End, m.context())
	m.coord.Caret.SetOffset(rng.End)
	m.textAnchor = rng.Start
	return cmd
}

func (m *Model) documentMarkup() string {
	var sb strings.Builder
	for i, b := range m.store.Blocks() {
		fmt.Fprintf(&sb, "%3d  %-9s %s\n", i+1, b.Kind, b.Content)
	}
	return sb.String()
}

// showInPager returns a command that shows content in the pager
func (m *Model) showInPager(content string) tea.Cmd {
	program := m.pager.program
	return func() tea.Msg {
		// Send pause message to stop rendering
		program.Send(pauseRenderingMsg{})

		err := m.pager.Show(content)

		// Send resume message to restart rendering
		program.Send(resumeRenderingMsg{})

		return pagerMsg{err: err}
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case EventMsg:
		return m.eventHandler.HandleEvent(msg.Event)

	case deferredTaskMsg:
		msg.task()
		// Keep the edit surface in step with text the task inserted
		if block := m.store.CurrentBlock(); block != nil && m.editing() {
			m.inputHandler.Reload(block.Content, m.coord.Caret.Offset())
		}
		return nil

	case handlers.ClearStatusMsg:
		m.eventHandler.Clear(msg)
		return nil

	case pagerMsg:
		if msg.err != nil {
			// Pager failed: log and fall back to the inline help
			m.log.Warn().Err(msg.err).Msg("pager failed")
			m.help.ShowAll = true
		}
		return nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return nil

	default:
		// Blink and other text input messages
		return m.inputHandler.Update(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	blocks := m.store.Blocks()
	state := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Blocks:         make([]views.BlockView, 0, len(blocks)),
		ViewportOffset: m.coord.Navigation.GetViewportOffset(),
		ViewportHeight: m.coord.Navigation.GetViewportHeight(),
		Editing:        m.editing(),
		SelectedCount:  len(m.coord.Selection.SelectedBlocks()),
		Dragging:       m.coord.Rect.Dragging(),
		StatusMessage:  m.status.Message,
		StatusIsError:  m.status.IsError,
		ShowHelp:       m.config.UI.ShowHelp || m.help.ShowAll,
		HelpModel:      m.help,
		KeyMap:         m.keys,
	}

	current := m.store.CurrentIndex()
	for i, b := range blocks {
		state.Blocks = append(state.Blocks, views.BlockView{
			Kind:     b.Kind,
			Text:     m.sanitizer.Text(b.Content),
			Selected: b.Selected(),
			Focused:  i == current,
		})
	}

	if ti := m.inputHandler.TextInput(); ti != nil {
		state.EditView = ti.View()
		state.EditText = ti.Value()
		if rng, ok := m.coord.Native.Current(); ok && current >= 0 && blocks[current].ID == rng.BlockID {
			state.TextRange = &views.TextRange{Start: rng.Start, End: rng.End}
		}
	}

	return m.renderer.Render(state)
}
