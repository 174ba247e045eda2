package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"blockedit/internal/ui/input/modes"
	"blockedit/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
}

func New() *Handler {
	ti := textinput.New()
	ti.Prompt = ""

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	// Register all mode handlers
	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeEdit] = modes.NewEditMode(h.textInput)

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var cmd tea.Cmd
	var allActions []types.Action

	// If not consumed and we're in text mode, we'll handle it below
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	// Handle mode changes
	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.switchMode(changeMode.Mode, ctx)...)
		} else {
			allActions = append(allActions, action)
		}
	}

	// If we're in a text mode and didn't handle the key, pass it to text input
	if h.isTextMode(h.currentMode) && !consumed {
		*h.textInput, cmd = h.textInput.Update(msg)
		allActions = append(allActions, types.UpdateTextAction{
			Text:   h.textInput.Value(),
			Cursor: h.textInput.Position(),
		})
	}

	return allActions, cmd
}

func (h *Handler) switchMode(mode types.Mode, ctx types.Context) []types.Action {
	var out []types.Action
	if h.modes[h.currentMode] != nil {
		out = append(out, h.modes[h.currentMode].Exit(ctx)...)
	}
	h.currentMode = mode
	if h.modes[h.currentMode] != nil {
		out = append(out, h.modes[h.currentMode].Enter(ctx)...)
	}
	return out
}

// BeginEdit loads text into the shared input and switches to edit mode
// with the cursor at cursor
func (h *Handler) BeginEdit(text string, cursor int, ctx types.Context) tea.Cmd {
	if h.currentMode != types.ModeEdit {
		h.switchMode(types.ModeEdit, ctx)
	}
	h.textInput.SetValue(text)
	h.textInput.SetCursor(cursor)
	h.textInput.Focus()
	return textinput.Blink
}

// Reload replaces the edited text without leaving edit mode
func (h *Handler) Reload(text string, cursor int) {
	h.textInput.SetValue(text)
	h.textInput.SetCursor(cursor)
}

// SetCursor moves the edit cursor
func (h *Handler) SetCursor(pos int) {
	h.textInput.SetCursor(pos)
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

func (h *Handler) TextInput() *textinput.Model {
	if h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

func (h *Handler) RegisterMode(mode types.Mode, handler types.ModeHandler) {
	h.modes[mode] = handler
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	return mode == types.ModeEdit
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
