package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"blockedit/internal/ui/input/types"
)

// EditMode types into the focused block through a shared text input
type EditMode struct {
	textInput *textinput.Model
}

func NewEditMode(ti *textinput.Model) *EditMode {
	return &EditMode{textInput: ti}
}

func (m *EditMode) Name() string {
	return "edit"
}

func (m *EditMode) Enter(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Focus()
		m.textInput.Prompt = "" // Prompt is handled in the UI layer
	}
	return nil
}

func (m *EditMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
	}
	return nil
}

func (m *EditMode) value() string {
	if m.textInput == nil {
		return ""
	}
	return m.textInput.Value()
}

func (m *EditMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{
			types.CommitTextAction{Text: m.value()},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "enter":
		// Split off a fresh block below and keep typing there
		return []types.Action{
			types.CommitTextAction{Text: m.value()},
			types.NewBlockAction{Below: true},
		}, true
	case "up", "down":
		return []types.Action{
			types.CommitTextAction{Text: m.value()},
			types.NavigateAction{Direction: msg.String()},
		}, true
	case "shift+left":
		return []types.Action{types.ExtendTextAction{Delta: -1}}, true
	case "shift+right":
		return []types.Action{types.ExtendTextAction{Delta: 1}}, true
	default:
		// Let the main handler update the text input
		return nil, false
	}
}
