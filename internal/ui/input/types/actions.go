package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Selection actions
type ClearSelectionAction struct {
	Restore bool // bring back the text range saved when blocks were selected
}

func (a ClearSelectionAction) Type() string { return "clear_selection" }

type RemoveSelectedAction struct{}

func (a RemoveSelectedAction) Type() string { return "remove_selected" }

// ExtendTextAction grows or shrinks the text range inside the edited block
type ExtendTextAction struct {
	Delta int // runes; negative extends left
}

func (a ExtendTextAction) Type() string { return "extend_text" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Block editing actions
type EditAction struct{}

func (a EditAction) Type() string { return "edit" }

type NewBlockAction struct {
	Below bool
}

func (a NewBlockAction) Type() string { return "new_block" }

// Text input actions
type UpdateTextAction struct {
	Text   string
	Cursor int
}

func (a UpdateTextAction) Type() string { return "update_text" }

type CommitTextAction struct {
	Text string
}

func (a CommitTextAction) Type() string { return "commit_text" }

// Pager actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type PreviewAction struct{}

func (a PreviewAction) Type() string { return "preview" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
