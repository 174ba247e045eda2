package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventBlockSelected     EventType = "BlockSelected"
	EventBlockUnselected   EventType = "BlockUnselected"
	EventAllBlocksSelected EventType = "AllBlocksSelected"
	EventSelectionCleared  EventType = "SelectionCleared"
	EventBlocksReplaced    EventType = "BlocksReplaced"
	EventBlocksRemoved     EventType = "BlocksRemoved"
	EventBlocksCopied      EventType = "BlocksCopied"
	EventFocusMoved        EventType = "FocusMoved"
	EventError             EventType = "Error"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// BlockSelectedEvent is emitted when a single block becomes selected
type BlockSelectedEvent struct {
	BlockID string
	Index   int
}

func (e BlockSelectedEvent) Type() EventType { return EventBlockSelected }

// BlockUnselectedEvent is emitted when a single block loses selection
type BlockUnselectedEvent struct {
	BlockID string
	Index   int
}

func (e BlockUnselectedEvent) Type() EventType { return EventBlockUnselected }

// AllBlocksSelectedEvent is emitted by the select-all shortcut
type AllBlocksSelectedEvent struct {
	Count int
}

func (e AllBlocksSelectedEvent) Type() EventType { return EventAllBlocksSelected }

// SelectionClearedEvent is emitted when block selection is dropped
type SelectionClearedEvent struct {
	Restored bool // native selection snapshot was restored
}

func (e SelectionClearedEvent) Type() EventType { return EventSelectionCleared }

// BlocksReplacedEvent is emitted when typing replaced the selected blocks
// with a fresh block
type BlocksReplacedEvent struct {
	Removed int
	Index   int
	BlockID string // the inserted block
	Text    string // the character that triggered the replacement
}

func (e BlocksReplacedEvent) Type() EventType { return EventBlocksReplaced }

// BlocksRemovedEvent is emitted when selected blocks are deleted
type BlocksRemovedEvent struct {
	Removed int
	Index   int
}

func (e BlocksRemovedEvent) Type() EventType { return EventBlocksRemoved }

// BlocksCopiedEvent is emitted after selected blocks reach the clipboard
type BlocksCopiedEvent struct {
	Count int
	Bytes int
}

func (e BlocksCopiedEvent) Type() EventType { return EventBlocksCopied }

// FocusMovedEvent is emitted when the current block changes
type FocusMovedEvent struct {
	OldIndex int
	NewIndex int
}

func (e FocusMovedEvent) Type() EventType { return EventFocusMoved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
