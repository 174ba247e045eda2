package selection

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"blockedit/internal/domain"
	"blockedit/internal/sanitize"
	"blockedit/internal/ui/services/caret"
	"blockedit/internal/ui/services/shortcuts"
	"blockedit/internal/ui/services/textsel"
)

// SelectAllMode decides what the select-all shortcut does
type SelectAllMode int

const (
	// SelectAllImmediate selects every block on each press
	SelectAllImmediate SelectAllMode = iota
	// SelectAllProgressive selects the current block first and every block
	// on the following press
	SelectAllProgressive
)

// ParseSelectAllMode maps the config spelling to a mode
func ParseSelectAllMode(s string) (SelectAllMode, bool) {
	switch s {
	case "immediate", "":
		return SelectAllImmediate, true
	case "progressive":
		return SelectAllProgressive, true
	}
	return SelectAllImmediate, false
}

// Options tune the service
type Options struct {
	SelectAllKeys []string
	CopyKeys      []string
	Mode          SelectAllMode
	InsertDelay   time.Duration
}

// DefaultOptions returns the stock key bindings and timings
func DefaultOptions() Options {
	return Options{
		SelectAllKeys: []string{"ctrl+a"},
		CopyKeys:      []string{"ctrl+c"},
		Mode:          SelectAllImmediate,
		InsertDelay:   20 * time.Millisecond,
	}
}

// ShortcutRegistry binds key combinations to handlers
type ShortcutRegistry interface {
	Add(s shortcuts.Shortcut) error
}

// NativeSelection saves and restores the text range of the focused surface
type NativeSelection interface {
	Save() textsel.Snapshot
	Restore(s textsel.Snapshot)
	RemoveAllRanges()
}

// RectSelection is the drag selection gesture
type RectSelection interface {
	IsActive() bool
	Clear()
}

// CrossBlockSelection is the shift-extension gesture
type CrossBlockSelection interface {
	Clear(ev tea.Msg)
}

// Caret places the caret and inserts text at it
type Caret interface {
	SetToBlock(block *domain.Block, pos caret.Position)
	InsertContentAtCaret(text string)
	InsertContentAt(block *domain.Block, offset int, text string)
	Offset() int
}

// Sanitizer cleans markup down to an allow-list
type Sanitizer interface {
	Clean(markup string, cfg sanitize.Config) string
}

// Clipboard receives copied markup
type Clipboard interface {
	Write(text string) error
}

// Scheduler runs task once after delay, on the same loop that owns the
// selection state. Scheduled tasks are not cancelled.
type Scheduler interface {
	Schedule(delay time.Duration, task func())
}

// Collaborators are the services the selection drives but does not own.
// Nil entries are replaced with no-ops.
type Collaborators struct {
	Shortcuts  ShortcutRegistry
	Native     NativeSelection
	Rect       RectSelection
	CrossBlock CrossBlockSelection
	Caret      Caret
	Sanitizer  Sanitizer
	Clipboard  Clipboard
	Scheduler  Scheduler
}

type nopNative struct{}

func (nopNative) Save() textsel.Snapshot    { return textsel.Snapshot{} }
func (nopNative) Restore(textsel.Snapshot) {}
func (nopNative) RemoveAllRanges()         {}

type nopRect struct{}

func (nopRect) IsActive() bool { return false }
func (nopRect) Clear()         {}

type nopCrossBlock struct{}

func (nopCrossBlock) Clear(tea.Msg) {}

type nopCaret struct{}

func (nopCaret) SetToBlock(*domain.Block, caret.Position)   {}
func (nopCaret) InsertContentAtCaret(string)                {}
func (nopCaret) InsertContentAt(*domain.Block, int, string) {}
func (nopCaret) Offset() int                                { return 0 }

type nopScheduler struct{}

func (nopScheduler) Schedule(_ time.Duration, task func()) { task() }

func (c *Collaborators) fill() {
	if c.Native == nil {
		c.Native = nopNative{}
	}
	if c.Rect == nil {
		c.Rect = nopRect{}
	}
	if c.CrossBlock == nil {
		c.CrossBlock = nopCrossBlock{}
	}
	if c.Caret == nil {
		c.Caret = nopCaret{}
	}
	if c.Scheduler == nil {
		c.Scheduler = nopScheduler{}
	}
}
