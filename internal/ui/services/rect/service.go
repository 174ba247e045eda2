// Package rect implements rectangular drag selection: pressing the left
// button on a block row and dragging across rows selects every block the
// drag spans.
package rect

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// Selector is the block selection a drag drives
type Selector interface {
	SelectBlock(index int) error
	UnSelectBlock(index int) error
	ClearSelection(ev tea.Msg, restore bool)
}

// Tracker follows one drag gesture at a time. A gesture is pending from
// press until the pointer leaves the start row, then active until Clear;
// release ends the gesture but keeps it active so the next clear knows the
// selection came from a drag.
type Tracker struct {
	selector Selector
	rowFn    func(y int) int

	dragging bool
	active   bool
	start    int
	selected map[int]bool

	log zerolog.Logger
}

// NewTracker creates an idle tracker
func NewTracker(log zerolog.Logger) *Tracker {
	return &Tracker{
		start:    -1,
		selected: make(map[int]bool),
		log:      log.With().Str("cmp", "rect").Logger(),
	}
}

// SetSelector sets the selection the tracker drives
func (t *Tracker) SetSelector(s Selector) {
	t.selector = s
}

// SetRowFunction sets the mapping from screen row to block index (-1 for
// rows that hold no block)
func (t *Tracker) SetRowFunction(fn func(y int) int) {
	t.rowFn = fn
}

// HandleMouse feeds a mouse event into the gesture and reports whether the
// tracker consumed it
func (t *Tracker) HandleMouse(msg tea.MouseMsg) bool {
	if t.selector == nil || t.rowFn == nil {
		return false
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Shift {
			return false
		}
		// A new press always ends the previous selection first
		t.selector.ClearSelection(msg, false)

		row := t.rowFn(msg.Y)
		if row < 0 {
			return false
		}
		t.dragging = true
		t.start = row
		return false

	case tea.MouseActionMotion:
		if !t.dragging {
			return false
		}
		row := t.rowFn(msg.Y)
		if row < 0 || (!t.active && row == t.start) {
			return t.active
		}
		if !t.active {
			t.active = true
			t.log.Debug().Int("start", t.start).Msg("drag selection activated")
		}
		t.extendTo(row)
		return true

	case tea.MouseActionRelease:
		if !t.dragging {
			return false
		}
		t.dragging = false
		return t.active
	}

	return false
}

func (t *Tracker) extendTo(row int) {
	lo, hi := t.start, row
	if lo > hi {
		lo, hi = hi, lo
	}

	for idx := range t.selected {
		if idx < lo || idx > hi {
			if err := t.selector.UnSelectBlock(idx); err != nil {
				t.log.Debug().Err(err).Int("index", idx).Msg("unselect during drag")
			}
			delete(t.selected, idx)
		}
	}
	for idx := lo; idx <= hi; idx++ {
		if t.selected[idx] {
			continue
		}
		if err := t.selector.SelectBlock(idx); err != nil {
			t.log.Debug().Err(err).Int("index", idx).Msg("select during drag")
			continue
		}
		t.selected[idx] = true
	}
}

// IsActive reports whether a drag has selected blocks that were not yet
// cleared
func (t *Tracker) IsActive() bool {
	return t.active
}

// Dragging reports whether the button is still held
func (t *Tracker) Dragging() bool {
	return t.dragging
}

// Clear cancels any gesture in progress and forgets the drag selection.
// Block flags are left to the caller.
func (t *Tracker) Clear() {
	if t.active || t.dragging {
		t.log.Debug().Bool("dragging", t.dragging).Msg("drag selection cleared")
	}
	t.dragging = false
	t.active = false
	t.start = -1
	t.selected = make(map[int]bool)
}
