// Package crossblock extends block selection over a contiguous run of
// blocks with shift+arrow keys or shift+click.
package crossblock

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"blockedit/internal/logic"
)

// Selector is the block selection an extension drives
type Selector interface {
	SelectBlock(index int) error
	UnSelectBlock(index int) error
}

// Extender selects the run between an anchor block (the current block when
// the extension started) and a moving focus block
type Extender struct {
	store    logic.BlockStore
	selector Selector

	anchor   int
	focus    int
	selected map[int]bool

	log zerolog.Logger
}

// NewExtender creates an idle extender over store
func NewExtender(store logic.BlockStore, log zerolog.Logger) *Extender {
	return &Extender{
		store:    store,
		anchor:   -1,
		focus:    -1,
		selected: make(map[int]bool),
		log:      log.With().Str("cmp", "crossblock").Logger(),
	}
}

// SetSelector sets the selection the extender drives
func (e *Extender) SetSelector(s Selector) {
	e.selector = s
}

// HandleKey extends the run on shift+up / shift+down
func (e *Extender) HandleKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "shift+down":
		return e.step(1)
	case "shift+up":
		return e.step(-1)
	}
	return false
}

// HandleClick extends the run to row on a shift+left-click
func (e *Extender) HandleClick(msg tea.MouseMsg, row int) bool {
	if !msg.Shift || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	if row < 0 || row >= e.store.Len() || !e.ensureAnchor() {
		return false
	}
	e.focus = row
	e.apply()
	return true
}

func (e *Extender) step(dir int) bool {
	if e.selector == nil || !e.ensureAnchor() {
		return false
	}

	next := e.focus + dir
	if next < 0 {
		next = 0
	}
	if last := e.store.Len() - 1; next > last {
		next = last
	}
	e.focus = next
	e.apply()
	return true
}

func (e *Extender) ensureAnchor() bool {
	if e.selector == nil {
		return false
	}
	if e.anchor >= 0 {
		return true
	}
	current := e.store.CurrentIndex()
	if current < 0 {
		return false
	}
	e.anchor = current
	e.focus = current
	return true
}

func (e *Extender) apply() {
	lo, hi := e.anchor, e.focus
	if lo > hi {
		lo, hi = hi, lo
	}

	for idx := range e.selected {
		if idx < lo || idx > hi {
			if err := e.selector.UnSelectBlock(idx); err != nil {
				e.log.Debug().Err(err).Int("index", idx).Msg("unselect during extension")
			}
			delete(e.selected, idx)
		}
	}
	for idx := lo; idx <= hi; idx++ {
		if e.selected[idx] {
			continue
		}
		if err := e.selector.SelectBlock(idx); err != nil {
			e.log.Debug().Err(err).Int("index", idx).Msg("select during extension")
			continue
		}
		e.selected[idx] = true
	}
}

// IsActive reports whether an extension is in progress
func (e *Extender) IsActive() bool {
	return e.anchor >= 0
}

// Range returns the anchor and focus of the current extension
func (e *Extender) Range() (anchor, focus int) {
	return e.anchor, e.focus
}

// Clear cancels the extension. The triggering event, when present, is only
// recorded.
func (e *Extender) Clear(ev tea.Msg) {
	if e.anchor >= 0 {
		e.log.Debug().Str("trigger", describe(ev)).Msg("extension cleared")
	}
	e.anchor = -1
	e.focus = -1
	e.selected = make(map[int]bool)
}

func describe(ev tea.Msg) string {
	switch ev := ev.(type) {
	case nil:
		return "none"
	case tea.KeyMsg:
		return ev.String()
	case tea.MouseMsg:
		return ev.String()
	}
	return fmt.Sprintf("%T", ev)
}
