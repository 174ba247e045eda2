package coordinator

import (
	"github.com/rs/zerolog"

	"blockedit/internal/eventbus"
	"blockedit/internal/logic"
	"blockedit/internal/ui/services/caret"
	"blockedit/internal/ui/services/crossblock"
	"blockedit/internal/ui/services/navigation"
	"blockedit/internal/ui/services/rect"
	"blockedit/internal/ui/services/selection"
	"blockedit/internal/ui/services/shortcuts"
	"blockedit/internal/ui/services/textsel"
)

// Deps are the pieces supplied from outside the UI
type Deps struct {
	Store     logic.BlockStore
	Bus       eventbus.EventBus
	Sanitizer selection.Sanitizer
	Clipboard selection.Clipboard
	Scheduler selection.Scheduler
	Options   selection.Options
	Log       zerolog.Logger
}

// Coordinator manages all UI services and their interactions
type Coordinator struct {
	// Services
	Navigation *navigation.Service
	Selection  *selection.Service
	Shortcuts  *shortcuts.Registry
	Native     *textsel.Bridge
	Rect       *rect.Tracker
	CrossBlock *crossblock.Extender
	Caret      *caret.Service

	// Dependencies
	bus   eventbus.EventBus
	store logic.BlockStore
	log   zerolog.Logger
}

// NewCoordinator creates a new coordinator with all services
func NewCoordinator(deps Deps) *Coordinator {
	bus := deps.Bus
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	log := deps.Log

	c := &Coordinator{
		Navigation: navigation.NewService(deps.Store, bus, log),
		Shortcuts:  shortcuts.NewRegistry(log),
		Native:     textsel.NewBridge(),
		Rect:       rect.NewTracker(log),
		CrossBlock: crossblock.NewExtender(deps.Store, log),
		Caret:      caret.NewService(deps.Store, log),
		bus:        bus,
		store:      deps.Store,
		log:        log.With().Str("cmp", "coordinator").Logger(),
	}

	c.Selection = selection.NewService(deps.Store, selection.Collaborators{
		Shortcuts:  c.Shortcuts,
		Native:     c.Native,
		Rect:       c.Rect,
		CrossBlock: c.CrossBlock,
		Caret:      c.Caret,
		Sanitizer:  deps.Sanitizer,
		Clipboard:  deps.Clipboard,
		Scheduler:  deps.Scheduler,
	}, bus, deps.Options, log)

	// Wire up service dependencies
	c.wireServices()

	return c
}

// wireServices connects services with their dependencies
func (c *Coordinator) wireServices() {
	// Drag and shift gestures change flags only through the selection
	c.Rect.SetSelector(c.Selection)
	c.CrossBlock.SetSelector(c.Selection)
}

// Prepare registers shortcuts. Call once before the first key arrives.
func (c *Coordinator) Prepare() error {
	return c.Selection.Prepare()
}

// SetBlockOrigin tells the drag tracker which screen row holds the first
// visible block
func (c *Coordinator) SetBlockOrigin(top int) {
	c.Rect.SetRowFunction(func(y int) int {
		return c.Navigation.IndexAtRow(y - top)
	})
}

// BlockAtRow maps a screen row to a block index, or -1
func (c *Coordinator) BlockAtRow(top, y int) int {
	return c.Navigation.IndexAtRow(y - top)
}

// SetViewportHeight updates viewport height across services
func (c *Coordinator) SetViewportHeight(height int) {
	c.Navigation.SetViewportHeight(height)
}

// GetCurrentIndex returns the focused block index, or -1
func (c *Coordinator) GetCurrentIndex() int {
	return c.store.CurrentIndex()
}

// Focus moves focus to index and drops any text range left in the
// previous block
func (c *Coordinator) Focus(index int) {
	before := c.store.CurrentIndex()
	c.Navigation.MoveToIndex(index)
	if c.store.CurrentIndex() != before {
		c.Native.RemoveAllRanges()
	}
}

// Store returns the block store the services share
func (c *Coordinator) Store() logic.BlockStore {
	return c.store
}
