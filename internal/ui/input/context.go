package input

import (
	"blockedit/internal/logic"
	"blockedit/internal/ui/services/selection"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Store     logic.BlockStore
	Selection *selection.Service
}

// CurrentIndex returns the focused block index, or -1
func (c *ModelContext) CurrentIndex() int {
	return c.Store.CurrentIndex()
}

// BlockCount returns the number of blocks
func (c *ModelContext) BlockCount() int {
	return c.Store.Len()
}

// AnyBlockSelected returns true if any block is selected
func (c *ModelContext) AnyBlockSelected() bool {
	return c.Selection.AnyBlockSelected()
}

// SelectedCount returns the number of selected blocks
func (c *ModelContext) SelectedCount() int {
	return len(c.Selection.SelectedBlocks())
}
