package logic

import "blockedit/internal/domain"

// BlockStore is the ordered block collection the editor works on. It knows
// which block is current (has focus); -1 means none.
type BlockStore interface {
	Blocks() []*domain.Block
	Len() int
	BlockByIndex(index int) (*domain.Block, error)
	IndexOf(id string) int
	CurrentBlock() *domain.Block
	CurrentIndex() int
	SetCurrentIndex(index int) error
	ClearFocused()
	Append(kind domain.BlockKind, content string) *domain.Block
	InsertBlock(index int, needToFocus bool) *domain.Block
	RemoveSelectedBlocks() int
}
