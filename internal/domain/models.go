package domain

import "errors"

// BlockKind identifies what a block holds
type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockHeader    BlockKind = "header"
	BlockList      BlockKind = "list"
	BlockImage     BlockKind = "image"
	BlockQuote     BlockKind = "quote"
)

var (
	// ErrOutOfRange is returned when a block index does not name an existing block
	ErrOutOfRange = errors.New("block index out of range")
	// ErrClipboardWriteFailed is returned when the system clipboard rejects a write
	ErrClipboardWriteFailed = errors.New("clipboard write failed")
)

// Block is an independently editable unit of document content
type Block struct {
	ID      string
	Kind    BlockKind
	Content string // markup fragment

	selected bool
	focused  bool
}

// NewBlock creates a block with the given identity and content
func NewBlock(id string, kind BlockKind, content string) *Block {
	return &Block{
		ID:      id,
		Kind:    kind,
		Content: content,
	}
}

// Selected reports whether the block is selected as a unit.
func (b *Block) Selected() bool { return b.selected }

// SetSelected toggles block-level selection. Only the selection services
// call this; everything else reads Selected.
func (b *Block) SetSelected(state bool) { b.selected = state }

// Focused reports whether the block carries the cursor-only focus styling
func (b *Block) Focused() bool { return b.focused }

// SetFocused sets the cursor-only focus styling
func (b *Block) SetFocused(state bool) { b.focused = state }

// IsEmpty reports whether the block has no content
func (b *Block) IsEmpty() bool { return b.Content == "" }

// ParseBlockKind maps a kind name to a BlockKind
func ParseBlockKind(s string) (BlockKind, bool) {
	switch k := BlockKind(s); k {
	case BlockParagraph, BlockHeader, BlockList, BlockImage, BlockQuote:
		return k, true
	}
	return "", false
}
