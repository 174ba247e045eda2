package logic

import (
	"fmt"
	"sync"

	"blockedit/internal/domain"
)

// MemoryBlockStore is an in-memory implementation of BlockStore
type MemoryBlockStore struct {
	mu      sync.RWMutex
	blocks  []*domain.Block
	current int
	nextID  int
}

// NewMemoryBlockStore creates a new memory-based block store
func NewMemoryBlockStore() *MemoryBlockStore {
	return &MemoryBlockStore{
		current: -1,
	}
}

func (s *MemoryBlockStore) newID() string {
	s.nextID++
	return fmt.Sprintf("b%d", s.nextID)
}

// Blocks returns the blocks in document order
func (s *MemoryBlockStore) Blocks() []*domain.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy so callers cannot reorder the store
	result := make([]*domain.Block, len(s.blocks))
	copy(result, s.blocks)
	return result
}

func (s *MemoryBlockStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blocks)
}

func (s *MemoryBlockStore) BlockByIndex(index int) (*domain.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.blocks) {
		return nil, fmt.Errorf("block %d of %d: %w", index, len(s.blocks), domain.ErrOutOfRange)
	}
	return s.blocks[index], nil
}

// IndexOf returns the position of the block with the given id, or -1
func (s *MemoryBlockStore) IndexOf(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, b := range s.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryBlockStore) CurrentBlock() *domain.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current < 0 || s.current >= len(s.blocks) {
		return nil
	}
	return s.blocks[s.current]
}

func (s *MemoryBlockStore) CurrentIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetCurrentIndex moves focus to index. -1 drops focus.
func (s *MemoryBlockStore) SetCurrentIndex(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < -1 || index >= len(s.blocks) {
		return fmt.Errorf("focus block %d of %d: %w", index, len(s.blocks), domain.ErrOutOfRange)
	}
	s.focus(index)
	return nil
}

func (s *MemoryBlockStore) focus(index int) {
	for _, b := range s.blocks {
		b.SetFocused(false)
	}
	s.current = index
	if index >= 0 {
		s.blocks[index].SetFocused(true)
	}
}

// ClearFocused removes the cursor-only focus styling from every block. The
// current index is kept.
func (s *MemoryBlockStore) ClearFocused() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.blocks {
		b.SetFocused(false)
	}
}

// Append adds a block at the end of the document
func (s *MemoryBlockStore) Append(kind domain.BlockKind, content string) *domain.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	block := domain.NewBlock(s.newID(), kind, content)
	s.blocks = append(s.blocks, block)
	return block
}

// InsertBlock inserts an empty paragraph at index, clamped to the document
// bounds, and focuses it when needToFocus is set.
func (s *MemoryBlockStore) InsertBlock(index int, needToFocus bool) *domain.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 {
		index = 0
	}
	if index > len(s.blocks) {
		index = len(s.blocks)
	}

	block := domain.NewBlock(s.newID(), domain.BlockParagraph, "")
	s.blocks = append(s.blocks, nil)
	copy(s.blocks[index+1:], s.blocks[index:])
	s.blocks[index] = block

	if s.current >= index {
		s.current++
	}
	if needToFocus {
		s.focus(index)
	}
	return block
}

// RemoveSelectedBlocks deletes every selected block and returns the index of
// the first one removed, or -1 when nothing was selected. Focus is dropped
// if the current block was removed.
func (s *MemoryBlockStore) RemoveSelectedBlocks() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	first := -1
	kept := s.blocks[:0]
	current := s.current
	for i, b := range s.blocks {
		if !b.Selected() {
			kept = append(kept, b)
			continue
		}
		if first < 0 {
			first = i
		}
		switch {
		case i == s.current:
			current = -1
		case i < s.current && current >= 0:
			current--
		}
	}

	// Clear the tail so removed blocks can be collected
	for i := len(kept); i < len(s.blocks); i++ {
		s.blocks[i] = nil
	}
	s.blocks = kept
	s.current = current

	return first
}
