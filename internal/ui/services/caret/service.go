package caret

import (
	"github.com/rs/zerolog"

	"blockedit/internal/domain"
	"blockedit/internal/logic"
)

// Position picks where SetToBlock places the caret
type Position int

const (
	PositionStart Position = iota
	PositionEnd
)

// Service places the caret and inserts text at it. The caret lives in the
// store's current block; offset is in runes.
type Service struct {
	store  logic.BlockStore
	offset int
	log    zerolog.Logger
}

// NewService creates a caret bound to store
func NewService(store logic.BlockStore, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("cmp", "caret").Logger(),
	}
}

// SetToBlock focuses block and puts the caret at pos
func (s *Service) SetToBlock(block *domain.Block, pos Position) {
	index := s.store.IndexOf(block.ID)
	if index < 0 {
		s.log.Debug().Str("block", block.ID).Msg("caret target not in store")
		return
	}
	if err := s.store.SetCurrentIndex(index); err != nil {
		s.log.Debug().Err(err).Msg("set caret")
		return
	}

	s.offset = 0
	if pos == PositionEnd {
		s.offset = len([]rune(block.Content))
	}
}

// InsertContentAtCaret inserts text at the caret in the current block and
// moves the caret past it
func (s *Service) InsertContentAtCaret(text string) {
	block := s.store.CurrentBlock()
	if block == nil {
		s.log.Debug().Msg("insert with no current block")
		return
	}
	s.InsertContentAt(block, s.clamp(len([]rune(block.Content))), text)
}

// InsertContentAt inserts text into block at offset. A caret in the same
// block at or after offset stays behind the inserted text.
func (s *Service) InsertContentAt(block *domain.Block, offset int, text string) {
	runes := []rune(block.Content)
	if offset < 0 {
		offset = 0
	}
	if offset > len(runes) {
		offset = len(runes)
	}
	inserted := []rune(text)

	out := make([]rune, 0, len(runes)+len(inserted))
	out = append(out, runes[:offset]...)
	out = append(out, inserted...)
	out = append(out, runes[offset:]...)
	block.Content = string(out)

	current := s.store.CurrentBlock()
	if current == nil || current.ID != block.ID {
		return
	}
	if caret := s.clamp(len(runes)); caret >= offset {
		s.offset = caret + len(inserted)
	}
}

// Offset returns the caret offset in the current block
func (s *Service) Offset() int {
	if block := s.store.CurrentBlock(); block != nil {
		return s.clamp(len([]rune(block.Content)))
	}
	return 0
}

// SetOffset moves the caret inside the current block
func (s *Service) SetOffset(offset int) {
	s.offset = offset
}

func (s *Service) clamp(n int) int {
	switch {
	case s.offset < 0:
		return 0
	case s.offset > n:
		return n
	}
	return s.offset
}
