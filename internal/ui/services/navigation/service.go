package navigation

import (
	"github.com/rs/zerolog"

	"blockedit/internal/domain"
	"blockedit/internal/eventbus"
	"blockedit/internal/logic"
)

// ReservedRows is the number of screen rows not available to blocks
// (title, status line, help)
const ReservedRows = 4

// Service moves focus between blocks and keeps the focused block inside
// the viewport
type Service struct {
	state *State
	store logic.BlockStore
	bus   eventbus.EventBus
	log   zerolog.Logger
}

// NewService creates a new navigation service
func NewService(store logic.BlockStore, bus eventbus.EventBus, log zerolog.Logger) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Service{
		state: &State{
			ViewportHeight: 20, // until the first resize
		},
		store: store,
		bus:   bus,
		log:   log.With().Str("cmp", "navigation").Logger(),
	}
}

// GetViewportOffset returns the index of the first visible block
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns how many blocks fit on screen
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight updates viewport height from the terminal height
func (s *Service) SetViewportHeight(height int) {
	effectiveHeight := height - ReservedRows
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}
	s.state.ViewportHeight = effectiveHeight
	s.ensureVisible()
}

// Navigate moves focus in a direction. With no focused block any
// direction focuses the first block.
func (s *Service) Navigate(direction Direction) {
	if s.store.Len() == 0 {
		return
	}

	cursor := s.store.CurrentIndex()
	if cursor < 0 {
		s.MoveToIndex(0)
		return
	}

	pageSize := s.state.ViewportHeight - 1
	if pageSize < 1 {
		pageSize = 1
	}

	switch direction {
	case DirectionUp:
		cursor--
	case DirectionDown:
		cursor++
	case DirectionPageUp:
		cursor -= pageSize
		s.state.ViewportOffset -= pageSize
		if s.state.ViewportOffset < 0 {
			s.state.ViewportOffset = 0
		}
	case DirectionPageDown:
		cursor += pageSize
	case DirectionHome:
		cursor = 0
		s.state.ViewportOffset = 0
	case DirectionEnd:
		cursor = s.store.Len() - 1
	}

	s.MoveToIndex(cursor)
}

// MoveToIndex focuses the block at index, clamped to the document
func (s *Service) MoveToIndex(index int) {
	old := s.store.CurrentIndex()
	index = s.clampIndex(index)
	if index < 0 {
		return
	}

	if index != old {
		if err := s.store.SetCurrentIndex(index); err != nil {
			s.log.Debug().Err(err).Int("index", index).Msg("move focus")
			return
		}
		s.bus.Publish(domain.FocusMovedEvent{OldIndex: old, NewIndex: index})
	}
	s.ensureVisible()
}

// Sync scrolls the viewport to the focused block after focus moved
// elsewhere (caret placement, replacement of selected blocks)
func (s *Service) Sync() {
	s.ensureVisible()
}

// IndexAtRow maps a row inside the block area to a block index, or -1
func (s *Service) IndexAtRow(row int) int {
	if row < 0 || row >= s.state.ViewportHeight {
		return -1
	}
	index := s.state.ViewportOffset + row
	if index >= s.store.Len() {
		return -1
	}
	return index
}

func (s *Service) clampIndex(index int) int {
	last := s.store.Len() - 1
	if index > last {
		index = last
	}
	if index < 0 && last >= 0 {
		index = 0
	}
	return index
}

func (s *Service) ensureVisible() {
	if maxOffset := s.store.Len() - s.state.ViewportHeight; s.state.ViewportOffset > maxOffset {
		s.state.ViewportOffset = maxOffset
	}
	if s.state.ViewportOffset < 0 {
		s.state.ViewportOffset = 0
	}

	cursor := s.store.CurrentIndex()
	if cursor < 0 {
		return
	}
	if cursor < s.state.ViewportOffset {
		s.state.ViewportOffset = cursor
	} else if cursor >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = cursor - s.state.ViewportHeight + 1
	}
}
