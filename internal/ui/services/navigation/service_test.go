package navigation

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockedit/internal/domain"
	"blockedit/internal/eventbus"
	"blockedit/internal/logic"
)

type recordingBus struct {
	events []domain.DomainEvent
}

func (r *recordingBus) Publish(e domain.DomainEvent) { r.events = append(r.events, e) }
func (r *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}

func newService(t *testing.T, blocks, height int) (*Service, *logic.MemoryBlockStore, *recordingBus) {
	t.Helper()
	store := logic.NewMemoryBlockStore()
	for i := 0; i < blocks; i++ {
		store.Append(domain.BlockParagraph, fmt.Sprintf("block %d", i))
	}
	bus := &recordingBus{}
	svc := NewService(store, bus, zerolog.Nop())
	svc.SetViewportHeight(height + ReservedRows)
	return svc, store, bus
}

func TestNavigate_FocusesFirstBlockWhenUnfocused(t *testing.T) {
	svc, store, bus := newService(t, 3, 10)

	svc.Navigate(DirectionDown)

	assert.Equal(t, 0, store.CurrentIndex())
	require.Len(t, bus.events, 1)
	assert.Equal(t, domain.FocusMovedEvent{OldIndex: -1, NewIndex: 0}, bus.events[0])
}

func TestNavigate_Directions(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		direction Direction
		want      int
	}{
		{"down", 2, DirectionDown, 3},
		{"up", 2, DirectionUp, 1},
		{"up at top", 0, DirectionUp, 0},
		{"down at bottom", 9, DirectionDown, 9},
		{"page down", 0, DirectionPageDown, 3},
		{"page up", 8, DirectionPageUp, 5},
		{"home", 7, DirectionHome, 0},
		{"end", 1, DirectionEnd, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newService(t, 10, 4)
			svc.MoveToIndex(tt.start)

			svc.Navigate(tt.direction)

			assert.Equal(t, tt.want, store.CurrentIndex())
			offset := svc.GetViewportOffset()
			assert.LessOrEqual(t, offset, tt.want)
			assert.Greater(t, offset+svc.GetViewportHeight(), tt.want, "focused block stays visible")
		})
	}
}

func TestNavigate_EmptyStore(t *testing.T) {
	svc, store, bus := newService(t, 0, 4)

	svc.Navigate(DirectionDown)

	assert.Equal(t, -1, store.CurrentIndex())
	assert.Empty(t, bus.events)
}

func TestIndexAtRow(t *testing.T) {
	svc, _, _ := newService(t, 10, 4)
	svc.MoveToIndex(6)
	require.Equal(t, 3, svc.GetViewportOffset())

	assert.Equal(t, 3, svc.IndexAtRow(0))
	assert.Equal(t, 6, svc.IndexAtRow(3))
	assert.Equal(t, -1, svc.IndexAtRow(4))
	assert.Equal(t, -1, svc.IndexAtRow(-1))
}

func TestSync_AfterExternalFocusChange(t *testing.T) {
	svc, store, _ := newService(t, 10, 4)
	svc.MoveToIndex(0)

	require.NoError(t, store.SetCurrentIndex(8))
	svc.Sync()

	assert.Equal(t, 5, svc.GetViewportOffset())
}

func TestSetViewportHeight_Minimum(t *testing.T) {
	svc, _, _ := newService(t, 3, 4)
	svc.SetViewportHeight(1)
	assert.Equal(t, 1, svc.GetViewportHeight())
}
