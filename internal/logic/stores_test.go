package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockedit/internal/domain"
)

func newStore(contents ...string) *MemoryBlockStore {
	s := NewMemoryBlockStore()
	for _, c := range contents {
		s.Append(domain.BlockParagraph, c)
	}
	return s
}

func contents(s *MemoryBlockStore) []string {
	var out []string
	for _, b := range s.Blocks() {
		out = append(out, b.Content)
	}
	return out
}

func TestMemoryBlockStore_AppendAssignsStableIDs(t *testing.T) {
	s := newStore("one", "two")

	blocks := s.Blocks()
	require.Len(t, blocks, 2)
	assert.NotEqual(t, blocks[0].ID, blocks[1].ID)
	assert.Equal(t, 1, s.IndexOf(blocks[1].ID))
	assert.Equal(t, -1, s.IndexOf("missing"))
	assert.Equal(t, -1, s.CurrentIndex())
	assert.Nil(t, s.CurrentBlock())
}

func TestMemoryBlockStore_BlockByIndex(t *testing.T) {
	s := newStore("one")

	b, err := s.BlockByIndex(0)
	require.NoError(t, err)
	assert.Equal(t, "one", b.Content)

	for _, idx := range []int{-1, 1, 42} {
		_, err := s.BlockByIndex(idx)
		assert.ErrorIs(t, err, domain.ErrOutOfRange, "index %d", idx)
	}
}

func TestMemoryBlockStore_SetCurrentIndexMovesFocus(t *testing.T) {
	s := newStore("one", "two")

	require.NoError(t, s.SetCurrentIndex(0))
	require.NoError(t, s.SetCurrentIndex(1))

	blocks := s.Blocks()
	assert.False(t, blocks[0].Focused())
	assert.True(t, blocks[1].Focused())
	assert.Equal(t, "two", s.CurrentBlock().Content)

	assert.ErrorIs(t, s.SetCurrentIndex(2), domain.ErrOutOfRange)
	require.NoError(t, s.SetCurrentIndex(-1))
	assert.Nil(t, s.CurrentBlock())
}

func TestMemoryBlockStore_ClearFocusedKeepsCurrent(t *testing.T) {
	s := newStore("one")
	require.NoError(t, s.SetCurrentIndex(0))

	s.ClearFocused()

	assert.False(t, s.Blocks()[0].Focused())
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestMemoryBlockStore_InsertBlock(t *testing.T) {
	s := newStore("one", "two")
	require.NoError(t, s.SetCurrentIndex(1))

	b := s.InsertBlock(1, false)
	assert.True(t, b.IsEmpty())
	assert.Equal(t, []string{"one", "", "two"}, contents(s))
	assert.Equal(t, 2, s.CurrentIndex(), "current index follows its block")

	focused := s.InsertBlock(99, true)
	assert.Equal(t, 3, s.IndexOf(focused.ID))
	assert.Same(t, focused, s.CurrentBlock())
	assert.True(t, focused.Focused())
}

func TestMemoryBlockStore_RemoveSelectedBlocks(t *testing.T) {
	tests := []struct {
		name        string
		selected    []int
		current     int
		wantIndex   int
		wantContent []string
		wantCurrent int
	}{
		{
			name:        "nothing selected",
			current:     0,
			wantIndex:   -1,
			wantContent: []string{"a", "b", "c", "d"},
			wantCurrent: 0,
		},
		{
			name:        "middle run",
			selected:    []int{1, 2},
			current:     3,
			wantIndex:   1,
			wantContent: []string{"a", "d"},
			wantCurrent: 1,
		},
		{
			name:        "current removed",
			selected:    []int{0, 3},
			current:     3,
			wantIndex:   0,
			wantContent: []string{"b", "c"},
			wantCurrent: -1,
		},
		{
			name:        "all",
			selected:    []int{0, 1, 2, 3},
			current:     2,
			wantIndex:   0,
			wantContent: nil,
			wantCurrent: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore("a", "b", "c", "d")
			require.NoError(t, s.SetCurrentIndex(tt.current))
			for _, i := range tt.selected {
				b, err := s.BlockByIndex(i)
				require.NoError(t, err)
				b.SetSelected(true)
			}

			assert.Equal(t, tt.wantIndex, s.RemoveSelectedBlocks())
			assert.Equal(t, tt.wantContent, contents(s))
			assert.Equal(t, tt.wantCurrent, s.CurrentIndex())
		})
	}
}
