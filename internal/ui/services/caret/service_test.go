package caret

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockedit/internal/domain"
	"blockedit/internal/logic"
)

func setup(t *testing.T, contents ...string) (*Service, *logic.MemoryBlockStore) {
	t.Helper()
	store := logic.NewMemoryBlockStore()
	for _, c := range contents {
		store.Append(domain.BlockParagraph, c)
	}
	return NewService(store, zerolog.Nop()), store
}

func TestService_SetToBlockFocuses(t *testing.T) {
	svc, store := setup(t, "one", "two")
	target, err := store.BlockByIndex(1)
	require.NoError(t, err)

	svc.SetToBlock(target, PositionEnd)

	assert.Same(t, target, store.CurrentBlock())
	assert.True(t, target.Focused())
	assert.Equal(t, 3, svc.Offset())

	svc.SetToBlock(target, PositionStart)
	assert.Equal(t, 0, svc.Offset())
}

func TestService_SetToBlockUnknownBlock(t *testing.T) {
	svc, store := setup(t, "one")

	svc.SetToBlock(domain.NewBlock("ghost", domain.BlockParagraph, ""), PositionStart)

	assert.Nil(t, store.CurrentBlock())
}

func TestService_InsertContentAtCaret(t *testing.T) {
	svc, store := setup(t, "héllo")
	block := store.Blocks()[0]
	svc.SetToBlock(block, PositionStart)

	svc.SetOffset(2)
	svc.InsertContentAtCaret("XY")

	assert.Equal(t, "héXYllo", block.Content)
	assert.Equal(t, 4, svc.Offset())

	svc.SetOffset(100)
	svc.InsertContentAtCaret("!")
	assert.Equal(t, "héXYllo!", block.Content)
}

func TestService_InsertContentAt(t *testing.T) {
	tests := []struct {
		name       string
		caret      int
		offset     int
		wantText   string
		wantOffset int
	}{
		{"caret after offset moves along", 2, 0, ">>ab", 4},
		{"caret at offset moves along", 0, 0, ">>ab", 2},
		{"caret before offset stays", 1, 2, "ab>>", 1},
		{"offset clamped to the end", 0, 99, "ab>>", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := setup(t, "ab")
			block := store.Blocks()[0]
			svc.SetToBlock(block, PositionStart)
			svc.SetOffset(tt.caret)

			svc.InsertContentAt(block, tt.offset, ">>")

			assert.Equal(t, tt.wantText, block.Content)
			assert.Equal(t, tt.wantOffset, svc.Offset())
		})
	}
}

func TestService_InsertContentAtOtherBlockKeepsCaret(t *testing.T) {
	svc, store := setup(t, "one", "two")
	svc.SetToBlock(store.Blocks()[0], PositionEnd)

	svc.InsertContentAt(store.Blocks()[1], 0, "x")

	assert.Equal(t, "xtwo", store.Blocks()[1].Content)
	assert.Equal(t, 0, store.CurrentIndex())
	assert.Equal(t, 3, svc.Offset())
}

func TestService_InsertWithoutCurrentBlock(t *testing.T) {
	svc, store := setup(t, "one")

	svc.InsertContentAtCaret("a")

	assert.Equal(t, "one", store.Blocks()[0].Content)
	assert.Equal(t, 0, svc.Offset())
}
