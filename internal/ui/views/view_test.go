package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockedit/internal/domain"
)

func TestRender_LayoutRows(t *testing.T) {
	r := NewRenderer()
	state := ViewState{
		Width:          40,
		Height:         8,
		ViewportHeight: 3,
		Blocks: []BlockView{
			{Kind: domain.BlockHeader, Text: "Title"},
			{Kind: domain.BlockParagraph, Text: "first", Focused: true},
			{Kind: domain.BlockList, Text: "item", Selected: true},
			{Kind: domain.BlockParagraph, Text: "hidden"},
		},
		SelectedCount: 1,
	}

	lines := strings.Split(r.Render(state), "\n")

	require.GreaterOrEqual(t, len(lines), BlockAreaTop+3)
	assert.Contains(t, lines[BlockAreaTop], "Title")
	assert.Contains(t, lines[BlockAreaTop+1], "> ")
	assert.Contains(t, lines[BlockAreaTop+2], "item")
	assert.NotContains(t, strings.Join(lines, "\n"), "hidden")
	assert.Contains(t, lines[len(lines)-1], "1 selected")
}

func TestRender_StatusMessage(t *testing.T) {
	r := NewRenderer()
	out := r.Render(ViewState{Width: 40, ViewportHeight: 1, StatusMessage: "copy failed", StatusIsError: true})
	assert.Contains(t, out, "copy failed")
	assert.Contains(t, out, "empty document")
}

func TestRender_TextRangeInEditedBlock(t *testing.T) {
	r := NewRenderer()
	state := ViewState{
		Width:          40,
		ViewportHeight: 1,
		Editing:        true,
		EditText:       "hello",
		EditView:       "hello",
		TextRange:      &TextRange{Start: 1, End: 3},
		Blocks:         []BlockView{{Kind: domain.BlockParagraph, Text: "hello", Focused: true}},
	}

	out := r.Render(state)

	assert.Contains(t, out, "EDIT")
	assert.Contains(t, out, "h")
	assert.Contains(t, out, "lo")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "a b", truncate("a\nb", 10))
}
