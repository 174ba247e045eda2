package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockedit/internal/config"
	"blockedit/internal/domain"
	"blockedit/internal/logic"
)

func TestSeedBlocks(t *testing.T) {
	store := logic.NewMemoryBlockStore()

	seedBlocks(store, []string{"header:<h1>Title</h1>", "plain text", "note: not a kind"})

	blocks := store.Blocks()
	require.Len(t, blocks, 3)
	assert.Equal(t, domain.BlockHeader, blocks[0].Kind)
	assert.Equal(t, "<h1>Title</h1>", blocks[0].Content)
	assert.Equal(t, domain.BlockParagraph, blocks[1].Kind)
	assert.Equal(t, domain.BlockParagraph, blocks[2].Kind)
	assert.Equal(t, "note: not a kind", blocks[2].Content)
}

func TestSeedBlocks_EmptyDocumentGetsOneBlock(t *testing.T) {
	store := logic.NewMemoryBlockStore()

	seedBlocks(store, nil)

	require.Equal(t, 1, store.Len())
	assert.Equal(t, "", store.Blocks()[0].Content)
}

func TestApplyFlags(t *testing.T) {
	cfg := config.DefaultConfig()

	err := applyFlags(cfg, &flags{
		LogLevel:    "debug",
		LogFile:     "/tmp/blockedit.log",
		Mode:        config.SelectAllProgressive,
		NoClipboard: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/blockedit.log", cfg.Log.File)
	assert.Equal(t, config.SelectAllProgressive, cfg.Selection.SelectAllMode)
	assert.False(t, cfg.Clipboard.Enabled)
}

func TestApplyFlags_InvalidMode(t *testing.T) {
	cfg := config.DefaultConfig()

	err := applyFlags(cfg, &flags{Mode: "sideways"})

	assert.Error(t, err)
}

func TestApplyFlags_EmptyKeepsConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	require.NoError(t, applyFlags(cfg, &flags{}))

	assert.Equal(t, config.DefaultConfig(), cfg)
}
