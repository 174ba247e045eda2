package selection

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"blockedit/internal/domain"
	"blockedit/internal/eventbus"
	"blockedit/internal/logic"
	"blockedit/internal/sanitize"
	"blockedit/internal/ui/services/caret"
	"blockedit/internal/ui/services/shortcuts"
	"blockedit/internal/ui/services/textsel"
)

// ErrAlreadyPrepared is returned by a second Prepare call
var ErrAlreadyPrepared = errors.New("block selection already prepared")

// Shortcut names registered by Prepare
const (
	ShortcutSelectAll = "select-all"
	ShortcutCopy      = "copy-blocks"
)

// Service owns block-level selection: which blocks are selected as a unit,
// the select-all shortcut, reconciling with text, drag and shift selection,
// replacing the selection when the user types over it, and copying it.
//
// The selected flags live on the store's blocks; every derived property is
// recomputed from them on access. All methods must be called from the loop
// that owns the editor state.
type Service struct {
	store logic.BlockStore
	deps  Collaborators
	opts  Options
	bus   eventbus.EventBus
	log   zerolog.Logger

	snapshot *textsel.Snapshot
	prepared bool
}

// NewService creates the selection service over store
func NewService(store logic.BlockStore, deps Collaborators, bus eventbus.EventBus, opts Options, log zerolog.Logger) *Service {
	deps.fill()
	if deps.Sanitizer == nil {
		deps.Sanitizer = sanitize.New()
	}
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if len(opts.SelectAllKeys) == 0 {
		opts.SelectAllKeys = DefaultOptions().SelectAllKeys
	}
	if len(opts.CopyKeys) == 0 {
		opts.CopyKeys = DefaultOptions().CopyKeys
	}

	return &Service{
		store: store,
		deps:  deps,
		opts:  opts,
		bus:   bus,
		log:   log.With().Str("cmp", "selection").Logger(),
	}
}

// Prepare registers the select-all and copy shortcuts. It runs once, at
// editor startup.
func (s *Service) Prepare() error {
	if s.prepared {
		return ErrAlreadyPrepared
	}
	if s.deps.Shortcuts == nil {
		return errors.New("prepare block selection: no shortcut registry")
	}

	err := s.deps.Shortcuts.Add(shortcuts.Shortcut{
		Name: ShortcutSelectAll,
		Binding: key.NewBinding(
			key.WithKeys(s.opts.SelectAllKeys...),
			key.WithHelp(s.opts.SelectAllKeys[0], "select all"),
		),
		Handler: s.handleSelectAll,
	})
	if err != nil {
		return fmt.Errorf("prepare block selection: %w", err)
	}

	err = s.deps.Shortcuts.Add(shortcuts.Shortcut{
		Name: ShortcutCopy,
		Binding: key.NewBinding(
			key.WithKeys(s.opts.CopyKeys...),
			key.WithHelp(s.opts.CopyKeys[0], "copy blocks"),
		),
		Handler: s.handleCopy,
	})
	if err != nil {
		return fmt.Errorf("prepare block selection: %w", err)
	}

	s.snapshot = nil
	s.prepared = true
	return nil
}

// AllBlocksSelected reports whether every block is selected. An empty
// document counts as fully selected.
func (s *Service) AllBlocksSelected() bool {
	for _, b := range s.store.Blocks() {
		if !b.Selected() {
			return false
		}
	}
	return true
}

// SetAllBlocksSelected sets every block's selected flag to state
func (s *Service) SetAllBlocksSelected(state bool) {
	for _, b := range s.store.Blocks() {
		b.SetSelected(state)
	}
}

// AnyBlockSelected reports whether at least one block is selected
func (s *Service) AnyBlockSelected() bool {
	for _, b := range s.store.Blocks() {
		if b.Selected() {
			return true
		}
	}
	return false
}

// SelectedBlocks returns the selected blocks in document order
func (s *Service) SelectedBlocks() []*domain.Block {
	var out []*domain.Block
	for _, b := range s.store.Blocks() {
		if b.Selected() {
			out = append(out, b)
		}
	}
	return out
}

// handleSelectAll runs on the select-all shortcut. Without a focused block
// the key is left alone, so several editors can share one terminal.
func (s *Service) handleSelectAll(msg tea.KeyMsg) bool {
	current := s.store.CurrentBlock()
	if current == nil {
		return false
	}

	s.deps.Rect.Clear()

	if s.opts.Mode == SelectAllProgressive && !current.Selected() {
		if err := s.SelectBlockByIndex(nil); err != nil {
			s.log.Debug().Err(err).Msg("select current block")
		}
		return true
	}

	s.SetAllBlocksSelected(true)
	s.bus.Publish(domain.AllBlocksSelectedEvent{Count: s.store.Len()})
	return true
}

func (s *Service) handleCopy(msg tea.KeyMsg) bool {
	if !s.AnyBlockSelected() {
		return false
	}
	if err := s.CopySelectedBlocks(); err != nil {
		s.log.Error().Err(err).Msg("copy selected blocks")
		s.bus.Publish(domain.ErrorEvent{Message: "copy failed", Err: err})
	}
	return true
}

// resolve returns the block at index, or the current block when index is nil
func (s *Service) resolve(index *int) (*domain.Block, int, error) {
	i := s.store.CurrentIndex()
	if index != nil {
		i = *index
	} else if i < 0 {
		return nil, -1, fmt.Errorf("no current block: %w", domain.ErrOutOfRange)
	}

	block, err := s.store.BlockByIndex(i)
	if err != nil {
		return nil, -1, err
	}
	return block, i, nil
}

// SelectBlockByIndex selects the block at index, or the current block when
// index is nil. The text selection is saved and then removed so it does not
// compete with the block highlight.
func (s *Service) SelectBlockByIndex(index *int) error {
	block, i, err := s.resolve(index)
	if err != nil {
		return err
	}

	s.store.ClearFocused()

	snap := s.deps.Native.Save()
	s.snapshot = &snap
	s.deps.Native.RemoveAllRanges()

	block.SetSelected(true)
	s.bus.Publish(domain.BlockSelectedEvent{BlockID: block.ID, Index: i})
	return nil
}

// UnSelectBlockByIndex unselects the block at index, or the current block
// when index is nil
func (s *Service) UnSelectBlockByIndex(index *int) error {
	block, i, err := s.resolve(index)
	if err != nil {
		return err
	}

	block.SetSelected(false)
	s.bus.Publish(domain.BlockUnselectedEvent{BlockID: block.ID, Index: i})
	return nil
}

// SelectBlock selects the block at index
func (s *Service) SelectBlock(index int) error {
	return s.SelectBlockByIndex(&index)
}

// UnSelectBlock unselects the block at index
func (s *Service) UnSelectBlock(index int) error {
	return s.UnSelectBlockByIndex(&index)
}

// ClearSelection drops block selection. ev is the input that caused it and
// may be nil. When ev is a printable key and blocks are selected, the
// selected blocks are replaced by a fresh block that receives the typed
// text once it is mounted. When restore is set the text selection saved by
// the last SelectBlockByIndex comes back.
func (s *Service) ClearSelection(ev tea.Msg, restore bool) {
	if text, ok := PrintableKey(ev); ok && s.AnyBlockSelected() {
		s.replaceSelection(text)
	}

	// Must run after the replacement: it inspects the flags this would drop
	s.deps.CrossBlock.Clear(ev)

	rectActive := s.deps.Rect.IsActive()
	if !s.AnyBlockSelected() || rectActive {
		s.deps.Rect.Clear()
		if rectActive && s.AnyBlockSelected() {
			s.SetAllBlocksSelected(false)
			s.bus.Publish(domain.SelectionClearedEvent{})
		}
		return
	}

	restored := false
	if restore && s.snapshot != nil {
		s.deps.Native.Restore(*s.snapshot)
		restored = true
	}

	s.SetAllBlocksSelected(false)
	s.bus.Publish(domain.SelectionClearedEvent{Restored: restored})
}

func (s *Service) replaceSelection(text string) {
	removed := len(s.SelectedBlocks())
	index := s.store.RemoveSelectedBlocks()
	block := s.store.InsertBlock(index, true)
	s.deps.Caret.SetToBlock(block, caret.PositionStart)

	// Keys typed before the task runs land after the caret, so the first
	// key goes in at the offset where the block was created
	id, offset := block.ID, s.deps.Caret.Offset()
	s.deps.Scheduler.Schedule(s.opts.InsertDelay, func() {
		s.insertDeferred(id, offset, text)
	})

	s.log.Debug().Int("removed", removed).Int("index", index).Str("block", id).Msg("selection replaced by typing")
	s.bus.Publish(domain.BlocksReplacedEvent{Removed: removed, Index: index, BlockID: id, Text: text})
}

// insertDeferred lands typed text at offset in the replacement block,
// provided the block survived until the task ran
func (s *Service) insertDeferred(id string, offset int, text string) {
	index := s.store.IndexOf(id)
	if index < 0 {
		s.log.Debug().Str("block", id).Msg("replacement block gone, dropping typed text")
		return
	}

	block, err := s.store.BlockByIndex(index)
	if err != nil {
		return
	}
	if current := s.store.CurrentBlock(); current == nil || current.ID != id {
		s.deps.Caret.SetToBlock(block, caret.PositionEnd)
	}
	s.deps.Caret.InsertContentAt(block, offset, text)
}

// RemoveSelectedBlocks deletes the selected blocks and leaves a focused empty
// block in their place. It reports whether anything was selected.
func (s *Service) RemoveSelectedBlocks() bool {
	removed := len(s.SelectedBlocks())
	if removed == 0 {
		return false
	}

	index := s.store.RemoveSelectedBlocks()
	s.deps.CrossBlock.Clear(nil)
	s.deps.Rect.Clear()

	block := s.store.InsertBlock(index, true)
	s.deps.Caret.SetToBlock(block, caret.PositionStart)

	s.bus.Publish(domain.BlocksRemovedEvent{Removed: removed, Index: index})
	return true
}

// CopySelectedBlocks writes the selected blocks to the clipboard as one
// markup payload: each block sanitized to the copy allow-list and wrapped in
// a paragraph, in document order
func (s *Service) CopySelectedBlocks() error {
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}

	selected := s.SelectedBlocks()
	for _, block := range selected {
		clean := s.deps.Sanitizer.Clean(block.Content, sanitize.CopyConfig)
		if clean != block.Content {
			s.log.Debug().Str("block", block.ID).Msg("markup stripped to allow-list")
		}

		fragment := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
		setInnerHTML(fragment, clean)
		container.AppendChild(fragment)
	}

	payload, err := innerHTML(container)
	if err != nil {
		return fmt.Errorf("render copied blocks: %w", err)
	}

	if s.deps.Clipboard == nil {
		return fmt.Errorf("%w: no clipboard configured", domain.ErrClipboardWriteFailed)
	}
	if err := s.deps.Clipboard.Write(payload); err != nil {
		if !errors.Is(err, domain.ErrClipboardWriteFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrClipboardWriteFailed, err)
		}
		return err
	}

	s.bus.Publish(domain.BlocksCopiedEvent{Count: len(selected), Bytes: len(payload)})
	return nil
}

func setInnerHTML(n *html.Node, markup string) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: markup})
		return
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
}

func innerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// PrintableKey returns the text a key event would type, if any
func PrintableKey(ev tea.Msg) (string, bool) {
	k, ok := ev.(tea.KeyMsg)
	if !ok || k.Alt || k.Paste {
		return "", false
	}

	switch k.Type {
	case tea.KeyRunes:
		if len(k.Runes) == 0 {
			return "", false
		}
		return string(k.Runes), true
	case tea.KeySpace:
		return " ", true
	}
	return "", false
}
