package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"blockedit/internal/domain"
)

// BlockAreaTop is the screen row of the first visible block
const BlockAreaTop = 1

// BlockView is one block as the renderer sees it
type BlockView struct {
	Kind     domain.BlockKind
	Text     string // plain text, tags stripped
	Selected bool
	Focused  bool
}

// TextRange is a highlighted rune range in the edited block
type TextRange struct {
	Start, End int
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Blocks         []BlockView
	ViewportOffset int
	ViewportHeight int
	Editing        bool
	EditView       string // text input rendering of the focused block
	EditText       string
	TextRange      *TextRange
	SelectedCount  int
	Dragging       bool
	StatusMessage  string
	StatusIsError  bool
	ShowHelp       bool
	HelpModel      help.Model
	KeyMap         help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")

	end := state.ViewportOffset + state.ViewportHeight
	if end > len(state.Blocks) {
		end = len(state.Blocks)
	}
	rows := 0
	for i := state.ViewportOffset; i < end; i++ {
		content.WriteString(r.renderBlock(state, state.Blocks[i]))
		content.WriteString("\n")
		rows++
	}
	if len(state.Blocks) == 0 {
		content.WriteString(r.styles.Dim.Render("  empty document, press o to add a block"))
		content.WriteString("\n")
		rows++
	}
	for ; rows < state.ViewportHeight; rows++ {
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(r.renderStatus(state))

	if state.ShowHelp && state.KeyMap != nil {
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpModel.View(state.KeyMap)))
	}

	return content.String()
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("blockedit")
	if !state.Editing {
		return logo
	}
	return fmt.Sprintf("%s  %s", logo, r.styles.ModeEdit.Render("-- EDIT --"))
}

func (r *Renderer) renderBlock(state ViewState, b BlockView) string {
	marker := r.styles.Marker.Render(KindMarker(b.Kind))
	width := state.Width - 4
	if width < 10 {
		width = 10
	}

	if b.Focused && state.Editing {
		return fmt.Sprintf("> %s %s", marker, r.renderEdit(state))
	}

	text := truncate(b.Text, width)
	switch {
	case b.Selected:
		text = r.styles.SelectionBg.Render(text)
	case b.Focused:
		text = r.styles.Focused.Render(text)
	}

	cursor := "  "
	if b.Focused {
		cursor = "> "
	}
	return fmt.Sprintf("%s%s %s", cursor, marker, text)
}

func (r *Renderer) renderEdit(state ViewState) string {
	rng := state.TextRange
	runes := []rune(state.EditText)
	if rng == nil || rng.Start == rng.End || rng.End > len(runes) || rng.Start < 0 {
		return state.EditView
	}
	return string(runes[:rng.Start]) +
		r.styles.TextRange.Render(string(runes[rng.Start:rng.End])) +
		string(runes[rng.End:])
}

func (r *Renderer) renderStatus(state ViewState) string {
	if state.StatusMessage != "" {
		if state.StatusIsError {
			return r.styles.StatusError.Render(state.StatusMessage)
		}
		return r.styles.StatusSuccess.Render(state.StatusMessage)
	}

	parts := []string{fmt.Sprintf("%d blocks", len(state.Blocks))}
	if state.SelectedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", state.SelectedCount))
	}
	if state.Dragging {
		parts = append(parts, "dragging")
	}
	return r.styles.Status.Render(strings.Join(parts, " | "))
}

func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
