package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// keyMap lists the bindings shown in the help footer and the help pager.
// Shortcut bindings come from the registry so remapped keys show up.
type keyMap struct {
	Shortcuts []key.Binding
	Navigate  key.Binding
	Edit      key.Binding
	NewBlock  key.Binding
	Extend    key.Binding
	TextRange key.Binding
	Remove    key.Binding
	Clear     key.Binding
	Preview   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap(shortcuts []key.Binding) keyMap {
	return keyMap{
		Shortcuts: shortcuts,
		Navigate:  key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("↑/↓", "move")),
		Edit:      key.NewBinding(key.WithKeys("enter", "i"), key.WithHelp("enter", "edit block")),
		NewBlock:  key.NewBinding(key.WithKeys("o", "O"), key.WithHelp("o/O", "new block")),
		Extend:    key.NewBinding(key.WithKeys("shift+up", "shift+down"), key.WithHelp("shift+↑/↓", "extend selection")),
		TextRange: key.NewBinding(key.WithKeys("shift+left", "shift+right"), key.WithHelp("shift+←/→", "select text")),
		Remove:    key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("del", "remove selected")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),
		Preview:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview markup")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	out := make([]key.Binding, 0, len(k.Shortcuts)+4)
	out = append(out, k.Shortcuts...)
	return append(out, k.Edit, k.Extend, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Navigate, k.Edit, k.NewBlock},
		append(append([]key.Binding{}, k.Shortcuts...), k.Extend, k.TextRange),
		{k.Remove, k.Clear, k.Preview},
		{k.Help, k.Quit},
	}
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent generates the help page shown in the pager
func (r *HelpRenderer) RenderHelpContent(keys keyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("blockedit Help"))
	help.WriteString("\n")

	section := func(name string, bindings ...key.Binding) {
		help.WriteString(sectionStyle.Render(name))
		help.WriteString("\n")
		for _, b := range bindings {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
		}
		help.WriteString("\n")
	}

	section("Navigation", keys.Navigate, keys.Edit, keys.NewBlock)
	section("Block selection", append(append([]key.Binding{}, keys.Shortcuts...), keys.Extend, keys.Remove, keys.Clear)...)
	section("Text", keys.TextRange)

	mouseStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString(mouseStyle.Render("  Drag across blocks to select them; shift+click extends from the focused block."))
	help.WriteString("\n")
	help.WriteString(mouseStyle.Render("  Typing while blocks are selected replaces them with what you type."))
	help.WriteString("\n")

	section("Other", keys.Preview, keys.Help, keys.Quit)

	return help.String()
}
