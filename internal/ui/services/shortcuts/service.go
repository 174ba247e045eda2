package shortcuts

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// Handler runs when a shortcut's key fires. It returns true when it consumed
// the key; an unconsumed key continues to normal input handling.
type Handler func(msg tea.KeyMsg) bool

// Shortcut binds a key combination to a handler
type Shortcut struct {
	Name    string
	Binding key.Binding
	Handler Handler
}

// Registry holds the editor-wide shortcuts
type Registry struct {
	shortcuts []Shortcut
	log       zerolog.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		log: log.With().Str("cmp", "shortcuts").Logger(),
	}
}

// Add registers a shortcut. Names and keys must be unique.
func (r *Registry) Add(s Shortcut) error {
	if s.Name == "" {
		return errors.New("shortcut name is required")
	}
	if s.Handler == nil {
		return fmt.Errorf("shortcut %s: handler is required", s.Name)
	}
	if len(s.Binding.Keys()) == 0 {
		return fmt.Errorf("shortcut %s: no keys bound", s.Name)
	}

	for _, existing := range r.shortcuts {
		if existing.Name == s.Name {
			return fmt.Errorf("shortcut %s already registered", s.Name)
		}
		for _, k := range s.Binding.Keys() {
			for _, ek := range existing.Binding.Keys() {
				if k == ek {
					return fmt.Errorf("shortcut %s: key %q already bound to %s", s.Name, k, existing.Name)
				}
			}
		}
	}

	r.shortcuts = append(r.shortcuts, s)
	r.log.Debug().Str("name", s.Name).Strs("keys", s.Binding.Keys()).Msg("shortcut registered")
	return nil
}

// Remove unregisters a shortcut by name
func (r *Registry) Remove(name string) {
	for i, s := range r.shortcuts {
		if s.Name == name {
			r.shortcuts = append(r.shortcuts[:i:i], r.shortcuts[i+1:]...)
			return
		}
	}
}

// Dispatch runs the shortcut bound to msg, if any, and reports whether the
// key was consumed
func (r *Registry) Dispatch(msg tea.KeyMsg) bool {
	for _, s := range r.shortcuts {
		if !key.Matches(msg, s.Binding) {
			continue
		}
		consumed := s.Handler(msg)
		r.log.Debug().Str("name", s.Name).Bool("consumed", consumed).Msg("shortcut fired")
		return consumed
	}
	return false
}

// Bindings returns the registered bindings in registration order
func (r *Registry) Bindings() []key.Binding {
	out := make([]key.Binding, 0, len(r.shortcuts))
	for _, s := range r.shortcuts {
		out = append(out, s.Binding)
	}
	return out
}
