// Package clipboard writes copied block markup to the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	"blockedit/internal/domain"
)

// Clipboard accepts a single text payload per copy
type Clipboard interface {
	Write(text string) error
}

// System writes to the platform clipboard
type System struct{}

// NewSystem returns the platform clipboard
func NewSystem() *System {
	return &System{}
}

// Unsupported reports whether no clipboard utility was found
func (s *System) Unsupported() bool {
	return clipboard.Unsupported
}

func (s *System) Write(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrClipboardWriteFailed, err)
	}
	return nil
}

// Memory is an in-process clipboard used when the system one is disabled
type Memory struct {
	mu      sync.Mutex
	content string
	writes  int
	err     error
}

// NewMemory creates an empty in-memory clipboard
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return fmt.Errorf("%w: %w", domain.ErrClipboardWriteFailed, m.err)
	}
	m.content = text
	m.writes++
	return nil
}

// Content returns the last written payload
func (m *Memory) Content() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content
}

// Writes returns how many successful writes happened
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// FailWith makes subsequent writes fail with err; nil restores success
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
