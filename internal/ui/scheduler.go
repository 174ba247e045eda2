package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type tickFunc func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

// TickScheduler runs tasks on the update loop after a delay. Schedule only
// queues; the model drains the queue into tea commands after each message,
// so tasks never run concurrently with the model.
type TickScheduler struct {
	pending []tea.Cmd
	tick    tickFunc
}

// NewTickScheduler creates a scheduler backed by tea.Tick
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{tick: tea.Tick}
}

// Schedule queues task to run after delay
func (s *TickScheduler) Schedule(delay time.Duration, task func()) {
	s.pending = append(s.pending, s.tick(delay, func(time.Time) tea.Msg {
		return deferredTaskMsg{task: task}
	}))
}

// Drain returns the queued commands and empties the queue
func (s *TickScheduler) Drain() []tea.Cmd {
	out := s.pending
	s.pending = nil
	return out
}
