package handlers

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"blockedit/internal/domain"
	"blockedit/internal/eventbus"
)

// StatusTimeout is how long a status message stays on screen
const StatusTimeout = 3 * time.Second

// ClearStatusMsg asks the model to drop the status message with the given
// sequence number
type ClearStatusMsg struct {
	Seq int
}

// Status is the line under the block list
type Status struct {
	Message string
	IsError bool
	seq     int
}

// EventHandler turns domain events into status line updates
type EventHandler struct {
	status *Status
}

// NewEventHandler creates a new event handler writing into status
func NewEventHandler(status *Status) *EventHandler {
	return &EventHandler{status: status}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case domain.AllBlocksSelectedEvent:
		return h.set(fmt.Sprintf("Selected all %d blocks", e.Count), false)

	case domain.BlocksCopiedEvent:
		return h.set(fmt.Sprintf("Copied %d %s", e.Count, plural(e.Count, "block", "blocks")), false)

	case domain.BlocksRemovedEvent:
		return h.set(fmt.Sprintf("Removed %d %s", e.Removed, plural(e.Removed, "block", "blocks")), false)

	case domain.BlocksReplacedEvent:
		return h.set(fmt.Sprintf("Replaced %d %s", e.Removed, plural(e.Removed, "block", "blocks")), false)

	case domain.ErrorEvent:
		msg := e.Message
		if errors.Is(e.Err, domain.ErrClipboardWriteFailed) {
			msg = "Clipboard unavailable, nothing copied"
		}
		return h.set(fmt.Sprintf("Error: %s", msg), true)

	case domain.ConfigSavedEvent:
		return h.set(fmt.Sprintf("Config saved to %s", e.Path), false)
	}
	return nil
}

// Clear drops the status message if it is still the one seq refers to
func (h *EventHandler) Clear(msg ClearStatusMsg) {
	if msg.Seq == h.status.seq {
		h.status.Message = ""
		h.status.IsError = false
	}
}

func (h *EventHandler) set(message string, isError bool) tea.Cmd {
	h.status.seq++
	h.status.Message = message
	h.status.IsError = isError

	seq := h.status.seq
	return tea.Tick(StatusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
