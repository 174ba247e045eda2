package ui

import (
	"blockedit/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// deferredTaskMsg carries a scheduled task back onto the update loop
type deferredTaskMsg struct {
	task func()
}

// pagerMsg reports that the pager closed
type pagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
