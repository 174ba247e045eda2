package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"

	"blockedit/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventBlockSelected     = domain.EventBlockSelected
	EventBlockUnselected   = domain.EventBlockUnselected
	EventAllBlocksSelected = domain.EventAllBlocksSelected
	EventSelectionCleared  = domain.EventSelectionCleared
	EventBlocksReplaced    = domain.EventBlocksReplaced
	EventBlocksRemoved     = domain.EventBlocksRemoved
	EventBlocksCopied      = domain.EventBlocksCopied
	EventFocusMoved        = domain.EventFocusMoved
	EventError             = domain.EventError
	EventConfigLoaded      = domain.EventConfigLoaded
	EventConfigSaved       = domain.EventConfigSaved
)

// Event types
type (
	BlockSelectedEvent     = domain.BlockSelectedEvent
	BlockUnselectedEvent   = domain.BlockUnselectedEvent
	AllBlocksSelectedEvent = domain.AllBlocksSelectedEvent
	SelectionClearedEvent  = domain.SelectionClearedEvent
	BlocksReplacedEvent    = domain.BlocksReplacedEvent
	BlocksRemovedEvent     = domain.BlocksRemovedEvent
	BlocksCopiedEvent      = domain.BlocksCopiedEvent
	FocusMovedEvent        = domain.FocusMovedEvent
	ErrorEvent             = domain.ErrorEvent
	ConfigLoadedEvent      = domain.ConfigLoadedEvent
	ConfigSavedEvent       = domain.ConfigSavedEvent
)

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// Bus is the asynchronous EventBus implementation. Handlers never run on the
// publisher's goroutine, so they must not mutate editor state directly.
type Bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	log       zerolog.Logger
}

// New creates a new event bus and starts its dispatcher
func New(log zerolog.Logger) *Bus {
	b := &Bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
		log:       log.With().Str("cmp", "eventbus").Logger(),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *Bus) Publish(event DomainEvent) {
	b.log.Debug().Str("event", string(event.Type())).Msg("publishing")

	select {
	case b.eventChan <- event:
	case <-b.quit:
	default:
		b.log.Warn().Str("event", string(event.Type())).Msg("event channel full, dropping event")
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function.
func (b *Bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher and waits for handlers already started to
// return. Events still queued are discarded.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

func (b *Bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				b.wg.Add(1)
				go b.call(s.handler, event)
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

func (b *Bus) call(h EventHandler, event DomainEvent) {
	defer b.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().
				Str("event", string(event.Type())).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("event handler panic")
		}
	}()
	h(event)
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (NullBus) Publish(event DomainEvent) {}
func (NullBus) Subscribe(eventType EventType, handler EventHandler) func() {
	return func() {}
}
