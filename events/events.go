package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeCalculationCompleted EventType = "calculation_completed"
	EventTypePointScheduleUpdated EventType = "point_schedule_updated"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// CalculationCompletedEvent is emitted once a fresh result set is committed
type CalculationCompletedEvent struct {
	EventID          int64  `json:"event_id"`
	EventName        string `json:"event_name"`
	RunID            string `json:"run_id"`
	TriggeredBy      *int64 `json:"triggered_by,omitempty"`
	JudgeCount       int    `json:"judge_count"`
	AlternativeCount int    `json:"alternative_count"`
	// WinnerIDs holds every alternative with final rank 1
	WinnerIDs []int64 `json:"winner_ids"`
}

func (e CalculationCompletedEvent) Type() EventType {
	return EventTypeCalculationCompleted
}

// PointScheduleUpdatedEvent is emitted when an event's Borda points change.
// An empty schedule means the default N - rank formula applies again.
type PointScheduleUpdatedEvent struct {
	EventID   int64           `json:"event_id"`
	UpdatedBy int64           `json:"updated_by"`
	Schedule  map[int]float64 `json:"schedule"`
}

func (e PointScheduleUpdatedEvent) Type() EventType {
	return EventTypePointScheduleUpdated
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit hands the event to every registered handler. Handlers run on their own
// goroutine and a panicking handler is logged instead of crashing the process.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event")

	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds events raised inside a unit of work until the
// transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish stages an event until Flush
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Staged event on transactional bus")
}

// Pending returns the number of staged events
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}

// Flush is called after a successful commit. Events are emitted with a
// background context since handlers outlive the transaction.
func (b *TransactionalBus) Flush(_ context.Context) error {
	if b.real == nil {
		b.pending = nil
		return nil
	}

	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	log.WithField("flushed", len(b.pending)).Debug("Transactional bus flushed")
	b.pending = nil
	return nil
}

// Discard drops staged events after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
