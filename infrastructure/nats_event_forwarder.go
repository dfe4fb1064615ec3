package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"groupdss/events"

	log "github.com/sirupsen/logrus"
)

// MessagePublisher sends raw messages to a subject
type MessagePublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// EventForwarder relays committed engine events from the in-process bus to
// the message broker as JSON
type EventForwarder struct {
	publisher MessagePublisher
	prefix    string
	timeout   time.Duration
}

// NewEventForwarder creates a forwarder publishing on "<prefix>.<event type>"
func NewEventForwarder(publisher MessagePublisher, prefix string) *EventForwarder {
	return &EventForwarder{
		publisher: publisher,
		prefix:    strings.TrimSuffix(prefix, "."),
		timeout:   5 * time.Second,
	}
}

// Subject returns the broker subject an event type is published on
func (f *EventForwarder) Subject(eventType events.EventType) string {
	return fmt.Sprintf("%s.%s", f.prefix, eventType)
}

// Register subscribes the forwarder to every engine event type
func (f *EventForwarder) Register(bus *events.Bus) {
	for _, eventType := range []events.EventType{
		events.EventTypeCalculationCompleted,
		events.EventTypePointScheduleUpdated,
	} {
		bus.Subscribe(eventType, f.handle)
	}
}

func (f *EventForwarder) handle(ctx context.Context, event events.Event) {
	if err := f.Forward(ctx, event); err != nil {
		log.WithError(err).WithField("eventType", event.Type()).Error("Failed to forward event")
	}
}

// Forward publishes a single event
func (f *EventForwarder) Forward(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type(), err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	return f.publisher.Publish(ctx, f.Subject(event.Type()), data)
}
