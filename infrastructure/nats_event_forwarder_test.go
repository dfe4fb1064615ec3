package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"groupdss/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	subject string
	data    []byte
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []message
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, message{subject: subject, data: data})
	return nil
}

func (p *fakePublisher) received() []message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]message(nil), p.messages...)
}

func TestEventForwarder_Forward(t *testing.T) {
	publisher := &fakePublisher{}
	forwarder := NewEventForwarder(publisher, "decision.")

	err := forwarder.Forward(context.Background(), events.CalculationCompletedEvent{
		EventID:   7,
		EventName: "Vendor selection",
		RunID:     "run-1",
		WinnerIDs: []int64{3},
	})
	require.NoError(t, err)

	received := publisher.received()
	require.Len(t, received, 1)
	assert.Equal(t, "decision.calculation_completed", received[0].subject)

	var decoded events.CalculationCompletedEvent
	require.NoError(t, json.Unmarshal(received[0].data, &decoded))
	assert.Equal(t, int64(7), decoded.EventID)
	assert.Equal(t, []int64{3}, decoded.WinnerIDs)
	assert.Nil(t, decoded.TriggeredBy)
}

func TestEventForwarder_ForwardError(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("no responders")}
	forwarder := NewEventForwarder(publisher, "decision")

	err := forwarder.Forward(context.Background(), events.PointScheduleUpdatedEvent{EventID: 1})
	assert.ErrorContains(t, err, "no responders")
}

func TestEventForwarder_RegisterRelaysBusEvents(t *testing.T) {
	publisher := &fakePublisher{}
	bus := events.NewBus()
	NewEventForwarder(publisher, "decision").Register(bus)

	bus.Emit(context.Background(), events.PointScheduleUpdatedEvent{
		EventID:  2,
		Schedule: map[int]float64{1: 10},
	})

	require.Eventually(t, func() bool {
		return len(publisher.received()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "decision.point_schedule_updated", publisher.received()[0].subject)
}

func TestNATSClient_PublishWithoutConnection(t *testing.T) {
	client := NewNATSClient("nats://127.0.0.1:4222")

	err := client.Publish(context.Background(), "decision.test", []byte("{}"))
	assert.Error(t, err)
	assert.False(t, client.IsConnected())
	assert.NoError(t, client.Close())
}
