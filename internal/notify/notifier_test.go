package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	keys     []string
	payloads []any
	err      error
}

func (p *fakePublisher) Publish(routingKey string, payload any) error {
	p.keys = append(p.keys, routingKey)
	p.payloads = append(p.payloads, payload)
	return p.err
}

func TestEmit_EventTypeIsRoutingKey(t *testing.T) {
	pub := &fakePublisher{}
	sink := NewSink(pub)

	sink.Emit(EventReservationCreated, 7, map[string]any{"id": 42})

	require.Len(t, pub.keys, 1)
	assert.Equal(t, "reservation.created", pub.keys[0])

	event, ok := pub.payloads[0].(Event)
	require.True(t, ok)
	assert.Equal(t, EventReservationCreated, event.Type)
	assert.Equal(t, uint(7), event.RestaurantID)
	assert.False(t, event.Timestamp.IsZero())
}

func TestEmit_PublishErrorIsSwallowed(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker gone")}
	sink := NewSink(pub)

	assert.NotPanics(t, func() {
		sink.Emit(EventTableStatusChanged, 7, nil)
	})
	assert.Len(t, pub.keys, 1)
}
