package notify

import (
	"log"
	"time"
)

// Event types double as RabbitMQ routing keys on the topic exchange.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationUpdated   = "reservation.updated"
	EventReservationCancelled = "reservation.cancelled"
	EventTableStatusChanged   = "table.status_changed"
	EventUserNotification     = "user.notification"
)

// Event is the record handed to the notification sink.
type Event struct {
	Type         string    `json:"type"`
	RestaurantID uint      `json:"restaurant_id"`
	Payload      any       `json:"payload"`
	Timestamp    time.Time `json:"timestamp"`
}

// Sink fans lifecycle events out to subscribers. Delivery is
// fire-and-forget: implementations log failures and never surface them, so a
// broken broker cannot roll back a persisted state change.
type Sink interface {
	Emit(eventType string, restaurantID uint, payload any)
}

type publisher interface {
	Publish(routingKey string, payload any) error
}

type publisherSink struct {
	pub publisher
}

// NewSink wraps a message publisher as a notification sink.
func NewSink(pub publisher) Sink {
	return &publisherSink{pub: pub}
}

func (s *publisherSink) Emit(eventType string, restaurantID uint, payload any) {
	event := Event{
		Type:         eventType,
		RestaurantID: restaurantID,
		Payload:      payload,
		Timestamp:    time.Now().UTC(),
	}
	if err := s.pub.Publish(eventType, event); err != nil {
		log.Printf("[Notifier] publish %s failed: %v", eventType, err)
	}
}
