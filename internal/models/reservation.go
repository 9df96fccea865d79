package models

import "time"

type ReservationStatus string

const (
	StatusPending    ReservationStatus = "pending"
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusSeated     ReservationStatus = "seated"
	StatusCompleted  ReservationStatus = "completed"
	StatusCancelled  ReservationStatus = "cancelled"
	StatusNoShow     ReservationStatus = "no_show"
	StatusWaitlisted ReservationStatus = "waitlisted"
)

// LiveStatuses are the statuses that block a table's time slot.
var LiveStatuses = []ReservationStatus{StatusConfirmed, StatusSeated}

// validTransitions is the forward-only state machine of a reservation.
// Terminal states have no outgoing edges.
var validTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled, StatusNoShow, StatusWaitlisted},
	StatusConfirmed:  {StatusSeated, StatusCancelled, StatusNoShow, StatusWaitlisted},
	StatusSeated:     {StatusCompleted, StatusCancelled},
	StatusWaitlisted: {StatusConfirmed, StatusCancelled},
}

func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s ReservationStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusSeated, StatusCompleted,
		StatusCancelled, StatusNoShow, StatusWaitlisted:
		return true
	}
	return false
}

type Reservation struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	Code               string            `gorm:"type:varchar(8);not null;uniqueIndex" json:"code"`
	CustomerID         uint              `gorm:"not null;index" json:"customer_id"`
	RestaurantID       uint              `gorm:"not null;index" json:"restaurant_id"`
	TableID            *uint             `gorm:"index" json:"table_id,omitempty"`
	ReservationTime    time.Time         `gorm:"not null" json:"reservation_time"`
	DurationMinutes    int               `gorm:"not null" json:"duration_minutes"`
	PartySize          int               `gorm:"not null" json:"party_size"`
	Status             ReservationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SpecialRequests    string            `gorm:"type:text" json:"special_requests,omitempty"`
	OccasionType       string            `gorm:"type:varchar(50)" json:"occasion_type,omitempty"`
	Source             string            `gorm:"type:varchar(20);not null;default:'website'" json:"source"`
	// SearchEngineBookingID is the external booking reference when the
	// reservation came in through a search engine integration.
	SearchEngineBookingID string `gorm:"type:varchar(100);index" json:"search_engine_booking_id,omitempty"`
	ArrivalTime        *time.Time        `json:"arrival_time,omitempty"`
	SeatedTime         *time.Time        `json:"seated_time,omitempty"`
	CompletedTime      *time.Time        `json:"completed_time,omitempty"`
	CancellationTime   *time.Time        `json:"cancellation_time,omitempty"`
	CancellationReason string            `gorm:"type:varchar(255)" json:"cancellation_reason,omitempty"`
	ReminderSent       bool              `gorm:"not null;default:false" json:"reminder_sent"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`

	Customer   *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	Table      *Table      `gorm:"foreignKey:TableID" json:"table,omitempty"`
}

func (r *Reservation) EndTime() time.Time {
	return r.ReservationTime.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// Overlaps reports whether the reservation's [start, end) interval overlaps
// the given window. Intervals are half-open: touching endpoints do not
// overlap.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.ReservationTime.Before(end) && start.Before(r.EndTime())
}

// Live reports whether the reservation blocks its table's time slot.
func (r *Reservation) Live() bool {
	return r.Status == StatusConfirmed || r.Status == StatusSeated
}
