package dto

import "time"

type CreateReservationRequest struct {
	RestaurantID    uint      `json:"restaurant_id"`
	CustomerID      uint      `json:"customer_id"`
	ReservationTime time.Time `json:"reservation_time"`
	PartySize       int       `json:"party_size"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	OccasionType    string    `json:"occasion_type,omitempty"`
	Source          string    `json:"source,omitempty"`
}

type UpdateReservationRequest struct {
	ReservationTime *time.Time `json:"reservation_time,omitempty"`
	PartySize       *int       `json:"party_size,omitempty"`
	SpecialRequests *string    `json:"special_requests,omitempty"`
	OccasionType    *string    `json:"occasion_type,omitempty"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason,omitempty"`
}

type CreateRestaurantRequest struct {
	Name                       string `json:"name"`
	Address                    string `json:"address"`
	City                       string `json:"city"`
	PhoneNumber                string `json:"phone_number"`
	Email                      string `json:"email"`
	CuisineType                string `json:"cuisine_type"`
	Description                string `json:"description,omitempty"`
	OpeningTime                string `json:"opening_time"`
	ClosingTime                string `json:"closing_time"`
	ReservationDurationMinutes int    `json:"reservation_duration_minutes,omitempty"`
	BufferTimeMinutes          int    `json:"buffer_time_minutes,omitempty"`
}

type UpdateRestaurantRequest struct {
	Name                       *string `json:"name,omitempty"`
	Address                    *string `json:"address,omitempty"`
	City                       *string `json:"city,omitempty"`
	PhoneNumber                *string `json:"phone_number,omitempty"`
	Email                      *string `json:"email,omitempty"`
	CuisineType                *string `json:"cuisine_type,omitempty"`
	Description                *string `json:"description,omitempty"`
	OpeningTime                *string `json:"opening_time,omitempty"`
	ClosingTime                *string `json:"closing_time,omitempty"`
	ReservationDurationMinutes *int    `json:"reservation_duration_minutes,omitempty"`
	BufferTimeMinutes          *int    `json:"buffer_time_minutes,omitempty"`
}

type CreateTableRequest struct {
	TableNumber string `json:"table_number"`
	Capacity    int    `json:"capacity"`
	MinCapacity int    `json:"min_capacity,omitempty"`
	Section     string `json:"section,omitempty"`
}

type BulkCreateTablesRequest struct {
	Tables []CreateTableRequest `json:"tables"`
}

type UpdateTableRequest struct {
	TableNumber *string `json:"table_number,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	MinCapacity *int    `json:"min_capacity,omitempty"`
	Section     *string `json:"section,omitempty"`
}

type UpdateTableStatusRequest struct {
	Status string `json:"status"`
}

type SearchEngineReservationRequest struct {
	RestaurantID          uint      `json:"restaurant_id"`
	ReservationTime       time.Time `json:"reservation_time"`
	PartySize             int       `json:"party_size"`
	SpecialRequests       string    `json:"special_requests,omitempty"`
	OccasionType          string    `json:"occasion_type,omitempty"`
	CustomerName          string    `json:"customer_name"`
	CustomerEmail         string    `json:"customer_email"`
	CustomerPhone         string    `json:"customer_phone,omitempty"`
	SearchEngine          string    `json:"search_engine"`
	SearchEngineBookingID string    `json:"search_engine_booking_id"`
}

type SearchEngineWebhookRequest struct {
	BookingID string `json:"booking_id"`
	Action    string `json:"action"`
}

type CreateCustomerRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	PhoneNumber        string `json:"phone_number,omitempty"`
	DietaryPreferences string `json:"dietary_preferences,omitempty"`
}
