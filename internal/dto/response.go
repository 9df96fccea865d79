package dto

import (
	"time"

	"github.com/tablebook/reservation-service/internal/models"
)

type ReservationResponse struct {
	ID                    uint                     `json:"id"`
	Code                  string                   `json:"code"`
	CustomerID            uint                     `json:"customer_id"`
	RestaurantID          uint                     `json:"restaurant_id"`
	TableID               *uint                    `json:"table_id,omitempty"`
	ReservationTime       time.Time                `json:"reservation_time"`
	EndTime               time.Time                `json:"end_time"`
	DurationMinutes       int                      `json:"duration_minutes"`
	PartySize             int                      `json:"party_size"`
	Status                models.ReservationStatus `json:"status"`
	SpecialRequests       string                   `json:"special_requests,omitempty"`
	OccasionType          string                   `json:"occasion_type,omitempty"`
	Source                string                   `json:"source"`
	SearchEngineBookingID string                   `json:"search_engine_booking_id,omitempty"`
	ArrivalTime           *time.Time               `json:"arrival_time,omitempty"`
	SeatedTime            *time.Time               `json:"seated_time,omitempty"`
	CompletedTime         *time.Time               `json:"completed_time,omitempty"`
	CancellationTime      *time.Time               `json:"cancellation_time,omitempty"`
	CancellationReason    string                   `json:"cancellation_reason,omitempty"`
	CreatedAt             time.Time                `json:"created_at"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:                    r.ID,
		Code:                  r.Code,
		CustomerID:            r.CustomerID,
		RestaurantID:          r.RestaurantID,
		TableID:               r.TableID,
		ReservationTime:       r.ReservationTime,
		EndTime:               r.EndTime(),
		DurationMinutes:       r.DurationMinutes,
		PartySize:             r.PartySize,
		Status:                r.Status,
		SpecialRequests:       r.SpecialRequests,
		OccasionType:          r.OccasionType,
		Source:                r.Source,
		SearchEngineBookingID: r.SearchEngineBookingID,
		ArrivalTime:           r.ArrivalTime,
		SeatedTime:            r.SeatedTime,
		CompletedTime:         r.CompletedTime,
		CancellationTime:      r.CancellationTime,
		CancellationReason:    r.CancellationReason,
		CreatedAt:             r.CreatedAt,
	}
}

func ToReservationResponses(reservations []models.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, len(reservations))
	for i := range reservations {
		out[i] = ToReservationResponse(&reservations[i])
	}
	return out
}

type TableResponse struct {
	ID           uint               `json:"id"`
	RestaurantID uint               `json:"restaurant_id"`
	TableNumber  string             `json:"table_number"`
	Capacity     int                `json:"capacity"`
	MinCapacity  int                `json:"min_capacity"`
	Section      string             `json:"section,omitempty"`
	Status       models.TableStatus `json:"status"`
	Active       bool               `json:"active"`
}

func ToTableResponse(t *models.Table) TableResponse {
	return TableResponse{
		ID:           t.ID,
		RestaurantID: t.RestaurantID,
		TableNumber:  t.TableNumber,
		Capacity:     t.Capacity,
		MinCapacity:  t.MinCapacity,
		Section:      t.Section,
		Status:       t.Status,
		Active:       t.Active,
	}
}

func ToTableResponses(tables []models.Table) []TableResponse {
	out := make([]TableResponse, len(tables))
	for i := range tables {
		out[i] = ToTableResponse(&tables[i])
	}
	return out
}

type RestaurantResponse struct {
	ID                         uint   `json:"id"`
	Name                       string `json:"name"`
	Address                    string `json:"address"`
	City                       string `json:"city"`
	PhoneNumber                string `json:"phone_number"`
	Email                      string `json:"email"`
	CuisineType                string `json:"cuisine_type"`
	Description                string `json:"description,omitempty"`
	OpeningTime                string `json:"opening_time"`
	ClosingTime                string `json:"closing_time"`
	ReservationDurationMinutes int    `json:"reservation_duration_minutes"`
	BufferTimeMinutes          int    `json:"buffer_time_minutes"`
	Active                     bool   `json:"active"`
}

func ToRestaurantResponse(r *models.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:                         r.ID,
		Name:                       r.Name,
		Address:                    r.Address,
		City:                       r.City,
		PhoneNumber:                r.PhoneNumber,
		Email:                      r.Email,
		CuisineType:                r.CuisineType,
		Description:                r.Description,
		OpeningTime:                r.OpeningTime,
		ClosingTime:                r.ClosingTime,
		ReservationDurationMinutes: r.ReservationDurationMinutes,
		BufferTimeMinutes:          r.BufferTimeMinutes,
		Active:                     r.Active,
	}
}

func ToRestaurantResponses(restaurants []models.Restaurant) []RestaurantResponse {
	out := make([]RestaurantResponse, len(restaurants))
	for i := range restaurants {
		out[i] = ToRestaurantResponse(&restaurants[i])
	}
	return out
}

type CustomerResponse struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	PhoneNumber        string `json:"phone_number,omitempty"`
	DietaryPreferences string `json:"dietary_preferences,omitempty"`
}

func ToCustomerResponse(c *models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Email:              c.Email,
		PhoneNumber:        c.PhoneNumber,
		DietaryPreferences: c.DietaryPreferences,
	}
}

type ErrorResponse struct {
	Message string `json:"message"`
}
