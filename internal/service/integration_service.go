package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/tablebook/reservation-service/internal/models"
	"github.com/tablebook/reservation-service/internal/repository"
	"gorm.io/gorm"
)

// slotStep is the granularity of the availability slots offered to search
// engines around a requested time.
const slotStep = 15 * time.Minute

// slotSpread is how far before and after the requested time slots are probed.
const slotSpread = time.Hour

type AvailabilitySlot struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	AvailableTables int       `json:"available_tables"`
}

type AvailabilityReport struct {
	RestaurantID   uint               `json:"restaurant_id"`
	RestaurantName string             `json:"restaurant_name"`
	RequestedTime  time.Time          `json:"requested_time"`
	PartySize      int                `json:"party_size"`
	Available      bool               `json:"available"`
	Slots          []AvailabilitySlot `json:"available_slots"`
}

type CreateExternalReservationInput struct {
	RestaurantID    uint
	ReservationTime time.Time
	PartySize       int
	SpecialRequests string
	OccasionType    string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	SearchEngine    string
	BookingID       string
}

// IntegrationService is the surface exposed to external search engines:
// availability probing, bookings keyed by the engine's own reference, and
// webhook-driven cancellation.
type IntegrationService interface {
	CheckAvailability(ctx context.Context, restaurantID uint, at time.Time, partySize int) (*AvailabilityReport, error)
	CreateFromSearchEngine(ctx context.Context, in CreateExternalReservationInput) (*models.Reservation, error)
	HandleWebhook(ctx context.Context, searchEngine, bookingID, action string) error
}

type integrationService struct {
	restaurantRepo  repository.RestaurantRepository
	customerRepo    repository.CustomerRepository
	reservationRepo repository.ReservationRepository
	availability    AvailabilityService
	reservations    ReservationService
}

func NewIntegrationService(
	restaurantRepo repository.RestaurantRepository,
	customerRepo repository.CustomerRepository,
	reservationRepo repository.ReservationRepository,
	availability AvailabilityService,
	reservations ReservationService,
) IntegrationService {
	return &integrationService{
		restaurantRepo:  restaurantRepo,
		customerRepo:    customerRepo,
		reservationRepo: reservationRepo,
		availability:    availability,
		reservations:    reservations,
	}
}

// CheckAvailability reports whether the requested window can be served and
// offers alternative slots in a window around it.
func (s *integrationService) CheckAvailability(ctx context.Context, restaurantID uint, at time.Time, partySize int) (*AvailabilityReport, error) {
	if partySize < 1 {
		return nil, ErrInvalidPartySize
	}

	restaurant, err := s.restaurantRepo.FindByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("load restaurant %d: %w", restaurantID, err)
	}
	if !restaurant.Active {
		return nil, ErrRestaurantNotFound
	}

	duration := time.Duration(restaurant.ReservationDurationMinutes) * time.Minute

	report := &AvailabilityReport{
		RestaurantID:   restaurantID,
		RestaurantName: restaurant.Name,
		RequestedTime:  at,
		PartySize:      partySize,
	}

	for slot := at.Add(-slotSpread); !slot.After(at.Add(slotSpread)); slot = slot.Add(slotStep) {
		tables, err := s.availability.FindAvailableTables(ctx, nil, restaurantID, slot, slot.Add(duration), partySize)
		if err != nil {
			return nil, err
		}
		if len(tables) == 0 {
			continue
		}
		if slot.Equal(at) {
			report.Available = true
		}
		report.Slots = append(report.Slots, AvailabilitySlot{
			StartTime:       slot,
			EndTime:         slot.Add(duration),
			AvailableTables: len(tables),
		})
	}

	return report, nil
}

// CreateFromSearchEngine books on behalf of an external engine. The customer
// is matched by email and created on the fly when unknown.
func (s *integrationService) CreateFromSearchEngine(ctx context.Context, in CreateExternalReservationInput) (*models.Reservation, error) {
	if in.SearchEngine == "" || in.BookingID == "" {
		return nil, ErrMissingBookingDetails
	}

	customer, err := s.findOrCreateCustomer(ctx, in)
	if err != nil {
		return nil, err
	}

	reservation, err := s.reservations.Create(ctx, CreateReservationInput{
		RestaurantID:          in.RestaurantID,
		CustomerID:            customer.ID,
		ReservationTime:       in.ReservationTime,
		PartySize:             in.PartySize,
		SpecialRequests:       in.SpecialRequests,
		OccasionType:          in.OccasionType,
		Source:                in.SearchEngine,
		SearchEngineBookingID: in.BookingID,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Integration] reservation %s created via %s (booking %s)", reservation.Code, in.SearchEngine, in.BookingID)
	return reservation, nil
}

func (s *integrationService) findOrCreateCustomer(ctx context.Context, in CreateExternalReservationInput) (*models.Customer, error) {
	if in.CustomerEmail == "" {
		return nil, ErrCustomerNotFound
	}

	customer, err := s.customerRepo.FindByEmail(ctx, in.CustomerEmail)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up customer %s: %w", in.CustomerEmail, err)
	}

	customer = &models.Customer{
		Name:        in.CustomerName,
		Email:       in.CustomerEmail,
		PhoneNumber: in.CustomerPhone,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer %s: %w", in.CustomerEmail, err)
	}
	return customer, nil
}

// HandleWebhook processes a status notification from a search engine.
// Cancellation is idempotent: an unknown booking id or an already cancelled
// reservation is not an error, the engine just retries otherwise.
func (s *integrationService) HandleWebhook(ctx context.Context, searchEngine, bookingID, action string) error {
	if searchEngine == "" || bookingID == "" {
		return ErrMissingBookingDetails
	}

	log.Printf("[Integration] webhook from %s for booking %s: %s", searchEngine, bookingID, action)

	switch action {
	case "CANCELLED":
		return s.cancelByBookingID(ctx, searchEngine, bookingID)
	case "MODIFIED":
		// Modifications arrive as a fresh availability check plus a new
		// booking from the engine side.
		return nil
	default:
		log.Printf("[Integration] unknown webhook action %q from %s", action, searchEngine)
		return nil
	}
}

func (s *integrationService) cancelByBookingID(ctx context.Context, searchEngine, bookingID string) error {
	reservation, err := s.reservationRepo.FindBySearchEngineBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("look up booking %s: %w", bookingID, err)
	}
	if reservation.Status == models.StatusCancelled {
		return nil
	}

	_, err = s.reservations.Cancel(ctx, reservation.ID, "cancelled via "+searchEngine)
	return err
}
