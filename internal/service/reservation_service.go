package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tablebook/reservation-service/internal/models"
	"github.com/tablebook/reservation-service/internal/notify"
	"github.com/tablebook/reservation-service/internal/repository"
	"gorm.io/gorm"
)

type CreateReservationInput struct {
	RestaurantID    uint
	CustomerID      uint
	ReservationTime time.Time
	PartySize       int
	DurationMinutes int // 0 means use the restaurant default
	SpecialRequests string
	OccasionType    string
	Source          string
	// SearchEngineBookingID carries the external reference for reservations
	// arriving through a search engine integration.
	SearchEngineBookingID string
}

type UpdateReservationInput struct {
	ReservationTime *time.Time
	PartySize       *int
	SpecialRequests *string
	OccasionType    *string
}

type ReservationService interface {
	Create(ctx context.Context, in CreateReservationInput) (*models.Reservation, error)
	GetByID(ctx context.Context, id uint) (*models.Reservation, error)
	GetByCode(ctx context.Context, code string) (*models.Reservation, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]models.Reservation, error)
	ListByRestaurant(ctx context.Context, restaurantID uint, date *time.Time) ([]models.Reservation, error)
	Update(ctx context.Context, id uint, in UpdateReservationInput) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, id uint, status models.ReservationStatus) (*models.Reservation, error)
	Cancel(ctx context.Context, id uint, reason string) (*models.Reservation, error)
	FindAvailableTables(ctx context.Context, restaurantID uint, start time.Time, partySize, durationMinutes int) ([]models.Table, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	restaurantRepo  repository.RestaurantRepository
	tableRepo       repository.TableRepository
	customerRepo    repository.CustomerRepository
	availability    AvailabilityService
	sink            notify.Sink
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	restaurantRepo repository.RestaurantRepository,
	tableRepo repository.TableRepository,
	customerRepo repository.CustomerRepository,
	availability AvailabilityService,
	sink notify.Sink,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		restaurantRepo:  restaurantRepo,
		tableRepo:       tableRepo,
		customerRepo:    customerRepo,
		availability:    availability,
		sink:            sink,
	}
}

// Create books a table for the requested window. The availability scan, the
// conflict re-check and the insert all run inside one transaction holding a
// row lock on the restaurant, so two interleaved requests for the same
// window cannot both pass their checks.
func (s *reservationService) Create(ctx context.Context, in CreateReservationInput) (*models.Reservation, error) {
	if in.PartySize < 1 {
		return nil, ErrInvalidPartySize
	}

	var result *models.Reservation

	err := s.reservationRepo.Transaction(ctx, func(tx *gorm.DB) error {
		restaurant, err := s.restaurantRepo.FindByIDForUpdate(ctx, tx, in.RestaurantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRestaurantNotFound
			}
			return fmt.Errorf("load restaurant %d: %w", in.RestaurantID, err)
		}
		if !restaurant.Active {
			return ErrRestaurantNotFound
		}

		if _, err := s.customerRepo.FindByID(ctx, in.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return fmt.Errorf("load customer %d: %w", in.CustomerID, err)
		}

		if !in.ReservationTime.After(time.Now()) {
			return ErrTimeInPast
		}

		duration := in.DurationMinutes
		if duration <= 0 {
			duration = restaurant.ReservationDurationMinutes
		}
		end := in.ReservationTime.Add(time.Duration(duration) * time.Minute)

		ok, err := restaurant.WithinOperatingHours(in.ReservationTime, end)
		if err != nil {
			return err
		}
		if !ok {
			return ErrOutsideOperatingHours
		}

		candidates, err := s.availability.FindAvailableTables(ctx, tx, restaurant.ID, in.ReservationTime, end, in.PartySize)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			return ErrNoTablesAvailable
		}

		table := candidates[0]

		conflict, err := s.availability.HasConflict(ctx, tx, table.ID, in.ReservationTime, end)
		if err != nil {
			return err
		}
		if conflict {
			return ErrTableConflict
		}

		source := in.Source
		if source == "" {
			source = "website"
		}

		reservation := &models.Reservation{
			Code:                  generateReservationCode(),
			CustomerID:            in.CustomerID,
			RestaurantID:          restaurant.ID,
			TableID:               &table.ID,
			ReservationTime:       in.ReservationTime,
			DurationMinutes:       duration,
			PartySize:             in.PartySize,
			Status:                models.StatusConfirmed,
			SpecialRequests:       in.SpecialRequests,
			OccasionType:          in.OccasionType,
			Source:                source,
			SearchEngineBookingID: in.SearchEngineBookingID,
		}
		if err := s.reservationRepo.Create(ctx, tx, reservation); err != nil {
			if errors.Is(err, repository.ErrWindowTaken) {
				return ErrTableConflict
			}
			return err
		}

		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.sink != nil {
		s.sink.Emit(notify.EventReservationCreated, result.RestaurantID, result)
	}
	return result, nil
}

func (s *reservationService) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("load reservation %d: %w", id, err)
	}
	return reservation, nil
}

func (s *reservationService) GetByCode(ctx context.Context, code string) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("load reservation %s: %w", code, err)
	}
	return reservation, nil
}

func (s *reservationService) ListByCustomer(ctx context.Context, customerID uint) ([]models.Reservation, error) {
	return s.reservationRepo.FindByCustomer(ctx, customerID)
}

func (s *reservationService) ListByRestaurant(ctx context.Context, restaurantID uint, date *time.Time) ([]models.Reservation, error) {
	if date != nil {
		return s.reservationRepo.FindByRestaurantAndDate(ctx, restaurantID, *date)
	}
	return s.reservationRepo.FindByRestaurant(ctx, restaurantID)
}

// Update changes the window and/or party size of a reservation. A changed
// window or party size re-runs table resolution under the restaurant lock;
// the reservation's own slot does not count against it.
func (s *reservationService) Update(ctx context.Context, id uint, in UpdateReservationInput) (*models.Reservation, error) {
	var result *models.Reservation

	err := s.reservationRepo.Transaction(ctx, func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.FindByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("load reservation %d: %w", id, err)
		}
		if reservation.Status == models.StatusCancelled || reservation.Status == models.StatusCompleted {
			return ErrInvalidTransition
		}

		if in.ReservationTime != nil || in.PartySize != nil {
			if _, err := s.restaurantRepo.FindByIDForUpdate(ctx, tx, reservation.RestaurantID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRestaurantNotFound
				}
				return fmt.Errorf("load restaurant %d: %w", reservation.RestaurantID, err)
			}

			newTime := reservation.ReservationTime
			if in.ReservationTime != nil {
				newTime = *in.ReservationTime
			}
			newPartySize := reservation.PartySize
			if in.PartySize != nil {
				newPartySize = *in.PartySize
			}
			if newPartySize < 1 {
				return ErrInvalidPartySize
			}
			end := newTime.Add(time.Duration(reservation.DurationMinutes) * time.Minute)

			table, err := s.resolveTable(ctx, tx, reservation, newTime, end, newPartySize)
			if err != nil {
				return err
			}

			reservation.TableID = &table.ID
			reservation.ReservationTime = newTime
			reservation.PartySize = newPartySize
		}

		if in.SpecialRequests != nil {
			reservation.SpecialRequests = *in.SpecialRequests
		}
		if in.OccasionType != nil {
			reservation.OccasionType = *in.OccasionType
		}

		if err := s.reservationRepo.Save(ctx, tx, reservation); err != nil {
			if errors.Is(err, repository.ErrWindowTaken) {
				return ErrTableConflict
			}
			return err
		}
		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.sink != nil {
		s.sink.Emit(notify.EventReservationUpdated, result.RestaurantID, result)
	}
	return result, nil
}

// resolveTable picks the best table for the new window. When every candidate
// is blocked, the reservation's current table is still usable if the only
// overlapping reservation on it is this one.
func (s *reservationService) resolveTable(ctx context.Context, tx *gorm.DB, reservation *models.Reservation, start, end time.Time, partySize int) (*models.Table, error) {
	candidates, err := s.availability.FindAvailableTables(ctx, tx, reservation.RestaurantID, start, end, partySize)
	if err != nil {
		return nil, err
	}
	if len(candidates) > 0 {
		return &candidates[0], nil
	}

	if reservation.TableID != nil {
		current, err := s.tableRepo.FindByID(ctx, *reservation.TableID)
		if err == nil && current.Active && current.Fits(partySize) {
			conflicts, err := s.availability.ConflictingReservations(ctx, tx, current.ID, start, end)
			if err != nil {
				return nil, err
			}
			blocked := false
			for _, c := range conflicts {
				if c.ID != reservation.ID {
					blocked = true
					break
				}
			}
			if !blocked {
				return current, nil
			}
		}
	}

	return nil, ErrNoTablesAvailable
}

// UpdateStatus applies a lifecycle transition with its side effects: seating
// marks the table occupied, completion sends it to cleaning, cancellation
// records the timestamp.
func (s *reservationService) UpdateStatus(ctx context.Context, id uint, status models.ReservationStatus) (*models.Reservation, error) {
	var result *models.Reservation
	var tableChanged *models.TableStatus

	err := s.reservationRepo.Transaction(ctx, func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.FindByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("load reservation %d: %w", id, err)
		}

		if !reservation.Status.CanTransitionTo(status) {
			if reservation.Status == models.StatusCancelled && status == models.StatusCancelled {
				return ErrAlreadyCancelled
			}
			return ErrInvalidTransition
		}

		now := time.Now()
		reservation.Status = status

		switch status {
		case models.StatusSeated:
			reservation.ArrivalTime = &now
			reservation.SeatedTime = &now
			if reservation.TableID != nil {
				if err := s.tableRepo.UpdateStatus(ctx, tx, *reservation.TableID, models.TableOccupied); err != nil {
					return err
				}
				occupied := models.TableOccupied
				tableChanged = &occupied
			}
		case models.StatusCompleted:
			reservation.CompletedTime = &now
			if reservation.TableID != nil {
				if err := s.tableRepo.UpdateStatus(ctx, tx, *reservation.TableID, models.TableCleaning); err != nil {
					return err
				}
				cleaning := models.TableCleaning
				tableChanged = &cleaning
			}
		case models.StatusCancelled:
			reservation.CancellationTime = &now
		}

		if err := s.reservationRepo.Save(ctx, tx, reservation); err != nil {
			return err
		}
		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.sink != nil {
		s.sink.Emit(notify.EventReservationUpdated, result.RestaurantID, result)
		if tableChanged != nil && result.TableID != nil {
			s.sink.Emit(notify.EventTableStatusChanged, result.RestaurantID, map[string]any{
				"table_id": *result.TableID,
				"status":   *tableChanged,
			})
		}
	}
	return result, nil
}

func (s *reservationService) Cancel(ctx context.Context, id uint, reason string) (*models.Reservation, error) {
	var result *models.Reservation

	err := s.reservationRepo.Transaction(ctx, func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.FindByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("load reservation %d: %w", id, err)
		}

		if reservation.Status == models.StatusCancelled {
			return ErrAlreadyCancelled
		}
		if !reservation.Status.CanTransitionTo(models.StatusCancelled) {
			return ErrInvalidTransition
		}

		now := time.Now()
		reservation.Status = models.StatusCancelled
		reservation.CancellationReason = reason
		reservation.CancellationTime = &now

		if err := s.reservationRepo.Save(ctx, tx, reservation); err != nil {
			return err
		}
		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.sink != nil {
		s.sink.Emit(notify.EventReservationCancelled, result.RestaurantID, result)
	}
	return result, nil
}

// FindAvailableTables is the read-only query surface over the resolver.
func (s *reservationService) FindAvailableTables(ctx context.Context, restaurantID uint, start time.Time, partySize, durationMinutes int) ([]models.Table, error) {
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

	if durationMinutes <= 0 {
		durationMinutes = restaurant.ReservationDurationMinutes
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	return s.availability.FindAvailableTables(ctx, nil, restaurantID, start, end, partySize)
}

// generateReservationCode returns the customer-facing booking code: the
// first 8 hex characters of a random UUID, uppercased.
func generateReservationCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
