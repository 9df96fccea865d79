package service

import (
	"context"
	"sort"
	"time"

	"github.com/tablebook/reservation-service/internal/models"
	"github.com/tablebook/reservation-service/internal/repository"
	"gorm.io/gorm"
)

// AvailabilityService resolves which tables can serve a reservation request
// and detects time-slot conflicts on individual tables. All methods are
// read-only. The tx parameter lets callers run the checks inside an enclosing
// transaction; pass nil outside one.
type AvailabilityService interface {
	// FindAvailableTables returns the active tables of the restaurant that
	// fit the party size and have no live reservation overlapping
	// [start, end), ordered smallest-adequate-first. An empty result means
	// no availability, not an error.
	FindAvailableTables(ctx context.Context, tx *gorm.DB, restaurantID uint, start, end time.Time, partySize int) ([]models.Table, error)

	HasConflict(ctx context.Context, tx *gorm.DB, tableID uint, start, end time.Time) (bool, error)
	ConflictingReservations(ctx context.Context, tx *gorm.DB, tableID uint, start, end time.Time) ([]models.Reservation, error)
}

type availabilityService struct {
	tableRepo       repository.TableRepository
	reservationRepo repository.ReservationRepository
}

func NewAvailabilityService(tableRepo repository.TableRepository, reservationRepo repository.ReservationRepository) AvailabilityService {
	return &availabilityService{
		tableRepo:       tableRepo,
		reservationRepo: reservationRepo,
	}
}

func (s *availabilityService) FindAvailableTables(ctx context.Context, tx *gorm.DB, restaurantID uint, start, end time.Time, partySize int) ([]models.Table, error) {
	tables, err := s.tableRepo.FindActiveByRestaurant(ctx, tx, restaurantID)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.Table, 0, len(tables))
	for _, table := range tables {
		if !table.Fits(partySize) {
			continue
		}
		conflict, err := s.HasConflict(ctx, tx, table.ID, start, end)
		if err != nil {
			return nil, err
		}
		if conflict {
			continue
		}
		candidates = append(candidates, table)
	}

	// Smallest adequate table first; stable sort keeps input order on ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Capacity-partySize < candidates[j].Capacity-partySize
	})

	return candidates, nil
}

func (s *availabilityService) HasConflict(ctx context.Context, tx *gorm.DB, tableID uint, start, end time.Time) (bool, error) {
	conflicts, err := s.ConflictingReservations(ctx, tx, tableID, start, end)
	if err != nil {
		return false, err
	}
	return len(conflicts) > 0, nil
}

func (s *availabilityService) ConflictingReservations(ctx context.Context, tx *gorm.DB, tableID uint, start, end time.Time) ([]models.Reservation, error) {
	live, err := s.reservationRepo.FindLiveByTable(ctx, tx, tableID)
	if err != nil {
		return nil, err
	}

	var conflicts []models.Reservation
	for _, reservation := range live {
		if reservation.Overlaps(start, end) {
			conflicts = append(conflicts, reservation)
		}
	}
	return conflicts, nil
}
