package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablebook/reservation-service/internal/models"
	"github.com/tablebook/reservation-service/internal/notify"
	"github.com/tablebook/reservation-service/internal/repository"
	"gorm.io/gorm"
)

// futureAt returns a time two days out with the given clock reading, so the
// in-the-future check never interferes with operating-hours scenarios.
func futureAt(hour, min int) time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, time.UTC).AddDate(0, 0, 2)
}

func testRestaurant() *models.Restaurant {
	return &models.Restaurant{
		ID:                         1,
		Name:                       "Trattoria Nonna",
		OpeningTime:                "11:00",
		ClosingTime:                "22:00",
		ReservationDurationMinutes: 120,
		BufferTimeMinutes:          15,
		Active:                     true,
	}
}

type serviceFixture struct {
	reservationRepo *mockReservationRepo
	restaurantRepo  *mockRestaurantRepo
	tableRepo       *mockTableRepo
	customerRepo    *mockCustomerRepo
	sink            *recordingSink
	svc             ReservationService
}

func newFixture(reservationRepo *mockReservationRepo, tableRepo *mockTableRepo) *serviceFixture {
	f := &serviceFixture{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		restaurantRepo: &mockRestaurantRepo{
			findByIDFn: func(ctx context.Context, id uint) (*models.Restaurant, error) {
				if id != 1 {
					return nil, gorm.ErrRecordNotFound
				}
				return testRestaurant(), nil
			},
		},
		customerRepo: &mockCustomerRepo{
			findByIDFn: func(ctx context.Context, id uint) (*models.Customer, error) {
				if id != 1 {
					return nil, gorm.ErrRecordNotFound
				}
				return &models.Customer{ID: 1, Name: "Ada", Email: "ada@example.com"}, nil
			},
		},
		sink: &recordingSink{},
	}
	availability := NewAvailabilityService(tableRepo, reservationRepo)
	f.svc = NewReservationService(reservationRepo, f.restaurantRepo, tableRepo, f.customerRepo, availability, f.sink)
	return f
}

func singleTableRepo() *mockTableRepo {
	return &mockTableRepo{
		findActiveByRestaurantFn: func(ctx context.Context, tx *gorm.DB, restaurantID uint) ([]models.Table, error) {
			return []models.Table{{ID: 1, RestaurantID: 1, Capacity: 4, MinCapacity: 2, Active: true}}, nil
		},
		findByIDFn: func(ctx context.Context, id uint) (*models.Table, error) {
			return &models.Table{ID: 1, RestaurantID: 1, Capacity: 4, MinCapacity: 2, Active: true}, nil
		},
	}
}

var codePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func TestCreateReservation_Success(t *testing.T) {
	reservationRepo := &mockReservationRepo{
		createFn: func(ctx context.Context, tx *gorm.DB, r *models.Reservation) error {
			r.ID = 42
			return nil
		},
	}
	f := newFixture(reservationRepo, singleTableRepo())

	reservation, err := f.svc.Create(context.Background(), CreateReservationInput{
		RestaurantID:    1,
		CustomerID:      1,
		ReservationTime: futureAt(18, 0),
		PartySize:       3,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(42), reservation.ID)
	assert.Equal(t, models.StatusConfirmed, reservation.Status)
	require.NotNil(t, reservation.TableID)
	assert.Equal(t, uint(1), *reservation.TableID)
	assert.Equal(t, 120, reservation.DurationMinutes, "should fall back to restaurant default")
	assert.Regexp(t, codePattern, reservation.Code)

	require.Len(t, f.sink.events, 1)
	assert.Equal(t, notify.EventReservationCreated, f.sink.events[0].Type)
	assert.Equal(t, uint(1), f.sink.events[0].RestaurantID)
}

func TestCreateReservation_OverlappingWindowConflicts(t *testing.T) {
	// Table booked 18:00-20:00; a 19:00 request for 120 minutes must fail.
	existing := confirmedAt(10, 1, futureAt(18, 0), 120)
	reservationRepo := &mockReservationRepo{
		findLiveByTableFn: func(ctx context.Context, tx *gorm.DB, tableID uint) ([]models.Reservation, error) {
			return []models.Reservation{existing}, nil
		},
	}
	f := newFixture(reservationRepo, singleTableRepo())

	_, err := f.svc.Create(context.Background(), CreateReservationInput{
		RestaurantID:    1,
		CustomerID:      1,
		ReservationTime: futureAt(19, 0),
		PartySize:       3,
	})
	assert.ErrorIs(t, err, ErrNoTablesAvailable)
	assert.Empty(t, f.sink.events, "no event on failed create")
}

func TestCreateReservation_BackToBackSucceeds(t *testing.T) {
	// Table booked 18:00-20:00; a 20:00 request for 120 minutes is fine.
	existing := confirmedAt(10, 1, futureAt(18, 0), 120)
	reservationRepo := &mockReservationRepo{
		findLiveByTableFn: func(ctx context.Context, tx *gorm.DB, tableID uint) ([]models.Reservation, error) {
			return []models.Reservation{existing}, nil
		},
	}
	f := newFixture(reservationRepo, singleTableRepo())

	reservation, err := f.svc.Create(context.Background(), CreateReservationInput{
		RestaurantID:    1,
		CustomerID:      1,
		ReservationTime: futureAt(20, 0),
		PartySize:       3,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, reservation.Status)
	require.NotNil(t, reservation.TableID)
}

func TestCreateReservation_Validation(t *testing.T) {
	t.Run("restaurant not found", func(t *testing.T) {
		f := newFixture(&mockReservationRepo{}, singleTableRepo())
		_, err := f.svc.Create(context.Background(), CreateReservationInput{
			RestaurantID: 99, CustomerID: 1, ReservationTime: futureAt(18, 0), PartySize: 2,
		})
		assert.ErrorIs(t, err, ErrRestaurantNotFound)
	})

	t.Run("inactive restaurant", func(t *testing.T) {
		f := newFixture(&mockReservationRepo{}, singleTableRepo())
		f.restaurantRepo.findByIDFn = func(ctx context.Context, id uint) (*models.Restaurant, error) {
			r := testRestaurant()
			r.Active = false
			return r, nil
		}
		_, err := f.svc.Create(context.Background(), CreateReservationInput{
			RestaurantID: 1, CustomerID: 1, ReservationTime: futureAt(18, 0), PartySize: 2,
		})
		assert.ErrorIs(t, err, ErrRestaurantNotFound)
	})

	t.Run("customer not found", func(t *testing.T) {
		f := newFixture(&mockReservationRepo{}, singleTableRepo())
		_, err := f.svc.Create(context.Background(), CreateReservationInput{
			RestaurantID: 1, CustomerID: 99, ReservationTime: futureAt(18, 0), PartySize: 2,
		})
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})

	t.Run("time in past", func(t *testing.T) {
		f := newFixture(&mockReservationRepo{}, singleTableRepo())
		_, err := f.svc.Create(context.Background(), CreateReservationInput{
			RestaurantID: 1, CustomerID: 1, ReservationTime: time.Now().Add(-time.Hour), PartySize: 2,
		})
		assert.ErrorIs(t, err, ErrTimeInPast)
	})

	t.Run("window runs past closing", func(t *testing.T) {
		f := newFixture(&mockReservationRepo{}, singleTableRepo())
		_, err := f.svc.Create(context.Background(), CreateReservationInput{
			RestaurantID: 1, CustomerID: 1, ReservationTime: futureAt(21, 30), PartySize: 2,
		})
		assert.ErrorIs(t, err, ErrOutsideOperatingHours)
	})

	t.Run("party size below one", func(t *testing.T) {
		f := newFixture(&mockReservationRepo{}, singleTableRepo())
		_, err := f.svc.Create(context.Background(), CreateReservationInput{
			RestaurantID: 1, CustomerID: 1, ReservationTime: futureAt(18, 0), PartySize: 0,
		})
		assert.ErrorIs(t, err, ErrInvalidPartySize)
	})
}

func TestCreateReservation_RaceLoserGets409(t *testing.T) {
	// A writer that slipped past the in-transaction check is stopped by the
	// database exclusion constraint; that surfaces as a booking conflict,
	// not an infrastructure failure.
	reservationRepo := &mockReservationRepo{
		createFn: func(ctx context.Context, tx *gorm.DB, r *models.Reservation) error {
			return repository.ErrWindowTaken
		},
	}
	f := newFixture(reservationRepo, singleTableRepo())

	_, err := f.svc.Create(context.Background(), CreateReservationInput{
		RestaurantID:    1,
		CustomerID:      1,
		ReservationTime: futureAt(19, 0),
		PartySize:       2,
	})
	assert.ErrorIs(t, err, ErrTableConflict)
	assert.Empty(t, f.sink.events)
}

func TestCreateReservation_StoreOutageIsNotNotFound(t *testing.T) {
	f := newFixture(&mockReservationRepo{}, singleTableRepo())
	f.restaurantRepo.findByIDFn = func(ctx context.Context, id uint) (*models.Restaurant, error) {
		return nil, errors.New("connection refused")
	}

	_, err := f.svc.Create(context.Background(), CreateReservationInput{
		RestaurantID: 1, CustomerID: 1, ReservationTime: futureAt(18, 0), PartySize: 2,
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRestaurantNotFound)
	assert.ErrorContains(t, err, "connection refused")
}

func TestGetReservation_StoreOutageIsNotNotFound(t *testing.T) {
	reservationRepo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
			return nil, errors.New("connection refused")
		},
	}
	f := newFixture(reservationRepo, singleTableRepo())

	_, err := f.svc.GetByID(context.Background(), 7)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrReservationNotFound)
}

func TestCancelReservation_IdempotenceGuard(t *testing.T) {
	tableID := uint(1)
	stored := &models.Reservation{
		ID:              7,
		RestaurantID:    1,
		CustomerID:      1,
		TableID:         &tableID,
		ReservationTime: futureAt(18, 0),
		DurationMinutes: 120,
		PartySize:       2,
		Status:          models.StatusConfirmed,
	}
	reservationRepo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
			return stored, nil
		},
	}
	f := newFixture(reservationRepo, singleTableRepo())

	cancelled, err := f.svc.Cancel(context.Background(), 7, "change of plans")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, "change of plans", cancelled.CancellationReason)
	require.NotNil(t, cancelled.CancellationTime)
	firstCancelTime := *cancelled.CancellationTime

	_, err = f.svc.Cancel(context.Background(), 7, "again")
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Equal(t, firstCancelTime, *stored.CancellationTime, "second cancel must not touch the timestamp")
	assert.Equal(t, "change of plans", stored.CancellationReason)

	require.Len(t, f.sink.events, 1)
	assert.Equal(t, notify.EventReservationCancelled, f.sink.events[0].Type)
}

func TestCancelReservation_CompletedIsTerminal(t *testing.T) {
	stored := &models.Reservation{ID: 7, RestaurantID: 1, Status: models.StatusCompleted}
	reservationRepo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
			return stored, nil
		},
	}
	f := newFixture(reservationRepo, singleTableRepo())

	_, err := f.svc.Cancel(context.Background(), 7, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_SeatedMarksTableOccupied(t *testing.T) {
	tableID := uint(1)
	stored := &models.Reservation{
		ID: 7, RestaurantID: 1, TableID: &tableID, Status: models.StatusConfirmed,
	}
	reservationRepo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
			return stored, nil
		},
	}
	tableRepo := singleTableRepo()
	var tableStatusSet models.TableStatus
	tableRepo.updateStatusFn = func(ctx context.Context, tx *gorm.DB, id uint, status models.TableStatus) error {
		tableStatusSet = status
		return nil
	}
	f := newFixture(reservationRepo, tableRepo)

	reservation, err := f.svc.UpdateStatus(context.Background(), 7, models.StatusSeated)
	require.NoError(t, err)

	assert.Equal(t, models.StatusSeated, reservation.Status)
	assert.Equal(t, models.TableOccupied, tableStatusSet)
	assert.NotNil(t, reservation.ArrivalTime)
	assert.NotNil(t, reservation.SeatedTime)

	require.Len(t, f.sink.events, 2)
	assert.Equal(t, notify.EventReservationUpdated, f.sink.events[0].Type)
	assert.Equal(t, notify.EventTableStatusChanged, f.sink.events[1].Type)
}

func TestUpdateStatus_CompletedMarksTableCleaning(t *testing.T) {
	tableID := uint(1)
	stored := &models.Reservation{
		ID: 7, RestaurantID: 1, TableID: &tableID, Status: models.StatusSeated,
	}
	reservationRepo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
			return stored, nil
		},
	}
	tableRepo := singleTableRepo()
	var tableStatusSet models.TableStatus
	tableRepo.updateStatusFn = func(ctx context.Context, tx *gorm.DB, id uint, status models.TableStatus) error {
		tableStatusSet = status
		return nil
	}
	f := newFixture(reservationRepo, tableRepo)

	reservation, err := f.svc.UpdateStatus(context.Background(), 7, models.StatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, reservation.Status)
	assert.Equal(t, models.TableCleaning, tableStatusSet)
	assert.NotNil(t, reservation.CompletedTime)
}

func TestUpdateStatus_RejectsIllegalTransition(t *testing.T) {
	stored := &models.Reservation{ID: 7, RestaurantID: 1, Status: models.StatusCompleted}
	reservationRepo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
			return stored, nil
		},
	}
	f := newFixture(reservationRepo, singleTableRepo())

	_, err := f.svc.UpdateStatus(context.Background(), 7, models.StatusSeated)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, f.sink.events)
}

func TestUpdateReservation_OwnSlotDoesNotBlock(t *testing.T) {
	tableID := uint(1)
	stored := &models.Reservation{
		ID:              7,
		RestaurantID:    1,
		CustomerID:      1,
		TableID:         &tableID,
		ReservationTime: futureAt(18, 0),
		DurationMinutes: 120,
		PartySize:       2,
		Status:          models.StatusConfirmed,
	}
	reservationRepo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
			return stored, nil
		},
		findLiveByTableFn: func(ctx context.Context, tx *gorm.DB, id uint) ([]models.Reservation, error) {
			// The only live reservation on the table is the one being moved.
			return []models.Reservation{*stored}, nil
		},
	}
	f := newFixture(reservationRepo, singleTableRepo())

	newTime := futureAt(19, 0)
	reservation, err := f.svc.Update(context.Background(), 7, UpdateReservationInput{
		ReservationTime: &newTime,
	})
	require.NoError(t, err)

	assert.Equal(t, newTime, reservation.ReservationTime)
	require.NotNil(t, reservation.TableID)
	assert.Equal(t, tableID, *reservation.TableID, "should stay on its own table")
}

func TestUpdateReservation_NoTablesForNewWindow(t *testing.T) {
	tableID := uint(2)
	stored := &models.Reservation{
		ID:              7,
		RestaurantID:    1,
		CustomerID:      1,
		TableID:         &tableID,
		ReservationTime: futureAt(18, 0),
		DurationMinutes: 120,
		PartySize:       2,
		Status:          models.StatusConfirmed,
	}
	blocker := confirmedAt(11, 1, futureAt(19, 0), 120)
	reservationRepo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
			return stored, nil
		},
		findLiveByTableFn: func(ctx context.Context, tx *gorm.DB, id uint) ([]models.Reservation, error) {
			return []models.Reservation{blocker}, nil
		},
	}
	f := newFixture(reservationRepo, singleTableRepo())

	newTime := futureAt(19, 0)
	_, err := f.svc.Update(context.Background(), 7, UpdateReservationInput{ReservationTime: &newTime})
	assert.ErrorIs(t, err, ErrNoTablesAvailable)
}

func TestUpdateReservation_TerminalStateRejected(t *testing.T) {
	stored := &models.Reservation{ID: 7, RestaurantID: 1, Status: models.StatusCancelled}
	reservationRepo := &mockReservationRepo{
		findByIDFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
			return stored, nil
		},
	}
	f := newFixture(reservationRepo, singleTableRepo())

	requests := "window seat please"
	_, err := f.svc.Update(context.Background(), 7, UpdateReservationInput{SpecialRequests: &requests})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestFindAvailableTables_InactiveRestaurant(t *testing.T) {
	f := newFixture(&mockReservationRepo{}, singleTableRepo())
	f.restaurantRepo.findByIDFn = func(ctx context.Context, id uint) (*models.Restaurant, error) {
		r := testRestaurant()
		r.Active = false
		return r, nil
	}

	_, err := f.svc.FindAvailableTables(context.Background(), 1, futureAt(18, 0), 2, 0)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}
