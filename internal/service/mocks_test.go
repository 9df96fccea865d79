package service

import (
	"context"
	"time"

	"github.com/tablebook/reservation-service/internal/models"
	"gorm.io/gorm"
)

// --- Mock ReservationRepository ---

type mockReservationRepo struct {
	createFn              func(ctx context.Context, tx *gorm.DB, r *models.Reservation) error
	findByIDFn            func(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error)
	findByCodeFn          func(ctx context.Context, code string) (*models.Reservation, error)
	findByBookingIDFn     func(ctx context.Context, bookingID string) (*models.Reservation, error)
	findByCustomerFn      func(ctx context.Context, customerID uint) ([]models.Reservation, error)
	findByRestaurantFn    func(ctx context.Context, restaurantID uint) ([]models.Reservation, error)
	findLiveByTableFn     func(ctx context.Context, tx *gorm.DB, tableID uint) ([]models.Reservation, error)
	findNeedingReminderFn func(ctx context.Context, from, to time.Time) ([]models.Reservation, error)
	markReminderSentFn    func(ctx context.Context, id uint) error
	saveFn                func(ctx context.Context, tx *gorm.DB, r *models.Reservation) error
}

func (m *mockReservationRepo) Create(ctx context.Context, tx *gorm.DB, r *models.Reservation) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, r)
	}
	return nil
}

func (m *mockReservationRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
	return m.findByIDFn(ctx, tx, id)
}

func (m *mockReservationRepo) FindByCode(ctx context.Context, code string) (*models.Reservation, error) {
	return m.findByCodeFn(ctx, code)
}

func (m *mockReservationRepo) FindBySearchEngineBookingID(ctx context.Context, bookingID string) (*models.Reservation, error) {
	return m.findByBookingIDFn(ctx, bookingID)
}

func (m *mockReservationRepo) FindByCustomer(ctx context.Context, customerID uint) ([]models.Reservation, error) {
	return m.findByCustomerFn(ctx, customerID)
}

func (m *mockReservationRepo) FindByRestaurant(ctx context.Context, restaurantID uint) ([]models.Reservation, error) {
	return m.findByRestaurantFn(ctx, restaurantID)
}

func (m *mockReservationRepo) FindByRestaurantAndDate(ctx context.Context, restaurantID uint, day time.Time) ([]models.Reservation, error) {
	return m.findByRestaurantFn(ctx, restaurantID)
}

func (m *mockReservationRepo) FindLiveByTable(ctx context.Context, tx *gorm.DB, tableID uint) ([]models.Reservation, error) {
	if m.findLiveByTableFn != nil {
		return m.findLiveByTableFn(ctx, tx, tableID)
	}
	return nil, nil
}

func (m *mockReservationRepo) FindNeedingReminder(ctx context.Context, from, to time.Time) ([]models.Reservation, error) {
	return m.findNeedingReminderFn(ctx, from, to)
}

func (m *mockReservationRepo) MarkReminderSent(ctx context.Context, id uint) error {
	return m.markReminderSentFn(ctx, id)
}

func (m *mockReservationRepo) Save(ctx context.Context, tx *gorm.DB, r *models.Reservation) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, tx, r)
	}
	return nil
}

func (m *mockReservationRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// --- Mock RestaurantRepository ---

type mockRestaurantRepo struct {
	findByIDFn func(ctx context.Context, id uint) (*models.Restaurant, error)
	createFn   func(ctx context.Context, r *models.Restaurant) error
	saveFn     func(ctx context.Context, r *models.Restaurant) error
	findActive func(ctx context.Context) ([]models.Restaurant, error)
}

func (m *mockRestaurantRepo) Create(ctx context.Context, r *models.Restaurant) error {
	if m.createFn != nil {
		return m.createFn(ctx, r)
	}
	return nil
}

func (m *mockRestaurantRepo) FindByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockRestaurantRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Restaurant, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockRestaurantRepo) FindActive(ctx context.Context) ([]models.Restaurant, error) {
	return m.findActive(ctx)
}

func (m *mockRestaurantRepo) Save(ctx context.Context, r *models.Restaurant) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, r)
	}
	return nil
}

// --- Mock TableRepository ---

type mockTableRepo struct {
	findByIDFn               func(ctx context.Context, id uint) (*models.Table, error)
	findActiveByRestaurantFn func(ctx context.Context, tx *gorm.DB, restaurantID uint) ([]models.Table, error)
	updateStatusFn           func(ctx context.Context, tx *gorm.DB, tableID uint, status models.TableStatus) error
	createFn                 func(ctx context.Context, t *models.Table) error
	createBatchFn            func(ctx context.Context, ts []models.Table) error
	saveFn                   func(ctx context.Context, t *models.Table) error
}

func (m *mockTableRepo) Create(ctx context.Context, t *models.Table) error {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	return nil
}

func (m *mockTableRepo) CreateBatch(ctx context.Context, ts []models.Table) error {
	if m.createBatchFn != nil {
		return m.createBatchFn(ctx, ts)
	}
	return nil
}

func (m *mockTableRepo) FindByID(ctx context.Context, id uint) (*models.Table, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockTableRepo) FindActiveByRestaurant(ctx context.Context, tx *gorm.DB, restaurantID uint) ([]models.Table, error) {
	return m.findActiveByRestaurantFn(ctx, tx, restaurantID)
}

func (m *mockTableRepo) Save(ctx context.Context, t *models.Table) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, t)
	}
	return nil
}

func (m *mockTableRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, tableID uint, status models.TableStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, tx, tableID, status)
	}
	return nil
}

// --- Mock CustomerRepository ---

type mockCustomerRepo struct {
	findByIDFn    func(ctx context.Context, id uint) (*models.Customer, error)
	findByEmailFn func(ctx context.Context, email string) (*models.Customer, error)
	createFn      func(ctx context.Context, c *models.Customer) error
}

func (m *mockCustomerRepo) Create(ctx context.Context, c *models.Customer) error {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	return nil
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockCustomerRepo) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

// --- Recording notification sink ---

type sinkEvent struct {
	Type         string
	RestaurantID uint
	Payload      any
}

type recordingSink struct {
	events []sinkEvent
}

func (s *recordingSink) Emit(eventType string, restaurantID uint, payload any) {
	s.events = append(s.events, sinkEvent{Type: eventType, RestaurantID: restaurantID, Payload: payload})
}
