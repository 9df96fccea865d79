package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tablebook/reservation-service/internal/models"
	"gorm.io/gorm"
)

// ErrWindowTaken is returned when the database exclusion constraint rejects a
// reservation whose window overlaps a live one on the same table. It only
// fires when two writers race past the in-transaction conflict check.
var ErrWindowTaken = errors.New("table window already taken")

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error)
	FindByCode(ctx context.Context, code string) (*models.Reservation, error)
	FindBySearchEngineBookingID(ctx context.Context, bookingID string) (*models.Reservation, error)
	FindByCustomer(ctx context.Context, customerID uint) ([]models.Reservation, error)
	FindByRestaurant(ctx context.Context, restaurantID uint) ([]models.Reservation, error)
	FindByRestaurantAndDate(ctx context.Context, restaurantID uint, day time.Time) ([]models.Reservation, error)
	FindLiveByTable(ctx context.Context, tx *gorm.DB, tableID uint) ([]models.Reservation, error)
	FindNeedingReminder(ctx context.Context, from, to time.Time) ([]models.Reservation, error)
	MarkReminderSent(ctx context.Context, id uint) error
	Save(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) dbOr(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	if err := r.dbOr(tx).WithContext(ctx).Create(reservation).Error; err != nil {
		if isOverlapViolation(err) {
			return ErrWindowTaken
		}
		return err
	}
	return nil
}

func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23P01" &&
		pgErr.ConstraintName == "reservations_no_table_overlap"
}

func (r *reservationRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.dbOr(tx).WithContext(ctx).First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) FindByCode(ctx context.Context, code string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) FindBySearchEngineBookingID(ctx context.Context, bookingID string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.db.WithContext(ctx).
		Where("search_engine_booking_id = ?", bookingID).
		First(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) FindByCustomer(ctx context.Context, customerID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("reservation_time DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) FindByRestaurant(ctx context.Context, restaurantID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("reservation_time ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) FindByRestaurantAndDate(ctx context.Context, restaurantID uint, day time.Time) ([]models.Reservation, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND reservation_time >= ? AND reservation_time < ?", restaurantID, start, end).
		Order("reservation_time ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindLiveByTable returns the reservations that currently block the table's
// time slots (confirmed or seated). Interval filtering is done by the caller.
func (r *reservationRepository) FindLiveByTable(ctx context.Context, tx *gorm.DB, tableID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := r.dbOr(tx).WithContext(ctx).
		Where("table_id = ? AND status IN ?", tableID, models.LiveStatuses).
		Order("reservation_time ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) FindNeedingReminder(ctx context.Context, from, to time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("status = ? AND reminder_sent = ? AND reservation_time >= ? AND reservation_time < ?",
			models.StatusConfirmed, false, from, to).
		Order("reservation_time ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *reservationRepository) MarkReminderSent(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("reminder_sent", true).Error
}

func (r *reservationRepository) Save(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	if err := r.dbOr(tx).WithContext(ctx).Save(reservation).Error; err != nil {
		if isOverlapViolation(err) {
			return ErrWindowTaken
		}
		return err
	}
	return nil
}

func (r *reservationRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
