package repository

import (
	"context"

	"github.com/tablebook/reservation-service/internal/models"
	"gorm.io/gorm"
)

type TableRepository interface {
	Create(ctx context.Context, table *models.Table) error
	CreateBatch(ctx context.Context, tables []models.Table) error
	FindByID(ctx context.Context, id uint) (*models.Table, error)
	FindActiveByRestaurant(ctx context.Context, tx *gorm.DB, restaurantID uint) ([]models.Table, error)
	Save(ctx context.Context, table *models.Table) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, tableID uint, status models.TableStatus) error
}

type tableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

// dbOr returns tx when the caller is inside a transaction, the repository's
// own handle otherwise.
func (r *tableRepository) dbOr(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *tableRepository) Create(ctx context.Context, table *models.Table) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *tableRepository) CreateBatch(ctx context.Context, tables []models.Table) error {
	return r.db.WithContext(ctx).Create(&tables).Error
}

func (r *tableRepository) FindByID(ctx context.Context, id uint) (*models.Table, error) {
	var table models.Table
	if err := r.db.WithContext(ctx).First(&table, id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *tableRepository) FindActiveByRestaurant(ctx context.Context, tx *gorm.DB, restaurantID uint) ([]models.Table, error) {
	var tables []models.Table
	if err := r.dbOr(tx).WithContext(ctx).
		Where("restaurant_id = ? AND active = ?", restaurantID, true).
		Order("id ASC").
		Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *tableRepository) Save(ctx context.Context, table *models.Table) error {
	return r.db.WithContext(ctx).Save(table).Error
}

func (r *tableRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, tableID uint, status models.TableStatus) error {
	return r.dbOr(tx).WithContext(ctx).
		Model(&models.Table{}).
		Where("id = ?", tableID).
		Update("status", status).Error
}
