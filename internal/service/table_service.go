package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tablebook/reservation-service/internal/models"
	"github.com/tablebook/reservation-service/internal/notify"
	"github.com/tablebook/reservation-service/internal/repository"
	"gorm.io/gorm"
)

type CreateTableInput struct {
	TableNumber string
	Capacity    int
	MinCapacity int
	Section     string
}

type UpdateTableInput struct {
	TableNumber *string
	Capacity    *int
	MinCapacity *int
	Section     *string
}

type TableService interface {
	Create(ctx context.Context, restaurantID uint, in CreateTableInput) (*models.Table, error)
	BulkCreate(ctx context.Context, restaurantID uint, ins []CreateTableInput) ([]models.Table, error)
	GetByID(ctx context.Context, id uint) (*models.Table, error)
	ListByRestaurant(ctx context.Context, restaurantID uint) ([]models.Table, error)
	Update(ctx context.Context, id uint, in UpdateTableInput) (*models.Table, error)
	UpdateStatus(ctx context.Context, id uint, status models.TableStatus) (*models.Table, error)
	Activate(ctx context.Context, id uint) error
	Deactivate(ctx context.Context, id uint) error
}

type tableService struct {
	tableRepo      repository.TableRepository
	restaurantRepo repository.RestaurantRepository
	sink           notify.Sink
}

func NewTableService(tableRepo repository.TableRepository, restaurantRepo repository.RestaurantRepository, sink notify.Sink) TableService {
	return &tableService{
		tableRepo:      tableRepo,
		restaurantRepo: restaurantRepo,
		sink:           sink,
	}
}

func (s *tableService) Create(ctx context.Context, restaurantID uint, in CreateTableInput) (*models.Table, error) {
	if _, err := s.restaurantRepo.FindByID(ctx, restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("load restaurant %d: %w", restaurantID, err)
	}

	table := newTable(restaurantID, in)
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *tableService) BulkCreate(ctx context.Context, restaurantID uint, ins []CreateTableInput) ([]models.Table, error) {
	if _, err := s.restaurantRepo.FindByID(ctx, restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("load restaurant %d: %w", restaurantID, err)
	}

	tables := make([]models.Table, len(ins))
	for i, in := range ins {
		tables[i] = *newTable(restaurantID, in)
	}
	if err := s.tableRepo.CreateBatch(ctx, tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func newTable(restaurantID uint, in CreateTableInput) *models.Table {
	minCapacity := in.MinCapacity
	if minCapacity < 1 {
		minCapacity = 1
	}
	return &models.Table{
		RestaurantID: restaurantID,
		TableNumber:  in.TableNumber,
		Capacity:     in.Capacity,
		MinCapacity:  minCapacity,
		Section:      in.Section,
		Status:       models.TableAvailable,
		Active:       true,
	}
}

func (s *tableService) GetByID(ctx context.Context, id uint) (*models.Table, error) {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("load table %d: %w", id, err)
	}
	return table, nil
}

func (s *tableService) ListByRestaurant(ctx context.Context, restaurantID uint) ([]models.Table, error) {
	return s.tableRepo.FindActiveByRestaurant(ctx, nil, restaurantID)
}

func (s *tableService) Update(ctx context.Context, id uint, in UpdateTableInput) (*models.Table, error) {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("load table %d: %w", id, err)
	}

	if in.TableNumber != nil {
		table.TableNumber = *in.TableNumber
	}
	if in.Capacity != nil {
		table.Capacity = *in.Capacity
	}
	if in.MinCapacity != nil {
		table.MinCapacity = *in.MinCapacity
	}
	if in.Section != nil {
		table.Section = *in.Section
	}

	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *tableService) UpdateStatus(ctx context.Context, id uint, status models.TableStatus) (*models.Table, error) {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("load table %d: %w", id, err)
	}

	table.Status = status
	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}

	if s.sink != nil {
		s.sink.Emit(notify.EventTableStatusChanged, table.RestaurantID, table)
	}
	return table, nil
}

func (s *tableService) Activate(ctx context.Context, id uint) error {
	return s.setActive(ctx, id, true, models.TableAvailable)
}

func (s *tableService) Deactivate(ctx context.Context, id uint) error {
	return s.setActive(ctx, id, false, models.TableUnavailable)
}

func (s *tableService) setActive(ctx context.Context, id uint, active bool, status models.TableStatus) error {
	table, err := s.tableRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTableNotFound
		}
		return fmt.Errorf("load table %d: %w", id, err)
	}
	table.Active = active
	table.Status = status
	if err := s.tableRepo.Save(ctx, table); err != nil {
		return err
	}
	if s.sink != nil {
		s.sink.Emit(notify.EventTableStatusChanged, table.RestaurantID, table)
	}
	return nil
}
