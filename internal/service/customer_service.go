package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tablebook/reservation-service/internal/models"
	"github.com/tablebook/reservation-service/internal/repository"
	"gorm.io/gorm"
)

type CustomerService interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, customer *models.Customer) error {
	return s.repo.Create(ctx, customer)
}

func (s *customerService) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("load customer %d: %w", id, err)
	}
	return customer, nil
}
