package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tablebook/reservation-service/internal/models"
	"github.com/tablebook/reservation-service/internal/repository"
	"gorm.io/gorm"
)

type CreateRestaurantInput struct {
	Name                       string
	Address                    string
	City                       string
	PhoneNumber                string
	Email                      string
	CuisineType                string
	Description                string
	OpeningTime                string
	ClosingTime                string
	ReservationDurationMinutes int
	BufferTimeMinutes          int
}

type UpdateRestaurantInput struct {
	Name                       *string
	Address                    *string
	City                       *string
	PhoneNumber                *string
	Email                      *string
	CuisineType                *string
	Description                *string
	OpeningTime                *string
	ClosingTime                *string
	ReservationDurationMinutes *int
	BufferTimeMinutes          *int
}

type RestaurantService interface {
	Create(ctx context.Context, in CreateRestaurantInput) (*models.Restaurant, error)
	GetByID(ctx context.Context, id uint) (*models.Restaurant, error)
	ListActive(ctx context.Context) ([]models.Restaurant, error)
	Update(ctx context.Context, id uint, in UpdateRestaurantInput) (*models.Restaurant, error)
	Deactivate(ctx context.Context, id uint) error
}

type restaurantService struct {
	repo repository.RestaurantRepository
}

func NewRestaurantService(repo repository.RestaurantRepository) RestaurantService {
	return &restaurantService{repo: repo}
}

func (s *restaurantService) Create(ctx context.Context, in CreateRestaurantInput) (*models.Restaurant, error) {
	duration := in.ReservationDurationMinutes
	if duration <= 0 {
		duration = 120
	}
	buffer := in.BufferTimeMinutes
	if buffer < 0 {
		buffer = 15
	}

	restaurant := &models.Restaurant{
		Name:                       in.Name,
		Address:                    in.Address,
		City:                       in.City,
		PhoneNumber:                in.PhoneNumber,
		Email:                      in.Email,
		CuisineType:                in.CuisineType,
		Description:                in.Description,
		OpeningTime:                in.OpeningTime,
		ClosingTime:                in.ClosingTime,
		ReservationDurationMinutes: duration,
		BufferTimeMinutes:          buffer,
		Active:                     true,
	}
	if err := s.repo.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *restaurantService) GetByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	restaurant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("load restaurant %d: %w", id, err)
	}
	return restaurant, nil
}

func (s *restaurantService) ListActive(ctx context.Context) ([]models.Restaurant, error) {
	return s.repo.FindActive(ctx)
}

func (s *restaurantService) Update(ctx context.Context, id uint, in UpdateRestaurantInput) (*models.Restaurant, error) {
	restaurant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("load restaurant %d: %w", id, err)
	}

	if in.Name != nil {
		restaurant.Name = *in.Name
	}
	if in.Address != nil {
		restaurant.Address = *in.Address
	}
	if in.City != nil {
		restaurant.City = *in.City
	}
	if in.PhoneNumber != nil {
		restaurant.PhoneNumber = *in.PhoneNumber
	}
	if in.Email != nil {
		restaurant.Email = *in.Email
	}
	if in.CuisineType != nil {
		restaurant.CuisineType = *in.CuisineType
	}
	if in.Description != nil {
		restaurant.Description = *in.Description
	}
	if in.OpeningTime != nil {
		restaurant.OpeningTime = *in.OpeningTime
	}
	if in.ClosingTime != nil {
		restaurant.ClosingTime = *in.ClosingTime
	}
	if in.ReservationDurationMinutes != nil {
		restaurant.ReservationDurationMinutes = *in.ReservationDurationMinutes
	}
	if in.BufferTimeMinutes != nil {
		restaurant.BufferTimeMinutes = *in.BufferTimeMinutes
	}

	if err := s.repo.Save(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *restaurantService) Deactivate(ctx context.Context, id uint) error {
	restaurant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRestaurantNotFound
		}
		return fmt.Errorf("load restaurant %d: %w", id, err)
	}
	restaurant.Active = false
	return s.repo.Save(ctx, restaurant)
}
