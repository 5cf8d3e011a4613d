package inventory

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	List(ctx context.Context, userID int) ([]Item, error)
	Create(ctx context.Context, userID int, item Item) (int64, error)
	Update(ctx context.Context, userID int, item Item) error
	Delete(ctx context.Context, userID int, itemID int64) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "inventory_service"),
	}
}

func (s *Service) List(ctx context.Context, userID int) ([]Item, error) {
	return s.repo.List(ctx, userID)
}

func (s *Service) Create(ctx context.Context, userID int, item Item) (int64, error) {
	if err := validate(&item); err != nil {
		s.log.Debug("validation failed", "name", item.Name, "error", err)
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.repo.Create(ctx, userID, &item)
}

func (s *Service) Update(ctx context.Context, userID int, item Item) error {
	if item.ID <= 0 {
		return fmt.Errorf("%w: не задан id", ErrInvalidInput)
	}
	if err := validate(&item); err != nil {
		s.log.Debug("validation failed", "id", item.ID, "error", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.repo.Update(ctx, userID, &item)
}

func (s *Service) Delete(ctx context.Context, userID int, itemID int64) error {
	if itemID <= 0 {
		return fmt.Errorf("%w: не задан id", ErrInvalidInput)
	}
	return s.repo.Delete(ctx, userID, itemID)
}

func validate(item *Item) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return fmt.Errorf("пустое название")
	}
	if item.QuantityBase < 0 {
		return fmt.Errorf("остаток не может быть отрицательным")
	}
	if item.Price < 0 {
		return fmt.Errorf("цена не может быть отрицательной")
	}
	// Нулевой или отрицательный коэффициент молча не храним
	if item.Factor <= 0 {
		item.Factor = 1
	}
	return nil
}
