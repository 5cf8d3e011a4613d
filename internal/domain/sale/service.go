package sale

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Create(ctx context.Context, userID int, s Sale) (int64, error)
	List(ctx context.Context, userID int) ([]Sale, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "sale_service"),
	}
}

func (s *Service) Create(ctx context.Context, userID int, sl Sale) (int64, error) {
	if sl.InvoiceID == "" {
		return 0, fmt.Errorf("%w: пустой invoice_id", ErrInvalidInput)
	}
	if sl.Amount < 0 {
		return 0, fmt.Errorf("%w: отрицательная сумма", ErrInvalidInput)
	}
	return s.repo.Create(ctx, userID, &sl)
}

func (s *Service) List(ctx context.Context, userID int) ([]Sale, error) {
	return s.repo.List(ctx, userID)
}
