package ledger

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	AddEntry(ctx context.Context, userID int, entry Entry) (int64, error)
	Customers(ctx context.Context, userID int) ([]Customer, error)
	Entries(ctx context.Context, userID int, customerName string) ([]Entry, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "ledger_service"),
	}
}

func (s *Service) AddEntry(ctx context.Context, userID int, entry Entry) (int64, error) {
	entry.CustomerName = strings.TrimSpace(entry.CustomerName)
	if entry.CustomerName == "" {
		return 0, fmt.Errorf("%w: пустое имя покупателя", ErrInvalidInput)
	}
	if entry.Amount == 0 {
		return 0, fmt.Errorf("%w: нулевая сумма", ErrInvalidInput)
	}
	return s.repo.AddEntry(ctx, userID, &entry)
}

func (s *Service) Customers(ctx context.Context, userID int) ([]Customer, error) {
	return s.repo.Customers(ctx, userID)
}

func (s *Service) Entries(ctx context.Context, userID int, customerName string) ([]Entry, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, fmt.Errorf("%w: пустое имя покупателя", ErrInvalidInput)
	}
	return s.repo.Entries(ctx, userID, customerName)
}
