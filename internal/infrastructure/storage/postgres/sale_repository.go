package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"lavka/internal/domain/operation"
	"lavka/internal/domain/sale"
)

type SaleRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewSaleRepository(pool *pgxpool.Pool, log *slog.Logger) *SaleRepository {
	return &SaleRepository{
		pool: pool,
		log:  log.With("component", "sale_repository"),
	}
}

// Create пишет чек в журнал. При повторе invoice_id вставка не происходит,
// возвращается id уже существующей строки: клиент переигрывает очередь и
// может прислать один чек дважды.
func (r *SaleRepository) Create(ctx context.Context, userID int, s *sale.Sale) (int64, error) {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return 0, fmt.Errorf("marshal items: %w", err)
	}

	const query = `
		INSERT INTO sales (user_id, invoice_id, date, amount, customer, items, item_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, invoice_id) DO NOTHING
		RETURNING id`

	err = r.pool.QueryRow(ctx, query,
		userID, s.InvoiceID, s.Date, s.Amount, s.Customer, items, s.ItemCount(),
	).Scan(&s.ID)
	if err == nil {
		return s.ID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.log.Error("failed to create sale", "invoice_id", s.InvoiceID, "user_id", userID, "error", err)
		return 0, fmt.Errorf("create sale: %w", err)
	}

	// Конфликт: чек уже записан предыдущей доставкой
	err = r.pool.QueryRow(ctx,
		`SELECT id FROM sales WHERE user_id = $1 AND invoice_id = $2`,
		userID, s.InvoiceID).Scan(&s.ID)
	if err != nil {
		return 0, fmt.Errorf("find existing sale: %w", err)
	}
	r.log.Debug("duplicate sale ignored", "invoice_id", s.InvoiceID, "id", s.ID)
	return s.ID, nil
}

func (r *SaleRepository) List(ctx context.Context, userID int) ([]sale.Sale, error) {
	const query = `
		SELECT id, invoice_id, date, amount, customer, items
		FROM sales
		WHERE user_id = $1
		ORDER BY date DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list sales", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	sales := make([]sale.Sale, 0)
	for rows.Next() {
		var s sale.Sale
		var items []byte
		if err := rows.Scan(&s.ID, &s.InvoiceID, &s.Date, &s.Amount, &s.Customer, &items); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if err := json.Unmarshal(items, &s.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
		s.Synced = true
		if s.Items == nil {
			s.Items = []operation.SaleItem{}
		}
		sales = append(sales, s)
	}

	return sales, rows.Err()
}
