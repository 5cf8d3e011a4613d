package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"lavka/internal/domain/ledger"
)

type LedgerRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewLedgerRepository(pool *pgxpool.Pool, log *slog.Logger) *LedgerRepository {
	return &LedgerRepository{
		pool: pool,
		log:  log.With("component", "ledger_repository"),
	}
}

// AddEntry заводит покупателя при первой записи (upsert по имени) и
// добавляет строку в книгу
func (r *LedgerRepository) AddEntry(ctx context.Context, userID int, entry *ledger.Entry) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var customerID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO customers (user_id, name) VALUES ($1, $2)
         ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
         RETURNING id`,
		userID, entry.CustomerName).Scan(&customerID)
	if err != nil {
		r.log.Error("failed to upsert customer", "name", entry.CustomerName, "error", err)
		return 0, fmt.Errorf("upsert customer: %w", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO ledger_entries (customer_id, amount, note, date)
         VALUES ($1, $2, $3, $4) RETURNING id`,
		customerID, entry.Amount, entry.Note, entry.Date).Scan(&entry.ID)
	if err != nil {
		r.log.Error("failed to add ledger entry", "customer_id", customerID, "error", err)
		return 0, fmt.Errorf("add ledger entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return entry.ID, nil
}

func (r *LedgerRepository) Customers(ctx context.Context, userID int) ([]ledger.Customer, error) {
	const query = `
		SELECT c.id, c.name, c.phone, COALESCE(SUM(e.amount), 0) AS balance
		FROM customers c
		LEFT JOIN ledger_entries e ON e.customer_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id, c.name, c.phone
		ORDER BY c.name`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list customers", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]ledger.Customer, 0)
	for rows.Next() {
		var c ledger.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Balance); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}

func (r *LedgerRepository) Entries(ctx context.Context, userID int, customerName string) ([]ledger.Entry, error) {
	const query = `
		SELECT e.id, c.name, e.amount, e.note, e.date
		FROM ledger_entries e
		JOIN customers c ON c.id = e.customer_id
		WHERE c.user_id = $1 AND c.name = $2
		ORDER BY e.date`

	rows, err := r.pool.Query(ctx, query, userID, customerName)
	if err != nil {
		r.log.Error("failed to list entries", "customer", customerName, "error", err)
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]ledger.Entry, 0)
	for rows.Next() {
		var e ledger.Entry
		if err := rows.Scan(&e.ID, &e.CustomerName, &e.Amount, &e.Note, &e.Date); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
