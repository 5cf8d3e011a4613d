package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"lavka/internal/domain/inventory"
)

type ItemRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewItemRepository(pool *pgxpool.Pool, log *slog.Logger) *ItemRepository {
	return &ItemRepository{
		pool: pool,
		log:  log.With("component", "item_repository"),
	}
}

func (r *ItemRepository) List(ctx context.Context, userID int) ([]inventory.Item, error) {
	const query = `
		SELECT id, name, sku, quantity_base, price, base_unit, display_unit, factor, updated_at
		FROM items
		WHERE user_id = $1
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list items", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := make([]inventory.Item, 0)
	for rows.Next() {
		var it inventory.Item
		err := rows.Scan(&it.ID, &it.Name, &it.SKU, &it.QuantityBase, &it.Price,
			&it.BaseUnit, &it.DisplayUnit, &it.Factor, &it.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func (r *ItemRepository) Create(ctx context.Context, userID int, item *inventory.Item) (int64, error) {
	const query = `
		INSERT INTO items (user_id, name, sku, quantity_base, price, base_unit, display_unit, factor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, updated_at`

	err := r.pool.QueryRow(ctx, query,
		userID, item.Name, item.SKU, item.QuantityBase, item.Price,
		item.BaseUnit, item.DisplayUnit, item.Factor,
	).Scan(&item.ID, &item.UpdatedAt)
	if err != nil {
		r.log.Error("failed to create item", "user_id", userID, "name", item.Name, "error", err)
		return 0, fmt.Errorf("create item: %w", err)
	}

	return item.ID, nil
}

func (r *ItemRepository) Update(ctx context.Context, userID int, item *inventory.Item) error {
	const query = `
		UPDATE items
		SET name = $1, sku = $2, quantity_base = $3, price = $4,
			base_unit = $5, display_unit = $6, factor = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		item.Name, item.SKU, item.QuantityBase, item.Price,
		item.BaseUnit, item.DisplayUnit, item.Factor,
		item.ID, userID,
	).Scan(&item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return inventory.ErrNotFound
		}
		r.log.Error("failed to update item", "item_id", item.ID, "user_id", userID, "error", err)
		return fmt.Errorf("update item: %w", err)
	}

	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, userID int, itemID int64) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		r.log.Error("failed to delete item", "item_id", itemID, "user_id", userID, "error", err)
		return fmt.Errorf("delete item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return inventory.ErrNotFound
	}
	return nil
}
