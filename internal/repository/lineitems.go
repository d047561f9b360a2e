package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shinmonzen/purchasing-tracker/internal/entity"
)

// LineItemRepository persists extracted invoice line items.
type LineItemRepository interface {
	SaveBatch(ctx context.Context, batchID uuid.UUID, items []entity.LineItem) error
	ListByDateRange(ctx context.Context, from, to string) ([]entity.LineItem, error)
	ListAll(ctx context.Context) ([]entity.LineItem, error)
}

type lineItemRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewLineItemRepository(db *sql.DB, logger *slog.Logger) LineItemRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &lineItemRepository{db: db, logger: logger}
}

func (r *lineItemRepository) SaveBatch(ctx context.Context, batchID uuid.UUID, items []entity.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `INSERT INTO line_items
		(id, batch_id, vendor, date, date_inferred, item_name, quantity, unit, unit_price, amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, q,
			uuid.NewString(), batchID.String(),
			it.Vendor, it.Date, it.DateInferred, it.ItemName,
			it.Quantity, it.Unit, it.UnitPrice, it.Amount,
		); err != nil {
			return fmt.Errorf("insert line item: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	r.logger.Debug("repo.line_items.saved", "batch_id", batchID.String(), "items", len(items))
	return nil
}

// ListByDateRange returns items with from <= date <= to. Dates are ISO-8601
// strings, so lexicographic range compare is correct.
func (r *lineItemRepository) ListByDateRange(ctx context.Context, from, to string) ([]entity.LineItem, error) {
	const q = `SELECT vendor, date, date_inferred, item_name, quantity, unit, unit_price, amount
		FROM line_items WHERE date >= ? AND date <= ? ORDER BY date, item_name`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, fmt.Errorf("query line items: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanLineItems(rows)
}

func (r *lineItemRepository) ListAll(ctx context.Context) ([]entity.LineItem, error) {
	const q = `SELECT vendor, date, date_inferred, item_name, quantity, unit, unit_price, amount
		FROM line_items ORDER BY date, item_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query line items: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanLineItems(rows)
}

func scanLineItems(rows *sql.Rows) ([]entity.LineItem, error) {
	var items []entity.LineItem
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.Vendor, &it.Date, &it.DateInferred, &it.ItemName,
			&it.Quantity, &it.Unit, &it.UnitPrice, &it.Amount); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
