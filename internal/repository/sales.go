package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shinmonzen/purchasing-tracker/internal/entity"
)

// SalesRepository persists parsed POS sales records.
type SalesRepository interface {
	Save(ctx context.Context, records []entity.SalesRecord) error
	ListByMonth(ctx context.Context, month string) ([]entity.SalesRecord, error)
	ListAll(ctx context.Context) ([]entity.SalesRecord, error)
}

type salesRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSalesRepository(db *sql.DB, logger *slog.Logger) SalesRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &salesRepository{db: db, logger: logger}
}

func (r *salesRepository) Save(ctx context.Context, records []entity.SalesRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `INSERT INTO sales_records
		(id, code, name, category, qty, price, gross_total, discount, net_total, month)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, q,
			uuid.NewString(), rec.Code, rec.Name, rec.Category,
			rec.Qty, rec.Price, rec.GrossTotal, rec.Discount, rec.NetTotal, rec.Month,
		); err != nil {
			return fmt.Errorf("insert sales record: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	r.logger.Debug("repo.sales.saved", "records", len(records))
	return nil
}

func (r *salesRepository) ListByMonth(ctx context.Context, month string) ([]entity.SalesRecord, error) {
	const q = `SELECT code, name, category, qty, price, gross_total, discount, net_total, month
		FROM sales_records WHERE month = ? ORDER BY code`
	rows, err := r.db.QueryContext(ctx, q, month)
	if err != nil {
		return nil, fmt.Errorf("query sales records: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanSalesRecords(rows)
}

func (r *salesRepository) ListAll(ctx context.Context) ([]entity.SalesRecord, error) {
	const q = `SELECT code, name, category, qty, price, gross_total, discount, net_total, month
		FROM sales_records ORDER BY month, code`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query sales records: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanSalesRecords(rows)
}

func scanSalesRecords(rows *sql.Rows) ([]entity.SalesRecord, error) {
	var records []entity.SalesRecord
	for rows.Next() {
		var rec entity.SalesRecord
		if err := rows.Scan(&rec.Code, &rec.Name, &rec.Category, &rec.Qty, &rec.Price,
			&rec.GrossTotal, &rec.Discount, &rec.NetTotal, &rec.Month); err != nil {
			return nil, fmt.Errorf("scan sales record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
