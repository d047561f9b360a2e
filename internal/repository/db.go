package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS line_items (
	id            TEXT PRIMARY KEY,
	batch_id      TEXT NOT NULL,
	vendor        TEXT NOT NULL,
	date          TEXT NOT NULL,
	date_inferred INTEGER NOT NULL DEFAULT 0,
	item_name     TEXT NOT NULL,
	quantity      REAL NOT NULL,
	unit          TEXT NOT NULL,
	unit_price    REAL NOT NULL,
	amount        REAL NOT NULL,
	created_at    TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_line_items_date ON line_items(date);
CREATE INDEX IF NOT EXISTS idx_line_items_vendor ON line_items(vendor);

CREATE TABLE IF NOT EXISTS sales_records (
	id          TEXT PRIMARY KEY,
	code        TEXT NOT NULL,
	name        TEXT NOT NULL,
	category    TEXT,
	qty         REAL NOT NULL,
	price       REAL NOT NULL,
	gross_total REAL NOT NULL,
	discount    REAL NOT NULL,
	net_total   REAL NOT NULL,
	month       TEXT,
	created_at  TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_sales_records_month ON sales_records(month);
`

// Open opens (or creates) the SQLite database and bootstraps the schema.
// Use ":memory:" for an ephemeral store.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("opening database", "path", path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}
	return db, nil
}

// Close closes the database gracefully.
func Close(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}
}
