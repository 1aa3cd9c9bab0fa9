package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"stock-advisor/internal/models"
)

// SQLiteStore implements LedgerStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based ledger store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Trade ledger, one row per trade per instrument
	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		code TEXT NOT NULL,
		trade_date DATETIME NOT NULL,
		action TEXT NOT NULL,
		price REAL NOT NULL,
		shares INTEGER NOT NULL,
		commission REAL NOT NULL DEFAULT 0,
		description TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_trades_code_date ON trades(code, trade_date);

	-- Price history cache, fed externally
	CREATE TABLE IF NOT EXISTS price_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		code TEXT NOT NULL,
		sample_date DATETIME NOT NULL,
		price REAL NOT NULL,
		volume INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(code, sample_date)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveTrade appends one trade to an instrument's stored ledger.
func (s *SQLiteStore) SaveTrade(ctx context.Context, code string, trade models.Trade) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trades (code, trade_date, action, price, shares, commission, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		code, trade.Date, string(trade.Action), trade.Price, trade.Shares, trade.Commission, trade.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}
	return nil
}

// ReplaceLedger rewrites an instrument's stored ledger in one transaction.
func (s *SQLiteStore) ReplaceLedger(ctx context.Context, code string, trades []models.Trade) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trades WHERE code = ?`, code); err != nil {
		return fmt.Errorf("failed to clear ledger: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trades (code, trade_date, action, price, shares, commission, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range trades {
		if _, err := stmt.ExecContext(ctx, code, t.Date, string(t.Action), t.Price, t.Shares, t.Commission, t.Description); err != nil {
			return fmt.Errorf("failed to insert trade: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LoadLedger returns an instrument's trades sorted by trade date, never by
// storage order.
func (s *SQLiteStore) LoadLedger(ctx context.Context, code string) ([]models.Trade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT trade_date, action, price, shares, commission, description
		FROM trades
		WHERE code = ?
		ORDER BY trade_date ASC`, code)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// LoadPortfolio returns every stored ledger keyed by instrument code, each
// sorted by trade date.
func (s *SQLiteStore) LoadPortfolio(ctx context.Context) (map[string][]models.Trade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, trade_date, action, price, shares, commission, description
		FROM trades
		ORDER BY code ASC, trade_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	ledgers := make(map[string][]models.Trade)
	for rows.Next() {
		var (
			code   string
			t      models.Trade
			action string
		)
		if err := rows.Scan(&code, &t.Date, &action, &t.Price, &t.Shares, &t.Commission, &t.Description); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		t.Action = models.Action(action)
		ledgers[code] = append(ledgers[code], t)
	}
	return ledgers, rows.Err()
}

// ListInstruments returns the distinct instrument codes with stored trades.
func (s *SQLiteStore) ListInstruments(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT code FROM trades ORDER BY code ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query instruments: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// SavePrices upserts price history samples for an instrument.
func (s *SQLiteStore) SavePrices(ctx context.Context, code string, points []models.PricePoint) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO price_history (code, sample_date, price, volume)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, code, p.Date, p.Price, p.Volume); err != nil {
			return fmt.Errorf("failed to insert price point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetPrices returns price samples within [from, to], ascending by date.
// Zero time bounds mean unbounded.
func (s *SQLiteStore) GetPrices(ctx context.Context, code string, from, to time.Time) ([]models.PricePoint, error) {
	query := `SELECT sample_date, price, volume FROM price_history WHERE code = ?`
	args := []interface{}{code}
	if !from.IsZero() {
		query += ` AND sample_date >= ?`
		args = append(args, from)
	}
	if !to.IsZero() {
		query += ` AND sample_date <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY sample_date ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices: %w", err)
	}
	defer rows.Close()

	var points []models.PricePoint
	for rows.Next() {
		var p models.PricePoint
		if err := rows.Scan(&p.Date, &p.Price, &p.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan price point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func scanTrade(rows *sql.Rows) (models.Trade, error) {
	var (
		t      models.Trade
		action string
	)
	if err := rows.Scan(&t.Date, &action, &t.Price, &t.Shares, &t.Commission, &t.Description); err != nil {
		return models.Trade{}, fmt.Errorf("failed to scan trade: %w", err)
	}
	t.Action = models.Action(action)
	return t, nil
}
