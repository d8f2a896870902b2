package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/jamiedarville/sp500-analysis/internal/model"
)

// SQLiteRecorder persists scan runs and their flagged records to SQLite.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.SugaredLogger
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *zap.SugaredLogger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for concurrent reads while a scan is writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id             TEXT PRIMARY KEY,
			timestamp      INTEGER NOT NULL,
			preset         TEXT,
			threshold      REAL,
			universe_size  INTEGER,
			record_count   INTEGER,
			failure_count  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON scan_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS drop_records (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id              TEXT NOT NULL REFERENCES scan_runs(id),
			symbol              TEXT NOT NULL,
			company_name        TEXT,
			sector              TEXT,
			current_price       REAL,
			previous_close      REAL,
			percent_change      REAL,
			market_cap          REAL,
			high_52w            REAL,
			low_52w             REAL,
			distance_from_high  REAL,
			volume              REAL,
			avg_volume          REAL,
			rsi                 REAL,
			macd                REAL,
			macd_signal         REAL,
			macd_histogram      REAL,
			obv                 INTEGER,
			pe_ratio            REAL,
			debt_to_equity      REAL,
			dividend_yield      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_run ON drop_records(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_records_symbol ON drop_records(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts the run summary and its records in one transaction.
func (r *SQLiteRecorder) RecordRun(run *RunSummary, records []model.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO scan_runs
		(id, timestamp, preset, threshold, universe_size, record_count, failure_count)
		VALUES (?,?,?,?,?,?,?)`,
		run.ID, run.StartedAt.Unix(), run.Preset, run.Threshold,
		run.UniverseSize, run.RecordCount, run.FailureCount,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO drop_records
		(run_id, symbol, company_name, sector, current_price, previous_close,
		 percent_change, market_cap, high_52w, low_52w, distance_from_high,
		 volume, avg_volume, rsi, macd, macd_signal, macd_histogram, obv,
		 pe_ratio, debt_to_equity, dividend_yield)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(
			run.ID, rec.Symbol, rec.CompanyName, rec.Sector,
			rec.CurrentPrice, rec.PreviousClose, rec.PercentChange,
			rec.MarketCap, rec.FiftyTwoWeekHigh, rec.FiftyTwoWeekLow, rec.DistanceFromHigh,
			rec.Volume, rec.AvgVolume,
			nullFloat(rec.Indicators.RSI), nullFloat(rec.Indicators.MACD),
			nullFloat(rec.Indicators.MACDSignal), nullFloat(rec.Indicators.MACDHistogram),
			nullInt(rec.Indicators.OBV),
			nullFloat(rec.Ratios.PE), nullFloat(rec.Ratios.DebtToEquity), nullFloat(rec.Ratios.DividendYield),
		); err != nil {
			return fmt.Errorf("insert record %s: %w", rec.Symbol, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}

func nullFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
