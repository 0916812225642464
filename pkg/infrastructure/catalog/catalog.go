// Package catalog records generation runs in a local SQLite database so
// that generated instances can be traced back to the exact parameters and
// seed that produced them.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at  TEXT NOT NULL,
	mode        TEXT NOT NULL,
	seed        INTEGER NOT NULL,
	nodes       INTEGER NOT NULL,
	items       INTEGER NOT NULL,
	periods     INTEGER NOT NULL,
	intensity   REAL NOT NULL,
	utilization REAL NOT NULL,
	demand_rows INTEGER NOT NULL,
	case_file   TEXT NOT NULL
);
`

// Run is one recorded generation run.
type Run struct {
	ID          int64
	CreatedAt   time.Time
	Mode        string
	Seed        uint64
	Nodes       int
	Items       int
	Periods     int
	Intensity   float64
	Utilization float64
	DemandRows  int
	CaseFile    string
}

// Catalog is a SQLite-backed run history.
type Catalog struct {
	db *sql.DB
}

// Open creates or opens the catalog database at dir/catalog.db.
func Open(dir string) (*Catalog, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	path := filepath.Join(dir, "catalog.db")
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}
	// Single writer keeps SQLite happy.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing catalog schema: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Record inserts a run and returns it with its assigned ID.
func (c *Catalog) Record(ctx context.Context, run Run) (Run, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	res, err := c.db.ExecContext(ctx, `
		INSERT INTO runs (
			created_at, mode, seed, nodes, items, periods,
			intensity, utilization, demand_rows, case_file
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.CreatedAt.Format(time.RFC3339), run.Mode, int64(run.Seed),
		run.Nodes, run.Items, run.Periods,
		run.Intensity, run.Utilization, run.DemandRows, run.CaseFile)
	if err != nil {
		return Run{}, fmt.Errorf("recording run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Run{}, fmt.Errorf("reading run id: %w", err)
	}
	run.ID = id
	return run, nil
}

// List returns the most recent runs, newest first, up to limit. A limit of
// zero or less returns all runs.
func (c *Catalog) List(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, created_at, mode, seed, nodes, items, periods,
		       intensity, utilization, demand_rows, case_file
		FROM runs ORDER BY id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		var seed int64
		if err := rows.Scan(&r.ID, &createdAt, &r.Mode, &seed,
			&r.Nodes, &r.Items, &r.Periods,
			&r.Intensity, &r.Utilization, &r.DemandRows, &r.CaseFile); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Seed = uint64(seed)
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			r.CreatedAt = ts
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}
