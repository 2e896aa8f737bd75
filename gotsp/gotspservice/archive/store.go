package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/tour"
)

const (
	DefaultFileName = "runs.db"
	memory          = ":memory:"
	schemaVersion   = 1
)

var ErrNotFound = errors.New("run not found")

// Store archives solved plans in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the archive at path, ":memory:" keeps it in memory
// for the lifetime of the store.
func Open(path string) (*Store, error) {
	if path != memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	if path == memory {
		// every connection would see its own empty database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return s.createSchema()
	}
	if version > schemaVersion {
		return fmt.Errorf("archive schema version %d is newer than supported version %d", version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);
	INSERT INTO schema_version (version) VALUES (1);

	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		algorithm TEXT NOT NULL,
		cities TEXT NOT NULL,
		total_distance REAL NOT NULL,
		iterations INTEGER NOT NULL DEFAULT 0,
		stop_reason TEXT NOT NULL DEFAULT '',
		seed INTEGER NOT NULL DEFAULT 0,
		elapsed_ns INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Save(ctx context.Context, plan tour.Plan) error {
	if plan.ID == "" {
		return errors.New("plan must have an id to be archived")
	}
	cities, err := json.Marshal(plan.Tour.Cities())
	if err != nil {
		return fmt.Errorf("failed to encode cities: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, algorithm, cities, total_distance, iterations, stop_reason, seed, elapsed_ns, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		plan.ID, plan.Algorithm, string(cities), plan.Tour.TotalDistance(), plan.Iterations,
		plan.StopReason, plan.Seed, int64(plan.Elapsed), plan.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", plan.ID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (tour.Plan, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, algorithm, cities, iterations, stop_reason, seed, elapsed_ns, created_at
		FROM runs WHERE id = ?`, id)

	plan, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return tour.Plan{}, ErrNotFound
	}
	if err != nil {
		return tour.Plan{}, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return plan, nil
}

// List returns up to limit plans, newest first. A non-positive limit lists
// every plan.
func (s *Store) List(ctx context.Context, limit int) ([]tour.Plan, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, algorithm, cities, iterations, stop_reason, seed, elapsed_ns, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var plans []tour.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPlan(row scanner) (tour.Plan, error) {
	var (
		plan      tour.Plan
		cities    string
		elapsed   int64
		createdAt int64
	)
	err := row.Scan(&plan.ID, &plan.Algorithm, &cities, &plan.Iterations, &plan.StopReason,
		&plan.Seed, &elapsed, &createdAt)
	if err != nil {
		return tour.Plan{}, err
	}

	var list []tour.City
	if err := json.Unmarshal([]byte(cities), &list); err != nil {
		return tour.Plan{}, fmt.Errorf("failed to decode cities: %w", err)
	}
	if len(list) > 0 {
		if plan.Tour, err = tour.NewTour(list); err != nil {
			return tour.Plan{}, err
		}
	}
	plan.Elapsed = time.Duration(elapsed)
	plan.CreatedAt = time.Unix(0, createdAt).UTC()
	return plan, nil
}
