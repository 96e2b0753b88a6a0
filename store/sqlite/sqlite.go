/*
Package sqlite provides SQLite-backed persistence for solve runs.

PURPOSE:
  Records every solve run and, for runs that produced values, the resulting
  assignments, so organizers can compare runs across configurations and
  re-export past results without re-solving.

KEY TABLES:
  solve_runs:       One row per solve: status, objective, config snapshot
  run_assignments:  One row per placed participant for a run

APPEND-ONLY ENFORCEMENT:
  Runs are historical facts: no UPDATE or DELETE statements exist. A new
  configuration means a new run.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block, a single writer at a time.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety around the API handlers. The solver
  itself never touches this package.

USAGE:
  store, err := sqlite.New("./data/crews.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). Use ":memory:" for tests.

SEE ALSO:
  - api/handlers.go: The main consumer
  - cmd/assign: Optional persistence from the CLI
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store persists solve runs and their assignments.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a store at the given database path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Solve runs (append-only history)
	CREATE TABLE IF NOT EXISTS solve_runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		status TEXT NOT NULL,
		objective REAL NOT NULL,
		youth_count INTEGER NOT NULL,
		config_json TEXT NOT NULL,
		solve_millis INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_solve_runs_created_at
		ON solve_runs(created_at DESC);

	-- Assignments produced by a run
	CREATE TABLE IF NOT EXISTS run_assignments (
		run_id TEXT NOT NULL REFERENCES solve_runs(id),
		center TEXT NOT NULL,
		crew TEXT NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		gender TEXT,
		year TEXT,
		history TEXT,
		PRIMARY KEY (run_id, name)
	);

	CREATE INDEX IF NOT EXISTS idx_run_assignments_run
		ON run_assignments(run_id, center, crew);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RECORDS
// =============================================================================

// RunRecord is one persisted solve run.
type RunRecord struct {
	ID          string
	CreatedAt   time.Time
	Status      string
	Objective   float64
	YouthCount  int
	ConfigJSON  string
	SolveMillis int64
}

// AssignmentRecord is one participant's placement within a run.
type AssignmentRecord struct {
	RunID   string
	Center  string
	Crew    string
	Name    string
	Role    string
	Gender  string
	Year    string
	History string
}

// NewRunID returns a fresh run identifier.
func NewRunID() string { return uuid.NewString() }

// =============================================================================
// OPERATIONS
// =============================================================================

// SaveRun persists a run and its assignments in one transaction. The run
// row is written even when the solve produced no values (assignments empty).
func (s *Store) SaveRun(ctx context.Context, run RunRecord, assignments []AssignmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO solve_runs (id, created_at, status, objective, youth_count, config_json, solve_millis)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UTC().Format(time.RFC3339Nano), run.Status,
		run.Objective, run.YouthCount, run.ConfigJSON, run.SolveMillis,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, a := range assignments {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_assignments (run_id, center, crew, name, role, gender, year, history)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, a.Center, a.Crew, a.Name, a.Role, a.Gender, a.Year, a.History,
		)
		if err != nil {
			return fmt.Errorf("failed to insert assignment for %s: %w", a.Name, err)
		}
	}

	return tx.Commit()
}

// GetRun returns one run by id, nil when absent.
func (s *Store) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, status, objective, youth_count, config_json, solve_millis
		FROM solve_runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns runs newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, status, objective, youth_count, config_json, solve_millis
		FROM solve_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// ListAssignments returns a run's assignments in center/crew order.
func (s *Store) ListAssignments(ctx context.Context, runID string) ([]AssignmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, center, crew, name, role, gender, year, history
		FROM run_assignments WHERE run_id = ?
		ORDER BY center, crew, role, name`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for %s: %w", runID, err)
	}
	defer rows.Close()

	var assignments []AssignmentRecord
	for rows.Next() {
		var a AssignmentRecord
		if err := rows.Scan(&a.RunID, &a.Center, &a.Crew, &a.Name, &a.Role, &a.Gender, &a.Year, &a.History); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*RunRecord, error) {
	var run RunRecord
	var createdAt string
	if err := row.Scan(&run.ID, &createdAt, &run.Status, &run.Objective,
		&run.YouthCount, &run.ConfigJSON, &run.SolveMillis); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = t
	return &run, nil
}
