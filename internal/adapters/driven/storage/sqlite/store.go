package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/regscan/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Store is a SQLite-based storage that exposes its tables through
// per-interface wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.regscan/data/runs.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".regscan", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "runs.db")

	// WAL lets "runs list" read while a batch is writing. Pragmas in the DSN
	// apply to every pooled connection; DeleteRun relies on foreign keys
	// for its cascade.
	db, err := sql.Open("sqlite", dbPath+
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RunStore returns a RunStore interface backed by this store.
func (s *Store) RunStore() driven.RunStore {
	return &runStore{store: s}
}

// migrate runs all pending up migrations in version order and records
// each applied version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_runs.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(content); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Run Store ====================

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// criteriaJSON is the stored form of domain.FilterCriteria.
type criteriaJSON struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end,omitempty"`
	Keywords []string  `json:"keywords,omitempty"`
}

// SaveRun stores or replaces a run with its records and failures.
func (s *runStore) SaveRun(ctx context.Context, run *domain.Run) error {
	criteria, err := json.Marshal(criteriaJSON{
		Start:    run.Criteria.Start,
		End:      run.Criteria.End,
		Keywords: run.Criteria.Keywords,
	})
	if err != nil {
		return fmt.Errorf("marshalling criteria: %w", err)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, mode, regulator, lookup_key, criteria, started_at, finished_at,
			documents, record_count, failure_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode = excluded.mode,
			regulator = excluded.regulator,
			lookup_key = excluded.lookup_key,
			criteria = excluded.criteria,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			documents = excluded.documents,
			record_count = excluded.record_count,
			failure_count = excluded.failure_count
	`, run.ID, string(run.Mode), string(run.Regulator), run.Key, string(criteria),
		run.StartedAt.UTC(), nullTime(run.FinishedAt),
		run.Documents, len(run.Records), len(run.Failures))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	// Children are replaced wholesale.
	if _, err := tx.ExecContext(ctx, "DELETE FROM run_records WHERE run_id = ?", run.ID); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM run_failures WHERE run_id = ?", run.ID); err != nil {
		return fmt.Errorf("clearing failures: %w", err)
	}

	recStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_records (run_id, position, record_id, institution, key_information, sentence)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing record insert: %w", err)
	}
	defer recStmt.Close()

	for i, r := range run.Records {
		if _, err := recStmt.ExecContext(ctx, run.ID, i, r.RecordID, r.Institution, r.KeyInformation, r.Sentence); err != nil {
			return fmt.Errorf("saving record %d: %w", i, err)
		}
	}

	for i, f := range run.Failures {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_failures (run_id, position, record_id, error) VALUES (?, ?, ?, ?)
		`, run.ID, i, f.RecordID, f.Error)
		if err != nil {
			return fmt.Errorf("saving failure %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// GetRun retrieves a run with its records and failures.
func (s *runStore) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, mode, regulator, lookup_key, criteria, started_at, finished_at, documents
		FROM runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if run.Records, err = s.records(ctx, id); err != nil {
		return nil, err
	}
	if run.Failures, err = s.failures(ctx, id); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns run summaries newest first.
func (s *runStore) ListRuns(ctx context.Context) ([]domain.RunSummary, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, mode, regulator, lookup_key, criteria, started_at, finished_at, documents,
			record_count, failure_count
		FROM runs ORDER BY started_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var summaries []domain.RunSummary //nolint:prealloc // size unknown from query
	for rows.Next() {
		var recordCount, failureCount int
		run, err := scanRun(rows, &recordCount, &failureCount)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, domain.RunSummary{
			ID:         run.ID,
			Mode:       run.Mode,
			Regulator:  run.Regulator,
			Key:        run.Key,
			StartedAt:  run.StartedAt,
			FinishedAt: run.FinishedAt,
			Documents:  run.Documents,
			Records:    recordCount,
			Failures:   failureCount,
		})
	}
	return summaries, rows.Err()
}

// DeleteRun removes a run; records and failures cascade.
func (s *runStore) DeleteRun(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *runStore) records(ctx context.Context, runID string) ([]domain.OutputRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT record_id, institution, key_information, sentence
		FROM run_records WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var out []domain.OutputRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r domain.OutputRecord
		if err := rows.Scan(&r.RecordID, &r.Institution, &r.KeyInformation, &r.Sentence); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *runStore) failures(ctx context.Context, runID string) ([]domain.DocumentFailure, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT record_id, error FROM run_failures WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying failures: %w", err)
	}
	defer rows.Close()

	var out []domain.DocumentFailure //nolint:prealloc // size unknown from query
	for rows.Next() {
		var f domain.DocumentFailure
		if err := rows.Scan(&f.RecordID, &f.Error); err != nil {
			return nil, fmt.Errorf("scanning failure: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner, extra ...any) (*domain.Run, error) {
	var (
		run        domain.Run
		mode, reg  string
		criteria   string
		startedAt  time.Time
		finishedAt sql.NullTime
	)
	dest := append([]any{&run.ID, &mode, &reg, &run.Key, &criteria, &startedAt, &finishedAt, &run.Documents}, extra...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	var c criteriaJSON
	if err := json.Unmarshal([]byte(criteria), &c); err != nil {
		return nil, fmt.Errorf("unmarshaling criteria: %w", err)
	}

	run.Mode = domain.RunMode(mode)
	run.Regulator = domain.Regulator(reg)
	run.Criteria = domain.FilterCriteria{Start: c.Start, End: c.End, Keywords: c.Keywords}
	run.StartedAt = startedAt
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}
	return &run, nil
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
