package diagstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/refline/internal/candidate"
	"github.com/banshee-data/refline/internal/monitoring"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var logs = monitoring.NewStreams("[diagstore] ")

// SetLogWriters configures all three logging streams at once.
func SetLogWriters(w monitoring.LogWriters) {
	logs.SetWriters(w)
}

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA temp_store=MEMORY",
}

// Store is a candidate.Sink backed by SQLite. It is safe for concurrent
// use by candidates evaluated in parallel.
type Store struct {
	db *sql.DB
}

var _ candidate.Sink = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies pending
// migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open diagnostics db: %w", err)
	}
	// One writer keeps lock contention inside database/sql.
	db.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	logs.Diagf("opened %s", path)
	return s, nil
}

// MigrateUp runs all pending migrations up to the latest version.
// Returns nil if no migrations were needed.
func (s *Store) MigrateUp() error {
	m, err := s.newMigrate()
	if err != nil {
		return err
	}
	// m is not closed: closing it would close the shared *sql.DB.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// MigrateDown rolls back the most recent migration.
func (s *Store) MigrateDown() error {
	m, err := s.newMigrate()
	if err != nil {
		return err
	}
	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return nil
}

// MigrateVersion returns the current migration version and dirty state.
// Returns 0, false, nil if no migrations have been applied yet.
func (s *Store) MigrateVersion() (version uint, dirty bool, err error) {
	m, err := s.newMigrate()
	if err != nil {
		return 0, false, err
	}
	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (s *Store) newMigrate() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = migrateLogger{}
	return m, nil
}

// migrateLogger routes golang-migrate output to the diag stream.
type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...interface{}) {
	logs.Diagf("[migrate] "+format, v...)
}

func (migrateLogger) Verbose() bool { return false }

// Record implements candidate.Sink. A missing RecordID is replaced by a
// UUID and a zero CreatedAt by the current time. Infinite cost is stored as
// NULL.
func (s *Store) Record(ctx context.Context, rec candidate.Record) error {
	if rec.RecordID == "" {
		rec.RecordID = uuid.New().String()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().UnixNano()
	}
	var cost interface{}
	if !math.IsInf(rec.Cost, 0) && !math.IsNaN(rec.Cost) {
		cost = rec.Cost
	}

	return retryOnBusy(func() error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO candidate_diagnostics (
				record_id, cycle_id, candidate_id,
				compose_latency_ns, obstacle_latency_ns,
				obstacles, skipped_obstacles, points,
				truncated, cost, viable, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.RecordID, rec.CycleID, rec.CandidateID,
			int64(rec.ComposeLatency), int64(rec.ObstacleLatency),
			rec.Obstacles, rec.SkippedObstacles, rec.Points,
			rec.Truncated, cost, rec.Viable, rec.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert diagnostics record: %w", err)
		}
		return nil
	})
}

// ListByCycle returns the records of one cycle ordered by creation time.
func (s *Store) ListByCycle(ctx context.Context, cycleID string) ([]candidate.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record_id, cycle_id, candidate_id,
		       compose_latency_ns, obstacle_latency_ns,
		       obstacles, skipped_obstacles, points,
		       truncated, cost, viable, created_at
		FROM candidate_diagnostics
		WHERE cycle_id = ?
		ORDER BY created_at ASC, candidate_id ASC`, cycleID)
	if err != nil {
		return nil, fmt.Errorf("query diagnostics: %w", err)
	}
	defer rows.Close()

	var out []candidate.Record
	for rows.Next() {
		var (
			rec              candidate.Record
			composeNS, obsNS int64
			cost             sql.NullFloat64
		)
		if err := rows.Scan(
			&rec.RecordID, &rec.CycleID, &rec.CandidateID,
			&composeNS, &obsNS,
			&rec.Obstacles, &rec.SkippedObstacles, &rec.Points,
			&rec.Truncated, &cost, &rec.Viable, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan diagnostics: %w", err)
		}
		rec.ComposeLatency = time.Duration(composeNS)
		rec.ObstacleLatency = time.Duration(obsNS)
		rec.Cost = math.Inf(1)
		if cost.Valid {
			rec.Cost = cost.Float64
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
