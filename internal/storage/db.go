// ABOUTME: Shared SQLite handle for the fitness stores: open, pragmas, clock.
// ABOUTME: Uses modernc.org/sqlite so the binary needs no CGO.
package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Reogieakero/fitness/internal/auth"
	"github.com/Reogieakero/fitness/internal/logging"
	"github.com/Reogieakero/fitness/internal/models"
)

// timestampLayout is the persisted instant format. Always UTC with fixed
// millisecond width so that lexical order matches time order.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// DB is the storage handle shared by every store. It is created once at
// process start and closed at shutdown.
type DB struct {
	db         *sql.DB
	dbPath     string
	now        func() time.Time
	logger     *slog.Logger
	bcryptCost int
}

// Option configures a DB at Open time.
type Option func(*DB)

// WithClock overrides the clock used for timestamps and "today".
// The returned time's location decides calendar day boundaries.
func WithClock(now func() time.Time) Option {
	return func(d *DB) { d.now = now }
}

// WithLogger sets the logger used for migrations and credential upgrades.
func WithLogger(logger *slog.Logger) Option {
	return func(d *DB) { d.logger = logger }
}

// WithBcryptCost sets the cost used when hashing passwords.
func WithBcryptCost(cost int) Option {
	return func(d *DB) { d.bcryptCost = cost }
}

// Open opens or creates a SQLite database at the given path and brings its
// schema up to date. It is safe to call on every start.
func Open(dbPath string, opts ...Option) (*DB, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection: a single writer, and transactions never contend
	// with a second pooled connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Set file permissions
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = db.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	d := &DB{
		db:         db,
		dbPath:     dbPath,
		now:        time.Now,
		logger:     logging.Discard(),
		bcryptCost: auth.DefaultCost,
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := d.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}

	if err := d.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return d, nil
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "kinetiqo")
}

// DefaultDBPath returns the default database path following XDG spec.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "kinetiqo.db")
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.dbPath
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Today returns the calendar day key for the storage clock.
func (d *DB) Today() string {
	return models.DayKey(d.now())
}

func (d *DB) timestamp() string {
	return d.now().UTC().Format(timestampLayout)
}

// configurePragmas enables WAL and waits on a locked file instead of failing.
func (d *DB) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := d.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

func parseTimestamp(s string) time.Time {
	for _, layout := range []string{timestampLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}
