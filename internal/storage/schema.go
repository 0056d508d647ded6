// ABOUTME: Versioned schema migrations for the fitness database.
// ABOUTME: Each step runs once in a transaction and is recorded in schema_migrations.
package storage

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	apply   func(tx *sql.Tx, d *DB) error
}

// migrations are applied in order. Never edit a released step; append a new one.
var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		apply: execSQL(`
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL,
  email TEXT UNIQUE NOT NULL,
  password TEXT NOT NULL,
  age TEXT,
  weight TEXT,
  height TEXT,
  fitnessLevel TEXT,
  fitnessGoal TEXT
);

CREATE TABLE IF NOT EXISTS workouts (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  userId INTEGER NOT NULL,
  timestamp TEXT NOT NULL,
  intensity TEXT,
  xpEarned INTEGER NOT NULL DEFAULT 0,
  details TEXT,
  status TEXT NOT NULL DEFAULT 'Complete'
);

CREATE TABLE IF NOT EXISTS nutrition_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  userId INTEGER NOT NULL,
  foodName TEXT NOT NULL,
  calories INTEGER NOT NULL DEFAULT 0,
  protein INTEGER NOT NULL DEFAULT 0,
  carbs INTEGER NOT NULL DEFAULT 0,
  fat INTEGER NOT NULL DEFAULT 0,
  fiber INTEGER NOT NULL DEFAULT 0,
  grade TEXT,
  recommendation TEXT,
  date TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_quests (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  userId INTEGER,
  questId TEXT,
  completionDate TEXT,
  UNIQUE(userId, questId, completionDate)
);

CREATE INDEX IF NOT EXISTS idx_workouts_user_timestamp ON workouts(userId, timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_daily_quests_user_date ON daily_quests(userId, completionDate);
`),
	},
	{
		version: 2,
		name:    "progression_columns",
		apply: addColumns(
			column{"users", "xp", "INTEGER DEFAULT 0"},
			column{"users", "level", "INTEGER DEFAULT 1"},
		),
	},
	{
		version: 3,
		name:    "image_columns",
		apply: addColumns(
			column{"users", "profileImage", "TEXT"},
			column{"workouts", "imageUri", "TEXT"},
		),
	},
	{
		version: 4,
		name:    "meal_plans",
		apply: execSQL(`
CREATE TABLE IF NOT EXISTS meal_plans (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  userId INTEGER NOT NULL,
  planDate TEXT NOT NULL,
  title TEXT NOT NULL,
  details TEXT,
  createdAt TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meal_plans_user_date ON meal_plans(userId, planDate);
`),
	},
	{
		version: 5,
		name:    "workout_day_column",
		apply: chain(
			addColumns(column{"workouts", "day", "TEXT"}),
			execSQL(`
UPDATE workouts SET day = substr(timestamp, 1, 10) WHERE day IS NULL OR day = '';
CREATE INDEX IF NOT EXISTS idx_workouts_user_day ON workouts(userId, day);
CREATE INDEX IF NOT EXISTS idx_nutrition_logs_user_date ON nutrition_logs(userId, date);
`),
		),
	},
}

// Migrate applies every migration whose version is not yet recorded.
func (d *DB) Migrate() error {
	if _, err := d.db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := d.db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			d.logger.Debug("schema migration already applied", "version", m.version, "name", m.name)
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := d.db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if err := m.apply(tx, d); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
		d.logger.Info("applied schema migration", "version", m.version, "name", m.name)
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (d *DB) SchemaVersion() (int, error) {
	var v sql.NullInt64
	if err := d.db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(v.Int64), nil
}

type column struct {
	table      string
	name       string
	definition string
}

func execSQL(stmt string) func(*sql.Tx, *DB) error {
	return func(tx *sql.Tx, _ *DB) error {
		_, err := tx.Exec(stmt)
		return err
	}
}

// addColumns adds each column unless it is already present, which is the
// case for databases created before versioning was introduced.
func addColumns(cols ...column) func(*sql.Tx, *DB) error {
	return func(tx *sql.Tx, d *DB) error {
		for _, c := range cols {
			var present int
			err := tx.QueryRow(`SELECT COUNT(1) FROM pragma_table_info(?) WHERE name = ?`, c.table, c.name).Scan(&present)
			if err != nil {
				return fmt.Errorf("inspect %s.%s: %w", c.table, c.name, err)
			}
			if present > 0 {
				d.logger.Info("column already present, skipping", "table", c.table, "column", c.name)
				continue
			}
			stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.table, c.name, c.definition)
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("add %s.%s: %w", c.table, c.name, err)
			}
		}
		return nil
	}
}

func chain(steps ...func(*sql.Tx, *DB) error) func(*sql.Tx, *DB) error {
	return func(tx *sql.Tx, d *DB) error {
		for _, step := range steps {
			if err := step(tx, d); err != nil {
				return err
			}
		}
		return nil
	}
}
