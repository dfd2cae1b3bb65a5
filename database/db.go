package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB

	// Per-table identity allocators. Seeded lazily from MAX(id) and
	// handed out under the mutex so concurrent unit of work instances
	// never see the same id.
	idMu sync.Mutex
	ids  map[string]int
}

func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Wait instead of failing when commits overlap
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &DB{DB: db, ids: make(map[string]int)}, nil
}

func (db *DB) Migrate() error {
	queries := []string{
		// CHECK constraints are named after their column so commit
		// failures can report the offending field.
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			username TEXT UNIQUE NOT NULL CONSTRAINT username CHECK (username <> ''),
			password_hash TEXT NOT NULL CONSTRAINT password_hash CHECK (password_hash <> ''),
			name TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS tokens (
			id INTEGER PRIMARY KEY,
			auth_token TEXT UNIQUE NOT NULL CONSTRAINT auth_token CHECK (auth_token <> ''),
			user_id INTEGER NOT NULL,
			issued_on DATETIME NOT NULL,
			expires_on DATETIME NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		`CREATE TABLE IF NOT EXISTS contacts (
			id INTEGER PRIMARY KEY,
			first_name TEXT NOT NULL CONSTRAINT first_name CHECK (first_name <> ''),
			last_name TEXT NOT NULL CONSTRAINT last_name CHECK (last_name <> ''),
			email TEXT NOT NULL CONSTRAINT email CHECK (email <> '')
		)`,

		`CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY,
			project_name TEXT NOT NULL CONSTRAINT project_name CHECK (project_name <> ''),
			start_date DATETIME,
			end_date DATETIME,
			is_set_date INTEGER NOT NULL DEFAULT 0,
			priority INTEGER,
			contact_id INTEGER REFERENCES contacts(id)
		)`,

		// parent_task_id carries no reference constraint: a task naming
		// itself or forming a cycle is accepted at this layer.
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY,
			task_name TEXT NOT NULL CONSTRAINT task_name CHECK (task_name <> ''),
			project_id INTEGER REFERENCES projects(id),
			start_date DATETIME,
			end_date DATETIME,
			is_parent INTEGER NOT NULL DEFAULT 0,
			priority INTEGER,
			parent_task_id INTEGER,
			status INTEGER NOT NULL DEFAULT 0,
			contact_id INTEGER REFERENCES contacts(id)
		)`,

		// Token table must answer exact-match lookups by opaque string
		// and by owning user
		`CREATE INDEX IF NOT EXISTS idx_tokens_auth_token ON tokens(auth_token)`,
		`CREATE INDEX IF NOT EXISTS idx_tokens_user ON tokens(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_task_id)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// SeedAdmin inserts the initial user when the users table is empty.
// Existing users are never touched.
func (db *DB) SeedAdmin(username, passwordHash, name string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err := db.Exec(
		"INSERT INTO users (username, password_hash, name) VALUES (?, ?, ?)",
		username, passwordHash, name,
	)
	if err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}
	return nil
}

// NextID hands out the next identity for a table. Allocation is
// linearizable across all repositories sharing this DB.
func (db *DB) NextID(table string) (int, error) {
	db.idMu.Lock()
	defer db.idMu.Unlock()

	next, ok := db.ids[table]
	if !ok {
		var max sql.NullInt64
		if err := db.QueryRow("SELECT MAX(id) FROM " + table).Scan(&max); err != nil {
			return 0, fmt.Errorf("failed to seed id allocator for %s: %w", table, err)
		}
		next = int(max.Int64) + 1
	}
	db.ids[table] = next + 1
	return next, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
