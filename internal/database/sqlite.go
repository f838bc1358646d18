package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name TEXT NOT NULL,
	college TEXT,
	year TEXT,
	target_role TEXT,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
	id TEXT PRIMARY KEY,
	text TEXT NOT NULL,
	category TEXT NOT NULL,
	difficulty TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_questions_category_difficulty ON questions(category, difficulty);

CREATE TABLE IF NOT EXISTS interviews (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	category TEXT NOT NULL,
	difficulty TEXT NOT NULL,
	duration INTEGER NOT NULL,
	questions_answered INTEGER NOT NULL,
	total_questions INTEGER NOT NULL,
	average_rating INTEGER NOT NULL,
	ratings TEXT NOT NULL DEFAULT '[]',
	completed_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_interviews_user_completed ON interviews(user_id, completed_at);
`

// NewSQLiteDB opens the database file at path, applies pragmas and creates the
// schema if it does not exist yet.
func NewSQLiteDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}
