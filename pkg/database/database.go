package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/tobihoff/anirate/pkg/utils"
)

// DefaultUserID is the single implicit account the application runs with.
// Every store call still carries the user id so real accounts are a matter of
// supplying real ids.
const DefaultUserID = 1

// Open opens (creating if necessary) the sqlite database at path, applies the
// schema and seeds the default user. The returned handle is owned by the
// caller for the process lifetime; there is no package-level instance.
func Open(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	if err := seedDefaultUser(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed default user: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	schema := `
    CREATE TABLE IF NOT EXISTS users (
        id INTEGER PRIMARY KEY,
        username TEXT UNIQUE NOT NULL,
        password_hash TEXT NOT NULL,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS ratings (
        id TEXT NOT NULL,
        user_id INTEGER NOT NULL,
        anime_id INTEGER NOT NULL,
        anime_title TEXT NOT NULL,
        anime_image TEXT NOT NULL,
        categories TEXT NOT NULL,
        overall_rating REAL NOT NULL,
        notes TEXT DEFAULT '',
        created_at TEXT NOT NULL,
        updated_at TEXT NOT NULL,
        PRIMARY KEY (id, user_id),
        FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
    );

    CREATE INDEX IF NOT EXISTS idx_ratings_user ON ratings(user_id);
    CREATE INDEX IF NOT EXISTS idx_ratings_anime ON ratings(anime_id);
    `

	if _, err := db.Exec(schema); err != nil {
		return err
	}
	return ensureNotesColumn(db)
}

// ensureNotesColumn migrates databases created before the notes field.
func ensureNotesColumn(db *sql.DB) error {
	rows, err := db.Query(`PRAGMA table_info(ratings);`)
	if err != nil {
		return err
	}
	defer rows.Close()
	hasNotes := false
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt interface{}
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		if strings.EqualFold(name, "notes") {
			hasNotes = true
			break
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if !hasNotes {
		if _, err := db.Exec(`ALTER TABLE ratings ADD COLUMN notes TEXT DEFAULT '';`); err != nil {
			return err
		}
	}
	return nil
}

func seedDefaultUser(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE id = ?`, DefaultUserID).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password, err := utils.GenerateID(16)
	if err != nil {
		return err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT INTO users (id, username, password_hash) VALUES (?, ?, ?)`,
		DefaultUserID, "default", hash)
	return err
}
