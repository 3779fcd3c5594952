package database

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL,
	password TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'regular',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	author TEXT NOT NULL,
	copies INTEGER NOT NULL CHECK (copies >= 0)
);

CREATE TABLE IF NOT EXISTS orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	book_id INTEGER NOT NULL REFERENCES books(id),
	quantity INTEGER NOT NULL,
	status TEXT NOT NULL DEFAULT 'Pending',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

func New(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single pooled conn avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// SeedAdmin ensures the built-in admin account exists. It goes through the
// same users table as everyone else, so login needs no special case.
func SeedAdmin(ctx context.Context, db *sql.DB, username, password string) error {
	const q = `
INSERT INTO users (username, email, password, role)
SELECT ?, ?, ?, 'admin'
WHERE NOT EXISTS (SELECT 1 FROM users WHERE username = ?)`
	_, err := db.ExecContext(ctx, q, username, "admin@bookstore.local", password, username)
	return err
}
