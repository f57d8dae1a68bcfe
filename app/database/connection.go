package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// NewConnection opens the SQLite submission log database. Use ":memory:"
// for an ephemeral database in tests.
func NewConnection(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite locks the whole file on write; one connection avoids
	// SQLITE_BUSY from concurrent workers.
	db.SetMaxOpenConns(1)

	return &DB{DB: db}, nil
}
