package db

import (
	"database/sql"
	"errors"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// Store errors. Handlers translate these to a status code or a
// flash notice; nothing below the handler layer touches HTTP.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrUsernameTooShort    = errors.New("username too short")
	ErrPasswordTooShort    = errors.New("password too short")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrSnippetNotFound     = errors.New("snippet not found")
	ErrDescriptionRequired = errors.New("description required")
)

func InitDB(dataSourceName string) {
	var err error
	DB, err = sql.Open("sqlite3", dataSourceName)
	if err != nil {
		log.Fatal(err)
	}

	if _, err = DB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		log.Fatalf("Error enabling foreign keys: %v", err)
	}

	createTables := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snippets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL,
		done INTEGER NOT NULL DEFAULT 0,
		user_id INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_snippets_user_id ON snippets(user_id);
	`

	_, err = DB.Exec(createTables)
	if err != nil {
		log.Fatalf("Error creating tables: %v", err)
	}
}
