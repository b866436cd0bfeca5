package db

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"snippetapp/crypto"
	"snippetapp/models"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 8
)

func FindUserByUsername(username string) (*models.User, error) {
	var u models.User
	err := DB.QueryRow("SELECT id, username, password_hash, created_at, updated_at FROM users WHERE username = ?", username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser registers a new account. The raw password is replaced by its
// bcrypt hash before the row is written; plaintext never reaches the store.
//
// Uniqueness is enforced by the UNIQUE constraint on username. The pre-check
// below only gives the common case a cheap answer: two concurrent
// registrations can both pass it, and then the loser's INSERT fails with a
// constraint violation, which is reported as the same ErrUsernameTaken.
func CreateUser(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < MinUsernameLength {
		return nil, ErrUsernameTooShort
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := FindUserByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result, err := DB.Exec("INSERT INTO users (username, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?)",
		username, hash, now, now)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           int(id),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// AuthenticateUser returns the account matching the credentials. Unknown
// username and wrong password both come back as ErrInvalidCredentials, and
// both cost one bcrypt comparison, so neither the error nor the response
// time reveals whether the username exists.
func AuthenticateUser(username, password string) (*models.User, error) {
	user, err := FindUserByUsername(strings.TrimSpace(username))

	targetHash := crypto.DummyHash
	if err == nil {
		targetHash = user.PasswordHash
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	match := crypto.CheckPasswordHash(password, targetHash)
	if err != nil || !match {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
