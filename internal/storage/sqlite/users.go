package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"taskflow/internal/models"
)

// CreateUser persists a new account. The caller supplies an already hashed
// password. A duplicate username fails with models.ErrConflict.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, fmt.Errorf("%w: username must not be empty", models.ErrValidation)
	}
	if passwordHash == "" {
		return models.User{}, fmt.Errorf("%w: password hash must not be empty", models.ErrValidation)
	}

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `INSERT INTO users(id, username, password_hash) VALUES(?, ?, ?)`,
		id, username, passwordHash)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return models.User{}, fmt.Errorf("username %q: %w", username, models.ErrConflict)
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	return models.User{ID: id, Username: username, PasswordHash: passwordHash}, nil
}

// GetUserByUsername looks up an account for login.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `SELECT id, username, password_hash FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user %q: %w", username, models.ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
