package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/intelvestor/gateway/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
)

const emailIndex = "idx_users_email"

const userColumns = `id, email, name, watchlist, preferences, created_at, updated_at`

// CreateUser inserts a new user. A record already stored under the same ID
// takes the new email and name but keeps its watchlist and preferences.
// On success user holds the row as persisted.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}
	if user.Watchlist == nil {
		user.Watchlist = []string{}
	}
	if user.Preferences == nil {
		user.Preferences = map[string]any{}
	}

	prefs, err := json.Marshal(user.Preferences)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	query := `
		INSERT INTO users (id, email, name, watchlist, preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    name = EXCLUDED.name,
		    updated_at = EXCLUDED.updated_at
		RETURNING ` + userColumns

	stored, err := scanUser(r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		pq.Array(user.Watchlist),
		prefs,
		user.CreatedAt,
		user.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err, emailIndex) {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	*user = *stored
	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by their email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		user      model.User
		watchlist []string
		prefs     []byte
	)

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		pq.Array(&watchlist),
		&prefs,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Watchlist = watchlist
	if user.Watchlist == nil {
		user.Watchlist = []string{}
	}
	user.Preferences, err = decodePreferences(prefs)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func decodePreferences(raw []byte) (map[string]any, error) {
	prefs := map[string]any{}
	if len(raw) == 0 {
		return prefs, nil
	}
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return nil, fmt.Errorf("failed to decode preferences: %w", err)
	}
	if prefs == nil {
		prefs = map[string]any{}
	}
	return prefs, nil
}
