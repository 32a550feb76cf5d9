package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"legends-bot/internal/domain"
	"legends-bot/pkg/database"
	apperrors "legends-bot/pkg/errors"
)

type PostgresUserRepository struct {
	db *database.PostgresDB
}

func NewPostgresUserRepository(db *database.PostgresDB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// GetByID retrieves a user by Telegram id
func (r *PostgresUserRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	query := `
		SELECT id, username, full_name, group_name, mode
		FROM users
		WHERE id = $1
	`

	var (
		rowID     int64
		username  string
		fullName  string
		groupName string
		mode      string
	)
	err := r.db.Pool.QueryRow(ctx, query, int64(id)).Scan(&rowID, &username, &fullName, &groupName, &mode)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return domain.RestoreUser(
		domain.UserID(rowID),
		domain.Username(username),
		domain.FullName(fullName),
		domain.GroupName(groupName),
		domain.ParticipationMode(mode),
	), nil
}

// IsRegistered reports whether the user has completed registration
func (r *PostgresUserRepository) IsRegistered(ctx context.Context, id domain.UserID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

	if err := r.db.Pool.QueryRow(ctx, query, int64(id)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check registration: %w", err)
	}
	return exists, nil
}

// Save inserts or overwrites the user row
func (r *PostgresUserRepository) Save(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, full_name, group_name, mode)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET username = EXCLUDED.username,
		    full_name = EXCLUDED.full_name,
		    group_name = EXCLUDED.group_name,
		    mode = EXCLUDED.mode
	`

	// An unset username is the empty string, both in the domain and in
	// the NOT NULL column.
	_, err := r.db.Pool.Exec(ctx, query,
		int64(user.ID()),
		string(user.Username()),
		string(user.FullName()),
		string(user.GroupName()),
		string(user.Mode()),
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}
