package repository

import (
	"context"
	"fmt"

	"legends-bot/internal/domain"
	"legends-bot/pkg/database"
)

type PostgresFeedbackRepository struct {
	db *database.PostgresDB
}

func NewPostgresFeedbackRepository(db *database.PostgresDB) *PostgresFeedbackRepository {
	return &PostgresFeedbackRepository{db: db}
}

// Save appends a feedback record
func (r *PostgresFeedbackRepository) Save(ctx context.Context, feedback domain.Feedback) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO feedback (author_id, text, created_at)
		VALUES ($1, $2, $3)
	`, int64(feedback.AuthorID()), string(feedback.Text()), feedback.CreatedAt())
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// PostgresAdminRepository answers organizer privilege checks from the
// admins table, merged with the statically configured admin ids.
type PostgresAdminRepository struct {
	db        *database.PostgresDB
	staticIDs map[domain.UserID]bool
}

func NewPostgresAdminRepository(db *database.PostgresDB, staticIDs []int64) *PostgresAdminRepository {
	ids := make(map[domain.UserID]bool, len(staticIDs))
	for _, id := range staticIDs {
		ids[domain.UserID(id)] = true
	}
	return &PostgresAdminRepository{db: db, staticIDs: ids}
}

// IsAdmin reports whether the user has organizer privileges
func (r *PostgresAdminRepository) IsAdmin(ctx context.Context, id domain.UserID) (bool, error) {
	if r.staticIDs[id] {
		return true, nil
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM admins WHERE user_id = $1)`
	if err := r.db.Pool.QueryRow(ctx, query, int64(id)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check admin: %w", err)
	}
	return exists, nil
}
