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

type PostgresMediaRepository struct {
	db *database.PostgresDB
}

func NewPostgresMediaRepository(db *database.PostgresDB) *PostgresMediaRepository {
	return &PostgresMediaRepository{db: db}
}

// GetByID retrieves a media asset
func (r *PostgresMediaRepository) GetByID(ctx context.Context, id domain.MediaID) (*domain.Media, error) {
	var (
		fileID    string
		mediaType string
	)
	err := r.db.Pool.QueryRow(ctx,
		`SELECT file_id, media_type FROM media WHERE id = $1`, string(id)).
		Scan(&fileID, &mediaType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("media %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media: %w", err)
	}

	media := domain.NewMedia(id, domain.FileID(fileID), domain.MediaType(mediaType))
	return &media, nil
}

// Save inserts or overwrites the asset
func (r *PostgresMediaRepository) Save(ctx context.Context, media domain.Media) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO media (id, file_id, media_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET file_id = EXCLUDED.file_id,
		    media_type = EXCLUDED.media_type
	`, string(media.ID()), string(media.FileID()), string(media.Type()))
	if err != nil {
		return fmt.Errorf("failed to save media: %w", err)
	}
	return nil
}
