package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"legends-bot/internal/domain"
	"legends-bot/pkg/database"
)

type PostgresCharacterRepository struct {
	db *database.PostgresDB
}

func NewPostgresCharacterRepository(db *database.PostgresDB) *PostgresCharacterRepository {
	return &PostgresCharacterRepository{db: db}
}

const characterColumns = `id, index, name, quote, facts, legacy, media_id`

// GetAll retrieves every character ordered by index
func (r *PostgresCharacterRepository) GetAll(ctx context.Context) ([]*domain.Character, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+characterColumns+` FROM characters ORDER BY index`)
	if err != nil {
		return nil, fmt.Errorf("failed to get characters: %w", err)
	}
	defer rows.Close()

	var characters []*domain.Character
	for rows.Next() {
		character, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		characters = append(characters, character)
	}
	return characters, rows.Err()
}

// GetByName retrieves a character by display name, nil if unknown
func (r *PostgresCharacterRepository) GetByName(ctx context.Context, name domain.CharacterName) (*domain.Character, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE name = $1`, string(name))

	character, err := scanCharacter(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return character, nil
}

func scanCharacter(row pgx.Row) (*domain.Character, error) {
	var (
		id      string
		index   int
		name    string
		quote   string
		facts   []string
		legacy  string
		mediaID string
	)
	if err := row.Scan(&id, &index, &name, &quote, &facts, &legacy, &mediaID); err != nil {
		return nil, err
	}
	return domain.RestoreCharacter(
		domain.CharacterID(id),
		domain.SerialNumber(index),
		domain.CharacterName(name),
		quote,
		facts,
		legacy,
		domain.MediaID(mediaID),
	), nil
}
