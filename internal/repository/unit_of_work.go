package repository

import (
	"context"
	"fmt"

	"legends-bot/internal/domain"
	"legends-bot/pkg/database"
)

// UnitOfWork saves aggregates touched by one use-case in a single
// database transaction. The reservation and team-exit flows span two
// aggregates; without this a crash between the two saves leaves the
// slot and the team disagreeing about the reservation.
type UnitOfWork struct {
	db *database.PostgresDB
}

func NewUnitOfWork(db *database.PostgresDB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// SaveTeamAndSlot writes both aggregates atomically.
func (u *UnitOfWork) SaveTeamAndSlot(ctx context.Context, team *domain.Team, slot *domain.Slot) error {
	tx, err := u.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := saveTeamTx(ctx, tx, team); err != nil {
		return err
	}
	if err := saveSlotTx(ctx, tx, slot); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit team and slot: %w", err)
	}
	return nil
}

// SaveTeamAndUser writes membership and participation mode atomically.
// Pass a nil team to delete it instead (last member left).
func (u *UnitOfWork) SaveTeamAndUser(ctx context.Context, team *domain.Team, deleteTeamID domain.TeamID, user *domain.User) error {
	tx, err := u.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if team != nil {
		if err := saveTeamTx(ctx, tx, team); err != nil {
			return err
		}
	} else if deleteTeamID != "" {
		for _, query := range []string{
			`DELETE FROM answers WHERE team_id = $1`,
			`DELETE FROM started_tracks WHERE team_id = $1`,
			`DELETE FROM team_members WHERE team_id = $1`,
			`DELETE FROM reservations WHERE team_id = $1`,
			`DELETE FROM teams WHERE id = $1`,
		} {
			if _, err := tx.Exec(ctx, query, string(deleteTeamID)); err != nil {
				return fmt.Errorf("failed to delete team: %w", err)
			}
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, username, full_name, group_name, mode)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET username = EXCLUDED.username,
		    full_name = EXCLUDED.full_name,
		    group_name = EXCLUDED.group_name,
		    mode = EXCLUDED.mode
	`, int64(user.ID()), string(user.Username()), string(user.FullName()), string(user.GroupName()), string(user.Mode()))
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit team and user: %w", err)
	}
	return nil
}
