package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"legends-bot/internal/domain"
	"legends-bot/pkg/database"
	apperrors "legends-bot/pkg/errors"
)

type PostgresTeamRepository struct {
	db *database.PostgresDB
}

func NewPostgresTeamRepository(db *database.PostgresDB) *PostgresTeamRepository {
	return &PostgresTeamRepository{db: db}
}

// GetByID retrieves a team by invite code
func (r *PostgresTeamRepository) GetByID(ctx context.Context, id domain.TeamID) (*domain.Team, error) {
	team, err := r.fetchTeam(ctx, `SELECT id, name, captain_id, reserved_slot_id FROM teams WHERE id = $1`, string(id))
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("team %s not found", id))
	}
	return team, nil
}

// GetByMember retrieves the team a user belongs to, nil if none
func (r *PostgresTeamRepository) GetByMember(ctx context.Context, memberID domain.UserID) (*domain.Team, error) {
	query := `
		SELECT t.id, t.name, t.captain_id, t.reserved_slot_id
		FROM teams t
		JOIN team_members m ON m.team_id = t.id
		WHERE m.user_id = $1
	`
	return r.fetchTeam(ctx, query, int64(memberID))
}

// Exists reports whether the invite code belongs to a team
func (r *PostgresTeamRepository) Exists(ctx context.Context, id domain.TeamID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM teams WHERE id = $1)`

	if err := r.db.Pool.QueryRow(ctx, query, string(id)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check team existence: %w", err)
	}
	return exists, nil
}

// ListAll retrieves every team, for the organizer overview
func (r *PostgresTeamRepository) ListAll(ctx context.Context) ([]*domain.Team, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT id FROM teams ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan team id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}

	teams := make([]*domain.Team, 0, len(ids))
	for _, id := range ids {
		team, err := r.GetByID(ctx, domain.TeamID(id))
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}

// fetchTeam loads the team row and reconstructs the whole aggregate:
// members in join order, the current answer per task, started tracks.
func (r *PostgresTeamRepository) fetchTeam(ctx context.Context, query string, arg interface{}) (*domain.Team, error) {
	var (
		id           string
		name         string
		captainID    int64
		reservedSlot *string
	)
	err := r.db.Pool.QueryRow(ctx, query, arg).Scan(&id, &name, &captainID, &reservedSlot)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	memberIDs, err := r.fetchMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	answers, err := r.fetchAnswers(ctx, id)
	if err != nil {
		return nil, err
	}
	startedTracks, err := r.fetchStartedTracks(ctx, id)
	if err != nil {
		return nil, err
	}

	var slotID domain.SlotID
	if reservedSlot != nil {
		slotID = domain.SlotID(*reservedSlot)
	}

	team, err := domain.RestoreTeam(
		domain.TeamID(id),
		domain.TeamName(name),
		domain.UserID(captainID),
		memberIDs,
		answers,
		startedTracks,
		slotID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to restore team %s: %w", id, err)
	}
	return team, nil
}

func (r *PostgresTeamRepository) fetchMembers(ctx context.Context, teamID string) ([]domain.UserID, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT user_id FROM team_members WHERE team_id = $1 ORDER BY position`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}
	defer rows.Close()

	var memberIDs []domain.UserID
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		memberIDs = append(memberIDs, domain.UserID(userID))
	}
	return memberIDs, rows.Err()
}

func (r *PostgresTeamRepository) fetchAnswers(ctx context.Context, teamID string) ([]domain.Answer, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, task_id, text, points, created_at FROM answers WHERE team_id = $1`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team answers: %w", err)
	}
	defer rows.Close()

	var answers []domain.Answer
	for rows.Next() {
		var (
			answerID  string
			taskID    int
			text      string
			points    int
			createdAt time.Time
		)
		if err := rows.Scan(&answerID, &taskID, &text, &points, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, domain.RestoreAnswer(
			domain.AnswerID(answerID),
			domain.TaskID(taskID),
			text,
			domain.Points(points),
			createdAt,
		))
	}
	return answers, rows.Err()
}

func (r *PostgresTeamRepository) fetchStartedTracks(ctx context.Context, teamID string) (map[domain.TrackTag]domain.TrackStatus, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT track_tag, state, started_at, finished_at FROM started_tracks WHERE team_id = $1`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get started tracks: %w", err)
	}
	defer rows.Close()

	started := map[domain.TrackTag]domain.TrackStatus{}
	for rows.Next() {
		var (
			tag        string
			state      string
			startedAt  time.Time
			finishedAt *time.Time
		)
		if err := rows.Scan(&tag, &state, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan started track: %w", err)
		}
		status := domain.TrackStatus{State: domain.TrackState(state), StartedAt: startedAt}
		if finishedAt != nil {
			status.FinishedAt = *finishedAt
		}
		started[domain.TrackTag(tag)] = status
	}
	return started, rows.Err()
}

// Save writes the whole aggregate in one transaction
func (r *PostgresTeamRepository) Save(ctx context.Context, team *domain.Team) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := saveTeamTx(ctx, tx, team); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit team save: %w", err)
	}
	return nil
}

// saveTeamTx rewrites the team aggregate inside the given transaction.
// Shared with the cross-aggregate unit of work.
func saveTeamTx(ctx context.Context, tx pgx.Tx, team *domain.Team) error {
	var reservedSlot *string
	if team.ReservedSlot() != "" {
		s := string(team.ReservedSlot())
		reservedSlot = &s
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO teams (id, name, captain_id, reserved_slot_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    captain_id = EXCLUDED.captain_id,
		    reserved_slot_id = EXCLUDED.reserved_slot_id
	`, string(team.ID()), string(team.Name()), int64(team.CaptainID()), reservedSlot)
	if err != nil {
		return fmt.Errorf("failed to save team: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM team_members WHERE team_id = $1`, string(team.ID())); err != nil {
		return fmt.Errorf("failed to clear team members: %w", err)
	}
	for position, memberID := range team.MemberIDs() {
		_, err := tx.Exec(ctx,
			`INSERT INTO team_members (team_id, user_id, position) VALUES ($1, $2, $3)`,
			string(team.ID()), int64(memberID), position)
		if err != nil {
			return fmt.Errorf("failed to save team member: %w", err)
		}
	}

	for _, answer := range team.Answers() {
		_, err := tx.Exec(ctx, `
			INSERT INTO answers (id, team_id, task_id, text, points, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (team_id, task_id) DO UPDATE
			SET id = EXCLUDED.id,
			    text = EXCLUDED.text,
			    points = EXCLUDED.points,
			    created_at = EXCLUDED.created_at
		`, string(answer.ID()), string(team.ID()), int(answer.TaskID()),
			answer.Text(), answer.Points().Int(), answer.CreatedAt())
		if err != nil {
			return fmt.Errorf("failed to save answer: %w", err)
		}
	}

	for tag, status := range team.StartedTracks() {
		var finishedAt *time.Time
		if status.State == domain.TrackFinished {
			t := status.FinishedAt
			finishedAt = &t
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO started_tracks (team_id, track_tag, state, started_at, finished_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (team_id, track_tag) DO UPDATE
			SET state = EXCLUDED.state,
			    finished_at = EXCLUDED.finished_at
		`, string(team.ID()), string(tag), string(status.State), status.StartedAt, finishedAt)
		if err != nil {
			return fmt.Errorf("failed to save started track: %w", err)
		}
	}

	return nil
}

// Delete removes the team and its owned rows
func (r *PostgresTeamRepository) Delete(ctx context.Context, id domain.TeamID) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, query := range []string{
		`DELETE FROM answers WHERE team_id = $1`,
		`DELETE FROM started_tracks WHERE team_id = $1`,
		`DELETE FROM team_members WHERE team_id = $1`,
		`DELETE FROM reservations WHERE team_id = $1`,
		`DELETE FROM teams WHERE id = $1`,
	} {
		if _, err := tx.Exec(ctx, query, string(id)); err != nil {
			return fmt.Errorf("failed to delete team: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit team delete: %w", err)
	}
	return nil
}
