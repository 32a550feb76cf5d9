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

type PostgresTaskRepository struct {
	db *database.PostgresDB
}

func NewPostgresTaskRepository(db *database.PostgresDB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

const taskColumns = `id, index, task_type, question, explanation, media_id, options, points, price, max_distance`

// GetByID retrieves one task
func (r *PostgresTaskRepository) GetByID(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, int(id))

	task, err := r.scanTask(ctx, row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("task %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// GetByType retrieves all tasks of one type
func (r *PostgresTaskRepository) GetByType(ctx context.Context, taskType domain.TaskType) ([]*domain.Task, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE task_type = $1 ORDER BY index`, string(taskType))
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := r.scanTask(ctx, rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// scanTask reads a task row and loads its dependency and correct-answer
// link tables.
func (r *PostgresTaskRepository) scanTask(ctx context.Context, row pgx.Row) (*domain.Task, error) {
	var (
		id          int
		index       int
		taskType    string
		question    string
		explanation string
		mediaID     *string
		options     []string
		points      int
		price       int
		maxDistance int
	)
	err := row.Scan(&id, &index, &taskType, &question, &explanation, &mediaID, &options, &points, &price, &maxDistance)
	if err != nil {
		return nil, err
	}

	dependencies, err := r.fetchDependencies(ctx, id)
	if err != nil {
		return nil, err
	}
	correctAnswers, err := r.fetchCorrectAnswers(ctx, id)
	if err != nil {
		return nil, err
	}

	var media domain.MediaID
	if mediaID != nil {
		media = domain.MediaID(*mediaID)
	}

	return domain.NewTask(
		domain.TaskID(id),
		domain.SerialNumber(index),
		domain.TaskType(taskType),
		question,
		explanation,
		media,
		options,
		dependencies,
		correctAnswers,
		domain.Points(points),
		domain.Points(price),
		maxDistance,
	), nil
}

func (r *PostgresTaskRepository) fetchDependencies(ctx context.Context, taskID int) ([]domain.TaskID, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT depends_on FROM task_dependencies WHERE task_id = $1`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task dependencies: %w", err)
	}
	defer rows.Close()

	var deps []domain.TaskID
	for rows.Next() {
		var dep int
		if err := rows.Scan(&dep); err != nil {
			return nil, fmt.Errorf("failed to scan dependency: %w", err)
		}
		deps = append(deps, domain.TaskID(dep))
	}
	return deps, rows.Err()
}

func (r *PostgresTaskRepository) fetchCorrectAnswers(ctx context.Context, taskID int) ([]domain.CorrectAnswer, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT answer FROM task_correct_answers WHERE task_id = $1`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get correct answers: %w", err)
	}
	defer rows.Close()

	var answers []domain.CorrectAnswer
	for rows.Next() {
		var answer string
		if err := rows.Scan(&answer); err != nil {
			return nil, fmt.Errorf("failed to scan correct answer: %w", err)
		}
		// stored pre-normalized; re-validate on load
		ca, err := domain.NewCorrectAnswer(answer)
		if err != nil {
			return nil, fmt.Errorf("corrupt correct answer for task %d: %w", taskID, err)
		}
		answers = append(answers, ca)
	}
	return answers, rows.Err()
}

// PostgresTrackRepository reconstructs track definitions with their tasks.
type PostgresTrackRepository struct {
	db    *database.PostgresDB
	tasks *PostgresTaskRepository
}

func NewPostgresTrackRepository(db *database.PostgresDB, tasks *PostgresTaskRepository) *PostgresTrackRepository {
	return &PostgresTrackRepository{db: db, tasks: tasks}
}

// GetByTag retrieves a track with all its tasks
func (r *PostgresTrackRepository) GetByTag(ctx context.Context, tag domain.TrackTag) (*domain.Track, error) {
	var (
		description string
		mediaID     string
	)
	err := r.db.Pool.QueryRow(ctx,
		`SELECT description, media_id FROM tracks WHERE tag = $1`, string(tag)).
		Scan(&description, &mediaID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("track %s not found", tag))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get track: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id IN (SELECT task_id FROM track_tasks WHERE track_tag = $1)
		ORDER BY index
	`, string(tag))
	if err != nil {
		return nil, fmt.Errorf("failed to get track tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := r.tasks.scanTask(ctx, rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return domain.NewTrack(tag, description, domain.MediaID(mediaID), tasks), nil
}
