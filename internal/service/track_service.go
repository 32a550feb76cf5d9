package service

import (
	"context"

	"go.uber.org/zap"

	"legends-bot/internal/domain"
	"legends-bot/internal/repository"
)

// TrackService covers track progression: starting tracks, answering
// tasks and deriving progress views.
type TrackService struct {
	teams  repository.TeamRepository
	tasks  repository.TaskProvider
	tracks trackProvider
	media  repository.MediaRepository
	log    *zap.Logger
}

// trackProvider matches repository.TrackProvider; declared locally so
// the cached decorator can stand in.
type trackProvider interface {
	GetByTag(ctx context.Context, tag domain.TrackTag) (*domain.Track, error)
}

func NewTrackService(
	teams repository.TeamRepository,
	tasks repository.TaskProvider,
	tracks trackProvider,
	media repository.MediaRepository,
	log *zap.Logger,
) *TrackService {
	return &TrackService{teams: teams, tasks: tasks, tracks: tracks, media: media, log: log}
}

func (s *TrackService) teamOf(ctx context.Context, userID domain.UserID) (*domain.Team, error) {
	team, err := s.teams.GetByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, &ErrUserNotInTeam{UserID: userID}
	}
	return team, nil
}

// GetAvailableTracks lists the tracks the user's team may enter.
func (s *TrackService) GetAvailableTracks(ctx context.Context, userID domain.UserID) ([]domain.TrackTag, error) {
	team, err := s.teamOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return team.AvailableTracks(), nil
}

// StartTrack begins a track for the user's team and returns the initial
// progress view.
func (s *TrackService) StartTrack(ctx context.Context, userID domain.UserID, tag domain.TrackTag) (TrackProgressDTO, error) {
	team, err := s.teamOf(ctx, userID)
	if err != nil {
		return TrackProgressDTO{}, err
	}
	if err := team.StartTrack(tag); err != nil {
		return TrackProgressDTO{}, err
	}

	dto, err := s.progressDTO(ctx, team, tag)
	if err != nil {
		return TrackProgressDTO{}, err
	}
	if err := s.teams.Save(ctx, team); err != nil {
		return TrackProgressDTO{}, err
	}

	s.log.Info("track started",
		zap.String("team_id", string(team.ID())),
		zap.String("track", string(tag)))
	return dto, nil
}

// GetTrackInProgress returns the current progress view without mutating
// anything.
func (s *TrackService) GetTrackInProgress(ctx context.Context, userID domain.UserID, tag domain.TrackTag) (TrackProgressDTO, error) {
	team, err := s.teamOf(ctx, userID)
	if err != nil {
		return TrackProgressDTO{}, err
	}
	return s.progressDTO(ctx, team, tag)
}

func (s *TrackService) progressDTO(ctx context.Context, team *domain.Team, tag domain.TrackTag) (TrackProgressDTO, error) {
	track, err := s.tracks.GetByTag(ctx, tag)
	if err != nil {
		return TrackProgressDTO{}, err
	}
	status, err := team.TrackStatus(tag)
	if err != nil {
		return TrackProgressDTO{}, err
	}
	var media MediaDTO
	if track.MediaID() != "" {
		m, err := s.media.GetByID(ctx, track.MediaID())
		if err != nil {
			return TrackProgressDTO{}, err
		}
		media = newMediaDTO(m)
	}

	progress := track.Progress(team.Answers())
	return TrackProgressDTO{
		Tag:         tag,
		Description: track.Description(),
		Media:       media,
		State:       status.State,
		Percent:     progress.Percent(),
	}, nil
}

// CheckStartedTrack reports whether the user's team has started a track.
func (s *TrackService) CheckStartedTrack(ctx context.Context, userID domain.UserID, tag domain.TrackTag) (bool, error) {
	team, err := s.teamOf(ctx, userID)
	if err != nil {
		return false, err
	}
	return team.TrackIsStarted(tag), nil
}

// AnswerTask grades a submission for the user's team, stores the answer
// and finishes the track when every reachable task is completed.
// Finishing is a derived side effect of answering, not a separate user
// action.
func (s *TrackService) AnswerTask(
	ctx context.Context,
	userID domain.UserID,
	tag domain.TrackTag,
	taskID domain.TaskID,
	text string,
) (AnswerDTO, error) {
	team, err := s.teamOf(ctx, userID)
	if err != nil {
		return AnswerDTO{}, err
	}
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return AnswerDTO{}, err
	}

	answer := task.Answer(text)
	team.SaveAnswer(answer)

	dto := AnswerDTO{
		TaskID: taskID,
		Points: answer.Points(),
		Solved: answer.Solved(),
	}

	track, err := s.tracks.GetByTag(ctx, tag)
	if err != nil {
		return AnswerDTO{}, err
	}
	if track.Progress(team.Answers()).FullCompleted() && team.TrackIsStarted(tag) {
		if err := team.FinishTrack(tag); err == nil {
			dto.TrackFinished = true
		}
	}

	if err := s.teams.Save(ctx, team); err != nil {
		return AnswerDTO{}, err
	}

	s.log.Info("task answered",
		zap.String("team_id", string(team.ID())),
		zap.Int("task_id", int(taskID)),
		zap.Bool("solved", dto.Solved),
		zap.Bool("track_finished", dto.TrackFinished))
	return dto, nil
}

// GetCompletedTasks lists the tasks the user's team has solved on a
// track.
func (s *TrackService) GetCompletedTasks(ctx context.Context, userID domain.UserID, tag domain.TrackTag) ([]TaskDTO, error) {
	return s.filteredTasks(ctx, userID, tag, func(p *domain.TrackProgress) []*domain.Task {
		return p.CompletedTasks()
	}, true)
}

// GetAvailableTasks lists the tasks the user's team can currently work
// on.
func (s *TrackService) GetAvailableTasks(ctx context.Context, userID domain.UserID, tag domain.TrackTag) ([]TaskDTO, error) {
	return s.filteredTasks(ctx, userID, tag, func(p *domain.TrackProgress) []*domain.Task {
		return p.AvailableTasks()
	}, false)
}

func (s *TrackService) filteredTasks(
	ctx context.Context,
	userID domain.UserID,
	tag domain.TrackTag,
	pick func(*domain.TrackProgress) []*domain.Task,
	solved bool,
) ([]TaskDTO, error) {
	team, err := s.teamOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	track, err := s.tracks.GetByTag(ctx, tag)
	if err != nil {
		return nil, err
	}

	progress := track.Progress(team.Answers())
	tasks := pick(progress)
	dtos := make([]TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		dtos = append(dtos, newTaskDTO(task, solved))
	}
	return dtos, nil
}

// GetTask returns one task definition.
func (s *TrackService) GetTask(ctx context.Context, taskID domain.TaskID) (TaskDTO, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return TaskDTO{}, err
	}
	return newTaskDTO(task, false), nil
}
