package service

import (
	"time"

	"legends-bot/internal/domain"
)

// UserDTO is the transport-facing view of a participant.
type UserDTO struct {
	ID       domain.UserID
	Username domain.Username
	FullName domain.FullName
	Group    domain.GroupName
	Mode     domain.ParticipationMode
}

func newUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:       u.ID(),
		Username: u.Username(),
		FullName: u.FullName(),
		Group:    u.GroupName(),
		Mode:     u.Mode(),
	}
}

// ProfileDTO is a user plus the team context shown on the profile page.
type ProfileDTO struct {
	UserDTO
	TeamName *domain.TeamName
}

// TeamDTO is the transport-facing view of a team.
type TeamDTO struct {
	ID        domain.TeamID
	Name      domain.TeamName
	Size      int
	MaxSize   int
	Solo      bool
	Completed bool
}

func newTeamDTO(t *domain.Team) TeamDTO {
	return TeamDTO{
		ID:        t.ID(),
		Name:      t.Name(),
		Size:      t.Size(),
		MaxSize:   domain.MaxTeamSize,
		Solo:      t.IsSolo(),
		Completed: t.IsCompleted(),
	}
}

// TeamWithMembersDTO includes the resolved member profiles.
type TeamWithMembersDTO struct {
	TeamDTO
	CaptainID domain.UserID
	Members   []UserDTO
}

// AnswerDTO reports the outcome of one graded submission.
type AnswerDTO struct {
	TaskID        domain.TaskID
	Points        domain.Points
	Solved        bool
	TrackFinished bool
}

// TaskDTO is the transport-facing view of a task.
type TaskDTO struct {
	ID          domain.TaskID
	Index       domain.SerialNumber
	Type        domain.TaskType
	Question    string
	Explanation string
	MediaID     domain.MediaID
	Options     []string
	Solved      bool
}

func newTaskDTO(t *domain.Task, solved bool) TaskDTO {
	return TaskDTO{
		ID:          t.ID(),
		Index:       t.Index(),
		Type:        t.Type(),
		Question:    t.Question(),
		Explanation: t.Explanation(),
		MediaID:     t.MediaID(),
		Options:     t.Options(),
		Solved:      solved,
	}
}

// TrackProgressDTO is the progress view shown when a team opens a track.
type TrackProgressDTO struct {
	Tag         domain.TrackTag
	Description string
	Media       MediaDTO
	State       domain.TrackState
	Percent     float64
}

// MediaDTO carries what the transport needs to re-send an asset.
type MediaDTO struct {
	ID     domain.MediaID
	FileID domain.FileID
	Type   domain.MediaType
}

func newMediaDTO(m *domain.Media) MediaDTO {
	return MediaDTO{ID: m.ID(), FileID: m.FileID(), Type: m.Type()}
}

// SlotDTO is the transport-facing view of a slot.
type SlotDTO struct {
	ID              domain.SlotID
	Start           time.Time
	Site            domain.Site
	Capacity        domain.Places
	AvailablePlaces domain.Places
}

func newSlotDTO(s *domain.Slot) SlotDTO {
	return SlotDTO{
		ID:              s.ID(),
		Start:           s.Start(),
		Site:            s.Site(),
		Capacity:        s.Capacity(),
		AvailablePlaces: s.AvailablePlaces(),
	}
}

// CharacterDTO is the transport-facing view of a legend character.
type CharacterDTO struct {
	ID     domain.CharacterID
	Index  domain.SerialNumber
	Name   domain.CharacterName
	Quote  string
	Facts  []string
	Legacy string
	Media  domain.MediaID
}

func newCharacterDTO(c *domain.Character) CharacterDTO {
	return CharacterDTO{
		ID:     c.ID(),
		Index:  c.Index(),
		Name:   c.Name(),
		Quote:  c.Quote(),
		Facts:  c.Facts(),
		Legacy: c.Legacy(),
		Media:  c.MediaID(),
	}
}
