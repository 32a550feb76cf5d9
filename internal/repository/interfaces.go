package repository

import (
	"context"
	"time"

	"legends-bot/internal/domain"
)

// UserRepository defines the interface for participant persistence.
type UserRepository interface {
	// GetByID retrieves a user by Telegram id
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)

	// IsRegistered reports whether the user has completed registration
	IsRegistered(ctx context.Context, id domain.UserID) (bool, error)

	// Save inserts or overwrites the user row
	Save(ctx context.Context, user *domain.User) error
}

// TeamRepository defines the interface for team aggregate persistence.
// A save rewrites the whole aggregate: membership, answers and started
// tracks go in one transaction.
type TeamRepository interface {
	// GetByID retrieves a team by invite code
	GetByID(ctx context.Context, id domain.TeamID) (*domain.Team, error)

	// GetByMember retrieves the team a user belongs to, nil if none
	GetByMember(ctx context.Context, memberID domain.UserID) (*domain.Team, error)

	// Exists reports whether the invite code belongs to a team
	Exists(ctx context.Context, id domain.TeamID) (bool, error)

	// ListAll retrieves every team, for the organizer overview
	ListAll(ctx context.Context) ([]*domain.Team, error)

	// Save writes the whole aggregate in one transaction
	Save(ctx context.Context, team *domain.Team) error

	// Delete removes the team and its owned rows
	Delete(ctx context.Context, id domain.TeamID) error
}

// TaskProvider defines read access to task definitions.
type TaskProvider interface {
	// GetByID retrieves one task
	GetByID(ctx context.Context, id domain.TaskID) (*domain.Task, error)

	// GetByType retrieves all tasks of one type
	GetByType(ctx context.Context, taskType domain.TaskType) ([]*domain.Task, error)
}

// TrackProvider defines read access to track definitions.
type TrackProvider interface {
	// GetByTag retrieves a track with all its tasks
	GetByTag(ctx context.Context, tag domain.TrackTag) (*domain.Track, error)
}

// SlotRepository defines the interface for slot aggregate persistence.
type SlotRepository interface {
	// GetAll retrieves every slot with its reservations
	GetAll(ctx context.Context) ([]*domain.Slot, error)

	// GetByStart retrieves the slots beginning at the given time
	GetByStart(ctx context.Context, start time.Time) ([]*domain.Slot, error)

	// GetByID retrieves one slot
	GetByID(ctx context.Context, id domain.SlotID) (*domain.Slot, error)

	// Save rewrites the slot and its reservations in one transaction
	Save(ctx context.Context, slot *domain.Slot) error
}

// MediaRepository defines the interface for media asset persistence.
type MediaRepository interface {
	// GetByID retrieves a media asset
	GetByID(ctx context.Context, id domain.MediaID) (*domain.Media, error)

	// Save inserts or overwrites the asset
	Save(ctx context.Context, media domain.Media) error
}

// CharacterProvider defines read access to the legend characters.
type CharacterProvider interface {
	// GetAll retrieves every character ordered by index
	GetAll(ctx context.Context) ([]*domain.Character, error)

	// GetByName retrieves a character by display name, nil if unknown
	GetByName(ctx context.Context, name domain.CharacterName) (*domain.Character, error)
}

// FeedbackRepository stores participant feedback.
type FeedbackRepository interface {
	Save(ctx context.Context, feedback domain.Feedback) error
}

// AdminProvider answers whether a user has organizer privileges.
type AdminProvider interface {
	IsAdmin(ctx context.Context, id domain.UserID) (bool, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Users      UserRepository
	Teams      TeamRepository
	Tasks      TaskProvider
	Tracks     TrackProvider
	Slots      SlotRepository
	Media      MediaRepository
	Characters CharacterProvider
	Feedback   FeedbackRepository
	Admins     AdminProvider
}
