package service

import (
	"fmt"

	"legends-bot/internal/domain"
)

// ErrUserNotInTeam is returned by use-cases that require team membership.
type ErrUserNotInTeam struct {
	UserID domain.UserID
}

func (e *ErrUserNotInTeam) Error() string {
	return fmt.Sprintf("user %d is not in a team", e.UserID)
}

// ErrNotTeamCaptain is returned by captain-only actions invoked by a
// regular member.
type ErrNotTeamCaptain struct {
	UserID domain.UserID
	TeamID domain.TeamID
}

func (e *ErrNotTeamCaptain) Error() string {
	return fmt.Sprintf("user %d is not the captain of team %s", e.UserID, e.TeamID)
}

// ErrNoAvailableSlots is returned when no slot at the requested time can
// take the requested places.
type ErrNoAvailableSlots struct {
	Start  string
	Places domain.Places
}

func (e *ErrNoAvailableSlots) Error() string {
	return fmt.Sprintf("no available slots at %s for %d places", e.Start, e.Places)
}

// ErrPlacesExceedTeamSize is returned when a team reserves more places
// than it has members.
type ErrPlacesExceedTeamSize struct {
	Places   domain.Places
	TeamSize int
}

func (e *ErrPlacesExceedTeamSize) Error() string {
	return fmt.Sprintf("%d places exceed team size %d", e.Places, e.TeamSize)
}
