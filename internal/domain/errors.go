package domain

import "fmt"

// ErrInvalidValue reports a value object constructor rejecting its input.
type ErrInvalidValue struct {
	Message string
}

func (e *ErrInvalidValue) Error() string { return e.Message }

func invalidValue(format string, args ...any) *ErrInvalidValue {
	return &ErrInvalidValue{Message: fmt.Sprintf(format, args...)}
}

// ErrTeamIsFull reports an attempt to join a team at maximum size.
type ErrTeamIsFull struct {
	Size int
}

func (e *ErrTeamIsFull) Error() string {
	return fmt.Sprintf("team is full: %d members", e.Size)
}

// ErrUserAlreadyInTeam reports an attempt to join or create a team while
// already being a member of one.
type ErrUserAlreadyInTeam struct {
	UserID UserID
	TeamID TeamID
}

func (e *ErrUserAlreadyInTeam) Error() string {
	return fmt.Sprintf("user %d is already in team %s", e.UserID, e.TeamID)
}

// ErrUserIsNotMemberOfTeam reports a team operation on a non-member.
type ErrUserIsNotMemberOfTeam struct {
	UserID UserID
}

func (e *ErrUserIsNotMemberOfTeam) Error() string {
	return fmt.Sprintf("user %d is not a member of the team", e.UserID)
}

// ErrTrackCanNotBeStarted reports starting an already started or
// finished track.
type ErrTrackCanNotBeStarted struct {
	Tag TrackTag
}

func (e *ErrTrackCanNotBeStarted) Error() string {
	return fmt.Sprintf("track %s can not be started", e.Tag)
}

// ErrTrackCanNotBeFinished reports finishing a track that is not in the
// started state.
type ErrTrackCanNotBeFinished struct {
	Tag TrackTag
}

func (e *ErrTrackCanNotBeFinished) Error() string {
	return fmt.Sprintf("track %s can not be finished", e.Tag)
}

// ErrTrackNotStarted reports querying track state before the track was
// started.
type ErrTrackNotStarted struct {
	Tag TrackTag
}

func (e *ErrTrackNotStarted) Error() string {
	return fmt.Sprintf("track %s is not started", e.Tag)
}

// ErrCanNotReserveSlot reports a reservation exceeding slot capacity.
type ErrCanNotReserveSlot struct {
	SlotID SlotID
	Places Places
}

func (e *ErrCanNotReserveSlot) Error() string {
	return fmt.Sprintf("slot %s can not take %d places", e.SlotID, e.Places)
}

// ErrTeamAlreadyReservedSlot reports a second reservation by a team that
// already holds one.
type ErrTeamAlreadyReservedSlot struct {
	TeamID TeamID
	SlotID SlotID
}

func (e *ErrTeamAlreadyReservedSlot) Error() string {
	return fmt.Sprintf("team %s already reserved slot %s", e.TeamID, e.SlotID)
}

// ErrTeamNotReservedSlot reports cancelling a reservation the team does
// not hold.
type ErrTeamNotReservedSlot struct {
	TeamID TeamID
}

func (e *ErrTeamNotReservedSlot) Error() string {
	return fmt.Sprintf("team %s has no reservation", e.TeamID)
}

// ErrCannotSwitchMode reports an illegal participation mode transition.
type ErrCannotSwitchMode struct {
	From ParticipationMode
	To   ParticipationMode
}

func (e *ErrCannotSwitchMode) Error() string {
	return fmt.Sprintf("can not switch mode from %s to %s", e.From, e.To)
}
