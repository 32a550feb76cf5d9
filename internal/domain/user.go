package domain

import (
	"regexp"
	"strings"
)

// UserID is the Telegram account id of a participant.
type UserID int64

// Username is an optional Telegram username. Empty string means "not set".
type Username string

// FullName is the participant's real name as entered at registration.
type FullName string

// NewFullName validates that the name is not empty.
func NewFullName(s string) (FullName, error) {
	if s == "" {
		return "", invalidValue("invalid full name: expected not empty string")
	}
	return FullName(s), nil
}

// groupNameRe matches institutional group codes like ИУ7-13Б or РК6-11.
var groupNameRe = regexp.MustCompile(`^[А-Я]{1,3}1?[0-9]?[КИЦ]?-[1-9][0-9]?(\.[1-9])?[0-9][АБМ]?$`)

var firstCourseRe = regexp.MustCompile(`^[А-Я]{1,3}1?[0-9]?[КИЦ]?-1(\.[1-9])?[0-9][АБМ]?$`)

// GroupName is a study group code in the institutional format.
type GroupName string

// NewGroupName upper-cases the input and validates it against the group
// code format.
func NewGroupName(s string) (GroupName, error) {
	up := strings.ToUpper(s)
	if !groupNameRe.MatchString(up) {
		return "", invalidValue("invalid group name: %s", s)
	}
	return GroupName(up), nil
}

// IsFirstCourse reports whether the group code belongs to a first-year
// group.
func (g GroupName) IsFirstCourse() bool {
	return firstCourseRe.MatchString(string(g))
}

// ParticipationMode is the user's current way of taking part in the event.
type ParticipationMode string

const (
	// ModeSolo means the user plays alone (modeled as a one-member team
	// once a solo team is created).
	ModeSolo ParticipationMode = "solo"
	// ModeLookingForTeam means the user wants to be picked up by a team.
	ModeLookingForTeam ParticipationMode = "looking_for_team"
	// ModeInTeam means the user is a member of a team.
	ModeInTeam ParticipationMode = "in_team"
)

// User is a registered participant.
type User struct {
	id       UserID
	username Username
	fullName FullName
	group    GroupName
	mode     ParticipationMode
}

// NewUser registers a participant. New users start in looking-for-team
// mode until they create or join a team or explicitly go solo.
func NewUser(id UserID, username Username, fullName FullName, group GroupName) *User {
	return &User{
		id:       id,
		username: username,
		fullName: fullName,
		group:    group,
		mode:     ModeLookingForTeam,
	}
}

// RestoreUser rebuilds a user from persisted state.
func RestoreUser(id UserID, username Username, fullName FullName, group GroupName, mode ParticipationMode) *User {
	return &User{id: id, username: username, fullName: fullName, group: group, mode: mode}
}

func (u *User) ID() UserID { return u.id }
func (u *User) Username() Username { return u.username }
func (u *User) FullName() FullName { return u.fullName }
func (u *User) GroupName() GroupName { return u.group }
func (u *User) Mode() ParticipationMode { return u.mode }

func (u *User) ChangeFullName(n FullName) { u.fullName = n }
func (u *User) ChangeGroupName(g GroupName) { u.group = g }

// SwitchToSolo moves the user to solo mode. A team member must exit the
// team first.
func (u *User) SwitchToSolo() error {
	if u.mode == ModeInTeam {
		return &ErrCannotSwitchMode{From: u.mode, To: ModeSolo}
	}
	u.mode = ModeSolo
	return nil
}

// SwitchToLookingForTeam moves the user to looking-for-team mode. A team
// member must exit the team first.
func (u *User) SwitchToLookingForTeam() error {
	if u.mode == ModeInTeam {
		return &ErrCannotSwitchMode{From: u.mode, To: ModeLookingForTeam}
	}
	u.mode = ModeLookingForTeam
	return nil
}

// JoinedTeam marks the user as a team member. Called by the team
// use-cases after membership changes.
func (u *User) JoinedTeam() { u.mode = ModeInTeam }

// LeftTeam returns the user to looking-for-team mode after a team exit.
func (u *User) LeftTeam() { u.mode = ModeLookingForTeam }
