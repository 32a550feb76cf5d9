package domain

import "time"

const (
	// TeamIDLength is the invite code length shared with participants.
	TeamIDLength = 6
	// MaxTeamSize caps team membership.
	MaxTeamSize = 8
	// MinCompletedTeamSize is the size at which a team counts as fully
	// staffed for the final.
	MinCompletedTeamSize = 5
)

// TeamID is a 6-character alphanumeric invite code, globally unique.
type TeamID string

// NewTeamID generates a fresh invite code.
func NewTeamID() TeamID { return TeamID(newShortID(TeamIDLength)) }

// ParseTeamID validates an invite code entered by a user.
func ParseTeamID(s string) (TeamID, error) {
	if len(s) != TeamIDLength {
		return "", invalidValue("invalid team id: expected length %d, got %d", TeamIDLength, len(s))
	}
	for _, c := range s {
		if !isAlphanumeric(c) {
			return "", invalidValue("invalid team id: expected alphanumeric characters, got %q", s)
		}
	}
	return TeamID(s), nil
}

func isAlphanumeric(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// TeamName is a non-empty display name.
type TeamName string

// NewTeamName validates that the name is not empty.
func NewTeamName(s string) (TeamName, error) {
	if s == "" {
		return "", invalidValue("invalid team name: expected not empty string")
	}
	return TeamName(s), nil
}

// TrackState is the team-side lifecycle of one track.
type TrackState string

const (
	TrackStarted  TrackState = "started"
	TrackFinished TrackState = "finished"
)

// TrackStatus records when a team started and, once done, finished a
// track. A track transitions Started -> Finished exactly once.
type TrackStatus struct {
	State      TrackState
	StartedAt  time.Time
	FinishedAt time.Time
}

// Team is the aggregate root for a group of participants: membership
// with captain succession, accumulated answers, per-track state, and an
// optional slot reservation. Member order is join order.
type Team struct {
	id            TeamID
	name          TeamName
	captainID     UserID
	memberIDs     []UserID
	answers       map[TaskID]Answer
	startedTracks map[TrackTag]TrackStatus
	reservedSlot  SlotID
}

// NewTeam creates a team with the creator as captain and sole member.
func NewTeam(name TeamName, captainID UserID) *Team {
	return &Team{
		id:            NewTeamID(),
		name:          name,
		captainID:     captainID,
		memberIDs:     []UserID{captainID},
		answers:       map[TaskID]Answer{},
		startedTracks: map[TrackTag]TrackStatus{},
	}
}

// RestoreTeam rebuilds a team from persisted state, re-checking the
// structural invariants.
func RestoreTeam(
	id TeamID,
	name TeamName,
	captainID UserID,
	memberIDs []UserID,
	answers []Answer,
	startedTracks map[TrackTag]TrackStatus,
	reservedSlot SlotID,
) (*Team, error) {
	if len(memberIDs) == 0 || len(memberIDs) > MaxTeamSize {
		return nil, invalidValue("invalid team size: %d", len(memberIDs))
	}
	found := false
	for _, id := range memberIDs {
		if id == captainID {
			found = true
			break
		}
	}
	if !found {
		return nil, invalidValue("captain %d is not a member of team %s", captainID, id)
	}
	answerMap := make(map[TaskID]Answer, len(answers))
	for _, a := range answers {
		answerMap[a.TaskID()] = a
	}
	if startedTracks == nil {
		startedTracks = map[TrackTag]TrackStatus{}
	}
	return &Team{
		id:            id,
		name:          name,
		captainID:     captainID,
		memberIDs:     memberIDs,
		answers:       answerMap,
		startedTracks: startedTracks,
		reservedSlot:  reservedSlot,
	}, nil
}

func (t *Team) ID() TeamID { return t.id }
func (t *Team) Name() TeamName { return t.name }
func (t *Team) CaptainID() UserID { return t.captainID }
func (t *Team) MemberIDs() []UserID { return t.memberIDs }
func (t *Team) Size() int { return len(t.memberIDs) }

func (t *Team) IsCaptain(id UserID) bool { return t.captainID == id }

// IsSolo reports whether the team is a single registrant. Unpaired
// participants are modeled as one-member teams, not a separate type.
func (t *Team) IsSolo() bool { return len(t.memberIDs) == 1 }

// IsCompleted reports whether the team is large enough for the final.
func (t *Team) IsCompleted() bool { return len(t.memberIDs) >= MinCompletedTeamSize }

func (t *Team) IsMember(id UserID) bool {
	for _, m := range t.memberIDs {
		if m == id {
			return true
		}
	}
	return false
}

// AddMember appends a member in join order.
func (t *Team) AddMember(id UserID) error {
	if len(t.memberIDs)+1 > MaxTeamSize {
		return &ErrTeamIsFull{Size: len(t.memberIDs)}
	}
	if t.IsMember(id) {
		return &ErrUserAlreadyInTeam{UserID: id, TeamID: t.id}
	}
	t.memberIDs = append(t.memberIDs, id)
	return nil
}

// RemoveMember takes a member out of the team. If the captain leaves and
// others remain, captaincy passes to the earliest remaining member. The
// second return value is false when the last member left: the team no
// longer exists and the caller must delete its persisted record.
func (t *Team) RemoveMember(id UserID) (*Team, bool, error) {
	if !t.IsMember(id) {
		return nil, false, &ErrUserIsNotMemberOfTeam{UserID: id}
	}
	if id == t.captainID && len(t.memberIDs) == 1 {
		return nil, false, nil
	}
	members := make([]UserID, 0, len(t.memberIDs)-1)
	for _, m := range t.memberIDs {
		if m != id {
			members = append(members, m)
		}
	}
	t.memberIDs = members
	if id == t.captainID {
		t.captainID = members[0]
	}
	return t, true, nil
}

// SaveAnswer records a graded submission, replacing any previous answer
// for the same task. Score is therefore not cumulative across retries.
func (t *Team) SaveAnswer(a Answer) {
	t.answers[a.TaskID()] = a
}

// Answers returns the team's current answer per task.
func (t *Team) Answers() []Answer {
	out := make([]Answer, 0, len(t.answers))
	for _, a := range t.answers {
		out = append(out, a)
	}
	return out
}

// AvailableTracks lists the tracks the team may enter: solo teams are
// restricted to the designated solo track, full teams get all of them.
func (t *Team) AvailableTracks() []TrackTag {
	if t.IsSolo() {
		return []TrackTag{SoloTrack}
	}
	return AllTracks()
}

// StartTrack begins a track. A track already started or finished can not
// be started again.
func (t *Team) StartTrack(tag TrackTag) error {
	if _, ok := t.startedTracks[tag]; ok {
		return &ErrTrackCanNotBeStarted{Tag: tag}
	}
	t.startedTracks[tag] = TrackStatus{State: TrackStarted, StartedAt: time.Now().UTC()}
	return nil
}

// FinishTrack transitions a started track to finished, preserving the
// original start time.
func (t *Team) FinishTrack(tag TrackTag) error {
	status, ok := t.startedTracks[tag]
	if !ok || status.State != TrackStarted {
		return &ErrTrackCanNotBeFinished{Tag: tag}
	}
	status.State = TrackFinished
	status.FinishedAt = time.Now().UTC()
	t.startedTracks[tag] = status
	return nil
}

// TrackStatus returns the team's state for one track.
func (t *Team) TrackStatus(tag TrackTag) (TrackStatus, error) {
	status, ok := t.startedTracks[tag]
	if !ok {
		return TrackStatus{}, &ErrTrackNotStarted{Tag: tag}
	}
	return status, nil
}

func (t *Team) TrackIsStarted(tag TrackTag) bool {
	_, ok := t.startedTracks[tag]
	return ok
}

// StartedTracks returns the team's per-track state.
func (t *Team) StartedTracks() map[TrackTag]TrackStatus {
	out := make(map[TrackTag]TrackStatus, len(t.startedTracks))
	for tag, s := range t.startedTracks {
		out[tag] = s
	}
	return out
}

// ReservedSlot returns the held slot id, empty if none.
func (t *Team) ReservedSlot() SlotID { return t.reservedSlot }

// Reserve records the team's claim on a slot. A team holds at most one
// reservation at a time.
func (t *Team) Reserve(slotID SlotID) error {
	if t.reservedSlot != "" {
		return &ErrTeamAlreadyReservedSlot{TeamID: t.id, SlotID: t.reservedSlot}
	}
	t.reservedSlot = slotID
	return nil
}

// CancelReservation clears the held reservation and returns the slot id
// so the caller can release the places on the slot aggregate.
func (t *Team) CancelReservation() (SlotID, error) {
	if t.reservedSlot == "" {
		return "", &ErrTeamNotReservedSlot{TeamID: t.id}
	}
	slotID := t.reservedSlot
	t.reservedSlot = ""
	return slotID, nil
}
