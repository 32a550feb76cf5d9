package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTeam(t *testing.T, memberIDs ...UserID) *Team {
	t.Helper()
	require.NotEmpty(t, memberIDs)
	team := NewTeam("Легенды", memberIDs[0])
	for _, id := range memberIDs[1:] {
		require.NoError(t, team.AddMember(id))
	}
	return team
}

func TestNewTeamCreatorIsCaptain(t *testing.T) {
	team := NewTeam("Легенды", 42)
	assert.Equal(t, UserID(42), team.CaptainID())
	assert.Equal(t, []UserID{42}, team.MemberIDs())
	assert.True(t, team.IsSolo())
	assert.Len(t, string(team.ID()), TeamIDLength)
}

func TestAddMemberFullTeam(t *testing.T) {
	team := newTestTeam(t, 1, 2, 3, 4, 5, 6, 7, 8)

	err := team.AddMember(9)
	var full *ErrTeamIsFull
	require.ErrorAs(t, err, &full)
	assert.Equal(t, MaxTeamSize, full.Size)
	assert.Equal(t, MaxTeamSize, team.Size())
}

func TestAddMemberTwice(t *testing.T) {
	team := newTestTeam(t, 1, 2)

	err := team.AddMember(2)
	var already *ErrUserAlreadyInTeam
	require.ErrorAs(t, err, &already)
	assert.Equal(t, UserID(2), already.UserID)
}

func TestRemoveSoleCaptainDissolvesTeam(t *testing.T) {
	team := NewTeam("Легенды", 1)

	_, alive, err := team.RemoveMember(1)
	require.NoError(t, err)
	assert.False(t, alive)
}

func TestRemoveCaptainSuccession(t *testing.T) {
	team := newTestTeam(t, 1, 2, 3)

	updated, alive, err := team.RemoveMember(1)
	require.NoError(t, err)
	require.True(t, alive)
	assert.Equal(t, UserID(2), updated.CaptainID(), "captaincy passes in join order")
	assert.Equal(t, []UserID{2, 3}, updated.MemberIDs())
}

func TestRemoveRegularMemberKeepsCaptain(t *testing.T) {
	team := newTestTeam(t, 1, 2, 3)

	updated, alive, err := team.RemoveMember(3)
	require.NoError(t, err)
	require.True(t, alive)
	assert.Equal(t, UserID(1), updated.CaptainID())
	assert.Equal(t, []UserID{1, 2}, updated.MemberIDs())
}

func TestRemoveNonMember(t *testing.T) {
	team := newTestTeam(t, 1, 2)

	_, _, err := team.RemoveMember(99)
	var notMember *ErrUserIsNotMemberOfTeam
	assert.ErrorAs(t, err, &notMember)
}

func TestTeamSizeInvariantUnderChurn(t *testing.T) {
	team := newTestTeam(t, 1)
	for i := UserID(2); i <= 20; i++ {
		_ = team.AddMember(i)
		assert.LessOrEqual(t, team.Size(), MaxTeamSize)
		assert.True(t, team.IsMember(team.CaptainID()))
	}
}

func TestStartTrackTwice(t *testing.T) {
	team := newTestTeam(t, 1, 2)

	require.NoError(t, team.StartTrack(TrackVolya))
	err := team.StartTrack(TrackVolya)
	var cantStart *ErrTrackCanNotBeStarted
	require.ErrorAs(t, err, &cantStart)
	assert.Equal(t, TrackVolya, cantStart.Tag)
}

func TestFinishTrackLifecycle(t *testing.T) {
	team := newTestTeam(t, 1, 2)

	var cantFinish *ErrTrackCanNotBeFinished
	assert.ErrorAs(t, team.FinishTrack(TrackTrud), &cantFinish)

	require.NoError(t, team.StartTrack(TrackTrud))
	status, err := team.TrackStatus(TrackTrud)
	require.NoError(t, err)
	assert.Equal(t, TrackStarted, status.State)

	require.NoError(t, team.FinishTrack(TrackTrud))
	status, err = team.TrackStatus(TrackTrud)
	require.NoError(t, err)
	assert.Equal(t, TrackFinished, status.State)
	assert.False(t, status.FinishedAt.Before(status.StartedAt))

	// finished tracks can be neither restarted nor refinished
	assert.ErrorAs(t, team.StartTrack(TrackTrud), new(*ErrTrackCanNotBeStarted))
	assert.ErrorAs(t, team.FinishTrack(TrackTrud), &cantFinish)
}

func TestFinishPreservesStartTime(t *testing.T) {
	team := newTestTeam(t, 1)
	require.NoError(t, team.StartTrack(SoloTrack))
	before, err := team.TrackStatus(SoloTrack)
	require.NoError(t, err)

	require.NoError(t, team.FinishTrack(SoloTrack))
	after, err := team.TrackStatus(SoloTrack)
	require.NoError(t, err)
	assert.Equal(t, before.StartedAt, after.StartedAt)
}

func TestSaveAnswerReplacesPrevious(t *testing.T) {
	team := newTestTeam(t, 1)
	team.SaveAnswer(RestoreAnswer("a1", 7, "wrong", 0, time.Now()))
	team.SaveAnswer(RestoreAnswer("a2", 7, "right", 10, time.Now()))

	answers := team.Answers()
	require.Len(t, answers, 1)
	assert.Equal(t, Points(10), answers[0].Points())
}

func TestAvailableTracks(t *testing.T) {
	solo := newTestTeam(t, 1)
	assert.Equal(t, []TrackTag{SoloTrack}, solo.AvailableTracks())

	full := newTestTeam(t, 1, 2)
	assert.Equal(t, AllTracks(), full.AvailableTracks())
}

func TestTeamReservation(t *testing.T) {
	team := newTestTeam(t, 1, 2)

	require.NoError(t, team.Reserve("abcd"))
	var alreadyReserved *ErrTeamAlreadyReservedSlot
	assert.ErrorAs(t, team.Reserve("efgh"), &alreadyReserved)

	slotID, err := team.CancelReservation()
	require.NoError(t, err)
	assert.Equal(t, SlotID("abcd"), slotID)

	var notReserved *ErrTeamNotReservedSlot
	_, err = team.CancelReservation()
	assert.ErrorAs(t, err, &notReserved)
}

func TestRestoreTeamInvariants(t *testing.T) {
	_, err := RestoreTeam("abc123", "Легенды", 5, []UserID{1, 2}, nil, nil, "")
	assert.Error(t, err, "captain must be a member")

	_, err = RestoreTeam("abc123", "Легенды", 1, []UserID{1, 2, 3, 4, 5, 6, 7, 8, 9}, nil, nil, "")
	assert.Error(t, err, "size above the limit")
}

func TestParseTeamID(t *testing.T) {
	id, err := ParseTeamID("a1B2c3")
	require.NoError(t, err)
	assert.Equal(t, TeamID("a1B2c3"), id)

	_, err = ParseTeamID("short")
	assert.Error(t, err)

	_, err = ParseTeamID("a1B2c!")
	assert.Error(t, err)
}
