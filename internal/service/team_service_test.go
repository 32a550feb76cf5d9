package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"legends-bot/internal/domain"
)

type teamFixture struct {
	users   *fakeUserRepo
	teams   *fakeTeamRepo
	service *TeamService
}

func newTeamFixture() *teamFixture {
	users := newFakeUserRepo()
	teams := newFakeTeamRepo()
	uow := &fakeUnitOfWork{teams: teams, users: users, slots: newFakeSlotRepo()}
	return &teamFixture{
		users:   users,
		teams:   teams,
		service: NewTeamService(teams, users, uow, zap.NewNop()),
	}
}

func TestTeamService_CreateMovesCreatorInTeam(t *testing.T) {
	fx := newTeamFixture()
	ctx := context.Background()
	registeredUser(t, fx.users, 1, "Анна Иванова")

	dto, err := fx.service.Create(ctx, 1, teamName(t, "Ракеты"))
	require.NoError(t, err)

	assert.Equal(t, 1, dto.Size)
	assert.True(t, dto.Solo)

	saved, err := fx.teams.GetByID(ctx, dto.ID)
	require.NoError(t, err)
	assert.True(t, saved.IsCaptain(1))
	assert.Equal(t, domain.ModeInTeam, fx.users.users[1].Mode())
}

func TestTeamService_CreateRejectsSecondTeam(t *testing.T) {
	fx := newTeamFixture()
	ctx := context.Background()
	registeredUser(t, fx.users, 1, "Анна Иванова")

	_, err := fx.service.Create(ctx, 1, teamName(t, "Ракеты"))
	require.NoError(t, err)

	_, err = fx.service.Create(ctx, 1, teamName(t, "Кометы"))
	var already *domain.ErrUserAlreadyInTeam
	require.ErrorAs(t, err, &already)
	assert.Equal(t, domain.UserID(1), already.UserID)
}

func TestTeamService_JoinByInviteCode(t *testing.T) {
	fx := newTeamFixture()
	ctx := context.Background()
	registeredUser(t, fx.users, 1, "Анна Иванова")
	registeredUser(t, fx.users, 2, "Борис Петров")

	created, err := fx.service.Create(ctx, 1, teamName(t, "Ракеты"))
	require.NoError(t, err)

	joined, err := fx.service.Join(ctx, 2, created.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, joined.Size)
	assert.False(t, joined.Solo)
	assert.Equal(t, domain.ModeInTeam, fx.users.users[2].Mode())
}

func TestTeamService_ExitHandsCaptaincyOver(t *testing.T) {
	fx := newTeamFixture()
	ctx := context.Background()
	registeredUser(t, fx.users, 1, "Анна Иванова")
	registeredUser(t, fx.users, 2, "Борис Петров")

	created, err := fx.service.Create(ctx, 1, teamName(t, "Ракеты"))
	require.NoError(t, err)
	_, err = fx.service.Join(ctx, 2, created.ID)
	require.NoError(t, err)

	require.NoError(t, fx.service.Exit(ctx, 1))

	team, err := fx.teams.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, team.IsCaptain(2))
	assert.Equal(t, domain.ModeLookingForTeam, fx.users.users[1].Mode())
}

func TestTeamService_LastMemberExitDeletesTeam(t *testing.T) {
	fx := newTeamFixture()
	ctx := context.Background()
	registeredUser(t, fx.users, 1, "Анна Иванова")

	created, err := fx.service.Create(ctx, 1, teamName(t, "Ракеты"))
	require.NoError(t, err)

	require.NoError(t, fx.service.Exit(ctx, 1))

	exists, err := fx.teams.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, domain.ModeLookingForTeam, fx.users.users[1].Mode())
}

func TestTeamService_ExitWithoutTeam(t *testing.T) {
	fx := newTeamFixture()
	registeredUser(t, fx.users, 1, "Анна Иванова")

	err := fx.service.Exit(context.Background(), 1)
	var notMember *domain.ErrUserIsNotMemberOfTeam
	require.ErrorAs(t, err, &notMember)
}

func TestTeamService_RemoveMemberResetsMode(t *testing.T) {
	fx := newTeamFixture()
	ctx := context.Background()
	registeredUser(t, fx.users, 1, "Анна Иванова")
	registeredUser(t, fx.users, 2, "Борис Петров")

	created, err := fx.service.Create(ctx, 1, teamName(t, "Ракеты"))
	require.NoError(t, err)
	_, err = fx.service.Join(ctx, 2, created.ID)
	require.NoError(t, err)

	require.NoError(t, fx.service.RemoveMember(ctx, 1, 2))

	team, err := fx.teams.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, team.IsMember(2))
	assert.Equal(t, domain.ModeLookingForTeam, fx.users.users[2].Mode())
}

func TestTeamService_RemoveMemberRequiresCaptain(t *testing.T) {
	fx := newTeamFixture()
	ctx := context.Background()
	registeredUser(t, fx.users, 1, "Анна Иванова")
	registeredUser(t, fx.users, 2, "Борис Петров")
	registeredUser(t, fx.users, 3, "Вера Смирнова")

	created, err := fx.service.Create(ctx, 1, teamName(t, "Ракеты"))
	require.NoError(t, err)
	_, err = fx.service.Join(ctx, 2, created.ID)
	require.NoError(t, err)
	_, err = fx.service.Join(ctx, 3, created.ID)
	require.NoError(t, err)

	// A regular member sending the captain's callback data by hand must
	// not be able to kick anyone.
	err = fx.service.RemoveMember(ctx, 2, 3)
	var notCaptain *ErrNotTeamCaptain
	require.ErrorAs(t, err, &notCaptain)
	assert.Equal(t, domain.UserID(2), notCaptain.UserID)

	team, err := fx.teams.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, team.IsMember(3))
	assert.Equal(t, domain.ModeInTeam, fx.users.users[3].Mode())
}

func TestTeamService_GetUserTeamNilWhenNone(t *testing.T) {
	fx := newTeamFixture()
	registeredUser(t, fx.users, 1, "Анна Иванова")

	dto, err := fx.service.GetUserTeam(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, dto)
}

func TestTeamService_GetTeamWithMembers(t *testing.T) {
	fx := newTeamFixture()
	ctx := context.Background()
	registeredUser(t, fx.users, 1, "Анна Иванова")
	registeredUser(t, fx.users, 2, "Борис Петров")

	created, err := fx.service.Create(ctx, 1, teamName(t, "Ракеты"))
	require.NoError(t, err)
	_, err = fx.service.Join(ctx, 2, created.ID)
	require.NoError(t, err)

	dto, err := fx.service.GetTeamWithMembers(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.UserID(1), dto.CaptainID)
	require.Len(t, dto.Members, 2)
	assert.Equal(t, domain.UserID(1), dto.Members[0].ID)
	assert.Equal(t, domain.UserID(2), dto.Members[1].ID)
}

func TestTeamService_IsCaptain(t *testing.T) {
	fx := newTeamFixture()
	ctx := context.Background()
	registeredUser(t, fx.users, 1, "Анна Иванова")
	registeredUser(t, fx.users, 2, "Борис Петров")

	created, err := fx.service.Create(ctx, 1, teamName(t, "Ракеты"))
	require.NoError(t, err)
	_, err = fx.service.Join(ctx, 2, created.ID)
	require.NoError(t, err)

	captain, err := fx.service.IsCaptain(ctx, 1)
	require.NoError(t, err)
	assert.True(t, captain)

	member, err := fx.service.IsCaptain(ctx, 2)
	require.NoError(t, err)
	assert.False(t, member)

	outsider, err := fx.service.IsCaptain(ctx, 99)
	require.NoError(t, err)
	assert.False(t, outsider)
}
