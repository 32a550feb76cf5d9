package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"legends-bot/internal/domain"
)

type fakeAdminProvider struct {
	admins map[domain.UserID]bool
}

func (p *fakeAdminProvider) IsAdmin(_ context.Context, id domain.UserID) (bool, error) {
	return p.admins[id], nil
}

type registrationFixture struct {
	users   *fakeUserRepo
	teams   *fakeTeamRepo
	service *RegistrationService
}

func newRegistrationFixture() *registrationFixture {
	users := newFakeUserRepo()
	teams := newFakeTeamRepo()
	admins := &fakeAdminProvider{admins: map[domain.UserID]bool{42: true}}
	return &registrationFixture{
		users:   users,
		teams:   teams,
		service: NewRegistrationService(users, teams, admins, zap.NewNop()),
	}
}

func TestRegistrationService_Register(t *testing.T) {
	fx := newRegistrationFixture()
	ctx := context.Background()

	fullName, err := domain.NewFullName("Анна Иванова")
	require.NoError(t, err)
	group, err := domain.NewGroupName("ИУ7-21")
	require.NoError(t, err)

	dto, err := fx.service.Register(ctx, 1, "anna", fullName, group)
	require.NoError(t, err)

	assert.Equal(t, domain.ModeLookingForTeam, dto.Mode)

	registered, err := fx.service.IsRegistered(ctx, 1)
	require.NoError(t, err)
	assert.True(t, registered)

	registered, err = fx.service.IsRegistered(ctx, 2)
	require.NoError(t, err)
	assert.False(t, registered)
}

func TestRegistrationService_RegisterWithoutUsername(t *testing.T) {
	fx := newRegistrationFixture()
	ctx := context.Background()

	fullName, err := domain.NewFullName("Пётр Сидоров")
	require.NoError(t, err)
	group, err := domain.NewGroupName("ИУ7-21")
	require.NoError(t, err)

	// Telegram accounts are not required to have a username; the empty
	// string means "not set" all the way down to the users row.
	dto, err := fx.service.Register(ctx, 3, "", fullName, group)
	require.NoError(t, err)
	assert.Equal(t, domain.Username(""), dto.Username)

	user, err := fx.service.GetUser(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.Username(""), user.Username)
}

func TestRegistrationService_IsAdmin(t *testing.T) {
	fx := newRegistrationFixture()
	ctx := context.Background()

	admin, err := fx.service.IsAdmin(ctx, 42)
	require.NoError(t, err)
	assert.True(t, admin)

	admin, err = fx.service.IsAdmin(ctx, 1)
	require.NoError(t, err)
	assert.False(t, admin)
}

func TestRegistrationService_GetProfileIncludesTeamName(t *testing.T) {
	fx := newRegistrationFixture()
	ctx := context.Background()
	registeredUser(t, fx.users, 1, "Анна Иванова")

	profile, err := fx.service.GetProfile(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, profile.TeamName)

	name := teamName(t, "Ракеты")
	team := domain.NewTeam(name, 1)
	fx.teams.teams[team.ID()] = team

	profile, err = fx.service.GetProfile(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, profile.TeamName)
	assert.Equal(t, name, *profile.TeamName)
}

func TestRegistrationService_ProfileEdits(t *testing.T) {
	fx := newRegistrationFixture()
	ctx := context.Background()
	registeredUser(t, fx.users, 1, "Анна Иванова")

	newName, err := domain.NewFullName("Анна Сидорова")
	require.NoError(t, err)
	require.NoError(t, fx.service.ChangeFullName(ctx, 1, newName))

	newGroup, err := domain.NewGroupName("РК6-11")
	require.NoError(t, err)
	require.NoError(t, fx.service.ChangeGroupName(ctx, 1, newGroup))

	dto, err := fx.service.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, newName, dto.FullName)
	assert.Equal(t, newGroup, dto.Group)
}

func TestRegistrationService_ModeSwitches(t *testing.T) {
	fx := newRegistrationFixture()
	ctx := context.Background()
	registeredUser(t, fx.users, 1, "Анна Иванова")

	require.NoError(t, fx.service.SwitchToSolo(ctx, 1))
	assert.Equal(t, domain.ModeSolo, fx.users.users[1].Mode())

	require.NoError(t, fx.service.SwitchToLookingForTeam(ctx, 1))
	assert.Equal(t, domain.ModeLookingForTeam, fx.users.users[1].Mode())

	// Team members can not switch modes directly.
	fx.users.users[1].JoinedTeam()
	err := fx.service.SwitchToSolo(ctx, 1)
	var cannot *domain.ErrCannotSwitchMode
	require.ErrorAs(t, err, &cannot)
}
