package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"legends-bot/internal/domain"
)

type slotFixture struct {
	users   *fakeUserRepo
	teams   *fakeTeamRepo
	slots   *fakeSlotRepo
	service *SlotService
}

func newSlotFixture(t *testing.T, memberIDs ...domain.UserID) (*slotFixture, *domain.Team) {
	t.Helper()

	users := newFakeUserRepo()
	teams := newFakeTeamRepo()
	slots := newFakeSlotRepo()
	uow := &fakeUnitOfWork{teams: teams, users: users, slots: slots}

	for _, id := range memberIDs {
		registeredUser(t, users, id, "Участник")
	}
	team := domain.NewTeam(teamName(t, "Ракеты"), memberIDs[0])
	for _, id := range memberIDs[1:] {
		require.NoError(t, team.AddMember(id))
	}
	teams.teams[team.ID()] = team

	return &slotFixture{
		users:   users,
		teams:   teams,
		slots:   slots,
		service: NewSlotService(slots, teams, uow, zap.NewNop()),
	}, team
}

func mustSite(t *testing.T, name string) domain.Site {
	t.Helper()
	site, err := domain.NewSite(name)
	require.NoError(t, err)
	return site
}

func TestSlotService_ReservePicksTightestSlot(t *testing.T) {
	fx, team := newSlotFixture(t, 1, 2, 3, 4)
	ctx := context.Background()
	start := time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC)

	wide := domain.NewSlot(start, mustSite(t, "Главный корпус"), 10)
	tight := domain.NewSlot(start, mustSite(t, "УЛК"), 10)
	require.NoError(t, tight.Reserve("OTHER1", 6))
	fx.slots.slots[wide.ID()] = wide
	fx.slots.slots[tight.ID()] = tight

	dto, err := fx.service.Reserve(ctx, 1, start, 4)
	require.NoError(t, err)

	assert.Equal(t, tight.ID(), dto.ID)
	assert.Equal(t, domain.Places(0), dto.AvailablePlaces)
	assert.Equal(t, tight.ID(), team.ReservedSlot())
}

func TestSlotService_ReserveRejectsOverCapacity(t *testing.T) {
	fx, _ := newSlotFixture(t, 1, 2, 3, 4, 5)
	ctx := context.Background()
	start := time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC)

	slot := domain.NewSlot(start, mustSite(t, "УЛК"), 10)
	require.NoError(t, slot.Reserve("OTHER1", 6))
	fx.slots.slots[slot.ID()] = slot

	_, err := fx.service.Reserve(ctx, 1, start, 5)
	var noSlots *ErrNoAvailableSlots
	require.ErrorAs(t, err, &noSlots)

	dto, err := fx.service.Reserve(ctx, 1, start, 4)
	require.NoError(t, err)
	assert.Equal(t, slot.ID(), dto.ID)
}

func TestSlotService_ReserveRejectsMorePlacesThanMembers(t *testing.T) {
	fx, _ := newSlotFixture(t, 1, 2)
	ctx := context.Background()
	start := time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC)

	slot := domain.NewSlot(start, mustSite(t, "УЛК"), 10)
	fx.slots.slots[slot.ID()] = slot

	_, err := fx.service.Reserve(ctx, 1, start, 3)
	var exceeds *ErrPlacesExceedTeamSize
	require.ErrorAs(t, err, &exceeds)
	assert.Equal(t, 2, exceeds.TeamSize)
}

func TestSlotService_ReserveRequiresTeam(t *testing.T) {
	fx, _ := newSlotFixture(t, 1)

	_, err := fx.service.Reserve(context.Background(), 99, time.Now(), 1)
	var notInTeam *ErrUserNotInTeam
	require.ErrorAs(t, err, &notInTeam)
}

func TestSlotService_SecondReservationRejected(t *testing.T) {
	fx, _ := newSlotFixture(t, 1, 2)
	ctx := context.Background()
	start := time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC)

	fx.slots.Save(ctx, domain.NewSlot(start, mustSite(t, "УЛК"), 10))

	_, err := fx.service.Reserve(ctx, 1, start, 2)
	require.NoError(t, err)

	_, err = fx.service.Reserve(ctx, 2, start, 2)
	var already *domain.ErrTeamAlreadyReservedSlot
	require.ErrorAs(t, err, &already)
}

func TestSlotService_CancelFreesPlaces(t *testing.T) {
	fx, team := newSlotFixture(t, 1, 2)
	ctx := context.Background()
	start := time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC)

	slot := domain.NewSlot(start, mustSite(t, "УЛК"), 10)
	fx.slots.slots[slot.ID()] = slot

	_, err := fx.service.Reserve(ctx, 1, start, 2)
	require.NoError(t, err)
	require.NoError(t, fx.service.Cancel(ctx, 1))

	assert.Equal(t, domain.SlotID(""), team.ReservedSlot())
	assert.Equal(t, domain.Places(10), slot.AvailablePlaces())

	err = fx.service.Cancel(ctx, 1)
	var notReserved *domain.ErrTeamNotReservedSlot
	require.ErrorAs(t, err, &notReserved)
}

func TestSlotService_GetReservedSlot(t *testing.T) {
	fx, _ := newSlotFixture(t, 1, 2)
	ctx := context.Background()
	start := time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC)

	fx.slots.Save(ctx, domain.NewSlot(start, mustSite(t, "УЛК"), 10))

	dto, err := fx.service.GetReservedSlot(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, dto)

	_, err = fx.service.Reserve(ctx, 1, start, 2)
	require.NoError(t, err)

	dto, err = fx.service.GetReservedSlot(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, dto)
	assert.Equal(t, start, dto.Start)
}

func TestSlotService_GetAvailableStarts(t *testing.T) {
	fx, _ := newSlotFixture(t, 1)
	ctx := context.Background()
	noon := time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 10, 3, 18, 0, 0, 0, time.UTC)

	full := domain.NewSlot(noon, mustSite(t, "УЛК"), 2)
	require.NoError(t, full.Reserve("OTHER1", 2))
	fx.slots.slots[full.ID()] = full
	fx.slots.Save(ctx, domain.NewSlot(evening, mustSite(t, "УЛК"), 10))
	fx.slots.Save(ctx, domain.NewSlot(noon, mustSite(t, "Главный корпус"), 10))

	starts, err := fx.service.GetAvailableStarts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{noon, evening}, starts)
}
