package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"legends-bot/internal/domain"
	"legends-bot/internal/repository"
)

// SlotService covers final-event bookings: reserving, cancelling and
// listing open starting times.
type SlotService struct {
	slots repository.SlotRepository
	teams repository.TeamRepository
	uow   unitOfWork
	log   *zap.Logger
}

func NewSlotService(
	slots repository.SlotRepository,
	teams repository.TeamRepository,
	uow unitOfWork,
	log *zap.Logger,
) *SlotService {
	return &SlotService{slots: slots, teams: teams, uow: uow, log: log}
}

// Reserve books places at the requested start time for the user's team.
// Among the slots that can take the request it picks the one with the
// fewest places left, packing slots tightly instead of spreading teams
// thin. Slot and team are saved in one transaction.
func (s *SlotService) Reserve(ctx context.Context, userID domain.UserID, start time.Time, places domain.Places) (SlotDTO, error) {
	team, err := s.teams.GetByMember(ctx, userID)
	if err != nil {
		return SlotDTO{}, err
	}
	if team == nil {
		return SlotDTO{}, &ErrUserNotInTeam{UserID: userID}
	}
	if int(places) > team.Size() {
		return SlotDTO{}, &ErrPlacesExceedTeamSize{Places: places, TeamSize: team.Size()}
	}

	slots, err := s.slots.GetByStart(ctx, start)
	if err != nil {
		return SlotDTO{}, err
	}

	var best *domain.Slot
	for _, slot := range slots {
		if !slot.CanBeReserved(places) {
			continue
		}
		if best == nil || slot.AvailablePlaces() < best.AvailablePlaces() {
			best = slot
		}
	}
	if best == nil {
		return SlotDTO{}, &ErrNoAvailableSlots{Start: start.Format("15:04"), Places: places}
	}

	if err := team.Reserve(best.ID()); err != nil {
		return SlotDTO{}, err
	}
	if err := best.Reserve(team.ID(), places); err != nil {
		return SlotDTO{}, err
	}

	if err := s.uow.SaveTeamAndSlot(ctx, team, best); err != nil {
		return SlotDTO{}, err
	}

	s.log.Info("slot reserved",
		zap.String("team_id", string(team.ID())),
		zap.String("slot_id", string(best.ID())),
		zap.Int("places", int(places)))
	return newSlotDTO(best), nil
}

// Cancel releases the team's reservation on both aggregates in one
// transaction.
func (s *SlotService) Cancel(ctx context.Context, userID domain.UserID) error {
	team, err := s.teams.GetByMember(ctx, userID)
	if err != nil {
		return err
	}
	if team == nil {
		return &ErrUserNotInTeam{UserID: userID}
	}

	slotID, err := team.CancelReservation()
	if err != nil {
		return err
	}
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return err
	}
	if err := slot.CancelReservation(team.ID()); err != nil {
		return err
	}

	if err := s.uow.SaveTeamAndSlot(ctx, team, slot); err != nil {
		return err
	}

	s.log.Info("reservation cancelled",
		zap.String("team_id", string(team.ID())),
		zap.String("slot_id", string(slotID)))
	return nil
}

// GetReservedSlot returns the slot the user's team holds, nil if none.
func (s *SlotService) GetReservedSlot(ctx context.Context, userID domain.UserID) (*SlotDTO, error) {
	team, err := s.teams.GetByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, &ErrUserNotInTeam{UserID: userID}
	}
	if team.ReservedSlot() == "" {
		return nil, nil
	}

	slot, err := s.slots.GetByID(ctx, team.ReservedSlot())
	if err != nil {
		return nil, err
	}
	dto := newSlotDTO(slot)
	return &dto, nil
}

// GetAvailableStarts lists the distinct starting times that still have
// free places, sorted ascending.
func (s *SlotService) GetAvailableStarts(ctx context.Context) ([]time.Time, error) {
	slots, err := s.slots.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[time.Time]bool{}
	var starts []time.Time
	for _, slot := range slots {
		if slot.AvailablePlaces() > 0 && !seen[slot.Start()] {
			seen[slot.Start()] = true
			starts = append(starts, slot.Start())
		}
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	return starts, nil
}

// GetAll returns every slot, for the admin overview.
func (s *SlotService) GetAll(ctx context.Context) ([]SlotDTO, error) {
	slots, err := s.slots.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]SlotDTO, 0, len(slots))
	for _, slot := range slots {
		dtos = append(dtos, newSlotDTO(slot))
	}
	return dtos, nil
}
