package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"legends-bot/internal/domain"
)

// In-memory repository fakes. Each fake keeps aggregates in a map so
// tests can assert on what the service actually persisted.

type fakeUserRepo struct {
	users map[domain.UserID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[domain.UserID]*domain.User{}}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d not found", id)
	}
	return user, nil
}

func (r *fakeUserRepo) IsRegistered(_ context.Context, id domain.UserID) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) Save(_ context.Context, user *domain.User) error {
	r.users[user.ID()] = user
	return nil
}

type fakeTeamRepo struct {
	teams map[domain.TeamID]*domain.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: map[domain.TeamID]*domain.Team{}}
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id domain.TeamID) (*domain.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, fmt.Errorf("team %s not found", id)
	}
	return team, nil
}

func (r *fakeTeamRepo) GetByMember(_ context.Context, memberID domain.UserID) (*domain.Team, error) {
	for _, team := range r.teams {
		if team.IsMember(memberID) {
			return team, nil
		}
	}
	return nil, nil
}

func (r *fakeTeamRepo) ListAll(_ context.Context) ([]*domain.Team, error) {
	out := make([]*domain.Team, 0, len(r.teams))
	for _, team := range r.teams {
		out = append(out, team)
	}
	return out, nil
}

func (r *fakeTeamRepo) Exists(_ context.Context, id domain.TeamID) (bool, error) {
	_, ok := r.teams[id]
	return ok, nil
}

func (r *fakeTeamRepo) Save(_ context.Context, team *domain.Team) error {
	r.teams[team.ID()] = team
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id domain.TeamID) error {
	delete(r.teams, id)
	return nil
}

type fakeSlotRepo struct {
	slots map[domain.SlotID]*domain.Slot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: map[domain.SlotID]*domain.Slot{}}
}

func (r *fakeSlotRepo) GetAll(_ context.Context) ([]*domain.Slot, error) {
	out := make([]*domain.Slot, 0, len(r.slots))
	for _, slot := range r.slots {
		out = append(out, slot)
	}
	return out, nil
}

func (r *fakeSlotRepo) GetByStart(_ context.Context, start time.Time) ([]*domain.Slot, error) {
	var out []*domain.Slot
	for _, slot := range r.slots {
		if slot.Start().Equal(start) {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) GetByID(_ context.Context, id domain.SlotID) (*domain.Slot, error) {
	slot, ok := r.slots[id]
	if !ok {
		return nil, fmt.Errorf("slot %s not found", id)
	}
	return slot, nil
}

func (r *fakeSlotRepo) Save(_ context.Context, slot *domain.Slot) error {
	r.slots[slot.ID()] = slot
	return nil
}

type fakeTaskProvider struct {
	tasks map[domain.TaskID]*domain.Task
}

func (p *fakeTaskProvider) GetByID(_ context.Context, id domain.TaskID) (*domain.Task, error) {
	task, ok := p.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %d not found", id)
	}
	return task, nil
}

func (p *fakeTaskProvider) GetByType(_ context.Context, taskType domain.TaskType) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, task := range p.tasks {
		if task.Type() == taskType {
			out = append(out, task)
		}
	}
	return out, nil
}

type fakeTrackProvider struct {
	tracks map[domain.TrackTag]*domain.Track
}

func (p *fakeTrackProvider) GetByTag(_ context.Context, tag domain.TrackTag) (*domain.Track, error) {
	track, ok := p.tracks[tag]
	if !ok {
		return nil, fmt.Errorf("track %s not found", tag)
	}
	return track, nil
}

type fakeMediaRepo struct {
	media map[domain.MediaID]domain.Media
}

func (r *fakeMediaRepo) GetByID(_ context.Context, id domain.MediaID) (*domain.Media, error) {
	m, ok := r.media[id]
	if !ok {
		return nil, fmt.Errorf("media %s not found", id)
	}
	return &m, nil
}

func (r *fakeMediaRepo) Save(_ context.Context, media domain.Media) error {
	if r.media == nil {
		r.media = map[domain.MediaID]domain.Media{}
	}
	r.media[media.ID()] = media
	return nil
}

// fakeUnitOfWork applies both writes to the in-memory repos, mirroring
// what the Postgres transaction does.
type fakeUnitOfWork struct {
	teams *fakeTeamRepo
	users *fakeUserRepo
	slots *fakeSlotRepo
}

func (u *fakeUnitOfWork) SaveTeamAndSlot(ctx context.Context, team *domain.Team, slot *domain.Slot) error {
	if err := u.teams.Save(ctx, team); err != nil {
		return err
	}
	return u.slots.Save(ctx, slot)
}

func (u *fakeUnitOfWork) SaveTeamAndUser(ctx context.Context, team *domain.Team, deleteTeamID domain.TeamID, user *domain.User) error {
	if team != nil {
		if err := u.teams.Save(ctx, team); err != nil {
			return err
		}
	} else if deleteTeamID != "" {
		if err := u.teams.Delete(ctx, deleteTeamID); err != nil {
			return err
		}
	}
	return u.users.Save(ctx, user)
}

// Shared builders.

func registeredUser(t *testing.T, repo *fakeUserRepo, id domain.UserID, name string) *domain.User {
	t.Helper()
	fullName, err := domain.NewFullName(name)
	require.NoError(t, err)
	group, err := domain.NewGroupName("ИУ7-21")
	require.NoError(t, err)
	user := domain.NewUser(id, domain.Username("u"), fullName, group)
	repo.users[id] = user
	return user
}

func teamName(t *testing.T, name string) domain.TeamName {
	t.Helper()
	n, err := domain.NewTeamName(name)
	require.NoError(t, err)
	return n
}
