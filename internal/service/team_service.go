package service

import (
	"context"

	"go.uber.org/zap"

	"legends-bot/internal/domain"
	"legends-bot/internal/repository"
)

// TeamService covers team lifecycle: creation, joining, leaving, captain
// actions and team lookups.
type TeamService struct {
	teams repository.TeamRepository
	users repository.UserRepository
	uow   unitOfWork
	log   *zap.Logger
}

// unitOfWork is the cross-aggregate transactional boundary the team and
// slot flows need.
type unitOfWork interface {
	SaveTeamAndSlot(ctx context.Context, team *domain.Team, slot *domain.Slot) error
	SaveTeamAndUser(ctx context.Context, team *domain.Team, deleteTeamID domain.TeamID, user *domain.User) error
}

func NewTeamService(
	teams repository.TeamRepository,
	users repository.UserRepository,
	uow unitOfWork,
	log *zap.Logger,
) *TeamService {
	return &TeamService{teams: teams, users: users, uow: uow, log: log}
}

// Create makes a new team with the creator as captain and moves the
// creator into in-team mode, atomically.
func (s *TeamService) Create(ctx context.Context, captainID domain.UserID, name domain.TeamName) (TeamDTO, error) {
	user, err := s.users.GetByID(ctx, captainID)
	if err != nil {
		return TeamDTO{}, err
	}
	if existing, err := s.teams.GetByMember(ctx, captainID); err != nil {
		return TeamDTO{}, err
	} else if existing != nil {
		return TeamDTO{}, &domain.ErrUserAlreadyInTeam{UserID: captainID, TeamID: existing.ID()}
	}

	team := domain.NewTeam(name, captainID)
	user.JoinedTeam()
	if err := s.uow.SaveTeamAndUser(ctx, team, "", user); err != nil {
		return TeamDTO{}, err
	}

	s.log.Info("team created",
		zap.String("team_id", string(team.ID())),
		zap.Int64("captain_id", int64(captainID)))
	return newTeamDTO(team), nil
}

// Join adds the user to the team behind the invite code.
func (s *TeamService) Join(ctx context.Context, userID domain.UserID, teamID domain.TeamID) (TeamDTO, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return TeamDTO{}, err
	}
	if existing, err := s.teams.GetByMember(ctx, userID); err != nil {
		return TeamDTO{}, err
	} else if existing != nil {
		return TeamDTO{}, &domain.ErrUserAlreadyInTeam{UserID: userID, TeamID: existing.ID()}
	}

	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return TeamDTO{}, err
	}
	if err := team.AddMember(userID); err != nil {
		return TeamDTO{}, err
	}

	user.JoinedTeam()
	if err := s.uow.SaveTeamAndUser(ctx, team, "", user); err != nil {
		return TeamDTO{}, err
	}

	s.log.Info("user joined team",
		zap.String("team_id", string(teamID)),
		zap.Int64("user_id", int64(userID)))
	return newTeamDTO(team), nil
}

// Exit removes the user from their team. The last member leaving deletes
// the team; a departing captain hands over to the next member by join
// order. Membership and participation mode change atomically.
func (s *TeamService) Exit(ctx context.Context, userID domain.UserID) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	team, err := s.teams.GetByMember(ctx, userID)
	if err != nil {
		return err
	}
	if team == nil {
		return &domain.ErrUserIsNotMemberOfTeam{UserID: userID}
	}

	teamID := team.ID()
	updated, alive, err := team.RemoveMember(userID)
	if err != nil {
		return err
	}

	user.LeftTeam()
	if alive {
		err = s.uow.SaveTeamAndUser(ctx, updated, "", user)
	} else {
		err = s.uow.SaveTeamAndUser(ctx, nil, teamID, user)
	}
	if err != nil {
		return err
	}

	s.log.Info("user left team",
		zap.String("team_id", string(teamID)),
		zap.Int64("user_id", int64(userID)),
		zap.Bool("team_deleted", !alive))
	return nil
}

// RemoveMember is the captain's kick action. The removed user's mode is
// reset in the same transaction.
func (s *TeamService) RemoveMember(ctx context.Context, captainID, memberID domain.UserID) error {
	team, err := s.teams.GetByMember(ctx, captainID)
	if err != nil {
		return err
	}
	if team == nil {
		return &domain.ErrUserIsNotMemberOfTeam{UserID: captainID}
	}
	// Kick buttons are only shown to captains, but callback data is
	// forgeable, so the check lives here too.
	if !team.IsCaptain(captainID) {
		return &ErrNotTeamCaptain{UserID: captainID, TeamID: team.ID()}
	}

	member, err := s.users.GetByID(ctx, memberID)
	if err != nil {
		return err
	}

	teamID := team.ID()
	updated, alive, err := team.RemoveMember(memberID)
	if err != nil {
		return err
	}

	member.LeftTeam()
	if alive {
		return s.uow.SaveTeamAndUser(ctx, updated, "", member)
	}
	return s.uow.SaveTeamAndUser(ctx, nil, teamID, member)
}

// GetUserTeam returns the team the user belongs to, nil DTO if none.
func (s *TeamService) GetUserTeam(ctx context.Context, userID domain.UserID) (*TeamDTO, error) {
	team, err := s.teams.GetByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, nil
	}
	dto := newTeamDTO(team)
	return &dto, nil
}

// GetTeamWithMembers resolves every member profile of a team.
func (s *TeamService) GetTeamWithMembers(ctx context.Context, teamID domain.TeamID) (TeamWithMembersDTO, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return TeamWithMembersDTO{}, err
	}

	members := make([]UserDTO, 0, team.Size())
	for _, memberID := range team.MemberIDs() {
		member, err := s.users.GetByID(ctx, memberID)
		if err != nil {
			return TeamWithMembersDTO{}, err
		}
		members = append(members, newUserDTO(member))
	}

	return TeamWithMembersDTO{
		TeamDTO:   newTeamDTO(team),
		CaptainID: team.CaptainID(),
		Members:   members,
	}, nil
}

// ListTeams returns every team, for the organizer overview.
func (s *TeamService) ListTeams(ctx context.Context) ([]TeamDTO, error) {
	teams, err := s.teams.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]TeamDTO, 0, len(teams))
	for _, team := range teams {
		dtos = append(dtos, newTeamDTO(team))
	}
	return dtos, nil
}

// Exists reports whether the invite code belongs to a team.
func (s *TeamService) Exists(ctx context.Context, teamID domain.TeamID) (bool, error) {
	return s.teams.Exists(ctx, teamID)
}

// IsCaptain reports whether the user captains their team. Users without
// a team are not captains.
func (s *TeamService) IsCaptain(ctx context.Context, userID domain.UserID) (bool, error) {
	team, err := s.teams.GetByMember(ctx, userID)
	if err != nil {
		return false, err
	}
	if team == nil {
		return false, nil
	}
	return team.IsCaptain(userID), nil
}
