package service

import (
	"context"

	"go.uber.org/zap"

	"legends-bot/internal/domain"
	"legends-bot/internal/repository"
)

// RegistrationService covers the participant profile: registration,
// profile edits and participation mode switches.
type RegistrationService struct {
	users  repository.UserRepository
	teams  repository.TeamRepository
	admins repository.AdminProvider
	log    *zap.Logger
}

func NewRegistrationService(
	users repository.UserRepository,
	teams repository.TeamRepository,
	admins repository.AdminProvider,
	log *zap.Logger,
) *RegistrationService {
	return &RegistrationService{users: users, teams: teams, admins: admins, log: log}
}

// Register creates the participant's profile. Value objects must already
// be validated by the caller.
func (s *RegistrationService) Register(
	ctx context.Context,
	id domain.UserID,
	username domain.Username,
	fullName domain.FullName,
	group domain.GroupName,
) (UserDTO, error) {
	user := domain.NewUser(id, username, fullName, group)
	if err := s.users.Save(ctx, user); err != nil {
		return UserDTO{}, err
	}

	s.log.Info("user registered",
		zap.Int64("user_id", int64(id)),
		zap.String("group", string(group)))
	return newUserDTO(user), nil
}

// IsRegistered reports whether the user completed registration.
func (s *RegistrationService) IsRegistered(ctx context.Context, id domain.UserID) (bool, error) {
	return s.users.IsRegistered(ctx, id)
}

// IsAdmin reports whether the user has organizer privileges.
func (s *RegistrationService) IsAdmin(ctx context.Context, id domain.UserID) (bool, error) {
	return s.admins.IsAdmin(ctx, id)
}

// GetUser returns the participant's profile data.
func (s *RegistrationService) GetUser(ctx context.Context, id domain.UserID) (UserDTO, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return UserDTO{}, err
	}
	return newUserDTO(user), nil
}

// GetProfile returns the profile enriched with the team name, if any.
func (s *RegistrationService) GetProfile(ctx context.Context, id domain.UserID) (ProfileDTO, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return ProfileDTO{}, err
	}

	profile := ProfileDTO{UserDTO: newUserDTO(user)}
	team, err := s.teams.GetByMember(ctx, id)
	if err != nil {
		return ProfileDTO{}, err
	}
	if team != nil {
		name := team.Name()
		profile.TeamName = &name
	}
	return profile, nil
}

// ChangeFullName updates the participant's name.
func (s *RegistrationService) ChangeFullName(ctx context.Context, id domain.UserID, fullName domain.FullName) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.ChangeFullName(fullName)
	return s.users.Save(ctx, user)
}

// ChangeGroupName updates the participant's study group.
func (s *RegistrationService) ChangeGroupName(ctx context.Context, id domain.UserID, group domain.GroupName) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.ChangeGroupName(group)
	return s.users.Save(ctx, user)
}

// SwitchToSolo moves the user to solo mode.
func (s *RegistrationService) SwitchToSolo(ctx context.Context, id domain.UserID) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.SwitchToSolo(); err != nil {
		return err
	}
	return s.users.Save(ctx, user)
}

// SwitchToLookingForTeam moves the user to looking-for-team mode.
func (s *RegistrationService) SwitchToLookingForTeam(ctx context.Context, id domain.UserID) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.SwitchToLookingForTeam(); err != nil {
		return err
	}
	return s.users.Save(ctx, user)
}
