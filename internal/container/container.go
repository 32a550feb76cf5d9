package container

import (
	"context"
	"fmt"

	"legends-bot/internal/config"
	"legends-bot/internal/repository"
	"legends-bot/internal/service"
	"legends-bot/pkg/database"
	"legends-bot/pkg/logger"
	"legends-bot/pkg/redis"
)

// Services holds all use-case services
type Services struct {
	Registration *service.RegistrationService
	Teams        *service.TeamService
	Tracks       *service.TrackService
	Slots        *service.SlotService
	Characters   *service.CharacterService
	Feedback     *service.FeedbackService
	Media        *service.MediaService
}

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *logger.Logger
	RedisClient  *redis.Client
	DB           *database.PostgresDB
	Repositories *repository.Repositories
	Services     *Services
}

// New creates a new dependency injection container. Redis is not
// optional here: dialogue state lives in it, a bot without it cannot
// hold a conversation.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisClient, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	tasks := repository.NewPostgresTaskRepository(db)
	repos := &repository.Repositories{
		Users: repository.NewPostgresUserRepository(db),
		Teams: repository.NewPostgresTeamRepository(db),
		Tasks: tasks,
		Tracks: repository.NewCachedTrackProvider(
			repository.NewPostgresTrackRepository(db, tasks), redisClient, log.Logger),
		Slots: repository.NewPostgresSlotRepository(db),
		Media: repository.NewPostgresMediaRepository(db),
		Characters: repository.NewCachedCharacterProvider(
			repository.NewPostgresCharacterRepository(db), redisClient, log.Logger),
		Feedback: repository.NewPostgresFeedbackRepository(db),
		Admins:   repository.NewPostgresAdminRepository(db, cfg.AdminUserIDs),
	}
	uow := repository.NewUnitOfWork(db)

	services := &Services{
		Registration: service.NewRegistrationService(repos.Users, repos.Teams, repos.Admins, log.Logger),
		Teams:        service.NewTeamService(repos.Teams, repos.Users, uow, log.Logger),
		Tracks:       service.NewTrackService(repos.Teams, repos.Tasks, repos.Tracks, repos.Media, log.Logger),
		Slots:        service.NewSlotService(repos.Slots, repos.Teams, uow, log.Logger),
		Characters:   service.NewCharacterService(repos.Characters, log.Logger),
		Feedback:     service.NewFeedbackService(repos.Feedback, log.Logger),
		Media:        service.NewMediaService(repos.Media, log.Logger),
	}

	return &Container{
		Config:       cfg,
		Logger:       log,
		RedisClient:  redisClient,
		DB:           db,
		Repositories: repos,
		Services:     services,
	}, nil
}

// Close releases the container's connections
func (c *Container) Close() {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.WithError(err).Warn("Failed to close Redis client")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetRedisClient returns the Redis client
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

// GetDB returns the database handle
func (c *Container) GetDB() *database.PostgresDB {
	return c.DB
}

// GetRegistrationService returns the registration service
func (c *Container) GetRegistrationService() *service.RegistrationService {
	return c.Services.Registration
}

// GetTeamService returns the team service
func (c *Container) GetTeamService() *service.TeamService {
	return c.Services.Teams
}

// GetTrackService returns the track service
func (c *Container) GetTrackService() *service.TrackService {
	return c.Services.Tracks
}

// GetSlotService returns the slot service
func (c *Container) GetSlotService() *service.SlotService {
	return c.Services.Slots
}

// GetCharacterService returns the character service
func (c *Container) GetCharacterService() *service.CharacterService {
	return c.Services.Characters
}

// GetFeedbackService returns the feedback service
func (c *Container) GetFeedbackService() *service.FeedbackService {
	return c.Services.Feedback
}

// GetMediaService returns the media service
func (c *Container) GetMediaService() *service.MediaService {
	return c.Services.Media
}
