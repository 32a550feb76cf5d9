package service

import (
	"context"

	"go.uber.org/zap"

	"legends-bot/internal/domain"
	"legends-bot/internal/repository"
)

// MediaService registers uploaded Telegram files under internal ids and
// resolves those ids when a task or character needs its asset re-sent.
type MediaService struct {
	media repository.MediaRepository
	log   *zap.Logger
}

func NewMediaService(media repository.MediaRepository, log *zap.Logger) *MediaService {
	return &MediaService{media: media, log: log}
}

// Register stores or overwrites the binding between an internal id and
// an uploaded Telegram file.
func (s *MediaService) Register(ctx context.Context, id string, fileID string, mediaType domain.MediaType) (MediaDTO, error) {
	mediaID, err := domain.NewMediaID(id)
	if err != nil {
		return MediaDTO{}, err
	}
	media := domain.NewMedia(mediaID, domain.FileID(fileID), mediaType)
	if err := s.media.Save(ctx, media); err != nil {
		return MediaDTO{}, err
	}
	s.log.Info("media registered",
		zap.String("media_id", string(mediaID)),
		zap.String("type", string(mediaType)))
	return newMediaDTO(&media), nil
}

// Get resolves an internal media id.
func (s *MediaService) Get(ctx context.Context, id domain.MediaID) (MediaDTO, error) {
	media, err := s.media.GetByID(ctx, id)
	if err != nil {
		return MediaDTO{}, err
	}
	return newMediaDTO(media), nil
}
