package service

import (
	"context"

	"go.uber.org/zap"

	"legends-bot/internal/domain"
	"legends-bot/internal/repository"
)

// FeedbackService records free-form messages from participants to the
// organizers.
type FeedbackService struct {
	feedback repository.FeedbackRepository
	log      *zap.Logger
}

func NewFeedbackService(feedback repository.FeedbackRepository, log *zap.Logger) *FeedbackService {
	return &FeedbackService{feedback: feedback, log: log}
}

// Submit validates and stores one feedback message.
func (s *FeedbackService) Submit(ctx context.Context, authorID domain.UserID, text string) error {
	feedbackText, err := domain.NewFeedbackText(text)
	if err != nil {
		return err
	}
	if err := s.feedback.Save(ctx, domain.NewFeedback(authorID, feedbackText)); err != nil {
		return err
	}
	s.log.Info("feedback recorded", zap.Int64("author_id", int64(authorID)))
	return nil
}
