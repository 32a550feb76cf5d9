package domain

import "time"

// FeedbackText is a non-empty free-form message from a participant.
type FeedbackText string

// NewFeedbackText validates that the message is not empty.
func NewFeedbackText(s string) (FeedbackText, error) {
	if s == "" {
		return "", invalidValue("invalid feedback: expected not empty string")
	}
	return FeedbackText(s), nil
}

// Feedback is a participant's free-form message to the organizers.
type Feedback struct {
	authorID  UserID
	text      FeedbackText
	createdAt time.Time
}

// NewFeedback records a feedback message with the current timestamp.
func NewFeedback(authorID UserID, text FeedbackText) Feedback {
	return Feedback{authorID: authorID, text: text, createdAt: time.Now().UTC()}
}

func (f Feedback) AuthorID() UserID { return f.authorID }
func (f Feedback) Text() FeedbackText { return f.text }
func (f Feedback) CreatedAt() time.Time { return f.createdAt }
