package domain

import "time"

// AnswerID identifies a single graded submission.
type AnswerID string

// NewAnswerID generates a fresh answer id.
func NewAnswerID() AnswerID { return AnswerID(newShortID(8)) }

// Answer is a team's graded submission for one task. Immutable once
// created; a newer answer for the same task replaces it in the owning
// aggregate.
type Answer struct {
	id        AnswerID
	taskID    TaskID
	text      string
	points    Points
	createdAt time.Time
}

// NewAnswer records a graded submission with the current timestamp.
func NewAnswer(taskID TaskID, text string, points Points) Answer {
	return Answer{
		id:        NewAnswerID(),
		taskID:    taskID,
		text:      text,
		points:    points,
		createdAt: time.Now().UTC(),
	}
}

// RestoreAnswer rebuilds an answer from persisted state.
func RestoreAnswer(id AnswerID, taskID TaskID, text string, points Points, createdAt time.Time) Answer {
	return Answer{id: id, taskID: taskID, text: text, points: points, createdAt: createdAt}
}

func (a Answer) ID() AnswerID { return a.id }
func (a Answer) TaskID() TaskID { return a.taskID }
func (a Answer) Text() string { return a.text }
func (a Answer) Points() Points { return a.points }
func (a Answer) CreatedAt() time.Time { return a.createdAt }

// Solved reports whether the submission was graded as correct.
func (a Answer) Solved() bool { return a.points.IsPositive() }
