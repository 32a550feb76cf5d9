package domain

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// TaskID identifies a task within the event.
type TaskID int

// TaskType distinguishes how a task is presented and answered.
type TaskType string

const (
	TaskTypeText   TaskType = "text"
	TaskTypeChoice TaskType = "choice"
	TaskTypePhoto  TaskType = "photo"
)

// SerialNumber orders tasks for display inside a track.
type SerialNumber int

// NormalizeAnswer lower-cases the input and strips ASCII punctuation.
// Applied both to submitted answers and, at construction time, to the
// configured correct answers, so grading compares normalized forms only.
func NormalizeAnswer(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && unicode.IsPunct(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CorrectAnswer is a pre-normalized reference answer for a task.
type CorrectAnswer string

// NewCorrectAnswer normalizes the input and rejects answers that are
// empty after normalization.
func NewCorrectAnswer(s string) (CorrectAnswer, error) {
	n := NormalizeAnswer(s)
	if n == "" {
		return "", invalidValue("invalid correct answer: expected not empty string")
	}
	return CorrectAnswer(n), nil
}

// Task is a single challenge: a question with a grading rule, a point
// value, and optional dependencies on other tasks of the same track.
type Task struct {
	id             TaskID
	index          SerialNumber
	taskType       TaskType
	question       string
	explanation    string
	mediaID        MediaID
	options        []string
	dependencies   []TaskID
	correctAnswers []CorrectAnswer
	points         Points
	price          Points
	maxDistance    int
}

// NewTask assembles a task definition. Correct answers must already be
// built with NewCorrectAnswer.
func NewTask(
	id TaskID,
	index SerialNumber,
	taskType TaskType,
	question, explanation string,
	mediaID MediaID,
	options []string,
	dependencies []TaskID,
	correctAnswers []CorrectAnswer,
	points, price Points,
	maxDistance int,
) *Task {
	return &Task{
		id:             id,
		index:          index,
		taskType:       taskType,
		question:       question,
		explanation:    explanation,
		mediaID:        mediaID,
		options:        options,
		dependencies:   dependencies,
		correctAnswers: correctAnswers,
		points:         points,
		price:          price,
		maxDistance:    maxDistance,
	}
}

func (t *Task) ID() TaskID { return t.id }
func (t *Task) Index() SerialNumber { return t.index }
func (t *Task) Type() TaskType { return t.taskType }
func (t *Task) Question() string { return t.question }
func (t *Task) Explanation() string { return t.explanation }
func (t *Task) MediaID() MediaID { return t.mediaID }
func (t *Task) Options() []string { return t.options }
func (t *Task) Dependencies() []TaskID { return t.dependencies }
func (t *Task) Points() Points { return t.points }
func (t *Task) Price() Points { return t.price }
func (t *Task) MaxDistance() int { return t.maxDistance }

func (t *Task) CorrectAnswers() []CorrectAnswer { return t.correctAnswers }

// Answer grades a raw submission. The input is normalized and compared
// against every correct answer by Levenshtein edit distance; any match
// within the configured threshold awards the task's full points, no
// partial credit. Pure: the caller persists the result.
func (t *Task) Answer(raw string) Answer {
	text := NormalizeAnswer(raw)
	for _, correct := range t.correctAnswers {
		if levenshtein.ComputeDistance(text, string(correct)) <= t.maxDistance {
			return NewAnswer(t.id, text, t.points)
		}
	}
	return NewAnswer(t.id, text, 0)
}
