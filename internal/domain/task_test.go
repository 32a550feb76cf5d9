package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTextTask(t *testing.T, id TaskID, correct string, maxDistance int, points Points, deps ...TaskID) *Task {
	t.Helper()
	ca, err := NewCorrectAnswer(correct)
	require.NoError(t, err)
	return NewTask(id, SerialNumber(id), TaskTypeText, "q", "e", "", nil, deps, []CorrectAnswer{ca}, points, 0, maxDistance)
}

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "ЛУЖНИКИ", "лужники"},
		{"strips punctuation", "par-k, one!", "park one"},
		{"empty input", "", ""},
		{"idempotent form unchanged", "лужники", "лужники"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeAnswer(tt.input))
		})
	}
}

func TestNormalizeAnswerIdempotent(t *testing.T) {
	inputs := []string{"Лужники!", "A b, C.", "просто текст"}
	for _, in := range inputs {
		once := NormalizeAnswer(in)
		assert.Equal(t, once, NormalizeAnswer(once))
	}
}

func TestTaskAnswerFuzzyMatch(t *testing.T) {
	task := newTextTask(t, 1, "лужники", 1, 10)

	answer := task.Answer("лужник")
	assert.Equal(t, Points(10), answer.Points())
	assert.True(t, answer.Solved())

	answer = task.Answer("парк")
	assert.Equal(t, Points(0), answer.Points())
	assert.False(t, answer.Solved())
}

func TestTaskAnswerExactMatchRequired(t *testing.T) {
	task := newTextTask(t, 1, "восток", 0, 5)

	assert.True(t, task.Answer("Восток").Solved())
	assert.True(t, task.Answer("восток!").Solved())
	assert.False(t, task.Answer("васток").Solved())
}

func TestTaskAnswerDeterministic(t *testing.T) {
	task := newTextTask(t, 1, "ответ", 1, 7)
	first := task.Answer("атвет")
	second := task.Answer("атвет")
	assert.Equal(t, first.Points(), second.Points())
}

func TestTaskAnswerEmptyInput(t *testing.T) {
	task := newTextTask(t, 1, "лужники", 1, 10)
	assert.False(t, task.Answer("").Solved())
}

func TestTaskAnswerSeveralCorrectAnswers(t *testing.T) {
	first, err := NewCorrectAnswer("МГТУ")
	require.NoError(t, err)
	second, err := NewCorrectAnswer("Бауманка")
	require.NoError(t, err)
	task := NewTask(2, 2, TaskTypeText, "q", "e", "", nil, nil, []CorrectAnswer{first, second}, 3, 0, 0)

	assert.True(t, task.Answer("бауманка").Solved())
	assert.True(t, task.Answer("мгту").Solved())
	assert.False(t, task.Answer("мифи").Solved())
}

func TestNewCorrectAnswerRejectsEmpty(t *testing.T) {
	_, err := NewCorrectAnswer("!!!")
	assert.Error(t, err)

	var invalid *ErrInvalidValue
	assert.ErrorAs(t, err, &invalid)
}
