package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyBuilderPrefix(t *testing.T) {
	tests := []struct {
		environment string
		expected    string
	}{
		{"production", "prod"},
		{"development", "staging"},
		{"staging", "staging"},
		{"", "prod"},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			assert.Equal(t, tt.expected, kb.GetPrefix())
		})
	}
}

func TestKeyBuilderKeys(t *testing.T) {
	kb := NewKeyBuilder("production")

	assert.Equal(t, "prod:dialogue:chat:12345", kb.KeyDialogueState(12345))
	assert.Equal(t, "prod:track:Воля", kb.KeyTrack("Воля"))
	assert.Equal(t, "prod:characters:all", kb.KeyCharacters())
	assert.Equal(t, "prod:characters:names", kb.KeyCharacterNames())
}
