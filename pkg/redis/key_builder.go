package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" {
		prefix = "staging"
	}

	return &KeyBuilder{prefix: prefix}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// KeyDialogueState keys the per-chat dialogue state.
func (kb *KeyBuilder) KeyDialogueState(chatID int64) string {
	return kb.BuildKey(fmt.Sprintf(KeyDialogueState, chatID))
}

// KeyTrack keys the cached definition of one track.
func (kb *KeyBuilder) KeyTrack(tag string) string {
	return kb.BuildKey(fmt.Sprintf(KeyTrack, tag))
}

// KeyCharacters keys the cached character list.
func (kb *KeyBuilder) KeyCharacters() string {
	return kb.BuildKey(KeyCharacters)
}

// KeyCharacterNames keys the cached list of character names.
func (kb *KeyBuilder) KeyCharacterNames() string {
	return kb.BuildKey(KeyCharacterNames)
}
