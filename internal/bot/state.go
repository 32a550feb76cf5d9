package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"legends-bot/pkg/redis"
)

// DialogueState is the per-chat position inside a multi-step flow. The
// zero value means "no active flow".
type DialogueState struct {
	Flow string            `json:"flow"`
	Step int               `json:"step"`
	Data map[string]string `json:"data"`
}

// Active reports whether the chat is inside a flow.
func (s DialogueState) Active() bool { return s.Flow != "" }

// StateStore persists dialogue state in Redis so conversations survive
// restarts. State expires after the dialogue TTL.
type StateStore struct {
	cache *redis.Client
}

func NewStateStore(cache *redis.Client) *StateStore {
	return &StateStore{cache: cache}
}

// Get loads the chat's state, zero value when none is stored.
func (s *StateStore) Get(ctx context.Context, chatID int64) (DialogueState, error) {
	raw, err := s.cache.Get(ctx, s.cache.KeyBuilder.KeyDialogueState(chatID))
	if errors.Is(err, redis.ErrCacheMiss) {
		return DialogueState{}, nil
	}
	if err != nil {
		return DialogueState{}, err
	}

	var state DialogueState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return DialogueState{}, fmt.Errorf("decode dialogue state for chat %d: %w", chatID, err)
	}
	// Flow handlers write into Data; states stored before any input was
	// collected come back without it.
	if state.Data == nil {
		state.Data = map[string]string{}
	}
	return state, nil
}

// Set stores the chat's state.
func (s *StateStore) Set(ctx context.Context, chatID int64, state DialogueState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode dialogue state for chat %d: %w", chatID, err)
	}
	return s.cache.Set(ctx, s.cache.KeyBuilder.KeyDialogueState(chatID), data, redis.TTLDialogueState)
}

// Clear drops the chat's state.
func (s *StateStore) Clear(ctx context.Context, chatID int64) error {
	return s.cache.Delete(ctx, s.cache.KeyBuilder.KeyDialogueState(chatID))
}
