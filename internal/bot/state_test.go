package bot

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"legends-bot/pkg/redis"
)

func testStore(t *testing.T) *StateStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return NewStateStore(client)
}

func TestStateStore_RoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	state, err := store.Get(ctx, 100)
	require.NoError(t, err)
	assert.False(t, state.Active())

	in := DialogueState{
		Flow: flowRegistration,
		Step: 2,
		Data: map[string]string{"full_name": "Анна Иванова"},
	}
	require.NoError(t, store.Set(ctx, 100, in))

	out, err := store.Get(ctx, 100)
	require.NoError(t, err)
	assert.True(t, out.Active())
	assert.Equal(t, in, out)

	// Chats do not share state.
	other, err := store.Get(ctx, 200)
	require.NoError(t, err)
	assert.False(t, other.Active())
}

func TestStateStore_EmptyDataSurvivesRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	// A flow starts with no collected input; the first step must be able
	// to write into Data after a reload.
	in := DialogueState{Flow: flowRegistration, Step: 1, Data: map[string]string{}}
	require.NoError(t, store.Set(ctx, 100, in))

	out, err := store.Get(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, out.Data)
	assert.NotPanics(t, func() { out.Data["full_name"] = "Анна Иванова" })
}

func TestStateStore_Clear(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 100, DialogueState{Flow: flowFeedback, Step: 1}))
	require.NoError(t, store.Clear(ctx, 100))

	state, err := store.Get(ctx, 100)
	require.NoError(t, err)
	assert.False(t, state.Active())
}
