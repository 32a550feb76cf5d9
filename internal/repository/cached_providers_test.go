package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"legends-bot/internal/domain"
	"legends-bot/pkg/redis"
)

func testCache(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

// countingTrackProvider records how often the backing store is hit.
type countingTrackProvider struct {
	track *domain.Track
	calls int
}

func (p *countingTrackProvider) GetByTag(_ context.Context, tag domain.TrackTag) (*domain.Track, error) {
	p.calls++
	if tag != p.track.Tag() {
		return nil, fmt.Errorf("track %s not found", tag)
	}
	return p.track, nil
}

type countingCharacterProvider struct {
	characters []*domain.Character
	calls      int
}

func (p *countingCharacterProvider) GetAll(_ context.Context) ([]*domain.Character, error) {
	p.calls++
	return p.characters, nil
}

func (p *countingCharacterProvider) GetByName(_ context.Context, name domain.CharacterName) (*domain.Character, error) {
	p.calls++
	for _, c := range p.characters {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, nil
}

func TestCachedTrackProvider_RoundTrip(t *testing.T) {
	correct, err := domain.NewCorrectAnswer("лужники")
	require.NoError(t, err)
	task := domain.NewTask(1, 1, domain.TaskTypeText, "Где?", "Подсказка", "m1",
		nil, []domain.TaskID{}, []domain.CorrectAnswer{correct}, 10, 0, 1)
	backing := &countingTrackProvider{
		track: domain.NewTrack(domain.TrackVolya, "Описание", "intro", []*domain.Task{task}),
	}

	provider := NewCachedTrackProvider(backing, testCache(t), zap.NewNop())
	ctx := context.Background()

	first, err := provider.GetByTag(ctx, domain.TrackVolya)
	require.NoError(t, err)
	assert.Equal(t, 1, backing.calls)

	second, err := provider.GetByTag(ctx, domain.TrackVolya)
	require.NoError(t, err)
	assert.Equal(t, 1, backing.calls, "second read must come from cache")

	assert.Equal(t, first.Tag(), second.Tag())
	assert.Equal(t, first.Description(), second.Description())

	restored := second.Task(1)
	require.NotNil(t, restored)
	assert.Equal(t, task.Question(), restored.Question())
	assert.Equal(t, task.MaxDistance(), restored.MaxDistance())

	// Grading must survive the cache round trip.
	answer := restored.Answer("Лужник")
	assert.True(t, answer.Solved())
}

func TestCachedTrackProvider_BackingErrorPropagates(t *testing.T) {
	correct, err := domain.NewCorrectAnswer("лужники")
	require.NoError(t, err)
	task := domain.NewTask(1, 1, domain.TaskTypeText, "Где?", "", "m1",
		nil, nil, []domain.CorrectAnswer{correct}, 10, 0, 1)
	backing := &countingTrackProvider{
		track: domain.NewTrack(domain.TrackVolya, "Описание", "intro", []*domain.Task{task}),
	}

	provider := NewCachedTrackProvider(backing, testCache(t), zap.NewNop())

	_, err = provider.GetByTag(context.Background(), domain.TrackTrud)
	require.Error(t, err)
}

func TestCachedCharacterProvider_RoundTrip(t *testing.T) {
	name, err := domain.NewCharacterName("Жуковский")
	require.NoError(t, err)
	backing := &countingCharacterProvider{
		characters: []*domain.Character{
			domain.NewCharacter(1, name, "Цитата", []string{"факт"}, "Наследие", "zh1"),
		},
	}

	provider := NewCachedCharacterProvider(backing, testCache(t), zap.NewNop())
	ctx := context.Background()

	first, err := provider.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, backing.calls)

	second, err := provider.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, backing.calls, "second read must come from cache")
	assert.Equal(t, first[0].Name(), second[0].Name())
	assert.Equal(t, first[0].Facts(), second[0].Facts())

	// Name lookups reuse the same cache entry.
	found, err := provider.GetByName(ctx, name)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 1, backing.calls)

	missing, err := provider.GetByName(ctx, "Неизвестный")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
