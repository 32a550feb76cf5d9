package repository

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"legends-bot/internal/domain"
	"legends-bot/pkg/redis"
)

// taskSnapshot is the cache representation of a task definition.
type taskSnapshot struct {
	ID             int      `json:"id"`
	Index          int      `json:"index"`
	Type           string   `json:"type"`
	Question       string   `json:"question"`
	Explanation    string   `json:"explanation"`
	MediaID        string   `json:"media_id"`
	Options        []string `json:"options,omitempty"`
	Dependencies   []int    `json:"dependencies,omitempty"`
	CorrectAnswers []string `json:"correct_answers,omitempty"`
	Points         int      `json:"points"`
	Price          int      `json:"price"`
	MaxDistance    int      `json:"max_distance"`
}

// trackSnapshot is the cache representation of a track definition.
type trackSnapshot struct {
	Tag         string         `json:"tag"`
	Description string         `json:"description"`
	MediaID     string         `json:"media_id"`
	Tasks       []taskSnapshot `json:"tasks"`
}

func snapshotTask(t *domain.Task) taskSnapshot {
	deps := make([]int, 0, len(t.Dependencies()))
	for _, d := range t.Dependencies() {
		deps = append(deps, int(d))
	}
	correct := make([]string, 0, len(t.CorrectAnswers()))
	for _, c := range t.CorrectAnswers() {
		correct = append(correct, string(c))
	}
	return taskSnapshot{
		ID:             int(t.ID()),
		Index:          int(t.Index()),
		Type:           string(t.Type()),
		Question:       t.Question(),
		Explanation:    t.Explanation(),
		MediaID:        string(t.MediaID()),
		Options:        t.Options(),
		Dependencies:   deps,
		CorrectAnswers: correct,
		Points:         t.Points().Int(),
		Price:          t.Price().Int(),
		MaxDistance:    t.MaxDistance(),
	}
}

func restoreTask(s taskSnapshot) *domain.Task {
	deps := make([]domain.TaskID, 0, len(s.Dependencies))
	for _, d := range s.Dependencies {
		deps = append(deps, domain.TaskID(d))
	}
	correct := make([]domain.CorrectAnswer, 0, len(s.CorrectAnswers))
	for _, c := range s.CorrectAnswers {
		correct = append(correct, domain.CorrectAnswer(c))
	}
	return domain.NewTask(
		domain.TaskID(s.ID),
		domain.SerialNumber(s.Index),
		domain.TaskType(s.Type),
		s.Question, s.Explanation,
		domain.MediaID(s.MediaID),
		s.Options,
		deps,
		correct,
		domain.Points(s.Points), domain.Points(s.Price),
		s.MaxDistance,
	)
}

// CachedTrackProvider serves track definitions through Redis. Cache
// failures degrade to the wrapped provider and are logged, never
// surfaced to the caller.
type CachedTrackProvider struct {
	next  TrackProvider
	cache *redis.Client
	log   *zap.Logger
}

func NewCachedTrackProvider(next TrackProvider, cache *redis.Client, log *zap.Logger) *CachedTrackProvider {
	return &CachedTrackProvider{next: next, cache: cache, log: log}
}

func (p *CachedTrackProvider) GetByTag(ctx context.Context, tag domain.TrackTag) (*domain.Track, error) {
	key := p.cache.KeyBuilder.KeyTrack(string(tag))

	raw, err := p.cache.Get(ctx, key)
	if err == nil {
		var snap trackSnapshot
		if err := json.Unmarshal([]byte(raw), &snap); err == nil {
			tasks := make([]*domain.Task, 0, len(snap.Tasks))
			for _, ts := range snap.Tasks {
				tasks = append(tasks, restoreTask(ts))
			}
			return domain.NewTrack(domain.TrackTag(snap.Tag), snap.Description, domain.MediaID(snap.MediaID), tasks), nil
		}
		p.log.Warn("corrupt track cache entry", zap.String("key", key))
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		p.log.Warn("track cache read failed", zap.String("key", key), zap.Error(err))
	}

	track, err := p.next.GetByTag(ctx, tag)
	if err != nil {
		return nil, err
	}

	snap := trackSnapshot{
		Tag:         string(track.Tag()),
		Description: track.Description(),
		MediaID:     string(track.MediaID()),
	}
	for _, task := range track.Tasks() {
		snap.Tasks = append(snap.Tasks, snapshotTask(task))
	}
	if data, err := json.Marshal(snap); err == nil {
		if err := p.cache.Set(ctx, key, data, redis.TTLTrack); err != nil {
			p.log.Warn("track cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return track, nil
}

// characterSnapshot is the cache representation of a character.
type characterSnapshot struct {
	ID      string   `json:"id"`
	Index   int      `json:"index"`
	Name    string   `json:"name"`
	Quote   string   `json:"quote"`
	Facts   []string `json:"facts"`
	Legacy  string   `json:"legacy"`
	MediaID string   `json:"media_id"`
}

func snapshotCharacter(c *domain.Character) characterSnapshot {
	return characterSnapshot{
		ID:      string(c.ID()),
		Index:   int(c.Index()),
		Name:    string(c.Name()),
		Quote:   c.Quote(),
		Facts:   c.Facts(),
		Legacy:  c.Legacy(),
		MediaID: string(c.MediaID()),
	}
}

func restoreCharacter(s characterSnapshot) *domain.Character {
	return domain.RestoreCharacter(
		domain.CharacterID(s.ID),
		domain.SerialNumber(s.Index),
		domain.CharacterName(s.Name),
		s.Quote, s.Facts, s.Legacy,
		domain.MediaID(s.MediaID),
	)
}

// CachedCharacterProvider serves the character list through Redis with
// the same degrade-on-failure policy as the track cache.
type CachedCharacterProvider struct {
	next  CharacterProvider
	cache *redis.Client
	log   *zap.Logger
}

func NewCachedCharacterProvider(next CharacterProvider, cache *redis.Client, log *zap.Logger) *CachedCharacterProvider {
	return &CachedCharacterProvider{next: next, cache: cache, log: log}
}

func (p *CachedCharacterProvider) GetAll(ctx context.Context) ([]*domain.Character, error) {
	key := p.cache.KeyBuilder.KeyCharacters()

	raw, err := p.cache.Get(ctx, key)
	if err == nil {
		var snaps []characterSnapshot
		if err := json.Unmarshal([]byte(raw), &snaps); err == nil {
			characters := make([]*domain.Character, 0, len(snaps))
			for _, s := range snaps {
				characters = append(characters, restoreCharacter(s))
			}
			return characters, nil
		}
		p.log.Warn("corrupt character cache entry", zap.String("key", key))
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		p.log.Warn("character cache read failed", zap.String("key", key), zap.Error(err))
	}

	characters, err := p.next.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	snaps := make([]characterSnapshot, 0, len(characters))
	for _, c := range characters {
		snaps = append(snaps, snapshotCharacter(c))
	}
	if data, err := json.Marshal(snaps); err == nil {
		if err := p.cache.Set(ctx, key, data, redis.TTLCharacters); err != nil {
			p.log.Warn("character cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return characters, nil
}

// GetByName filters the cached list so name lookups share the same
// cache entry as the full list.
func (p *CachedCharacterProvider) GetByName(ctx context.Context, name domain.CharacterName) (*domain.Character, error) {
	characters, err := p.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range characters {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, nil
}
