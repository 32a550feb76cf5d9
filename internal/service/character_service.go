package service

import (
	"context"

	"go.uber.org/zap"

	"legends-bot/internal/domain"
	"legends-bot/internal/repository"
)

// CharacterService serves the lore pages about the university's legend
// characters.
type CharacterService struct {
	characters repository.CharacterProvider
	log        *zap.Logger
}

func NewCharacterService(characters repository.CharacterProvider, log *zap.Logger) *CharacterService {
	return &CharacterService{characters: characters, log: log}
}

// GetNames lists character display names in index order, for the
// selection keyboard.
func (s *CharacterService) GetNames(ctx context.Context) ([]string, error) {
	characters, err := s.characters.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(characters))
	for _, c := range characters {
		names = append(names, string(c.Name()))
	}
	return names, nil
}

// GetByName resolves one character's lore page, nil if the name is not
// a known character.
func (s *CharacterService) GetByName(ctx context.Context, name string) (*CharacterDTO, error) {
	character, err := s.characters.GetByName(ctx, domain.CharacterName(name))
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, nil
	}
	dto := newCharacterDTO(character)
	return &dto, nil
}
