package domain

// CharacterID identifies a legend character.
type CharacterID string

// NewCharacterID generates a fresh character id.
func NewCharacterID() CharacterID { return CharacterID(newShortID(4)) }

// CharacterName is the display name of a legend character.
type CharacterName string

// NewCharacterName validates that the name is not empty.
func NewCharacterName(s string) (CharacterName, error) {
	if s == "" {
		return "", invalidValue("invalid character name: expected not empty string")
	}
	return CharacterName(s), nil
}

// Character is a historical figure featured in the event's lore pages.
type Character struct {
	id      CharacterID
	index   SerialNumber
	name    CharacterName
	quote   string
	facts   []string
	legacy  string
	mediaID MediaID
}

// NewCharacter creates a character with a generated id.
func NewCharacter(index SerialNumber, name CharacterName, quote string, facts []string, legacy string, mediaID MediaID) *Character {
	return &Character{
		id:      NewCharacterID(),
		index:   index,
		name:    name,
		quote:   quote,
		facts:   facts,
		legacy:  legacy,
		mediaID: mediaID,
	}
}

// RestoreCharacter rebuilds a character from persisted state.
func RestoreCharacter(id CharacterID, index SerialNumber, name CharacterName, quote string, facts []string, legacy string, mediaID MediaID) *Character {
	return &Character{id: id, index: index, name: name, quote: quote, facts: facts, legacy: legacy, mediaID: mediaID}
}

func (c *Character) ID() CharacterID { return c.id }
func (c *Character) Index() SerialNumber { return c.index }
func (c *Character) Name() CharacterName { return c.name }
func (c *Character) Quote() string { return c.quote }
func (c *Character) Facts() []string { return c.facts }
func (c *Character) Legacy() string { return c.legacy }
func (c *Character) MediaID() MediaID { return c.mediaID }
