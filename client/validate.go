package client

import "strings"

// rawPokemon mirrors the detail payload loosely enough to tell a
// missing section apart from an empty one.
type rawPokemon struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Height         int           `json:"height"`
	Weight         int           `json:"weight"`
	BaseExperience *int          `json:"base_experience"`
	Order          *int          `json:"order"`
	Types          []TypeSlot    `json:"types"`
	Stats          []StatValue   `json:"stats"`
	Abilities      []AbilitySlot `json:"abilities"`
	Sprites        *SpriteSet    `json:"sprites"`
	Species        *NamedRef     `json:"species"`
	Moves          []Move        `json:"moves"`
}

// validateAndNormalize turns a raw payload into a catalog record.
// Records missing id, name, types or sprites, or with a non-positive
// id, are rejected (nil return).
func validateAndNormalize(raw *rawPokemon) *Pokemon {
	if raw == nil || raw.ID < 1 {
		return nil
	}
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return nil
	}
	if len(raw.Types) == 0 || raw.Sprites == nil {
		return nil
	}

	p := &Pokemon{
		ID:             raw.ID,
		Name:           name,
		Height:         raw.Height,
		Weight:         raw.Weight,
		BaseExperience: raw.BaseExperience,
		Order:          raw.Order,
		Sprites:        *raw.Sprites,
		Species:        raw.Species,
		Moves:          raw.Moves,
	}

	p.Types = make([]TypeSlot, len(raw.Types))
	for i, t := range raw.Types {
		slot := t.Slot
		if slot == 0 {
			slot = 1
		}
		typeName := strings.ToLower(t.Type.Name)
		if typeName == "" {
			typeName = "normal"
		}
		p.Types[i] = TypeSlot{Slot: slot, Type: NamedRef{Name: typeName, URL: t.Type.URL}}
	}

	p.Stats = make([]StatValue, len(raw.Stats))
	for i, s := range raw.Stats {
		p.Stats[i] = StatValue{BaseStat: s.BaseStat, Stat: NamedRef{Name: s.Stat.Name}}
	}

	p.Abilities = make([]AbilitySlot, len(raw.Abilities))
	copy(p.Abilities, raw.Abilities)

	return p
}
