package client

// NamedRef is the PokeAPI {name, url} resource reference.
type NamedRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListItem is one entry of the paginated list envelope.
type ListItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TypeSlot is one of a record's ordered type assignments.
type TypeSlot struct {
	Slot int      `json:"slot"`
	Type NamedRef `json:"type"`
}

// StatValue is a single base stat entry.
type StatValue struct {
	BaseStat int      `json:"base_stat"`
	Stat     NamedRef `json:"stat"`
}

// AbilitySlot is a single ability entry.
type AbilitySlot struct {
	IsHidden bool     `json:"is_hidden"`
	Ability  NamedRef `json:"ability"`
}

// ArtworkSprites holds the official-artwork variants.
type ArtworkSprites struct {
	FrontDefault string `json:"front_default"`
	FrontShiny   string `json:"front_shiny"`
}

// SpriteSet is the trimmed sprite selection kept after normalization:
// front/back default and shiny, plus the official artwork.
type SpriteSet struct {
	FrontDefault string `json:"front_default"`
	BackDefault  string `json:"back_default"`
	FrontShiny   string `json:"front_shiny"`
	BackShiny    string `json:"back_shiny"`
	Other        struct {
		OfficialArtwork ArtworkSprites `json:"official-artwork"`
	} `json:"other"`
}

// VersionGroupDetail describes where a move is learned.
type VersionGroupDetail struct {
	LevelLearnedAt  int      `json:"level_learned_at"`
	MoveLearnMethod NamedRef `json:"move_learn_method"`
	VersionGroup    NamedRef `json:"version_group"`
}

// Move is kept structurally as the API returns it; the cache snapshot
// drops the list entirely to bound entry size.
type Move struct {
	Move                NamedRef             `json:"move"`
	VersionGroupDetails []VersionGroupDetail `json:"version_group_details"`
}

// Pokemon is a normalized catalog record. It is immutable after
// normalization, except Moves which may be refilled when the full
// payload is re-fetched for a cached snapshot.
type Pokemon struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Height         int           `json:"height"` // decimeters
	Weight         int           `json:"weight"` // hectograms
	BaseExperience *int          `json:"base_experience"`
	Order          *int          `json:"order"`
	Types          []TypeSlot    `json:"types"`
	Stats          []StatValue   `json:"stats"`
	Abilities      []AbilitySlot `json:"abilities"`
	Sprites        SpriteSet     `json:"sprites"`
	Species        *NamedRef     `json:"species"`
	Moves          []Move        `json:"moves"`
}

// HP returns the base value of the "hp" stat, 0 when absent.
func (p *Pokemon) HP() int {
	for _, s := range p.Stats {
		if s.Stat.Name == "hp" {
			return s.BaseStat
		}
	}
	return 0
}

// PrimaryType returns the first type slot's name, "normal" when the
// record somehow has no types.
func (p *Pokemon) PrimaryType() string {
	if len(p.Types) == 0 {
		return "normal"
	}
	return p.Types[0].Type.Name
}

// HasType reports whether the record carries the given type name.
func (p *Pokemon) HasType(name string) bool {
	for _, t := range p.Types {
		if t.Type.Name == name {
			return true
		}
	}
	return false
}
