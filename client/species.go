package client

// FlavorText is one localized description entry.
type FlavorText struct {
	FlavorText string   `json:"flavor_text"`
	Language   NamedRef `json:"language"`
}

// Species is the slice of the species document the viewer consumes.
type Species struct {
	Name              string       `json:"name"`
	FlavorTextEntries []FlavorText `json:"flavor_text_entries"`
	EvolutionChain    struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}

// Ability is the slice of the ability document the viewer consumes.
type Ability struct {
	Name              string       `json:"name"`
	FlavorTextEntries []FlavorText `json:"flavor_text_entries"`
}

// EvolutionDetail describes one trigger of an evolution step.
type EvolutionDetail struct {
	MinLevel      *int      `json:"min_level"`
	MinHappiness  *int      `json:"min_happiness"`
	Item          *NamedRef `json:"item"`
	HeldItem      *NamedRef `json:"held_item"`
	Trigger       *NamedRef `json:"trigger"`
	TimeOfDay     string    `json:"time_of_day"`
	KnownMoveType *NamedRef `json:"known_move_type"`
}

// ChainLink is one node of the evolution chain tree.
type ChainLink struct {
	Species          NamedRef          `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

// EvolutionChain is the evolution chain document.
type EvolutionChain struct {
	Chain ChainLink `json:"chain"`
}
