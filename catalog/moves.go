package catalog

import "github.com/lribeiro/dexview/client"

// versionToGeneration maps version groups to game generations.
var versionToGeneration = map[string]string{
	"red-blue":                            "I",
	"yellow":                              "I",
	"gold-silver":                         "II",
	"crystal":                             "II",
	"ruby-sapphire":                       "III",
	"emerald":                             "III",
	"firered-leafgreen":                   "III",
	"diamond-pearl":                       "IV",
	"platinum":                            "IV",
	"heartgold-soulsilver":                "IV",
	"black-white":                         "V",
	"black-2-white-2":                     "V",
	"x-y":                                 "VI",
	"omega-ruby-alpha-sapphire":           "VI",
	"sun-moon":                            "VII",
	"ultra-sun-ultra-moon":                "VII",
	"lets-go-pikachu-lets-go-eevee":       "VII",
	"sword-shield":                        "VIII",
	"brilliant-diamond-and-shining-pearl": "VIII",
	"legends-arceus":                      "VIII",
	"scarlet-violet":                      "IX",
}

// MoveGenerations lists the tab keys of the moves view in order.
var MoveGenerations = []string{"all", "I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX"}

// MoveGeneration classifies a move by its first version group, "all"
// when unknown.
func MoveGeneration(m client.Move) string {
	if len(m.VersionGroupDetails) == 0 {
		return "all"
	}
	if gen, ok := versionToGeneration[m.VersionGroupDetails[0].VersionGroup.Name]; ok {
		return gen
	}
	return "all"
}

// GroupMovesByGeneration buckets moves by generation; the "all" bucket
// always holds the complete list.
func GroupMovesByGeneration(moves []client.Move) map[string][]client.Move {
	grouped := make(map[string][]client.Move, len(MoveGenerations))
	grouped["all"] = moves
	for _, m := range moves {
		gen := MoveGeneration(m)
		if gen != "all" {
			grouped[gen] = append(grouped[gen], m)
		}
	}
	return grouped
}
