package catalog

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/lribeiro/dexview/client"
)

// StageDetail is one human-readable trigger of an evolution step.
type StageDetail struct {
	Type  string
	Value string
	Label string
}

// Stage is one flattened node of an evolution chain; Level is the
// depth in the tree, 0 for the base form.
type Stage struct {
	Name    string
	ID      int
	Level   int
	Details []StageDetail
}

var idFromURL = regexp.MustCompile(`/(\d+)/?$`)

// ExtractIDFromURL pulls the trailing numeric id out of a resource
// URL, 0 when absent.
func ExtractIDFromURL(url string) int {
	m := idFromURL.FindStringSubmatch(url)
	if m == nil {
		return 0
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return id
}

// FlattenEvolutionChain walks the chain tree depth-first into an
// ordered stage list.
func FlattenEvolutionChain(chain *client.EvolutionChain) []Stage {
	if chain == nil {
		return nil
	}
	var stages []Stage
	flattenChainLink(&chain.Chain, 0, &stages)
	return stages
}

func flattenChainLink(link *client.ChainLink, level int, out *[]Stage) {
	if link == nil || link.Species.Name == "" {
		return
	}

	stage := Stage{
		Name:  link.Species.Name,
		ID:    ExtractIDFromURL(link.Species.URL),
		Level: level,
	}
	for _, d := range link.EvolutionDetails {
		if detail, ok := stageDetail(d); ok {
			stage.Details = append(stage.Details, detail)
		}
	}
	*out = append(*out, stage)

	for i := range link.EvolvesTo {
		flattenChainLink(&link.EvolvesTo[i], level+1, out)
	}
}

func stageDetail(d client.EvolutionDetail) (StageDetail, bool) {
	switch {
	case d.MinLevel != nil:
		return StageDetail{Type: "level", Value: strconv.Itoa(*d.MinLevel), Label: fmt.Sprintf("Nível %d", *d.MinLevel)}, true
	case d.Trigger != nil && d.Trigger.Name == "trade":
		label := "Troca"
		if d.HeldItem != nil {
			label += " com " + d.HeldItem.Name
		}
		return StageDetail{Type: "trade", Value: "trade", Label: label}, true
	case d.Trigger != nil && d.Trigger.Name == "use-item":
		item := "item"
		if d.Item != nil {
			item = d.Item.Name
		}
		return StageDetail{Type: "item", Value: item, Label: "Usar item: " + item}, true
	case d.Item != nil:
		return StageDetail{Type: "item", Value: d.Item.Name, Label: "Item: " + d.Item.Name}, true
	case d.MinHappiness != nil:
		return StageDetail{Type: "happiness", Value: strconv.Itoa(*d.MinHappiness), Label: fmt.Sprintf("Felicidade: %d", *d.MinHappiness)}, true
	case d.TimeOfDay != "":
		return StageDetail{Type: "time", Value: d.TimeOfDay, Label: "Horário: " + d.TimeOfDay}, true
	case d.KnownMoveType != nil:
		return StageDetail{Type: "move", Value: d.KnownMoveType.Name, Label: "Movimento tipo " + d.KnownMoveType.Name}, true
	case d.Trigger != nil:
		return StageDetail{Type: "trigger", Value: d.Trigger.Name, Label: d.Trigger.Name}, true
	}
	return StageDetail{}, false
}
