package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lribeiro/dexview/client"
)

func moveFor(name, versionGroup string) client.Move {
	m := client.Move{Move: client.NamedRef{Name: name}}
	if versionGroup != "" {
		m.VersionGroupDetails = []client.VersionGroupDetail{{
			VersionGroup: client.NamedRef{Name: versionGroup},
		}}
	}
	return m
}

func TestMoveGeneration(t *testing.T) {
	assert.Equal(t, "I", MoveGeneration(moveFor("tackle", "red-blue")))
	assert.Equal(t, "IX", MoveGeneration(moveFor("tera-blast", "scarlet-violet")))
	assert.Equal(t, "all", MoveGeneration(moveFor("mystery", "unknown-version")))
	assert.Equal(t, "all", MoveGeneration(moveFor("detached", "")))
}

func TestGroupMovesByGeneration(t *testing.T) {
	moves := []client.Move{
		moveFor("tackle", "red-blue"),
		moveFor("thunderbolt", "yellow"),
		moveFor("crunch", "gold-silver"),
		moveFor("detached", ""),
	}

	grouped := GroupMovesByGeneration(moves)

	// The all bucket keeps everything, including the unclassified move.
	require.Len(t, grouped["all"], 4)
	require.Len(t, grouped["I"], 2)
	assert.Equal(t, "tackle", grouped["I"][0].Move.Name)
	require.Len(t, grouped["II"], 1)
	assert.Empty(t, grouped["III"])
}

func TestFlavorTextByLanguage(t *testing.T) {
	entries := []client.FlavorText{
		{FlavorText: "english text", Language: client.NamedRef{Name: "en"}},
		{FlavorText: "texto\fem\nportuguês", Language: client.NamedRef{Name: "pt"}},
	}

	assert.Equal(t, "texto em português", FlavorTextByLanguage(entries, "pt-BR"))
	assert.Equal(t, "english text", FlavorTextByLanguage(entries[:1], "pt-BR"))
	assert.Equal(t, "", FlavorTextByLanguage(nil, "pt-BR"))
}

func TestFlavorTextFallsBackToFirstEntry(t *testing.T) {
	entries := []client.FlavorText{
		{FlavorText: "日本語のテキスト", Language: client.NamedRef{Name: "ja"}},
	}
	assert.Equal(t, "日本語のテキスト", FlavorTextByLanguage(entries, "pt-BR"))
}

func TestTranslateType(t *testing.T) {
	assert.Equal(t, "Fogo", TranslateType("fire"))
	assert.Equal(t, "Fogo", TranslateType("FIRE"))
	assert.Equal(t, "shadow", TranslateType("shadow"))
	assert.Equal(t, "", TranslateType(""))
}

func TestRegionByKey(t *testing.T) {
	r, ok := RegionByKey("hoenn")
	require.True(t, ok)
	assert.Equal(t, 252, r.Start)
	assert.Equal(t, 135, r.Count)

	_, ok = RegionByKey("unova")
	assert.False(t, ok)
}
