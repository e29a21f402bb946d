package catalog

import "strings"

// typeTranslations maps upstream type names to the pt-BR labels the
// viewer displays.
var typeTranslations = map[string]string{
	"bug":      "Inseto",
	"dark":     "Sombrio",
	"dragon":   "Dragão",
	"electric": "Elétrico",
	"fairy":    "Fada",
	"fighting": "Lutador",
	"fire":     "Fogo",
	"flying":   "Voador",
	"ghost":    "Fantasma",
	"grass":    "Grama",
	"ground":   "Terra",
	"ice":      "Gelo",
	"normal":   "Normal",
	"poison":   "Veneno",
	"psychic":  "Psíquico",
	"rock":     "Pedra",
	"steel":    "Aço",
	"water":    "Água",
}

// TranslateType returns the display label for a type name, falling
// back to the name itself for unknown types.
func TranslateType(name string) string {
	if name == "" {
		return ""
	}
	if label, ok := typeTranslations[strings.ToLower(name)]; ok {
		return label
	}
	return name
}

// KnownTypes returns the filterable type names in alphabetical order.
func KnownTypes() []string {
	return []string{
		"bug", "dark", "dragon", "electric", "fairy", "fighting",
		"fire", "flying", "ghost", "grass", "ground", "ice",
		"normal", "poison", "psychic", "rock", "steel", "water",
	}
}
