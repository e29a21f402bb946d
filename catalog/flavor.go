package catalog

import (
	"strings"

	"github.com/lribeiro/dexview/client"
)

// FlavorTextByLanguage picks the best description from a flavor text
// list: the requested language first, then "pt", then "en", then the
// first non-empty entry. Form feeds and repeated whitespace are
// collapsed.
func FlavorTextByLanguage(entries []client.FlavorText, lang string) string {
	for _, want := range []string{lang, "pt", "en"} {
		if want == "" {
			continue
		}
		for _, e := range entries {
			if e.Language.Name == want && e.FlavorText != "" {
				return cleanFlavorText(e.FlavorText)
			}
		}
	}
	for _, e := range entries {
		if e.FlavorText != "" {
			return cleanFlavorText(e.FlavorText)
		}
	}
	return ""
}

func cleanFlavorText(s string) string {
	s = strings.ReplaceAll(s, "\f", " ")
	return strings.Join(strings.Fields(s), " ")
}
