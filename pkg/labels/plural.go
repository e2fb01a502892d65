package labels

import (
	"strings"
	"unicode"
)

// irregulars maps singular nouns to plurals that no suffix rule covers.
// Lookup is case-insensitive; the result follows the case of the input's
// first letter.
var irregulars = map[string]string{
	"analysis":   "analyses",
	"axis":       "axes",
	"basis":      "bases",
	"cactus":     "cacti",
	"calf":       "calves",
	"child":      "children",
	"crisis":     "crises",
	"criterion":  "criteria",
	"datum":      "data",
	"deer":       "deer",
	"fish":       "fish",
	"focus":      "foci",
	"foot":       "feet",
	"fungus":     "fungi",
	"goose":      "geese",
	"half":       "halves",
	"index":      "indices",
	"knife":      "knives",
	"leaf":       "leaves",
	"life":       "lives",
	"loaf":       "loaves",
	"man":        "men",
	"matrix":     "matrices",
	"medium":     "media",
	"mouse":      "mice",
	"news":       "news",
	"ox":         "oxen",
	"person":     "people",
	"phenomenon": "phenomena",
	"series":     "series",
	"sheep":      "sheep",
	"species":    "species",
	"thesis":     "theses",
	"tooth":      "teeth",
	"wife":       "wives",
	"wolf":       "wolves",
	"woman":      "women",
}

// Pluralize derives the English plural of a noun. Irregular words are looked
// up first; otherwise the ordered suffix rules apply and the first match
// wins.
func Pluralize(word string) string {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return ""
	}

	lower := strings.ToLower(trimmed)
	if plural, ok := irregulars[lower]; ok {
		return matchCase(plural, trimmed)
	}

	return matchCase(pluralizeRegular(lower), trimmed)
}

func pluralizeRegular(lower string) string {
	switch {
	case hasAnySuffix(lower, "s", "x", "z", "ch", "sh"):
		return lower + "es"
	case strings.HasSuffix(lower, "y") && endsConsonantBefore(lower, "y"):
		return strings.TrimSuffix(lower, "y") + "ies"
	case strings.HasSuffix(lower, "fe"):
		return strings.TrimSuffix(lower, "fe") + "ves"
	case strings.HasSuffix(lower, "f"):
		return strings.TrimSuffix(lower, "f") + "ves"
	case strings.HasSuffix(lower, "o") && endsConsonantBefore(lower, "o"):
		return lower + "es"
	default:
		return lower + "s"
	}
}

func hasAnySuffix(word string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(word, suffix) {
			return true
		}
	}
	return false
}

// endsConsonantBefore reports whether the letter preceding the final suffix
// is a consonant.
func endsConsonantBefore(word, suffix string) bool {
	stem := strings.TrimSuffix(word, suffix)
	if stem == "" {
		return false
	}
	last := rune(stem[len(stem)-1])
	switch last {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	}
	return unicode.IsLetter(last)
}

// matchCase upper-cases the first letter of plural when source starts with
// an upper-case letter.
func matchCase(plural, source string) string {
	if plural == "" || source == "" {
		return plural
	}
	first := []rune(source)[0]
	if unicode.IsUpper(first) {
		runes := []rune(plural)
		runes[0] = unicode.ToUpper(runes[0])
		return string(runes)
	}
	return plural
}
