// Package vocab holds the fixed synonym, typo-variant and pairing tables the
// engine matches against. Everything is a plain lookup table so tests can
// enumerate every entry.
package vocab

import "strings"

// CategoryPatterns maps a canonical category facet to the substring
// alternatives it should match in the description column. Categories not in
// the table pass through as a single literal.
var CategoryPatterns = map[string][]string{
	"hoodie":     {"hoodie", "sweatshirt"},
	"pants":      {"pants", "trousers", "sweatpants"},
	"shirt":      {"shirt", "top", "blouse"},
	"sweatshirt": {"sweatshirt", "hoodie"},
	"jacket":     {"jacket", "coat", "blazer"},
	"top":        {"top", "shirt", "blouse"},
}

// tokenFamilies maps every member of a spelling/synonym family to the full
// variant set. The "womrn" entry absorbs a typo the upstream model passes
// through verbatim.
var tokenFamilies = map[string][]string{
	"women": {"women", "woman", "female"},
	"womrn": {"women", "woman", "female"},
	"men":   {"men", "man", "male"},
	"man":   {"men", "man", "male"},

	"hoodie": {"hoodie", "hoody", "hood", "sweatshirt"},
	"hoody":  {"hoodie", "hoody", "hood", "sweatshirt"},

	"pant":  {"pant", "pants", "trouser", "trousers"},
	"pants": {"pant", "pants", "trouser", "trousers"},

	"shirt":  {"shirt", "shirts", "top", "tops"},
	"shirts": {"shirt", "shirts", "top", "tops"},
}

// genderTokens are the search tokens that lock a query to a gender: when one
// is present and the strict match comes up empty, the result stays empty.
// Each maps to the canonical gender column value it selects; gender tokens
// match that column exactly instead of the text columns, since every
// "Women's" description contains "men" as a substring.
var genderTokens = map[string]string{
	"women": "Women",
	"woman": "Women",
	"womrn": "Women",
	"men":   "Men",
	"man":   "Men",
}

// ExpandToken returns the variant set for one search token: the token itself
// plus its family, deduplicated, in stable order.
func ExpandToken(token string) []string {
	variants := []string{token}
	seen := map[string]bool{token: true}
	for _, v := range tokenFamilies[token] {
		if !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}
	return variants
}

// IsGenderToken reports whether the token belongs to a gender family.
func IsGenderToken(token string) bool {
	_, ok := genderTokens[token]
	return ok
}

// GenderTokenCanonical returns the canonical gender column value a gender
// token selects, or "" for non-gender tokens.
func GenderTokenCanonical(token string) string {
	return genderTokens[token]
}

// Seed-name keywords that classify a product for pairing.
var (
	topLikeSeeds    = []string{"hoodie", "sweatshirt", "crew", "fleece", "sweater"}
	bottomLikeSeeds = []string{"pant", "legging", "sweatpant", "jogger"}
	dressLikeSeeds  = []string{"dress", "skirt"}
)

// Opposite-category terms suggested for each seed class.
var (
	topPairings    = []string{"pant", "legging", "sweatpant", "jogger", "short"}
	bottomPairings = []string{"hoodie", "sweatshirt", "crew", "fleece", "sweater", "top", "shirt"}
	dressPairings  = []string{"shoe", "sneaker", "boot"}
)

// PairingCategories classifies a seed product name as top-like, bottom-like
// or dress-like and returns the complementary category terms. Order matters:
// top-like keywords win over bottom-like ones ("sweatpant" contains "pant"
// but the reverse check never fires first).
func PairingCategories(seedName string) []string {
	switch {
	case containsAny(seedName, topLikeSeeds):
		return topPairings
	case containsAny(seedName, bottomLikeSeeds):
		return bottomPairings
	case containsAny(seedName, dressLikeSeeds):
		return dressPairings
	default:
		return nil
	}
}

// complementaryColors maps a seed color to colors that pair with it.
var complementaryColors = map[string][]string{
	"black": {"white", "gray", "beige", "cream"},
	"navy":  {"white", "gray", "beige", "cream"},
	"white": {"black", "navy", "brown", "gray"},
	"cream": {"black", "navy", "brown", "gray"},
	"blue":  {"black", "white", "gray", "navy"},
	"pink":  {"black", "white", "gray", "navy"},
	"red":   {"black", "white", "gray", "navy"},
}

// pairingColorOrder fixes which seed-color rule wins when several colors
// appear in the seed, matching the first-hit evaluation the engine promises.
var pairingColorOrder = []string{"black", "navy", "white", "cream", "blue", "pink", "red"}

// PairingColors returns complementary color terms for the first recognized
// color present in the seed's color list, nil when none match.
func PairingColors(seedColors string) []string {
	for _, c := range pairingColorOrder {
		if contains(seedColors, c) {
			return complementaryColors[c]
		}
	}
	return nil
}

// DefaultSuggestions backs the no-results message when nothing more specific
// can be offered.
var DefaultSuggestions = []string{"hoodies", "sweatshirts", "pants", "tops", "jackets"}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if contains(s, sub) {
			return true
		}
	}
	return false
}

// Vocab terms are lowercase; fold only the candidate side.
func contains(s, sub string) bool {
	return sub != "" && strings.Contains(strings.ToLower(s), sub)
}
