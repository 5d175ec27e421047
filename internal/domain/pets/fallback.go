package pets

import "strings"

// fallbackTypes se revisan en este orden y gana el primero que aparece en el texto.
var fallbackTypes = []string{"dog", "cat", "bird", "fish"}

var (
	expensiveWords = []string{"expensive", "costlier", "costly"}
	cheapWords     = []string{"cheap", "affordable"}
)

// KeywordFilter es el camino sin LLM: tipo por substring y orden por palabras clave.
// Sin palabras de precio se respeta el orden de entrada.
func KeywordFilter(text string, all []Pet) QueryResult {
	q := strings.ToLower(text)

	filtered := make([]Pet, len(all))
	copy(filtered, all)

	for _, t := range fallbackTypes {
		if strings.Contains(q, t) {
			filtered = filterByType(filtered, t)
			break
		}
	}

	switch {
	case containsAny(q, expensiveWords):
		sortPets(filtered, SortPriceDesc)
	case containsAny(q, cheapWords):
		sortPets(filtered, SortPriceAsc)
	}

	return QueryResult{
		Pets:           truncate(filtered),
		Count:          len(filtered),
		FiltersApplied: map[string]any{"fallback": true},
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
