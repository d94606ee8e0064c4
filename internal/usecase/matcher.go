package usecase

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/tiendafacil/backend/internal/domain"
)

// findProduct returns the catalog product whose keyword best covers the
// text: every keyword that is a substring of the text competes, and the
// longest one wins independent of which product owns it. That deliberately
// favors specific multi-word keywords ("aceite mazola") over generic
// single-word ones ("aceite") when both appear.
//
// When fuzzy matching is enabled, single-word keywords may also match a
// token within the configured edit distance, but only when no substring
// match exists at all.
func (s *AssistantService) findProduct(text string, products []domain.Product) *domain.Product {
	var best *domain.Product
	bestLen := 0

	for i := range products {
		for _, keyword := range products[i].Keywords {
			kw := Normalize(keyword)
			if kw == "" {
				continue
			}
			if len(kw) > bestLen && strings.Contains(text, kw) {
				bestLen = len(kw)
				best = &products[i]
			}
		}
	}

	if best == nil && s.enableFuzzyMatching {
		return s.findProductFuzzy(text, products)
	}
	return best
}

// findProductFuzzy compares single-word keywords against individual tokens
// within the edit-distance threshold. Longest keyword still wins.
func (s *AssistantService) findProductFuzzy(text string, products []domain.Product) *domain.Product {
	tokens := strings.Fields(text)

	var best *domain.Product
	bestLen := 0

	for i := range products {
		for _, keyword := range products[i].Keywords {
			kw := Normalize(keyword)
			if strings.Contains(kw, " ") || len(kw) <= bestLen {
				continue
			}
			for _, token := range tokens {
				if fuzzyTokenMatch(token, kw, s.fuzzyEditDistance) {
					bestLen = len(kw)
					best = &products[i]
					break
				}
			}
		}
	}
	return best
}

// fuzzyTokenMatch reports whether two tokens are within the edit distance
// threshold. Tokens shorter than 4 characters are excluded to avoid false
// positives.
func fuzzyTokenMatch(token, keyword string, threshold int) bool {
	if token == keyword {
		return true
	}
	if len(token) < 4 || len(keyword) < 4 {
		return false
	}

	lenDiff := len(token) - len(keyword)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshtein.ComputeDistance(token, keyword) <= threshold
}
