package usecase

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tiendafacil/backend/internal/domain"
)

// UnmatchedPolicy controls what happens to candidates that match no catalog
// product and carry no explicit price.
type UnmatchedPolicy string

const (
	// UnmatchedDrop silently discards unresolvable candidates.
	UnmatchedDrop UnmatchedPolicy = "drop"
	// UnmatchedFlag keeps them as zero-value "(No encontrado)" lines.
	UnmatchedFlag UnmatchedPolicy = "flag"
)

// AssistantConfig holds configuration for the assistant service
type AssistantConfig struct {
	UnmatchedPolicy     UnmatchedPolicy
	EnableFuzzyMatching bool
	FuzzyEditDistance   int
}

// AssistantService turns free-form Spanish order utterances into invoices,
// price quotes or a clarification fallback. It holds no mutable state:
// Reply reads only its arguments, so concurrent calls are independent.
type AssistantService struct {
	unmatchedPolicy     UnmatchedPolicy
	enableFuzzyMatching bool
	fuzzyEditDistance   int
}

// NewAssistantService creates a new assistant service with the given configuration
func NewAssistantService(config AssistantConfig) *AssistantService {
	policy := config.UnmatchedPolicy
	if policy != UnmatchedFlag {
		policy = UnmatchedDrop
	}

	dist := config.FuzzyEditDistance
	if dist <= 0 {
		dist = 1 // default edit distance of 1
	}

	return &AssistantService{
		unmatchedPolicy:     policy,
		enableFuzzyMatching: config.EnableFuzzyMatching,
		fuzzyEditDistance:   dist,
	}
}

// Reply runs the full pipeline over one utterance against a read-only
// catalog snapshot. It is total: every input maps to a price quote, an
// invoice, or the fallback message — never an error.
func (s *AssistantService) Reply(input string, products []domain.Product) domain.Reply {
	normalized := Normalize(input)

	if isPriceQuery(normalized) {
		return s.priceQueryReply(normalized, products)
	}

	candidates := segment(normalized)
	slog.Debug("segmented utterance", "input", input, "candidates", len(candidates))

	var items []domain.InvoiceItem
	resolvable := 0
	total := decimal.Zero

	for _, cand := range candidates {
		item, include, ok := s.resolveCandidate(cand, products)
		if !include {
			continue
		}
		items = append(items, item)
		total = total.Add(item.Subtotal)
		if ok {
			resolvable++
		}
	}

	if resolvable == 0 {
		return domain.Reply{Type: domain.ReplyFallback, Message: fallbackMessage}
	}

	return domain.Reply{
		Type: domain.ReplyInvoice,
		Invoice: &domain.Invoice{
			Items:      items,
			TotalItems: len(items),
			GrandTotal: total.Round(2),
		},
	}
}

// isPriceQuery reports whether the utterance asks for a price instead of
// placing an order. Any digit flips the interpretation back to an order:
// "vale 2" reads as a quantity, not a lookup.
func isPriceQuery(normalized string) bool {
	if digitRegex.MatchString(normalized) {
		return false
	}
	for _, phrase := range priceQueryPhrases {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}

// priceQueryReply answers a price lookup by matching the whole utterance
// against the catalog.
func (s *AssistantService) priceQueryReply(normalized string, products []domain.Product) domain.Reply {
	product := s.findProduct(normalized, products)
	if product == nil {
		return domain.Reply{Type: domain.ReplyPriceQuote, Message: priceNotFoundMessage}
	}

	return domain.Reply{
		Type: domain.ReplyPriceQuote,
		Message: fmt.Sprintf("El precio de %s es $%s por %s.",
			product.Name, product.Price.StringFixed(2), product.Unit),
	}
}
