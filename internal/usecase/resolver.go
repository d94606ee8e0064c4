package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/tiendafacil/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	// currencySymbolRegex matches symbol prices: "$2", "$ 2.50"
	currencySymbolRegex = regexp.MustCompile(`\$\s*(\d+(?:\.\d+)?)`)

	// currencyWordRegex matches worded prices: "2 dolares", "2.50 pesos", "5 usd"
	currencyWordRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(dolares|pesos|usd)\b`)
)

var one = decimal.NewFromInt(1)

// correctSpelling rewrites each token through the misspelling table;
// unknown tokens pass through unchanged.
func correctSpelling(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		if fixed, ok := misspellings[word]; ok {
			words[i] = fixed
		}
	}
	return strings.Join(words, " ")
}

// extractExplicitPrice pulls a stated price out of the candidate text and
// returns the remaining text with the matched span removed. A stated price
// overrides the catalog price for that line.
func extractExplicitPrice(text string) (decimal.Decimal, bool, string) {
	for _, pattern := range []*regexp.Regexp{currencySymbolRegex, currencyWordRegex} {
		match := pattern.FindStringSubmatchIndex(text)
		if match == nil {
			continue
		}
		price, err := decimal.NewFromString(text[match[2]:match[3]])
		if err != nil {
			continue
		}
		remaining := strings.TrimSpace(text[:match[0]] + " " + text[match[1]:])
		return price, true, remaining
	}
	return decimal.Zero, false, text
}

// parseQuantity converts a segmentation anchor into a quantity. Digit
// literals accept both "." and "," decimals; spelled numbers go through the
// number-word table. Anything unparseable degrades to 1.
func parseQuantity(anchor string) decimal.Decimal {
	if anchor == "" {
		return one
	}
	if numericTokenRegex.MatchString(anchor) {
		if value, err := decimal.NewFromString(strings.ReplaceAll(anchor, ",", ".")); err == nil {
			return value
		}
	}
	if value, ok := numberWords[anchor]; ok {
		return value
	}
	return one
}

// formatQuantityLabel renders the display quantity: "2 lb", "0.5 libra".
// Units other than "lb" pluralize above one.
func formatQuantityLabel(quantity decimal.Decimal, unit string) string {
	if quantity.GreaterThan(one) && unit != "lb" {
		unit += "s"
	}
	return quantity.String() + " " + unit
}

// adHocLabel derives a display name for a line that matched no catalog
// product, capitalizing the free text the user gave.
func adHocLabel(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "Varios"
	}
	r := []rune(text)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// resolveCandidate turns one segmentation candidate into an invoice line.
// Steps, in order: spelling correction, explicit price extraction, quantity
// parsing, catalog matching, price resolution.
//
// include reports whether the line belongs on the invoice at all;
// resolvable reports whether it matched a product or carried an explicit
// price (flagged not-found lines count as included but not resolvable).
func (s *AssistantService) resolveCandidate(
	cand lineItemCandidate,
	products []domain.Product,
) (item domain.InvoiceItem, include, resolvable bool) {
	text := correctSpelling(cand.text())

	explicitPrice, hasExplicit, text := extractExplicitPrice(text)
	quantity := parseQuantity(cand.anchor)

	searchText := strings.TrimSpace(strings.TrimPrefix(text, "de "))
	product := s.findProduct(searchText, products)

	switch {
	case product != nil:
		unitPrice := product.Price
		label := product.Name
		if hasExplicit {
			unitPrice = explicitPrice
			label += " (Precio manual)"
		}
		return domain.InvoiceItem{
			Quantity:  formatQuantityLabel(quantity, product.Unit),
			Product:   label,
			UnitPrice: unitPrice,
			Subtotal:  quantity.Mul(unitPrice).Round(2),
		}, true, true

	case hasExplicit:
		return domain.InvoiceItem{
			Quantity:  quantity.String(),
			Product:   adHocLabel(searchText),
			UnitPrice: explicitPrice,
			Subtotal:  quantity.Mul(explicitPrice).Round(2),
		}, true, true

	case s.unmatchedPolicy == UnmatchedFlag && searchText != "":
		return domain.InvoiceItem{
			Quantity:  quantity.String(),
			Product:   adHocLabel(searchText) + " (No encontrado)",
			UnitPrice: decimal.Zero,
			Subtotal:  decimal.Zero,
		}, true, false

	default:
		return domain.InvoiceItem{}, false, false
	}
}
