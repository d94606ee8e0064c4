package domain

import "github.com/shopspring/decimal"

// Product is one catalog entry the assistant can match utterances against.
// Keywords are stored lowercase and accent-free; every product carries at
// least one keyword derived from its name.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit"` // display unit label: "lb", "unidad", "botella"
	Keywords []string        `json:"keywords"`
}
