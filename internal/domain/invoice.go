package domain

import "github.com/shopspring/decimal"

func init() {
	// Invoice amounts travel as bare JSON numbers, matching what the chat
	// UI renders and persists.
	decimal.MarshalJSONWithoutQuotes = true
}

// InvoiceItem is one resolved line of an invoice.
type InvoiceItem struct {
	Quantity  string          `json:"quantity"` // display label, e.g. "2 lb"
	Product   string          `json:"product"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Invoice is the structured result of an order utterance. Items keep the
// order in which they appeared in the utterance.
type Invoice struct {
	Items      []InvoiceItem   `json:"items"`
	TotalItems int             `json:"total_items"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// ReplyType discriminates the assistant's possible answers.
type ReplyType string

const (
	ReplyInvoice    ReplyType = "invoice"
	ReplyPriceQuote ReplyType = "price_quote"
	ReplyFallback   ReplyType = "fallback"
)

// Reply is the tagged union returned for every utterance. Invoice is set
// only when Type is ReplyInvoice; Message carries the text of the other
// two variants.
type Reply struct {
	Type    ReplyType `json:"type"`
	Message string    `json:"message,omitempty"`
	Invoice *Invoice  `json:"invoice,omitempty"`
}
