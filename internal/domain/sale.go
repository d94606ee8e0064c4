package domain

import "github.com/shopspring/decimal"

// Sale is one recorded transaction in the ledger, either a registered
// invoice or a quick manual amount.
type Sale struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`      // ISO 8601
	Timestamp int64           `json:"timestamp"` // unix seconds, index key
	Items     []InvoiceItem   `json:"items,omitempty"`
	Total     decimal.Decimal `json:"total"`
	Note      string          `json:"note,omitempty"`
}

// SalesSummary aggregates the ledger for the dashboard view.
type SalesSummary struct {
	TodayTotal decimal.Decimal `json:"today_total"`
	WeekTotal  decimal.Decimal `json:"week_total"`
	MonthTotal decimal.Decimal `json:"month_total"`
	Weekly     []DailyTotal    `json:"weekly"`
}

// DailyTotal is one bar of the last-7-days chart. Height is the bar height
// as a percentage of the busiest day (0-100).
type DailyTotal struct {
	Day    string          `json:"day"`
	Total  decimal.Decimal `json:"total"`
	Height int             `json:"height"`
}
