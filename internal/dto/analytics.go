package dto

import "github.com/shopspring/decimal"

type MonthSummary struct {
	Month    string          `json:"month"` // YYYY-MM
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
	Count    int             `json:"count"`
	Currency string          `json:"currency,omitempty"`
}

type CategoryBreakdownItem struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Percent  decimal.Decimal `json:"percent"`
	Count    int             `json:"count"`
}

type CategoryBreakdown struct {
	Month    string                  `json:"month"`
	Type     string                  `json:"type"`
	Total    decimal.Decimal         `json:"total"`
	Currency string                  `json:"currency,omitempty"`
	Items    []CategoryBreakdownItem `json:"items"`
}
