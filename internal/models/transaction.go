package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for every date field (no time of day).
const DateLayout = "2006-01-02"

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

type Transaction struct {
	TransactionID string          `json:"transactionId"`
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`
	Date          string          `json:"date"` // YYYY-MM-DD, the day the movement is attributed to
	Description   string          `json:"description"`
	Value         decimal.Decimal `json:"value"` // always > 0, sign carried by Type
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
