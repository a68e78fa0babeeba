package dto

import "github.com/shopspring/decimal"

type TransactionQuery struct {
	Type     *string
	Category *string
	DateFrom *string
	DateTo   *string
	Desc     bool
	Limit    int
}

// TransactionRequest is the body for creating or replacing a transaction.
type TransactionRequest struct {
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

type ImportTransactionsRequest struct {
	Transactions []TransactionRequest `json:"transactions"`
}
