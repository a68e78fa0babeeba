package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Debt struct {
	DebtID             string          `json:"debtId"`
	Name               string          `json:"name"`
	TotalValue         decimal.Decimal `json:"totalValue"`
	MonthlyInstallment decimal.Decimal `json:"monthlyInstallment"`
	PaidValue          decimal.Decimal `json:"paidValue"` // cached sum of the debt's payments
	StartDate          string          `json:"startDate"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

type DebtPayment struct {
	PaymentID string          `json:"paymentId"`
	DebtID    string          `json:"debtId"`
	Value     decimal.Decimal `json:"value"`
	Date      string          `json:"date"`
	CreatedAt time.Time       `json:"createdAt"`
}
