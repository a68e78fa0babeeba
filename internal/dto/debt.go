package dto

import "github.com/shopspring/decimal"

type CreateDebtRequest struct {
	Name               string          `json:"name"`
	TotalValue         decimal.Decimal `json:"totalValue"`
	MonthlyInstallment decimal.Decimal `json:"monthlyInstallment"`
	PaidValue          decimal.Decimal `json:"paidValue"`
	StartDate          string          `json:"startDate"`
}

// UpdateDebtRequest replaces the editable fields. PaidValue only moves through payments.
type UpdateDebtRequest struct {
	Name               string          `json:"name"`
	TotalValue         decimal.Decimal `json:"totalValue"`
	MonthlyInstallment decimal.Decimal `json:"monthlyInstallment"`
	StartDate          string          `json:"startDate"`
}

type CreatePaymentRequest struct {
	Value decimal.Decimal `json:"value"`
	Date  string          `json:"date"`
}
