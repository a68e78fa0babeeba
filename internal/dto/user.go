package dto

import "github.com/shopspring/decimal"

type CreateUserRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

type UpdateSettingsRequest struct {
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"`
	Currency      string          `json:"currency"`
}
