package dto

import "github.com/shopspring/decimal"

type GoalRequest struct {
	Name         string          `json:"name"`
	TargetValue  decimal.Decimal `json:"targetValue"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	Deadline     string          `json:"deadline,omitempty"`
}

type ContributionRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
