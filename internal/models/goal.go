package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentGoal is a savings target the user contributes to over time.
type InvestmentGoal struct {
	GoalID       string          `json:"goalId"`
	Name         string          `json:"name"`
	TargetValue  decimal.Decimal `json:"targetValue"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	Deadline     string          `json:"deadline,omitempty"` // optional YYYY-MM-DD
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
