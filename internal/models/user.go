package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	UID           string          `json:"uid"`
	Email         string          `json:"email"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"` // baseline income used by projections
	Currency      string          `json:"currency"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
