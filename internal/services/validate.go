package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
)

const (
	monthLayout          = "2006-01"
	maxDescriptionLength = 200
	maxNameLength        = 100
)

func validateDate(field, value string) error {
	if _, err := time.Parse(models.DateLayout, value); err != nil {
		return errs.NewValidationError(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
	}
	return nil
}

func validatePositive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return errs.NewValidationError(field + " must be greater than zero")
	}
	return nil
}

func validateNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return errs.NewValidationError(field + " must not be negative")
	}
	return nil
}

func validateText(field, value string, max int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n == 0 {
		return errs.NewValidationError(field + " is required")
	}
	if n > max {
		return errs.NewValidationError(fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return nil
}

// parseMonth reads a YYYY-MM month, falling back to the month containing now when empty.
func parseMonth(month string, now time.Time) (time.Time, error) {
	if month == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, errs.NewValidationError("month must be in YYYY-MM format")
	}
	return t, nil
}
