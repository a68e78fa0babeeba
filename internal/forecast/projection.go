// Package forecast extrapolates the spending recorded so far in a month into an estimate of
// the month-end balance. Everything here is a pure function of its arguments, including the
// reference instant, so callers own the clock.
package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/cashflow-backend/internal/models"
)

// Projection is the month-end estimate. TotalIncome is always BaselineIncome + ExtraIncome.
type Projection struct {
	BaselineIncome           decimal.Decimal `json:"baselineIncome"`
	ExtraIncome              decimal.Decimal `json:"extraIncome"`
	TotalIncome              decimal.Decimal `json:"totalIncome"`
	TotalExpenses            decimal.Decimal `json:"totalExpenses"`
	DailyAverageExpense      decimal.Decimal `json:"dailyAverageExpense"`
	ProjectedMonthlyExpenses decimal.Decimal `json:"projectedMonthlyExpenses"`
	ProjectedBalance         decimal.Decimal `json:"projectedBalance"`
	IsPositive               bool            `json:"isPositive"`
	// DaysUntilNegative is nil unless spending is under way and the projection is negative.
	DaysUntilNegative *int `json:"daysUntilNegative"`
	DayOfMonth        int  `json:"dayOfMonth,omitempty"`
	DaysInMonth       int  `json:"daysInMonth,omitempty"`
}

// Month projects the balance at the end of the calendar month containing now.
// Transactions outside that month, or with a date that does not parse, are ignored.
func Month(monthlyIncome decimal.Decimal, txs []models.Transaction, now time.Time) Projection {
	year, month, day := now.Date()
	daysInMonth := DaysIn(year, month)

	totalExpenses := decimal.Zero
	extraIncome := decimal.Zero
	for _, tx := range txs {
		if !InMonth(tx.Date, year, month) {
			continue
		}
		switch tx.Type {
		case models.TransactionExpense:
			totalExpenses = totalExpenses.Add(tx.Value)
		case models.TransactionIncome:
			extraIncome = extraIncome.Add(tx.Value)
		}
	}

	elapsed := decimal.NewFromInt(int64(day))
	length := decimal.NewFromInt(int64(daysInMonth))

	dailyAverage := decimal.Zero
	projectedExpenses := decimal.Zero
	if day > 0 {
		dailyAverage = totalExpenses.Div(elapsed)
		// expenses * days / elapsed rather than dailyAverage * days keeps exact results
		// when the average itself is a repeating decimal.
		projectedExpenses = totalExpenses.Mul(length).Div(elapsed)
	}

	totalIncome := monthlyIncome.Add(extraIncome)
	balance := totalIncome.Sub(projectedExpenses)

	p := Projection{
		BaselineIncome:           monthlyIncome,
		ExtraIncome:              extraIncome,
		TotalIncome:              totalIncome,
		TotalExpenses:            totalExpenses,
		DailyAverageExpense:      dailyAverage,
		ProjectedMonthlyExpenses: projectedExpenses,
		ProjectedBalance:         balance,
		IsPositive:               !balance.IsNegative(),
		DayOfMonth:               day,
		DaysInMonth:              daysInMonth,
	}

	if dailyAverage.IsPositive() && balance.IsNegative() {
		days := 0
		remaining := totalIncome.Sub(totalExpenses)
		if remaining.IsPositive() {
			// remaining / dailyAverage == remaining * elapsed / totalExpenses
			days = int(remaining.Mul(elapsed).Div(totalExpenses).Ceil().IntPart())
		}
		p.DaysUntilNegative = &days
	}

	return p
}

// Simple is the one-shot "what if I spend this now" preview: no extrapolation, no countdown.
func Simple(monthlyIncome, expense decimal.Decimal) Projection {
	balance := monthlyIncome.Sub(expense)
	return Projection{
		BaselineIncome:           monthlyIncome,
		ExtraIncome:              decimal.Zero,
		TotalIncome:              monthlyIncome,
		TotalExpenses:            expense,
		DailyAverageExpense:      decimal.Zero,
		ProjectedMonthlyExpenses: expense,
		ProjectedBalance:         balance,
		IsPositive:               !balance.IsNegative(),
	}
}

// DaysIn returns the number of days in the given month, leap years included.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// InMonth reports whether a YYYY-MM-DD date falls in year/month.
func InMonth(date string, year int, month time.Month) bool {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return false
	}
	return d.Year() == year && d.Month() == month
}

// MonthBounds returns the first and last calendar day of the month containing t, as dates.
func MonthBounds(t time.Time) (from, to string) {
	year, month, _ := t.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, month, DaysIn(year, month), 0, 0, 0, 0, time.UTC)
	return first.Format(models.DateLayout), last.Format(models.DateLayout)
}
