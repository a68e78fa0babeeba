package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/cashflow-backend/internal/models"
)

// GoalProgress is a goal's standing at a point in time.
type GoalProgress struct {
	GoalID    string          `json:"goalId"`
	Remaining decimal.Decimal `json:"remaining"`
	Progress  decimal.Decimal `json:"progress"` // percent, may exceed 100
	Reached   bool            `json:"reached"`
	Overdue   bool            `json:"overdue"`
	// Only set for goals with a deadline that has not passed.
	MonthsLeft    *int             `json:"monthsLeft,omitempty"`
	MonthlyNeeded *decimal.Decimal `json:"monthlyNeeded,omitempty"`
}

// Progress measures a goal against its target. The month the deadline falls in counts as a
// full month, so a deadline later this month needs the whole remainder now.
func Progress(goal models.InvestmentGoal, now time.Time) GoalProgress {
	remaining := goal.TargetValue.Sub(goal.CurrentValue)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	progress := decimal.Zero
	if goal.TargetValue.IsPositive() {
		progress = goal.CurrentValue.Mul(hundred).Div(goal.TargetValue)
	}

	gp := GoalProgress{
		GoalID:    goal.GoalID,
		Remaining: remaining,
		Progress:  progress,
		Reached:   goal.CurrentValue.GreaterThanOrEqual(goal.TargetValue),
	}

	if goal.Deadline == "" || gp.Reached {
		return gp
	}
	deadline, err := time.Parse(models.DateLayout, goal.Deadline)
	if err != nil {
		return gp
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if deadline.Before(today) {
		gp.Overdue = true
		return gp
	}

	months := (deadline.Year()-today.Year())*12 + int(deadline.Month()) - int(today.Month())
	if months < 1 {
		months = 1
	}
	needed := remaining.Div(decimal.NewFromInt(int64(months))).RoundUp(2)
	gp.MonthsLeft = &months
	gp.MonthlyNeeded = &needed
	return gp
}
