package ledger

import (
	"testing"
	"time"

	"github.com/GregMSThompson/cashflow-backend/internal/models"
)

func TestProgressWithDeadline(t *testing.T) {
	now := time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC)
	goal := models.InvestmentGoal{
		GoalID:       "g",
		TargetValue:  dec("10000"),
		CurrentValue: dec("2500"),
		Deadline:     "2025-09-30",
	}

	gp := Progress(goal, now)

	if !gp.Remaining.Equal(dec("7500")) {
		t.Errorf("Remaining = %s", gp.Remaining)
	}
	if !gp.Progress.Equal(dec("25")) {
		t.Errorf("Progress = %s", gp.Progress)
	}
	if gp.MonthsLeft == nil || *gp.MonthsLeft != 6 {
		t.Fatalf("MonthsLeft = %v, want 6", gp.MonthsLeft)
	}
	if gp.MonthlyNeeded == nil || !gp.MonthlyNeeded.Equal(dec("1250")) {
		t.Fatalf("MonthlyNeeded = %v, want 1250", gp.MonthlyNeeded)
	}
	if gp.Reached || gp.Overdue {
		t.Errorf("unexpected flags: %+v", gp)
	}
}

func TestProgressRoundsMonthlyNeededUp(t *testing.T) {
	now := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	gp := Progress(models.InvestmentGoal{TargetValue: dec("100"), CurrentValue: dec("0"), Deadline: "2025-04-01"}, now)

	if gp.MonthlyNeeded == nil || !gp.MonthlyNeeded.Equal(dec("33.34")) {
		t.Fatalf("MonthlyNeeded = %v, want 33.34", gp.MonthlyNeeded)
	}
}

func TestProgressDeadlineThisMonth(t *testing.T) {
	now := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	gp := Progress(models.InvestmentGoal{TargetValue: dec("100"), CurrentValue: dec("40"), Deadline: "2025-01-20"}, now)

	if gp.MonthsLeft == nil || *gp.MonthsLeft != 1 || !gp.MonthlyNeeded.Equal(dec("60")) {
		t.Fatalf("unexpected plan: %+v", gp)
	}
}

func TestProgressOverdueAndReached(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	overdue := Progress(models.InvestmentGoal{TargetValue: dec("100"), CurrentValue: dec("10"), Deadline: "2025-05-31"}, now)
	if !overdue.Overdue || overdue.MonthsLeft != nil {
		t.Fatalf("expected overdue without plan: %+v", overdue)
	}

	reached := Progress(models.InvestmentGoal{TargetValue: dec("100"), CurrentValue: dec("120"), Deadline: "2025-05-31"}, now)
	if !reached.Reached || reached.Overdue || !reached.Remaining.IsZero() {
		t.Fatalf("expected reached: %+v", reached)
	}
	if !reached.Progress.Equal(dec("120")) {
		t.Fatalf("Progress = %s, want 120", reached.Progress)
	}
}

func TestProgressWithoutDeadline(t *testing.T) {
	gp := Progress(models.InvestmentGoal{TargetValue: dec("0"), CurrentValue: dec("0")}, time.Now())
	if !gp.Progress.IsZero() || gp.MonthsLeft != nil {
		t.Fatalf("unexpected: %+v", gp)
	}
}
