package services

import (
	"errors"
	"testing"
	"time"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
	"github.com/GregMSThompson/cashflow-backend/pkg/helpers"
)

func TestGoalServiceCreateAndContribute(t *testing.T) {
	store := newFakeGoalStore()
	svc := NewGoalService(store)
	svc.newID = func() string { return "g1" }
	now := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	svc.clockNow = func() time.Time { return now }
	ctx := helpers.TestCtx()

	goal, err := svc.Create(ctx, "uid", dto.GoalRequest{Name: "Trip", TargetValue: dec("1200"), CurrentValue: dec("0"), Deadline: "2025-06-30"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if goal.GoalID != "g1" {
		t.Fatalf("unexpected goal id %q", goal.GoalID)
	}

	goal, err = svc.Contribute(ctx, "uid", "g1", dec("200"))
	if err != nil {
		t.Fatalf("Contribute returned error: %v", err)
	}
	if !goal.CurrentValue.Equal(dec("200")) {
		t.Fatalf("current = %s, want 200", goal.CurrentValue)
	}
	if got := store.goals["g1"].UpdatedAt; !got.Equal(now) {
		t.Fatalf("stored UpdatedAt = %v, want %v", got, now)
	}

	progress, err := svc.Progress(ctx, "uid", "g1")
	if err != nil {
		t.Fatalf("Progress returned error: %v", err)
	}
	if !progress.Remaining.Equal(dec("1000")) || progress.MonthsLeft == nil || *progress.MonthsLeft != 5 {
		t.Fatalf("unexpected progress: %+v", progress)
	}
}

func TestGoalServiceValidation(t *testing.T) {
	svc := NewGoalService(newFakeGoalStore(models.InvestmentGoal{GoalID: "g1", Name: "Trip", TargetValue: dec("10")}))
	ctx := helpers.TestCtx()
	var ve *errs.ValidationError

	for _, req := range []dto.GoalRequest{
		{Name: "", TargetValue: dec("10")},
		{Name: "x", TargetValue: dec("0")},
		{Name: "x", TargetValue: dec("10"), CurrentValue: dec("-1")},
		{Name: "x", TargetValue: dec("10"), Deadline: "soon"},
	} {
		if _, err := svc.Create(ctx, "uid", req); !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError for %+v, got %v", req, err)
		}
	}

	if _, err := svc.Contribute(ctx, "uid", "g1", dec("0")); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for zero contribution, got %v", err)
	}
}

func TestGoalServiceMissingGoal(t *testing.T) {
	svc := NewGoalService(newFakeGoalStore())
	ctx := helpers.TestCtx()
	var nf *errs.NotFoundError

	if _, err := svc.Contribute(ctx, "uid", "ghost", dec("1")); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err := svc.Delete(ctx, "uid", "ghost"); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if _, err := svc.Update(ctx, "uid", "ghost", dto.GoalRequest{Name: "x", TargetValue: dec("1")}); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
