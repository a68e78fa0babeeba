package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
	"github.com/GregMSThompson/cashflow-backend/pkg/helpers"
)

func expense(id, date, value string) models.Transaction {
	return models.Transaction{TransactionID: id, Type: models.TransactionExpense, Category: "food", Date: date, Description: id, Value: dec(value)}
}

func TestProjectionServiceMonthProjection(t *testing.T) {
	users := &stubUserStore{user: &models.User{UID: "uid", MonthlyIncome: dec("3000")}}
	txs := newFakeTransactionStore(
		expense("a", "2025-01-05", "1000"),
		expense("b", "2025-01-15", "500"),
		expense("old", "2024-12-31", "9999"),
	)
	svc := NewProjectionService(users, txs)
	svc.clockNow = func() time.Time { return time.Date(2025, time.January, 15, 18, 0, 0, 0, time.UTC) }

	p, err := svc.MonthProjection(helpers.TestCtx(), "uid", nil)
	if err != nil {
		t.Fatalf("MonthProjection returned error: %v", err)
	}

	if helpers.Value(txs.lastQuery.DateFrom) != "2025-01-01" || helpers.Value(txs.lastQuery.DateTo) != "2025-01-31" {
		t.Fatalf("unexpected query range: %+v", txs.lastQuery)
	}
	if !p.TotalExpenses.Equal(dec("1500")) || !p.ProjectedMonthlyExpenses.Equal(dec("3100")) {
		t.Fatalf("unexpected expenses: %+v", p)
	}
	if !p.ProjectedBalance.Equal(dec("-100")) || p.IsPositive {
		t.Fatalf("unexpected balance: %s", p.ProjectedBalance)
	}
	if p.DaysUntilNegative == nil || *p.DaysUntilNegative != 15 {
		t.Fatalf("unexpected days until negative: %v", p.DaysUntilNegative)
	}
}

func TestProjectionServiceIncomeOverride(t *testing.T) {
	txs := newFakeTransactionStore(expense("a", "2025-01-10", "100"))
	svc := NewProjectionService(&stubUserStore{}, txs)
	svc.clockNow = func() time.Time { return time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC) }

	income := dec("5000")
	p, err := svc.MonthProjection(helpers.TestCtx(), "uid", &income)
	if err != nil {
		t.Fatalf("MonthProjection returned error: %v", err)
	}
	if !p.BaselineIncome.Equal(income) || !p.IsPositive || p.DaysUntilNegative != nil {
		t.Fatalf("unexpected projection: %+v", p)
	}

	negative := dec("-1")
	_, err = svc.MonthProjection(helpers.TestCtx(), "uid", &negative)
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestProjectionServiceMissingProfile(t *testing.T) {
	svc := NewProjectionService(&stubUserStore{}, newFakeTransactionStore())

	_, err := svc.MonthProjection(helpers.TestCtx(), "uid", nil)
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestProjectionServiceWhatIf(t *testing.T) {
	users := &stubUserStore{user: &models.User{UID: "uid", MonthlyIncome: dec("2000")}}
	svc := NewProjectionService(users, newFakeTransactionStore())

	p, err := svc.WhatIf(helpers.TestCtx(), "uid", dec("2500"), nil)
	if err != nil {
		t.Fatalf("WhatIf returned error: %v", err)
	}
	if !p.ProjectedBalance.Equal(dec("-500")) || p.IsPositive || p.DaysUntilNegative != nil {
		t.Fatalf("unexpected projection: %+v", p)
	}
	if !p.DailyAverageExpense.IsZero() {
		t.Fatalf("daily average = %s, want 0", p.DailyAverageExpense)
	}

	_, err = svc.WhatIf(helpers.TestCtx(), "uid", decimal.NewFromInt(-1), nil)
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
