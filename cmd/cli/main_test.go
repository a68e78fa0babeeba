package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
	"github.com/GregMSThompson/cashflow-backend/internal/store/sqlite"
)

type cliEnv struct {
	cfgPath string
	dbPath  string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	dir := t.TempDir()
	return cliEnv{
		cfgPath: filepath.Join(dir, "config.toml"),
		dbPath:  filepath.Join(dir, "cashflow.db"),
	}
}

func (e cliEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(append([]string{"--config", e.cfgPath, "--db", e.dbPath}, args...))
	return rootCmd.Execute()
}

// open returns a second handle on the database; callers close it before the next run.
func (e cliEnv) open(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(e.dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return db
}

func TestConfigIncomeSyncsIntoProfile(t *testing.T) {
	env := newCLIEnv(t)

	if err := env.run(t, "config", "set-income", "3000"); err != nil {
		t.Fatalf("set-income: %v", err)
	}
	if err := env.run(t, "config", "set-currency", "eur"); err != nil {
		t.Fatalf("set-currency: %v", err)
	}
	if err := env.run(t, "projection"); err != nil {
		t.Fatalf("projection: %v", err)
	}

	db := env.open(t)
	defer db.Close()
	user, err := sqlite.NewUserStore(db).GetUser(context.Background(), localUID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.MonthlyIncome.String() != "3000" || user.Currency != "EUR" {
		t.Fatalf("profile not synced: income=%s currency=%s", user.MonthlyIncome, user.Currency)
	}
}

func TestTxAddAndList(t *testing.T) {
	env := newCLIEnv(t)
	today := time.Now().Format(models.DateLayout)

	if err := env.run(t, "tx", "add", "expense", "1200.50", "--date", today, "--category", "housing", "-m", "rent"); err != nil {
		t.Fatalf("tx add: %v", err)
	}
	if err := env.run(t, "tx", "list"); err != nil {
		t.Fatalf("tx list: %v", err)
	}

	db := env.open(t)
	defer db.Close()
	txs, err := sqlite.NewTransactionStore(db).List(context.Background(), localUID, dto.TransactionQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txs) != 1 || txs[0].Value.String() != "1200.5" || txs[0].Category != "housing" {
		t.Fatalf("unexpected transactions: %+v", txs)
	}
}

func TestTxAddRejectsBadAmount(t *testing.T) {
	env := newCLIEnv(t)
	err := env.run(t, "tx", "add", "expense", "abc", "--category", "food", "-m", "coffee")
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDebtPayAndUnpay(t *testing.T) {
	env := newCLIEnv(t)
	if err := env.run(t, "debt", "add", "car", "1000", "--installment", "100", "--start", "2026-01-01"); err != nil {
		t.Fatalf("debt add: %v", err)
	}

	db := env.open(t)
	debts, err := sqlite.NewDebtStore(db).List(context.Background(), localUID)
	if err != nil || len(debts) != 1 {
		t.Fatalf("list debts: %v %+v", err, debts)
	}
	debtID := debts[0].DebtID
	db.Close()

	if err := env.run(t, "debt", "pay", debtID, "250", "--date", "2026-02-01"); err != nil {
		t.Fatalf("debt pay: %v", err)
	}
	if err := env.run(t, "debt", "pay", "missing", "250"); err == nil {
		t.Fatalf("expected error paying unknown debt")
	}

	db = env.open(t)
	store := sqlite.NewDebtStore(db)
	debt, err := store.Get(context.Background(), localUID, debtID)
	if err != nil {
		t.Fatalf("get debt: %v", err)
	}
	if debt.PaidValue.String() != "250" {
		t.Fatalf("paid = %s, want 250", debt.PaidValue)
	}
	payments, err := store.ListPayments(context.Background(), localUID, debtID)
	if err != nil || len(payments) != 1 {
		t.Fatalf("payments: %v %+v", err, payments)
	}
	paymentID := payments[0].PaymentID
	db.Close()

	if err := env.run(t, "debt", "unpay", debtID, paymentID); err != nil {
		t.Fatalf("debt unpay: %v", err)
	}
	if err := env.run(t, "debt", "stats"); err != nil {
		t.Fatalf("debt stats: %v", err)
	}

	db = env.open(t)
	defer db.Close()
	debt, err = sqlite.NewDebtStore(db).Get(context.Background(), localUID, debtID)
	if err != nil {
		t.Fatalf("get debt: %v", err)
	}
	if !debt.PaidValue.IsZero() {
		t.Fatalf("paid = %s after unpay, want 0", debt.PaidValue)
	}
}

func TestDescribe(t *testing.T) {
	if got := describe(errs.NewNotFoundError("debt not found")); got != "debt not found" {
		t.Fatalf("describe = %q", got)
	}
	if got := describe(errs.NewValidationError("value must be positive")); got != "invalid input: value must be positive" {
		t.Fatalf("describe = %q", got)
	}
}
