// Package ledger keeps a debt's cached paid amount consistent with its payments and folds
// debts into portfolio statistics. Functions never mutate their inputs; they return fresh
// snapshots that the caller persists.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/cashflow-backend/internal/models"
)

// Book is one user's debt ledger snapshot.
type Book struct {
	Debts    []models.Debt
	Payments []models.DebtPayment
}

// Outcome tags what a ledger mutation actually did.
type Outcome string

const (
	Applied         Outcome = "applied"
	DebtNotFound    Outcome = "debt_not_found"
	PaymentNotFound Outcome = "payment_not_found"
)

var hundred = decimal.NewFromInt(100)

// ApplyPayment records payment and adds its value to the referenced debt. Overpayment is not
// clamped. When the debt is missing the payment is still recorded and DebtNotFound is returned.
func ApplyPayment(book Book, payment models.DebtPayment) (Book, Outcome) {
	out := Book{
		Debts:    cloneDebts(book.Debts),
		Payments: append(clonePayments(book.Payments), payment),
	}

	i := indexOfDebt(out.Debts, payment.DebtID)
	if i < 0 {
		return out, DebtNotFound
	}
	out.Debts[i].PaidValue = out.Debts[i].PaidValue.Add(payment.Value)
	return out, Applied
}

// RetractPayment removes a payment and takes its value off the debt, never below zero.
// An unknown paymentID leaves the book untouched.
func RetractPayment(book Book, paymentID string) (Book, Outcome) {
	pi := -1
	for i, p := range book.Payments {
		if p.PaymentID == paymentID {
			pi = i
			break
		}
	}
	if pi < 0 {
		return book, PaymentNotFound
	}
	removed := book.Payments[pi]

	payments := make([]models.DebtPayment, 0, len(book.Payments)-1)
	payments = append(payments, book.Payments[:pi]...)
	payments = append(payments, book.Payments[pi+1:]...)
	out := Book{Debts: cloneDebts(book.Debts), Payments: payments}

	di := indexOfDebt(out.Debts, removed.DebtID)
	if di < 0 {
		return out, DebtNotFound
	}
	paid := out.Debts[di].PaidValue.Sub(removed.Value)
	if paid.IsNegative() {
		paid = decimal.Zero
	}
	out.Debts[di].PaidValue = paid
	return out, Applied
}

// DebtStats summarises a set of debts. TotalRemaining goes negative when debts are overpaid.
type DebtStats struct {
	TotalDebt       decimal.Decimal `json:"totalDebt"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	TotalRemaining  decimal.Decimal `json:"totalRemaining"`
	OverallProgress decimal.Decimal `json:"overallProgress"` // percent
	Count           int             `json:"count"`
}

// Stats totals the debts. OverallProgress is zero when there is no debt.
func Stats(debts []models.Debt) DebtStats {
	totalDebt := decimal.Zero
	totalPaid := decimal.Zero
	for _, d := range debts {
		totalDebt = totalDebt.Add(d.TotalValue)
		totalPaid = totalPaid.Add(d.PaidValue)
	}

	progress := decimal.Zero
	if totalDebt.IsPositive() {
		progress = totalPaid.Mul(hundred).Div(totalDebt)
	}

	return DebtStats{
		TotalDebt:       totalDebt,
		TotalPaid:       totalPaid,
		TotalRemaining:  totalDebt.Sub(totalPaid),
		OverallProgress: progress,
		Count:           len(debts),
	}
}

// PaymentsForDebt returns the debt's payments, most recent first.
func PaymentsForDebt(payments []models.DebtPayment, debtID string) []models.DebtPayment {
	out := make([]models.DebtPayment, 0)
	for _, p := range payments {
		if p.DebtID == debtID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func indexOfDebt(debts []models.Debt, debtID string) int {
	for i, d := range debts {
		if d.DebtID == debtID {
			return i
		}
	}
	return -1
}

func cloneDebts(debts []models.Debt) []models.Debt {
	return append(make([]models.Debt, 0, len(debts)), debts...)
}

func clonePayments(payments []models.DebtPayment) []models.DebtPayment {
	return append(make([]models.DebtPayment, 0, len(payments)+1), payments...)
}
