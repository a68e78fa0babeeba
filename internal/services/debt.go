package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/ledger"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
	"github.com/GregMSThompson/cashflow-backend/pkg/logger"
)

type debtDSStore interface {
	Create(ctx context.Context, uid string, d *models.Debt) error
	Get(ctx context.Context, uid, debtID string) (*models.Debt, error)
	List(ctx context.Context, uid string) ([]models.Debt, error)
	Delete(ctx context.Context, uid, debtID string) error
	ListPayments(ctx context.Context, uid, debtID string) ([]models.DebtPayment, error)
	WithLedger(ctx context.Context, uid, debtID string, fn func(ledger.Book) (ledger.Book, error)) error
}

type debtService struct {
	debts    debtDSStore
	clockNow func() time.Time
	newID    func() string
}

func NewDebtService(debts debtDSStore) *debtService {
	return &debtService{
		debts:    debts,
		clockNow: time.Now,
		newID:    uuid.NewString,
	}
}

func (s *debtService) Create(ctx context.Context, uid string, req dto.CreateDebtRequest) (*models.Debt, error) {
	if err := validateDebtTerms(req); err != nil {
		return nil, err
	}
	if err := validateNonNegative("paidValue", req.PaidValue); err != nil {
		return nil, err
	}
	if req.PaidValue.GreaterThan(req.TotalValue) {
		return nil, errs.NewValidationError("paidValue must not exceed totalValue")
	}

	now := s.clockNow()
	debt := &models.Debt{
		DebtID:             s.newID(),
		Name:               strings.TrimSpace(req.Name),
		TotalValue:         req.TotalValue,
		MonthlyInstallment: req.MonthlyInstallment,
		PaidValue:          req.PaidValue,
		StartDate:          req.StartDate,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.debts.Create(ctx, uid, debt); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("debt created", "debt_id", debt.DebtID, "total_value", debt.TotalValue.String())
	return debt, nil
}

func (s *debtService) Get(ctx context.Context, uid, debtID string) (*models.Debt, error) {
	return s.debts.Get(ctx, uid, debtID)
}

func (s *debtService) List(ctx context.Context, uid string) ([]models.Debt, error) {
	return s.debts.List(ctx, uid)
}

// Update replaces the debt's terms inside the ledger unit of work so a concurrent payment
// cannot be lost. PaidValue is left as the ledger has it.
func (s *debtService) Update(ctx context.Context, uid, debtID string, req dto.UpdateDebtRequest) (*models.Debt, error) {
	terms := dto.CreateDebtRequest{
		Name:               req.Name,
		TotalValue:         req.TotalValue,
		MonthlyInstallment: req.MonthlyInstallment,
		StartDate:          req.StartDate,
	}
	if err := validateDebtTerms(terms); err != nil {
		return nil, err
	}

	var updated models.Debt
	err := s.debts.WithLedger(ctx, uid, debtID, func(book ledger.Book) (ledger.Book, error) {
		if len(book.Debts) == 0 {
			return book, errs.NewNotFoundError("debt not found")
		}
		d := book.Debts[0]
		d.Name = strings.TrimSpace(req.Name)
		d.TotalValue = req.TotalValue
		d.MonthlyInstallment = req.MonthlyInstallment
		d.StartDate = req.StartDate
		d.UpdatedAt = s.clockNow()
		updated = d
		return ledger.Book{Debts: []models.Debt{d}, Payments: book.Payments}, nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("debt updated", "debt_id", debtID)
	return &updated, nil
}

// Delete removes the debt and all of its payments.
func (s *debtService) Delete(ctx context.Context, uid, debtID string) error {
	if _, err := s.debts.Get(ctx, uid, debtID); err != nil {
		return err
	}
	if err := s.debts.Delete(ctx, uid, debtID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("debt deleted", "debt_id", debtID)
	return nil
}

// AddPayment records a payment against an existing debt. An unknown debt aborts the unit of
// work before anything is written.
func (s *debtService) AddPayment(ctx context.Context, uid, debtID string, req dto.CreatePaymentRequest) (*models.DebtPayment, error) {
	if err := validatePositive("value", req.Value); err != nil {
		return nil, err
	}
	if err := validateDate("date", req.Date); err != nil {
		return nil, err
	}

	payment := models.DebtPayment{
		PaymentID: s.newID(),
		DebtID:    debtID,
		Value:     req.Value,
		Date:      req.Date,
		CreatedAt: s.clockNow(),
	}

	var paid string
	err := s.debts.WithLedger(ctx, uid, debtID, func(book ledger.Book) (ledger.Book, error) {
		next, outcome := ledger.ApplyPayment(book, payment)
		if outcome == ledger.DebtNotFound {
			return book, errs.NewNotFoundError("debt not found")
		}
		next.Debts[0].UpdatedAt = payment.CreatedAt
		paid = next.Debts[0].PaidValue.String()
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("debt payment recorded", "debt_id", debtID, "payment_id", payment.PaymentID, "paid_value", paid)
	return &payment, nil
}

func (s *debtService) RemovePayment(ctx context.Context, uid, debtID, paymentID string) error {
	log := logger.FromContext(ctx)

	err := s.debts.WithLedger(ctx, uid, debtID, func(book ledger.Book) (ledger.Book, error) {
		next, outcome := ledger.RetractPayment(book, paymentID)
		switch outcome {
		case ledger.PaymentNotFound:
			return book, errs.NewNotFoundError("payment not found")
		case ledger.DebtNotFound:
			log.Warn("removing payment of a missing debt", "debt_id", debtID, "payment_id", paymentID)
		}
		now := s.clockNow()
		for i := range next.Debts {
			next.Debts[i].UpdatedAt = now
		}
		return next, nil
	})
	if err != nil {
		return err
	}

	log.Info("debt payment removed", "debt_id", debtID, "payment_id", paymentID)
	return nil
}

// ListPayments returns the debt's payments, most recent first.
func (s *debtService) ListPayments(ctx context.Context, uid, debtID string) ([]models.DebtPayment, error) {
	if _, err := s.debts.Get(ctx, uid, debtID); err != nil {
		return nil, err
	}
	payments, err := s.debts.ListPayments(ctx, uid, debtID)
	if err != nil {
		return nil, err
	}
	return ledger.PaymentsForDebt(payments, debtID), nil
}

func (s *debtService) Stats(ctx context.Context, uid string) (ledger.DebtStats, error) {
	debts, err := s.debts.List(ctx, uid)
	if err != nil {
		return ledger.DebtStats{}, err
	}
	return ledger.Stats(debts), nil
}

func validateDebtTerms(req dto.CreateDebtRequest) error {
	if err := validateText("name", req.Name, maxNameLength); err != nil {
		return err
	}
	if err := validatePositive("totalValue", req.TotalValue); err != nil {
		return err
	}
	if err := validatePositive("monthlyInstallment", req.MonthlyInstallment); err != nil {
		return err
	}
	if req.MonthlyInstallment.GreaterThan(req.TotalValue) {
		return errs.NewValidationError("monthlyInstallment must not exceed totalValue")
	}
	return validateDate("startDate", req.StartDate)
}
