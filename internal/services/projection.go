package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/forecast"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
	"github.com/GregMSThompson/cashflow-backend/pkg/helpers"
	"github.com/GregMSThompson/cashflow-backend/pkg/logger"
)

type userPSStore interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type transactionPSStore interface {
	List(ctx context.Context, uid string, q dto.TransactionQuery) ([]models.Transaction, error)
}

type projectionService struct {
	users    userPSStore
	txs      transactionPSStore
	clockNow func() time.Time
}

func NewProjectionService(users userPSStore, txs transactionPSStore) *projectionService {
	return &projectionService{
		users:    users,
		txs:      txs,
		clockNow: time.Now,
	}
}

// MonthProjection forecasts the current month from the user's transactions. The profile's
// monthly income is used unless incomeOverride is set.
func (s *projectionService) MonthProjection(ctx context.Context, uid string, incomeOverride *decimal.Decimal) (forecast.Projection, error) {
	income, err := s.baselineIncome(ctx, uid, incomeOverride)
	if err != nil {
		return forecast.Projection{}, err
	}

	now := s.clockNow()
	from, to := forecast.MonthBounds(now)
	txs, err := s.txs.List(ctx, uid, dto.TransactionQuery{DateFrom: &from, DateTo: &to})
	if err != nil {
		return forecast.Projection{}, err
	}

	p := forecast.Month(income, txs, now)
	if logger.IsDebugEnabled(ctx) {
		logger.FromContext(ctx).Debug("month projection computed",
			"transactions", len(txs),
			"projected_balance", p.ProjectedBalance.String(),
			"days_until_negative", helpers.Value(p.DaysUntilNegative),
		)
	}
	return p, nil
}

// WhatIf projects the month as if expense were the only spending.
func (s *projectionService) WhatIf(ctx context.Context, uid string, expense decimal.Decimal, incomeOverride *decimal.Decimal) (forecast.Projection, error) {
	if err := validateNonNegative("expense", expense); err != nil {
		return forecast.Projection{}, err
	}
	income, err := s.baselineIncome(ctx, uid, incomeOverride)
	if err != nil {
		return forecast.Projection{}, err
	}
	return forecast.Simple(income, expense), nil
}

func (s *projectionService) baselineIncome(ctx context.Context, uid string, override *decimal.Decimal) (decimal.Decimal, error) {
	if override != nil {
		if err := validateNonNegative("income", *override); err != nil {
			return decimal.Zero, err
		}
		return helpers.Value(override), nil
	}
	user, err := s.users.GetUser(ctx, uid)
	if err != nil {
		return decimal.Zero, err
	}
	return user.MonthlyIncome, nil
}
