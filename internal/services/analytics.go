package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/forecast"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
)

type transactionAnalyticsStore interface {
	List(ctx context.Context, uid string, q dto.TransactionQuery) ([]models.Transaction, error)
}

type userAnalyticsStore interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type analyticsService struct {
	txs      transactionAnalyticsStore
	users    userAnalyticsStore
	clockNow func() time.Time
}

func NewAnalyticsService(txs transactionAnalyticsStore, users userAnalyticsStore) *analyticsService {
	return &analyticsService{txs: txs, users: users, clockNow: time.Now}
}

// MonthSummary totals a month's income and expenses. An empty month means the current one.
func (s *analyticsService) MonthSummary(ctx context.Context, uid, month string) (dto.MonthSummary, error) {
	start, err := parseMonth(month, s.clockNow())
	if err != nil {
		return dto.MonthSummary{}, err
	}
	result := dto.MonthSummary{
		Month:    start.Format(monthLayout),
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
	}

	if err := s.eachInMonth(ctx, uid, start, nil, func(tx models.Transaction) {
		switch tx.Type {
		case models.TransactionIncome:
			result.Income = result.Income.Add(tx.Value)
		case models.TransactionExpense:
			result.Expenses = result.Expenses.Add(tx.Value)
		}
		result.Count++
	}); err != nil {
		return result, err
	}

	result.Balance = result.Income.Sub(result.Expenses)
	if result.Currency, err = s.currency(ctx, uid); err != nil {
		return result, err
	}
	return result, nil
}

// CategoryBreakdown groups one transaction type's month totals by category, largest first.
func (s *analyticsService) CategoryBreakdown(ctx context.Context, uid, month, txType string) (dto.CategoryBreakdown, error) {
	if txType == "" {
		txType = string(models.TransactionExpense)
	}
	if !models.TransactionType(txType).Valid() {
		return dto.CategoryBreakdown{}, errs.NewValidationError("type must be income or expense")
	}
	start, err := parseMonth(month, s.clockNow())
	if err != nil {
		return dto.CategoryBreakdown{}, err
	}
	result := dto.CategoryBreakdown{
		Month: start.Format(monthLayout),
		Type:  txType,
		Total: decimal.Zero,
	}

	items := map[string]*dto.CategoryBreakdownItem{}
	if err := s.eachInMonth(ctx, uid, start, &txType, func(tx models.Transaction) {
		item, ok := items[tx.Category]
		if !ok {
			item = &dto.CategoryBreakdownItem{Category: tx.Category, Total: decimal.Zero}
			items[tx.Category] = item
		}
		item.Total = item.Total.Add(tx.Value)
		item.Count++
		result.Total = result.Total.Add(tx.Value)
	}); err != nil {
		return result, err
	}

	result.Items = mapBreakdownItems(items, result.Total)
	if result.Currency, err = s.currency(ctx, uid); err != nil {
		return result, err
	}
	return result, nil
}

func (s *analyticsService) eachInMonth(ctx context.Context, uid string, start time.Time, txType *string, handle func(models.Transaction)) error {
	from, to := forecast.MonthBounds(start)
	txs, err := s.txs.List(ctx, uid, dto.TransactionQuery{Type: txType, DateFrom: &from, DateTo: &to})
	if err != nil {
		return err
	}
	for _, tx := range txs {
		handle(tx)
	}
	return nil
}

// currency is display only; a user without a profile gets none.
func (s *analyticsService) currency(ctx context.Context, uid string) (string, error) {
	user, err := s.users.GetUser(ctx, uid)
	var nf *errs.NotFoundError
	if errors.As(err, &nf) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return user.Currency, nil
}

func mapBreakdownItems(items map[string]*dto.CategoryBreakdownItem, total decimal.Decimal) []dto.CategoryBreakdownItem {
	hundred := decimal.NewFromInt(100)
	out := make([]dto.CategoryBreakdownItem, 0, len(items))
	for _, item := range items {
		item.Percent = decimal.Zero
		if total.IsPositive() {
			item.Percent = item.Total.Mul(hundred).Div(total).Round(2)
		}
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}
