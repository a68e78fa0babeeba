package store

import (
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
)

// Firestore cannot encode decimal.Decimal, so amounts are stored as their exact string form.

type transactionDoc struct {
	TransactionID string    `firestore:"transactionId"`
	Type          string    `firestore:"type"`
	Category      string    `firestore:"category"`
	Date          string    `firestore:"date"`
	Description   string    `firestore:"description"`
	Value         string    `firestore:"value"`
	CreatedAt     time.Time `firestore:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt"`
}

func toTransactionDoc(t *models.Transaction) transactionDoc {
	return transactionDoc{
		TransactionID: t.TransactionID,
		Type:          string(t.Type),
		Category:      t.Category,
		Date:          t.Date,
		Description:   t.Description,
		Value:         t.Value.String(),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (d transactionDoc) model() (models.Transaction, error) {
	value, err := decimal.NewFromString(d.Value)
	if err != nil {
		return models.Transaction{}, err
	}
	return models.Transaction{
		TransactionID: d.TransactionID,
		Type:          models.TransactionType(d.Type),
		Category:      d.Category,
		Date:          d.Date,
		Description:   d.Description,
		Value:         value,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

type debtDoc struct {
	DebtID             string    `firestore:"debtId"`
	Name               string    `firestore:"name"`
	TotalValue         string    `firestore:"totalValue"`
	MonthlyInstallment string    `firestore:"monthlyInstallment"`
	PaidValue          string    `firestore:"paidValue"`
	StartDate          string    `firestore:"startDate"`
	CreatedAt          time.Time `firestore:"createdAt"`
	UpdatedAt          time.Time `firestore:"updatedAt"`
}

func toDebtDoc(d *models.Debt) debtDoc {
	return debtDoc{
		DebtID:             d.DebtID,
		Name:               d.Name,
		TotalValue:         d.TotalValue.String(),
		MonthlyInstallment: d.MonthlyInstallment.String(),
		PaidValue:          d.PaidValue.String(),
		StartDate:          d.StartDate,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

func (d debtDoc) model() (models.Debt, error) {
	amounts, err := parseDecimals(d.TotalValue, d.MonthlyInstallment, d.PaidValue)
	if err != nil {
		return models.Debt{}, err
	}
	return models.Debt{
		DebtID:             d.DebtID,
		Name:               d.Name,
		TotalValue:         amounts[0],
		MonthlyInstallment: amounts[1],
		PaidValue:          amounts[2],
		StartDate:          d.StartDate,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}, nil
}

type paymentDoc struct {
	PaymentID string    `firestore:"paymentId"`
	DebtID    string    `firestore:"debtId"`
	Value     string    `firestore:"value"`
	Date      string    `firestore:"date"`
	CreatedAt time.Time `firestore:"createdAt"`
}

func toPaymentDoc(p *models.DebtPayment) paymentDoc {
	return paymentDoc{
		PaymentID: p.PaymentID,
		DebtID:    p.DebtID,
		Value:     p.Value.String(),
		Date:      p.Date,
		CreatedAt: p.CreatedAt,
	}
}

func (d paymentDoc) model() (models.DebtPayment, error) {
	value, err := decimal.NewFromString(d.Value)
	if err != nil {
		return models.DebtPayment{}, err
	}
	return models.DebtPayment{
		PaymentID: d.PaymentID,
		DebtID:    d.DebtID,
		Value:     value,
		Date:      d.Date,
		CreatedAt: d.CreatedAt,
	}, nil
}

type goalDoc struct {
	GoalID       string    `firestore:"goalId"`
	Name         string    `firestore:"name"`
	TargetValue  string    `firestore:"targetValue"`
	CurrentValue string    `firestore:"currentValue"`
	Deadline     string    `firestore:"deadline,omitempty"`
	CreatedAt    time.Time `firestore:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt"`
}

func toGoalDoc(g *models.InvestmentGoal) goalDoc {
	return goalDoc{
		GoalID:       g.GoalID,
		Name:         g.Name,
		TargetValue:  g.TargetValue.String(),
		CurrentValue: g.CurrentValue.String(),
		Deadline:     g.Deadline,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

func (d goalDoc) model() (models.InvestmentGoal, error) {
	amounts, err := parseDecimals(d.TargetValue, d.CurrentValue)
	if err != nil {
		return models.InvestmentGoal{}, err
	}
	return models.InvestmentGoal{
		GoalID:       d.GoalID,
		Name:         d.Name,
		TargetValue:  amounts[0],
		CurrentValue: amounts[1],
		Deadline:     d.Deadline,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

type userDoc struct {
	UID           string    `firestore:"uid"`
	Email         string    `firestore:"email"`
	FirstName     string    `firestore:"firstName"`
	LastName      string    `firestore:"lastName"`
	MonthlyIncome string    `firestore:"monthlyIncome"`
	Currency      string    `firestore:"currency"`
	CreatedAt     time.Time `firestore:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt"`
}

func toUserDoc(u *models.User) userDoc {
	return userDoc{
		UID:           u.UID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		MonthlyIncome: u.MonthlyIncome.String(),
		Currency:      u.Currency,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (d userDoc) model() (models.User, error) {
	// Profiles created before income was configured have no value yet.
	income := decimal.Zero
	if d.MonthlyIncome != "" {
		v, err := decimal.NewFromString(d.MonthlyIncome)
		if err != nil {
			return models.User{}, err
		}
		income = v
	}
	return models.User{
		UID:           d.UID,
		Email:         d.Email,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		MonthlyIncome: income,
		Currency:      d.Currency,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

func parseDecimals(values ...string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// readError maps a Firestore read failure onto the errs taxonomy.
func readError(err error, what string) error {
	if status.Code(err) == codes.NotFound {
		return errs.NewNotFoundError(what + " not found")
	}
	return errs.NewDatabaseError("read", "failed to get "+what, err)
}
