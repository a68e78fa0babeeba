package services

import (
	"context"
	"sort"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/ledger"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
)

type fakeTransactionStore struct {
	txs       map[string]models.Transaction
	err       error
	lastQuery dto.TransactionQuery
	batches   int
}

func newFakeTransactionStore(txs ...models.Transaction) *fakeTransactionStore {
	f := &fakeTransactionStore{txs: map[string]models.Transaction{}}
	for _, tx := range txs {
		f.txs[tx.TransactionID] = tx
	}
	return f
}

func (f *fakeTransactionStore) Create(_ context.Context, _ string, tx *models.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.txs[tx.TransactionID] = *tx
	return nil
}

func (f *fakeTransactionStore) CreateBatch(_ context.Context, _ string, txs []models.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.batches++
	for _, tx := range txs {
		f.txs[tx.TransactionID] = tx
	}
	return nil
}

func (f *fakeTransactionStore) Get(_ context.Context, _ string, id string) (*models.Transaction, error) {
	tx, ok := f.txs[id]
	if !ok {
		return nil, errs.NewNotFoundError("transaction not found")
	}
	return &tx, nil
}

func (f *fakeTransactionStore) Update(_ context.Context, _ string, tx *models.Transaction) error {
	f.txs[tx.TransactionID] = *tx
	return nil
}

func (f *fakeTransactionStore) Delete(_ context.Context, _ string, id string) error {
	delete(f.txs, id)
	return nil
}

func (f *fakeTransactionStore) List(_ context.Context, _ string, q dto.TransactionQuery) ([]models.Transaction, error) {
	f.lastQuery = q
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Transaction
	for _, tx := range f.txs {
		if q.Type != nil && string(tx.Type) != *q.Type {
			continue
		}
		if q.Category != nil && tx.Category != *q.Category {
			continue
		}
		if q.DateFrom != nil && tx.Date < *q.DateFrom {
			continue
		}
		if q.DateTo != nil && tx.Date > *q.DateTo {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

type fakeDebtStore struct {
	debts    map[string]models.Debt
	payments []models.DebtPayment
	writes   int
}

func newFakeDebtStore(debts ...models.Debt) *fakeDebtStore {
	f := &fakeDebtStore{debts: map[string]models.Debt{}}
	for _, d := range debts {
		f.debts[d.DebtID] = d
	}
	return f
}

func (f *fakeDebtStore) Create(_ context.Context, _ string, d *models.Debt) error {
	f.debts[d.DebtID] = *d
	return nil
}

func (f *fakeDebtStore) Get(_ context.Context, _ string, id string) (*models.Debt, error) {
	d, ok := f.debts[id]
	if !ok {
		return nil, errs.NewNotFoundError("debt not found")
	}
	return &d, nil
}

func (f *fakeDebtStore) List(_ context.Context, _ string) ([]models.Debt, error) {
	out := make([]models.Debt, 0, len(f.debts))
	for _, d := range f.debts {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DebtID < out[j].DebtID })
	return out, nil
}

func (f *fakeDebtStore) Delete(_ context.Context, _ string, id string) error {
	delete(f.debts, id)
	kept := f.payments[:0]
	for _, p := range f.payments {
		if p.DebtID != id {
			kept = append(kept, p)
		}
	}
	f.payments = kept
	return nil
}

func (f *fakeDebtStore) ListPayments(_ context.Context, _ string, debtID string) ([]models.DebtPayment, error) {
	var out []models.DebtPayment
	for _, p := range f.payments {
		if p.DebtID == debtID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeDebtStore) WithLedger(ctx context.Context, uid, debtID string, fn func(ledger.Book) (ledger.Book, error)) error {
	var book ledger.Book
	if d, ok := f.debts[debtID]; ok {
		book.Debts = []models.Debt{d}
	}
	book.Payments, _ = f.ListPayments(ctx, uid, debtID)

	next, err := fn(book)
	if err != nil {
		return err
	}

	f.writes++
	for _, d := range next.Debts {
		f.debts[d.DebtID] = d
	}
	others := make([]models.DebtPayment, 0, len(f.payments))
	for _, p := range f.payments {
		if p.DebtID != debtID {
			others = append(others, p)
		}
	}
	f.payments = append(others, next.Payments...)
	return nil
}

type fakeGoalStore struct {
	goals map[string]models.InvestmentGoal
}

func newFakeGoalStore(goals ...models.InvestmentGoal) *fakeGoalStore {
	f := &fakeGoalStore{goals: map[string]models.InvestmentGoal{}}
	for _, g := range goals {
		f.goals[g.GoalID] = g
	}
	return f
}

func (f *fakeGoalStore) Create(_ context.Context, _ string, g *models.InvestmentGoal) error {
	f.goals[g.GoalID] = *g
	return nil
}

func (f *fakeGoalStore) Get(_ context.Context, _ string, id string) (*models.InvestmentGoal, error) {
	g, ok := f.goals[id]
	if !ok {
		return nil, errs.NewNotFoundError("goal not found")
	}
	return &g, nil
}

func (f *fakeGoalStore) List(_ context.Context, _ string) ([]models.InvestmentGoal, error) {
	out := make([]models.InvestmentGoal, 0, len(f.goals))
	for _, g := range f.goals {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeGoalStore) Delete(_ context.Context, _ string, id string) error {
	delete(f.goals, id)
	return nil
}

func (f *fakeGoalStore) Mutate(ctx context.Context, uid, id string, fn func(*models.InvestmentGoal) error) (*models.InvestmentGoal, error) {
	g, err := f.Get(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	if err := fn(g); err != nil {
		return nil, err
	}
	f.goals[id] = *g
	return g, nil
}

type stubUserStore struct {
	user            *models.User
	createUserCalls int
	updateUserCalls int
	err             error
}

func (s *stubUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.user = user
	s.createUserCalls++
	return s.err
}

func (s *stubUserStore) UpdateUser(_ context.Context, user *models.User) error {
	s.user = user
	s.updateUserCalls++
	return s.err
}

func (s *stubUserStore) GetUser(_ context.Context, _ string) (*models.User, error) {
	if s.user == nil {
		return nil, errs.NewNotFoundError("user not found")
	}
	u := *s.user
	return &u, nil
}
