package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/ledger"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
)

const (
	debtColumns    = `debt_id, name, total_value, monthly_installment, paid_value, start_date, created_at, updated_at`
	paymentColumns = `payment_id, debt_id, value, date, created_at`
)

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type DebtStore struct {
	db *DB
}

func NewDebtStore(db *DB) *DebtStore {
	return &DebtStore{db: db}
}

func (s *DebtStore) Create(ctx context.Context, uid string, d *models.Debt) error {
	if err := insertDebt(ctx, s.db.db, uid, d); err != nil {
		return errs.NewDatabaseError("create", "failed to create debt", err)
	}
	return nil
}

func (s *DebtStore) Get(ctx context.Context, uid, debtID string) (*models.Debt, error) {
	d, err := getDebt(ctx, s.db.db, uid, debtID)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *DebtStore) List(ctx context.Context, uid string) ([]models.Debt, error) {
	rows, err := s.db.db.QueryContext(ctx, `SELECT `+debtColumns+`
		FROM debts WHERE uid = ? ORDER BY created_at ASC`, uid)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list debts", err)
	}
	defer func() { _ = rows.Close() }()

	debts := []models.Debt{}
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list debts", err)
	}
	return debts, nil
}

// Delete removes the debt; its payments go with it through ON DELETE CASCADE.
func (s *DebtStore) Delete(ctx context.Context, uid, debtID string) error {
	_, err := s.db.db.ExecContext(ctx, `DELETE FROM debts WHERE uid = ? AND debt_id = ?`, uid, debtID)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete debt", err)
	}
	return nil
}

func (s *DebtStore) ListPayments(ctx context.Context, uid, debtID string) ([]models.DebtPayment, error) {
	return listPayments(ctx, s.db.db, uid, debtID)
}

// WithLedger loads the debt and its payments inside a sql transaction, hands the snapshot
// to fn and persists the book fn returns. A missing debt yields an empty Debts slice.
// Nothing is written when fn returns an error.
func (s *DebtStore) WithLedger(ctx context.Context, uid, debtID string, fn func(ledger.Book) (ledger.Book, error)) error {
	sqlTx, err := s.db.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to begin ledger update", err)
	}
	defer func() { _ = sqlTx.Rollback() }()

	var book ledger.Book
	d, err := getDebt(ctx, sqlTx, uid, debtID)
	var nf *errs.NotFoundError
	switch {
	case errors.As(err, &nf):
	case err != nil:
		return err
	default:
		book.Debts = []models.Debt{d}
	}
	if book.Payments, err = listPayments(ctx, sqlTx, uid, debtID); err != nil {
		return err
	}

	next, err := fn(book)
	if err != nil {
		return err
	}
	if err := writeLedger(ctx, sqlTx, uid, book, next); err != nil {
		return errs.NewDatabaseError("update", "failed to update debt ledger", err)
	}
	if err := sqlTx.Commit(); err != nil {
		return errs.NewDatabaseError("update", "failed to commit debt ledger", err)
	}
	return nil
}

func writeLedger(ctx context.Context, q queryer, uid string, before, after ledger.Book) error {
	for _, d := range after.Debts {
		if err := updateDebt(ctx, q, uid, &d); err != nil {
			return err
		}
	}

	kept := make(map[string]bool, len(after.Payments))
	existing := make(map[string]bool, len(before.Payments))
	for _, p := range before.Payments {
		existing[p.PaymentID] = true
	}
	for _, p := range after.Payments {
		kept[p.PaymentID] = true
		if existing[p.PaymentID] {
			continue
		}
		_, err := q.ExecContext(ctx, `INSERT INTO debt_payments (uid, `+paymentColumns+`)
			VALUES (?, ?, ?, ?, ?, ?)`,
			uid, p.PaymentID, p.DebtID, p.Value.String(), p.Date, formatTime(p.CreatedAt))
		if err != nil {
			return err
		}
	}
	for _, p := range before.Payments {
		if kept[p.PaymentID] {
			continue
		}
		_, err := q.ExecContext(ctx, `DELETE FROM debt_payments WHERE uid = ? AND payment_id = ?`, uid, p.PaymentID)
		if err != nil {
			return err
		}
	}
	return nil
}

func insertDebt(ctx context.Context, q queryer, uid string, d *models.Debt) error {
	_, err := q.ExecContext(ctx, `INSERT INTO debts (uid, `+debtColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uid, d.DebtID, d.Name, d.TotalValue.String(), d.MonthlyInstallment.String(), d.PaidValue.String(),
		d.StartDate, formatTime(d.CreatedAt), formatTime(d.UpdatedAt))
	return err
}

func updateDebt(ctx context.Context, q queryer, uid string, d *models.Debt) error {
	_, err := q.ExecContext(ctx, `UPDATE debts
		SET name = ?, total_value = ?, monthly_installment = ?, paid_value = ?, start_date = ?, updated_at = ?
		WHERE uid = ? AND debt_id = ?`,
		d.Name, d.TotalValue.String(), d.MonthlyInstallment.String(), d.PaidValue.String(), d.StartDate,
		formatTime(d.UpdatedAt), uid, d.DebtID)
	return err
}

func getDebt(ctx context.Context, q queryer, uid, debtID string) (models.Debt, error) {
	row := q.QueryRowContext(ctx, `SELECT `+debtColumns+` FROM debts WHERE uid = ? AND debt_id = ?`, uid, debtID)
	return scanDebt(row)
}

func listPayments(ctx context.Context, q queryer, uid, debtID string) ([]models.DebtPayment, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+paymentColumns+`
		FROM debt_payments WHERE uid = ? AND debt_id = ?`, uid, debtID)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list debt payments", err)
	}
	defer func() { _ = rows.Close() }()

	payments := []models.DebtPayment{}
	for rows.Next() {
		var p models.DebtPayment
		var value, createdAt string
		if err := rows.Scan(&p.PaymentID, &p.DebtID, &value, &p.Date, &createdAt); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse payment data", err)
		}
		if p.Value, err = parseDecimal(value); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse payment data", err)
		}
		if p.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse payment data", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list debt payments", err)
	}
	return payments, nil
}

func scanDebt(row scanner) (models.Debt, error) {
	var d models.Debt
	var total, installment, paid, createdAt, updatedAt string
	err := row.Scan(&d.DebtID, &d.Name, &total, &installment, &paid, &d.StartDate, &createdAt, &updatedAt)
	if err != nil {
		return models.Debt{}, readError(err, "debt")
	}

	amounts := []*decimal.Decimal{&d.TotalValue, &d.MonthlyInstallment, &d.PaidValue}
	for i, raw := range []string{total, installment, paid} {
		if *amounts[i], err = parseDecimal(raw); err != nil {
			return models.Debt{}, errs.NewDatabaseError("read", "failed to parse debt data", err)
		}
	}
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Debt{}, errs.NewDatabaseError("read", "failed to parse debt data", err)
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.Debt{}, errs.NewDatabaseError("read", "failed to parse debt data", err)
	}
	return d, nil
}
