package sqlite

import (
	"context"
	"strings"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
)

const transactionColumns = `transaction_id, type, category, date, description, value, created_at, updated_at`

type TransactionStore struct {
	db *DB
}

func NewTransactionStore(db *DB) *TransactionStore {
	return &TransactionStore{db: db}
}

func (s *TransactionStore) Create(ctx context.Context, uid string, tx *models.Transaction) error {
	_, err := s.db.db.ExecContext(ctx, `INSERT INTO transactions
		(uid, `+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uid, tx.TransactionID, string(tx.Type), tx.Category, tx.Date, tx.Description,
		tx.Value.String(), formatTime(tx.CreatedAt), formatTime(tx.UpdatedAt),
	)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create transaction", err)
	}
	return nil
}

// CreateBatch writes many transactions in one sql transaction; existing ids are overwritten.
func (s *TransactionStore) CreateBatch(ctx context.Context, uid string, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	sqlTx, err := s.db.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to begin batch", err)
	}
	defer func() { _ = sqlTx.Rollback() }()

	stmt, err := sqlTx.PrepareContext(ctx, `INSERT OR REPLACE INTO transactions
		(uid, `+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to prepare batch", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range txs {
		_, err := stmt.ExecContext(ctx, uid, t.TransactionID, string(t.Type), t.Category, t.Date,
			t.Description, t.Value.String(), formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
		if err != nil {
			return errs.NewDatabaseError("create", "failed to write transaction", err)
		}
	}

	if err := sqlTx.Commit(); err != nil {
		return errs.NewDatabaseError("create", "failed to commit batch", err)
	}
	return nil
}

func (s *TransactionStore) Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error) {
	row := s.db.db.QueryRowContext(ctx, `SELECT `+transactionColumns+`
		FROM transactions WHERE uid = ? AND transaction_id = ?`, uid, transactionID)
	tx, err := scanTransaction(row)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *TransactionStore) Update(ctx context.Context, uid string, tx *models.Transaction) error {
	_, err := s.db.db.ExecContext(ctx, `UPDATE transactions
		SET type = ?, category = ?, date = ?, description = ?, value = ?, updated_at = ?
		WHERE uid = ? AND transaction_id = ?`,
		string(tx.Type), tx.Category, tx.Date, tx.Description, tx.Value.String(), formatTime(tx.UpdatedAt),
		uid, tx.TransactionID,
	)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update transaction", err)
	}
	return nil
}

func (s *TransactionStore) Delete(ctx context.Context, uid, transactionID string) error {
	_, err := s.db.db.ExecContext(ctx, `DELETE FROM transactions WHERE uid = ? AND transaction_id = ?`, uid, transactionID)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete transaction", err)
	}
	return nil
}

// List runs q against the user's transactions ordered by date, ties broken by creation time.
func (s *TransactionStore) List(ctx context.Context, uid string, q dto.TransactionQuery) ([]models.Transaction, error) {
	var b strings.Builder
	args := []any{uid}
	b.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE uid = ?`)
	if q.Type != nil {
		b.WriteString(` AND type = ?`)
		args = append(args, *q.Type)
	}
	if q.Category != nil {
		b.WriteString(` AND category = ?`)
		args = append(args, *q.Category)
	}
	if q.DateFrom != nil {
		b.WriteString(` AND date >= ?`)
		args = append(args, *q.DateFrom)
	}
	if q.DateTo != nil {
		b.WriteString(` AND date <= ?`)
		args = append(args, *q.DateTo)
	}
	if q.Desc {
		b.WriteString(` ORDER BY date DESC, created_at DESC`)
	} else {
		b.WriteString(` ORDER BY date ASC, created_at ASC`)
	}
	if q.Limit > 0 {
		b.WriteString(` LIMIT ?`)
		args = append(args, q.Limit)
	}

	rows, err := s.db.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list transactions", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list transactions", err)
	}
	return out, nil
}

func scanTransaction(row scanner) (models.Transaction, error) {
	var tx models.Transaction
	var typ, value, createdAt, updatedAt string
	err := row.Scan(&tx.TransactionID, &typ, &tx.Category, &tx.Date, &tx.Description, &value, &createdAt, &updatedAt)
	if err != nil {
		return models.Transaction{}, readError(err, "transaction")
	}
	tx.Type = models.TransactionType(typ)
	if tx.Value, err = parseDecimal(value); err != nil {
		return models.Transaction{}, errs.NewDatabaseError("read", "failed to parse transaction data", err)
	}
	if tx.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Transaction{}, errs.NewDatabaseError("read", "failed to parse transaction data", err)
	}
	if tx.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.Transaction{}, errs.NewDatabaseError("read", "failed to parse transaction data", err)
	}
	return tx, nil
}
