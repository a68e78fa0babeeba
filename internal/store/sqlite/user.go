package sqlite

import (
	"context"

	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
)

type UserStore struct {
	db *DB
}

func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	res, err := s.db.db.ExecContext(ctx, `INSERT INTO users
		(uid, email, first_name, last_name, monthly_income, currency, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO NOTHING`,
		user.UID, user.Email, user.FirstName, user.LastName, user.MonthlyIncome.String(), user.Currency,
		formatTime(user.CreatedAt), formatTime(user.UpdatedAt))
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create user", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.NewAlreadyExistsError("user already exists")
	}
	return nil
}

func (s *UserStore) UpdateUser(ctx context.Context, user *models.User) error {
	_, err := s.db.db.ExecContext(ctx, `UPDATE users
		SET email = ?, first_name = ?, last_name = ?, monthly_income = ?, currency = ?, updated_at = ?
		WHERE uid = ?`,
		user.Email, user.FirstName, user.LastName, user.MonthlyIncome.String(), user.Currency,
		formatTime(user.UpdatedAt), user.UID)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update user", err)
	}
	return nil
}

func (s *UserStore) GetUser(ctx context.Context, uid string) (*models.User, error) {
	var u models.User
	var income, createdAt, updatedAt string
	err := s.db.db.QueryRowContext(ctx, `SELECT uid, email, first_name, last_name, monthly_income, currency, created_at, updated_at
		FROM users WHERE uid = ?`, uid).
		Scan(&u.UID, &u.Email, &u.FirstName, &u.LastName, &income, &u.Currency, &createdAt, &updatedAt)
	if err != nil {
		return nil, readError(err, "user")
	}
	if u.MonthlyIncome, err = parseDecimal(income); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse user data", err)
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse user data", err)
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse user data", err)
	}
	return &u, nil
}
