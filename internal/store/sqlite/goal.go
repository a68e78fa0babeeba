package sqlite

import (
	"context"

	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
)

const goalColumns = `goal_id, name, target_value, current_value, deadline, created_at, updated_at`

type GoalStore struct {
	db *DB
}

func NewGoalStore(db *DB) *GoalStore {
	return &GoalStore{db: db}
}

func (s *GoalStore) Create(ctx context.Context, uid string, g *models.InvestmentGoal) error {
	_, err := s.db.db.ExecContext(ctx, `INSERT INTO goals (uid, `+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uid, g.GoalID, g.Name, g.TargetValue.String(), g.CurrentValue.String(), g.Deadline,
		formatTime(g.CreatedAt), formatTime(g.UpdatedAt))
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create goal", err)
	}
	return nil
}

func (s *GoalStore) Get(ctx context.Context, uid, goalID string) (*models.InvestmentGoal, error) {
	g, err := getGoal(ctx, s.db.db, uid, goalID)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *GoalStore) List(ctx context.Context, uid string) ([]models.InvestmentGoal, error) {
	rows, err := s.db.db.QueryContext(ctx, `SELECT `+goalColumns+`
		FROM goals WHERE uid = ? ORDER BY created_at ASC`, uid)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list goals", err)
	}
	defer func() { _ = rows.Close() }()

	goals := []models.InvestmentGoal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list goals", err)
	}
	return goals, nil
}

func (s *GoalStore) Delete(ctx context.Context, uid, goalID string) error {
	_, err := s.db.db.ExecContext(ctx, `DELETE FROM goals WHERE uid = ? AND goal_id = ?`, uid, goalID)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete goal", err)
	}
	return nil
}

// Mutate applies fn to the stored goal inside a sql transaction. fn owns every field it
// changes, UpdatedAt included.
func (s *GoalStore) Mutate(ctx context.Context, uid, goalID string, fn func(*models.InvestmentGoal) error) (*models.InvestmentGoal, error) {
	sqlTx, err := s.db.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errs.NewDatabaseError("update", "failed to begin goal update", err)
	}
	defer func() { _ = sqlTx.Rollback() }()

	g, err := getGoal(ctx, sqlTx, uid, goalID)
	if err != nil {
		return nil, err
	}
	if err := fn(&g); err != nil {
		return nil, err
	}
	if err := updateGoal(ctx, sqlTx, uid, &g); err != nil {
		return nil, errs.NewDatabaseError("update", "failed to update goal", err)
	}
	if err := sqlTx.Commit(); err != nil {
		return nil, errs.NewDatabaseError("update", "failed to commit goal", err)
	}
	return &g, nil
}

func updateGoal(ctx context.Context, q queryer, uid string, g *models.InvestmentGoal) error {
	_, err := q.ExecContext(ctx, `UPDATE goals
		SET name = ?, target_value = ?, current_value = ?, deadline = ?, updated_at = ?
		WHERE uid = ? AND goal_id = ?`,
		g.Name, g.TargetValue.String(), g.CurrentValue.String(), g.Deadline, formatTime(g.UpdatedAt),
		uid, g.GoalID)
	return err
}

func getGoal(ctx context.Context, q queryer, uid, goalID string) (models.InvestmentGoal, error) {
	row := q.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE uid = ? AND goal_id = ?`, uid, goalID)
	return scanGoal(row)
}

func scanGoal(row scanner) (models.InvestmentGoal, error) {
	var g models.InvestmentGoal
	var target, current, createdAt, updatedAt string
	err := row.Scan(&g.GoalID, &g.Name, &target, &current, &g.Deadline, &createdAt, &updatedAt)
	if err != nil {
		return models.InvestmentGoal{}, readError(err, "goal")
	}
	if g.TargetValue, err = parseDecimal(target); err != nil {
		return models.InvestmentGoal{}, errs.NewDatabaseError("read", "failed to parse goal data", err)
	}
	if g.CurrentValue, err = parseDecimal(current); err != nil {
		return models.InvestmentGoal{}, errs.NewDatabaseError("read", "failed to parse goal data", err)
	}
	if g.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.InvestmentGoal{}, errs.NewDatabaseError("read", "failed to parse goal data", err)
	}
	if g.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.InvestmentGoal{}, errs.NewDatabaseError("read", "failed to parse goal data", err)
	}
	return g, nil
}
