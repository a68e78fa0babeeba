package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/ledger"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
	"github.com/GregMSThompson/cashflow-backend/pkg/logger"
)

type goalGSStore interface {
	Create(ctx context.Context, uid string, g *models.InvestmentGoal) error
	Get(ctx context.Context, uid, goalID string) (*models.InvestmentGoal, error)
	List(ctx context.Context, uid string) ([]models.InvestmentGoal, error)
	Delete(ctx context.Context, uid, goalID string) error
	Mutate(ctx context.Context, uid, goalID string, fn func(*models.InvestmentGoal) error) (*models.InvestmentGoal, error)
}

type goalService struct {
	goals    goalGSStore
	clockNow func() time.Time
	newID    func() string
}

func NewGoalService(goals goalGSStore) *goalService {
	return &goalService{
		goals:    goals,
		clockNow: time.Now,
		newID:    uuid.NewString,
	}
}

func (s *goalService) Create(ctx context.Context, uid string, req dto.GoalRequest) (*models.InvestmentGoal, error) {
	if err := validateGoal(req); err != nil {
		return nil, err
	}

	now := s.clockNow()
	goal := &models.InvestmentGoal{
		GoalID:       s.newID(),
		Name:         strings.TrimSpace(req.Name),
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Deadline:     req.Deadline,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.goals.Create(ctx, uid, goal); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("goal created", "goal_id", goal.GoalID, "target_value", goal.TargetValue.String())
	return goal, nil
}

func (s *goalService) Get(ctx context.Context, uid, goalID string) (*models.InvestmentGoal, error) {
	return s.goals.Get(ctx, uid, goalID)
}

func (s *goalService) List(ctx context.Context, uid string) ([]models.InvestmentGoal, error) {
	return s.goals.List(ctx, uid)
}

func (s *goalService) Update(ctx context.Context, uid, goalID string, req dto.GoalRequest) (*models.InvestmentGoal, error) {
	if err := validateGoal(req); err != nil {
		return nil, err
	}

	goal, err := s.goals.Mutate(ctx, uid, goalID, func(g *models.InvestmentGoal) error {
		g.Name = strings.TrimSpace(req.Name)
		g.TargetValue = req.TargetValue
		g.CurrentValue = req.CurrentValue
		g.Deadline = req.Deadline
		g.UpdatedAt = s.clockNow()
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("goal updated", "goal_id", goalID)
	return goal, nil
}

func (s *goalService) Delete(ctx context.Context, uid, goalID string) error {
	if _, err := s.goals.Get(ctx, uid, goalID); err != nil {
		return err
	}
	if err := s.goals.Delete(ctx, uid, goalID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("goal deleted", "goal_id", goalID)
	return nil
}

// Contribute adds amount to the goal's current value.
func (s *goalService) Contribute(ctx context.Context, uid, goalID string, amount decimal.Decimal) (*models.InvestmentGoal, error) {
	if err := validatePositive("amount", amount); err != nil {
		return nil, err
	}

	goal, err := s.goals.Mutate(ctx, uid, goalID, func(g *models.InvestmentGoal) error {
		g.CurrentValue = g.CurrentValue.Add(amount)
		g.UpdatedAt = s.clockNow()
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("goal contribution recorded", "goal_id", goalID, "amount", amount.String(), "current_value", goal.CurrentValue.String())
	return goal, nil
}

func (s *goalService) Progress(ctx context.Context, uid, goalID string) (ledger.GoalProgress, error) {
	goal, err := s.goals.Get(ctx, uid, goalID)
	if err != nil {
		return ledger.GoalProgress{}, err
	}
	return ledger.Progress(*goal, s.clockNow()), nil
}

func validateGoal(req dto.GoalRequest) error {
	if err := validateText("name", req.Name, maxNameLength); err != nil {
		return err
	}
	if err := validatePositive("targetValue", req.TargetValue); err != nil {
		return err
	}
	if err := validateNonNegative("currentValue", req.CurrentValue); err != nil {
		return err
	}
	if req.Deadline != "" {
		return validateDate("deadline", req.Deadline)
	}
	return nil
}
