package services

import (
	"context"
	"strings"
	"time"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
	"github.com/GregMSThompson/cashflow-backend/pkg/logger"
)

type userUSStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type userService struct {
	Store           userUSStore
	defaultCurrency string
	clockNow        func() time.Time
}

func NewUserService(store userUSStore, defaultCurrency string) *userService {
	return &userService{
		Store:           store,
		defaultCurrency: defaultCurrency,
		clockNow:        time.Now,
	}
}

func (s *userService) CreateUser(ctx context.Context, uid, email, first, last string) error {
	// Get logger from context - already has uid, email, request_id, method, path
	log := logger.FromContext(ctx)

	now := s.clockNow()
	user := &models.User{
		UID:       uid,
		Email:     email,
		FirstName: first,
		LastName:  last,
		Currency:  s.defaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.Store.CreateUser(ctx, user)
	if err != nil {
		log.Error("failed to create user in store", "error", err)
		return err
	}

	log.Info("user created successfully", "first_name", first, "last_name", last)
	log.Debug("user created with full details", "user", user)

	return nil
}

func (s *userService) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	return s.Store.GetUser(ctx, uid)
}

// UpdateSettings changes the baseline monthly income and display currency.
func (s *userService) UpdateSettings(ctx context.Context, uid string, req dto.UpdateSettingsRequest) (*models.User, error) {
	if err := validateNonNegative("monthlyIncome", req.MonthlyIncome); err != nil {
		return nil, err
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency != "" && len(currency) != 3 {
		return nil, errs.NewValidationError("currency must be a 3-letter ISO code")
	}

	user, err := s.Store.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	user.MonthlyIncome = req.MonthlyIncome
	if currency != "" {
		user.Currency = currency
	}
	user.UpdatedAt = s.clockNow()

	if err := s.Store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("user settings updated", "monthly_income", user.MonthlyIncome.String(), "currency", user.Currency)
	return user, nil
}
