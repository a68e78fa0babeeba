package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
	"github.com/GregMSThompson/cashflow-backend/pkg/helpers"
)

func TestUserServiceCreateUser(t *testing.T) {
	store := &stubUserStore{}
	svc := NewUserService(store, "EUR")

	ctx := helpers.TestCtx()
	now := time.Now()

	err := svc.CreateUser(ctx, "uid-123", "user@example.com", "Jane", "Doe")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	if store.createUserCalls != 1 {
		t.Fatalf("CreateUser called %d times, want 1", store.createUserCalls)
	}

	if store.user == nil {
		t.Fatalf("store received nil user")
	}

	if store.user.UID != "uid-123" || store.user.Email != "user@example.com" {
		t.Fatalf("unexpected user identifiers: %+v", store.user)
	}

	if store.user.FirstName != "Jane" || store.user.LastName != "Doe" {
		t.Fatalf("unexpected user name: %+v", store.user)
	}

	if store.user.Currency != "EUR" || !store.user.MonthlyIncome.IsZero() {
		t.Fatalf("unexpected defaults: %+v", store.user)
	}

	if store.user.CreatedAt.Before(now) {
		t.Fatalf("CreatedAt set earlier than call time: %v before %v", store.user.CreatedAt, now)
	}
}

func TestUserServiceCreateUserStoreError(t *testing.T) {
	store := &stubUserStore{err: errs.NewAlreadyExistsError("user already exists")}
	svc := NewUserService(store, "")

	err := svc.CreateUser(helpers.TestCtx(), "uid-456", "user2@example.com", "John", "Smith")

	var ae *errs.AlreadyExistsError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AlreadyExistsError, got %v", err)
	}
}

func TestUserServiceUpdateSettings(t *testing.T) {
	store := &stubUserStore{user: &models.User{UID: "uid-1", Currency: "EUR"}}
	svc := NewUserService(store, "EUR")

	user, err := svc.UpdateSettings(helpers.TestCtx(), "uid-1", dto.UpdateSettingsRequest{
		MonthlyIncome: decimal.RequireFromString("3200.50"),
		Currency:      "usd",
	})
	if err != nil {
		t.Fatalf("UpdateSettings returned error: %v", err)
	}
	if !user.MonthlyIncome.Equal(decimal.RequireFromString("3200.5")) || user.Currency != "USD" {
		t.Fatalf("unexpected settings: %+v", user)
	}
	if store.updateUserCalls != 1 {
		t.Fatalf("UpdateUser called %d times, want 1", store.updateUserCalls)
	}

	// empty currency keeps the current one
	user, err = svc.UpdateSettings(helpers.TestCtx(), "uid-1", dto.UpdateSettingsRequest{MonthlyIncome: decimal.Zero})
	if err != nil || user.Currency != "USD" {
		t.Fatalf("unexpected result: %+v %v", user, err)
	}
}

func TestUserServiceUpdateSettingsValidation(t *testing.T) {
	store := &stubUserStore{user: &models.User{UID: "uid-1"}}
	svc := NewUserService(store, "")

	cases := []dto.UpdateSettingsRequest{
		{MonthlyIncome: decimal.NewFromInt(-1)},
		{MonthlyIncome: decimal.NewFromInt(10), Currency: "EURO"},
	}
	for _, req := range cases {
		_, err := svc.UpdateSettings(helpers.TestCtx(), "uid-1", req)
		var ve *errs.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError for %+v, got %v", req, err)
		}
	}
	if store.updateUserCalls != 0 {
		t.Fatalf("store should not be written on invalid input")
	}
}

func TestUserServiceUpdateSettingsMissingUser(t *testing.T) {
	svc := NewUserService(&stubUserStore{}, "")

	_, err := svc.UpdateSettings(helpers.TestCtx(), "ghost", dto.UpdateSettingsRequest{})
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
