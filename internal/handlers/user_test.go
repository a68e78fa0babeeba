package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/middleware"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
)

type stubUserService struct {
	called          bool
	uid, email      string
	first, lastName string
	settings        dto.UpdateSettingsRequest
	user            *models.User
	err             error
}

func (s *stubUserService) CreateUser(_ context.Context, uid, email, first, last string) error {
	s.called = true
	s.uid = uid
	s.email = email
	s.first = first
	s.lastName = last
	return s.err
}

func (s *stubUserService) GetProfile(_ context.Context, uid string) (*models.User, error) {
	s.called = true
	s.uid = uid
	return s.user, s.err
}

func (s *stubUserService) UpdateSettings(_ context.Context, uid string, req dto.UpdateSettingsRequest) (*models.User, error) {
	s.called = true
	s.uid = uid
	s.settings = req
	return s.user, s.err
}

func TestCreateUserSuccess(t *testing.T) {
	userSvc := &stubUserService{}
	resp := &stubResponseHandler{}

	h := NewUserHandlers(&Deps{
		ResponseHandler: resp,
		UserSvc:         userSvc,
	})

	body := `{"firstname":"Jane","lastname":"Doe"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.UIDKey, "uid-123")
	ctx = context.WithValue(ctx, middleware.EmailKey, "jane@example.com")
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	h.CreateUser(rr, req)

	if !userSvc.called {
		t.Fatalf("expected CreateUser to be called on service")
	}
	if userSvc.uid != "uid-123" || userSvc.email != "jane@example.com" {
		t.Fatalf("service received wrong identifiers: uid=%s email=%s", userSvc.uid, userSvc.email)
	}
	if userSvc.first != "Jane" || userSvc.lastName != "Doe" {
		t.Fatalf("service received wrong name: %s %s", userSvc.first, userSvc.lastName)
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("WriteSuccess not called with status 200")
	}
}

func TestCreateUserInvalidJSON(t *testing.T) {
	userSvc := &stubUserService{}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: userSvc})

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("not-json"))
	rr := httptest.NewRecorder()
	h.CreateUser(rr, req)

	if userSvc.called {
		t.Fatalf("CreateUser should not be called on service when JSON invalid")
	}
	var ve *errs.ValidationError
	if !resp.handleErrorCalled || !errors.As(resp.handleError, &ve) {
		t.Fatalf("expected ValidationError for invalid JSON, got %v", resp.handleError)
	}
}

func TestCreateUserServiceError(t *testing.T) {
	userSvc := &stubUserService{err: errors.New("service failure")}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: userSvc})

	body := `{"firstname":"Jane","lastname":"Doe"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.CreateUser(rr, req)

	if !resp.handleErrorCalled || !errors.Is(resp.handleError, userSvc.err) {
		t.Fatalf("expected handler to delegate error, got %v", resp.handleError)
	}
	if resp.writeSuccessCalled {
		t.Fatalf("WriteSuccess should not be called on service error")
	}
}

func TestUpdateSettings(t *testing.T) {
	userSvc := &stubUserService{user: &models.User{UID: "uid-1"}}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: userSvc})

	body := `{"monthlyIncome":"3000.50","currency":"EUR"}`
	req := httptest.NewRequest(http.MethodPut, "/users/me/settings", strings.NewReader(body))
	req = withUID(req, "uid-1")
	rr := httptest.NewRecorder()
	h.UpdateSettings(rr, req)

	if !resp.writeSuccessCalled {
		t.Fatalf("expected WriteSuccess, got error %v", resp.handleError)
	}
	if userSvc.settings.MonthlyIncome.String() != "3000.5" || userSvc.settings.Currency != "EUR" {
		t.Fatalf("unexpected settings: %+v", userSvc.settings)
	}
}
