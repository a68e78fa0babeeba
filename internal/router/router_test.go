package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/cashflow-backend/internal/handlers"
	"github.com/GregMSThompson/cashflow-backend/internal/response"
	"github.com/GregMSThompson/cashflow-backend/internal/services"
	"github.com/GregMSThompson/cashflow-backend/internal/store/sqlite"
	"github.com/GregMSThompson/cashflow-backend/pkg/logger"
)

type staticVerifier struct{}

func (staticVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	return &auth.Token{UID: "uid-" + idToken, Claims: map[string]any{"email": idToken + "@example.com"}}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	log := logger.New("", logger.NewTestHandler)
	users := sqlite.NewUserStore(db)
	txs := sqlite.NewTransactionStore(db)

	deps := &handlers.Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		Firebase:        staticVerifier{},
		UserSvc:         services.NewUserService(users, "EUR"),
		TransactionSvc:  services.NewTransactionService(txs),
		DebtSvc:         services.NewDebtService(sqlite.NewDebtStore(db)),
		ProjectionSvc:   services.NewProjectionService(users, txs),
		GoalSvc:         services.NewGoalService(sqlite.NewGoalStore(db)),
		AnalyticsSvc:    services.NewAnalyticsService(txs, users),
	}
	srv := httptest.NewServer(NewRouter(deps))
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
}

func call(t *testing.T, srv *httptest.Server, method, path, body string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer alice")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()

	var env envelope
	_ = json.NewDecoder(res.Body).Decode(&env)
	return res.StatusCode, env
}

func TestRouterRequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/debts")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", res.StatusCode)
	}
}

func TestRouterDebtPaymentFlow(t *testing.T) {
	srv := newTestServer(t)

	status, env := call(t, srv, http.MethodPost, "/debts", `{"name":"Car","totalValue":"1200","monthlyInstallment":"100","paidValue":"300","startDate":"2025-01-01"}`)
	if status != http.StatusCreated {
		t.Fatalf("create debt status = %d (%s)", status, env.Code)
	}
	var debt struct {
		DebtID    string `json:"debtId"`
		PaidValue string `json:"paidValue"`
	}
	if err := json.Unmarshal(env.Data, &debt); err != nil {
		t.Fatalf("decode debt: %v", err)
	}

	status, env = call(t, srv, http.MethodPost, "/debts/"+debt.DebtID+"/payments", `{"value":"300","date":"2025-02-01"}`)
	if status != http.StatusCreated {
		t.Fatalf("add payment status = %d (%s)", status, env.Code)
	}
	var payment struct {
		PaymentID string `json:"paymentId"`
	}
	_ = json.Unmarshal(env.Data, &payment)

	_, env = call(t, srv, http.MethodGet, "/debts/stats", "")
	var stats struct {
		TotalPaid       string `json:"totalPaid"`
		OverallProgress string `json:"overallProgress"`
	}
	_ = json.Unmarshal(env.Data, &stats)
	if stats.TotalPaid != "600" || stats.OverallProgress != "50" {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	status, env = call(t, srv, http.MethodPost, "/debts/ghost/payments", `{"value":"1","date":"2025-02-01"}`)
	if status != http.StatusNotFound || env.Code != "not_found" {
		t.Fatalf("payment to unknown debt: status = %d code = %q", status, env.Code)
	}

	status, _ = call(t, srv, http.MethodDelete, "/debts/"+debt.DebtID+"/payments/nope", "")
	if status != http.StatusNotFound {
		t.Fatalf("remove unknown payment: status = %d, want 404", status)
	}

	status, _ = call(t, srv, http.MethodDelete, "/debts/"+debt.DebtID+"/payments/"+payment.PaymentID, "")
	if status != http.StatusOK {
		t.Fatalf("remove payment: status = %d", status)
	}
	_, env = call(t, srv, http.MethodGet, "/debts/"+debt.DebtID, "")
	_ = json.Unmarshal(env.Data, &debt)
	if debt.PaidValue != "300" {
		t.Fatalf("paid after retract = %s, want 300", debt.PaidValue)
	}
}

func TestRouterProjectionNeedsProfile(t *testing.T) {
	srv := newTestServer(t)

	status, _ := call(t, srv, http.MethodGet, "/projection", "")
	if status != http.StatusNotFound {
		t.Fatalf("projection without profile: status = %d, want 404", status)
	}

	if status, env := call(t, srv, http.MethodPost, "/users", `{"firstname":"Alice","lastname":"Smith"}`); status != http.StatusOK {
		t.Fatalf("create user status = %d (%s)", status, env.Code)
	}
	if status, _ := call(t, srv, http.MethodPost, "/users", `{"firstname":"Alice","lastname":"Smith"}`); status != http.StatusConflict {
		t.Fatalf("duplicate user status = %d, want 409", status)
	}
	if status, _ := call(t, srv, http.MethodPut, "/users/me/settings", `{"monthlyIncome":"3000","currency":"EUR"}`); status != http.StatusOK {
		t.Fatalf("update settings status = %d", status)
	}

	status, env := call(t, srv, http.MethodGet, "/projection", "")
	if status != http.StatusOK {
		t.Fatalf("projection status = %d (%s)", status, env.Code)
	}
	var p struct {
		BaselineIncome string `json:"baselineIncome"`
		IsPositive     bool   `json:"isPositive"`
	}
	_ = json.Unmarshal(env.Data, &p)
	if p.BaselineIncome != "3000" || !p.IsPositive {
		t.Fatalf("unexpected projection: %+v", p)
	}

	status, _ = call(t, srv, http.MethodGet, "/projection/what-if?expense=3500", "")
	if status != http.StatusOK {
		t.Fatalf("what-if status = %d", status)
	}
}

func TestRouterTransactionValidation(t *testing.T) {
	srv := newTestServer(t)

	status, env := call(t, srv, http.MethodPost, "/transactions", `{"type":"expense","category":"salary","date":"2025-01-10","description":"x","value":"5"}`)
	if status != http.StatusBadRequest || env.Code != "invalid_input" {
		t.Fatalf("status = %d code = %q, want 400 invalid_input", status, env.Code)
	}

	status, _ = call(t, srv, http.MethodPost, "/transactions", `{"type":"expense"`)
	if status != http.StatusBadRequest {
		t.Fatalf("malformed JSON status = %d, want 400", status)
	}
}
