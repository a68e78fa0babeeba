package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/cashflow-backend/pkg/logger"
)

type fakeVerifier struct {
	token *auth.Token
	err   error
	got   string
}

func (f *fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	f.got = idToken
	return f.token, f.err
}

func TestFirebaseAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	m := NewMiddleware(&fakeVerifier{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler should not run")
	})

	for _, header := range []string{"", "Token abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/debts", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		m.FirebaseAuth(next).ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", header, rr.Code)
		}
	}
}

func TestFirebaseAuthInvalidToken(t *testing.T) {
	m := NewMiddleware(&fakeVerifier{err: errors.New("expired")})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("next handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/debts", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rr := httptest.NewRecorder()
	m.FirebaseAuth(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestFirebaseAuthAddsIdentityToContext(t *testing.T) {
	verifier := &fakeVerifier{token: &auth.Token{UID: "uid-1", Claims: map[string]any{"email": "a@example.com"}}}
	m := NewMiddleware(verifier)

	var uid, email string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid = UID(r.Context())
		email = Email(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/debts", nil)
	req.Header.Set("Authorization", "bearer tok-123")
	rr := httptest.NewRecorder()
	m.FirebaseAuth(next).ServeHTTP(rr, req)

	if verifier.got != "tok-123" {
		t.Fatalf("verifier got %q", verifier.got)
	}
	if uid != "uid-1" || email != "a@example.com" {
		t.Fatalf("unexpected identity uid=%q email=%q", uid, email)
	}
}

func TestLoggerMiddlewareLogsCompletion(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	m := NewLoggerMiddleware(log)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodPost, "/transactions", nil)
	rr := httptest.NewRecorder()
	m.LoggerMiddleware(next).ServeHTTP(rr, req)

	out := buf.String()
	if !strings.Contains(out, "inside handler") || !strings.Contains(out, "path=/transactions") {
		t.Fatalf("request logger not in context: %s", out)
	}
	if !strings.Contains(out, "request completed") || !strings.Contains(out, "status=418") {
		t.Fatalf("completion not logged: %s", out)
	}
}
