package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/ledger"
	"github.com/GregMSThompson/cashflow-backend/internal/middleware"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
	"github.com/GregMSThompson/cashflow-backend/internal/response"
)

type debtService interface {
	Create(ctx context.Context, uid string, req dto.CreateDebtRequest) (*models.Debt, error)
	Get(ctx context.Context, uid, debtID string) (*models.Debt, error)
	List(ctx context.Context, uid string) ([]models.Debt, error)
	Update(ctx context.Context, uid, debtID string, req dto.UpdateDebtRequest) (*models.Debt, error)
	Delete(ctx context.Context, uid, debtID string) error
	AddPayment(ctx context.Context, uid, debtID string, req dto.CreatePaymentRequest) (*models.DebtPayment, error)
	RemovePayment(ctx context.Context, uid, debtID, paymentID string) error
	ListPayments(ctx context.Context, uid, debtID string) ([]models.DebtPayment, error)
	Stats(ctx context.Context, uid string) (ledger.DebtStats, error)
}

type debtHandlers struct {
	ResponseHandler response.ResponseHandler
	DebtSvc         debtService
}

func NewDebtHandlers(deps *Deps) *debtHandlers {
	return &debtHandlers{
		ResponseHandler: deps.ResponseHandler,
		DebtSvc:         deps.DebtSvc,
	}
}

func (h *debtHandlers) DebtRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListDebts)
	r.Post("/", h.CreateDebt)
	r.Get("/stats", h.GetStats) // must be before /{debtId}
	r.Get("/{debtId}", h.GetDebt)
	r.Put("/{debtId}", h.UpdateDebt)
	r.Delete("/{debtId}", h.DeleteDebt)
	r.Get("/{debtId}/payments", h.ListPayments)
	r.Post("/{debtId}/payments", h.AddPayment)
	r.Delete("/{debtId}/payments/{paymentId}", h.RemovePayment)
	return r
}

func (h *debtHandlers) ListDebts(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	debts, err := h.DebtSvc.List(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, debts)
}

func (h *debtHandlers) CreateDebt(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDebtRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	debt, err := h.DebtSvc.Create(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, debt)
}

func (h *debtHandlers) GetStats(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	stats, err := h.DebtSvc.Stats(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, stats)
}

func (h *debtHandlers) GetDebt(w http.ResponseWriter, r *http.Request) {
	debtID := chi.URLParam(r, "debtId")
	uid := middleware.UID(r.Context())
	debt, err := h.DebtSvc.Get(r.Context(), uid, debtID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, debt)
}

func (h *debtHandlers) UpdateDebt(w http.ResponseWriter, r *http.Request) {
	debtID := chi.URLParam(r, "debtId")
	var req dto.UpdateDebtRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	debt, err := h.DebtSvc.Update(r.Context(), uid, debtID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, debt)
}

func (h *debtHandlers) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	debtID := chi.URLParam(r, "debtId")
	uid := middleware.UID(r.Context())
	if err := h.DebtSvc.Delete(r.Context(), uid, debtID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *debtHandlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	debtID := chi.URLParam(r, "debtId")
	uid := middleware.UID(r.Context())
	payments, err := h.DebtSvc.ListPayments(r.Context(), uid, debtID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, payments)
}

func (h *debtHandlers) AddPayment(w http.ResponseWriter, r *http.Request) {
	debtID := chi.URLParam(r, "debtId")
	var req dto.CreatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	payment, err := h.DebtSvc.AddPayment(r.Context(), uid, debtID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, payment)
}

func (h *debtHandlers) RemovePayment(w http.ResponseWriter, r *http.Request) {
	debtID := chi.URLParam(r, "debtId")
	paymentID := chi.URLParam(r, "paymentId")
	uid := middleware.UID(r.Context())
	if err := h.DebtSvc.RemovePayment(r.Context(), uid, debtID, paymentID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
