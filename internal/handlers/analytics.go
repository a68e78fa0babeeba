package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/middleware"
	"github.com/GregMSThompson/cashflow-backend/internal/response"
)

type analyticsService interface {
	MonthSummary(ctx context.Context, uid, month string) (dto.MonthSummary, error)
	CategoryBreakdown(ctx context.Context, uid, month, txType string) (dto.CategoryBreakdown, error)
}

type analyticsHandlers struct {
	ResponseHandler response.ResponseHandler
	AnalyticsSvc    analyticsService
}

func NewAnalyticsHandlers(deps *Deps) *analyticsHandlers {
	return &analyticsHandlers{
		ResponseHandler: deps.ResponseHandler,
		AnalyticsSvc:    deps.AnalyticsSvc,
	}
}

func (h *analyticsHandlers) AnalyticsRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/summary", h.GetSummary)
	r.Get("/breakdown", h.GetBreakdown)
	return r
}

func (h *analyticsHandlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	summary, err := h.AnalyticsSvc.MonthSummary(r.Context(), uid, r.URL.Query().Get("month"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, summary)
}

func (h *analyticsHandlers) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	q := r.URL.Query()
	breakdown, err := h.AnalyticsSvc.CategoryBreakdown(r.Context(), uid, q.Get("month"), q.Get("type"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, breakdown)
}
