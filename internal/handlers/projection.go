package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/forecast"
	"github.com/GregMSThompson/cashflow-backend/internal/middleware"
	"github.com/GregMSThompson/cashflow-backend/internal/response"
)

type projectionService interface {
	MonthProjection(ctx context.Context, uid string, incomeOverride *decimal.Decimal) (forecast.Projection, error)
	WhatIf(ctx context.Context, uid string, expense decimal.Decimal, incomeOverride *decimal.Decimal) (forecast.Projection, error)
}

type projectionHandlers struct {
	ResponseHandler response.ResponseHandler
	ProjectionSvc   projectionService
}

func NewProjectionHandlers(deps *Deps) *projectionHandlers {
	return &projectionHandlers{
		ResponseHandler: deps.ResponseHandler,
		ProjectionSvc:   deps.ProjectionSvc,
	}
}

func (h *projectionHandlers) ProjectionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetProjection)
	r.Get("/what-if", h.WhatIf)
	return r
}

// GetProjection forecasts the current month; ?income= overrides the profile income.
func (h *projectionHandlers) GetProjection(w http.ResponseWriter, r *http.Request) {
	income, err := queryDecimal(r, "income")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	p, err := h.ProjectionSvc.MonthProjection(r.Context(), uid, income)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, p)
}

func (h *projectionHandlers) WhatIf(w http.ResponseWriter, r *http.Request) {
	expense, err := queryDecimal(r, "expense")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if expense == nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("expense is required"))
		return
	}
	income, err := queryDecimal(r, "income")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid := middleware.UID(r.Context())
	p, err := h.ProjectionSvc.WhatIf(r.Context(), uid, *expense, income)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, p)
}
