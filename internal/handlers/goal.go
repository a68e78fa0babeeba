package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/ledger"
	"github.com/GregMSThompson/cashflow-backend/internal/middleware"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
	"github.com/GregMSThompson/cashflow-backend/internal/response"
)

type goalService interface {
	Create(ctx context.Context, uid string, req dto.GoalRequest) (*models.InvestmentGoal, error)
	Get(ctx context.Context, uid, goalID string) (*models.InvestmentGoal, error)
	List(ctx context.Context, uid string) ([]models.InvestmentGoal, error)
	Update(ctx context.Context, uid, goalID string, req dto.GoalRequest) (*models.InvestmentGoal, error)
	Delete(ctx context.Context, uid, goalID string) error
	Contribute(ctx context.Context, uid, goalID string, amount decimal.Decimal) (*models.InvestmentGoal, error)
	Progress(ctx context.Context, uid, goalID string) (ledger.GoalProgress, error)
}

type goalHandlers struct {
	ResponseHandler response.ResponseHandler
	GoalSvc         goalService
}

func NewGoalHandlers(deps *Deps) *goalHandlers {
	return &goalHandlers{
		ResponseHandler: deps.ResponseHandler,
		GoalSvc:         deps.GoalSvc,
	}
}

func (h *goalHandlers) GoalRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListGoals)
	r.Post("/", h.CreateGoal)
	r.Get("/{goalId}", h.GetGoal)
	r.Put("/{goalId}", h.UpdateGoal)
	r.Delete("/{goalId}", h.DeleteGoal)
	r.Post("/{goalId}/contributions", h.Contribute)
	r.Get("/{goalId}/progress", h.GetProgress)
	return r
}

func (h *goalHandlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	goals, err := h.GoalSvc.List(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, goals)
}

func (h *goalHandlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req dto.GoalRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	goal, err := h.GoalSvc.Create(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, goal)
}

func (h *goalHandlers) GetGoal(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "goalId")
	uid := middleware.UID(r.Context())
	goal, err := h.GoalSvc.Get(r.Context(), uid, goalID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, goal)
}

func (h *goalHandlers) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "goalId")
	var req dto.GoalRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	goal, err := h.GoalSvc.Update(r.Context(), uid, goalID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, goal)
}

func (h *goalHandlers) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "goalId")
	uid := middleware.UID(r.Context())
	if err := h.GoalSvc.Delete(r.Context(), uid, goalID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *goalHandlers) Contribute(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "goalId")
	var req dto.ContributionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	goal, err := h.GoalSvc.Contribute(r.Context(), uid, goalID, req.Amount)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, goal)
}

func (h *goalHandlers) GetProgress(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "goalId")
	uid := middleware.UID(r.Context())
	progress, err := h.GoalSvc.Progress(r.Context(), uid, goalID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, progress)
}
