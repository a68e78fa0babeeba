package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/cashflow-backend/internal/handlers"
	"github.com/GregMSThompson/cashflow-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	am := middleware.NewMiddleware(deps.Firebase)

	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	ush := handlers.NewUserHandlers(deps)
	txh := handlers.NewTransactionHandlers(deps)
	dbh := handlers.NewDebtHandlers(deps)
	pjh := handlers.NewProjectionHandlers(deps)
	glh := handlers.NewGoalHandlers(deps)
	anh := handlers.NewAnalyticsHandlers(deps)

	r.Group(func(r chi.Router) {
		r.Use(am.FirebaseAuth)
		r.Mount("/users", ush.UserRoutes())
		r.Mount("/transactions", txh.TransactionRoutes())
		r.Mount("/debts", dbh.DebtRoutes())
		r.Mount("/projection", pjh.ProjectionRoutes())
		r.Mount("/goals", glh.GoalRoutes())
		r.Mount("/analytics", anh.AnalyticsRoutes())
	})
	return r
}
