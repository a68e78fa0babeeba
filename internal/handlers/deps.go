package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/cashflow-backend/internal/middleware"
	"github.com/GregMSThompson/cashflow-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        middleware.TokenVerifier
	UserSvc         UserService
	TransactionSvc  transactionService
	DebtSvc         debtService
	ProjectionSvc   projectionService
	GoalSvc         goalService
	AnalyticsSvc    analyticsService
}
