package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/cashflow-backend/internal/bootstrap"
	"github.com/GregMSThompson/cashflow-backend/internal/config"
	"github.com/GregMSThompson/cashflow-backend/internal/handlers"
	"github.com/GregMSThompson/cashflow-backend/internal/response"
	"github.com/GregMSThompson/cashflow-backend/internal/router"
	"github.com/GregMSThompson/cashflow-backend/internal/services"
	"github.com/GregMSThompson/cashflow-backend/internal/store"
	"github.com/GregMSThompson/cashflow-backend/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg, err := config.New()
	exitOnError("config failed", err, logger.New("error", logger.NewCloudRunHandler))
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore)
	dstore := store.NewDebtStore(bs.Firestore)
	gstore := store.NewGoalStore(bs.Firestore)

	// services
	userv := services.NewUserService(ustore, cfg.DefaultCurrency)
	tserv := services.NewTransactionService(tstore)
	dserv := services.NewDebtService(dstore)
	pserv := services.NewProjectionService(ustore, tstore)
	gserv := services.NewGoalService(gstore)
	anserv := services.NewAnalyticsService(tstore, ustore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.UserSvc = userv
	deps.TransactionSvc = tserv
	deps.DebtSvc = dserv
	deps.ProjectionSvc = pserv
	deps.GoalSvc = gserv
	deps.AnalyticsSvc = anserv

	// router
	r := router.NewRouter(deps)
	bs.Log.Info("listening", "port", cfg.Port)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
