package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/GregMSThompson/cashflow-backend/internal/config"
	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/errs"
	"github.com/GregMSThompson/cashflow-backend/internal/forecast"
	"github.com/GregMSThompson/cashflow-backend/internal/ledger"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
	"github.com/GregMSThompson/cashflow-backend/internal/services"
	"github.com/GregMSThompson/cashflow-backend/internal/store/sqlite"
	"github.com/GregMSThompson/cashflow-backend/pkg/logger"
)

// localUID owns every record in the local database.
const localUID = "local"

type userService interface {
	CreateUser(ctx context.Context, uid, email, first, last string) error
	GetProfile(ctx context.Context, uid string) (*models.User, error)
	UpdateSettings(ctx context.Context, uid string, req dto.UpdateSettingsRequest) (*models.User, error)
}

type transactionService interface {
	Create(ctx context.Context, uid string, req dto.TransactionRequest) (*models.Transaction, error)
	Import(ctx context.Context, uid string, reqs []dto.TransactionRequest) ([]models.Transaction, error)
	Delete(ctx context.Context, uid, transactionID string) error
	List(ctx context.Context, uid string, q dto.TransactionQuery) ([]models.Transaction, error)
}

type debtService interface {
	Create(ctx context.Context, uid string, req dto.CreateDebtRequest) (*models.Debt, error)
	List(ctx context.Context, uid string) ([]models.Debt, error)
	Delete(ctx context.Context, uid, debtID string) error
	AddPayment(ctx context.Context, uid, debtID string, req dto.CreatePaymentRequest) (*models.DebtPayment, error)
	RemovePayment(ctx context.Context, uid, debtID, paymentID string) error
	ListPayments(ctx context.Context, uid, debtID string) ([]models.DebtPayment, error)
	Stats(ctx context.Context, uid string) (ledger.DebtStats, error)
}

type projectionService interface {
	MonthProjection(ctx context.Context, uid string, incomeOverride *decimal.Decimal) (forecast.Projection, error)
	WhatIf(ctx context.Context, uid string, expense decimal.Decimal, incomeOverride *decimal.Decimal) (forecast.Projection, error)
}

type goalService interface {
	Create(ctx context.Context, uid string, req dto.GoalRequest) (*models.InvestmentGoal, error)
	List(ctx context.Context, uid string) ([]models.InvestmentGoal, error)
	Contribute(ctx context.Context, uid, goalID string, amount decimal.Decimal) (*models.InvestmentGoal, error)
	Progress(ctx context.Context, uid, goalID string) (ledger.GoalProgress, error)
}

type analyticsService interface {
	MonthSummary(ctx context.Context, uid, month string) (dto.MonthSummary, error)
	CategoryBreakdown(ctx context.Context, uid, month, txType string) (dto.CategoryBreakdown, error)
}

// app holds what every subcommand needs. It is built in the root command's PersistentPreRunE.
type app struct {
	cfg          config.Local
	cfgPath      string
	ctx          context.Context
	db           *sqlite.DB
	users        userService
	transactions transactionService
	debts        debtService
	projection   projectionService
	goals        goalService
	analytics    analyticsService
}

var (
	flagConfig string
	flagDB     string
	flagDebug  bool

	cli = new(app)
)

var rootCmd = &cobra.Command{
	Use:           "cashflow",
	Short:         "Personal cash flow tracker",
	Long:          "Record income, expenses, debts and savings goals, and project the month-end balance.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return cli.open()
	},
	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		return cli.close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", config.LocalPath(), "Config file")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (overrides the config file)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug output to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", describe(err))
		os.Exit(1)
	}
}

func (a *app) open() error {
	if err := a.close(); err != nil {
		return err
	}
	cfg, err := config.LoadLocal(flagConfig)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.cfgPath = flagConfig

	level := cfg.General.LogLevel
	if flagDebug {
		level = "debug"
	}
	log := logger.New(level, logger.NewConsoleHandler)
	a.ctx = logger.ToContext(context.Background(), log)

	path := cfg.General.DatabasePath
	if flagDB != "" {
		path = flagDB
	}
	a.db, err = sqlite.Open(path)
	if err != nil {
		return err
	}
	log.Debug("opened database", "path", path)

	// stores
	ustore := sqlite.NewUserStore(a.db)
	tstore := sqlite.NewTransactionStore(a.db)
	dstore := sqlite.NewDebtStore(a.db)
	gstore := sqlite.NewGoalStore(a.db)

	// services
	a.users = services.NewUserService(ustore, cfg.Profile.Currency)
	a.transactions = services.NewTransactionService(tstore)
	a.debts = services.NewDebtService(dstore)
	a.projection = services.NewProjectionService(ustore, tstore)
	a.goals = services.NewGoalService(gstore)
	a.analytics = services.NewAnalyticsService(tstore, ustore)

	return a.syncProfile()
}

// syncProfile makes sure the local user exists and carries the income and currency from the
// config file, which is the source of truth for both.
func (a *app) syncProfile() error {
	err := a.users.CreateUser(a.ctx, localUID, "", "", "")
	var exists *errs.AlreadyExistsError
	if err != nil && !errors.As(err, &exists) {
		return err
	}

	income, err := decimal.NewFromString(a.cfg.Profile.MonthlyIncome)
	if err != nil {
		return fmt.Errorf("config: monthly_income %q is not a number", a.cfg.Profile.MonthlyIncome)
	}
	_, err = a.users.UpdateSettings(a.ctx, localUID, dto.UpdateSettingsRequest{
		MonthlyIncome: income,
		Currency:      a.cfg.Profile.Currency,
	})
	return err
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// describe strips the typed error wrappers down to their message.
func describe(err error) string {
	var (
		notFound   *errs.NotFoundError
		validation *errs.ValidationError
		database   *errs.DatabaseError
	)
	switch {
	case errors.As(err, &notFound):
		return notFound.Message
	case errors.As(err, &validation):
		return "invalid input: " + validation.Message
	case errors.As(err, &database):
		if database.Err != nil {
			return database.Message + ": " + database.Err.Error()
		}
		return database.Message
	default:
		return err.Error()
	}
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errs.NewValidationError(fmt.Sprintf("%q is not a valid amount", s))
	}
	return d, nil
}

// optionalAmount returns nil for an empty flag value.
func optionalAmount(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseAmount(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
