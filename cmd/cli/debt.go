package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/ledger"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
	"github.com/GregMSThompson/cashflow-backend/internal/render"
)

var (
	flagDebtInstallment string
	flagDebtPaid        string
	flagDebtStart       string
	flagPaymentDate     string
)

var debtCmd = &cobra.Command{
	Use:     "debt",
	Aliases: []string{"debts"},
	Short:   "Track debts and the payments made against them",
}

var debtAddCmd = &cobra.Command{
	Use:   "add <name> <total>",
	Short: "Register a debt",
	Args:  cobra.ExactArgs(2),
	RunE:  runDebtAdd,
}

var debtListCmd = &cobra.Command{
	Use:   "list",
	Short: "List debts with their progress",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		debts, err := cli.debts.List(cli.ctx, localUID)
		if err != nil {
			return err
		}
		fmt.Print(debtTable(debts))
		return nil
	},
}

var debtRmCmd = &cobra.Command{
	Use:   "rm <debt-id>",
	Short: "Delete a debt and all of its payments",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := cli.debts.Delete(cli.ctx, localUID, args[0]); err != nil {
			return err
		}
		fmt.Println(render.Muted("deleted " + args[0]))
		return nil
	},
}

var debtPayCmd = &cobra.Command{
	Use:   "pay <debt-id> <amount>",
	Short: "Record a payment against a debt",
	Args:  cobra.ExactArgs(2),
	RunE:  runDebtPay,
}

var debtUnpayCmd = &cobra.Command{
	Use:   "unpay <debt-id> <payment-id>",
	Short: "Remove a payment and take it off the debt",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := cli.debts.RemovePayment(cli.ctx, localUID, args[0], args[1]); err != nil {
			return err
		}
		fmt.Println(render.Muted("removed payment " + args[1]))
		return nil
	},
}

var debtPaymentsCmd = &cobra.Command{
	Use:   "payments <debt-id>",
	Short: "List a debt's payments, most recent first",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		payments, err := cli.debts.ListPayments(cli.ctx, localUID, args[0])
		if err != nil {
			return err
		}
		fmt.Print(paymentTable(payments))
		return nil
	},
}

var debtStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Totals across all debts",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		stats, err := cli.debts.Stats(cli.ctx, localUID)
		if err != nil {
			return err
		}
		fmt.Print(debtStats(stats))
		return nil
	},
}

func init() {
	debtAddCmd.Flags().StringVar(&flagDebtInstallment, "installment", "", "Monthly installment")
	debtAddCmd.Flags().StringVar(&flagDebtPaid, "paid", "0", "Amount already paid")
	debtAddCmd.Flags().StringVar(&flagDebtStart, "start", "", "Start date as YYYY-MM-DD (default today)")
	_ = debtAddCmd.MarkFlagRequired("installment")

	debtPayCmd.Flags().StringVar(&flagPaymentDate, "date", "", "Payment date as YYYY-MM-DD (default today)")

	debtCmd.AddCommand(debtAddCmd, debtListCmd, debtRmCmd, debtPayCmd, debtUnpayCmd, debtPaymentsCmd, debtStatsCmd)
	rootCmd.AddCommand(debtCmd)
}

func runDebtAdd(_ *cobra.Command, args []string) error {
	total, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	installment, err := parseAmount(flagDebtInstallment)
	if err != nil {
		return err
	}
	paid, err := parseAmount(flagDebtPaid)
	if err != nil {
		return err
	}

	debt, err := cli.debts.Create(cli.ctx, localUID, dto.CreateDebtRequest{
		Name:               args[0],
		TotalValue:         total,
		MonthlyInstallment: installment,
		PaidValue:          paid,
		StartDate:          dateOrToday(flagDebtStart),
	})
	if err != nil {
		return err
	}
	fmt.Print(debtTable([]models.Debt{*debt}))
	return nil
}

func runDebtPay(_ *cobra.Command, args []string) error {
	value, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	payment, err := cli.debts.AddPayment(cli.ctx, localUID, args[0], dto.CreatePaymentRequest{
		Value: value,
		Date:  dateOrToday(flagPaymentDate),
	})
	if err != nil {
		return err
	}
	fmt.Print(paymentTable([]models.DebtPayment{*payment}))
	return nil
}

func debtTable(debts []models.Debt) string {
	cur := cli.cfg.Profile.Currency
	rows := make([][]string, 0, len(debts))
	for _, d := range debts {
		p := ledger.Stats([]models.Debt{d})
		rows = append(rows, []string{
			d.Name,
			render.Money(d.TotalValue, cur),
			render.Money(d.PaidValue, cur),
			render.Money(d.MonthlyInstallment, cur),
			render.Bar(p.OverallProgress, 10) + " " + render.Percent(p.OverallProgress),
			d.DebtID,
		})
	}
	return render.Table{
		Title:   "Debts",
		Headers: []string{"Name", "Total", "Paid", "Installment", "Progress", "ID"},
		Rows:    rows,
	}.String()
}

func paymentTable(payments []models.DebtPayment) string {
	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{p.Date, render.Money(p.Value, cli.cfg.Profile.Currency), p.PaymentID})
	}
	return render.Table{
		Title:   "Payments",
		Headers: []string{"Date", "Value", "ID"},
		Rows:    rows,
	}.String()
}

func debtStats(s ledger.DebtStats) string {
	cur := cli.cfg.Profile.Currency
	return render.KeyValues("Debt totals", [][2]string{
		{"Debts", fmt.Sprint(s.Count)},
		{"Total", render.Money(s.TotalDebt, cur)},
		{"Paid", render.Money(s.TotalPaid, cur)},
		{"Remaining", render.Money(s.TotalRemaining, cur)},
		{"Progress", render.Bar(s.OverallProgress, 20) + " " + render.Percent(s.OverallProgress)},
	})
}

func dateOrToday(date string) string {
	if date != "" {
		return date
	}
	return time.Now().Format(models.DateLayout)
}
