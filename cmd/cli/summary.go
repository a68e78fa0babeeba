package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/cashflow-backend/internal/render"
)

var (
	flagMonth         string
	flagBreakdownType string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Income, expenses and category breakdown for a month",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&flagMonth, "month", "", "Month as YYYY-MM (default current)")
	summaryCmd.Flags().StringVar(&flagBreakdownType, "type", "expense", "Breakdown by income or expense")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	sum, err := cli.analytics.MonthSummary(cli.ctx, localUID, flagMonth)
	if err != nil {
		return err
	}
	bd, err := cli.analytics.CategoryBreakdown(cli.ctx, localUID, flagMonth, flagBreakdownType)
	if err != nil {
		return err
	}

	fmt.Println(render.Title("Summary " + sum.Month))
	fmt.Print(render.KeyValues("", [][2]string{
		{"Income", render.Money(sum.Income, sum.Currency)},
		{"Expenses", render.Money(sum.Expenses, sum.Currency)},
		{"Balance", render.Signed(sum.Balance, sum.Currency)},
		{"Transactions", fmt.Sprint(sum.Count)},
	}))

	rows := make([][]string, 0, len(bd.Items))
	for _, item := range bd.Items {
		rows = append(rows, []string{
			item.Category,
			render.Money(item.Total, bd.Currency),
			render.Bar(item.Percent, 10) + " " + render.Percent(item.Percent),
			fmt.Sprint(item.Count),
		})
	}
	fmt.Print(render.Table{
		Title:   "By category (" + bd.Type + ")",
		Headers: []string{"Category", "Total", "Share", "Count"},
		Rows:    rows,
	}.String())
	return nil
}
