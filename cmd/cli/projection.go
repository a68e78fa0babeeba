package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/cashflow-backend/internal/forecast"
	"github.com/GregMSThompson/cashflow-backend/internal/render"
)

var flagIncome string

var projectionCmd = &cobra.Command{
	Use:   "projection",
	Short: "Project this month's closing balance from spending so far",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		income, err := optionalAmount(flagIncome)
		if err != nil {
			return err
		}
		p, err := cli.projection.MonthProjection(cli.ctx, localUID, income)
		if err != nil {
			return err
		}
		fmt.Print(projectionView("Month-end projection", p))
		return nil
	},
}

var whatIfCmd = &cobra.Command{
	Use:   "whatif <amount>",
	Short: "Preview the balance after spending an amount against the monthly income",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		expense, err := parseAmount(args[0])
		if err != nil {
			return err
		}
		income, err := optionalAmount(flagIncome)
		if err != nil {
			return err
		}
		p, err := cli.projection.WhatIf(cli.ctx, localUID, expense, income)
		if err != nil {
			return err
		}
		fmt.Print(projectionView("What if", p))
		return nil
	},
}

func init() {
	projectionCmd.Flags().StringVar(&flagIncome, "income", "", "Use this monthly income instead of the configured one")
	whatIfCmd.Flags().StringVar(&flagIncome, "income", "", "Use this monthly income instead of the configured one")
	rootCmd.AddCommand(projectionCmd, whatIfCmd)
}

func projectionView(title string, p forecast.Projection) string {
	cur := cli.cfg.Profile.Currency
	pairs := [][2]string{
		{"Baseline income", render.Money(p.BaselineIncome, cur)},
		{"Extra income", render.Money(p.ExtraIncome, cur)},
		{"Total income", render.Money(p.TotalIncome, cur)},
		{"Spent so far", render.Money(p.TotalExpenses, cur)},
	}
	if p.DaysInMonth > 0 {
		pairs = append(pairs,
			[2]string{"Daily average", render.Money(p.DailyAverageExpense, cur)},
			[2]string{"Day", fmt.Sprintf("%d of %d", p.DayOfMonth, p.DaysInMonth)},
		)
	}
	pairs = append(pairs,
		[2]string{"Projected expenses", render.Money(p.ProjectedMonthlyExpenses, cur)},
		[2]string{"Projected balance", render.Signed(p.ProjectedBalance, cur)},
	)
	if p.DaysUntilNegative != nil {
		pairs = append(pairs, [2]string{"Days until negative", fmt.Sprint(*p.DaysUntilNegative)})
	}
	return render.KeyValues(title, pairs)
}
