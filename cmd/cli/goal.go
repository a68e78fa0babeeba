package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
	"github.com/GregMSThompson/cashflow-backend/internal/render"
)

var (
	flagGoalCurrent  string
	flagGoalDeadline string
)

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"goals"},
	Short:   "Savings goals",
}

var goalAddCmd = &cobra.Command{
	Use:   "add <name> <target>",
	Short: "Create a savings goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalAdd,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals with their progress",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		goals, err := cli.goals.List(cli.ctx, localUID)
		if err != nil {
			return err
		}
		out, err := goalTable(goals)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

var goalContributeCmd = &cobra.Command{
	Use:   "contribute <goal-id> <amount>",
	Short: "Add money to a goal",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		goal, err := cli.goals.Contribute(cli.ctx, localUID, args[0], amount)
		if err != nil {
			return err
		}
		out, err := goalTable([]models.InvestmentGoal{*goal})
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	goalAddCmd.Flags().StringVar(&flagGoalCurrent, "current", "0", "Amount already saved")
	goalAddCmd.Flags().StringVar(&flagGoalDeadline, "deadline", "", "Optional deadline as YYYY-MM-DD")

	goalCmd.AddCommand(goalAddCmd, goalListCmd, goalContributeCmd)
	rootCmd.AddCommand(goalCmd)
}

func runGoalAdd(_ *cobra.Command, args []string) error {
	target, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	current, err := parseAmount(flagGoalCurrent)
	if err != nil {
		return err
	}

	goal, err := cli.goals.Create(cli.ctx, localUID, dto.GoalRequest{
		Name:         args[0],
		TargetValue:  target,
		CurrentValue: current,
		Deadline:     flagGoalDeadline,
	})
	if err != nil {
		return err
	}
	out, err := goalTable([]models.InvestmentGoal{*goal})
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func goalTable(goals []models.InvestmentGoal) (string, error) {
	cur := cli.cfg.Profile.Currency
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		p, err := cli.goals.Progress(cli.ctx, localUID, g.GoalID)
		if err != nil {
			return "", err
		}

		plan := "-"
		switch {
		case p.Reached:
			plan = "reached"
		case p.Overdue:
			plan = "overdue"
		case p.MonthlyNeeded != nil:
			plan = fmt.Sprintf("%s/month for %d months", render.Money(*p.MonthlyNeeded, cur), *p.MonthsLeft)
		}

		rows = append(rows, []string{
			g.Name,
			render.Money(g.CurrentValue, cur),
			render.Money(g.TargetValue, cur),
			render.Bar(p.Progress, 10) + " " + render.Percent(p.Progress),
			plan,
			g.GoalID,
		})
	}
	return render.Table{
		Title:   "Goals",
		Headers: []string{"Name", "Saved", "Target", "Progress", "Plan", "ID"},
		Rows:    rows,
	}.String(), nil
}
