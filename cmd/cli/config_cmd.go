package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/cashflow-backend/internal/config"
	"github.com/GregMSThompson/cashflow-backend/internal/render"
)

// configCmd edits the TOML file only, so it skips opening the database.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change local settings",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.LoadLocal(flagConfig)
		if err != nil {
			return err
		}
		cli.cfg = cfg
		cli.cfgPath = flagConfig
		return nil
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Print(render.KeyValues(cli.cfgPath, [][2]string{
			{"database_path", cli.cfg.General.DatabasePath},
			{"log_level", cli.cfg.General.LogLevel},
			{"monthly_income", cli.cfg.Profile.MonthlyIncome},
			{"currency", cli.cfg.Profile.Currency},
		}))
		return nil
	},
}

var configIncomeCmd = &cobra.Command{
	Use:   "set-income <amount>",
	Short: "Set the baseline monthly income",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		income, err := parseAmount(args[0])
		if err != nil {
			return err
		}
		if income.IsNegative() {
			return fmt.Errorf("monthly income must not be negative")
		}
		cli.cfg.Profile.MonthlyIncome = income.String()
		return saveConfig()
	},
}

var configCurrencyCmd = &cobra.Command{
	Use:   "set-currency <code>",
	Short: "Set the display currency (3-letter ISO code)",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		code := strings.ToUpper(strings.TrimSpace(args[0]))
		if len(code) != 3 {
			return fmt.Errorf("currency must be a 3-letter ISO code")
		}
		cli.cfg.Profile.Currency = code
		return saveConfig()
	},
}

var configDBCmd = &cobra.Command{
	Use:   "set-db <path>",
	Short: "Set the SQLite database path",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cli.cfg.General.DatabasePath = args[0]
		return saveConfig()
	},
}

func init() {
	configCmd.AddCommand(configIncomeCmd, configCurrencyCmd, configDBCmd)
	rootCmd.AddCommand(configCmd)
}

func saveConfig() error {
	if err := config.SaveLocal(cli.cfgPath, cli.cfg); err != nil {
		return err
	}
	fmt.Println(render.Muted("saved " + cli.cfgPath))
	return nil
}
