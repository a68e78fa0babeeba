package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/cashflow-backend/internal/dto"
	"github.com/GregMSThompson/cashflow-backend/internal/models"
	"github.com/GregMSThompson/cashflow-backend/internal/render"
	"github.com/GregMSThompson/cashflow-backend/pkg/helpers"
)

var (
	flagTxCategory    string
	flagTxDate        string
	flagTxDescription string
	flagTxType        string
	flagTxListCat     string
	flagTxFrom        string
	flagTxTo          string
	flagTxLimit       int
)

var txCmd = &cobra.Command{
	Use:     "tx",
	Aliases: []string{"transactions"},
	Short:   "Record and list income and expenses",
}

var txAddCmd = &cobra.Command{
	Use:   "add <income|expense> <amount>",
	Short: "Record a transaction",
	Args:  cobra.ExactArgs(2),
	RunE:  runTxAdd,
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runTxList,
}

var txRmCmd = &cobra.Command{
	Use:   "rm <transaction-id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if err := cli.transactions.Delete(cli.ctx, localUID, args[0]); err != nil {
			return err
		}
		fmt.Println(render.Muted("deleted " + args[0]))
		return nil
	},
}

var txImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a JSON array of transactions",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxImport,
}

func init() {
	txAddCmd.Flags().StringVar(&flagTxCategory, "category", "other", "Category")
	txAddCmd.Flags().StringVar(&flagTxDate, "date", "", "Date as YYYY-MM-DD (default today)")
	txAddCmd.Flags().StringVarP(&flagTxDescription, "description", "m", "", "Description")
	_ = txAddCmd.MarkFlagRequired("description")

	txListCmd.Flags().StringVar(&flagTxType, "type", "", "Only income or expense")
	txListCmd.Flags().StringVar(&flagTxListCat, "category", "", "Only this category")
	txListCmd.Flags().StringVar(&flagTxFrom, "from", "", "Earliest date, YYYY-MM-DD")
	txListCmd.Flags().StringVar(&flagTxTo, "to", "", "Latest date, YYYY-MM-DD")
	txListCmd.Flags().IntVarP(&flagTxLimit, "limit", "n", 50, "Maximum rows, 0 for all")

	txCmd.AddCommand(txAddCmd, txListCmd, txRmCmd, txImportCmd)
	rootCmd.AddCommand(txCmd)
}

func runTxAdd(_ *cobra.Command, args []string) error {
	value, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	tx, err := cli.transactions.Create(cli.ctx, localUID, dto.TransactionRequest{
		Type:        args[0],
		Category:    flagTxCategory,
		Date:        dateOrToday(flagTxDate),
		Description: flagTxDescription,
		Value:       value,
	})
	if err != nil {
		return err
	}
	fmt.Print(transactionTable("Recorded", []models.Transaction{*tx}))
	return nil
}

func runTxList(_ *cobra.Command, _ []string) error {
	q := dto.TransactionQuery{
		Type:     helpers.NonZero(flagTxType),
		Category: helpers.NonZero(flagTxListCat),
		DateFrom: helpers.NonZero(flagTxFrom),
		DateTo:   helpers.NonZero(flagTxTo),
		Desc:     true,
		Limit:    flagTxLimit,
	}

	txs, err := cli.transactions.List(cli.ctx, localUID, q)
	if err != nil {
		return err
	}
	fmt.Print(transactionTable("Transactions", txs))
	return nil
}

func runTxImport(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var reqs []dto.TransactionRequest
	if err := json.Unmarshal(data, &reqs); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	txs, err := cli.transactions.Import(cli.ctx, localUID, reqs)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d transactions\n", len(txs))
	return nil
}

func transactionTable(title string, txs []models.Transaction) string {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		value := tx.Value
		if tx.Type == models.TransactionExpense {
			value = value.Neg()
		}
		rows = append(rows, []string{tx.Date, string(tx.Type), tx.Category, tx.Description, render.Signed(value, cli.cfg.Profile.Currency), tx.TransactionID})
	}
	return render.Table{
		Title:   title,
		Headers: []string{"Date", "Type", "Category", "Description", "Value", "ID"},
		Rows:    rows,
	}.String()
}
