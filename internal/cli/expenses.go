package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/andy/agencyflow/internal/domain"
)

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "Track agency expenses",
	Long:  `List, add and delete expenses.`,
}

var expensesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		category, err := categoryFlag(cmd)
		if err != nil {
			return err
		}

		expenses, err := appInstance.ExpenseService.List(ctx, category)
		if err != nil {
			return fmt.Errorf("failed to list expenses: %w", err)
		}

		if len(expenses) == 0 {
			fmt.Println("No expenses found")
			return nil
		}

		fmt.Printf("%-14s %-10s %-28s %-26s %12s\n", "ID", "Date", "Title", "Category", "Amount")
		fmt.Println(strings.Repeat("-", 94))

		var total float64
		for _, e := range expenses {
			fmt.Printf("%-14s %-10s %s %s %s\n",
				e.ID,
				e.Date.Local().Format(domain.DateLayout),
				pad(truncate(e.Title, 28), 28),
				pad(truncate(e.Category, 26), 26),
				padLeft(inr(e.Amount), 12),
			)
			total += e.Amount
		}

		stats, err := appInstance.ReportService.ExpenseStats(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("failed to total expenses: %w", err)
		}

		fmt.Printf("\nShown: %d expense(s), %s\n", len(expenses), inr(total))
		fmt.Printf("All time: %s   This month: %s\n", inr(stats.Total), inr(stats.ThisMonth))
		return nil
	},
}

var expensesAddCmd = &cobra.Command{
	Use:   "add <title> <amount>",
	Short: "Log an expense",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}

		category, err := categoryFlag(cmd)
		if err != nil {
			return err
		}
		if category == "" {
			category = "Miscellaneous"
		}

		expense := domain.NewExpense(args[0], amount, category)
		if cmd.Flags().Changed("date") {
			s, _ := cmd.Flags().GetString("date")
			d, err := domain.ParseDate(s)
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}
			expense.Date = d
		}
		expense.Notes, _ = cmd.Flags().GetString("notes")

		if err := appInstance.ExpenseService.Add(context.Background(), expense); err != nil {
			return fmt.Errorf("failed to add expense: %w", err)
		}

		fmt.Printf("✓ Expense logged: %s %s (%s)\n", expense.Title, inr(expense.Amount), expense.Category)
		return nil
	},
}

var expensesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !confirmPrompt(fmt.Sprintf("Delete expense %s?", args[0]), force) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.ExpenseService.Delete(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}

		fmt.Printf("✓ Expense deleted: %s\n", args[0])
		return nil
	},
}

var expensesCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List expense categories",
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range domain.ExpenseCategories {
			fmt.Println(c)
		}
	},
}

// categoryFlag resolves --category to a catalog category, accepting a prefix
func categoryFlag(cmd *cobra.Command) (string, error) {
	input, _ := cmd.Flags().GetString("category")
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	category, ok := domain.MatchExpenseCategory(input)
	if !ok {
		return "", fmt.Errorf("unknown or ambiguous category %q: see 'agencyflow expenses categories'", input)
	}
	return category, nil
}

func init() {
	expensesCmd.AddCommand(expensesListCmd)
	expensesCmd.AddCommand(expensesAddCmd)
	expensesCmd.AddCommand(expensesDeleteCmd)
	expensesCmd.AddCommand(expensesCategoriesCmd)

	expensesListCmd.Flags().String("category", "", "Only this category")

	expensesAddCmd.Flags().String("category", "Miscellaneous", "Expense category (prefix accepted)")
	expensesAddCmd.Flags().String("date", "", "Date (YYYY-MM-DD, default today)")
	expensesAddCmd.Flags().String("notes", "", "Notes")

	expensesDeleteCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
}
