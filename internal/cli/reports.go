package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/andy/agencyflow/internal/export"
	"github.com/andy/agencyflow/internal/service"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Financial reports and exports",
}

var reportsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show revenue, collections, expenses and profit",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := appInstance.ReportService.Summary(context.Background())
		if err != nil {
			return fmt.Errorf("failed to compute summary: %w", err)
		}

		fmt.Println("Summary")
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("  Total revenue:    %s\n", inr(s.TotalRevenue))
		fmt.Printf("  Collected:        %s\n", inr(s.TotalCollected))
		fmt.Printf("  Outstanding:      %s\n", inr(s.TotalDue))
		fmt.Printf("  Expenses:         %s\n", inr(s.TotalExpenses))
		fmt.Printf("  Net profit:       %s\n", inr(s.NetProfit))
		fmt.Printf("  Active clients:   %d\n", s.ActiveClients)
		return nil
	},
}

var reportsTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show revenue and expenses for the last six months",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := appInstance.ReportService.Dashboard(context.Background(), time.Now())
		if err != nil {
			return fmt.Errorf("failed to compute trend: %w", err)
		}

		fmt.Printf("%-8s %14s %14s %14s\n", "Month", "Revenue", "Expenses", "Profit")
		fmt.Println(strings.Repeat("-", 53))
		for _, p := range d.Trend {
			fmt.Printf("%-8s %s %s %s\n",
				p.Label,
				padLeft(inr(p.Revenue), 14),
				padLeft(inr(p.Expenses), 14),
				padLeft(inr(p.Profit), 14),
			)
		}
		return nil
	},
}

var reportsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show expenses by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := appInstance.ReportService.Dashboard(context.Background(), time.Now())
		if err != nil {
			return fmt.Errorf("failed to compute categories: %w", err)
		}

		if len(d.Expenses) == 0 {
			fmt.Println("No expenses found")
			return nil
		}

		for _, c := range d.Expenses {
			fmt.Printf("%s %s\n", pad(c.Category, 28), padLeft(inr(c.Total), 14))
		}
		return nil
	},
}

var reportsClientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Show paid and due amounts for the first ten clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := appInstance.ReportService.Dashboard(context.Background(), time.Now())
		if err != nil {
			return fmt.Errorf("failed to compute client figures: %w", err)
		}

		if len(d.Clients) == 0 {
			fmt.Println("No clients found")
			return nil
		}

		fmt.Printf("%-28s %14s %14s\n", "Client", "Paid", "Due")
		fmt.Println(strings.Repeat("-", 58))
		for _, b := range d.Clients {
			fmt.Printf("%s %s %s\n", pad(truncate(b.FullName, 28), 28), padLeft(inr(b.Paid), 14), padLeft(inr(b.Due), 14))
		}
		return nil
	},
}

var reportsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export revenue or expense reports as CSV or Excel",
}

var reportsExportRevenueCmd = &cobra.Command{
	Use:   "revenue",
	Short: "Export payments received in a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _ := cmd.Flags().GetString("period")
		period, err := export.ParsePeriod(s)
		if err != nil {
			return err
		}

		report, err := appInstance.ReportService.RevenueReport(context.Background(), period, time.Now())
		if errors.Is(err, export.ErrNoRevenueData) {
			fmt.Println("No revenue data found for the selected period.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to build revenue report: %w", err)
		}

		return saveReport(cmd, report)
	},
}

var reportsExportExpensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "Export every expense",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := appInstance.ReportService.ExpenseReport(context.Background(), time.Now())
		if errors.Is(err, export.ErrNoExpenses) {
			fmt.Println("No expenses to export.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to build expense report: %w", err)
		}

		return saveReport(cmd, report)
	},
}

func saveReport(cmd *cobra.Command, report *export.Report) error {
	format := service.FormatCSV
	if xlsx, _ := cmd.Flags().GetBool("xlsx"); xlsx {
		format = service.FormatXLSX
	}

	path, err := appInstance.ReportService.SaveReport(report, format)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	fmt.Printf("✓ Report saved: %s (%d rows)\n", path, len(report.Rows))
	return nil
}

func init() {
	reportsCmd.AddCommand(reportsSummaryCmd)
	reportsCmd.AddCommand(reportsTrendCmd)
	reportsCmd.AddCommand(reportsCategoriesCmd)
	reportsCmd.AddCommand(reportsClientsCmd)
	reportsCmd.AddCommand(reportsExportCmd)

	reportsExportCmd.AddCommand(reportsExportRevenueCmd)
	reportsExportCmd.AddCommand(reportsExportExpensesCmd)

	reportsExportRevenueCmd.Flags().String("period", "month", "week, month, year or all")
	reportsExportRevenueCmd.Flags().Bool("xlsx", false, "Write an Excel workbook instead of CSV")
	reportsExportExpensesCmd.Flags().Bool("xlsx", false, "Write an Excel workbook instead of CSV")
}
