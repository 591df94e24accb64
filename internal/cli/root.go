package cli

import (
	"github.com/spf13/cobra"

	"github.com/andy/agencyflow/internal/app"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "agencyflow",
	Short: "Client, billing and invoice manager for a digital marketing agency",
	Long: `AgencyFlow keeps track of clients, payments, services and expenses,
prints GST invoices and reminds you of monthly renewals.

By default, running agencyflow without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(servicesCmd)
	rootCmd.AddCommand(expensesCmd)
	rootCmd.AddCommand(agencyCmd)
	rootCmd.AddCommand(invoicesCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(remindersCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tuiCmd)
}
