package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all agency data",
	Long: `Delete all clients, services, expenses, the agency profile, the invoice
counter and the issued invoice log. The next run starts from the sample data.

Examples:
  agencyflow reset            # Ask before deleting
  agencyflow reset --force    # Delete without asking`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !confirmPrompt("This will delete ALL data (clients, services, expenses, invoices, agency profile). Continue?", force) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.BackupService.Reset(context.Background()); err != nil {
			return fmt.Errorf("failed to reset data: %w", err)
		}

		fmt.Println("All data has been deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
}
