package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or import all agency records as JSON",
}

var backupExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write every record to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create backup file: %w", err)
		}
		defer f.Close()

		if err := appInstance.BackupService.Export(context.Background(), f); err != nil {
			return fmt.Errorf("failed to export backup: %w", err)
		}

		fmt.Printf("✓ Backup written to %s\n", args[0])
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace records with the ones in a JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open backup file: %w", err)
		}
		defer f.Close()

		if !confirmPrompt("Records in the backup will replace the current ones. Continue?", force) {
			fmt.Println("Cancelled.")
			return nil
		}

		keys, err := appInstance.BackupService.Import(context.Background(), f)
		if err != nil {
			return fmt.Errorf("failed to import backup: %w", err)
		}

		fmt.Printf("✓ Imported %d record(s)\n", len(keys))
		for _, k := range keys {
			fmt.Printf("  %s\n", k)
		}
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)

	backupImportCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
}
