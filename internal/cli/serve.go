package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andy/agencyflow/internal/logger"
	"github.com/andy/agencyflow/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve issued invoices to the browser for printing",
	Long: `Serve every issued invoice on the configured address so it can be opened
in a browser and sent to the print dialog. The reminder watcher runs
alongside unless --no-reminders is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := appInstance.Config.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if noReminders, _ := cmd.Flags().GetBool("no-reminders"); !noReminders {
			watcher := appInstance.NewReminderWatcher()
			if err := watcher.Start(ctx); err != nil {
				return err
			}
			defer watcher.Stop()
		}

		srv := server.New(appInstance.InvoiceService, logger.WithComponent("server"))

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Listen(addr)
		}()

		fmt.Printf("✓ Serving invoices on http://%s\n", addr)
		fmt.Println("Press Ctrl+C to stop")

		select {
		case err := <-errCh:
			return fmt.Errorf("invoice server stopped: %w", err)
		case <-ctx.Done():
		}

		fmt.Println("\nShutting down")
		return srv.Shutdown()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config)")
	serveCmd.Flags().Bool("no-reminders", false, "Do not run the reminder watcher")
}
