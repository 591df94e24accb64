package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Monthly renewal reminders",
}

var remindersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List renewals from five days overdue to a week ahead",
	RunE: func(cmd *cobra.Command, args []string) error {
		renewals, err := appInstance.ReminderService.Upcoming(context.Background(), time.Now())
		if err != nil {
			return fmt.Errorf("failed to list renewals: %w", err)
		}

		if len(renewals) == 0 {
			fmt.Println("No upcoming renewals")
			return nil
		}

		fmt.Printf("%-28s %-12s %14s  %s\n", "Client", "Renews", "Deal", "Status")
		fmt.Println(strings.Repeat("-", 72))
		for _, r := range renewals {
			fmt.Printf("%s %-12s %s  %s\n",
				pad(truncate(r.Client.BusinessName, 28), 28),
				r.Next.Format("02 Jan 2006"),
				padLeft(inr(r.Client.DealAmount), 14),
				r.Label(),
			)
		}
		return nil
	},
}

var remindersAlertCmd = &cobra.Command{
	Use:   "alert",
	Short: "Build the owner alert for renewals due in the next two days",
	RunE: func(cmd *cobra.Command, args []string) error {
		alert, err := appInstance.ReminderService.Alert(context.Background(), time.Now())
		if err != nil {
			return fmt.Errorf("failed to build alert: %w", err)
		}
		if alert == nil {
			fmt.Println("No renewals due in the next two days")
			return nil
		}

		fmt.Println(alert.Message)
		fmt.Println()

		viaEmail, _ := cmd.Flags().GetBool("email")
		link := alert.WhatsAppURL
		if viaEmail {
			link = alert.MailtoURL
		}
		fmt.Println(link)

		if open, _ := cmd.Flags().GetBool("open"); open {
			return openURL(link)
		}
		return nil
	},
}

var remindersWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Check for renewals on the configured schedule until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		watcher := appInstance.NewReminderWatcher()
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer watcher.Stop()

		fmt.Printf("Watching renewals on %q, next check %s\n",
			appInstance.Config.Reminders.Schedule,
			watcher.Next().Format("02 Jan 2006 15:04"),
		)
		fmt.Println("Press Ctrl+C to stop")

		if now, _ := cmd.Flags().GetBool("now"); now {
			if _, err := watcher.Check(ctx); err != nil {
				return fmt.Errorf("reminder check failed: %w", err)
			}
		}

		<-ctx.Done()
		fmt.Println("\nStopping reminder watcher")
		return nil
	},
}

func init() {
	remindersCmd.AddCommand(remindersListCmd)
	remindersCmd.AddCommand(remindersAlertCmd)
	remindersCmd.AddCommand(remindersWatchCmd)

	remindersAlertCmd.Flags().Bool("whatsapp", true, "Print the WhatsApp link")
	remindersAlertCmd.Flags().Bool("email", false, "Print the email link instead")
	remindersAlertCmd.Flags().Bool("open", false, "Open the link")

	remindersWatchCmd.Flags().Bool("now", false, "Run one check immediately")
}
