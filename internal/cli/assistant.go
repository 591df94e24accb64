package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andy/agencyflow/internal/assistant"
	"github.com/andy/agencyflow/internal/share"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the assistant about your clients and expenses",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		question := strings.Join(args, " ")

		clients, err := appInstance.ClientService.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to load clients: %w", err)
		}
		expenses, err := appInstance.ExpenseService.List(ctx, "")
		if err != nil {
			return fmt.Errorf("failed to load expenses: %w", err)
		}

		fmt.Println(appInstance.Assistant.Ask(ctx, question, clients, expenses))
		return nil
	},
}

var draftCmd = &cobra.Command{
	Use:   "draft <client>",
	Short: "Draft a message to a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		k, _ := cmd.Flags().GetString("kind")
		kind, err := assistant.ParseMessageKind(k)
		if err != nil {
			return err
		}

		client, err := appInstance.ClientService.Resolve(ctx, args[0])
		if err != nil {
			return err
		}

		message := appInstance.Assistant.DraftMessage(ctx, client, kind, client.Due())
		fmt.Println(message)
		fmt.Println()

		if client.Phone != "" {
			fmt.Printf("WhatsApp: %s\n", share.WhatsAppURL(client.Phone, message))
		}
		if client.Email != "" {
			subject := fmt.Sprintf("Message from %s", agencyName(ctx))
			fmt.Printf("Email:    %s\n", share.MailtoURL(client.Email, subject, message))
		}
		return nil
	},
}

func agencyName(ctx context.Context) string {
	profile, err := appInstance.AgencyService.Get(ctx)
	if err != nil {
		return "AgencyFlow"
	}
	return profile.Name
}

func init() {
	draftCmd.Flags().String("kind", "payment", "payment, monthly, welcome or invoice")
}
