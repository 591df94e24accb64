package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/andy/agencyflow/internal/domain"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  `List, add, edit and delete clients, and record their payments.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		query, _ := cmd.Flags().GetString("search")
		dueOnly, _ := cmd.Flags().GetBool("due-only")

		clients, err := appInstance.ClientService.Search(ctx, query, dueOnly)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		if len(clients) == 0 {
			fmt.Println("No clients found")
			return nil
		}

		fmt.Printf("%-14s %-26s %-20s %-9s %12s %12s %12s\n", "ID", "Business", "Contact", "Status", "Deal", "Paid", "Due")
		fmt.Println(strings.Repeat("-", 111))

		for _, c := range clients {
			fmt.Printf("%-14s %s %s %-9s %s %s %s\n",
				c.ID,
				pad(truncate(c.BusinessName, 26), 26),
				pad(truncate(c.Name, 20), 20),
				c.Status,
				padLeft(inr(c.DealAmount), 12),
				padLeft(inr(c.Paid()), 12),
				padLeft(inr(c.Due()), 12),
			)
		}

		fmt.Printf("\nTotal: %d client(s)\n", len(clients))
		return nil
	},
}

var clientsShowCmd = &cobra.Command{
	Use:   "show <id|business>",
	Short: "Show a client with payment history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := appInstance.ClientService.Resolve(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n", c.BusinessName, c.Status)
		fmt.Printf("  ID:       %s\n", c.ID)
		fmt.Printf("  Contact:  %s\n", c.Name)
		fmt.Printf("  Phone:    %s\n", c.Phone)
		fmt.Printf("  Email:    %s\n", c.Email)
		if c.Address != "" {
			fmt.Printf("  Address:  %s\n", c.Address)
		}
		if c.GSTIN != "" {
			fmt.Printf("  GSTIN:    %s\n", c.GSTIN)
		}
		fmt.Printf("  Services: %s\n", c.ServicesLabel())
		fmt.Printf("  Start:    %s\n", c.StartDate.Format(domain.DateLayout))
		if c.EndDate != nil && !c.EndDate.IsZero() {
			fmt.Printf("  End:      %s\n", c.EndDate.Format(domain.DateLayout))
		}
		fmt.Printf("  Deal:     %s\n", inr(c.DealAmount))
		fmt.Printf("  Paid:     %s (%.0f%%)\n", inr(c.Paid()), c.Progress()*100)
		fmt.Printf("  Due:      %s\n", inr(c.Due()))
		if c.Notes != "" {
			fmt.Printf("  Notes:    %s\n", c.Notes)
		}

		if len(c.Payments) > 0 {
			fmt.Println("\nPayments:")
			for _, p := range c.Payments {
				fmt.Printf("  %s  %s  %s\n", p.Date.Local().Format("02 Jan 2006"), padLeft(inr(p.Amount), 12), p.Note)
			}
		}
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new client",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		name, _ := cmd.Flags().GetString("name")
		business, _ := cmd.Flags().GetString("business")

		client := domain.NewClient(name, business, 0)
		if err := applyClientFlags(ctx, cmd, client); err != nil {
			return err
		}

		if err := appInstance.ClientService.Create(ctx, client); err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		fmt.Printf("✓ Client created: %s (ID: %s)\n", client.BusinessName, client.ID)
		fmt.Printf("  Deal: %s\n", inr(client.DealAmount))
		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit <id|business>",
	Short: "Edit an existing client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := appInstance.ClientService.Resolve(ctx, args[0])
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("name") {
			client.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("business") {
			client.BusinessName, _ = cmd.Flags().GetString("business")
		}
		if err := applyClientFlags(ctx, cmd, client); err != nil {
			return err
		}

		if err := appInstance.ClientService.Update(ctx, client); err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}

		fmt.Printf("✓ Client updated: %s\n", client.BusinessName)
		return nil
	},
}

var clientsPayCmd = &cobra.Command{
	Use:   "pay <id|business> <amount>",
	Short: "Record a payment received from a client",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		note, _ := cmd.Flags().GetString("note")

		client, err := appInstance.ClientService.RecordPayment(context.Background(), args[0], amount, note, time.Now())
		if err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		fmt.Printf("✓ Payment of %s recorded for %s\n", inr(amount), client.BusinessName)
		fmt.Printf("  Paid: %s   Due: %s\n", inr(client.Paid()), inr(client.Due()))
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete <id|business>",
	Short: "Delete a client and its payment history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		force, _ := cmd.Flags().GetBool("force")

		client, err := appInstance.ClientService.Resolve(ctx, args[0])
		if err != nil {
			return err
		}

		if !confirmPrompt(fmt.Sprintf("Delete %s and all its payments?", client.BusinessName), force) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.ClientService.Delete(ctx, client.ID); err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}

		fmt.Printf("✓ Client deleted: %s\n", client.BusinessName)
		return nil
	},
}

// applyClientFlags copies the shared add/edit flags that were set onto client
func applyClientFlags(ctx context.Context, cmd *cobra.Command, client *domain.Client) error {
	flags := cmd.Flags()

	if flags.Changed("phone") {
		client.Phone, _ = flags.GetString("phone")
	}
	if flags.Changed("email") {
		client.Email, _ = flags.GetString("email")
	}
	if flags.Changed("address") {
		client.Address, _ = flags.GetString("address")
	}
	if flags.Changed("gst") {
		gst, _ := flags.GetString("gst")
		client.GSTIN = strings.ToUpper(strings.TrimSpace(gst))
	}
	if flags.Changed("notes") {
		client.Notes, _ = flags.GetString("notes")
	}
	if flags.Changed("services") {
		services, _ := flags.GetString("services")
		client.Services = splitList(services)
	}
	if flags.Changed("status") {
		s, _ := flags.GetString("status")
		status, err := domain.ParseClientStatus(s)
		if err != nil {
			return err
		}
		client.Status = status
	}
	if flags.Changed("start") {
		s, _ := flags.GetString("start")
		start, err := domain.ParseDate(s)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		client.StartDate = start
	}
	if flags.Changed("end") {
		s, _ := flags.GetString("end")
		end, err := domain.ParseDate(s)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
		if end.IsZero() {
			client.EndDate = nil
		} else {
			client.EndDate = &end
		}
	}

	standard, _ := flags.GetBool("standard-pricing")
	switch {
	case standard:
		price, err := appInstance.ClientService.StandardPrice(ctx, client.Services)
		if err != nil {
			return fmt.Errorf("failed to price services: %w", err)
		}
		client.DealAmount = price
	case flags.Changed("deal"):
		s, _ := flags.GetString("deal")
		deal, err := parseAmount(s)
		if err != nil {
			return err
		}
		client.DealAmount = deal
	}
	return nil
}

func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Contact name")
	cmd.Flags().String("business", "", "Business name")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("address", "", "Billing address")
	cmd.Flags().String("gst", "", "Client GSTIN")
	cmd.Flags().String("services", "", "Comma separated service names from the catalog")
	cmd.Flags().String("deal", "", "Total deal amount")
	cmd.Flags().Bool("standard-pricing", false, "Set the deal to the catalog price of the services")
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "End date (YYYY-MM-DD, empty to clear)")
	cmd.Flags().String("status", "", "LEAD, ACTIVE, PAUSED, STOPPED or CLOSED")
	cmd.Flags().String("notes", "", "Notes about the client")
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsShowCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsEditCmd)
	clientsCmd.AddCommand(clientsPayCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)

	// List flags
	clientsListCmd.Flags().String("search", "", "Filter by business or contact name")
	clientsListCmd.Flags().Bool("due-only", false, "Only clients with an outstanding balance")

	addClientFlags(clientsAddCmd)
	clientsAddCmd.MarkFlagRequired("name")
	clientsAddCmd.MarkFlagRequired("business")

	addClientFlags(clientsEditCmd)

	clientsPayCmd.Flags().String("note", "", "Payment note")
	clientsDeleteCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
}
