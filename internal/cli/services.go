package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andy/agencyflow/internal/domain"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Manage the service catalog",
	Long: `List, add, edit and delete catalog services and their standard monthly price.

Clients keep the service names they were given, so renaming or deleting a
catalog entry does not change existing clients.`,
}

var servicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog services",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := appInstance.CatalogService.List(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list services: %w", err)
		}

		if len(services) == 0 {
			fmt.Println("No services found")
			return nil
		}

		fmt.Printf("%-14s %-26s %12s  %s\n", "ID", "Name", "Price", "Description")
		fmt.Println(strings.Repeat("-", 100))

		for _, s := range services {
			fmt.Printf("%-14s %s %s  %s\n",
				s.ID,
				pad(truncate(s.Name, 26), 26),
				padLeft(inr(s.Price), 12),
				truncate(s.Description, 44),
			)
			if s.Notes != "" {
				fmt.Printf("%-14s %-26s %12s  note: %s\n", "", "", "", s.Notes)
			}
		}

		fmt.Printf("\nTotal: %d service(s)\n", len(services))
		return nil
	},
}

var servicesAddCmd = &cobra.Command{
	Use:   "add <name> <price>",
	Short: "Add a catalog service",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		description, _ := cmd.Flags().GetString("description")
		notes, _ := cmd.Flags().GetString("notes")

		def := domain.NewServiceDefinition(args[0], price, description)
		def.Notes = notes

		if err := appInstance.CatalogService.Create(context.Background(), def); err != nil {
			return fmt.Errorf("failed to create service: %w", err)
		}

		fmt.Printf("✓ Service added: %s at %s (ID: %s)\n", def.Name, inr(def.Price), def.ID)
		return nil
	},
}

var servicesEditCmd = &cobra.Command{
	Use:   "edit <id|name>",
	Short: "Edit a catalog service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		def, err := appInstance.CatalogService.Resolve(ctx, args[0])
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("name") {
			def.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("price") {
			s, _ := cmd.Flags().GetString("price")
			price, err := parseAmount(s)
			if err != nil {
				return err
			}
			def.Price = price
		}
		if cmd.Flags().Changed("description") {
			def.Description, _ = cmd.Flags().GetString("description")
		}
		if cmd.Flags().Changed("notes") {
			def.Notes, _ = cmd.Flags().GetString("notes")
		}

		if err := appInstance.CatalogService.Update(ctx, def); err != nil {
			return fmt.Errorf("failed to update service: %w", err)
		}

		fmt.Printf("✓ Service updated: %s\n", def.Name)
		return nil
	},
}

var servicesDeleteCmd = &cobra.Command{
	Use:   "delete <id|name>",
	Short: "Delete a catalog service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		force, _ := cmd.Flags().GetBool("force")

		def, err := appInstance.CatalogService.Resolve(ctx, args[0])
		if err != nil {
			return err
		}

		if !confirmPrompt(fmt.Sprintf("Delete service %s?", def.Name), force) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.CatalogService.Delete(ctx, def.ID); err != nil {
			return fmt.Errorf("failed to delete service: %w", err)
		}

		fmt.Printf("✓ Service deleted: %s\n", def.Name)
		return nil
	},
}

func init() {
	servicesCmd.AddCommand(servicesListCmd)
	servicesCmd.AddCommand(servicesAddCmd)
	servicesCmd.AddCommand(servicesEditCmd)
	servicesCmd.AddCommand(servicesDeleteCmd)

	servicesAddCmd.Flags().String("description", "", "What the service includes")
	servicesAddCmd.Flags().String("notes", "", "Internal notes")

	servicesEditCmd.Flags().String("name", "", "New name")
	servicesEditCmd.Flags().String("price", "", "New standard price")
	servicesEditCmd.Flags().String("description", "", "New description")
	servicesEditCmd.Flags().String("notes", "", "New notes")

	servicesDeleteCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
}
