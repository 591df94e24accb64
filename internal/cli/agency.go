package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var agencyCmd = &cobra.Command{
	Use:   "agency",
	Short: "Manage the agency profile printed on invoices",
}

var agencyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the agency profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := appInstance.AgencyService.Get(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load agency profile: %w", err)
		}

		fmt.Println(profile.Name)
		fmt.Printf("  Address: %s\n", profile.Address)
		fmt.Printf("  Phone:   %s\n", profile.Phone)
		fmt.Printf("  Email:   %s\n", profile.Email)
		fmt.Printf("  GSTIN:   %s\n", profile.GSTIN)
		if profile.Website != "" {
			fmt.Printf("  Website: %s\n", profile.Website)
		}
		if profile.LogoURL != "" {
			fmt.Printf("  Logo:    stored (%d bytes)\n", len(profile.LogoURL))
		} else {
			fmt.Println("  Logo:    none")
		}
		if profile.CustomInvoiceTemplate != "" {
			fmt.Println("  Custom invoice template: set")
		}
		return nil
	},
}

var agencySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update agency profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		profile, err := appInstance.AgencyService.Get(ctx)
		if err != nil {
			return fmt.Errorf("failed to load agency profile: %w", err)
		}

		fields := map[string]*string{
			"name":    &profile.Name,
			"address": &profile.Address,
			"phone":   &profile.Phone,
			"email":   &profile.Email,
			"gst":     &profile.GSTIN,
			"website": &profile.Website,
		}
		changed := 0
		for flag, target := range fields {
			if cmd.Flags().Changed(flag) {
				*target, _ = cmd.Flags().GetString(flag)
				changed++
			}
		}
		if changed == 0 {
			return fmt.Errorf("nothing to update: pass at least one of --name, --address, --phone, --email, --gst, --website")
		}

		if err := appInstance.AgencyService.Save(ctx, profile); err != nil {
			return fmt.Errorf("failed to save agency profile: %w", err)
		}

		fmt.Printf("✓ Agency profile saved: %s\n", profile.Name)
		return nil
	},
}

var agencyLogoCmd = &cobra.Command{
	Use:   "logo <file>",
	Short: "Import a logo image, or remove it with --remove",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		remove, _ := cmd.Flags().GetBool("remove")

		if remove {
			if err := appInstance.AgencyService.RemoveLogo(ctx); err != nil {
				return fmt.Errorf("failed to remove logo: %w", err)
			}
			fmt.Println("✓ Logo removed")
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("logo file is required")
		}

		if _, err := appInstance.AgencyService.ImportLogo(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to import logo: %w", err)
		}

		fmt.Printf("✓ Logo imported from %s\n", args[0])
		return nil
	},
}

var agencyTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Show, replace or reset the custom invoice template",
}

var agencyTemplateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the custom invoice template",
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, err := appInstance.AgencyService.CustomTemplate(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load template: %w", err)
		}
		fmt.Println(tmpl)
		return nil
	},
}

var agencyTemplateSetCmd = &cobra.Command{
	Use:   "set <file>",
	Short: "Replace the custom invoice template with the contents of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}

		if err := appInstance.AgencyService.SetCustomTemplate(context.Background(), string(data)); err != nil {
			return fmt.Errorf("failed to save template: %w", err)
		}

		fmt.Printf("✓ Custom invoice template saved from %s\n", args[0])
		return nil
	},
}

var agencyTemplateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default custom invoice template",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appInstance.AgencyService.ResetCustomTemplate(context.Background()); err != nil {
			return fmt.Errorf("failed to reset template: %w", err)
		}
		fmt.Println("✓ Custom invoice template reset")
		return nil
	},
}

func init() {
	agencyCmd.AddCommand(agencyShowCmd)
	agencyCmd.AddCommand(agencySetCmd)
	agencyCmd.AddCommand(agencyLogoCmd)
	agencyCmd.AddCommand(agencyTemplateCmd)

	agencyTemplateCmd.AddCommand(agencyTemplateShowCmd)
	agencyTemplateCmd.AddCommand(agencyTemplateSetCmd)
	agencyTemplateCmd.AddCommand(agencyTemplateResetCmd)

	agencySetCmd.Flags().String("name", "", "Agency name")
	agencySetCmd.Flags().String("address", "", "Agency address")
	agencySetCmd.Flags().String("phone", "", "Agency phone")
	agencySetCmd.Flags().String("email", "", "Agency email")
	agencySetCmd.Flags().String("gst", "", "Agency GSTIN")
	agencySetCmd.Flags().String("website", "", "Agency website")

	agencyLogoCmd.Flags().Bool("remove", false, "Remove the stored logo")
}
