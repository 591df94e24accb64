package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/invoice"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Create, list and share invoices",
	Long: `Create GST invoices for a client, list the ones already printed and
share them over WhatsApp or email.`,
}

var invoicesNewCmd = &cobra.Command{
	Use:   "new <client>",
	Short: "Create an invoice for a client",
	Long: `Create an invoice for a client. Items are seeded from the client's services
unless --item is given. Each --item is "description:rate[:quantity[:hsn]]". --date takes
YYYY-MM-DD or free text such as "16 Oct 2026 (Revised)".

Without --print the invoice is only previewed and the number is still used.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		// flags are checked first so a typo does not use up a number
		opts, err := parseInvoiceFlags(cmd)
		if err != nil {
			return err
		}

		session, err := appInstance.InvoiceService.StartSession(ctx, args[0], time.Now())
		if err != nil {
			return fmt.Errorf("failed to start invoice: %w", err)
		}

		if err := opts.apply(session); err != nil {
			return err
		}

		printSession(session)

		doPrint, _ := cmd.Flags().GetBool("print")
		if !doPrint {
			fmt.Println("\nPreview only. Re-run with --print to issue the invoice.")
			return nil
		}

		issued, err := appInstance.InvoiceService.Print(ctx, session)
		if err != nil {
			return fmt.Errorf("failed to print invoice: %w", err)
		}

		fmt.Printf("\n✓ Invoice issued: %s\n", issued.InvoiceNumber)
		if issued.FilePath != "" {
			fmt.Printf("  Saved to: %s\n", issued.FilePath)
			if open, _ := cmd.Flags().GetBool("open"); open {
				if err := openURL(issued.FilePath); err != nil {
					fmt.Printf("  Could not open the invoice: %v\n", err)
				}
			}
		}
		return nil
	},
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issued invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var clientID *string
		if cmd.Flags().Changed("client") {
			ref, _ := cmd.Flags().GetString("client")
			client, err := appInstance.ClientService.Resolve(ctx, ref)
			if err != nil {
				return err
			}
			clientID = &client.ID
		}

		invoices, err := appInstance.InvoiceService.ListIssued(ctx, clientID)
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}

		if len(invoices) == 0 {
			fmt.Println("No invoices found")
			return nil
		}

		fmt.Printf("%-24s %-24s %-9s %-12s %12s %12s\n", "Number", "Client", "Layout", "Date", "Total", "Due")
		fmt.Println(strings.Repeat("-", 98))

		for _, inv := range invoices {
			fmt.Printf("%-24s %s %-9s %s %s %s\n",
				inv.InvoiceNumber,
				pad(truncate(inv.BusinessName, 24), 24),
				inv.Template,
				pad(inv.InvoiceDate, 12),
				padLeft(inr(inv.Total), 12),
				padLeft(inr(inv.Due), 12),
			)
		}

		fmt.Printf("\nTotal: %d invoice(s)\n", len(invoices))
		return nil
	},
}

var invoicesShareCmd = &cobra.Command{
	Use:   "share <number>",
	Short: "Share an issued invoice over WhatsApp or email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		viaEmail, _ := cmd.Flags().GetBool("email")

		var link string
		var err error
		if viaEmail {
			link, err = appInstance.InvoiceService.EmailLink(ctx, args[0])
		} else {
			link, err = appInstance.InvoiceService.WhatsAppLink(ctx, args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to share invoice: %w", err)
		}

		fmt.Println(link)
		if open, _ := cmd.Flags().GetBool("open"); open {
			return openURL(link)
		}
		return nil
	},
}

var invoicesTaxFieldsCmd = &cobra.Command{
	Use:   "tax-fields",
	Short: "List the keys accepted by --tax",
	Run: func(cmd *cobra.Command, args []string) {
		for _, key := range invoice.TaxFieldKeys() {
			fmt.Println(key)
		}
	},
}

type taxValue struct {
	key, value string
}

// invoiceOptions are the validated flags of invoices new
type invoiceOptions struct {
	template invoice.Template
	number   string
	date     string
	items    []invoice.Item
	tax      []taxValue
}

// parseInvoiceFlags reads --template, --number, --date, --item and --tax
func parseInvoiceFlags(cmd *cobra.Command) (*invoiceOptions, error) {
	flags := cmd.Flags()
	opts := &invoiceOptions{}

	if flags.Changed("template") {
		name, _ := flags.GetString("template")
		t, err := invoice.ParseTemplate(name)
		if err != nil {
			return nil, err
		}
		opts.template = t
	}

	if flags.Changed("number") {
		number, _ := flags.GetString("number")
		var check invoice.Session
		if err := check.SetNumber(number); err != nil {
			return nil, err
		}
		opts.number = check.Number
	}

	opts.date, _ = flags.GetString("date")

	rawItems, _ := flags.GetStringArray("item")
	for _, raw := range rawItems {
		item, err := parseItem(raw)
		if err != nil {
			return nil, err
		}
		opts.items = append(opts.items, item)
	}

	taxes, _ := flags.GetStringArray("tax")
	for _, kv := range taxes {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --tax %q: use key=value", kv)
		}
		key = strings.TrimSpace(key)
		var check invoice.TaxFields
		if err := check.Set(key, value); err != nil {
			return nil, err
		}
		opts.tax = append(opts.tax, taxValue{key: key, value: value})
	}
	return opts, nil
}

func (o *invoiceOptions) apply(session *invoice.Session) error {
	if o.template != "" {
		session.Template = o.template
	}
	if o.number != "" {
		if err := session.SetNumber(o.number); err != nil {
			return err
		}
	}
	if strings.TrimSpace(o.date) != "" {
		session.SetDate(o.date)
	}
	if len(o.items) > 0 {
		session.Items = o.items
	}
	for _, t := range o.tax {
		if err := session.Tax.Set(t.key, t.value); err != nil {
			return err
		}
	}
	return nil
}

// parseItem reads "description:rate[:quantity[:hsn]]"
func parseItem(raw string) (invoice.Item, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" {
		return invoice.Item{}, fmt.Errorf("invalid --item %q: use description:rate[:quantity[:hsn]]", raw)
	}

	rate, err := parseAmount(parts[1])
	if err != nil {
		return invoice.Item{}, err
	}

	item := invoice.Item{
		ID:          domain.NewID(),
		Description: strings.TrimSpace(parts[0]),
		Rate:        rate,
		Quantity:    1,
		HSN:         invoice.DefaultHSN,
	}
	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		qty, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return invoice.Item{}, fmt.Errorf("invalid quantity in --item %q", raw)
		}
		item.Quantity = qty
	}
	if len(parts) > 3 && strings.TrimSpace(parts[3]) != "" {
		item.HSN = strings.TrimSpace(parts[3])
	}
	return item, nil
}

func printSession(s *invoice.Session) {
	fmt.Printf("Invoice %s  (%s)\n", s.Number, s.Template)
	fmt.Printf("  Date:   %s\n", s.Date)
	fmt.Printf("  Bill to: %s\n", s.Client.BusinessName)
	fmt.Println()
	fmt.Printf("  %-3s %-36s %-8s %12s %6s %12s\n", "#", "Description", "HSN", "Rate", "Qty", "Amount")
	for i, item := range s.Items {
		fmt.Printf("  %-3d %s %-8s %s %6s %s\n",
			i+1,
			pad(truncate(item.Description, 36), 36),
			item.HSN,
			padLeft(inr(item.Rate), 12),
			strconv.FormatFloat(item.Quantity, 'f', -1, 64),
			padLeft(inr(item.Amount()), 12),
		)
	}

	t := s.Totals()
	fmt.Println()
	fmt.Printf("  Taxable value: %s\n", inr(t.Taxable))
	fmt.Printf("  CGST (9%%):     %s\n", inr(t.CGST))
	fmt.Printf("  SGST (9%%):     %s\n", inr(t.SGST))
	fmt.Printf("  Total:         %s\n", inr(t.Total))
	fmt.Printf("  Paid:          %s\n", inr(t.Paid))
	fmt.Printf("  Balance due:   %s\n", inr(t.Due))
	fmt.Printf("  In words:      %s\n", invoice.AmountInWords(t.Total))
}

func init() {
	invoicesCmd.AddCommand(invoicesNewCmd)
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesShareCmd)
	invoicesCmd.AddCommand(invoicesTaxFieldsCmd)

	addInvoiceFlags(invoicesNewCmd)
	invoicesNewCmd.Flags().Bool("print", false, "Issue the invoice and save the printable page")
	invoicesNewCmd.Flags().Bool("open", false, "Open the saved invoice in the browser")

	invoicesListCmd.Flags().String("client", "", "Only invoices for this client")

	invoicesShareCmd.Flags().Bool("whatsapp", true, "Share over WhatsApp")
	invoicesShareCmd.Flags().Bool("email", false, "Share by email instead")
	invoicesShareCmd.Flags().Bool("open", false, "Open the link")
}

// addInvoiceFlags registers the flags read by parseInvoiceFlags
func addInvoiceFlags(cmd *cobra.Command) {
	cmd.Flags().String("template", "", "MODERN, CLASSIC, MINIMAL, TAX or CUSTOM")
	cmd.Flags().String("number", "", "Invoice number (default the next generated one)")
	cmd.Flags().String("date", "", "Invoice date as YYYY-MM-DD or any text to print as is (default today)")
	cmd.Flags().StringArray("item", nil, "Line item description:rate[:quantity[:hsn]] (repeatable)")
	cmd.Flags().StringArray("tax", nil, "TAX layout field key=value (repeatable)")
}
