package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/invoice"
)

func invoiceFlagsCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "new"}
	addInvoiceFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	return cmd
}

func TestParseInvoiceFlags_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown template", []string{"--template", "fancy"}, invoice.ErrUnknownTemplate},
		{"unknown tax key", []string{"--tax", "colour=red"}, invoice.ErrUnknownTaxField},
		{"number with a slash", []string{"--number", "INV/1"}, invoice.ErrInvalidNumber},
		{"tax without value", []string{"--tax", "destination"}, nil},
		{"item without rate", []string{"--item", "SEO"}, nil},
		{"item with bad rate", []string{"--item", "SEO:lots"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseInvoiceFlags(invoiceFlagsCmd(t, tt.args...))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestInvoiceOptions_Apply(t *testing.T) {
	opts, err := parseInvoiceFlags(invoiceFlagsCmd(t,
		"--template", "tax",
		"--number", "AF-0099",
		"--date", "16 Oct 2026 (Revised)",
		"--item", "SEO Retainer:15000:2",
		"--tax", "destination=Pune",
	))
	if err != nil {
		t.Fatalf("parseInvoiceFlags failed: %v", err)
	}

	client := domain.SampleClient()
	agency := domain.DefaultAgencyProfile()
	session := invoice.NewSession(&client, &agency, 1001, time.Date(2026, time.October, 16, 0, 0, 0, 0, time.Local))
	if err := opts.apply(session); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if session.Template != invoice.TemplateTax {
		t.Errorf("expected TAX layout, got %s", session.Template)
	}
	if session.Number != "AF-0099" {
		t.Errorf("expected number AF-0099, got %q", session.Number)
	}
	if session.Date != "16 Oct 2026 (Revised)" {
		t.Errorf("expected free text date, got %q", session.Date)
	}
	if len(session.Items) != 1 || session.Items[0].Rate != 15000 || session.Items[0].Quantity != 2 {
		t.Errorf("unexpected items %+v", session.Items)
	}
	if session.Tax.Destination != "Pune" {
		t.Errorf("expected destination Pune, got %q", session.Tax.Destination)
	}
}

func TestInvoiceOptions_ISODate(t *testing.T) {
	opts, err := parseInvoiceFlags(invoiceFlagsCmd(t, "--date", "2026-10-20"))
	if err != nil {
		t.Fatalf("parseInvoiceFlags failed: %v", err)
	}

	client := domain.SampleClient()
	agency := domain.DefaultAgencyProfile()
	session := invoice.NewSession(&client, &agency, 1001, time.Now())
	number := session.Number
	if err := opts.apply(session); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if session.Date != "20 Oct 2026" {
		t.Errorf("expected 20 Oct 2026, got %q", session.Date)
	}
	if session.Number != number {
		t.Errorf("expected the generated number to stay, got %q", session.Number)
	}
}
