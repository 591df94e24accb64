package invoice

import (
	"fmt"
	"strings"

	"github.com/andy/agencyflow/internal/money"
)

// DefaultCustomTemplate is offered until the agency saves its own
const DefaultCustomTemplate = `
<style>
  .invoice-box { max-width: 800px; margin: auto; padding: 30px; border: 1px solid #eee; font-family: 'Helvetica Neue', 'Helvetica', Helvetica, Arial, sans-serif; color: #555; }
  .invoice-box table { width: 100%; line-height: inherit; text-align: left; }
  .invoice-box table td { padding: 5px; vertical-align: top; }
  .invoice-box table tr td:nth-child(3) { text-align: right; }
  .top-header { background: #333; color: #fff; padding: 20px; margin-bottom: 20px; }
  .heading td { background: #eee; border-bottom: 1px solid #ddd; font-weight: bold; }
  .item td { border-bottom: 1px solid #eee; }
  .total td { border-top: 2px solid #eee; font-weight: bold; }
</style>

<div class="invoice-box">
  <div class="top-header">
     <h1 style="margin:0">{{agency_name}}</h1>
     <p style="margin:0; font-size: 14px; opacity: 0.8">{{agency_email}}</p>
     <p style="margin:0; font-size: 14px; opacity: 0.8">{{agency_website}}</p>
  </div>

  <table cellpadding="0" cellspacing="0">
    <tr>
       <td colspan="3">
          <strong>Invoice #:</strong> {{invoice_number}}<br>
          <strong>Date:</strong> {{date}}
       </td>
    </tr>
    <tr>
       <td colspan="2" style="padding-top: 20px; padding-bottom: 20px;">
          <strong>Bill To:</strong><br>
          {{client_business}}<br>
          {{client_name}}<br>
          {{client_address}}<br>
          Phone: {{client_phone}}<br>
          GST: {{client_gst}}
       </td>
       <td style="padding-top: 20px; padding-bottom: 20px; text-align: right;">
          <strong>Pay To:</strong><br>
          {{agency_name}}<br>
          {{agency_address}}<br>
          Phone: {{agency_phone}}<br>
          GST: {{agency_gst}}
       </td>
    </tr>
  </table>

  <table cellpadding="0" cellspacing="0">
    <tr class="heading">
       <td>Item</td>
       <td>HSN/SAC</td>
       <td>Price</td>
    </tr>

    <!-- Services Rows will be injected here -->
    {{services_table_rows}}

    <tr class="total">
       <td></td>
       <td></td>
       <td style="padding-top: 20px;">
          Subtotal: {{subtotal}}<br>
          GST (18%): {{gst_amount}}<br>
          Total: {{total_amount}}
       </td>
    </tr>
    <tr>
       <td></td>
       <td></td>
       <td style="color: green;">Paid: {{paid_amount}}</td>
    </tr>
    <tr>
       <td></td>
       <td></td>
       <td style="color: red; font-weight: bold;">Due: {{due_amount}}</td>
    </tr>
  </table>

  <p style="margin-top: 40px; font-size: 12px; text-align: center;">Thank you for your business!</p>
</div>
`

// Token is a {{name}} placeholder of the custom template
type Token struct {
	Name        string
	Description string
	value       func(s *Session, t Totals) string
}

// Placeholder is the token as written in a template
func (t Token) Placeholder() string {
	return "{{" + t.Name + "}}"
}

// Tokens are replaced everywhere they appear
var Tokens = []Token{
	{"agency_name", "Agency name", func(s *Session, _ Totals) string { return s.Agency.Name }},
	{"agency_address", "Agency address", func(s *Session, _ Totals) string { return s.Agency.Address }},
	{"agency_phone", "Agency phone", func(s *Session, _ Totals) string { return s.Agency.Phone }},
	{"agency_email", "Agency email", func(s *Session, _ Totals) string { return s.Agency.Email }},
	{"agency_website", "Agency website", func(s *Session, _ Totals) string { return s.Agency.Website }},
	{"agency_gst", "Agency GSTIN", func(s *Session, _ Totals) string { return s.Agency.GSTIN }},
	{"client_name", "Client contact name", func(s *Session, _ Totals) string { return s.Client.Name }},
	{"client_business", "Client business name", func(s *Session, _ Totals) string { return s.Client.BusinessName }},
	{"client_address", "Client address", func(s *Session, _ Totals) string { return s.Client.Address }},
	{"client_phone", "Client phone", func(s *Session, _ Totals) string { return s.Client.Phone }},
	{"client_gst", "Client GSTIN", func(s *Session, _ Totals) string { return s.Client.GSTIN }},
	{"invoice_number", "Invoice number", func(s *Session, _ Totals) string { return s.Number }},
	{"date", "Invoice date", func(s *Session, _ Totals) string { return s.Date }},
	{"total_amount", "Total including GST", func(_ *Session, t Totals) string { return money.FormatINR(t.Total) }},
	{"paid_amount", "Amount paid so far", func(_ *Session, t Totals) string { return money.FormatINR(t.Paid) }},
	{"due_amount", "Balance due", func(_ *Session, t Totals) string { return money.FormatINR(t.Due) }},
	{"subtotal", "Taxable value", func(_ *Session, t Totals) string { return money.FormatINR(t.Taxable) }},
	{"gst_amount", "GST (18%)", func(_ *Session, t Totals) string { return money.FormatINR(t.GST) }},
}

// Tokens replaced at their first occurrence only
const (
	LogoToken = "{{logo_url}}"
	RowsToken = "{{services_table_rows}}"
)

// ApplyCustomTemplate substitutes every known token in tmpl. Unknown tokens
// are left as written and {{logo_url}} stays when the agency has no logo.
func ApplyCustomTemplate(tmpl string, s *Session) string {
	totals := s.Totals()
	out := tmpl
	for _, tok := range Tokens {
		out = strings.ReplaceAll(out, tok.Placeholder(), tok.value(s, totals))
	}

	if s.Agency.LogoURL != "" {
		out = strings.Replace(out, LogoToken, s.Agency.LogoURL, 1)
	}
	return strings.Replace(out, RowsToken, itemRows(s.Items), 1)
}

func itemRows(items []Item) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, `<tr class="item"><td>%s</td><td>%s</td><td>%s</td></tr>`,
			item.Description, item.HSN, money.FormatINR(item.Amount()))
	}
	return b.String()
}

// customRenderer renders the agency's own template
type customRenderer struct{}

func (customRenderer) RenderHTML(s *Session) (string, error) {
	body := ApplyCustomTemplate(s.CustomTemplate, s)
	return `<div class="invoice-container custom" style="background: #fff; min-height: 800px; padding: 32px;">` + body + `</div>`, nil
}
