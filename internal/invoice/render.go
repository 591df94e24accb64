package invoice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html"

	"github.com/andy/agencyflow/internal/money"
)

type Template string

const (
	TemplateModern  Template = "MODERN"
	TemplateClassic Template = "CLASSIC"
	TemplateMinimal Template = "MINIMAL"
	TemplateTax     Template = "TAX"
	TemplateCustom  Template = "CUSTOM"
)

// Templates lists the layouts in the order they are offered
var Templates = []Template{TemplateModern, TemplateClassic, TemplateMinimal, TemplateTax, TemplateCustom}

// ParseTemplate accepts any letter case
func ParseTemplate(name string) (Template, error) {
	t := Template(strings.ToUpper(strings.TrimSpace(name)))
	for _, known := range Templates {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
}

// Renderer turns a session into editable invoice HTML
type Renderer interface {
	RenderHTML(s *Session) (string, error)
}

//go:embed templates/*.html
var templateFS embed.FS

// layouts names each view after its file, so "modern" is templates/modern.html
var layouts = newLayoutEngine()

func newLayoutEngine() *html.Engine {
	dir, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(dir), ".html")
}

var renderers = map[Template]Renderer{
	TemplateModern:  layoutRenderer{name: "modern"},
	TemplateClassic: layoutRenderer{name: "classic"},
	TemplateMinimal: layoutRenderer{name: "minimal"},
	TemplateTax:     layoutRenderer{name: "tax"},
	TemplateCustom:  customRenderer{},
}

// Render produces the editable HTML of the session's selected template
func Render(s *Session) (string, error) {
	r, ok := renderers[s.Template]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, s.Template)
	}
	return r.RenderHTML(s)
}

// layoutRenderer executes one of the built-in layouts
type layoutRenderer struct {
	name string
}

func (r layoutRenderer) RenderHTML(s *Session) (string, error) {
	var buf bytes.Buffer
	if err := layouts.Render(&buf, r.name, newView(s)); err != nil {
		return "", fmt.Errorf("failed to render %s invoice: %w", r.name, err)
	}
	return buf.String(), nil
}

// Bank details printed on the built-in layouts
const (
	bankName    = "HDFC Bank"
	bankAccount = "1234567890"
	bankIFSC    = "HDFC0001234"
)

type itemView struct {
	Index       int
	ID          string
	Description string
	HSN         string
	Rate        string
	Quantity    string
	Amount      string
	LineTax     string
}

// view is the template data with every amount already formatted
type view struct {
	Number    string
	Date      string
	Agency    agencyView
	Client    clientView
	Items     []itemView
	Spacers   []struct{}
	Tax       TaxFields
	FirstHSN  string
	Total     string
	Taxable   string
	GST       string
	CGST      string
	SGST      string
	Paid      string
	Due       string
	HasPaid   bool
	HasDue    bool
	Plain     plainTotals
	Words     string
	TaxWords  string
	Bank      bankView
	Terms     string
	Tagline   string
}

type agencyView struct {
	Name    string
	Address string
	Phone   string
	Email   string
	GSTIN   string
	Website string
	LogoURL template.URL
}

type clientView struct {
	Name         string
	BusinessName string
	Address      string
	Phone        string
	GSTIN        string
}

type plainTotals struct {
	Total   string
	Taxable string
	GST     string
	CGST    string
	SGST    string
}

type bankView struct {
	Name    string
	Account string
	IFSC    string
}

// taxLayoutRows is the minimum number of item rows on the TAX layout
const taxLayoutRows = 3

func newView(s *Session) view {
	t := s.Totals()

	items := make([]itemView, len(s.Items))
	for i, item := range s.Items {
		items[i] = itemView{
			Index:       i + 1,
			ID:          item.ID,
			Description: item.Description,
			HSN:         item.HSN,
			Rate:        formatNumber(item.Rate),
			Quantity:    formatNumber(item.Quantity),
			Amount:      money.FormatINR(item.Amount()),
			LineTax:     money.FormatPlain(item.Amount() * lineTaxRate),
		}
	}

	var spacers []struct{}
	if n := taxLayoutRows - len(s.Items); n > 0 {
		spacers = make([]struct{}, n)
	}

	firstHSN := DefaultHSN
	if len(s.Items) > 0 && s.Items[0].HSN != "" {
		firstHSN = s.Items[0].HSN
	}

	return view{
		Number: s.Number,
		Date:   s.Date,
		Agency: agencyView{
			Name:    s.Agency.Name,
			Address: s.Agency.Address,
			Phone:   s.Agency.Phone,
			Email:   s.Agency.Email,
			GSTIN:   s.Agency.GSTIN,
			Website: s.Agency.Website,
			// data URIs are rejected by html/template unless marked safe
			LogoURL: template.URL(s.Agency.LogoURL),
		},
		Client: clientView{
			Name:         s.Client.Name,
			BusinessName: s.Client.BusinessName,
			Address:      s.Client.Address,
			Phone:        s.Client.Phone,
			GSTIN:        s.Client.GSTIN,
		},
		Items:    items,
		Spacers:  spacers,
		Tax:      s.Tax,
		FirstHSN: firstHSN,
		Total:    money.FormatINR(t.Total),
		Taxable:  money.FormatINR(t.Taxable),
		GST:      money.FormatINR(t.GST),
		CGST:     money.FormatINR(t.CGST),
		SGST:     money.FormatINR(t.SGST),
		Paid:     money.FormatINR(t.Paid),
		Due:      money.FormatINR(t.Due),
		HasPaid:  t.Paid > 0,
		HasDue:   t.Due > 0,
		Plain: plainTotals{
			Total:   money.FormatPlain(t.Total),
			Taxable: money.FormatPlain(t.Taxable),
			GST:     money.FormatPlain(t.GST),
			CGST:    money.FormatPlain(t.CGST),
			SGST:    money.FormatPlain(t.SGST),
		},
		Words:    AmountInWords(t.Total),
		TaxWords: AmountInWords(t.GST),
		Bank:     bankView{Name: bankName, Account: bankAccount, IFSC: bankIFSC},
		Terms:    "Payment due within 7 days. Late payments subject to 5% monthly interest. Please include invoice number in transaction remarks.",
		Tagline:  "Digital Growth Partners",
	}
}
