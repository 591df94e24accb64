package invoice

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// typography lists the inline style properties kept when a field becomes text
var typography = []string{"font-family", "font-weight", "font-size", "font-style", "text-align", "color", "line-height"}

const staticLayout = "width: 100%; white-space: pre-wrap; word-break: break-word; display: block"

// PrintDocument renders the session and returns a standalone static page
// ready for the browser print dialog
func PrintDocument(s *Session) (string, error) {
	editable, err := Render(s)
	if err != nil {
		return "", err
	}
	body, err := Staticize(editable)
	if err != nil {
		return "", err
	}
	return wrapPrint(s.Number, body), nil
}

// Staticize replaces every input and textarea with a div holding its value
// and removes buttons and .no-print elements
func Staticize(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("failed to parse invoice: %w", err)
	}

	doc.Find("input, textarea").Each(func(_ int, field *goquery.Selection) {
		value := field.AttrOr("value", "")
		if goquery.NodeName(field) == "textarea" {
			value = field.Text()
		}
		field.ReplaceWithHtml(staticField(field, value))
	})
	doc.Find("button, .no-print").Remove()

	// Leading <style> blocks of a fragment are parsed into <head>
	head, err := doc.Find("head").Html()
	if err != nil {
		return "", fmt.Errorf("failed to read invoice styles: %w", err)
	}
	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("failed to read invoice body: %w", err)
	}
	return strings.TrimSpace(head + body), nil
}

func staticField(field *goquery.Selection, value string) string {
	var classes []string
	for _, c := range strings.Fields(field.AttrOr("class", "")) {
		if c != "field" {
			classes = append(classes, c)
		}
	}

	var styles []string
	for _, decl := range strings.Split(field.AttrOr("style", ""), ";") {
		prop, _, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		for _, keep := range typography {
			if prop == keep {
				styles = append(styles, strings.TrimSpace(decl))
				break
			}
		}
	}
	styles = append(styles, staticLayout)

	var b strings.Builder
	b.WriteString("<div")
	if len(classes) > 0 {
		fmt.Fprintf(&b, ` class="%s"`, html.EscapeString(strings.Join(classes, " ")))
	}
	fmt.Fprintf(&b, ` style="%s">%s</div>`, html.EscapeString(strings.Join(styles, "; ")), html.EscapeString(value))
	return b.String()
}

const printStyles = `
    @import url('https://fonts.googleapis.com/css2?family=Inter:wght@300;400;500;600;700&display=swap');

    body {
      font-family: 'Inter', sans-serif;
      background: white;
      -webkit-print-color-adjust: exact;
      print-color-adjust: exact;
      margin: 0;
      padding: 0;
    }

    @page {
      size: A4;
      margin: 10mm;
    }

    .invoice-container {
      width: 100% !important;
      max-width: none !important;
      box-shadow: none !important;
      border: none !important;
      padding: 0 !important;
      margin: 0 !important;
    }

    table { width: 100% !important; table-layout: fixed; }
    tr { page-break-inside: avoid; }

    h1, h2, h3, h4, h5, h6 { color: #111827 !important; }
    .muted { color: #64748b !important; }

    .bg-slate-50 { background-color: #f8fafc !important; }
    .bg-slate-100 { background-color: #f1f5f9 !important; }
    .bg-slate-900 { background-color: #0f172a !important; color: white !important; }

    .border-black { border-color: #000 !important; }
`

func wrapPrint(number, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n  <meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "  <title>Invoice - %s</title>\n", html.EscapeString(number))
	b.WriteString("  <style>")
	b.WriteString(printStyles)
	b.WriteString("  </style>\n</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("\n<script>\n  window.onload = function() { setTimeout(function() { window.print(); }, 500); };\n</script>\n</body>\n</html>\n")
	return b.String()
}
