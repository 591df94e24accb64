package invoice

import (
	"strings"
	"testing"
)

func TestStaticize(t *testing.T) {
	fragment := `<style>.a{}</style><div class="invoice-container">` +
		`<input type="text" class="field mono" value="INV-1 &amp; co" style="font-weight: 700; border: 1px solid red; text-align: right">` +
		`<textarea class="field">line one
line two</textarea>` +
		`<button type="button">Remove</button><span class="no-print">hint</span></div>`

	out, err := Staticize(fragment)
	if err != nil {
		t.Fatalf("Staticize failed: %v", err)
	}

	for _, banned := range []string{"<input", "<textarea", "<button", "no-print", "border: 1px solid red"} {
		if strings.Contains(out, banned) {
			t.Errorf("did not expect %q in %q", banned, out)
		}
	}
	for _, want := range []string{
		"<style>.a{}</style>",
		`class="mono"`,
		"font-weight: 700",
		"text-align: right",
		"white-space: pre-wrap",
		"INV-1 &amp; co",
		"line one\nline two",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestPrintDocument(t *testing.T) {
	s := sampleSession(t)

	for _, tmpl := range Templates {
		t.Run(string(tmpl), func(t *testing.T) {
			s.Template = tmpl
			doc, err := PrintDocument(s)
			if err != nil {
				t.Fatalf("PrintDocument failed: %v", err)
			}
			if !strings.Contains(doc, "<title>Invoice - INV-2026-SHAR-1001</title>") {
				t.Error("expected the print title")
			}
			if !strings.Contains(doc, "size: A4") {
				t.Error("expected the A4 page rule")
			}
			if strings.Contains(doc, "<input") || strings.Contains(doc, "<button") {
				t.Error("expected no form controls in the printed document")
			}
		})
	}
}

func TestPrintDocument_DoesNotChangeSession(t *testing.T) {
	s := sampleSession(t)
	before := s.Number
	items := len(s.Items)

	if _, err := PrintDocument(s); err != nil {
		t.Fatalf("PrintDocument failed: %v", err)
	}
	if s.Number != before || len(s.Items) != items {
		t.Error("printing must not modify the session")
	}
}
