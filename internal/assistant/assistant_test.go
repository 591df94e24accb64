package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/andy/agencyflow/internal/domain"
	"github.com/andy/agencyflow/internal/logger"
)

// mockGenerator records prompts and returns a canned reply
type mockGenerator struct {
	reply   string
	err     error
	prompts []string
	hadDead bool
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	_, m.hadDead = ctx.Deadline()
	return m.reply, m.err
}

func TestDraftMessage(t *testing.T) {
	client := domain.SampleClient()

	tests := []struct {
		name  string
		reply string
		err   error
		want  string
	}{
		{"model text", "Hi Rahul, gentle reminder.", nil, "Hi Rahul, gentle reminder."},
		{"empty reply", "", nil, DraftEmpty},
		{"failure", "", errors.New("boom"), DraftFailed},
		{"missing key", "", ErrMissingAPIKey, DraftFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &mockGenerator{reply: tt.reply, err: tt.err}
			a := New(gen, time.Minute, logger.Nop())

			got := a.DraftMessage(context.Background(), &client, PaymentReminder, 30000)
			if got != tt.want {
				t.Errorf("DraftMessage() = %q, want %q", got, tt.want)
			}
			if len(gen.prompts) != 1 {
				t.Fatalf("expected one generation call, got %d", len(gen.prompts))
			}
			if !gen.hadDead {
				t.Error("expected the call to carry a deadline")
			}
		})
	}
}

func TestAsk(t *testing.T) {
	client := domain.SampleClient()
	expense := domain.NewExpense("Rent", 10000, "Office Rent")

	gen := &mockGenerator{reply: "Sharma Electronics owes ₹30,000."}
	a := New(gen, 0, logger.Nop())

	got := a.Ask(context.Background(), "Who owes me money?", []*domain.Client{&client}, []*domain.Expense{expense})
	if got != "Sharma Electronics owes ₹30,000." {
		t.Errorf("unexpected answer %q", got)
	}
	if gen.hadDead {
		t.Error("expected no deadline without a timeout")
	}

	gen.reply = ""
	if got := a.Ask(context.Background(), "?", nil, nil); got != AskEmpty {
		t.Errorf("expected %q, got %q", AskEmpty, got)
	}

	gen.err = errors.New("unavailable")
	if got := a.Ask(context.Background(), "?", nil, nil); got != AskFailed {
		t.Errorf("expected %q, got %q", AskFailed, got)
	}
}

func TestDraftPrompt(t *testing.T) {
	client := domain.SampleClient()

	tests := []struct {
		kind MessageKind
		want []string
	}{
		{PaymentReminder, []string{`client named "Rahul Sharma" from "Sharma Electronics"`, "INR 30000", "(Meta Ads (FB/Insta), SEO Standard)"}},
		{MonthlyPaymentReminder, []string{`client "Rahul Sharma" (Sharma Electronics)`, "monthly service renewal"}},
		{Welcome, []string{`new client "Sharma Electronics"`, "starts on 2023-10-01"}},
		{InvoiceEmail, []string{`invoice to "Rahul Sharma"`, "total deal amount is 50000", "current due is 30000"}},
	}

	for _, tt := range tests {
		prompt, err := DraftPrompt(&client, tt.kind, 30000)
		if err != nil {
			t.Fatalf("DraftPrompt(%s) failed: %v", tt.kind, err)
		}
		for _, want := range tt.want {
			if !strings.Contains(prompt, want) {
				t.Errorf("%s prompt missing %q:\n%s", tt.kind, want, prompt)
			}
		}
	}

	if _, err := DraftPrompt(&client, MessageKind("POEM"), 0); err == nil {
		t.Error("expected an error for an unknown kind")
	}
}

func TestChatPrompt(t *testing.T) {
	client := domain.SampleClient()
	expense := domain.NewExpense("Rent & Power", 10000, "Office Rent")
	expense.Date = domain.MustParseDate("2026-10-01")

	prompt, err := ChatPrompt("Who is overdue?", []*domain.Client{&client}, []*domain.Expense{expense})
	if err != nil {
		t.Fatalf("ChatPrompt failed: %v", err)
	}

	for _, want := range []string{
		`"business": "Sharma Electronics"`,
		`"totalDeal": 50000`,
		`"paid": 20000`,
		`"due": 30000`,
		`"start": "2023-10-01"`,
		`"title": "Rent & Power"`,
		`"date": "2026-10-01"`,
		"6. If the user asks something unrelated to the data",
		`User Query: "Who is overdue?"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("chat prompt missing %q", want)
		}
	}
}

func TestParseMessageKind(t *testing.T) {
	tests := map[string]MessageKind{
		"payment":          PaymentReminder,
		"Monthly":          MonthlyPaymentReminder,
		"WELCOME":          Welcome,
		"invoice_email":    InvoiceEmail,
		"PAYMENT_REMINDER": PaymentReminder,
	}
	for in, want := range tests {
		got, err := ParseMessageKind(in)
		if err != nil || got != want {
			t.Errorf("ParseMessageKind(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseMessageKind("poem"); err == nil {
		t.Error("expected an error for an unknown kind")
	}
}

func TestGenerationError(t *testing.T) {
	err := error(&GenerationError{Op: "chat with data", Err: ErrMissingAPIKey})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Error("expected GenerationError to unwrap")
	}
	if err.Error() != "chat with data: no generative AI API key configured" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
