package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/andy/agencyflow/internal/domain"
)

type MessageKind string

const (
	PaymentReminder        MessageKind = "PAYMENT_REMINDER"
	MonthlyPaymentReminder MessageKind = "MONTHLY_PAYMENT_REMINDER"
	Welcome                MessageKind = "WELCOME"
	InvoiceEmail           MessageKind = "INVOICE_EMAIL"
)

// MessageKinds lists the kinds in the order they are offered
var MessageKinds = []MessageKind{PaymentReminder, MonthlyPaymentReminder, Welcome, InvoiceEmail}

var kindAliases = map[string]MessageKind{
	"payment": PaymentReminder,
	"monthly": MonthlyPaymentReminder,
	"welcome": Welcome,
	"invoice": InvoiceEmail,
}

// ParseMessageKind accepts a kind name or its short alias (payment, monthly,
// welcome, invoice)
func ParseMessageKind(s string) (MessageKind, error) {
	s = strings.TrimSpace(s)
	if k, ok := kindAliases[strings.ToLower(s)]; ok {
		return k, nil
	}
	for _, k := range MessageKinds {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown message kind %q", s)
}

// number writes an amount the way it reads in a sentence, e.g. 30000 or 1250.5
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DraftPrompt is the instruction sent for a client message of kind
func DraftPrompt(client *domain.Client, kind MessageKind, due float64) (string, error) {
	services := client.ServicesLabel()

	switch kind {
	case PaymentReminder:
		return fmt.Sprintf(`Write a professional, polite, yet firm WhatsApp message (short) to a client named "%s" from "%s".
Context: They have a pending payment of INR %s for digital marketing services (%s).
Ask them to clear the dues to ensure uninterrupted services.
Do not include subject lines or placeholders. Just the message body.`,
			client.Name, client.BusinessName, number(due), services), nil
	case MonthlyPaymentReminder:
		return fmt.Sprintf(`Write a friendly, professional WhatsApp message to client "%s" (%s).
Context: This is a reminder that their monthly service renewal for (%s) is coming up/due.
It has been one month since the last cycle.
Politely request them to process the monthly payment to keep the campaign active.
Keep it short and warm.`,
			client.Name, client.BusinessName, services), nil
	case Welcome:
		return fmt.Sprintf(`Write a short, enthusiastic welcome email body for a new client "%s" who just signed up for: %s.
Mention that the project starts on %s.
Keep it professional and encouraging.`,
			client.BusinessName, services, client.StartDate.String()), nil
	case InvoiceEmail:
		return fmt.Sprintf(`Write a very short email body sending an invoice to "%s".
Mention the total deal amount is %s and the current due is %s.
Polite closing.`,
			client.Name, number(client.DealAmount), number(due)), nil
	default:
		return "", fmt.Errorf("unknown message kind %q", kind)
	}
}

type clientSummary struct {
	Name      string  `json:"name"`
	Business  string  `json:"business"`
	Status    string  `json:"status"`
	Services  string  `json:"services"`
	TotalDeal float64 `json:"totalDeal"`
	Paid      float64 `json:"paid"`
	Due       float64 `json:"due"`
	Start     string  `json:"start"`
}

type expenseSummary struct {
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
}

// ChatPrompt embeds the agency data and the question
func ChatPrompt(question string, clients []*domain.Client, expenses []*domain.Expense) (string, error) {
	cs := make([]clientSummary, len(clients))
	for i, c := range clients {
		cs[i] = clientSummary{
			Name:      c.Name,
			Business:  c.BusinessName,
			Status:    string(c.Status),
			Services:  c.ServicesLabel(),
			TotalDeal: c.DealAmount,
			Paid:      c.Paid(),
			Due:       c.Due(),
			Start:     c.StartDate.String(),
		}
	}
	es := make([]expenseSummary, len(expenses))
	for i, e := range expenses {
		es[i] = expenseSummary{Title: e.Title, Amount: e.Amount, Category: e.Category, Date: e.Date.String()}
	}

	clientsJSON, err := indentJSON(cs)
	if err != nil {
		return "", fmt.Errorf("failed to encode clients: %w", err)
	}
	expensesJSON, err := indentJSON(es)
	if err != nil {
		return "", fmt.Errorf("failed to encode expenses: %w", err)
	}

	return fmt.Sprintf(`You are an intelligent assistant for a Digital Marketing Agency CRM called "AgencyFlow".

Here is the current LIVE business data:

CLIENTS DATA:
%s

EXPENSES DATA:
%s

INSTRUCTIONS:
1. Answer the user's question based strictly on the data above.
2. If asked about "Overdue" or "Due", look for clients where 'due' > 0.
3. If asked about "Revenue", sum up the 'paid' amounts.
4. If asked about "Profit", subtract total expenses from total revenue.
5. Provide concise, direct answers. Use formatting like bullet points for lists.
6. If the user asks something unrelated to the data, politely say you only manage agency data.

User Query: "%s"`, clientsJSON, expensesJSON, question), nil
}

func indentJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
