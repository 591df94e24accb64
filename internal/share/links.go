// Package share builds WhatsApp and email deep links.
package share

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// encode escapes s the way encodeURIComponent does, so spaces become %20
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Digits strips everything but digits from a phone number
func Digits(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

// WhatsAppURL opens a chat with phone prefilled with text
func WhatsAppURL(phone, text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", Digits(phone), encode(text))
}

// MailtoURL opens a draft to address. An empty subject is left out.
func MailtoURL(address, subject, body string) string {
	var params []string
	if subject != "" {
		params = append(params, "subject="+encode(subject))
	}
	params = append(params, "body="+encode(body))
	return "mailto:" + address + "?" + strings.Join(params, "&")
}

// InvoiceMessage is the WhatsApp text sent with an invoice. Amounts are
// already formatted.
func InvoiceMessage(clientName, number, agencyName, total, paid, due string) string {
	return fmt.Sprintf("Hello %s,\n\nHere is your invoice %s from %s.\n\nTotal Amount: %s\nPaid: %s\nDue Amount: %s\n\nPlease clear the dues at the earliest.\n\nThank you for your business!",
		clientName, number, agencyName, total, paid, due)
}

// InvoiceSubject is the email subject of an invoice
func InvoiceSubject(number, agencyName string) string {
	return fmt.Sprintf("Invoice %s from %s", number, agencyName)
}

// AlertSubject is the email subject of the owner's renewal alert
const AlertSubject = "Payment Reminders (Due in 2 Days)"
