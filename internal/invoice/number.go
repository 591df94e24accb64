package invoice

import (
	"fmt"
	"strings"
	"unicode"
)

// ShortCode is the first four ASCII letters or digits of a business name,
// upper-cased, or GEN when there are none
func ShortCode(businessName string) string {
	var b strings.Builder
	for _, r := range businessName {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		if b.Len() == 4 {
			break
		}
	}
	if b.Len() == 0 {
		return "GEN"
	}
	return b.String()
}

// FormatNumber builds an invoice number such as INV-2026-SHAR-1001
func FormatNumber(year int, businessName string, seq int) string {
	return fmt.Sprintf("INV-%d-%s-%d", year, ShortCode(businessName), seq)
}
