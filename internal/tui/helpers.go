package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/andy/agencyflow/internal/money"
)

// formatMoney formats rupees with Indian grouping, e.g. "₹1,50,000"
func formatMoney(amount float64) string {
	return money.FormatINR(amount)
}

// truncateStr truncates a string to maxLen runes with ellipsis
func truncateStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// padRight left-aligns s in width runes; fmt widths count bytes
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// padLeft right-aligns s in width runes
func padLeft(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

// bar draws value as a row of blocks scaled against max
func bar(value, max float64, width int) string {
	if max <= 0 || value <= 0 {
		return ""
	}
	n := int(value / max * float64(width))
	if n == 0 {
		n = 1
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n)
}

// percent renders a 0..1 fraction
func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}
