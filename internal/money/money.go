// Package money formats and reads rupee amounts.
package money

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en_IN"
	"github.com/shopspring/decimal"
)

// RupeeSign prefixes every formatted amount
const RupeeSign = "₹"

var indian = en_IN.New()

// FormatINR formats v as whole rupees with Indian digit grouping, e.g. ₹1,50,000.
// Negative amounts keep their sign even when they round to zero.
// NaN and infinities format as ₹0.
func FormatINR(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return RupeeSign + "0"
	}

	rounded, _ := decimal.NewFromFloat(v).Round(0).Float64()
	grouped := indian.FmtNumber(math.Abs(rounded), 0)
	if v < 0 {
		return "-" + RupeeSign + grouped
	}
	return RupeeSign + grouped
}

// FormatPlain is FormatINR without the rupee sign, used inside tax tables
func FormatPlain(v float64) string {
	return strings.Replace(FormatINR(v), RupeeSign, "", 1)
}

// Parse reads user input as a number. Junk reads as 0.
func Parse(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, RupeeSign)
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
