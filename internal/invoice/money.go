package invoice

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// round2 rounds to paise
func round2(v float64) float64 {
	r, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return r
}

// formatNumber writes a rate or quantity the way an input field shows it
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
