package invoice

import "testing"

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "INR Only"},
		{150000, "INR One Lakh Fifty Thousand Only"},
		{21, "INR Twenty One Only"},
		{100, "INR One Hundred Only"},
		{12345, "INR Twelve Thousand Three Hundred and Forty Five Only"},
		{10000000, "INR One Crore Only"},
		{99.99, "INR Ninety Nine Only"},
		{7625, "INR Seven Thousand Six Hundred and Twenty Five Only"},
		{999999999, "INR Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred and Ninety Nine Only"},
		{1000000000, "INR overflow Only"},
		{-10, "INR Only"},
	}

	for _, tt := range tests {
		if got := AmountInWords(tt.in); got != tt.want {
			t.Errorf("AmountInWords(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShortCodeAndNumber(t *testing.T) {
	tests := []struct {
		business string
		want     string
	}{
		{"Sharma Electronics", "SHAR"},
		{"A&B Co.", "ABCO"},
		{"r2d", "R2D"},
		{"", "GEN"},
		{"!!!", "GEN"},
	}
	for _, tt := range tests {
		if got := ShortCode(tt.business); got != tt.want {
			t.Errorf("ShortCode(%q) = %q, want %q", tt.business, got, tt.want)
		}
	}

	if got := FormatNumber(2026, "Sharma Electronics", 1001); got != "INV-2026-SHAR-1001" {
		t.Errorf("FormatNumber = %q", got)
	}
}
