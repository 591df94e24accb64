package invoice

import (
	"math"
	"strconv"
	"strings"
)

var (
	ones = []string{
		"", "One ", "Two ", "Three ", "Four ", "Five ", "Six ", "Seven ", "Eight ", "Nine ", "Ten ",
		"Eleven ", "Twelve ", "Thirteen ", "Fourteen ", "Fifteen ", "Sixteen ", "Seventeen ", "Eighteen ", "Nineteen ",
	}
	tens = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// indianGroups are the place values of a nine digit number split 2-2-2-1-2
var indianGroups = []struct {
	width  int
	suffix string
}{
	{2, "Crore "},
	{2, "Lakh "},
	{2, "Thousand "},
	{1, "Hundred "},
	{2, ""},
}

// AmountInWords spells the whole-rupee part of v using the Indian numbering
// system, e.g. "INR One Lakh Fifty Thousand Only". Amounts of ten or more
// digits read "INR overflow Only"; negative amounts have no words.
func AmountInWords(v float64) string {
	return "INR " + inWords(v) + "Only"
}

func inWords(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, -1) || v < 0 {
		return ""
	}
	if math.IsInf(v, 1) {
		return "overflow "
	}

	digits := strconv.FormatFloat(math.Floor(v), 'f', 0, 64)
	if len(digits) > 9 {
		return "overflow "
	}
	digits = strings.Repeat("0", 9-len(digits)) + digits

	var b strings.Builder
	pos := 0
	for i, g := range indianGroups {
		chunk := digits[pos : pos+g.width]
		pos += g.width

		n, _ := strconv.Atoi(chunk)
		if n == 0 {
			continue
		}
		last := i == len(indianGroups)-1
		if last && b.Len() > 0 {
			b.WriteString("and ")
		}
		b.WriteString(groupWords(n))
		b.WriteString(g.suffix)
	}
	return b.String()
}

// groupWords spells 1..99
func groupWords(n int) string {
	if n < len(ones) {
		return ones[n]
	}
	return tens[n/10] + " " + ones[n%10]
}
