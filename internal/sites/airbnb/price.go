package airbnb

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	leadingNumber = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)`)
	currencyValue = regexp.MustCompile(`R\$\s*([\d.,]+)`)
)

// ParsePrice turns a localized price string such as "R$ 1.048,50" into a number.
// Anything without digits parses to 0.
func ParsePrice(text string) float64 {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	hasDot := strings.Contains(cleaned, ".")
	comma := strings.Index(cleaned, ",")

	switch {
	case hasDot && comma < 0:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	case comma >= 0 && comma == len(cleaned)-3:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case comma >= 0:
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	return parseLeadingFloat(cleaned)
}

// parseLeadingFloat parses the longest numeric prefix of s, 0 when there is none.
func parseLeadingFloat(s string) float64 {
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// priceFromCurrency finds the first "R$ <amount>" in text.
func priceFromCurrency(text string) (float64, bool) {
	m := currencyValue.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v := ParsePrice(m[1])
	return v, v > 0
}
