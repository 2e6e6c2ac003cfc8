package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/agentstation/newsroom/pkg/newsletter"
)

var amountNumber = regexp.MustCompile(`(\d+\.?\d*)`)

// ParseAmount parses a raw funding amount string ("$5M", "10 million",
// "undisclosed") into a canonical Amount. Anything unparseable becomes the
// Undisclosed sentinel, which sorts below every disclosed amount.
func ParseAmount(raw string) newsletter.Amount {
	undisclosed := newsletter.Amount{Currency: "USD", Display: newsletter.UndisclosedAmount}

	lower := strings.ToLower(strings.TrimSpace(raw))
	switch lower {
	case "", "undisclosed", "unknown", "n/a":
		return undisclosed
	}

	cleaned := strings.ReplaceAll(lower, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.TrimSpace(cleaned)

	m := amountNumber.FindString(cleaned)
	if m == "" {
		return undisclosed
	}
	number, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return undisclosed
	}

	var value float64
	var display string
	switch {
	case strings.Contains(cleaned, "billion") || strings.Contains(cleaned, "b"):
		value = number * 1_000_000_000
		display = "$" + trimTrailingZero(number) + "B"
	case strings.Contains(cleaned, "million") || strings.Contains(cleaned, "m"):
		value = number * 1_000_000
		display = "$" + trimTrailingZero(number) + "M"
	case strings.Contains(cleaned, "thousand") || strings.Contains(cleaned, "k"):
		value = number * 1_000
		display = "$" + strconv.FormatFloat(math.Round(number), 'f', 0, 64) + "K"
	default:
		value = number
		display = "$" + strconv.FormatFloat(math.Round(number), 'f', 0, 64)
	}

	return newsletter.Amount{Value: value, Currency: "USD", Display: display}
}

// trimTrailingZero renders 5.0 as "5" and 1.5 as "1.5", rounding to one
// decimal place first.
func trimTrailingZero(n float64) string {
	rounded := math.Round(n*10) / 10
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
