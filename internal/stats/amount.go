package stats

import (
	"math"
	"strconv"
	"strings"

	"delivery-risk/internal/records"
)

// ParseAmount reads a currency string such as "$1,234.50". Dollar signs and
// thousands separators are dropped, then the longest leading decimal number
// is parsed. Anything unparsable is worth 0.
func ParseAmount(amount string) float64 {
	s := strings.NewReplacer("$", "", ",", "").Replace(amount)
	s = strings.TrimLeft(s, " \t\r\n\f\v")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	intStart := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	digits := end - intStart
	if end < len(s) && s[end] == '.' {
		end++
		fracStart := end
		for end < len(s) && isDigit(s[end]) {
			end++
		}
		digits += end - fracStart
	}
	if digits == 0 {
		return 0
	}

	// Exponent only counts when at least one digit follows it.
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		if exp < len(s) && isDigit(s[exp]) {
			for exp < len(s) && isDigit(s[exp]) {
				exp++
			}
			end = exp
		}
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// orderValue is the order amount floored at zero so losses never go negative.
func orderValue(o records.Order) float64 {
	return math.Max(0, ParseAmount(o.OrderAmount))
}

// WeightedLoss apportions an order's value by the share of its items that
// went missing.
func WeightedLoss(o records.Order) float64 {
	return orderValue(o) * ratio(float64(o.ItemsMissing), float64(o.ItemsMissing)+float64(o.ItemsDelivered))
}
