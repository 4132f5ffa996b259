package calcx

import (
	"math"
	"strconv"
	"strings"
)

const (
	// MaxDisplayLength bounds the display text. Not user-configurable.
	MaxDisplayLength = 16

	// DivideByZeroText is the result of dividing by zero. It is a value, not a fault.
	DivideByZeroText = "SINTAX ERROR"

	// MathErrorText is shown for results that are not finite numbers: the square
	// root of a negative number, overflow, or an operand that is not a number.
	MathErrorText = "ERROR"
)

// Apply evaluates a op b and returns the display string for the result.
// The second operand is ignored for OpSqrt. Unknown operators yield "".
func Apply(a, b string, op Operator) string {
	x := parseNumber(a)
	switch op {
	case OpAdd:
		return formatNumber(x + parseNumber(b))
	case OpSubtract:
		return formatNumber(x - parseNumber(b))
	case OpMultiply:
		return formatNumber(x * parseNumber(b))
	case OpDivide:
		y := parseNumber(b)
		if y == 0 {
			return DivideByZeroText
		}
		return formatFixed(x/y, 2)
	case OpPercent:
		return formatFixed(x*parseNumber(b)/100, 2)
	case OpSqrt:
		return formatFixed(math.Sqrt(x), 3)
	}
	return ""
}

// parseNumber reads an operand; anything that is not a number is NaN.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// formatNumber renders v with the shortest digits that round-trip, switching to
// exponent form for very large and very small magnitudes.
func formatNumber(v float64) string {
	if !finite(v) {
		return MathErrorText
	}
	if v == 0 {
		return "0"
	}
	if abs := math.Abs(v); abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFixed(v float64, decimals int) string {
	if !finite(v) {
		return MathErrorText
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.Trim(s, "-0.") == "" {
		// -0.00 reads as 0.00
		s = strings.TrimPrefix(s, "-")
	}
	return s
}

// fitDisplay shortens a numeric result to MaxDisplayLength characters by
// dropping least significant digits. Non-numeric text is truncated.
func fitDisplay(s string) string {
	if len(s) <= MaxDisplayLength {
		return s
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(v) {
		return s[:MaxDisplayLength]
	}
	for prec := MaxDisplayLength; prec > 0; prec-- {
		if out := strconv.FormatFloat(v, 'g', prec, 64); len(out) <= MaxDisplayLength {
			return out
		}
	}
	return s[:MaxDisplayLength]
}
