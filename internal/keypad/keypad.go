// Package keypad classifies raw button labels into calculator tokens.
package keypad

import (
	"errors"
	"fmt"
	"strings"

	"github.com/comalice/calcx"
)

// ErrUnknownLabel is returned for labels that name no calculator button.
var ErrUnknownLabel = errors.New("unknown button label")

var labelTokens = map[string]calcx.Token{
	".":    calcx.DecimalPoint(),
	"+":    calcx.Binary(calcx.OpAdd),
	"-":    calcx.Binary(calcx.OpSubtract),
	"−":    calcx.Binary(calcx.OpSubtract),
	"×":    calcx.Binary(calcx.OpMultiply),
	"x":    calcx.Binary(calcx.OpMultiply),
	"*":    calcx.Binary(calcx.OpMultiply),
	"÷":    calcx.Binary(calcx.OpDivide),
	"/":    calcx.Binary(calcx.OpDivide),
	"%":    calcx.Binary(calcx.OpPercent),
	"√":    calcx.Unary(calcx.OpSqrt),
	"sqrt": calcx.Unary(calcx.OpSqrt),
	"=":    calcx.Equals(),
	"ac":   calcx.Clear(),
	"c":    calcx.Clear(),
}

// Parse maps one button label to its token. Word labels are case-insensitive.
func Parse(label string) (calcx.Token, error) {
	l := strings.ToLower(strings.TrimSpace(label))
	if len(l) == 1 && l[0] >= '0' && l[0] <= '9' {
		return calcx.Digit(l[0]), nil
	}
	if tok, ok := labelTokens[l]; ok {
		return tok, nil
	}
	return calcx.Token{}, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
}

// ParseAll parses every label, stopping at the first unknown one.
func ParseAll(labels []string) ([]calcx.Token, error) {
	toks := make([]calcx.Token, 0, len(labels))
	for i, label := range labels {
		tok, err := Parse(label)
		if err != nil {
			return nil, fmt.Errorf("label %d: %w", i+1, err)
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

// Fields splits a script line into labels.
func Fields(line string) []string {
	return strings.Fields(line)
}
