package calcx

import (
	"fmt"
	"strings"
)

// Operator is an arithmetic operator a button can select.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpPercent
	OpSqrt
)

var operatorSymbols = [...]string{
	OpNone:     "",
	OpAdd:      "+",
	OpSubtract: "-",
	OpMultiply: "×",
	OpDivide:   "÷",
	OpPercent:  "%",
	OpSqrt:     "√",
}

// Display abbreviations shown on screen in place of the symbol.
var operatorAbbrevs = [...]string{
	OpNone:     "",
	OpAdd:      "SUM",
	OpSubtract: "RES",
	OpMultiply: "MUL",
	OpDivide:   "DIV",
	OpPercent:  "PCT",
	OpSqrt:     "SQRT",
}

func (o Operator) valid() bool {
	return o >= OpNone && o <= OpSqrt
}

// Symbol returns the operator's canonical symbol, or "" for OpNone and unknown values.
func (o Operator) Symbol() string {
	if !o.valid() {
		return ""
	}
	return operatorSymbols[o]
}

// Abbrev returns the text shown on the display while the operator is pending.
func (o Operator) Abbrev() string {
	if !o.valid() {
		return ""
	}
	return operatorAbbrevs[o]
}

// Binary reports whether the operator takes two operands.
func (o Operator) Binary() bool {
	switch o {
	case OpAdd, OpSubtract, OpMultiply, OpDivide, OpPercent:
		return true
	}
	return false
}

func (o Operator) String() string {
	if o == OpNone {
		return "none"
	}
	if s := o.Symbol(); s != "" {
		return s
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// ParseOperator maps a canonical symbol back to its Operator. The empty string is OpNone.
func ParseOperator(symbol string) (Operator, error) {
	symbol = strings.TrimSpace(symbol)
	for i, s := range operatorSymbols {
		if s == symbol {
			return Operator(i), nil
		}
	}
	return OpNone, fmt.Errorf("unknown operator %q", symbol)
}

// MarshalText encodes the operator as its symbol so snapshots stay readable.
func (o Operator) MarshalText() ([]byte, error) {
	if !o.valid() {
		return nil, fmt.Errorf("unknown operator %d", int(o))
	}
	return []byte(o.Symbol()), nil
}

func (o *Operator) UnmarshalText(text []byte) error {
	op, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}
