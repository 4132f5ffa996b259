package calcx

import (
	"errors"
	"fmt"
)

// TokenKind classifies a unit of input. The set is closed.
type TokenKind int

const (
	KindDigit TokenKind = iota + 1
	KindDecimalPoint
	KindBinaryOperator
	KindUnaryOperator
	KindEquals
	KindClear
)

var kindNames = map[TokenKind]string{
	KindDigit:          "digit",
	KindDecimalPoint:   "decimal-point",
	KindBinaryOperator: "binary-operator",
	KindUnaryOperator:  "unary-operator",
	KindEquals:         "equals",
	KindClear:          "clear",
}

func (k TokenKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// ErrInvalidToken is returned for tokens that were not built by the constructors below.
var ErrInvalidToken = errors.New("invalid token")

// Token is one classified button press.
type Token struct {
	Kind  TokenKind
	Digit byte     // '0'..'9' for KindDigit
	Op    Operator // for KindBinaryOperator and KindUnaryOperator
}

func Digit(d byte) Token { return Token{Kind: KindDigit, Digit: d} }
func DecimalPoint() Token { return Token{Kind: KindDecimalPoint} }
func Binary(op Operator) Token { return Token{Kind: KindBinaryOperator, Op: op} }
func Unary(op Operator) Token { return Token{Kind: KindUnaryOperator, Op: op} }
func Equals() Token { return Token{Kind: KindEquals} }
func Clear() Token { return Token{Kind: KindClear} }

// Validate checks that the token's payload matches its kind.
func (t Token) Validate() error {
	switch t.Kind {
	case KindDigit:
		if t.Digit < '0' || t.Digit > '9' {
			return fmt.Errorf("%w: digit %q", ErrInvalidToken, t.Digit)
		}
	case KindBinaryOperator:
		if !t.Op.Binary() {
			return fmt.Errorf("%w: %s is not a binary operator", ErrInvalidToken, t.Op)
		}
	case KindUnaryOperator:
		if t.Op != OpSqrt {
			return fmt.Errorf("%w: %s is not a unary operator", ErrInvalidToken, t.Op)
		}
	case KindDecimalPoint, KindEquals, KindClear:
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidToken, int(t.Kind))
	}
	return nil
}

func (t Token) String() string {
	switch t.Kind {
	case KindDigit:
		return string(t.Digit)
	case KindDecimalPoint:
		return "."
	case KindBinaryOperator, KindUnaryOperator:
		return t.Op.String()
	case KindEquals:
		return "="
	case KindClear:
		return "AC"
	}
	return t.Kind.String()
}
