package calcx

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidState is returned when a state breaks one of the calculator invariants.
var ErrInvalidState = errors.New("invalid calculator state")

// CalculatorState is everything the engine remembers between tokens.
type CalculatorState struct {
	DisplayText        string   `json:"displayText" yaml:"displayText"`
	CurrentOperand     string   `json:"currentOperand" yaml:"currentOperand"`
	PendingOperand     string   `json:"pendingOperand" yaml:"pendingOperand"`
	PendingOperator    Operator `json:"pendingOperator" yaml:"pendingOperator"`
	AwaitingFreshEntry bool     `json:"awaitingFreshEntry" yaml:"awaitingFreshEntry"`
}

// InitialState returns the state of a freshly constructed or cleared engine.
func InitialState() CalculatorState {
	return CalculatorState{DisplayText: "0"}
}

// Validate checks the invariants:
// - DisplayText is non-empty and at most MaxDisplayLength characters
// - CurrentOperand holds at most one decimal point
// - PendingOperator is OpNone or a binary operator
// - a pending operator is only set while a second operand is awaited
func (s CalculatorState) Validate() error {
	if s.DisplayText == "" {
		return fmt.Errorf("%w: empty display", ErrInvalidState)
	}
	if n := len(s.DisplayText); n > MaxDisplayLength {
		return fmt.Errorf("%w: display has %d characters, max %d", ErrInvalidState, n, MaxDisplayLength)
	}
	if strings.Count(s.CurrentOperand, ".") > 1 {
		return fmt.Errorf("%w: operand %q has more than one decimal point", ErrInvalidState, s.CurrentOperand)
	}
	if s.PendingOperator != OpNone && !s.PendingOperator.Binary() {
		return fmt.Errorf("%w: %s cannot be pending", ErrInvalidState, s.PendingOperator)
	}
	if s.PendingOperator == OpNone && s.PendingOperand != "" {
		return fmt.Errorf("%w: pending operand %q without an operator", ErrInvalidState, s.PendingOperand)
	}
	return nil
}

// Snapshot is the serializable form of one calculator session.
type Snapshot struct {
	SessionID string          `json:"sessionID" yaml:"sessionID"`
	State     CalculatorState `json:"state" yaml:"state"`
	Timestamp time.Time       `json:"timestamp" yaml:"timestamp"`
}
