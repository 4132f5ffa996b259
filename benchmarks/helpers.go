// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/calcx"
)

// Tokens cycles through every token kind: "1 2 . 5 + 7 = √ AC".
var Tokens = []calcx.Token{
	calcx.Digit('1'),
	calcx.Digit('2'),
	calcx.DecimalPoint(),
	calcx.Digit('5'),
	calcx.Binary(calcx.OpAdd),
	calcx.Digit('7'),
	calcx.Equals(),
	calcx.Unary(calcx.OpSqrt),
	calcx.Clear(),
}

// LongEntry fills the display and then keeps pressing digits that are dropped.
func LongEntry(n int) []calcx.Token {
	toks := make([]calcx.Token, n)
	for i := range toks {
		toks[i] = calcx.Digit(byte('1' + i%9))
	}
	return toks
}

// NewEngine returns a started engine with no sink, optionally logging at debug.
func NewEngine(logger *slog.Logger) (*calcx.Engine, error) {
	opts := []calcx.Option{}
	if logger != nil {
		opts = append(opts, calcx.WithLogger(logger))
	}
	e, err := calcx.NewEngine(opts...)
	if err != nil {
		return nil, err
	}
	if err := e.Start(context.Background()); err != nil {
		return nil, err
	}
	return e, nil
}

// SnapshotYAML marshals a pending-operation snapshot, as the session store writes it.
func SnapshotYAML(i int) ([]byte, error) {
	snap := calcx.Snapshot{
		SessionID: fmt.Sprintf("bench-%d", i),
		State: calcx.CalculatorState{
			DisplayText:        "MUL",
			CurrentOperand:     "12.5",
			PendingOperand:     "12.5",
			PendingOperator:    calcx.OpMultiply,
			AwaitingFreshEntry: true,
		},
		Timestamp: time.Unix(int64(i), 0).UTC(),
	}
	return yaml.Marshal(snap)
}
