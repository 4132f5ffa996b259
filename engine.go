// Package calcx implements a four-function calculator engine. Each button press
// arrives as a Token; the engine updates its CalculatorState and returns the text
// the display should show.
//
// The engine is single-threaded: Submit must not be called concurrently.
package calcx

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/comalice/calcx/internal/core"
)

// DisplaySink receives the display text after every token.
type DisplaySink interface {
	Render(ctx context.Context, text string) error
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink forwards every display update to sink.
func WithSink(sink DisplaySink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

// WithLogger sets the logger used for token tracing. Defaults to discarding.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithState resumes from a previously saved state instead of the initial one.
func WithState(state CalculatorState) Option {
	return func(e *Engine) {
		e.resume = &state
	}
}

const stateReady core.StateID = 1

// Engine is the calculator state machine. Construct one per display session.
type Engine struct {
	state   CalculatorState
	machine *core.Machine
	sink    DisplaySink
	logger  *slog.Logger
	resume  *CalculatorState
}

// NewEngine builds an engine in the initial state, or in the state given by WithState.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		state:  InitialState(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.resume != nil {
		if err := e.Restore(*e.resume); err != nil {
			return nil, err
		}
		e.resume = nil
	}

	m, err := core.NewMachine(e.newReadyState())
	if err != nil {
		return nil, fmt.Errorf("build machine: %w", err)
	}
	e.machine = m
	return e, nil
}

// Start renders the current display, "0" for a new engine.
func (e *Engine) Start(ctx context.Context) error {
	return e.machine.Start(ctx)
}

// Submit applies one token and returns the resulting display text. Inputs the
// calculator cannot accept (a full display, a second decimal point, "=" with
// nothing pending) leave the state unchanged. Errors are reserved for invalid
// tokens, a cancelled context and sink failures.
func (e *Engine) Submit(ctx context.Context, tok Token) (string, error) {
	if err := tok.Validate(); err != nil {
		return e.state.DisplayText, err
	}

	fired, err := e.machine.Send(ctx, core.Event{ID: core.EventID(tok.Kind), Payload: tok})
	if err != nil {
		return e.state.DisplayText, err
	}
	if fired {
		e.logger.DebugContext(ctx, "token applied", "kind", tok.Kind, "token", tok.String(), "display", e.state.DisplayText)
	} else {
		e.logger.DebugContext(ctx, "token ignored", "kind", tok.Kind, "token", tok.String(), "display", e.state.DisplayText)
	}

	return e.state.DisplayText, e.render(ctx)
}

// Display returns the current display text.
func (e *Engine) Display() string {
	return e.state.DisplayText
}

// State returns a copy of the current state.
func (e *Engine) State() CalculatorState {
	return e.state
}

// Restore replaces the state after validating it. The display sink is not
// notified; call Start to render the restored display.
func (e *Engine) Restore(state CalculatorState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	e.state = state
	return nil
}

func (e *Engine) render(ctx context.Context) error {
	if e.sink == nil {
		return nil
	}
	if err := e.sink.Render(ctx, e.state.DisplayText); err != nil {
		return fmt.Errorf("render display: %w", err)
	}
	return nil
}

// newReadyState wires one internal transition per token kind. Guards decide
// whether an input is accepted; actions mutate e.state.
func (e *Engine) newReadyState() *core.State {
	s := &core.State{ID: stateReady}
	s.OnEntry(func(ctx context.Context, _ *core.Event) error {
		return e.render(ctx)
	})

	s.On(core.EventID(KindDigit), e.fitsDisplay, e.enterDigit)
	s.On(core.EventID(KindDecimalPoint), e.acceptsDecimalPoint, e.enterDecimalPoint)
	s.On(core.EventID(KindBinaryOperator), nil, e.selectOperator)
	s.On(core.EventID(KindUnaryOperator), nil, e.applyUnary)
	s.On(core.EventID(KindEquals), e.hasPendingOperation, e.evaluate)
	s.On(core.EventID(KindClear), nil, e.clear)
	return s
}

func tokenOf(evt *core.Event) Token {
	tok, _ := evt.Payload.(Token)
	return tok
}

//
// Guards
//

func (e *Engine) fitsDisplay(_ context.Context, evt *core.Event) (bool, error) {
	return len(e.nextDigitDisplay(tokenOf(evt).Digit)) <= MaxDisplayLength, nil
}

func (e *Engine) acceptsDecimalPoint(_ context.Context, _ *core.Event) (bool, error) {
	if e.state.AwaitingFreshEntry {
		return true, nil
	}
	if strings.Contains(e.state.CurrentOperand, ".") {
		return false, nil
	}
	return len(e.state.DisplayText)+1 <= MaxDisplayLength, nil
}

func (e *Engine) hasPendingOperation(_ context.Context, _ *core.Event) (bool, error) {
	return e.state.PendingOperand != "" && e.state.PendingOperator != OpNone, nil
}

//
// Actions
//

func (e *Engine) nextDigitDisplay(d byte) string {
	switch {
	case e.state.AwaitingFreshEntry, e.state.DisplayText == "0":
		return string(d)
	default:
		return e.state.DisplayText + string(d)
	}
}

func (e *Engine) enterDigit(_ context.Context, evt *core.Event) error {
	e.state.DisplayText = e.nextDigitDisplay(tokenOf(evt).Digit)
	e.state.CurrentOperand = e.state.DisplayText
	e.state.AwaitingFreshEntry = false
	return nil
}

func (e *Engine) enterDecimalPoint(_ context.Context, _ *core.Event) error {
	if e.state.AwaitingFreshEntry {
		e.state.DisplayText = "0."
		e.state.AwaitingFreshEntry = false
	} else {
		e.state.DisplayText += "."
	}
	e.state.CurrentOperand = e.state.DisplayText
	return nil
}

// selectOperator replaces any pending operator; nothing is evaluated.
func (e *Engine) selectOperator(_ context.Context, evt *core.Event) error {
	op := tokenOf(evt).Op
	e.state.PendingOperand = e.state.CurrentOperand
	e.state.PendingOperator = op
	e.state.DisplayText = op.Abbrev()
	e.state.AwaitingFreshEntry = true
	return nil
}

func (e *Engine) applyUnary(_ context.Context, evt *core.Event) error {
	e.showResult(Apply(e.state.CurrentOperand, "", tokenOf(evt).Op))
	return nil
}

func (e *Engine) evaluate(_ context.Context, _ *core.Event) error {
	e.showResult(Apply(e.state.PendingOperand, e.state.CurrentOperand, e.state.PendingOperator))
	return nil
}

func (e *Engine) showResult(result string) {
	result = fitDisplay(result)
	e.state.DisplayText = result
	e.state.CurrentOperand = result
	e.state.PendingOperand = ""
	e.state.PendingOperator = OpNone
	e.state.AwaitingFreshEntry = true
}

func (e *Engine) clear(_ context.Context, _ *core.Event) error {
	e.state = InitialState()
	return nil
}
