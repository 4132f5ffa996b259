// Package core provides the event dispatch machine the calculator engine runs on.
// Stdlib-only implementation.
package core

import (
	"context"
	"errors"
)

type StateID int
type EventID int

type Event struct {
	ID      EventID
	Payload any
}

type Action func(ctx context.Context, evt *Event) error
type Guard func(ctx context.Context, evt *Event) (bool, error)

// ---

// State holds internal transitions only: a transition runs its action and the
// machine stays where it is. No exit/entry actions fire on Send.
type State struct {
	ID          StateID
	Transitions []*Transition
	EntryAction Action
}

type Transition struct {
	Event  EventID
	Source *State
	Guard  Guard  // nil --> always enabled
	Action Action // nil --> do nothing
}

// Machine dispatches events to the transitions of its current state.
type Machine struct {
	initial *State
	current *State
}

var (
	ErrNoStates       = errors.New("no states provided")
	ErrNilState       = errors.New("nil state")
	ErrDuplicateState = errors.New("duplicate state ID")
	ErrNoCurrentState = errors.New("machine has no current state")
)

//
// Public API
//

func (s *State) OnEntry(action Action) {
	s.EntryAction = action
}

// On registers an internal transition for the event. Transitions are tried in
// registration order; the first one whose guard passes fires.
func (s *State) On(e EventID, guard Guard, action Action) {
	s.Transitions = append(s.Transitions, &Transition{
		Event:  e,
		Source: s,
		Guard:  guard,
		Action: action,
	})
}

func NewMachine(states ...*State) (*Machine, error) {
	if len(states) == 0 {
		return nil, ErrNoStates
	}
	m := &Machine{}

	// First state is the initial one.
	seen := make(map[StateID]bool, len(states))
	for _, s := range states {
		if s == nil {
			return nil, ErrNilState
		}
		if seen[s.ID] {
			return nil, ErrDuplicateState
		}
		seen[s.ID] = true
		for _, t := range s.Transitions {
			if t != nil && t.Source == nil {
				t.Source = s
			}
		}
	}
	m.initial = states[0]
	m.current = m.initial

	return m, nil
}

// Start enters the machine's initial state.
func (m *Machine) Start(ctx context.Context) error {
	if m.current == nil {
		return ErrNoCurrentState
	}
	m.current = m.initial
	return m.current.enterState(ctx, nil)
}

// Current returns the ID of the active state.
func (m *Machine) Current() StateID {
	if m.current == nil {
		return 0
	}
	return m.current.ID
}

// Send delivers evt to the current state. It reports whether a transition
// fired; an event with no enabled transition is ignored.
func (m *Machine) Send(ctx context.Context, evt Event) (bool, error) {
	if m.current == nil {
		return false, ErrNoCurrentState
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	t, err := m.pickTransition(ctx, m.current, &evt)
	if err != nil || t == nil {
		return false, err
	}

	if err := t.evaluateAction(ctx, &evt); err != nil {
		return false, err
	}
	return true, nil
}

//
// Helper Functions (internal API)
//

func (s *State) enterState(ctx context.Context, evt *Event) error {
	if s.EntryAction != nil {
		return s.EntryAction(ctx, evt)
	}
	return nil
}

// pickTransition grabs the first enabled transition in registration order.
func (m *Machine) pickTransition(ctx context.Context, s *State, evt *Event) (*Transition, error) {
	for _, t := range s.Transitions {
		if t == nil || t.Event != evt.ID {
			continue
		}
		pass, err := t.evaluateGuard(ctx, evt)
		if err != nil {
			return nil, err
		}
		if pass {
			return t, nil
		}
	}
	return nil, nil
}

func (t *Transition) evaluateGuard(ctx context.Context, evt *Event) (bool, error) {
	if t.Guard != nil {
		return t.Guard(ctx, evt)
	}
	return true, nil
}

func (t *Transition) evaluateAction(ctx context.Context, evt *Event) error {
	if t.Action != nil {
		return t.Action(ctx, evt)
	}
	return nil
}
