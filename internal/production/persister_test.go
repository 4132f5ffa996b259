package production

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/comalice/calcx"
	"github.com/comalice/calcx/testutil"
)

func pendingAddition() calcx.CalculatorState {
	return calcx.CalculatorState{
		DisplayText:        "SUM",
		CurrentOperand:     "1.5",
		PendingOperand:     "1.5",
		PendingOperator:    calcx.OpAdd,
		AwaitingFreshEntry: true,
	}
}

func persisters(t *testing.T) map[string]Persister {
	t.Helper()
	jp, err := NewJSONPersister(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONPersister failed: %v", err)
	}
	yp, err := NewYAMLPersister(t.TempDir())
	if err != nil {
		t.Fatalf("NewYAMLPersister failed: %v", err)
	}
	return map[string]Persister{"json": jp, "yaml": yp}
}

func TestPersister_RoundTrip(t *testing.T) {
	for name, p := range persisters(t) {
		t.Run(name, func(t *testing.T) {
			for _, st := range []calcx.CalculatorState{
				calcx.InitialState(),
				pendingAddition(),
				{DisplayText: "RES", CurrentOperand: "-2", PendingOperand: "-2", PendingOperator: calcx.OpSubtract, AwaitingFreshEntry: true},
				{DisplayText: "PCT", CurrentOperand: "5", PendingOperand: "5", PendingOperator: calcx.OpPercent, AwaitingFreshEntry: true},
				{DisplayText: calcx.DivideByZeroText, CurrentOperand: calcx.DivideByZeroText, AwaitingFreshEntry: true},
			} {
				snapshot := calcx.Snapshot{
					SessionID: "desk",
					State:     st,
					Timestamp: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
				}
				if err := p.Save(context.Background(), snapshot); err != nil {
					t.Fatalf("Save failed: %v", err)
				}
				loaded, err := p.Load(context.Background(), "desk")
				if err != nil {
					t.Fatalf("Load failed: %v", err)
				}
				if diff := cmp.Diff(snapshot, loaded); diff != "" {
					t.Errorf("snapshot mismatch (-saved +loaded):\n%s", diff)
				}
			}
		})
	}
}

func TestPersister_SaveStampsTime(t *testing.T) {
	for name, p := range persisters(t) {
		before := time.Now().Add(-time.Second)
		if err := p.Save(context.Background(), calcx.Snapshot{SessionID: "s", State: calcx.InitialState()}); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		loaded, err := p.Load(context.Background(), "s")
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if loaded.Timestamp.Before(before) {
			t.Errorf("%s: timestamp %v not set on save", name, loaded.Timestamp)
		}
	}
}

func TestPersister_LoadNonExistent(t *testing.T) {
	for name, p := range persisters(t) {
		_, err := p.Load(context.Background(), "nonexistent")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("%s: expected os.ErrNotExist wrapped error, got %v", name, err)
		}
	}
}

func TestPersister_RejectsBadSessionIDs(t *testing.T) {
	for name, p := range persisters(t) {
		for _, id := range []string{"", "../escape", "a/b", ".hidden"} {
			if _, err := p.Load(context.Background(), id); !errors.Is(err, ErrInvalidSessionID) {
				t.Errorf("%s: Load(%q) got %v", name, id, err)
			}
			err := p.Save(context.Background(), calcx.Snapshot{SessionID: id, State: calcx.InitialState()})
			if !errors.Is(err, ErrInvalidSessionID) {
				t.Errorf("%s: Save(%q) got %v", name, id, err)
			}
		}
	}
}

func TestPersister_RejectsInvalidState(t *testing.T) {
	dir := t.TempDir()
	p, err := NewYAMLPersister(dir)
	if err != nil {
		t.Fatal(err)
	}

	bad := calcx.Snapshot{SessionID: "bad", State: calcx.CalculatorState{DisplayText: ""}}
	if err := p.Save(context.Background(), bad); !errors.Is(err, calcx.ErrInvalidState) {
		t.Errorf("Save: got %v", err)
	}

	doc := "sessionID: bad\nstate:\n  displayText: \"12345678901234567\"\n"
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Load(context.Background(), "bad"); !errors.Is(err, calcx.ErrInvalidState) {
		t.Errorf("Load: got %v", err)
	}
}

func TestPersister_Integration_ResumeEngine(t *testing.T) {
	p, err := NewPersister(t.TempDir(), "yaml")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	e := testutil.NewEngine(t)
	testutil.Press(t, e, "1", "2", "X")
	if err := p.Save(ctx, calcx.Snapshot{SessionID: "resume", State: e.State()}); err != nil {
		t.Fatal(err)
	}

	loaded, err := p.Load(ctx, "resume")
	if err != nil {
		t.Fatal(err)
	}
	e2 := testutil.NewEngine(t, calcx.WithState(loaded.State))
	if got := testutil.Press(t, e2, "3", "="); got != "36" {
		t.Errorf("resumed engine: got %q want 36", got)
	}
}

func TestNewPersisterFormats(t *testing.T) {
	dir := t.TempDir()
	if p, err := NewPersister(dir, "json"); err != nil {
		t.Error(err)
	} else if _, ok := p.(*JSONPersister); !ok {
		t.Errorf("json: got %T", p)
	}
	if p, err := NewPersister(dir, "yaml"); err != nil {
		t.Error(err)
	} else if _, ok := p.(*YAMLPersister); !ok {
		t.Errorf("yaml: got %T", p)
	}
	if _, err := NewPersister(dir, "toml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
