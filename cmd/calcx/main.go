// Command calcx runs the calculator from the terminal.
//
//	calcx [flags] LABEL...
//
// Each label is one button press (0-9 . + - X / % √ = AC). With no labels,
// whitespace-separated labels are read from stdin. The display is printed
// once at start and again after every press.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/comalice/calcx"
	"github.com/comalice/calcx/internal/config"
	"github.com/comalice/calcx/internal/keypad"
	"github.com/comalice/calcx/internal/logging"
	"github.com/comalice/calcx/internal/production"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "calcx:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("calcx", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	session := fs.String("session", "", "resume and save the named session")
	reset := fs.Bool("reset", false, "discard the saved session before starting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(stderr, cfg.Log)
	if err != nil {
		return err
	}

	var store production.Persister
	opts := []calcx.Option{
		calcx.WithSink(production.NewWriterSink(stdout)),
		calcx.WithLogger(logger),
	}
	if *session != "" {
		store, err = production.NewPersister(cfg.Session.Dir, cfg.Session.Format)
		if err != nil {
			return err
		}
		if !*reset {
			st, err := loadSession(ctx, store, *session, logger)
			if err != nil {
				return err
			}
			opts = append(opts, calcx.WithState(st))
		}
	}

	e, err := calcx.NewEngine(opts...)
	if err != nil {
		return err
	}
	if err := e.Start(ctx); err != nil {
		return err
	}

	pressErr := press(ctx, e, fs.Args(), stdin)

	// Keep whatever was entered before a bad label or an interrupt.
	if store != nil {
		snap := calcx.Snapshot{SessionID: *session, State: e.State()}
		if err := store.Save(context.WithoutCancel(ctx), snap); err != nil {
			return errors.Join(pressErr, err)
		}
		logger.Info("session saved", "session", *session, "display", e.Display())
	}
	return pressErr
}

func loadSession(ctx context.Context, store production.Persister, id string, logger *slog.Logger) (calcx.CalculatorState, error) {
	snap, err := store.Load(ctx, id)
	if errors.Is(err, os.ErrNotExist) {
		logger.Info("new session", "session", id)
		return calcx.InitialState(), nil
	}
	if err != nil {
		return calcx.CalculatorState{}, err
	}
	logger.Info("session resumed", "session", id, "saved", snap.Timestamp)
	return snap.State, nil
}

// press submits labels from args, or from stdin when there are none.
func press(ctx context.Context, e *calcx.Engine, args []string, stdin io.Reader) error {
	if len(args) > 0 {
		return pressAll(ctx, e, args)
	}
	sc := bufio.NewScanner(stdin)
	line := 0
	for sc.Scan() {
		line++
		if err := pressAll(ctx, e, keypad.Fields(sc.Text())); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

func pressAll(ctx context.Context, e *calcx.Engine, labels []string) error {
	toks, err := keypad.ParseAll(labels)
	if err != nil {
		return err
	}
	for _, tok := range toks {
		if _, err := e.Submit(ctx, tok); err != nil {
			return err
		}
	}
	return nil
}
