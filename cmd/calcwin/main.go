// Command calcwin opens the calculator in a desktop window.
//
// Click the keypad buttons to use it. With -session the calculator
// state is restored on start and saved when the window closes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/comalice/calcx"
	"github.com/comalice/calcx/internal/config"
	"github.com/comalice/calcx/internal/logging"
	"github.com/comalice/calcx/internal/production"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "calcwin:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("calcwin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	session := fs.String("session", "", "resume and save the named session")
	scale := fs.Int("scale", 0, "window scale (overrides the config file)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *scale != 0 {
		cfg.Window.Scale = *scale
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	logger, err := logging.New(stderr, cfg.Log)
	if err != nil {
		return err
	}

	var (
		store production.Persister
		opts  []calcx.Option
	)
	if *session != "" {
		store, err = production.NewPersister(cfg.Session.Dir, cfg.Session.Format)
		if err != nil {
			return err
		}
		snap, err := store.Load(ctx, *session)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logger.Info("new session", "session", *session)
		case err != nil:
			return err
		default:
			logger.Info("session resumed", "session", *session, "saved", snap.Timestamp)
			opts = append(opts, calcx.WithState(snap.State))
		}
	}

	p, err := newPad(logger, opts...)
	if err != nil {
		return err
	}
	if err := p.start(ctx); err != nil {
		return err
	}

	winErr := runWindow(ctx, p, cfg.Window)
	if store != nil {
		if err := store.Save(context.Background(), calcx.Snapshot{SessionID: *session, State: p.engine.State()}); err != nil {
			return errors.Join(winErr, err)
		}
		logger.Info("session saved", "session", *session, "display", p.engine.Display())
	}
	return winErr
}
