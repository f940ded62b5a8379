package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/egdesk/taehwa/internal/bootstrap"
	"github.com/egdesk/taehwa/internal/cli"
	"github.com/egdesk/taehwa/internal/logging"
)

// frontends builds the front ends that drive a started runtime.
type frontends func(ctx context.Context, rt *bootstrap.Runtime) []func(context.Context) error

// runBrowser starts the runtime, runs the front ends until one finishes, the
// window closes or a signal arrives, then shuts everything down. quiet keeps
// logs off stderr while a TUI owns the terminal.
func runBrowser(a *cli.App, opts bootstrap.Options, quiet bool, build frontends) error {
	ctx, stop := signal.NotifyContext(a.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, ctx := bootstrap.StartSession(ctx, a.Config, bootstrap.SessionOptions{Quiet: quiet})
	defer session.LogCleanup()
	log := logging.FromContext(ctx)
	if session.LogFile != "" {
		log.Debug().Str("log_file", session.LogFile).Msg("session log attached")
	}

	opts.Config = a.Config
	opts.Manager = a.Manager
	opts.SessionID = session.ID
	rt, err := bootstrap.Start(ctx, opts)
	if err != nil {
		return err
	}

	var fronts []func(context.Context) error
	if build != nil {
		fronts = build(ctx, rt)
	}
	runErr := rt.Run(ctx, fronts...)
	if errors.Is(runErr, bootstrap.ErrHostClosed) {
		log.Info().Msg("browser window closed")
		runErr = nil
	}
	closeErr := rt.Close(context.WithoutCancel(ctx))
	return errors.Join(runErr, closeErr)
}
