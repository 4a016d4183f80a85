package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/hookupmap/internal/app"
	apperr "github.com/yungbote/hookupmap/internal/pkg/errors"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
	exitInvalid = 3
	exitStore   = 4
)

type rootOptions struct {
	configPath string
	dataDir    string
	logMode    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	stop()
	os.Exit(exitCode(err))
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:           "hookupmap",
		Short:         "Import and inspect hookup diagram maps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Directory holding map stores (overrides config)")
	root.PersistentFlags().StringVar(&opts.logMode, "log-mode", "", "Log mode: development, prod, quiet (overrides config)")

	root.AddCommand(
		newImportCmd(&opts),
		newValidateCmd(&opts),
		newQueryCmd(&opts),
		newExportCmd(&opts),
	)
	return root
}

// setup builds the app for one command run; flags win over config.
func setup(opts *rootOptions) (*app.App, error) {
	if opts.logMode != "" {
		_ = os.Setenv("HOOKUP_LOG_MODE", opts.logMode)
	}
	a, err := app.New(opts.configPath)
	if err != nil {
		return nil, withCode(exitUsage, err)
	}
	if opts.dataDir != "" {
		a.Cfg.DataDir = opts.dataDir
	}
	return a, nil
}

type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }

func (e *codedError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &codedError{code: code, err: err}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var coded *codedError
	if errors.As(err, &coded) {
		return coded.code
	}
	switch {
	case errors.Is(err, apperr.ErrStructural),
		errors.Is(err, apperr.ErrDecode),
		errors.Is(err, apperr.ErrReference):
		return exitInvalid
	case errors.Is(err, apperr.ErrStore),
		errors.Is(err, apperr.ErrSchema),
		errors.Is(err, apperr.ErrExists),
		errors.Is(err, apperr.ErrNotFound):
		return exitStore
	case errors.Is(err, apperr.ErrInvalidArgument):
		return exitUsage
	default:
		return exitFailure
	}
}
