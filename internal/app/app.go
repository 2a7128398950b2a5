// Package app wires configuration, logging, the metrics server and the
// evaluation front ends into the application entry point.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/agbru/zzint"
	"github.com/agbru/zzint/internal/cli"
	"github.com/agbru/zzint/internal/config"
	apperrors "github.com/agbru/zzint/internal/errors"
	"github.com/agbru/zzint/internal/logging"
	"github.com/agbru/zzint/internal/memguard"
	"github.com/agbru/zzint/internal/server"
	"github.com/agbru/zzint/internal/ui"
	"github.com/rs/zerolog"
)

// Application represents the zzcalc application instance.
type Application struct {
	Config    config.AppConfig
	Logger    logging.Logger
	ErrWriter io.Writer

	evaluator *Evaluator
	metrics   *server.Metrics
}

// Evaluator is the expression evaluator used by all execution modes.
type Evaluator = cli.Evaluator

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets a custom logger for the application.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, evaluator: cli.NewEvaluator()}
	for _, opt := range opts {
		opt(app)
	}

	programName := "zzcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	cfg = config.ApplyAdaptiveWorkers(cfg)

	app.Config = cfg
	if app.Logger == nil {
		app.Logger = logging.NewDefaultLogger()
	}
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Version {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	a.configureLogging()
	ui.InitTheme(a.Config.NoColor)
	if !a.Config.NoColor {
		ui.SetTheme(a.Config.Theme)
	}

	zzint.Setup()
	defer zzint.Finish()
	if a.Config.MemoryLimit > 0 {
		lim := memguard.NewLimitAllocator(int64(a.Config.MemoryLimit))
		alloc, realloc, free := lim.Funcs()
		zzint.SetMemoryFuncs(zzint.AllocFunc(alloc), zzint.ReallocFunc(realloc), zzint.FreeFunc(free))
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	stopMetrics := a.startMetricsServer(ctx)
	defer stopMetrics()

	var err error
	switch {
	case a.Config.Expr != "":
		err = a.runExpression(ctx, out)
	case a.Config.File != "":
		err = a.runBatch(ctx, out)
	default:
		a.runREPL(ctx, out)
	}

	if err != nil {
		if apperrors.IsContextError(err) && ctx.Err() != nil {
			fmt.Fprintf(a.ErrWriter, "%sCanceled.%s\n", ui.ColorYellow(), ui.ColorReset())
			return apperrors.ExitErrorCanceled
		}
		cli.DisplayError(a.ErrWriter, err)
		return apperrors.ExitCodeFor(err)
	}
	return apperrors.ExitSuccess
}

// configureLogging sets the global log level from the verbosity flags.
func (a *Application) configureLogging() {
	switch {
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.evaluator.CommandNames()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// startMetricsServer launches the metrics endpoint when configured. The
// returned function blocks until the server has shut down.
func (a *Application) startMetricsServer(ctx context.Context) func() {
	if a.Config.MetricsAddr == "" {
		return func() {}
	}

	a.metrics = server.NewMetrics()
	srv := server.New(a.Config.MetricsAddr, a.metrics, a.Logger)

	srvCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Start(srvCtx); err != nil {
			a.Logger.Error("metrics server failed", err)
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// observe records one evaluation on the metrics bundle when it is active.
func (a *Application) observe(expr string, duration time.Duration, err error) {
	if a.metrics == nil {
		return
	}
	op, _, _ := strings.Cut(strings.TrimSpace(expr), " ")
	a.metrics.ObserveEvaluation(op, duration, err)
}

// runExpression evaluates the single configured expression.
func (a *Application) runExpression(ctx context.Context, out io.Writer) error {
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}
	a.Logger.Debug("evaluating expression", logging.String("expr", a.Config.Expr))
	start := time.Now()
	err := cli.RunExpression(ctx, a.Config, a.evaluator, out)
	a.observe(a.Config.Expr, time.Since(start), err)
	return err
}

// runREPL launches the interactive session.
func (a *Application) runREPL(ctx context.Context, out io.Writer) {
	repl := cli.NewREPL(a.evaluator, cli.REPLConfig{
		Base:    a.Config.Base,
		Timeout: a.Config.Timeout,
		Verbose: a.Config.Verbose,
	})
	repl.SetOutput(out)
	repl.Start(ctx)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
