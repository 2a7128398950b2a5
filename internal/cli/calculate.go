package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/zzint/internal/config"
	apperrors "github.com/agbru/zzint/internal/errors"
	"github.com/agbru/zzint/internal/ui"
	"github.com/briandowns/spinner"
)

// PrintExecutionConfig displays the current execution configuration to the
// user: expression, timeout, environment and storage limits.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating %s%q%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Expr, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	if cfg.MemoryLimit > 0 {
		fmt.Fprintf(out, "Temporary storage limit: %s%d%s words.\n",
			ui.ColorCyan(), cfg.MemoryLimit, ui.ColorReset())
	}
}

// EvaluateWithTimeout evaluates one expression, giving up when the context
// expires. The evaluation itself is not interruptible, so on expiry its
// goroutine is left to finish and discard the result in the background.
func EvaluateWithTimeout(ctx context.Context, ev *Evaluator, expr string) (*Result, error) {
	type outcome struct {
		res *Result
		err error
	}
	ch := make(chan outcome, 1)

	go func() {
		res, err := ev.Evaluate(expr)
		ch <- outcome{res, err}
	}()

	select {
	case out := <-ch:
		return out.res, out.err
	case <-ctx.Done():
		go func() {
			if out := <-ch; out.res != nil {
				out.res.Clear()
			}
		}()
		return nil, ctx.Err()
	}
}

// RunExpression evaluates a single expression with a spinner and prints the
// result according to the output configuration.
func RunExpression(ctx context.Context, cfg config.AppConfig, ev *Evaluator, out io.Writer) error {
	var sp Spinner
	if !cfg.Quiet {
		sp = newSpinner(spinner.WithWriter(out))
		sp.UpdateSuffix(" evaluating...")
		sp.Start()
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	res, err := EvaluateWithTimeout(ctx, ev, cfg.Expr)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.TimeoutError{Operation: cfg.Expr, Limit: cfg.Timeout}
		}
		return err
	}
	defer res.Clear()

	if cfg.Quiet {
		return DisplayQuietResult(out, res, cfg.Base)
	}
	return DisplayResult(out, res, cfg.Base, cfg.Verbose)
}
