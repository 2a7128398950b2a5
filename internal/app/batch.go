package app

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/agbru/zzint/internal/cli"
	apperrors "github.com/agbru/zzint/internal/errors"
	"github.com/agbru/zzint/internal/logging"
	"github.com/agbru/zzint/internal/ui"
	"golang.org/x/sync/errgroup"
)

// batchResult holds the rendered outcome of one batch expression.
type batchResult struct {
	expr   string
	output string
	err    error
}

// runBatch evaluates every expression of the configured file concurrently,
// bounded by the worker count, and prints the results in input order.
// Evaluation failures do not abort the batch; the first one decides the
// exit code.
func (a *Application) runBatch(ctx context.Context, out io.Writer) error {
	exprs, err := a.readBatchFile()
	if err != nil {
		return err
	}
	if len(exprs) == 0 {
		return apperrors.NewConfigError("no expressions in %s", a.Config.File)
	}

	a.Logger.Info("starting batch evaluation",
		logging.Int("expressions", len(exprs)),
		logging.Int("workers", a.Config.Workers))

	results := make([]batchResult, len(exprs))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Config.Workers)
	for i, expr := range exprs {
		g.Go(func() error {
			results[i] = a.evalBatchExpr(gctx, expr)
			n := done.Add(1)
			if !a.Config.Quiet {
				fmt.Fprintf(a.ErrWriter, "\r%s", cli.FormatBatchProgress(int(n), len(exprs)))
			}
			// Cancellation is the only error that stops the batch.
			if apperrors.IsContextError(results[i].err) {
				return results[i].err
			}
			return nil
		})
	}
	waitErr := g.Wait()
	if !a.Config.Quiet {
		fmt.Fprintln(a.ErrWriter)
	}
	if waitErr != nil {
		return waitErr
	}

	var firstErr error
	failures := 0
	for _, res := range results {
		if res.err != nil {
			failures++
			if firstErr == nil {
				firstErr = res.err
			}
			fmt.Fprintf(out, "%s%s: error: %v%s\n", ui.ColorRed(), res.expr, res.err, ui.ColorReset())
			continue
		}
		fmt.Fprint(out, res.output)
	}

	if failures > 0 {
		a.Logger.Error("batch finished with failures", firstErr, logging.Int("failures", failures))
		return firstErr
	}
	return nil
}

// evalBatchExpr evaluates one expression with the configured timeout and
// renders its output line.
func (a *Application) evalBatchExpr(ctx context.Context, expr string) batchResult {
	ctx, cancel := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancel()

	start := time.Now()
	res, err := cli.EvaluateWithTimeout(ctx, a.evaluator, expr)
	a.observe(expr, time.Since(start), err)
	if err != nil {
		return batchResult{expr: expr, err: err}
	}
	defer res.Clear()

	var buf bytes.Buffer
	if a.Config.Quiet {
		err = cli.DisplayQuietResult(&buf, res, a.Config.Base)
	} else {
		fmt.Fprintf(&buf, "%s%s%s\n", ui.ColorBold(), expr, ui.ColorReset())
		err = cli.DisplayResult(&buf, res, a.Config.Base, a.Config.Verbose)
	}
	if err != nil {
		return batchResult{expr: expr, err: err}
	}
	return batchResult{expr: expr, output: buf.String()}
}

// readBatchFile loads the expression list, skipping blank lines and
// comments. "-" reads from standard input.
func (a *Application) readBatchFile() ([]string, error) {
	var in io.Reader
	if a.Config.File == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(a.Config.File)
		if err != nil {
			return nil, apperrors.WrapError(err, "failed to open batch file")
		}
		defer f.Close()
		in = f
	}

	var exprs []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exprs = append(exprs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.WrapError(err, "failed to read batch file")
	}
	return exprs, nil
}
