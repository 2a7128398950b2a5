package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/zzint"
	"github.com/agbru/zzint/internal/ui"
)

// REPLConfig holds configuration for the interactive session.
type REPLConfig struct {
	// Base is the output base for results.
	Base int
	// Timeout is the maximum duration for each evaluation.
	Timeout time.Duration
	// Verbose disables truncation of long results.
	Verbose bool
}

// REPL represents an interactive calculator session.
type REPL struct {
	config    REPLConfig
	evaluator *Evaluator
	in        io.Reader
	out       io.Writer
}

// NewREPL creates a new interactive session over the given evaluator.
func NewREPL(evaluator *Evaluator, config REPLConfig) *REPL {
	if config.Base == 0 {
		config.Base = 10
	}
	return &REPL{
		config:    config,
		evaluator: evaluator,
		in:        os.Stdin,
		out:       os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive session. It continuously reads user input
// and processes commands until the user exits or EOF is reached.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"zz> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(ctx, input) {
			return // Exit command received
		}
	}
}

// printBanner displays the session welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sBig Integer Calculator - Interactive Mode%s            %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays session commands and the operation listing.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sOperations:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, cmd := range r.evaluator.Commands() {
		fmt.Fprintf(r.out, "  %s%-22s%s %s\n", ui.ColorYellow(), cmd.Usage, ui.ColorReset(), cmd.Help)
	}
	fmt.Fprintf(r.out, "\n%sSession commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sbase <b>%s      - Change the output base (2..36)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shex%s           - Toggle hexadecimal display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s        - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s   - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "\nOperands accept 0b/0o/0x prefixes and '_' digit separators.\n")
}

// processCommand parses and executes a user command.
// Returns false if the session should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "base":
		r.cmdBase(args)
	case "hex":
		r.cmdHex()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		r.evaluate(ctx, input)
	}

	return true
}

// evaluate runs one expression with the session timeout and displays the
// outcome.
func (r *REPL) evaluate(ctx context.Context, input string) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	res, err := EvaluateWithTimeout(ctx, r.evaluator, input)
	if err != nil {
		DisplayError(r.out, err)
		if strings.Contains(err.Error(), "unknown command") {
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
		return
	}
	defer res.Clear()

	if err := DisplayResult(r.out, res, r.config.Base, r.config.Verbose); err != nil {
		DisplayError(r.out, err)
	}
	fmt.Fprintln(r.out)
}

// cmdBase handles the "base" command.
func (r *REPL) cmdBase(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "Current base: %s%d%s\n", ui.ColorCyan(), r.config.Base, ui.ColorReset())
		return
	}
	var b zzint.Int
	if err := b.SetString(args[0], 10); err != nil {
		fmt.Fprintf(r.out, "%sInvalid base: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	defer b.Clear()
	base, err := b.Int64()
	if err != nil || base < 2 || base > 36 {
		fmt.Fprintf(r.out, "%sBase must be between 2 and 36%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	r.config.Base = int(base)
	fmt.Fprintf(r.out, "Output base changed to: %s%d%s\n", ui.ColorGreen(), r.config.Base, ui.ColorReset())
}

// cmdHex toggles hexadecimal output mode.
func (r *REPL) cmdHex() {
	if r.config.Base == 16 {
		r.config.Base = 10
	} else {
		r.config.Base = 16
	}
	status := "disabled"
	if r.config.Base == 16 {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Hexadecimal display: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

// cmdStatus displays the current session configuration.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Base:           %s%d%s\n", ui.ColorCyan(), r.config.Base, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Max width:      %s%d%s bits\n", ui.ColorCyan(), zzint.MaxBits(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Tracked temps:  %s%d%s\n", ui.ColorCyan(), zzint.TrackedTemps(), ui.ColorReset())
	verboseStatus := "no"
	if r.config.Verbose {
		verboseStatus = "yes"
	}
	fmt.Fprintf(r.out, "  Full results:   %s%s%s\n", ui.ColorCyan(), verboseStatus, ui.ColorReset())
	fmt.Fprintln(r.out)
}
