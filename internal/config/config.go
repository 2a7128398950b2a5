// Package config defines the application configuration and its resolution
// chain: command-line flags take priority over environment variables, which
// take priority over built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/zzint/internal/errors"
)

// EnvPrefix is the prefix for all environment variables read by the
// application (e.g. ZZCALC_TIMEOUT).
const EnvPrefix = "ZZCALC_"

// Default configuration values.
const (
	DefaultBase    = 10
	DefaultTimeout = 5 * time.Minute
)

// AppConfig holds the complete runtime configuration of the application.
type AppConfig struct {
	// Expr is a single expression to evaluate (one-shot mode).
	Expr string
	// File is a path to a batch file of expressions, one per line.
	// "-" reads expressions from standard input.
	File string
	// REPL forces the interactive session even when stdin is not a terminal.
	REPL bool

	// Base is the output base for results (2..36).
	Base int
	// Hex displays results in hexadecimal (shorthand for -base 16).
	Hex bool

	// Timeout bounds a single evaluation.
	Timeout time.Duration
	// Workers is the number of concurrent evaluators in batch mode.
	// Zero selects a hardware-based default.
	Workers int
	// MemoryLimit bounds temporary digit storage, in 64-bit words.
	// Zero disables the limit.
	MemoryLimit uint64

	// MetricsAddr is the listen address of the Prometheus metrics server.
	// Empty disables the server.
	MetricsAddr string

	// Completion names a shell to emit a completion script for
	// ("bash", "zsh", "fish" or "powershell").
	Completion string
	// Version prints version information and exits.
	Version bool

	// Verbose enables debug logging.
	Verbose bool
	// Quiet suppresses all non-result output.
	Quiet bool
	// NoColor disables ANSI colors in the output.
	NoColor bool
	// Theme selects the color theme ("dark", "light" or "none").
	Theme string
}

// ParseConfig parses command-line arguments and environment variables into
// an AppConfig. Flags not set on the command line may be overridden by
// ZZCALC_-prefixed environment variables.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		Base:    DefaultBase,
		Timeout: DefaultTimeout,
		Theme:   "dark",
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() { printUsage(fs, programName) }

	fs.StringVar(&cfg.Expr, "e", "", "expression to evaluate (one-shot mode)")
	fs.StringVar(&cfg.Expr, "expr", "", "alias for -e")
	fs.StringVar(&cfg.File, "f", "", "batch file of expressions, one per line (\"-\" for stdin)")
	fs.StringVar(&cfg.File, "file", "", "alias for -f")
	fs.BoolVar(&cfg.REPL, "i", false, "start an interactive session")
	fs.BoolVar(&cfg.REPL, "interactive", false, "alias for -i")

	fs.IntVar(&cfg.Base, "base", DefaultBase, "output base for results (2..36)")
	fs.BoolVar(&cfg.Hex, "x", false, "display results in hexadecimal")
	fs.BoolVar(&cfg.Hex, "hex", false, "alias for -x")

	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "maximum duration of a single evaluation")
	fs.IntVar(&cfg.Workers, "workers", 0, "concurrent evaluators in batch mode (0 = auto)")
	fs.Uint64Var(&cfg.MemoryLimit, "memory-limit", 0, "temporary digit storage limit in 64-bit words (0 = unlimited)")

	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "listen address of the metrics server (empty = disabled)")
	fs.StringVar(&cfg.Completion, "completion", "", "emit a completion script for the given shell and exit")
	fs.BoolVar(&cfg.Version, "V", false, "print version information and exit")
	fs.BoolVar(&cfg.Version, "version", false, "alias for -V")

	fs.BoolVar(&cfg.Verbose, "v", false, "enable debug logging")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "alias for -v")
	fs.BoolVar(&cfg.Quiet, "q", false, "suppress all non-result output")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "alias for -q")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable ANSI colors")
	fs.StringVar(&cfg.Theme, "theme", "dark", "color theme: dark, light or none")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected argument: %s", fs.Arg(0))
	}

	applyEnvOverrides(&cfg, fs)

	if cfg.Hex {
		cfg.Base = 16
	}

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistent or out-of-range
// values.
func (c AppConfig) Validate() error {
	if c.Base < 2 || c.Base > 36 {
		return apperrors.ValidationError{Field: "base", Message: "must be between 2 and 36"}
	}
	if c.Workers < 0 {
		return apperrors.ValidationError{Field: "workers", Message: "must not be negative"}
	}
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	}
	switch c.Theme {
	case "dark", "light", "none":
	default:
		return apperrors.ValidationError{Field: "theme", Message: "unknown theme"}
	}
	if c.Expr != "" && c.File != "" {
		return apperrors.NewConfigError("-e and -f are mutually exclusive")
	}
	if c.Verbose && c.Quiet {
		return apperrors.NewConfigError("-v and -q are mutually exclusive")
	}
	return nil
}

// printUsage writes the flag summary with a short header describing the
// execution modes.
func printUsage(fs *flag.FlagSet, programName string) {
	out := fs.Output()
	fmt.Fprintf(out, "Usage: %s [flags]\n\n", programName)
	fmt.Fprintf(out, "Arbitrary-precision integer calculator.\n")
	fmt.Fprintf(out, "Without -e or -f an interactive session is started.\n\n")
	fmt.Fprintf(out, "Flags:\n")
	fs.PrintDefaults()
	fmt.Fprintf(out, "\nEnvironment variables (lower priority than flags):\n")
	fmt.Fprintf(out, "  %sBASE, %sTIMEOUT, %sWORKERS, %sMEMORY_LIMIT,\n", EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix)
	fmt.Fprintf(out, "  %sMETRICS_ADDR, %sVERBOSE, %sQUIET, %sTHEME\n", EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix)
}
