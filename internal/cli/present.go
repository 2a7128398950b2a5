// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatInt], [FormatExecutionDuration].

package cli

import (
	"fmt"
	"io"

	"github.com/agbru/zzint"
	"github.com/agbru/zzint/internal/ui"
)

// FormatInt renders an integer in the given base with the conventional
// prefix for bases 2, 8 and 16, placed after the sign.
func FormatInt(x *zzint.Int, base int) (string, error) {
	text, err := x.Text(base)
	if err != nil {
		return "", err
	}
	var prefix string
	switch base {
	case 2:
		prefix = "0b"
	case 8:
		prefix = "0o"
	case 16:
		prefix = "0x"
	default:
		return text, nil
	}
	if len(text) > 0 && text[0] == '-' {
		return "-" + prefix + text[1:], nil
	}
	return prefix + text, nil
}

// truncateMiddle shortens a long digit string to its leading and trailing
// edges. Strings at or below the limit are returned unchanged.
func truncateMiddle(s string, limit, edges int) string {
	if len(s) <= limit || len(s) < 2*edges {
		return s
	}
	return s[:edges] + "..." + s[len(s)-edges:]
}

// DisplayQuietResult outputs one bare value per line, suitable for
// scripting. Multi-value results carry their label as "label=value".
func DisplayQuietResult(out io.Writer, res *Result, base int) error {
	for _, v := range res.Values {
		text, err := FormatInt(v.Num, base)
		if err != nil {
			return err
		}
		if v.Label != "" && len(res.Values) > 1 {
			fmt.Fprintf(out, "%s=%s\n", v.Label, text)
		} else {
			fmt.Fprintln(out, text)
		}
	}
	return nil
}

// DisplayResult outputs an evaluation result with colors, timing and
// truncation of very long values.
func DisplayResult(out io.Writer, res *Result, base int, verbose bool) error {
	fmt.Fprintf(out, "  Time: %s%s%s\n",
		ui.ColorGreen(), FormatExecutionDuration(res.Duration), ui.ColorReset())

	for _, v := range res.Values {
		text, err := FormatInt(v.Num, base)
		if err != nil {
			return err
		}

		label := "="
		if v.Label != "" {
			label = v.Label + " ="
		}

		if verbose || len(text) <= TruncationLimit {
			fmt.Fprintf(out, "  %s %s%s%s\n", label, ui.ColorGreen(), text, ui.ColorReset())
			continue
		}
		edges := DisplayEdges
		if base == 16 {
			edges = HexDisplayEdges
		}
		fmt.Fprintf(out, "  %s %s%s%s (%d digits, %d bits, truncated)\n",
			label, ui.ColorGreen(), truncateMiddle(text, TruncationLimit, edges), ui.ColorReset(),
			len(text), v.Num.BitLen())
	}
	return nil
}

// DisplayError prints an evaluation error in the error color.
func DisplayError(out io.Writer, err error) {
	fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
}
