package app

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/zzint"
)

// HasVersionFlag reports whether the argument list carries a version flag.
// It lets the entry point answer -V without parsing the full flag set.
func HasVersionFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "-V", "-version", "--version":
			return true
		}
	}
	return false
}

// PrintVersion writes the application version line.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "zzcalc %s (%s)\n", zzint.Version(), runtime.Version())
}
