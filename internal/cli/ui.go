package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/briandowns/spinner"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
// This approach provides a more human-readable output for short durations.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// TruncationLimit is the digit threshold from which a result is truncated
	// in standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges specifies the number of digits to display at the beginning
	// and end of a truncated number.
	DisplayEdges = 25
	// HexDisplayEdges specifies the number of hex characters to display at the
	// beginning and end of a truncated hexadecimal number.
	HexDisplayEdges = 40
	// SpinnerRefreshRate defines the refresh frequency of the spinner shown
	// during long evaluations.
	SpinnerRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the batch progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of long-running evaluations from a specific
// spinner implementation, facilitating easier testing and maintenance.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// progressBar generates a string representing a textual progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatBatchProgress renders the progress line shown while a batch file is
// being evaluated.
func FormatBatchProgress(done, total int) string {
	if total <= 0 {
		return ""
	}
	ratio := float64(done) / float64(total)
	return fmt.Sprintf("[%s] %d/%d (%.0f%%)", progressBar(ratio, ProgressBarWidth), done, total, ratio*100)
}
