package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestFieldHelpers covers the Field constructors with the attribute
// shapes the calculator actually logs.
func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("op", "powm"), "op", "powm"},
		{"Int", Int("operands", 3), "operands", 3},
		{"Uint64", Uint64("bits", 18446744073709551615), "bits", uint64(18446744073709551615)},
		{"Float64", Float64("seconds", 0.25), "seconds", 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key || tt.field.Value != tt.value {
				t.Errorf("%s field = {%q, %v}, want {%q, %v}",
					tt.name, tt.field.Key, tt.field.Value, tt.key, tt.value)
			}
		})
	}

	t.Run("Err uses the conventional error key", func(t *testing.T) {
		cause := errors.New("division by zero")
		f := Err(cause)
		if f.Key != "error" || f.Value != cause {
			t.Errorf("Err() = {%q, %v}, want {\"error\", %v}", f.Key, f.Value, cause)
		}
	})

	t.Run("Err accepts nil", func(t *testing.T) {
		f := Err(nil)
		if f.Key != "error" || f.Value != nil {
			t.Errorf("Err(nil) = {%q, %v}, want {\"error\", nil}", f.Key, f.Value)
		}
	})
}

// TestNewLogger verifies the component tag and message reach the sink.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "evaluator")
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}

	logger.Info("expression evaluated")
	output := buf.String()
	for _, want := range []string{"evaluator", "expression evaluated"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

func TestNewZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf))
	if adapter == nil {
		t.Fatal("NewZerologAdapter returned nil")
	}

	adapter.Info("server listening")
	if !strings.Contains(buf.String(), "server listening") {
		t.Errorf("wrapped logger not writing, output: %s", buf.String())
	}
}

func TestNewDefaultLogger(t *testing.T) {
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

// TestZerologAdapter_Levels exercises Debug, Info and Error with the
// field combinations the CLI emits.
func TestZerologAdapter_Levels(t *testing.T) {
	tests := []struct {
		name     string
		log      func(l *ZerologAdapter)
		contains []string
	}{
		{
			name:     "info without fields",
			log:      func(l *ZerologAdapter) { l.Info("starting repl") },
			contains: []string{"starting repl", "info"},
		},
		{
			name: "info with operation fields",
			log: func(l *ZerologAdapter) {
				l.Info("operation complete", String("op", "gcdext"), Int("operands", 2))
			},
			contains: []string{"operation complete", "gcdext", "2"},
		},
		{
			name: "debug with result size",
			log: func(l *ZerologAdapter) {
				l.Debug("result formatted", Uint64("bits", 4096))
			},
			contains: []string{"result formatted", "debug", "4096"},
		},
		{
			name: "error with cause",
			log: func(l *ZerologAdapter) {
				l.Error("evaluation failed", errors.New("division by zero"))
			},
			contains: []string{"evaluation failed", "division by zero", "error"},
		},
		{
			name: "error with cause and fields",
			log: func(l *ZerologAdapter) {
				l.Error("batch line rejected", errors.New("invalid value"),
					String("expr", "add -0x_ 1"), Int("line", 7))
			},
			contains: []string{"batch line rejected", "invalid value", "add -0x_ 1", "7"},
		},
		{
			name:     "error with nil cause",
			log:      func(l *ZerologAdapter) { l.Error("shutdown incomplete", nil) },
			contains: []string{"shutdown incomplete", "error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))
			tt.log(logger)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestZerologAdapter_PrintfPrintln covers the standard-library style
// entry points used by the spinner and the repl prompt.
func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "repl")

	logger.Printf("evaluated %d expressions", 12)
	if !strings.Contains(buf.String(), "evaluated 12 expressions") {
		t.Errorf("Printf should format, got: %s", buf.String())
	}

	buf.Reset()
	logger.Println("bye")
	if !strings.Contains(buf.String(), "bye") {
		t.Errorf("Println should log its arguments, got: %s", buf.String())
	}
}

// TestZerologAdapter_FieldTypes drives every branch of the field type
// switch, including the fallthrough for arbitrary values.
func TestZerologAdapter_FieldTypes(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string", Field{Key: "base", Value: "hex"}, "hex"},
		{"int", Field{Key: "workers", Value: 4}, "4"},
		{"int64", Field{Key: "quotient", Value: int64(-9223372036854775808)}, "-9223372036854775808"},
		{"uint64", Field{Key: "magnitude", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64", Field{Key: "elapsed", Value: 0.125}, "0.125"},
		{"bool", Field{Key: "quiet", Value: true}, "true"},
		{"error", Field{Key: "cause", Value: errors.New("range exceeded")}, "range exceeded"},
		{"fallback", Field{Key: "layout", Value: struct{ Bits int }{Bits: 64}}, "64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "evaluator")
			logger.Info("field check", tt.field)

			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("%s field missing from output: %s", tt.name, buf.String())
			}
		})
	}
}

// TestStdLoggerAdapter verifies the plain-text fallback used when JSON
// output is unwanted: level prefixes, field formatting, error causes.
func TestStdLoggerAdapter(t *testing.T) {
	tests := []struct {
		name     string
		log      func(l *StdLoggerAdapter)
		contains []string
	}{
		{
			name:     "debug prefix",
			log:      func(l *StdLoggerAdapter) { l.Debug("tracing allocation", Int("words", 8)) },
			contains: []string{"[DEBUG]", "tracing allocation", "words=8"},
		},
		{
			name:     "info prefix with field",
			log:      func(l *StdLoggerAdapter) { l.Info("batch finished", Int("lines", 30)) },
			contains: []string{"[INFO]", "batch finished", "lines=30"},
		},
		{
			name: "error prefix with cause",
			log: func(l *StdLoggerAdapter) {
				l.Error("import failed", errors.New("ragged data"), String("layout", "native"))
			},
			contains: []string{"[ERROR]", "import failed", "ragged data", "layout=native"},
		},
		{
			name:     "printf passthrough",
			log:      func(l *StdLoggerAdapter) { l.Printf("worker %d done", 3) },
			contains: []string{"worker 3 done"},
		},
		{
			name:     "println passthrough",
			log:      func(l *StdLoggerAdapter) { l.Println("goodbye") },
			contains: []string{"goodbye"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			adapter := NewStdLoggerAdapter(log.New(&buf, "", 0))
			tt.log(adapter)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestLoggerInterface pins both adapters to the Logger interface.
func TestLoggerInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Logger = NewLogger(&buf, "evaluator")
	var _ Logger = NewStdLoggerAdapter(log.New(&buf, "", 0))
}
