package cli

import (
	"errors"
	"testing"

	"github.com/agbru/zzint"
	apperrors "github.com/agbru/zzint/internal/errors"
)

// evalStrings evaluates an expression and returns the decimal text of each
// result value, failing the test on error.
func evalStrings(t *testing.T, ev *Evaluator, expr string) []string {
	t.Helper()
	res, err := ev.Evaluate(expr)
	if err != nil {
		t.Fatalf("Evaluate(%q) failed: %v", expr, err)
	}
	defer res.Clear()

	out := make([]string, len(res.Values))
	for i, v := range res.Values {
		out[i] = v.Num.String()
	}
	return out
}

func TestEvaluatorOperations(t *testing.T) {
	ev := NewEvaluator()

	tests := []struct {
		expr string
		want []string
	}{
		{"add 1 2", []string{"3"}},
		{"add -5 2", []string{"-3"}},
		{"sub 2 5", []string{"-3"}},
		{"mul -6 7", []string{"-42"}},
		{"neg -3", []string{"3"}},
		{"abs -3", []string{"3"}},
		{"divmod 7 -2", []string{"-4", "-1"}},
		{"quorem 7 -2", []string{"-3", "1"}},
		{"pow 2 10", []string{"1024"}},
		{"powm 12 4 7", []string{"2"}},
		{"powm 4 -1 9", []string{"7"}},
		{"gcd -12 18", []string{"6"}},
		{"gcdext -2 6", []string{"2", "-1", "0"}},
		{"lcm 4 6", []string{"12"}},
		{"sqrt 10", []string{"3", "1"}},
		{"fac 5", []string{"120"}},
		{"bin 13 5", []string{"1287"}},
		{"and -2 3", []string{"2"}},
		{"or -2 1", []string{"-1"}},
		{"xor -2 3", []string{"-3"}},
		{"not 0", []string{"-1"}},
		{"shl 3 4", []string{"48"}},
		{"shr -5 1", []string{"-3"}},
		{"cmp 3 4", []string{"-1"}},
		{"bits 12", []string{"4", "2", "2"}},
		{"add 0x10 0b1", []string{"17"}},
		{"mul 1_000 1_000", []string{"1000000"}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got := evalStrings(t, ev, tt.expr)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d values, got %d (%v)", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("value %d: expected %s, got %s", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestEvaluatorQuoByPowerOfTwo(t *testing.T) {
	// -(2^128 - 2^64) shifted right by 64 gives -(2^64 - 1).
	ev := NewEvaluator()

	setup := evalStrings(t, ev, "sub 18446744073709551616 340282366920938463463374607431768211456")
	if setup[0] != "-340282366920938463444927863358058659840" {
		t.Fatalf("unexpected operand: %s", setup[0])
	}

	got := evalStrings(t, ev, "shr -340282366920938463444927863358058659840 64")
	if got[0] != "-18446744073709551615" {
		t.Errorf("expected -18446744073709551615, got %s", got[0])
	}
}

func TestEvaluatorErrors(t *testing.T) {
	ev := NewEvaluator()

	tests := []struct {
		name     string
		expr     string
		sentinel error
	}{
		{"division by zero", "divmod 1 0", zzint.ErrInvalidValue},
		{"zero modulus", "powm 2 3 0", zzint.ErrInvalidValue},
		{"non-invertible base", "powm 2 -1 8", zzint.ErrInvalidValue},
		{"negative square root", "sqrt -1", zzint.ErrInvalidValue},
		{"negative exponent operand", "pow 2 -1", zzint.ErrInvalidValue},
		{"malformed operand", "add 12x 1", zzint.ErrInvalidValue},
		{"empty hex digits", "add -0x_ 1", zzint.ErrInvalidValue},
		{"huge shift operand", "shl 1 0x1_0000_0000_0000_0000", zzint.ErrRangeExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ev.Evaluate(tt.expr)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("expected sentinel %v in chain, got %v", tt.sentinel, err)
			}
			var evalErr apperrors.EvalError
			if !errors.As(err, &evalErr) {
				t.Errorf("expected EvalError, got %T", err)
			}
		})
	}
}

func TestEvaluatorUsageErrors(t *testing.T) {
	ev := NewEvaluator()

	tests := []struct {
		name string
		expr string
	}{
		{"empty expression", "   "},
		{"unknown command", "frobnicate 1 2"},
		{"missing operand", "add 1"},
		{"extra operand", "neg 1 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ev.Evaluate(tt.expr); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestEvaluatorCommandListing(t *testing.T) {
	ev := NewEvaluator()

	cmds := ev.Commands()
	if len(cmds) == 0 {
		t.Fatal("expected a non-empty command list")
	}
	for i := 1; i < len(cmds); i++ {
		if cmds[i-1].Name >= cmds[i].Name {
			t.Fatalf("commands not sorted: %s before %s", cmds[i-1].Name, cmds[i].Name)
		}
	}

	names := ev.CommandNames()
	if len(names) != len(cmds) {
		t.Errorf("CommandNames length %d, Commands length %d", len(names), len(cmds))
	}
	for _, required := range []string{"add", "divmod", "powm", "gcdext", "fac", "bin"} {
		found := false
		for _, n := range names {
			if n == required {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("operation %q missing from listing", required)
		}
	}
}

func TestEvaluatorReleasesTemporaries(t *testing.T) {
	ev := NewEvaluator()

	res, err := ev.Evaluate("fac 100")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	res.Clear()

	if n := zzint.TrackedTemps(); n != 0 {
		t.Errorf("expected no tracked temporaries after Clear, got %d", n)
	}
}
