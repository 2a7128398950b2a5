// Package cli provides expression evaluation and the interactive session
// for the arbitrary-precision calculator.
package cli

import (
	"sort"
	"strings"
	"time"

	"github.com/agbru/zzint"
	apperrors "github.com/agbru/zzint/internal/errors"
)

// Value is a single labeled result of an evaluation. Operations like divmod
// or gcdext produce several.
type Value struct {
	// Label names the value (e.g. "q", "r", "g").
	Label string
	// Num is the computed integer.
	Num *zzint.Int
}

// Result holds the outcome of evaluating one expression.
type Result struct {
	// Values are the computed integers in presentation order.
	Values []Value
	// Duration is the evaluation time.
	Duration time.Duration
}

// Clear releases the digit storage of all result values.
func (r *Result) Clear() {
	for _, v := range r.Values {
		v.Num.Clear()
	}
	r.Values = nil
}

// Command describes a single calculator operation.
type Command struct {
	// Name is the operation keyword.
	Name string
	// Arity is the number of integer operands.
	Arity int
	// Usage is the one-line usage string.
	Usage string
	// Help is a short description for the help listing.
	Help string

	run func(ops []*zzint.Int) ([]Value, error)
}

// Evaluator parses and executes calculator expressions of the form
// "<command> <operand>...". Operands accept the 0b/0o/0x prefixes and
// underscore digit separators.
type Evaluator struct {
	commands map[string]Command
}

// NewEvaluator creates an evaluator with the full command set.
func NewEvaluator() *Evaluator {
	e := &Evaluator{commands: make(map[string]Command)}
	e.registerAll()
	return e
}

// Commands returns all registered commands sorted by name.
func (e *Evaluator) Commands() []Command {
	cmds := make([]Command, 0, len(e.commands))
	for _, c := range e.commands {
		cmds = append(cmds, c)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// CommandNames returns all command names sorted alphabetically.
func (e *Evaluator) CommandNames() []string {
	names := make([]string, 0, len(e.commands))
	for name := range e.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate executes a single expression and returns its result. The caller
// owns the result and should release it with Clear.
func (e *Evaluator) Evaluate(expr string) (*Result, error) {
	fields := strings.Fields(expr)
	if len(fields) == 0 {
		return nil, apperrors.NewConfigError("empty expression")
	}

	cmd, ok := e.commands[strings.ToLower(fields[0])]
	if !ok {
		return nil, apperrors.NewConfigError("unknown command: %s", fields[0])
	}
	args := fields[1:]
	if len(args) != cmd.Arity {
		return nil, apperrors.NewConfigError("usage: %s", cmd.Usage)
	}

	ops := make([]*zzint.Int, len(args))
	defer func() {
		for _, op := range ops {
			if op != nil {
				op.Clear()
			}
		}
	}()
	for i, arg := range args {
		op := new(zzint.Int)
		if err := op.SetString(arg, 0); err != nil {
			return nil, apperrors.EvalError{Expr: expr, Cause: err}
		}
		ops[i] = op
	}

	start := time.Now()
	values, err := cmd.run(ops)
	if err != nil {
		for _, v := range values {
			v.Num.Clear()
		}
		return nil, apperrors.EvalError{Expr: expr, Cause: err}
	}
	return &Result{Values: values, Duration: time.Since(start)}, nil
}

func (e *Evaluator) register(c Command) {
	e.commands[c.Name] = c
}

// single wraps an operation producing one result value.
func single(label string, op func(z *zzint.Int, ops []*zzint.Int) error) func([]*zzint.Int) ([]Value, error) {
	return func(ops []*zzint.Int) ([]Value, error) {
		z := new(zzint.Int)
		if err := op(z, ops); err != nil {
			z.Clear()
			return nil, err
		}
		return []Value{{Label: label, Num: z}}, nil
	}
}

// smallUint extracts an operand that must fit a machine word, as used for
// shift counts and exponents.
func smallUint(x *zzint.Int) (uint64, error) {
	return x.Uint64()
}

func (e *Evaluator) registerAll() {
	e.register(Command{
		Name: "add", Arity: 2, Usage: "add <u> <v>", Help: "sum u + v",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			return z.Add(ops[0], ops[1])
		}),
	})
	e.register(Command{
		Name: "sub", Arity: 2, Usage: "sub <u> <v>", Help: "difference u - v",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			return z.Sub(ops[0], ops[1])
		}),
	})
	e.register(Command{
		Name: "mul", Arity: 2, Usage: "mul <u> <v>", Help: "product u * v",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			return z.Mul(ops[0], ops[1])
		}),
	})
	e.register(Command{
		Name: "neg", Arity: 1, Usage: "neg <u>", Help: "negation -u",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			return z.Neg(ops[0])
		}),
	})
	e.register(Command{
		Name: "abs", Arity: 1, Usage: "abs <u>", Help: "absolute value |u|",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			return z.Abs(ops[0])
		}),
	})
	e.register(Command{
		Name: "divmod", Arity: 2, Usage: "divmod <u> <v>", Help: "floored quotient and remainder",
		run: pairOp(func(q, r *zzint.Int, ops []*zzint.Int) error {
			return zzint.DivMod(q, r, ops[0], ops[1])
		}, "q", "r"),
	})
	e.register(Command{
		Name: "quorem", Arity: 2, Usage: "quorem <u> <v>", Help: "truncated quotient and remainder",
		run: pairOp(func(q, r *zzint.Int, ops []*zzint.Int) error {
			return zzint.QuoRem(q, r, ops[0], ops[1])
		}, "q", "r"),
	})
	e.register(Command{
		Name: "pow", Arity: 2, Usage: "pow <b> <e>", Help: "power b^e (e >= 0)",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			exp, err := smallUint(ops[1])
			if err != nil {
				return err
			}
			return z.Pow(ops[0], exp)
		}),
	})
	e.register(Command{
		Name: "powm", Arity: 3, Usage: "powm <b> <e> <m>", Help: "modular power b^e mod m",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			return z.PowMod(ops[0], ops[1], ops[2])
		}),
	})
	e.register(Command{
		Name: "gcd", Arity: 2, Usage: "gcd <u> <v>", Help: "greatest common divisor",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			return z.GCD(ops[0], ops[1])
		}),
	})
	e.register(Command{
		Name: "gcdext", Arity: 2, Usage: "gcdext <u> <v>", Help: "extended gcd: g, s, t with g = s*u + t*v",
		run: func(ops []*zzint.Int) ([]Value, error) {
			g, s, t := new(zzint.Int), new(zzint.Int), new(zzint.Int)
			if err := zzint.GCDExt(g, s, t, ops[0], ops[1]); err != nil {
				g.Clear()
				s.Clear()
				t.Clear()
				return nil, err
			}
			return []Value{{"g", g}, {"s", s}, {"t", t}}, nil
		},
	})
	e.register(Command{
		Name: "lcm", Arity: 2, Usage: "lcm <u> <v>", Help: "least common multiple",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			return z.LCM(ops[0], ops[1])
		}),
	})
	e.register(Command{
		Name: "sqrt", Arity: 1, Usage: "sqrt <u>", Help: "integer square root and remainder",
		run: pairOp(func(s, r *zzint.Int, ops []*zzint.Int) error {
			return zzint.SqrtRem(s, r, ops[0])
		}, "s", "r"),
	})
	e.register(Command{
		Name: "fac", Arity: 1, Usage: "fac <n>", Help: "factorial n!",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			n, err := smallUint(ops[0])
			if err != nil {
				return err
			}
			return z.Factorial(n)
		}),
	})
	e.register(Command{
		Name: "bin", Arity: 2, Usage: "bin <n> <k>", Help: "binomial coefficient C(n, k)",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			n, err := smallUint(ops[0])
			if err != nil {
				return err
			}
			k, err := smallUint(ops[1])
			if err != nil {
				return err
			}
			return z.Binomial(n, k)
		}),
	})
	e.register(Command{
		Name: "and", Arity: 2, Usage: "and <u> <v>", Help: "bitwise and (two's complement)",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			return z.And(ops[0], ops[1])
		}),
	})
	e.register(Command{
		Name: "or", Arity: 2, Usage: "or <u> <v>", Help: "bitwise or (two's complement)",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			return z.Or(ops[0], ops[1])
		}),
	})
	e.register(Command{
		Name: "xor", Arity: 2, Usage: "xor <u> <v>", Help: "bitwise xor (two's complement)",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			return z.Xor(ops[0], ops[1])
		}),
	})
	e.register(Command{
		Name: "not", Arity: 1, Usage: "not <u>", Help: "bitwise complement -u-1",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			return z.Not(ops[0])
		}),
	})
	e.register(Command{
		Name: "shl", Arity: 2, Usage: "shl <u> <k>", Help: "left shift u * 2^k",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			k, err := smallUint(ops[1])
			if err != nil {
				return err
			}
			return z.Lsh(ops[0], uint(k))
		}),
	})
	e.register(Command{
		Name: "shr", Arity: 2, Usage: "shr <u> <k>", Help: "floored right shift u / 2^k",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			k, err := smallUint(ops[1])
			if err != nil {
				return err
			}
			return z.Rsh(ops[0], uint(k))
		}),
	})
	e.register(Command{
		Name: "cmp", Arity: 2, Usage: "cmp <u> <v>", Help: "comparison: -1, 0 or 1",
		run: single("", func(z *zzint.Int, ops []*zzint.Int) error {
			return z.SetInt64(int64(ops[0].Cmp(ops[1])))
		}),
	})
	e.register(Command{
		Name: "bits", Arity: 1, Usage: "bits <u>", Help: "bit length, population count and trailing zeros",
		run: func(ops []*zzint.Int) ([]Value, error) {
			bl, pc, tz := new(zzint.Int), new(zzint.Int), new(zzint.Int)
			err := bl.SetInt64(ops[0].BitLen())
			if err == nil {
				err = pc.SetInt64(ops[0].PopCount())
			}
			if err == nil {
				err = tz.SetInt64(ops[0].TrailingZeros())
			}
			if err != nil {
				bl.Clear()
				pc.Clear()
				tz.Clear()
				return nil, err
			}
			return []Value{{"len", bl}, {"pop", pc}, {"tz", tz}}, nil
		},
	})
}

// pairOp wraps an operation producing two labeled result values.
func pairOp(op func(a, b *zzint.Int, ops []*zzint.Int) error, labelA, labelB string) func([]*zzint.Int) ([]Value, error) {
	return func(ops []*zzint.Int) ([]Value, error) {
		a, b := new(zzint.Int), new(zzint.Int)
		if err := op(a, b, ops); err != nil {
			a.Clear()
			b.Clear()
			return nil, err
		}
		return []Value{{Label: labelA, Num: a}, {Label: labelB, Num: b}}, nil
	}
}
