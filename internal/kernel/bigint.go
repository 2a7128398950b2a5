package kernel

import (
	"math/big"

	"github.com/agbru/zzint/internal/memguard"
)

// The delegated algorithms exchange magnitudes with math/big through
// explicit word copies. Buffers handed back to callers are allocated from
// the operation's guard, so the checkpoint protocol sees every result
// buffer; math/big's own internal scratch lives on the Go heap and cannot
// fail, like alloca-backed scratch in a C kernel.

// toBig builds a big.Int with the given magnitude and sign.
func toBig(mag []uint64, neg bool) *big.Int {
	words := make([]big.Word, len(mag))
	for i, d := range mag {
		words[i] = big.Word(d)
	}
	z := new(big.Int).SetBits(words)
	if neg {
		z.Neg(z)
	}
	return z
}

// fromBig copies the magnitude of z into a guard-tracked buffer and reports
// whether z is negative.
func fromBig(g *memguard.Guard, z *big.Int) ([]uint64, bool) {
	words := z.Bits()
	if len(words) == 0 {
		return nil, false
	}
	mag := g.Alloc(len(words))
	for i, w := range words {
		mag[i] = uint64(w)
	}
	return mag, z.Sign() < 0
}

// Mul returns the product of two magnitudes.
func Mul(g *memguard.Guard, x, y []uint64) []uint64 {
	z := new(big.Int).Mul(toBig(x, false), toBig(y, false))
	mag, _ := fromBig(g, z)
	return mag
}

// Sqr returns the square of a magnitude. Both factors being the same
// storage lets the multiplier take its squaring path.
func Sqr(g *memguard.Guard, x []uint64) []uint64 {
	b := toBig(x, false)
	z := new(big.Int).Mul(b, b)
	mag, _ := fromBig(g, z)
	return mag
}

// QuoRem returns the truncating quotient and remainder of two magnitudes,
// v nonzero. Both results are non-negative.
func QuoRem(g *memguard.Guard, u, v []uint64) (q, r []uint64) {
	qb, rb := new(big.Int), new(big.Int)
	qb.QuoRem(toBig(u, false), toBig(v, false), rb)
	q, _ = fromBig(g, qb)
	r, _ = fromBig(g, rb)
	return q, r
}

// GCD returns the greatest common divisor of two nonzero magnitudes.
func GCD(g *memguard.Guard, x, y []uint64) []uint64 {
	z := new(big.Int).GCD(nil, nil, toBig(x, false), toBig(y, false))
	mag, _ := fromBig(g, z)
	return mag
}

// GCDExt returns the gcd of two nonzero magnitudes together with the
// Bézout coefficients of g = x*s + y*t, each as a magnitude and sign.
func GCDExt(g *memguard.Guard, x, y []uint64) (gg, s []uint64, sNeg bool, t []uint64, tNeg bool) {
	sb, tb := new(big.Int), new(big.Int)
	zb := new(big.Int).GCD(sb, tb, toBig(x, false), toBig(y, false))
	gg, _ = fromBig(g, zb)
	s, sNeg = fromBig(g, sb)
	t, tNeg = fromBig(g, tb)
	return gg, s, sNeg, t, tNeg
}

// ExpMod returns base**exp mod m for a non-negative exponent and nonzero
// modulus magnitude. The result is reduced into [0, m), also for negative
// bases.
func ExpMod(g *memguard.Guard, base []uint64, baseNeg bool, exp, m []uint64) []uint64 {
	z := new(big.Int).Exp(toBig(base, baseNeg), toBig(exp, false), toBig(m, false))
	mag, _ := fromBig(g, z)
	return mag
}

// Pow returns base**exp for a magnitude base and machine-word exponent.
func Pow(g *memguard.Guard, base []uint64, exp uint64) []uint64 {
	z := new(big.Int).Exp(toBig(base, false), new(big.Int).SetUint64(exp), nil)
	mag, _ := fromBig(g, z)
	return mag
}

// SqrtRem returns the integer square root of a magnitude and the remainder
// u - s*s.
func SqrtRem(g *memguard.Guard, u []uint64) (s, r []uint64) {
	ub := toBig(u, false)
	sb := new(big.Int).Sqrt(ub)
	rb := new(big.Int).Mul(sb, sb)
	rb.Sub(ub, rb)
	s, _ = fromBig(g, sb)
	r, _ = fromBig(g, rb)
	return s, r
}

// Factorial returns n! as a magnitude.
func Factorial(g *memguard.Guard, n uint64) []uint64 {
	z := new(big.Int).MulRange(1, int64(n))
	mag, _ := fromBig(g, z)
	return mag
}

// Binomial returns C(n, k) as a magnitude (empty when k > n).
func Binomial(g *memguard.Guard, n, k uint64) []uint64 {
	z := new(big.Int).Binomial(int64(n), int64(k))
	mag, _ := fromBig(g, z)
	return mag
}
