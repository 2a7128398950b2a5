// Package kernel is the fixed-precision multi-digit layer under the public
// integer type. Word-vector primitives live here; the multi-step algorithms
// (multiplication, division with remainder, gcd, modular exponentiation,
// square root, factorials) delegate to math/big, which plays the role of
// the trusted low-level numeric library. Scratch and result buffers for the
// delegated algorithms come from a memguard.Guard, so an allocation failure
// unwinds to the caller's checkpoint instead of threading error returns
// through the call chain.
//
// All vectors are little-endian digit arrays (least significant word
// first). The package assumes 64-bit words, like the platform assertions of
// comparable C kernels.
package kernel

import "math/bits"

// Cmp compares two equally long digit vectors, most significant word first.
func Cmp(x, y []uint64) int {
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

// Add sets z = x + y and returns the carry word. len(z) == len(x) >=
// len(y); y may be empty. z may alias x or y.
func Add(z, x, y []uint64) uint64 {
	var c uint64
	i := 0
	for ; i < len(y); i++ {
		z[i], c = bits.Add64(x[i], y[i], c)
	}
	for ; i < len(x); i++ {
		z[i], c = bits.Add64(x[i], 0, c)
	}
	return c
}

// Sub sets z = x - y and returns the borrow word, which is zero whenever
// the magnitude of x is at least that of y. len(z) == len(x) >= len(y).
func Sub(z, x, y []uint64) uint64 {
	var b uint64
	i := 0
	for ; i < len(y); i++ {
		z[i], b = bits.Sub64(x[i], y[i], b)
	}
	for ; i < len(x); i++ {
		z[i], b = bits.Sub64(x[i], 0, b)
	}
	return b
}

// AddW sets z = x + y for a single word y and returns the carry.
func AddW(z, x []uint64, y uint64) uint64 {
	c := y
	for i := range x {
		s := x[i] + c
		if s < x[i] {
			c = 1
		} else {
			c = 0
		}
		z[i] = s
	}
	return c
}

// SubW sets z = x - y for a single word y and returns the borrow.
func SubW(z, x []uint64, y uint64) uint64 {
	b := y
	for i := range x {
		d := x[i] - b
		if d > x[i] {
			b = 1
		} else {
			b = 0
		}
		z[i] = d
	}
	return b
}

// MulW sets z = x * y for a single word y and returns the high word of the
// product. len(z) == len(x); z may alias x.
func MulW(z, x []uint64, y uint64) uint64 {
	var c uint64
	for i := range x {
		hi, lo := bits.Mul64(x[i], y)
		lo, cc := bits.Add64(lo, c, 0)
		z[i] = lo
		c = hi + cc
	}
	return c
}

// MulAddW sets z = x*m + a for single words m and a and returns the carry.
func MulAddW(z, x []uint64, m, a uint64) uint64 {
	c := a
	for i := range x {
		hi, lo := bits.Mul64(x[i], m)
		lo, cc := bits.Add64(lo, c, 0)
		z[i] = lo
		c = hi + cc
	}
	return c
}

// DivRemW sets q = u / d for a single nonzero word d and returns the
// remainder. len(q) == len(u); q may alias u.
func DivRemW(q, u []uint64, d uint64) uint64 {
	var r uint64
	for i := len(u) - 1; i >= 0; i-- {
		q[i], r = bits.Div64(r, u[i], d)
	}
	return r
}

// ModW returns u mod d for a single nonzero word d without writing a
// quotient.
func ModW(u []uint64, d uint64) uint64 {
	var r uint64
	for i := len(u) - 1; i >= 0; i-- {
		_, r = bits.Div64(r, u[i], d)
	}
	return r
}

// Shl sets z = x << s for s in 1..63 and returns the out-shifted high
// bits. len(z) == len(x). It walks most significant word first, so z may
// overlap x as long as &z[0] is at or above &x[0].
func Shl(z, x []uint64, s uint) uint64 {
	n := len(x)
	out := x[n-1] >> (64 - s)
	for i := n - 1; i > 0; i-- {
		z[i] = x[i]<<s | x[i-1]>>(64-s)
	}
	z[0] = x[0] << s
	return out
}

// Shr sets z = x >> s for s in 1..63 and returns the out-shifted low bits
// (nonzero iff any set bit was discarded). len(z) == len(x). It walks least
// significant word first, so z may overlap x as long as &z[0] is at or
// below &x[0].
func Shr(z, x []uint64, s uint) uint64 {
	n := len(x)
	out := x[0] << (64 - s)
	for i := 0; i < n-1; i++ {
		z[i] = x[i]>>s | x[i+1]<<(64-s)
	}
	z[n-1] = x[n-1] >> s
	return out
}

// CopyUp copies x into z front to back (safe when z is at or below x).
func CopyUp(z, x []uint64) {
	for i := 0; i < len(x); i++ {
		z[i] = x[i]
	}
}

// CopyDown copies x into z back to front (safe when z is at or above x).
func CopyDown(z, x []uint64) {
	for i := len(x) - 1; i >= 0; i-- {
		z[i] = x[i]
	}
}

// And sets z = x & y over equally long vectors.
func And(z, x, y []uint64) {
	for i := range x {
		z[i] = x[i] & y[i]
	}
}

// AndNot sets z = x &^ y over equally long vectors.
func AndNot(z, x, y []uint64) {
	for i := range x {
		z[i] = x[i] &^ y[i]
	}
}

// Or sets z = x | y over equally long vectors.
func Or(z, x, y []uint64) {
	for i := range x {
		z[i] = x[i] | y[i]
	}
}

// Xor sets z = x ^ y over equally long vectors.
func Xor(z, x, y []uint64) {
	for i := range x {
		z[i] = x[i] ^ y[i]
	}
}
