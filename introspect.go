package zzint

import (
	"math/bits"

	"github.com/agbru/zzint/internal/kernel"
)

// Sign reports -1, 0, or 1 for negative, zero, or positive.
func (z *Int) Sign() int {
	if len(z.digits) == 0 {
		return 0
	}
	if z.neg {
		return -1
	}
	return 1
}

// IsZero reports whether the value is zero.
func (z *Int) IsZero() bool { return len(z.digits) == 0 }

// IsOdd reports whether the value is odd.
func (z *Int) IsOdd() bool {
	return len(z.digits) != 0 && z.digits[0]&1 == 1
}

// Cmp compares z and v, returning -1, 0, or 1.
func (z *Int) Cmp(v *Int) int {
	switch {
	case z.neg != v.neg:
		if z.neg {
			return -1
		}
		return 1
	case len(z.digits) != len(v.digits):
		c := 1
		if len(z.digits) < len(v.digits) {
			c = -1
		}
		if z.neg {
			c = -c
		}
		return c
	default:
		c := kernel.Cmp(z.digits, v.digits)
		if z.neg {
			c = -c
		}
		return c
	}
}

// CmpInt64 compares z against a machine integer without allocating.
func (z *Int) CmpInt64(v int64) int {
	zs := z.Sign()
	vs := 0
	if v > 0 {
		vs = 1
	} else if v < 0 {
		vs = -1
	}
	if zs != vs {
		if zs < vs {
			return -1
		}
		return 1
	}
	if zs == 0 {
		return 0
	}
	if len(z.digits) > 1 {
		return zs
	}
	uv := uint64(v)
	if v < 0 {
		uv = -uv
	}
	d := z.digits[0]
	c := 0
	if d > uv {
		c = 1
	} else if d < uv {
		c = -1
	}
	if z.neg {
		c = -c
	}
	return c
}

// BitLen reports the bit length of the magnitude; zero has length 0.
func (z *Int) BitLen() int64 {
	n := len(z.digits)
	if n == 0 {
		return 0
	}
	return int64(n-1)*digitBits + int64(bits.Len64(z.digits[n-1]))
}

// TrailingZeros reports the position of the lowest set bit of the
// magnitude, or 0 for zero.
func (z *Int) TrailingZeros() int64 {
	for i, d := range z.digits {
		if d != 0 {
			return int64(i)*digitBits + int64(bits.TrailingZeros64(d))
		}
	}
	return 0
}

// PopCount reports the number of set bits in the magnitude.
func (z *Int) PopCount() int64 {
	var n int64
	for _, d := range z.digits {
		n += int64(bits.OnesCount64(d))
	}
	return n
}
