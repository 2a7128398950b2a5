package zzint

import "math"

const (
	mantBits    = 53   // float64 mantissa width
	maxFloatExp = 1024 // smallest power of two above the float64 range
	// a value longer than this cannot be finite as a float64
	maxFloatDigits = maxFloatExp/digitBits + 1
)

// SetFloat64 sets z to f truncated toward zero. NaN reports
// ErrInvalidValue; infinities report ErrRangeExceeded.
func (z *Int) SetFloat64(f float64) error {
	if math.IsNaN(f) {
		return ErrInvalidValue
	}
	if math.IsInf(f, 0) {
		return ErrRangeExceeded
	}
	neg := math.Signbit(f)
	f = math.Abs(f)
	if f < 1 {
		z.setZero()
		return nil
	}
	frac, exp := math.Frexp(f)
	mant := uint64(frac * (1 << mantBits)) // exact: frac has 53 significant bits
	sh := exp - mantBits
	if sh <= 0 {
		mant >>= uint(-sh)
		if err := z.SetUint64(mant); err != nil {
			return err
		}
		z.neg = neg && mant != 0
		return nil
	}
	whole := sh / digitBits
	sb := uint(sh % digitBits)
	lo, hi := mant<<sb, uint64(0)
	if sb != 0 {
		hi = mant >> (digitBits - sb)
	}
	n := whole + 1
	if hi != 0 {
		n++
	}
	if err := z.resize(n); err != nil {
		return err
	}
	for i := 0; i < whole; i++ {
		z.digits[i] = 0
	}
	z.digits[whole] = lo
	if hi != 0 {
		z.digits[whole+1] = hi
	}
	z.neg = neg
	z.normalize()
	return nil
}

// Float64 returns the value rounded to the nearest float64, ties to even.
// Values beyond the float64 range return the signed infinity together
// with ErrRangeExceeded.
func (z *Int) Float64() (float64, error) {
	n := len(z.digits)
	if n == 0 {
		return 0, nil
	}
	if n == 1 {
		f := float64(z.digits[0]) // conversion rounds to nearest even
		if z.neg {
			f = -f
		}
		return f, nil
	}
	f := math.Inf(1)
	if z.neg {
		f = math.Inf(-1)
	}
	if n > maxFloatDigits {
		return f, ErrRangeExceeded
	}
	bl := z.BitLen()
	if bl > maxFloatExp {
		return f, ErrRangeExceeded
	}
	sh := uint(bl - mantBits) // > 0: n >= 2 means bl > 64
	mant := getBits(z.digits, sh, mantBits)
	if getBits(z.digits, sh-1, 1) != 0 && (mant&1 != 0 || anySetBelow(z.digits, sh-1)) {
		mant++
	}
	f = math.Ldexp(float64(mant), int(sh))
	if z.neg {
		f = -f
	}
	if math.IsInf(f, 0) {
		return f, ErrRangeExceeded
	}
	return f, nil
}

// getBits reads width <= 64 bits of a magnitude starting at bit off.
func getBits(d []uint64, off, width uint) uint64 {
	w := off / digitBits
	b := off % digitBits
	v := d[w] >> b
	if b+width > digitBits && int(w+1) < len(d) {
		v |= d[w+1] << (digitBits - b)
	}
	if width < digitBits {
		v &= 1<<width - 1
	}
	return v
}

// anySetBelow reports whether any bit strictly below position off is set.
func anySetBelow(d []uint64, off uint) bool {
	w := off / digitBits
	for i := uint(0); i < w; i++ {
		if d[i] != 0 {
			return true
		}
	}
	b := off % digitBits
	return b != 0 && d[w]&(1<<b-1) != 0
}
