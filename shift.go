package zzint

import "github.com/agbru/zzint/internal/kernel"

// Lsh sets z = u * 2**s.
func (z *Int) Lsh(u *Int, s uint) error {
	n := len(u.digits)
	if n == 0 {
		z.setZero()
		return nil
	}
	whole := int(s / digitBits)
	sb := s % digitBits
	if int64(whole) >= MaxDigits-int64(n) {
		return ErrRangeExceeded
	}
	ud := u.digits
	neg := u.neg
	rn := n + whole
	extra := 0
	var hi uint64
	if sb != 0 {
		hi = ud[n-1] >> (digitBits - sb)
		if hi != 0 {
			extra = 1
		}
	}
	if err := z.resize(rn + extra); err != nil {
		return err
	}
	if extra == 1 {
		z.digits[rn] = hi
	}
	// move before zeroing the low words: when z aliases u the source
	// still occupies them
	if sb == 0 {
		kernel.CopyDown(z.digits[whole:rn], ud)
	} else {
		kernel.Shl(z.digits[whole:rn], ud, sb)
	}
	for i := 0; i < whole; i++ {
		z.digits[i] = 0
	}
	z.neg = neg
	z.normalize()
	return nil
}

// Rsh sets z = u / 2**s rounded toward negative infinity, matching an
// arithmetic shift of the two's-complement form.
func (z *Int) Rsh(u *Int, s uint) error {
	n := len(u.digits)
	if n == 0 {
		z.setZero()
		return nil
	}
	whole := int(s / digitBits)
	sb := s % digitBits
	neg := u.neg
	if whole >= n {
		if neg {
			return z.SetInt64(-1)
		}
		z.setZero()
		return nil
	}
	ud := u.digits
	sticky := false
	if neg {
		for i := 0; i < whole; i++ {
			if ud[i] != 0 {
				sticky = true
				break
			}
		}
	}
	if err := z.resize(n - whole); err != nil {
		return err
	}
	kernel.CopyUp(z.digits, ud[whole:])
	if sb != 0 {
		if kernel.Shr(z.digits, z.digits, sb) != 0 {
			sticky = true
		}
	}
	z.neg = neg
	z.normalize()
	if neg && sticky {
		// some ones were shifted out of a negative value: floor
		return z.SubUint64(z, 1)
	}
	return nil
}
