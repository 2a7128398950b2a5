package zzint

import (
	"github.com/agbru/zzint/internal/kernel"
	"github.com/agbru/zzint/internal/memguard"
)

// Mul sets z = u * v. Products with more than MaxDigits digits report
// ErrRangeExceeded.
func (z *Int) Mul(u, v *Int) error {
	if len(u.digits) == 0 || len(v.digits) == 0 {
		z.setZero()
		return nil
	}
	neg := u.neg != v.neg
	if len(v.digits) == 1 {
		return z.mulW(u, v.digits[0], neg)
	}
	if len(u.digits) == 1 {
		return z.mulW(v, u.digits[0], neg)
	}
	if len(u.digits) > MaxDigits-len(v.digits) {
		return ErrRangeExceeded
	}
	ud, vd := u.digits, v.digits
	square := u == v
	var commitErr error
	err := guarded(func(g *memguard.Guard) {
		var mag []uint64
		if square {
			mag = kernel.Sqr(g, ud)
		} else {
			mag = kernel.Mul(g, ud, vd)
		}
		commitErr = z.setMag(mag, neg)
	})
	if err != nil {
		return err
	}
	return commitErr
}

// mulW multiplies a magnitude by a nonzero word; neg is the result sign.
func (z *Int) mulW(u *Int, w uint64, neg bool) error {
	ud := u.digits
	n := len(ud)
	if err := z.resize(n + 1); err != nil {
		return err
	}
	z.digits[n] = kernel.MulW(z.digits[:n], ud, w)
	z.neg = neg
	z.normalize()
	return nil
}

// MulUint64 sets z = u * v.
func (z *Int) MulUint64(u *Int, v uint64) error {
	if len(u.digits) == 0 || v == 0 {
		z.setZero()
		return nil
	}
	return z.mulW(u, v, u.neg)
}

// MulInt64 sets z = u * v.
func (z *Int) MulInt64(u *Int, v int64) error {
	if len(u.digits) == 0 || v == 0 {
		z.setZero()
		return nil
	}
	uv, vneg := uint64(v), v < 0
	if vneg {
		uv = -uv
	}
	return z.mulW(u, uv, u.neg != vneg)
}
