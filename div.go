package zzint

import (
	"math"

	"github.com/agbru/zzint/internal/kernel"
	"github.com/agbru/zzint/internal/memguard"
)

// QuoRem computes the truncating division u / v: q is rounded toward zero
// and the remainder carries the sign of u, with u == q*v + r. q and r may
// each be nil to skip that result (both nil validates the divisor only);
// when non-nil they must be distinct values. Division by zero reports
// ErrInvalidValue.
func QuoRem(q, r, u, v *Int) error { return divmod(q, r, u, v, false) }

// DivMod computes the floored division u / v: q is rounded toward negative
// infinity and the remainder carries the sign of v, with u == q*v + r.
// The nil-output and aliasing rules of QuoRem apply.
func DivMod(q, r, u, v *Int) error { return divmod(q, r, u, v, true) }

func divmod(q, r, u, v *Int, floored bool) error {
	if len(v.digits) == 0 {
		return ErrInvalidValue
	}
	if q == nil && r == nil {
		return nil
	}
	uneg, vneg := u.neg, v.neg
	ud, vd := u.digits, v.digits
	var commitErr error
	err := guarded(func(g *memguard.Guard) {
		qm, rm := kernel.QuoRem(g, ud, vd)
		qneg := uneg != vneg
		rneg := uneg
		if floored && qneg && len(rm) != 0 {
			// round toward negative infinity: q -= 1, r = |v| - |r|
			qm2 := g.Alloc(len(qm) + 1)
			qm2[len(qm)] = kernel.AddW(qm2[:len(qm)], qm, 1)
			qm = qm2
			rm2 := g.Alloc(len(vd))
			kernel.Sub(rm2, vd, rm)
			rm = rm2
			rneg = vneg
		}
		if q != nil {
			if commitErr = q.setMag(qm, qneg); commitErr != nil {
				return
			}
		}
		if r != nil {
			commitErr = r.setMag(rm, rneg)
		}
	})
	if err != nil {
		return err
	}
	return commitErr
}

// DivModInt64 computes the floored division of u by a machine integer,
// like DivMod with a one-digit divisor. q and r may each be nil.
func DivModInt64(q, r, u *Int, v int64) error {
	if v == 0 {
		return ErrInvalidValue
	}
	uv, vneg := uint64(v), v < 0
	if vneg {
		uv = -uv
	}
	if len(u.digits) == 0 {
		if q != nil {
			q.setZero()
		}
		if r != nil {
			r.setZero()
		}
		return nil
	}
	// the remainder word is taken before the quotient can overwrite a
	// shared buffer
	ud := u.digits
	n := len(ud)
	sameSigns := u.neg == vneg
	rl := kernel.ModW(ud, uv)
	if q != nil {
		if err := q.resize(n); err != nil {
			return err
		}
		kernel.DivRemW(q.digits, ud, uv)
		if rl != 0 && !sameSigns {
			// uv >= 2 here, so |q| < 2^(64n-1) and the increment
			// cannot carry out
			kernel.AddW(q.digits, q.digits, 1)
		}
		q.neg = !sameSigns
		q.normalize()
	}
	if r != nil {
		if rl == 0 {
			r.setZero()
			return nil
		}
		if !sameSigns {
			rl = uv - rl
		}
		if err := r.resize(1); err != nil {
			return err
		}
		r.digits[0] = rl
		r.neg = vneg
	}
	return nil
}

// Int64DivMod computes the floored division of a machine integer by u,
// like DivMod with a one-digit dividend. q and r may each be nil.
func Int64DivMod(q, r *Int, v int64, u *Int) error {
	if len(u.digits) == 0 {
		return ErrInvalidValue
	}
	su, fits := u.asInt64()
	if !fits {
		// |u| > |v|: the quotient is 0 or -1 by signs alone
		sameSigns := (v < 0) == u.neg || v == 0
		if q != nil {
			var qv int64
			if !sameSigns {
				qv = -1
			}
			if err := q.SetInt64(qv); err != nil {
				return err
			}
		}
		if r != nil {
			if sameSigns {
				return r.SetInt64(v)
			}
			// q == -1, so r = v + u
			return r.AddInt64(u, v)
		}
		return nil
	}
	if su == -1 && v == math.MinInt64 {
		// the only quotient that escapes int64
		if q != nil {
			if err := q.SetUint64(1 << 63); err != nil {
				return err
			}
		}
		if r != nil {
			r.setZero()
		}
		return nil
	}
	fq := floorDivInt64(v, su)
	if q != nil {
		if err := q.SetInt64(fq); err != nil {
			return err
		}
	}
	if r != nil {
		return r.SetInt64(v - fq*su)
	}
	return nil
}

// asInt64 is Int64 without the error plumbing, for fast paths.
func (z *Int) asInt64() (int64, bool) {
	v, err := z.Int64()
	return v, err == nil
}

func floorDivInt64(u, v int64) int64 {
	fq := u / v
	if rem := u % v; rem != 0 && (rem < 0) != (v < 0) {
		fq--
	}
	return fq
}
