package zzint

import (
	"github.com/agbru/zzint/internal/kernel"
	"github.com/agbru/zzint/internal/memguard"
)

// GCD sets z to the greatest common divisor of u and v. The result is
// non-negative; gcd(0, 0) is 0.
func (z *Int) GCD(u, v *Int) error {
	if len(u.digits) == 0 {
		return z.Abs(v)
	}
	if len(v.digits) == 0 {
		return z.Abs(u)
	}
	ud, vd := u.digits, v.digits
	var commitErr error
	err := guarded(func(g *memguard.Guard) {
		mag := kernel.GCD(g, ud, vd)
		commitErr = z.setMag(mag, false)
	})
	if err != nil {
		return err
	}
	return commitErr
}

// GCDExt computes the extended gcd: Bézout coefficients s, t with
// g = u*s + v*t and g = gcd(u, v) >= 0. Each of g, s, t may be nil to skip that
// result; non-nil outputs must be distinct values. For v == 0 the triple
// is (|u|, sign(u), 0), and symmetrically for u == 0.
func GCDExt(g, s, t, u, v *Int) error {
	if len(v.digits) == 0 {
		return gcdExtDegenerate(g, s, t, u)
	}
	if len(u.digits) == 0 {
		return gcdExtDegenerate(g, t, s, v)
	}
	uneg, vneg := u.neg, v.neg
	ud, vd := u.digits, v.digits
	var commitErr error
	err := guarded(func(gg *memguard.Guard) {
		gm, sm, sNeg, tm, tNeg := kernel.GCDExt(gg, ud, vd)
		if uneg {
			sNeg = !sNeg
		}
		if vneg {
			tNeg = !tNeg
		}
		if g != nil {
			if commitErr = g.setMag(gm, false); commitErr != nil {
				return
			}
		}
		if s != nil {
			if commitErr = s.setMag(sm, sNeg); commitErr != nil {
				return
			}
		}
		if t != nil {
			commitErr = t.setMag(tm, tNeg)
		}
	})
	if err != nil {
		return err
	}
	return commitErr
}

// gcdExtDegenerate handles a zero second operand: g = |u|, s = sign(u),
// t = 0.
func gcdExtDegenerate(g, s, t, u *Int) error {
	sv := int64(u.Sign())
	if g != nil {
		if err := g.Abs(u); err != nil {
			return err
		}
	}
	if s != nil {
		if err := s.SetInt64(sv); err != nil {
			return err
		}
	}
	if t != nil {
		t.setZero()
	}
	return nil
}

// LCM sets z to the least common multiple of u and v, non-negative;
// lcm with zero is 0.
func (z *Int) LCM(u, v *Int) error {
	if len(u.digits) == 0 || len(v.digits) == 0 {
		z.setZero()
		return nil
	}
	ud, vd := u.digits, v.digits
	var commitErr error
	err := guarded(func(g *memguard.Guard) {
		gm := kernel.GCD(g, ud, vd)
		qm, _ := kernel.QuoRem(g, ud, gm)
		mag := kernel.Mul(g, qm, vd)
		commitErr = z.setMag(mag, false)
	})
	if err != nil {
		return err
	}
	return commitErr
}
