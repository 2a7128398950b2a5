package zzint

import (
	"github.com/agbru/zzint/internal/kernel"
	"github.com/agbru/zzint/internal/memguard"
)

// Pow sets z = u**e. Results that would exceed MaxDigits digits report
// ErrRangeExceeded before any large allocation happens.
func (z *Int) Pow(u *Int, e uint64) error {
	if e == 0 {
		return z.SetInt64(1)
	}
	n := len(u.digits)
	if n == 0 {
		z.setZero()
		return nil
	}
	neg := u.neg && e&1 == 1
	if n == 1 && u.digits[0] == 1 {
		if err := z.SetUint64(1); err != nil {
			return err
		}
		z.neg = neg
		return nil
	}
	if e > uint64(MaxDigits)/uint64(n) {
		return ErrRangeExceeded
	}
	ud := u.digits
	var commitErr error
	err := guarded(func(g *memguard.Guard) {
		mag := kernel.Pow(g, ud, e)
		commitErr = z.setMag(mag, neg)
	})
	if err != nil {
		return err
	}
	return commitErr
}

// PowMod sets z = u**e mod m. A zero modulus reports ErrInvalidValue. For
// a negative exponent u must be invertible modulo m, else ErrInvalidValue.
// The result takes the interval [0, m) for positive m and (m, 0] for
// negative m.
func (z *Int) PowMod(u, e, m *Int) error {
	if len(m.digits) == 0 {
		return ErrInvalidValue
	}
	base := u
	var inv Int
	if e.neg {
		defer inv.Clear()
		if err := modInverse(&inv, u, m); err != nil {
			return err
		}
		base = &inv
	}
	bd, bneg := base.digits, base.neg
	ed := e.digits
	md, mneg := m.digits, m.neg
	var commitErr error
	err := guarded(func(g *memguard.Guard) {
		mag := kernel.ExpMod(g, bd, bneg, ed, md)
		neg := false
		if mneg && len(mag) != 0 {
			// shift the representative from [0, |m|) into (m, 0]
			fm := g.Alloc(len(md))
			kernel.Sub(fm, md, mag)
			mag = fm
			neg = true
		}
		commitErr = z.setMag(mag, neg)
	})
	if err != nil {
		return err
	}
	return commitErr
}

// modInverse sets z to a solution of u*z == 1 (mod m), in any
// representative; ExpMod reduces it. Non-coprime u and m report
// ErrInvalidValue.
func modInverse(z *Int, u, m *Int) error {
	var g, s Int
	defer g.Clear()
	defer s.Clear()
	if err := GCDExt(&g, &s, nil, u, m); err != nil {
		return err
	}
	if g.CmpInt64(1) != 0 {
		return ErrInvalidValue
	}
	return z.Set(&s)
}
