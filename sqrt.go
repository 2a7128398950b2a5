package zzint

import (
	"github.com/agbru/zzint/internal/kernel"
	"github.com/agbru/zzint/internal/memguard"
)

// SqrtRem computes the integer square root: s = floor(sqrt(u)) and
// r = u - s*s. Either output may be nil; non-nil outputs must be distinct
// values. Negative u reports ErrInvalidValue.
func SqrtRem(s, r, u *Int) error {
	if u.neg {
		return ErrInvalidValue
	}
	if len(u.digits) == 0 {
		if s != nil {
			s.setZero()
		}
		if r != nil {
			r.setZero()
		}
		return nil
	}
	ud := u.digits
	var commitErr error
	err := guarded(func(g *memguard.Guard) {
		sm, rm := kernel.SqrtRem(g, ud)
		if s != nil {
			if commitErr = s.setMag(sm, false); commitErr != nil {
				return
			}
		}
		if r != nil {
			commitErr = r.setMag(rm, false)
		}
	})
	if err != nil {
		return err
	}
	return commitErr
}
