package zzint

import (
	"math"

	"github.com/agbru/zzint/internal/kernel"
	"github.com/agbru/zzint/internal/memguard"
)

// Factorial sets z = n!.
func (z *Int) Factorial(n uint64) error {
	if n > math.MaxInt64 {
		return ErrRangeExceeded
	}
	if n < 2 {
		return z.SetInt64(1)
	}
	var commitErr error
	err := guarded(func(g *memguard.Guard) {
		mag := kernel.Factorial(g, n)
		commitErr = z.setMag(mag, false)
	})
	if err != nil {
		return err
	}
	return commitErr
}

// Binomial sets z to the binomial coefficient C(n, k); k > n yields 0.
func (z *Int) Binomial(n, k uint64) error {
	if n > math.MaxInt64 || k > math.MaxInt64 {
		return ErrRangeExceeded
	}
	if k > n {
		z.setZero()
		return nil
	}
	var commitErr error
	err := guarded(func(g *memguard.Guard) {
		mag := kernel.Binomial(g, n, k)
		commitErr = z.setMag(mag, false)
	})
	if err != nil {
		return err
	}
	return commitErr
}
