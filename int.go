// Package zzint implements arbitrary-precision signed integers with
// explicit error reporting and a recoverable out-of-memory discipline.
//
// An Int is a sign-magnitude number: a boolean sign and a little-endian
// array of 64-bit digits with no trailing zero words. The zero value is a
// canonical zero and ready to use. Values are not safe for concurrent use;
// distinct values may be used from distinct goroutines freely.
//
// Every operation that can allocate returns an error. On ErrOutOfMemory
// the outputs are left with their previous contents and no kernel
// temporaries remain live (see TrackedTemps). Outputs may alias inputs in
// any combination unless a function documents otherwise.
package zzint

import (
	"math"

	"github.com/agbru/zzint/internal/memguard"
)

const digitBits = 64

// MaxDigits bounds the digit count of a single value, keeping bit counts
// and size products inside int64.
const MaxDigits = math.MaxInt64 / digitBits

// An Int is an arbitrary-precision signed integer. The zero value is 0.
type Int struct {
	neg    bool
	digits []uint64
}

// Clear releases the value's storage and resets it to zero. Clearing an
// already clear value is a no-op. The value stays usable afterwards.
func (z *Int) Clear() {
	if z.digits != nil {
		memguard.Free(z.digits[:cap(z.digits)])
		z.digits = nil
	}
	z.neg = false
}

// resize adjusts the digit count. Shrinking keeps the existing storage;
// growing past the capacity moves to a fresh buffer, preserving the old
// digits. On failure the value is untouched. Words exposed by growing are
// zeroed.
func (z *Int) resize(n int) error {
	if n > MaxDigits {
		return ErrRangeExceeded
	}
	if n <= cap(z.digits) {
		old := len(z.digits)
		z.digits = z.digits[:n]
		for i := old; i < n; i++ {
			z.digits[i] = 0
		}
		return nil
	}
	buf := memguard.Realloc(z.digits, n)
	if buf == nil {
		return ErrOutOfMemory
	}
	z.digits = buf
	return nil
}

// normalize strips trailing zero words and clears the sign of zero.
func (z *Int) normalize() {
	n := len(z.digits)
	for n > 0 && z.digits[n-1] == 0 {
		n--
	}
	z.digits = z.digits[:n]
	if n == 0 {
		z.neg = false
	}
}

func (z *Int) setZero() {
	z.digits = z.digits[:0]
	z.neg = false
}

// setMag replaces the value with a copy of the given magnitude and sign,
// normalizing afterwards. mag may be a kernel temporary.
func (z *Int) setMag(mag []uint64, neg bool) error {
	if err := z.resize(len(mag)); err != nil {
		return err
	}
	copy(z.digits, mag)
	z.neg = neg
	z.normalize()
	return nil
}

// guarded runs fn under an allocation checkpoint, translating an escape
// into ErrOutOfMemory.
func guarded(fn func(g *memguard.Guard)) error {
	var g memguard.Guard
	if !g.Run(func() { fn(&g) }) {
		return ErrOutOfMemory
	}
	return nil
}

// Set sets z to u.
func (z *Int) Set(u *Int) error {
	if z == u {
		return nil
	}
	if err := z.resize(len(u.digits)); err != nil {
		return err
	}
	copy(z.digits, u.digits)
	z.neg = u.neg
	return nil
}

// Neg sets z to -u.
func (z *Int) Neg(u *Int) error {
	if err := z.Set(u); err != nil {
		return err
	}
	if len(z.digits) != 0 {
		z.neg = !z.neg
	}
	return nil
}

// Abs sets z to |u|.
func (z *Int) Abs(u *Int) error {
	if err := z.Set(u); err != nil {
		return err
	}
	z.neg = false
	return nil
}
