package zzint

import (
	"github.com/agbru/zzint/internal/kernel"
	"github.com/agbru/zzint/internal/memguard"
)

// The bitwise operations act on the infinite two's-complement form of the
// operands. Negative inputs are carried through as ones-complement
// magnitudes: -x reads as ^(x-1), so each operation splits into sign cases
// over decremented magnitudes with one final increment where the result is
// negative.

// Not sets z = ^u, which is -u - 1.
func (z *Int) Not(u *Int) error {
	if u.neg {
		return z.addsubW(u, 1, true, true)
	}
	if err := z.addsubW(u, 1, false, false); err != nil {
		return err
	}
	z.neg = true
	return nil
}

// And sets z = u & v.
func (z *Int) And(u, v *Int) error {
	if len(u.digits) == 0 || len(v.digits) == 0 {
		z.setZero()
		return nil
	}
	ud, vd, uneg, vneg := u.digits, v.digits, u.neg, v.neg
	var commitErr error
	err := guarded(func(g *memguard.Guard) {
		var mag []uint64
		neg := false
		switch {
		case !uneg && !vneg:
			n := min(len(ud), len(vd))
			mag = g.Alloc(n)
			kernel.And(mag, ud[:n], vd[:n])
		case uneg && vneg:
			// -(((u-1) | (v-1)) + 1)
			x := decremented(g, ud)
			y := decremented(g, vd)
			n := max(len(x), len(y))
			mag = g.Alloc(n + 1)
			orInto(mag[:n], x, y)
			mag[n] = kernel.AddW(mag[:n], mag[:n], 1)
			neg = true
		case uneg:
			// v &^ (u-1)
			x := decremented(g, ud)
			mag = g.Alloc(len(vd))
			andNotInto(mag, vd, x)
		default:
			// u &^ (v-1)
			y := decremented(g, vd)
			mag = g.Alloc(len(ud))
			andNotInto(mag, ud, y)
		}
		commitErr = z.setMag(mag, neg)
	})
	if err != nil {
		return err
	}
	return commitErr
}

// Or sets z = u | v.
func (z *Int) Or(u, v *Int) error {
	if len(u.digits) == 0 {
		return z.Set(v)
	}
	if len(v.digits) == 0 {
		return z.Set(u)
	}
	ud, vd, uneg, vneg := u.digits, v.digits, u.neg, v.neg
	var commitErr error
	err := guarded(func(g *memguard.Guard) {
		var mag []uint64
		neg := false
		switch {
		case !uneg && !vneg:
			n := max(len(ud), len(vd))
			mag = g.Alloc(n)
			orInto(mag, ud, vd)
		case uneg && vneg:
			// -(((u-1) & (v-1)) + 1)
			x := decremented(g, ud)
			y := decremented(g, vd)
			n := min(len(x), len(y))
			mag = g.Alloc(n + 1)
			kernel.And(mag[:n], x[:n], y[:n])
			mag[n] = kernel.AddW(mag[:n], mag[:n], 1)
			neg = true
		case uneg:
			// -(((u-1) &^ v) + 1)
			x := decremented(g, ud)
			n := len(x)
			mag = g.Alloc(n + 1)
			andNotInto(mag[:n], x, vd)
			mag[n] = kernel.AddW(mag[:n], mag[:n], 1)
			neg = true
		default:
			// -(((v-1) &^ u) + 1)
			y := decremented(g, vd)
			n := len(y)
			mag = g.Alloc(n + 1)
			andNotInto(mag[:n], y, ud)
			mag[n] = kernel.AddW(mag[:n], mag[:n], 1)
			neg = true
		}
		commitErr = z.setMag(mag, neg)
	})
	if err != nil {
		return err
	}
	return commitErr
}

// Xor sets z = u ^ v.
func (z *Int) Xor(u, v *Int) error {
	if len(u.digits) == 0 {
		return z.Set(v)
	}
	if len(v.digits) == 0 {
		return z.Set(u)
	}
	ud, vd, uneg, vneg := u.digits, v.digits, u.neg, v.neg
	var commitErr error
	err := guarded(func(g *memguard.Guard) {
		var mag []uint64
		neg := false
		switch {
		case uneg == vneg:
			x, y := ud, vd
			if uneg {
				x = decremented(g, ud)
				y = decremented(g, vd)
			}
			n := max(len(x), len(y))
			mag = g.Alloc(n)
			xorInto(mag, x, y)
		default:
			// -(((neg-1) ^ pos) + 1)
			x, y := ud, vd
			if uneg {
				x = decremented(g, ud)
			} else {
				y = decremented(g, vd)
			}
			n := max(len(x), len(y))
			mag = g.Alloc(n + 1)
			xorInto(mag[:n], x, y)
			mag[n] = kernel.AddW(mag[:n], mag[:n], 1)
			neg = true
		}
		commitErr = z.setMag(mag, neg)
	})
	if err != nil {
		return err
	}
	return commitErr
}

// decremented returns |d| - 1 as a guard temporary; d is a nonzero
// magnitude, so no borrow escapes.
func decremented(g *memguard.Guard, d []uint64) []uint64 {
	buf := g.Alloc(len(d))
	kernel.SubW(buf, d, 1)
	return buf
}

func orInto(z, x, y []uint64) {
	if len(x) < len(y) {
		x, y = y, x
	}
	kernel.Or(z[:len(y)], x[:len(y)], y)
	copy(z[len(y):], x[len(y):])
}

func xorInto(z, x, y []uint64) {
	if len(x) < len(y) {
		x, y = y, x
	}
	kernel.Xor(z[:len(y)], x[:len(y)], y)
	copy(z[len(y):], x[len(y):])
}

// andNotInto sets z = x &^ y with len(z) == len(x); y may be shorter or
// longer, excess x words pass through, excess y words are ignored.
func andNotInto(z, x, y []uint64) {
	n := min(len(x), len(y))
	kernel.AndNot(z[:n], x[:n], y[:n])
	copy(z[n:], x[n:])
}
