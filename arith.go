package zzint

import "github.com/agbru/zzint/internal/kernel"

// Add sets z = u + v.
func (z *Int) Add(u, v *Int) error { return z.addsub(u, v, false) }

// Sub sets z = u - v.
func (z *Int) Sub(u, v *Int) error { return z.addsub(u, v, true) }

// addsub computes u ± v by sign-magnitude cases. Input slice headers are
// captured before the output is resized, so they stay readable even when
// z aliases u or v: an in-place reslice leaves the words where they were,
// and a reallocation leaves the old array intact behind the captured
// headers.
func (z *Int) addsub(u, v *Int, negV bool) error {
	uneg := u.neg
	vneg := v.neg != negV
	ud, vd := u.digits, v.digits
	if len(ud) < len(vd) {
		ud, vd = vd, ud
		uneg, vneg = vneg, uneg
	}
	n := len(ud)
	if uneg == vneg {
		if err := z.resize(n + 1); err != nil {
			return err
		}
		z.digits[n] = kernel.Add(z.digits[:n], ud, vd)
		z.neg = uneg
		z.normalize()
		return nil
	}
	// opposite signs: result is the difference of magnitudes
	cmp := 1
	if len(vd) == n {
		cmp = kernel.Cmp(ud, vd)
	}
	if cmp == 0 {
		z.setZero()
		return nil
	}
	if cmp < 0 {
		ud, vd = vd, ud
		uneg = vneg
	}
	if err := z.resize(len(ud)); err != nil {
		return err
	}
	kernel.Sub(z.digits, ud, vd)
	z.neg = uneg
	z.normalize()
	return nil
}

// addsubW computes (±u) + (±w) for a machine-word operand. negU negates u
// before the addition; wneg is the sign of w.
func (z *Int) addsubW(u *Int, w uint64, wneg, negU bool) error {
	uneg := u.neg != negU
	ud := u.digits
	n := len(ud)
	if n == 0 {
		if err := z.resize(1); err != nil {
			return err
		}
		z.digits[0] = w
		z.neg = wneg
		z.normalize()
		return nil
	}
	if uneg == wneg {
		if err := z.resize(n + 1); err != nil {
			return err
		}
		z.digits[n] = kernel.AddW(z.digits[:n], ud, w)
		z.neg = uneg
		z.normalize()
		return nil
	}
	if n == 1 && ud[0] < w {
		d := w - ud[0]
		if err := z.resize(1); err != nil {
			return err
		}
		z.digits[0] = d
		z.neg = wneg
		return nil
	}
	// |u| >= w
	if err := z.resize(n); err != nil {
		return err
	}
	kernel.SubW(z.digits, ud, w)
	z.neg = uneg
	z.normalize()
	return nil
}

// AddUint64 sets z = u + v.
func (z *Int) AddUint64(u *Int, v uint64) error { return z.addsubW(u, v, false, false) }

// SubUint64 sets z = u - v.
func (z *Int) SubUint64(u *Int, v uint64) error { return z.addsubW(u, v, true, false) }

// Uint64Sub sets z = v - u.
func (z *Int) Uint64Sub(v uint64, u *Int) error { return z.addsubW(u, v, false, true) }

// AddInt64 sets z = u + v.
func (z *Int) AddInt64(u *Int, v int64) error {
	uv, vneg := uint64(v), v < 0
	if vneg {
		uv = -uv
	}
	return z.addsubW(u, uv, vneg, false)
}

// SubInt64 sets z = u - v.
func (z *Int) SubInt64(u *Int, v int64) error {
	uv, vneg := uint64(v), v < 0
	if vneg {
		uv = -uv
	}
	return z.addsubW(u, uv, !vneg, false)
}

// Int64Sub sets z = v - u.
func (z *Int) Int64Sub(v int64, u *Int) error {
	uv, vneg := uint64(v), v < 0
	if vneg {
		uv = -uv
	}
	return z.addsubW(u, uv, vneg, true)
}
