package zzint

import "math"

// SetInt64 sets z to v.
func (z *Int) SetInt64(v int64) error {
	if v == 0 {
		z.setZero()
		return nil
	}
	if err := z.resize(1); err != nil {
		return err
	}
	uv := uint64(v)
	if v < 0 {
		uv = -uv
	}
	z.digits[0] = uv
	z.neg = v < 0
	return nil
}

// SetUint64 sets z to v.
func (z *Int) SetUint64(v uint64) error {
	if v == 0 {
		z.setZero()
		return nil
	}
	if err := z.resize(1); err != nil {
		return err
	}
	z.digits[0] = v
	z.neg = false
	return nil
}

// Int64 returns the value as an int64, or ErrRangeExceeded when it does
// not fit.
func (z *Int) Int64() (int64, error) {
	switch len(z.digits) {
	case 0:
		return 0, nil
	case 1:
		d := z.digits[0]
		if !z.neg {
			if d > math.MaxInt64 {
				return 0, ErrRangeExceeded
			}
			return int64(d), nil
		}
		if d > 1<<63 {
			return 0, ErrRangeExceeded
		}
		// -1 - (d-1) survives d == 2^63 without overflow
		return -1 - int64((d-1)&math.MaxInt64), nil
	default:
		return 0, ErrRangeExceeded
	}
}

// Int32 returns the value as an int32, or ErrRangeExceeded when it does
// not fit.
func (z *Int) Int32() (int32, error) {
	v, err := z.Int64()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, ErrRangeExceeded
	}
	return int32(v), nil
}

// Uint64 returns the value as a uint64. Negative values report
// ErrInvalidValue; too-large values report ErrRangeExceeded.
func (z *Int) Uint64() (uint64, error) {
	if z.neg {
		return 0, ErrInvalidValue
	}
	switch len(z.digits) {
	case 0:
		return 0, nil
	case 1:
		return z.digits[0], nil
	default:
		return 0, ErrRangeExceeded
	}
}

// Uint32 returns the value as a uint32. Negative values report
// ErrInvalidValue; too-large values report ErrRangeExceeded.
func (z *Int) Uint32() (uint32, error) {
	v, err := z.Uint64()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, ErrRangeExceeded
	}
	return uint32(v), nil
}
