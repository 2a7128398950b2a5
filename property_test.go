package zzint_test

import (
	"math/big"
	"testing"

	"github.com/agbru/zzint"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var byteLayout = zzint.Layout{BitsPerDigit: 8, DigitSize: 1, Order: 1, Endian: 1}

// intFromBytes builds a signed value from a random magnitude and sign.
func intFromBytes(mag []byte, neg bool) (*zzint.Int, error) {
	z := new(zzint.Int)
	if err := z.Import(mag, byteLayout); err != nil {
		return nil, err
	}
	if neg {
		if err := z.Neg(z); err != nil {
			return nil, err
		}
	}
	return z, nil
}

// toBig mirrors a value into a math/big integer for differential checks.
func toBig(t *testing.T, z *zzint.Int) *big.Int {
	t.Helper()
	s, err := z.Text(16)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	b, ok := new(big.Int).SetString(s, 16)
	if !ok {
		t.Fatalf("big.Int rejected %q", s)
	}
	return b
}

func operandPair(vals []interface{}) (u *zzint.Int, v *zzint.Int, err error) {
	u, err = intFromBytes(vals[0].([]byte), vals[1].(bool))
	if err != nil {
		return nil, nil, err
	}
	v, err = intFromBytes(vals[2].([]byte), vals[3].(bool))
	if err != nil {
		u.Clear()
		return nil, nil, err
	}
	return u, v, nil
}

func TestAdditionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("(u+v)-v == u", prop.ForAll(
		func(vals []interface{}) bool {
			u, v, err := operandPair(vals)
			if err != nil {
				return false
			}
			defer u.Clear()
			defer v.Clear()
			var z zzint.Int
			defer z.Clear()
			if err := z.Add(u, v); err != nil {
				return false
			}
			if err := z.Sub(&z, v); err != nil {
				return false
			}
			return z.Cmp(u) == 0
		},
		gopter.CombineGens(gen.SliceOf(gen.UInt8()), gen.Bool(), gen.SliceOf(gen.UInt8()), gen.Bool()),
	))

	properties.Property("addition commutes under aliasing", prop.ForAll(
		func(vals []interface{}) bool {
			u, v, err := operandPair(vals)
			if err != nil {
				return false
			}
			defer u.Clear()
			defer v.Clear()
			var a zzint.Int
			defer a.Clear()
			if err := a.Add(u, v); err != nil {
				return false
			}
			// v+u computed in place over v
			if err := v.Add(v, u); err != nil {
				return false
			}
			return a.Cmp(v) == 0
		},
		gopter.CombineGens(gen.SliceOf(gen.UInt8()), gen.Bool(), gen.SliceOf(gen.UInt8()), gen.Bool()),
	))

	properties.TestingRun(t)
}

func TestArithmeticMatchesMathBig(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Add and Mul agree with math/big", prop.ForAll(
		func(vals []interface{}) bool {
			u, v, err := operandPair(vals)
			if err != nil {
				return false
			}
			defer u.Clear()
			defer v.Clear()
			bu, bv := toBig(t, u), toBig(t, v)

			var sum, prod zzint.Int
			defer sum.Clear()
			defer prod.Clear()
			if err := sum.Add(u, v); err != nil {
				return false
			}
			if err := prod.Mul(u, v); err != nil {
				return false
			}
			wantSum := new(big.Int).Add(bu, bv)
			wantProd := new(big.Int).Mul(bu, bv)
			return toBig(t, &sum).Cmp(wantSum) == 0 && toBig(t, &prod).Cmp(wantProd) == 0
		},
		gopter.CombineGens(gen.SliceOf(gen.UInt8()), gen.Bool(), gen.SliceOf(gen.UInt8()), gen.Bool()),
	))

	properties.Property("QuoRem agrees with math/big", prop.ForAll(
		func(vals []interface{}) bool {
			u, v, err := operandPair(vals)
			if err != nil {
				return false
			}
			defer u.Clear()
			defer v.Clear()
			if v.IsZero() {
				return true
			}
			bu, bv := toBig(t, u), toBig(t, v)

			var q, r zzint.Int
			defer q.Clear()
			defer r.Clear()
			if err := zzint.QuoRem(&q, &r, u, v); err != nil {
				return false
			}
			wantQ, wantR := new(big.Int).QuoRem(bu, bv, new(big.Int))
			return toBig(t, &q).Cmp(wantQ) == 0 && toBig(t, &r).Cmp(wantR) == 0
		},
		gopter.CombineGens(gen.SliceOf(gen.UInt8()), gen.Bool(), gen.SliceOf(gen.UInt8()), gen.Bool()),
	))

	properties.TestingRun(t)
}

func TestDivisionIdentityProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("u == q*v + r for both conventions", prop.ForAll(
		func(vals []interface{}) bool {
			u, v, err := operandPair(vals)
			if err != nil {
				return false
			}
			defer u.Clear()
			defer v.Clear()
			if v.IsZero() {
				return true
			}
			for _, div := range []func(q, r, u, v *zzint.Int) error{zzint.QuoRem, zzint.DivMod} {
				var q, r, chk zzint.Int
				if err := div(&q, &r, u, v); err != nil {
					return false
				}
				if err := chk.Mul(&q, v); err != nil {
					return false
				}
				if err := chk.Add(&chk, &r); err != nil {
					return false
				}
				ok := chk.Cmp(u) == 0
				q.Clear()
				r.Clear()
				chk.Clear()
				if !ok {
					return false
				}
			}
			return true
		},
		gopter.CombineGens(gen.SliceOf(gen.UInt8()), gen.Bool(), gen.SliceOf(gen.UInt8()), gen.Bool()),
	))

	properties.TestingRun(t)
}

func TestTextRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Text then SetString is the identity", prop.ForAll(
		func(mag []byte, neg bool, base int) bool {
			u, err := intFromBytes(mag, neg)
			if err != nil {
				return false
			}
			defer u.Clear()
			s, err := u.Text(base)
			if err != nil {
				return false
			}
			var back zzint.Int
			defer back.Clear()
			if err := back.SetString(s, base); err != nil {
				return false
			}
			return back.Cmp(u) == 0
		},
		gen.SliceOf(gen.UInt8()),
		gen.Bool(),
		gen.IntRange(2, 36),
	))

	properties.TestingRun(t)
}

func TestSqrtBoundsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("s*s <= u < (s+1)*(s+1)", prop.ForAll(
		func(mag []byte) bool {
			u, err := intFromBytes(mag, false)
			if err != nil {
				return false
			}
			defer u.Clear()
			var s, r zzint.Int
			defer s.Clear()
			defer r.Clear()
			if err := zzint.SqrtRem(&s, &r, u); err != nil {
				return false
			}
			var lo, hi zzint.Int
			defer lo.Clear()
			defer hi.Clear()
			if err := lo.Mul(&s, &s); err != nil {
				return false
			}
			if err := hi.AddUint64(&s, 1); err != nil {
				return false
			}
			if err := hi.Mul(&hi, &hi); err != nil {
				return false
			}
			return lo.Cmp(u) <= 0 && u.Cmp(&hi) < 0
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}

func TestGCDLCMProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("gcd(u,v) * lcm(u,v) == |u*v|", prop.ForAll(
		func(vals []interface{}) bool {
			u, v, err := operandPair(vals)
			if err != nil {
				return false
			}
			defer u.Clear()
			defer v.Clear()
			if u.IsZero() || v.IsZero() {
				return true
			}
			var g, l, prod, uv zzint.Int
			defer g.Clear()
			defer l.Clear()
			defer prod.Clear()
			defer uv.Clear()
			if err := g.GCD(u, v); err != nil {
				return false
			}
			if err := l.LCM(u, v); err != nil {
				return false
			}
			if err := prod.Mul(&g, &l); err != nil {
				return false
			}
			if err := uv.Mul(u, v); err != nil {
				return false
			}
			if err := uv.Abs(&uv); err != nil {
				return false
			}
			return prod.Cmp(&uv) == 0
		},
		gopter.CombineGens(gen.SliceOf(gen.UInt8()), gen.Bool(), gen.SliceOf(gen.UInt8()), gen.Bool()),
	))

	properties.TestingRun(t)
}
