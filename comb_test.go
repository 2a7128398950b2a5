package zzint_test

import (
	"testing"

	"github.com/agbru/zzint"
)

func TestFactorial(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "1"},
		{1, "1"},
		{2, "2"},
		{5, "120"},
		{10, "3628800"},
		{20, "2432902008176640000"},
		{25, "15511210043330985984000000"},
		{30, "265252859812191058636308480000000"},
	}
	for _, tt := range tests {
		var z zzint.Int
		if err := z.Factorial(tt.n); err != nil {
			t.Fatalf("Factorial(%d) failed: %v", tt.n, err)
		}
		checkInt(t, &z, tt.want)
		z.Clear()
	}
}

func TestFactorialRecurrence(t *testing.T) {
	t.Parallel()
	// (n+1)! == (n+1) * n!
	var prev, cur, chk zzint.Int
	defer prev.Clear()
	defer cur.Clear()
	defer chk.Clear()
	if err := prev.Factorial(40); err != nil {
		t.Fatal(err)
	}
	if err := cur.Factorial(41); err != nil {
		t.Fatal(err)
	}
	if err := chk.MulUint64(&prev, 41); err != nil {
		t.Fatal(err)
	}
	if chk.Cmp(&cur) != 0 {
		t.Errorf("41 * 40! = %s, 41! = %s", chk.String(), cur.String())
	}
}

func TestBinomial(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n, k uint64
		want string
	}{
		{0, 0, "1"},
		{5, 0, "1"},
		{5, 5, "1"},
		{13, 5, "1287"},
		{13, 8, "1287"},
		{52, 5, "2598960"},
		{5, 6, "0"},
		{100, 50, "100891344545564193334812497256"},
	}
	for _, tt := range tests {
		var z zzint.Int
		if err := z.Binomial(tt.n, tt.k); err != nil {
			t.Fatalf("Binomial(%d, %d) failed: %v", tt.n, tt.k, err)
		}
		checkInt(t, &z, tt.want)
		z.Clear()
	}
}

func TestBinomialPascal(t *testing.T) {
	t.Parallel()
	// C(n, k) == C(n-1, k-1) + C(n-1, k)
	const n, k = 64, 21
	var a, b, c zzint.Int
	defer a.Clear()
	defer b.Clear()
	defer c.Clear()
	if err := a.Binomial(n-1, k-1); err != nil {
		t.Fatal(err)
	}
	if err := b.Binomial(n-1, k); err != nil {
		t.Fatal(err)
	}
	if err := a.Add(&a, &b); err != nil {
		t.Fatal(err)
	}
	if err := c.Binomial(n, k); err != nil {
		t.Fatal(err)
	}
	if a.Cmp(&c) != 0 {
		t.Errorf("Pascal identity broken at C(%d, %d)", n, k)
	}
}
