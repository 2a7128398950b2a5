package zzint

import (
	"math"
	"math/bits"

	"github.com/agbru/zzint/internal/kernel"
	"github.com/agbru/zzint/internal/memguard"
)

const (
	lowercaseDigits = "0123456789abcdefghijklmnopqrstuvwxyz"
	uppercaseDigits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// SetString sets z from a textual integer. base is 0 or 2 through 36.
// Base 0 detects 0b/0o/0x prefixes and defaults to decimal; an explicit
// base 2, 8, or 16 accepts its matching prefix. The number may carry a
// leading sign, single non-adjacent underscores between digits, leading
// whitespace, and trailing whitespace. A string without any digit reports
// ErrInvalidValue.
func (z *Int) SetString(s string, base int) error {
	if base != 0 && (base < 2 || base > 36) {
		return ErrInvalidValue
	}
	i, n := 0, len(s)
	for i < n && isSpace(s[i]) {
		i++
	}
	if i == n {
		return ErrInvalidValue
	}
	neg := s[i] == '-'
	if neg || s[i] == '+' {
		i++
	}
	if i == n || s[i] == '_' {
		return ErrInvalidValue
	}
	if base == 0 && s[i] == '0' {
		if i == n-1 {
			z.setZero()
			return nil
		}
		switch s[i+1] | 0x20 {
		case 'b':
			base = 2
		case 'o':
			base = 8
		case 'x':
			base = 16
		default:
			if !isSpace(s[i+1]) {
				return ErrInvalidValue
			}
		}
		i += 2
		// one underscore may follow a detected prefix
		if i < n && s[i] == '_' {
			i++
		}
	}
	if base == 0 {
		base = 10
	}
	if i+1 < n && s[i] == '0' {
		switch c := s[i+1] | 0x20; {
		case base == 2 && c == 'b',
			base == 8 && c == 'o',
			base == 16 && c == 'x':
			i += 2
		}
	}
	if i == n || s[i] == '_' {
		return ErrInvalidValue
	}

	start := i
	nd := 0
	j := i
scan:
	for ; j < n; j++ {
		switch c := s[j]; {
		case c == '_':
			if j == n-1 || s[j+1] == '_' {
				return ErrInvalidValue
			}
		case int(digitVal(c)) < base:
			nd++
		default:
			if !isSpace(c) {
				return ErrInvalidValue
			}
			for k := j; k < n; k++ {
				if !isSpace(s[k]) {
					return ErrInvalidValue
				}
			}
			break scan
		}
	}
	if nd == 0 {
		return ErrInvalidValue
	}
	end := j

	words := (int64(nd)*int64(bits.Len(uint(base-1))) + digitBits - 1) / digitBits
	if words > MaxDigits {
		return ErrRangeExceeded
	}
	var commitErr error
	err := guarded(func(g *memguard.Guard) {
		mag := g.Alloc(int(words))
		if base&(base-1) == 0 {
			k := uint(bits.TrailingZeros(uint(base)))
			var off uint
			for j := end - 1; j >= start; j-- {
				c := s[j]
				if c == '_' {
					continue
				}
				d := uint64(digitVal(c))
				mag[off/digitBits] |= d << (off % digitBits)
				if off%digitBits+k > digitBits {
					mag[off/digitBits+1] |= d >> (digitBits - off%digitBits)
				}
				off += k
			}
		} else {
			bb, cnt := chunkBase(uint64(base))
			used := 0
			var chunk uint64
			var cc uint
			flush := func(mult uint64) {
				if c := kernel.MulAddW(mag[:used], mag[:used], mult, chunk); c != 0 {
					mag[used] = c
					used++
				}
				chunk, cc = 0, 0
			}
			for j := start; j < end; j++ {
				c := s[j]
				if c == '_' {
					continue
				}
				chunk = chunk*uint64(base) + uint64(digitVal(c))
				if cc++; cc == cnt {
					flush(bb)
				}
			}
			if cc > 0 {
				flush(powWord(uint64(base), cc))
			}
		}
		commitErr = z.setMag(mag, neg)
	})
	if err != nil {
		return err
	}
	return commitErr
}

// Text renders the value in the given base, 2 through 36. A negative base
// selects uppercase digits for its absolute value. No base prefix is
// emitted.
func (z *Int) Text(base int) (string, error) {
	digits := lowercaseDigits
	if base < 0 {
		base = -base
		digits = uppercaseDigits
	}
	if base < 2 || base > 36 {
		return "", ErrInvalidValue
	}
	if len(z.digits) == 0 {
		return "0", nil
	}
	var out []byte
	if base&(base-1) == 0 {
		k := uint(bits.TrailingZeros(uint(base)))
		nd := (uint(z.BitLen()) + k - 1) / k
		out = make([]byte, 0, int(nd)+1)
		if z.neg {
			out = append(out, '-')
		}
		for pos := int64(nd-1) * int64(k); pos >= 0; pos -= int64(k) {
			out = append(out, digits[getBits(z.digits, uint(pos), k)])
		}
		return string(out), nil
	}
	bb, cnt := chunkBase(uint64(base))
	ud := z.digits
	var chunks []uint64
	err := guarded(func(g *memguard.Guard) {
		tmp := g.Alloc(len(ud))
		copy(tmp, ud)
		n := len(tmp)
		for n > 0 {
			rem := kernel.DivRemW(tmp[:n], tmp[:n], bb)
			for n > 0 && tmp[n-1] == 0 {
				n--
			}
			chunks = append(chunks, rem)
		}
	})
	if err != nil {
		return "", err
	}
	out = make([]byte, 0, len(chunks)*int(cnt)+1)
	if z.neg {
		out = append(out, '-')
	}
	last := len(chunks) - 1
	out = appendChunk(out, chunks[last], uint64(base), digits, 0)
	for i := last - 1; i >= 0; i-- {
		out = appendChunk(out, chunks[i], uint64(base), digits, cnt)
	}
	return string(out), nil
}

// String renders the value in decimal. If conversion scratch cannot be
// allocated it returns the empty string.
func (z *Int) String() string {
	s, err := z.Text(10)
	if err != nil {
		return ""
	}
	return s
}

// SizeInBase reports the digit count of the value in the given base,
// excluding any sign. For bases that are not powers of two the count may
// exceed the exact one by one.
func (z *Int) SizeInBase(base int) (int64, error) {
	if base < 0 {
		base = -base
	}
	if base < 2 || base > 36 {
		return 0, ErrInvalidValue
	}
	if len(z.digits) == 0 {
		return 1, nil
	}
	bl := z.BitLen()
	if base&(base-1) == 0 {
		k := int64(bits.TrailingZeros(uint(base)))
		return (bl + k - 1) / k, nil
	}
	return int64(float64(bl)/math.Log2(float64(base))) + 1, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func digitVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'z':
		return c - 'a' + 10
	case c >= 'A' && c <= 'Z':
		return c - 'A' + 10
	}
	return 0xFF
}

// chunkBase returns the largest power of b fitting a word and its degree.
func chunkBase(b uint64) (bb uint64, cnt uint) {
	bb, cnt = b, 1
	for bb <= math.MaxUint64/b {
		bb *= b
		cnt++
	}
	return bb, cnt
}

func powWord(b uint64, n uint) uint64 {
	p := uint64(1)
	for ; n > 0; n-- {
		p *= b
	}
	return p
}

// appendChunk formats v in the given base, left-padded with zeros to
// width digits (width 0 pads nothing).
func appendChunk(dst []byte, v, base uint64, digits string, width uint) []byte {
	var buf [64]byte
	i := len(buf)
	for {
		i--
		buf[i] = digits[v%base]
		v /= base
		if v == 0 {
			break
		}
	}
	for uint(len(buf)-i) < width {
		i--
		buf[i] = '0'
	}
	return append(dst, buf[i:]...)
}
