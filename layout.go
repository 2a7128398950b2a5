package zzint

import (
	"encoding/binary"

	"github.com/agbru/zzint/internal/memguard"
)

// Layout describes an external digit-array format for Import and Export.
// Digits are DigitSize bytes wide and carry BitsPerDigit significant bits
// each; the remaining high bits of every digit are padding.
type Layout struct {
	// BitsPerDigit is the number of value bits per external digit,
	// 1 through 8*DigitSize.
	BitsPerDigit uint8
	// DigitSize is the width of one external digit in bytes, 1 through 8.
	DigitSize uint8
	// Order is 1 for most significant digit first, -1 for least first.
	Order int8
	// Endian is the byte order inside a digit: 1 big, -1 little,
	// 0 native.
	Endian int8
}

// NativeLayout returns the layout of the value's own representation:
// 64-bit native-endian words, least significant first.
func NativeLayout() Layout {
	return Layout{BitsPerDigit: 64, DigitSize: 8, Order: -1, Endian: 0}
}

var nativeIsBig = binary.NativeEndian.Uint16([]byte{0, 1}) == 1

func (l Layout) valid() bool {
	return l.DigitSize >= 1 && l.DigitSize <= 8 &&
		l.BitsPerDigit >= 1 && l.BitsPerDigit <= 8*l.DigitSize &&
		(l.Order == 1 || l.Order == -1) &&
		(l.Endian == -1 || l.Endian == 0 || l.Endian == 1)
}

func (l Layout) bigEndian() bool {
	if l.Endian == 0 {
		return nativeIsBig
	}
	return l.Endian == 1
}

// Import sets z to the non-negative integer encoded in data, len(data)
// a multiple of the layout's DigitSize. Padding bits are ignored. A
// malformed layout or data length reports ErrInvalidValue.
func (z *Int) Import(data []byte, layout Layout) error {
	if !layout.valid() || len(data)%int(layout.DigitSize) != 0 {
		return ErrInvalidValue
	}
	ds := int(layout.DigitSize)
	bpd := uint(layout.BitsPerDigit)
	nd := len(data) / ds
	words := (int64(nd)*int64(bpd) + digitBits - 1) / digitBits
	if words > MaxDigits {
		return ErrRangeExceeded
	}
	if nd == 0 {
		z.setZero()
		return nil
	}
	big := layout.bigEndian()
	var commitErr error
	err := guarded(func(g *memguard.Guard) {
		mag := g.Alloc(int(words))
		var acc uint64
		var accBits uint
		w := 0
		for i := 0; i < nd; i++ {
			j := i
			if layout.Order == 1 {
				j = nd - 1 - i // walk least significant digit first
			}
			d := readDigit(data[j*ds:(j+1)*ds], big)
			if bpd < digitBits {
				d &= 1<<bpd - 1
			}
			acc |= d << accBits
			if accBits+bpd >= digitBits {
				mag[w] = acc
				w++
				acc = d >> (digitBits - accBits)
				accBits += bpd - digitBits
			} else {
				accBits += bpd
			}
		}
		if accBits > 0 {
			mag[w] = acc
		}
		commitErr = z.setMag(mag, false)
	})
	if err != nil {
		return err
	}
	return commitErr
}

// Export writes the magnitude of z into dst using the given layout and
// returns the number of external digits written. A buffer with room for
// fewer digits than the value needs reports ErrRangeExceeded and writes
// nothing; zero needs no digits.
func (z *Int) Export(layout Layout, dst []byte) (int, error) {
	if !layout.valid() {
		return 0, ErrInvalidValue
	}
	ds := int(layout.DigitSize)
	bpd := int64(layout.BitsPerDigit)
	need := int((z.BitLen() + bpd - 1) / bpd)
	if len(dst)/ds < need {
		return 0, ErrRangeExceeded
	}
	big := layout.bigEndian()
	for i := 0; i < need; i++ {
		d := getBits(z.digits, uint(int64(i)*bpd), uint(bpd))
		j := i
		if layout.Order == 1 {
			j = need - 1 - i
		}
		writeDigit(dst[j*ds:(j+1)*ds], d, big)
	}
	return need, nil
}

func readDigit(b []byte, bigEndian bool) uint64 {
	var d uint64
	if bigEndian {
		for _, c := range b {
			d = d<<8 | uint64(c)
		}
	} else {
		for i := len(b) - 1; i >= 0; i-- {
			d = d<<8 | uint64(b[i])
		}
	}
	return d
}

func writeDigit(b []byte, d uint64, bigEndian bool) {
	if bigEndian {
		for i := len(b) - 1; i >= 0; i-- {
			b[i] = byte(d)
			d >>= 8
		}
	} else {
		for i := range b {
			b[i] = byte(d)
			d >>= 8
		}
	}
}
