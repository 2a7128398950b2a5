package zzint

import "github.com/agbru/zzint/internal/memguard"

// AllocFunc allocates a zeroed digit buffer of the given word count,
// returning nil when the request cannot be satisfied.
type AllocFunc func(words int) []uint64

// ReallocFunc returns a buffer of the given word count carrying the first
// min(len(buf), words) words of buf, or nil on failure, in which case buf
// stays valid.
type ReallocFunc func(buf []uint64, words int) []uint64

// FreeFunc releases a buffer obtained from the paired AllocFunc or
// ReallocFunc.
type FreeFunc func(buf []uint64)

// Setup installs the default digit allocator. Call it once before using
// the package; it is not safe to call while operations are in flight.
func Setup() {
	memguard.Setup()
}

// Finish restores the default allocator, undoing any SetMemoryFuncs
// redirection. Values created under custom memory functions must be
// cleared before Finish.
func Finish() {
	memguard.Restore()
}

// SetMemoryFuncs redirects digit allocation process-wide. A nil function
// keeps the corresponding default. Like Setup, it must not race with
// operations in flight.
func SetMemoryFuncs(alloc AllocFunc, realloc ReallocFunc, free FreeFunc) {
	var (
		a memguard.AllocFunc
		r memguard.ReallocFunc
		f memguard.FreeFunc
	)
	if alloc != nil {
		a = memguard.AllocFunc(alloc)
	}
	if realloc != nil {
		r = memguard.ReallocFunc(realloc)
	}
	if free != nil {
		f = memguard.FreeFunc(free)
	}
	memguard.SetFuncs(a, r, f)
}

// TrackedTemps reports the number of live kernel temporaries. It is zero
// whenever no operation is executing, including immediately after a failed
// one.
func TrackedTemps() int {
	return memguard.LiveTemps()
}

// MaxBits reports the largest bit length a value can reach.
func MaxBits() int64 {
	return MaxDigits * digitBits
}

// Version reports the engine version.
func Version() string {
	return "0.3.0"
}
