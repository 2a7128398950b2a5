package memguard

import "sync/atomic"

// AllocFunc allocates a zeroed digit buffer of the given word count.
// It returns nil when the request cannot be satisfied.
type AllocFunc func(words int) []uint64

// ReallocFunc returns a buffer of the given word count holding the first
// min(len(buf), words) words of buf. It returns nil when the request cannot
// be satisfied, in which case buf stays valid.
type ReallocFunc func(buf []uint64, words int) []uint64

// FreeFunc releases a buffer previously obtained from the paired AllocFunc
// or ReallocFunc.
type FreeFunc func(buf []uint64)

// Hooks are process-wide, like the kernel allocator they stand in for.
// Swapping them while operations are in flight is a caller error; install
// them once at startup (Setup) and restore them at shutdown (Restore).
var (
	allocFn   AllocFunc   = defaultAlloc
	reallocFn ReallocFunc = defaultRealloc
	freeFn    FreeFunc    = defaultFree
)

// liveTemps counts kernel temporaries that have been allocated through a
// Guard and not yet released. It must return to zero after every operation,
// successful or not.
var liveTemps atomic.Int64

func defaultAlloc(words int) []uint64 { return make([]uint64, words) }

func defaultRealloc(buf []uint64, words int) []uint64 {
	next := make([]uint64, words)
	copy(next, buf)
	return next
}

func defaultFree([]uint64) {}

// Setup installs the default allocator hooks. It must be called once before
// any operation and is the anchor for SetFuncs redirection.
func Setup() {
	allocFn = defaultAlloc
	reallocFn = defaultRealloc
	freeFn = defaultFree
}

// Restore reinstates the default hooks, undoing any SetFuncs redirection.
func Restore() {
	allocFn = defaultAlloc
	reallocFn = defaultRealloc
	freeFn = defaultFree
}

// SetFuncs redirects the allocator hooks, for fault-injection testing and
// host integration. A nil function keeps the corresponding default.
func SetFuncs(alloc AllocFunc, realloc ReallocFunc, free FreeFunc) {
	if alloc == nil {
		alloc = defaultAlloc
	}
	if realloc == nil {
		realloc = defaultRealloc
	}
	if free == nil {
		free = defaultFree
	}
	allocFn = alloc
	reallocFn = realloc
	freeFn = free
}

// LiveTemps reports the number of tracked kernel temporaries that have not
// been released yet.
func LiveTemps() int { return int(liveTemps.Load()) }

// Alloc requests an untracked buffer (value storage, not a kernel
// temporary). Returns nil on failure.
func Alloc(words int) []uint64 { return allocFn(words) }

// Realloc resizes an untracked buffer, preserving its prefix. Returns nil
// on failure, leaving buf valid.
func Realloc(buf []uint64, words int) []uint64 { return reallocFn(buf, words) }

// Free releases an untracked buffer.
func Free(buf []uint64) {
	if buf != nil {
		freeFn(buf)
	}
}
