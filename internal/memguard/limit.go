package memguard

import "sync/atomic"

// LimitAllocator hands out digit buffers against a fixed word budget and
// refuses requests that would exceed it. It gives hosts a deterministic
// out-of-memory boundary and gives tests a way to trip every allocation
// point without exhausting real memory.
type LimitAllocator struct {
	budget int64
	used   atomic.Int64
}

// NewLimitAllocator creates an allocator with a budget of the given number
// of 64-bit words.
func NewLimitAllocator(words int64) *LimitAllocator {
	return &LimitAllocator{budget: words}
}

// Funcs returns the hook triple for SetFuncs.
func (l *LimitAllocator) Funcs() (AllocFunc, ReallocFunc, FreeFunc) {
	return l.alloc, l.realloc, l.free
}

// Used reports the words currently charged against the budget.
func (l *LimitAllocator) Used() int64 { return l.used.Load() }

func (l *LimitAllocator) alloc(words int) []uint64 {
	if l.used.Add(int64(words)) > l.budget {
		l.used.Add(-int64(words))
		return nil
	}
	return make([]uint64, words)
}

func (l *LimitAllocator) realloc(buf []uint64, words int) []uint64 {
	next := l.alloc(words)
	if next == nil {
		return nil
	}
	copy(next, buf)
	l.free(buf)
	return next
}

func (l *LimitAllocator) free(buf []uint64) {
	l.used.Add(-int64(cap(buf)))
}
