package memguard

// escape is the one-shot signal raised by a Guard when the installed
// allocator fails. It never crosses a Run boundary.
type escape struct{}

// A Guard tracks the scratch buffers of one guarded region. The kernel
// allocates and frees scratch in a near-LIFO pattern, so the registry is a
// stack with tombstones: Free marks a slot nil and pops trailing nils.
//
// The zero value is ready to use. A Guard must not be shared between
// goroutines or reused across overlapping Run calls.
type Guard struct {
	temps [][]uint64
}

// Run executes fn under a checkpoint. If an allocation inside fn fails, all
// temporaries tracked by the guard are released, control returns here, and
// Run reports false. Any other panic is passed through.
//
// State that fn computes before the failing allocation is discarded with
// the temporaries; callers must publish results only after Run returns
// true (and must re-read shared state rather than assume values cached
// before the escape survived it).
func (g *Guard) Run(fn func()) (ok bool) {
	defer func() {
		g.releaseAll()
		if r := recover(); r != nil {
			if _, mem := r.(escape); mem {
				ok = false
				return
			}
			panic(r)
		}
	}()
	fn()
	return true
}

// Alloc returns a tracked scratch buffer of the given word count. On
// allocator failure it releases everything the guard tracks and escapes to
// the enclosing Run; it does not return.
func (g *Guard) Alloc(words int) []uint64 {
	buf := allocFn(words)
	if buf == nil {
		g.releaseAll()
		panic(escape{})
	}
	g.temps = append(g.temps, buf)
	liveTemps.Add(1)
	return buf
}

// Free releases one tracked buffer early. Most call sites simply let Run
// release everything; Free exists for long regions that would otherwise
// hold peak scratch alive.
func (g *Guard) Free(buf []uint64) {
	if len(buf) == 0 {
		return
	}
	for i := len(g.temps) - 1; i >= 0; i-- {
		t := g.temps[i]
		if len(t) != 0 && &t[0] == &buf[0] {
			g.temps[i] = nil
			freeFn(t)
			liveTemps.Add(-1)
			break
		}
	}
	for n := len(g.temps); n > 0 && g.temps[n-1] == nil; n = len(g.temps) {
		g.temps = g.temps[:n-1]
	}
}

func (g *Guard) releaseAll() {
	for i := len(g.temps) - 1; i >= 0; i-- {
		if g.temps[i] != nil {
			freeFn(g.temps[i])
			liveTemps.Add(-1)
			g.temps[i] = nil
		}
	}
	g.temps = g.temps[:0]
}
