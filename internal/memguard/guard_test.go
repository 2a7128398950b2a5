package memguard

import "testing"

func TestGuardRunReleasesTemps(t *testing.T) {
	var g Guard
	ok := g.Run(func() {
		g.Alloc(4)
		g.Alloc(8)
		if LiveTemps() != 2 {
			t.Errorf("LiveTemps() = %d inside Run, want 2", LiveTemps())
		}
	})
	if !ok {
		t.Fatal("Run reported escape without an allocation failure")
	}
	if LiveTemps() != 0 {
		t.Errorf("LiveTemps() = %d after Run, want 0", LiveTemps())
	}
}

func TestGuardEscapeOnAllocFailure(t *testing.T) {
	lim := NewLimitAllocator(4)
	alloc, realloc, free := lim.Funcs()
	SetFuncs(alloc, realloc, free)
	t.Cleanup(Restore)

	var g Guard
	reached := false
	ok := g.Run(func() {
		g.Alloc(2)
		g.Alloc(100) // exceeds the budget, escapes
		reached = true
	})
	if ok {
		t.Fatal("Run reported success despite allocation failure")
	}
	if reached {
		t.Error("execution continued past the failing allocation")
	}
	if LiveTemps() != 0 {
		t.Errorf("LiveTemps() = %d after escape, want 0", LiveTemps())
	}
	if lim.Used() != 0 {
		t.Errorf("Used() = %d after escape, want 0", lim.Used())
	}
}

func TestGuardPassesForeignPanics(t *testing.T) {
	var g Guard
	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recovered %v, want \"boom\"", r)
		}
		if LiveTemps() != 0 {
			t.Errorf("LiveTemps() = %d, want 0", LiveTemps())
		}
	}()
	g.Run(func() {
		g.Alloc(4)
		panic("boom")
	})
}

func TestGuardEarlyFree(t *testing.T) {
	var g Guard
	g.Run(func() {
		a := g.Alloc(4)
		b := g.Alloc(4)
		g.Free(a)
		if LiveTemps() != 1 {
			t.Errorf("LiveTemps() = %d after Free, want 1", LiveTemps())
		}
		g.Free(b)
		if LiveTemps() != 0 {
			t.Errorf("LiveTemps() = %d, want 0", LiveTemps())
		}
		// double free of an already released buffer is ignored
		g.Free(a)
	})
	if LiveTemps() != 0 {
		t.Errorf("LiveTemps() = %d after Run, want 0", LiveTemps())
	}
}

func TestLimitAllocator(t *testing.T) {
	lim := NewLimitAllocator(10)
	buf := lim.alloc(6)
	if buf == nil || lim.Used() != 6 {
		t.Fatalf("alloc(6): buf=%v used=%d", buf, lim.Used())
	}
	if lim.alloc(5) != nil {
		t.Error("alloc(5) should exceed the budget")
	}
	if lim.Used() != 6 {
		t.Errorf("failed alloc changed Used to %d", lim.Used())
	}

	buf[0] = 42
	next := lim.realloc(buf, 4)
	if next == nil || next[0] != 42 {
		t.Fatalf("realloc lost the prefix: %v", next)
	}
	if lim.Used() != 4 {
		t.Errorf("Used() = %d after realloc, want 4", lim.Used())
	}
	lim.free(next)
	if lim.Used() != 0 {
		t.Errorf("Used() = %d after free, want 0", lim.Used())
	}
}

func TestUntrackedAllocRoundTrip(t *testing.T) {
	Setup()
	buf := Alloc(4)
	if len(buf) != 4 {
		t.Fatalf("Alloc(4) returned %d words", len(buf))
	}
	buf[3] = 9
	buf = Realloc(buf, 8)
	if len(buf) != 8 || buf[3] != 9 {
		t.Fatalf("Realloc lost contents: %v", buf)
	}
	Free(buf)
	Free(nil) // no-op
}
