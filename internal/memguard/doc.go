// Package memguard implements the temporary-allocation discipline for the
// digit kernel: process-wide allocator hooks, a per-operation registry of
// live scratch buffers, and a one-shot checkpoint that unwinds a guarded
// region when an allocation fails.
//
// The kernel's multi-step algorithms do not propagate allocation failure
// through their call chains. Instead, every allocation goes through a Guard;
// when the installed allocator refuses a request, the Guard releases every
// buffer it tracks and escapes to the Run call that established the
// checkpoint, which reports the failure exactly once. Each operation owns
// its Guard, so independent goroutines never share registries.
package memguard
