package config

import "runtime"

// Worker-count resolution chain (highest priority first):
//  1. CLI flag (--workers)
//  2. Environment variable (ZZCALC_WORKERS)
//  3. Hardware estimation (this file)

// ApplyAdaptiveWorkers fills in the batch worker count when it was left at
// its zero default, preserving any user-specified value.
func ApplyAdaptiveWorkers(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers()
	}
	return cfg
}

// EstimateOptimalWorkers provides a heuristic worker count without running
// benchmarks. Evaluations are CPU bound, so the count tracks the number of
// cores but leaves headroom for the session goroutines on large machines.
func EstimateOptimalWorkers() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 2:
		return numCPU
	case numCPU <= 16:
		return numCPU - 1
	default:
		return 16
	}
}
