// Package sim implements the synthetic call-center CSV dataset
// generator: a seeded random/time provider, the fixed 100-employee
// roster, seven dataset generators with per-dataset numeric invariants,
// the 5-minute file-naming rule, file storage, and the mutex-guarded
// service that orchestrates them.
//
// Reproducibility contract: every random draw and every timestamp flows
// through a single Provider, so a fixed seed and an injected clock make
// generated output byte-identical across runs.
package sim
