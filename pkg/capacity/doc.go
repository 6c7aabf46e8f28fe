// Package capacity implements the cluster capacity planning engine.
//
// Given the aggregate resource demand of a VM fleet, a candidate physical
// node hardware profile, and a set of operator-tunable ratios and
// failure-tolerance requirements, the engine computes how many nodes are
// required, which resource is the binding constraint, and whether the
// resulting cluster still meets its thresholds after the configured number
// of simultaneous node failures.
//
// The engine is a pure computation pipeline:
//
//	HardwareProfile + OvercommitConfig + StorageConfig ──▶ NodeCapacityFor ──▶ NodeCapacity
//	FleetDemand + OverheadConfig ──▶ AggregateWorkload ──▶ WorkloadDemand
//	NodeCapacity + WorkloadDemand + RedundancyConfig ──▶ SolveNodeCount ──▶ NodeRequirements
//	NodeRequirements + NodeCapacity + RedundancyConfig ──▶ ValidateRedundancy ──▶ ValidationResult
//
// Plan runs the whole pipeline and returns all four results in one value.
//
// Every function is deterministic, performs no I/O, and holds no state, so
// the package is safe to call concurrently with independent inputs (a batch
// comparison across candidate profiles runs one pipeline per goroutine).
//
// Rounding policy: capacity figures round down (never overstate what is
// available), requirement figures round up (never understate what is
// needed). No additional rounding happens at intermediate steps.
//
// Configuration is validated at each component's entry point. Out-of-range
// tunables are rejected with errors.InvalidConfigurationError, never
// clamped. Degenerate-but-valid inputs (zero VMs, zero local storage, zero
// demand) produce well-defined zero or "unconstrained" results.
package capacity
