package capacity

import (
	"math"
)

const mibPerGiB = 1024

// AggregateWorkload projects the fleet demand to the end of the planning
// horizon: virtualization overhead on compute and memory, compound growth
// and virtualization overhead on storage.
//
// An empty fleet yields zero demand for every resource. Zero growth or a
// zero-year horizon leaves storage demand exactly at its base (no drift
// from floating-point exponentiation).
func AggregateWorkload(fleet FleetDemand, overhead OverheadConfig) (*WorkloadDemand, error) {
	if err := fleet.Validate(); err != nil {
		return nil, err
	}
	if err := overhead.Validate(); err != nil {
		return nil, err
	}

	if fleet.VMCount == 0 {
		return &WorkloadDemand{}, nil
	}

	extra, err := Overhead(overhead, fleet.VMCount, fleet.VCPUs, fleet.MemoryGiB*mibPerGiB)
	if err != nil {
		return nil, err
	}

	growth := 1.0
	if fleet.GrowthRate > 0 && fleet.HorizonYears > 0 {
		growth = math.Pow(1+fleet.GrowthRate, float64(fleet.HorizonYears))
	}

	return &WorkloadDemand{
		VCPUs:      int(math.Ceil(fleet.VCPUs + extra.VCPUs)),
		MemoryGiB:  fleet.MemoryGiB + extra.MemoryMiB/mibPerGiB,
		StorageGiB: fleet.StorageGiB * growth * (1 + fleet.StorageOverheadFraction),
		VMCount:    fleet.VMCount,
	}, nil
}
