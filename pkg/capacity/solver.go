package capacity

import (
	"math"
)

// SolveNodeCount computes the minimum number of nodes such that after the
// configured number of failures, the survivors still carry the full
// projected demand without exceeding the eviction threshold
// (compute/memory) or the operational-capacity target (storage, already
// embedded in UsableStorageGiB).
//
// The surviving-node count has a hard floor of MinQuorumNodes regardless of
// workload size. A resource with zero per-node capacity does not constrain
// the count; this is how externally-provided storage is expressed.
func SolveNodeCount(cap NodeCapacity, demand WorkloadDemand, redundancy RedundancyConfig) (*NodeRequirements, error) {
	if err := redundancy.Validate(); err != nil {
		return nil, err
	}

	threshold := redundancy.EvictionThreshold
	atThreshold := ResourceNodes{
		CPU:     nodesFor(float64(demand.VCPUs), float64(cap.VCPUs)*threshold),
		Memory:  nodesFor(demand.MemoryGiB, cap.MemoryGiB*threshold),
		Storage: nodesFor(demand.StorageGiB, cap.UsableStorageGiB),
	}
	// Diagnostic counts at full capacity; for storage "full" means the
	// replication/metadata ceiling before the operational target.
	unconstrained := ResourceNodes{
		CPU:     nodesFor(float64(demand.VCPUs), float64(cap.VCPUs)),
		Memory:  nodesFor(demand.MemoryGiB, cap.MemoryGiB),
		Storage: nodesFor(demand.StorageGiB, cap.MaxUsableStorageGiB),
	}

	surviving := MinQuorumNodes
	for _, n := range []int{atThreshold.CPU, atThreshold.Memory, atThreshold.Storage} {
		if n > surviving {
			surviving = n
		}
	}

	return &NodeRequirements{
		Demand:            demand,
		Unconstrained:     unconstrained,
		AtThreshold:       atThreshold,
		MinSurvivingNodes: surviving,
		TotalNodes:        surviving + redundancy.NodeFailures,
		LimitingResource:  limitingResource(atThreshold),
	}, nil
}

// nodesFor returns the node count a single resource requires, or 0 when the
// per-node capacity is not positive (resource unconstrained by this node
// type).
func nodesFor(demand, perNode float64) int {
	if perNode <= 0 || demand <= 0 {
		return 0
	}
	return int(math.Ceil(demand / perNode))
}

// limitingResource picks the resource with the highest node count. Ties
// break in the order memory, storage, cpu: memory and storage are typically
// less elastic than CPU in this domain, so they are reported first. The
// numeric node count is identical regardless of tie-break order.
func limitingResource(counts ResourceNodes) Resource {
	max := counts.Memory
	limiting := ResourceMemory
	if counts.Storage > max {
		max = counts.Storage
		limiting = ResourceStorage
	}
	if counts.CPU > max {
		max = counts.CPU
		limiting = ResourceCPU
	}
	if max == 0 {
		return ResourceNone
	}
	return limiting
}
