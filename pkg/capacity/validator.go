package capacity

import (
	"fmt"
	"math"

	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
)

// ValidateRedundancy re-evaluates per-node utilization for the healthy
// cluster and for the cluster with the configured number of nodes failed,
// and reports pass/fail per resource plus the quorum check.
//
// A failing check is a normal, reportable outcome. Errors are reserved for
// inconsistent inputs: a total node count below the failure count, or a
// resource with demand but no per-node capacity outside the
// external-storage exemption.
func ValidateRedundancy(req NodeRequirements, cap NodeCapacity, redundancy RedundancyConfig, storage StorageConfig) (*ValidationResult, error) {
	if err := redundancy.Validate(); err != nil {
		return nil, err
	}
	if err := storage.Validate(); err != nil {
		return nil, err
	}
	if req.TotalNodes < redundancy.NodeFailures {
		return nil, srvErrors.NewInvalidConfigurationError("requirements.totalNodes",
			fmt.Sprintf("total node count %d is below the node failure count %d", req.TotalNodes, redundancy.NodeFailures))
	}
	if cap.VCPUs <= 0 && req.Demand.VCPUs > 0 {
		return nil, srvErrors.NewInvalidConfigurationError("capacity.vcpus",
			"node has no vCPU capacity but the workload demands vCPUs")
	}
	if cap.MemoryGiB <= 0 && req.Demand.MemoryGiB > 0 {
		return nil, srvErrors.NewInvalidConfigurationError("capacity.memoryGiB",
			"node has no memory capacity but the workload demands memory")
	}

	healthy := stateCheck(req, cap, redundancy, storage, req.TotalNodes)
	degraded := stateCheck(req, cap, redundancy, storage, req.TotalNodes-redundancy.NodeFailures)

	quorum := degraded.SurvivingNodes >= MinQuorumNodes

	allPass := quorum
	for _, check := range []ResourceCheck{
		healthy.CPU, healthy.Memory, healthy.Storage,
		degraded.CPU, degraded.Memory, degraded.Storage,
	} {
		allPass = allPass && check.Passes
	}

	return &ValidationResult{
		Healthy:      healthy,
		Degraded:     degraded,
		QuorumPasses: quorum,
		AllPass:      allPass,
	}, nil
}

// stateCheck computes per-resource utilization with the given number of
// nodes carrying the full demand. Utilization is measured against raw
// per-node capacity (for storage, the ceiling before the operational
// target) so the comparison against the threshold percentage is meaningful.
func stateCheck(req NodeRequirements, cap NodeCapacity, redundancy RedundancyConfig, storage StorageConfig, nodes int) StateCheck {
	if nodes < 0 {
		nodes = 0
	}

	evictionPct := redundancy.EvictionThreshold * 100
	operationalPct := storage.OperationalFraction * 100

	check := StateCheck{SurvivingNodes: nodes}
	check.CPU = resourceCheck(float64(req.Demand.VCPUs), float64(cap.VCPUs), nodes, evictionPct, false)
	check.Memory = resourceCheck(req.Demand.MemoryGiB, cap.MemoryGiB, nodes, evictionPct, false)
	check.Storage = resourceCheck(req.Demand.StorageGiB, cap.MaxUsableStorageGiB, nodes, operationalPct, cap.MaxUsableStorageGiB <= 0)

	return check
}

// resourceCheck computes one utilization figure. With no surviving nodes
// and non-zero demand the utilization is infinite and the check fails.
func resourceCheck(demand, perNode float64, nodes int, thresholdPct float64, exempt bool) ResourceCheck {
	if exempt {
		return ResourceCheck{ThresholdPercent: thresholdPct, Passes: true, Exempt: true}
	}

	var utilization float64
	switch {
	case demand <= 0:
		utilization = 0
	case nodes == 0 || perNode <= 0:
		utilization = math.Inf(1)
	default:
		utilization = demand / float64(nodes) / perNode * 100
	}

	return ResourceCheck{
		UtilizationPercent: utilization,
		ThresholdPercent:   thresholdPct,
		Passes:             utilization <= thresholdPct,
	}
}
