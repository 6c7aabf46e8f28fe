package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/kubev2v/capacity-planner/pkg/capacity"
)

// PlanSettings are the operator tunables one plan was evaluated with.
type PlanSettings struct {
	Overcommit capacity.OvercommitConfig `json:"overcommit"`
	Storage    capacity.StorageConfig    `json:"storage"`
	Redundancy capacity.RedundancyConfig `json:"redundancy"`

	StorageMetric           capacity.StorageMetric `json:"storageMetric"`
	GrowthRate              float64                `json:"growthRate"`
	HorizonYears            int                    `json:"horizonYears"`
	StorageOverheadFraction float64                `json:"storageOverheadFraction"`
}

// DefaultPlanSettings returns the planner's reference configuration:
// 5:1 CPU overcommit, no memory overcommit, hyperthreading at x1.25,
// 3-way replication at a 75% operational ceiling with 15% metadata cost,
// two tolerated node failures under a 96% eviction threshold.
func DefaultPlanSettings() PlanSettings {
	return PlanSettings{
		Overcommit: capacity.OvercommitConfig{
			CPURatio:            5,
			MemoryRatio:         1,
			Hyperthreading:      true,
			HyperthreadingRatio: 1.25,
		},
		Storage: capacity.StorageConfig{
			ReplicaFactor:       3,
			OperationalFraction: 0.75,
			MetadataFraction:    0.15,
		},
		Redundancy: capacity.RedundancyConfig{
			NodeFailures:      2,
			EvictionThreshold: 0.96,
		},
		StorageMetric:           capacity.StorageMetricProvisioned,
		StorageOverheadFraction: 0.15,
	}
}

// Candidate is the engine output for one hardware profile, kept alongside
// the figures the ranking is driven by.
type Candidate struct {
	Profile          string            `json:"profile"`
	TotalNodes       int               `json:"totalNodes"`
	LimitingResource capacity.Resource `json:"limitingResource"`
	AllPass          bool              `json:"allPass"`
	Result           capacity.Plan     `json:"result"`
}

// PlanRecord is a persisted planning evaluation: the fleet and settings it
// ran with and the per-profile candidates, ordered by total node count.
type PlanRecord struct {
	ID         uuid.UUID
	Settings   PlanSettings
	Fleet      capacity.FleetDemand
	Candidates []Candidate
	CreatedAt  time.Time
}
