package v1

import (
	"github.com/kubev2v/capacity-planner/internal/models"
	"github.com/kubev2v/capacity-planner/pkg/capacity"
)

// NewHardwareProfile converts a catalog record to its API shape.
func NewHardwareProfile(p models.HardwareProfile) HardwareProfile {
	return HardwareProfile{
		Name:              p.Name,
		Manufacturer:      p.Manufacturer,
		PhysicalCores:     p.PhysicalCores,
		Threads:           p.Threads,
		MemoryGiB:         p.MemoryGiB,
		StorageDevices:    p.StorageDevices,
		DeviceCapacityGiB: p.DeviceCapacityGiB,
		StorageGiB:        p.StorageGiB(),
		Supported:         p.Supported,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// NewProfileList wraps catalog records in the list envelope.
func NewProfileList(profiles []models.HardwareProfile) ProfileList {
	out := ProfileList{Profiles: make([]HardwareProfile, 0, len(profiles))}
	for _, p := range profiles {
		out.Profiles = append(out.Profiles, NewHardwareProfile(p))
	}
	out.Total = len(out.Profiles)
	return out
}

// ToModel converts a profile request to a catalog record. Supported
// defaults to true when omitted.
func (r ProfileRequest) ToModel() *models.HardwareProfile {
	supported := true
	if r.Supported != nil {
		supported = *r.Supported
	}
	return &models.HardwareProfile{
		Name:              r.Name,
		Manufacturer:      r.Manufacturer,
		PhysicalCores:     r.PhysicalCores,
		Threads:           r.Threads,
		MemoryGiB:         r.MemoryGiB,
		StorageDevices:    r.StorageDevices,
		DeviceCapacityGiB: r.DeviceCapacityGiB,
		Supported:         supported,
	}
}

// NewFleetSummary converts the stored fleet summary to its API shape.
func NewFleetSummary(f models.FleetSummary) FleetSummary {
	return FleetSummary{
		VMCount:               f.VMCount,
		VCPUs:                 f.VCPUs,
		MemoryGiB:             f.MemoryGiB,
		ProvisionedStorageGiB: f.ProvisionedStorageGiB,
		UsedStorageGiB:        f.UsedStorageGiB,
		RawDiskStorageGiB:     f.RawDiskStorageGiB,
		Source:                string(f.Source),
		UpdatedAt:             f.UpdatedAt,
	}
}

// ToModel converts a manual inventory update to the stored fleet shape.
func (r InventoryUpdateRequest) ToModel() *models.FleetSummary {
	return &models.FleetSummary{
		VMCount:               r.VMCount,
		VCPUs:                 r.VCPUs,
		MemoryGiB:             r.MemoryGiB,
		ProvisionedStorageGiB: r.ProvisionedStorageGiB,
		UsedStorageGiB:        r.UsedStorageGiB,
		RawDiskStorageGiB:     r.RawDiskStorageGiB,
	}
}

// NewCollectorStatus converts the collector state to its API shape.
func NewCollectorStatus(status models.CollectorStatus) CollectorStatus {
	c := CollectorStatus{
		Status:         string(status.State),
		HasCredentials: status.HasCredentials,
	}
	if status.Error != "" {
		e := status.Error
		c.Error = &e
	}
	return c
}

// ToModel resolves the request settings against the planner defaults.
func (s PlanSettings) ToModel() models.PlanSettings {
	settings := models.DefaultPlanSettings()

	if s.CpuOvercommit != nil {
		settings.Overcommit.CPURatio = *s.CpuOvercommit
	}
	if s.MemoryOvercommit != nil {
		settings.Overcommit.MemoryRatio = *s.MemoryOvercommit
	}
	if s.Hyperthreading != nil {
		settings.Overcommit.Hyperthreading = *s.Hyperthreading
	}
	if s.HyperthreadingRatio != nil {
		settings.Overcommit.HyperthreadingRatio = *s.HyperthreadingRatio
	}
	if s.ReplicaFactor != nil {
		settings.Storage.ReplicaFactor = *s.ReplicaFactor
	}
	if s.OperationalFraction != nil {
		settings.Storage.OperationalFraction = *s.OperationalFraction
	}
	if s.MetadataFraction != nil {
		settings.Storage.MetadataFraction = *s.MetadataFraction
	}
	if s.NodeFailures != nil {
		settings.Redundancy.NodeFailures = *s.NodeFailures
	}
	if s.EvictionThreshold != nil {
		settings.Redundancy.EvictionThreshold = *s.EvictionThreshold
	}
	if s.StorageMetric != nil {
		settings.StorageMetric = capacity.StorageMetric(*s.StorageMetric)
	}
	if s.GrowthRate != nil {
		settings.GrowthRate = *s.GrowthRate
	}
	if s.HorizonYears != nil {
		settings.HorizonYears = *s.HorizonYears
	}
	if s.StorageOverheadFraction != nil {
		settings.StorageOverheadFraction = *s.StorageOverheadFraction
	}

	return settings
}

// NewPlan converts a persisted plan record to its API shape.
func NewPlan(record models.PlanRecord) Plan {
	plan := Plan{
		Id: record.ID.String(),
		Settings: ResolvedSettings{
			CpuOvercommit:           record.Settings.Overcommit.CPURatio,
			MemoryOvercommit:        record.Settings.Overcommit.MemoryRatio,
			Hyperthreading:          record.Settings.Overcommit.Hyperthreading,
			HyperthreadingRatio:     record.Settings.Overcommit.HyperthreadingRatio,
			ReplicaFactor:           record.Settings.Storage.ReplicaFactor,
			OperationalFraction:     record.Settings.Storage.OperationalFraction,
			MetadataFraction:        record.Settings.Storage.MetadataFraction,
			NodeFailures:            record.Settings.Redundancy.NodeFailures,
			EvictionThreshold:       record.Settings.Redundancy.EvictionThreshold,
			StorageMetric:           string(record.Settings.StorageMetric),
			GrowthRate:              record.Settings.GrowthRate,
			HorizonYears:            record.Settings.HorizonYears,
			StorageOverheadFraction: record.Settings.StorageOverheadFraction,
		},
		Fleet: FleetDemand{
			VMCount:                 record.Fleet.VMCount,
			VCPUs:                   record.Fleet.VCPUs,
			MemoryGiB:               record.Fleet.MemoryGiB,
			StorageGiB:              record.Fleet.StorageGiB,
			GrowthRate:              record.Fleet.GrowthRate,
			HorizonYears:            record.Fleet.HorizonYears,
			StorageOverheadFraction: record.Fleet.StorageOverheadFraction,
		},
		Candidates: make([]Candidate, 0, len(record.Candidates)),
		CreatedAt:  record.CreatedAt,
	}

	for _, c := range record.Candidates {
		plan.Candidates = append(plan.Candidates, newCandidate(c))
	}
	return plan
}

// NewPlanList wraps plan records in the list envelope.
func NewPlanList(records []models.PlanRecord) PlanList {
	out := PlanList{Plans: make([]Plan, 0, len(records))}
	for _, record := range records {
		out.Plans = append(out.Plans, NewPlan(record))
	}
	out.Total = len(out.Plans)
	return out
}

func newCandidate(c models.Candidate) Candidate {
	result := c.Result
	return Candidate{
		Profile:          c.Profile,
		TotalNodes:       c.TotalNodes,
		LimitingResource: string(c.LimitingResource),
		AllPass:          c.AllPass,
		NodeCapacity: NodeCapacity{
			VCPUs:               result.Capacity.VCPUs,
			MemoryGiB:           result.Capacity.MemoryGiB,
			MaxUsableStorageGiB: result.Capacity.MaxUsableStorageGiB,
			UsableStorageGiB:    result.Capacity.UsableStorageGiB,
		},
		Demand: WorkloadDemand{
			VCPUs:      result.Demand.VCPUs,
			MemoryGiB:  result.Demand.MemoryGiB,
			StorageGiB: result.Demand.StorageGiB,
			VMCount:    result.Demand.VMCount,
		},
		MinSurviving: result.Requirements.MinSurvivingNodes,
		Healthy:      newStateCheck(result.Validation.Healthy),
		Degraded:     newStateCheck(result.Validation.Degraded),
		QuorumPasses: result.Validation.QuorumPasses,
	}
}

func newStateCheck(s capacity.StateCheck) StateCheck {
	return StateCheck{
		SurvivingNodes: s.SurvivingNodes,
		CPU:            newResourceCheck(s.CPU),
		Memory:         newResourceCheck(s.Memory),
		Storage:        newResourceCheck(s.Storage),
	}
}

func newResourceCheck(r capacity.ResourceCheck) ResourceCheck {
	return ResourceCheck{
		UtilizationPercent: r.UtilizationPercent,
		ThresholdPercent:   r.ThresholdPercent,
		Passes:             r.Passes,
		Exempt:             r.Exempt,
	}
}
