// Package v1 defines the wire types of the planner's HTTP API.
package v1

import "time"

// Error is the uniform error envelope.
type Error struct {
	Error string `json:"error"`
}

// HardwareProfile is one catalog entry as exposed by the API.
type HardwareProfile struct {
	Name              string    `json:"name"`
	Manufacturer      string    `json:"manufacturer,omitempty"`
	PhysicalCores     int       `json:"physicalCores"`
	Threads           int       `json:"threads"`
	MemoryGiB         float64   `json:"memoryGiB"`
	StorageDevices    int       `json:"storageDevices"`
	DeviceCapacityGiB float64   `json:"deviceCapacityGiB"`
	StorageGiB        float64   `json:"storageGiB"`
	Supported         bool      `json:"supported"`
	CreatedAt         time.Time `json:"createdAt,omitempty"`
	UpdatedAt         time.Time `json:"updatedAt,omitempty"`
}

// ProfileList is the list envelope for the catalog.
type ProfileList struct {
	Profiles []HardwareProfile `json:"profiles"`
	Total    int               `json:"total"`
}

// ProfileRequest creates or replaces a catalog entry.
type ProfileRequest struct {
	Name              string  `json:"name" binding:"required"`
	Manufacturer      string  `json:"manufacturer"`
	PhysicalCores     int     `json:"physicalCores" binding:"gt=0"`
	Threads           int     `json:"threads" binding:"gt=0"`
	MemoryGiB         float64 `json:"memoryGiB" binding:"gt=0"`
	StorageDevices    int     `json:"storageDevices" binding:"gte=0"`
	DeviceCapacityGiB float64 `json:"deviceCapacityGiB" binding:"gte=0"`
	Supported         *bool   `json:"supported"`
}

// FleetSummary is the aggregate fleet demand.
type FleetSummary struct {
	VMCount               int       `json:"vmCount"`
	VCPUs                 float64   `json:"vCPUs"`
	MemoryGiB             float64   `json:"memoryGiB"`
	ProvisionedStorageGiB float64   `json:"provisionedStorageGiB"`
	UsedStorageGiB        float64   `json:"usedStorageGiB"`
	RawDiskStorageGiB     float64   `json:"rawDiskStorageGiB"`
	Source                string    `json:"source,omitempty"`
	UpdatedAt             time.Time `json:"updatedAt,omitempty"`
}

// InventoryUpdateRequest replaces the fleet summary with manual totals.
type InventoryUpdateRequest struct {
	VMCount               int     `json:"vmCount" binding:"gte=0"`
	VCPUs                 float64 `json:"vCPUs" binding:"gte=0"`
	MemoryGiB             float64 `json:"memoryGiB" binding:"gte=0"`
	ProvisionedStorageGiB float64 `json:"provisionedStorageGiB" binding:"gte=0"`
	UsedStorageGiB        float64 `json:"usedStorageGiB" binding:"gte=0"`
	RawDiskStorageGiB     float64 `json:"rawDiskStorageGiB" binding:"gte=0"`
}

// CollectorStatus reports the vCenter collection state machine.
type CollectorStatus struct {
	Status         string  `json:"status"`
	Error          *string `json:"error,omitempty"`
	HasCredentials bool    `json:"hasCredentials"`
}

// CollectorStartRequest starts a vCenter collection.
type CollectorStartRequest struct {
	Url      string `json:"url" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CredentialsRequest stores vCenter credentials without collecting.
type CredentialsRequest struct {
	Url      string `json:"url" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Credentials echoes the stored endpoint. The password never leaves the
// server.
type Credentials struct {
	Url      string `json:"url"`
	Username string `json:"username"`
}

// PlanSettings carries the operator tunables of one evaluation. Absent
// fields fall back to the planner defaults.
type PlanSettings struct {
	CpuOvercommit           *float64 `json:"cpuOvercommit" binding:"omitempty,gte=1"`
	MemoryOvercommit        *float64 `json:"memoryOvercommit" binding:"omitempty,gte=1"`
	Hyperthreading          *bool    `json:"hyperthreading"`
	HyperthreadingRatio     *float64 `json:"hyperthreadingRatio" binding:"omitempty,gt=0"`
	ReplicaFactor           *int     `json:"replicaFactor" binding:"omitempty,oneof=2 3"`
	OperationalFraction     *float64 `json:"operationalFraction" binding:"omitempty,gt=0,lte=1"`
	MetadataFraction        *float64 `json:"metadataFraction" binding:"omitempty,gte=0,lt=1"`
	NodeFailures            *int     `json:"nodeFailures" binding:"omitempty,gte=0"`
	EvictionThreshold       *float64 `json:"evictionThreshold" binding:"omitempty,gt=0,lte=1"`
	StorageMetric           *string  `json:"storageMetric" binding:"omitempty,oneof=provisioned used raw-disk"`
	GrowthRate              *float64 `json:"growthRate" binding:"omitempty,gte=0"`
	HorizonYears            *int     `json:"horizonYears" binding:"omitempty,gte=0"`
	StorageOverheadFraction *float64 `json:"storageOverheadFraction" binding:"omitempty,gte=0"`
}

// PlanCreateRequest evaluates the stored fleet against candidate profiles.
// An empty profile list means every supported catalog profile.
type PlanCreateRequest struct {
	Settings PlanSettings `json:"settings"`
	Profiles []string     `json:"profiles"`
}

// ResourceCheck is one per-resource utilization verdict.
type ResourceCheck struct {
	UtilizationPercent float64 `json:"utilizationPercent"`
	ThresholdPercent   float64 `json:"thresholdPercent"`
	Passes             bool    `json:"passes"`
	Exempt             bool    `json:"exempt"`
}

// StateCheck groups the resource checks of one cluster state.
type StateCheck struct {
	SurvivingNodes int           `json:"survivingNodes"`
	CPU            ResourceCheck `json:"cpu"`
	Memory         ResourceCheck `json:"memory"`
	Storage        ResourceCheck `json:"storage"`
}

// Candidate is the engine output for one hardware profile.
type Candidate struct {
	Profile          string         `json:"profile"`
	TotalNodes       int            `json:"totalNodes"`
	LimitingResource string         `json:"limitingResource"`
	AllPass          bool           `json:"allPass"`
	NodeCapacity     NodeCapacity   `json:"nodeCapacity"`
	Demand           WorkloadDemand `json:"demand"`
	MinSurviving     int            `json:"minSurvivingNodes"`
	Healthy          StateCheck     `json:"healthy"`
	Degraded         StateCheck     `json:"degraded"`
	QuorumPasses     bool           `json:"quorumPasses"`
}

// NodeCapacity is the usable capacity of one node.
type NodeCapacity struct {
	VCPUs               int     `json:"vcpus"`
	MemoryGiB           float64 `json:"memoryGiB"`
	MaxUsableStorageGiB float64 `json:"maxUsableStorageGiB"`
	UsableStorageGiB    float64 `json:"usableStorageGiB"`
}

// WorkloadDemand is the projected total demand the plan was sized for.
type WorkloadDemand struct {
	VCPUs      int     `json:"vcpus"`
	MemoryGiB  float64 `json:"memoryGiB"`
	StorageGiB float64 `json:"storageGiB"`
	VMCount    int     `json:"vmCount"`
}

// FleetDemand echoes the demand inputs a plan was evaluated with.
type FleetDemand struct {
	VMCount                 int     `json:"vmCount"`
	VCPUs                   float64 `json:"vCPUs"`
	MemoryGiB               float64 `json:"memoryGiB"`
	StorageGiB              float64 `json:"storageGiB"`
	GrowthRate              float64 `json:"growthRate"`
	HorizonYears            int     `json:"horizonYears"`
	StorageOverheadFraction float64 `json:"storageOverheadFraction"`
}

// ResolvedSettings echoes the tunables a plan was evaluated with, after
// defaults were applied.
type ResolvedSettings struct {
	CpuOvercommit           float64 `json:"cpuOvercommit"`
	MemoryOvercommit        float64 `json:"memoryOvercommit"`
	Hyperthreading          bool    `json:"hyperthreading"`
	HyperthreadingRatio     float64 `json:"hyperthreadingRatio"`
	ReplicaFactor           int     `json:"replicaFactor"`
	OperationalFraction     float64 `json:"operationalFraction"`
	MetadataFraction        float64 `json:"metadataFraction"`
	NodeFailures            int     `json:"nodeFailures"`
	EvictionThreshold       float64 `json:"evictionThreshold"`
	StorageMetric           string  `json:"storageMetric"`
	GrowthRate              float64 `json:"growthRate"`
	HorizonYears            int     `json:"horizonYears"`
	StorageOverheadFraction float64 `json:"storageOverheadFraction"`
}

// Plan is one persisted evaluation.
type Plan struct {
	Id         string           `json:"id"`
	Settings   ResolvedSettings `json:"settings"`
	Fleet      FleetDemand      `json:"fleet"`
	Candidates []Candidate      `json:"candidates"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// PlanList is the list envelope for plans.
type PlanList struct {
	Plans []Plan `json:"plans"`
	Total int    `json:"total"`
}
