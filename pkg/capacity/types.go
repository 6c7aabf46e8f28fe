package capacity

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
)

// MinQuorumNodes is the minimum number of surviving nodes required for the
// replicated storage system to keep quorum, independent of workload size.
const MinQuorumNodes = 3

// Resource identifies one of the three planning dimensions.
type Resource string

const (
	ResourceCPU     Resource = "cpu"
	ResourceMemory  Resource = "memory"
	ResourceStorage Resource = "storage"
	// ResourceNone is reported as the limiting factor when the fleet has no
	// demand at all and only the quorum floor sizes the cluster.
	ResourceNone Resource = "none"
)

// StorageMetric selects which per-VM disk figure the fleet demand is built
// from.
type StorageMetric string

const (
	// StorageMetricProvisioned uses the provisioned virtual disk capacity.
	StorageMetricProvisioned StorageMetric = "provisioned"
	// StorageMetricUsed uses the actively consumed disk space.
	StorageMetricUsed StorageMetric = "used"
	// StorageMetricRawDisk uses the raw on-datastore disk footprint.
	StorageMetricRawDisk StorageMetric = "raw-disk"
)

// HardwareProfile describes a candidate physical node type. Profiles come
// from an external catalog; the engine is agnostic to sourcing and pricing.
type HardwareProfile struct {
	Name string

	PhysicalCores int `validate:"gte=0"`
	// Threads is the schedulable thread count after hyperthreading.
	Threads   int     `validate:"gte=0"`
	MemoryGiB float64 `validate:"gte=0"`

	// Local high-speed storage devices consumed by the software-defined
	// storage system. A profile with zero local storage is valid and means
	// storage is provided externally.
	StorageDevices    int     `validate:"gte=0"`
	DeviceCapacityGiB float64 `validate:"gte=0"`
	StorageGiB        float64 `validate:"gte=0"`

	// Supported marks the profile as eligible for the container
	// virtualization target.
	Supported bool
}

// Validate checks the profile invariants.
func (p HardwareProfile) Validate() error {
	if err := validateStruct("profile", p); err != nil {
		return err
	}
	if p.Threads < p.PhysicalCores {
		return srvErrors.NewInvalidConfigurationError("profile.threads",
			fmt.Sprintf("thread count %d must be >= physical core count %d", p.Threads, p.PhysicalCores))
	}
	return nil
}

// OvercommitConfig holds operator-chosen compute and memory overcommit
// ratios. Ratios below 1.0 are rejected: undercommitting through this knob
// would hide a sizing mistake.
type OvercommitConfig struct {
	CPURatio    float64 `validate:"gte=1"`
	MemoryRatio float64 `validate:"gte=1"`

	Hyperthreading bool
	// HyperthreadingRatio is the effective-core multiplier applied when
	// hyperthreading is enabled.
	HyperthreadingRatio float64 `validate:"gte=0"`
}

func (c OvercommitConfig) Validate() error {
	if err := validateStruct("overcommit", c); err != nil {
		return err
	}
	if c.Hyperthreading && c.HyperthreadingRatio <= 0 {
		return srvErrors.NewInvalidConfigurationError("overcommit.hyperthreadingRatio",
			"must be > 0 when hyperthreading is enabled")
	}
	return nil
}

// StorageConfig holds the replicated-storage tunables.
type StorageConfig struct {
	// ReplicaFactor is the number of copies kept of each data block.
	ReplicaFactor int `validate:"oneof=2 3"`
	// OperationalFraction is the target ceiling the storage system stays
	// under to leave room for rebalancing.
	OperationalFraction float64 `validate:"gt=0,lte=1"`
	// MetadataFraction is the storage-system bookkeeping cost.
	MetadataFraction float64 `validate:"gte=0,lt=1"`
}

func (c StorageConfig) Validate() error {
	return validateStruct("storage", c)
}

// RedundancyConfig holds the failure-tolerance requirements.
type RedundancyConfig struct {
	// NodeFailures is the number of simultaneous node losses the cluster
	// must tolerate.
	NodeFailures int `validate:"gte=0"`
	// EvictionThreshold is the compute/memory utilization ceiling above
	// which the orchestration layer relocates workloads off a node.
	EvictionThreshold float64 `validate:"gt=0,lte=1"`
}

func (c RedundancyConfig) Validate() error {
	return validateStruct("redundancy", c)
}

// ReservationConfig models per-node resources withheld from workloads:
// a fixed system-process reservation plus a storage-system reservation that
// grows with the local device count. Reservations are subtracted before
// overcommit is applied, since infrastructure processes do not benefit from
// overcommit.
type ReservationConfig struct {
	SystemCPUCores  float64 `validate:"gte=0"`
	SystemMemoryGiB float64 `validate:"gte=0"`

	StorageCPUBase            float64 `validate:"gte=0"`
	StorageCPUPerDevice       float64 `validate:"gte=0"`
	StorageMemoryBaseGiB      float64 `validate:"gte=0"`
	StorageMemoryPerDeviceGiB float64 `validate:"gte=0"`
}

func (c ReservationConfig) Validate() error {
	return validateStruct("reservations", c)
}

// DefaultReservations returns the reservation model shipped with the
// planner: one core and 4 GiB for system processes, plus a storage-system
// footprint of 5 cores and 21 GiB base with 2 cores and 5 GiB per device.
func DefaultReservations() ReservationConfig {
	return ReservationConfig{
		SystemCPUCores:            1,
		SystemMemoryGiB:           4,
		StorageCPUBase:            5,
		StorageCPUPerDevice:       2,
		StorageMemoryBaseGiB:      21,
		StorageMemoryPerDeviceGiB: 5,
	}
}

// OverheadConfig models per-VM virtualization cost: a fixed cost per
// machine (emulation threads, device bookkeeping) plus a fraction
// proportional to guest size.
type OverheadConfig struct {
	CPUPerVM       float64 `validate:"gte=0"`
	CPUFraction    float64 `validate:"gte=0"`
	MemoryMiBPerVM float64 `validate:"gte=0"`
	MemoryFraction float64 `validate:"gte=0"`
}

func (c OverheadConfig) Validate() error {
	return validateStruct("overhead", c)
}

// DefaultOverheads returns the virtualization overhead coefficients shipped
// with the planner: 0.2 vCPU + 1% of guest vCPU, 150 MiB + 1.2% of guest
// memory per VM.
func DefaultOverheads() OverheadConfig {
	return OverheadConfig{
		CPUPerVM:       0.2,
		CPUFraction:    0.01,
		MemoryMiBPerVM: 150,
		MemoryFraction: 0.012,
	}
}

// FleetDemand is the aggregate demand of the VM fleet after upstream
// inclusion/exclusion rules, together with the growth and projection
// settings for the planning horizon. StorageGiB is the total for the
// operator-selected storage metric.
type FleetDemand struct {
	VMCount    int     `validate:"gte=0"`
	VCPUs      float64 `validate:"gte=0"`
	MemoryGiB  float64 `validate:"gte=0"`
	StorageGiB float64 `validate:"gte=0"`

	// GrowthRate is the annual storage growth rate (0.2 = 20%/year).
	GrowthRate   float64 `validate:"gte=0"`
	HorizonYears int     `validate:"gte=0"`
	// StorageOverheadFraction accounts for snapshots, clone scratch space
	// and live-migration buffers on top of the guest disks.
	StorageOverheadFraction float64 `validate:"gte=0"`
}

func (d FleetDemand) Validate() error {
	return validateStruct("fleet", d)
}

// NodeCapacity is the usable capacity of a single node of a given profile.
type NodeCapacity struct {
	VCPUs     int     `json:"vcpus"`
	MemoryGiB float64 `json:"memoryGiB"`
	// MaxUsableStorageGiB is the hard ceiling after replication and
	// metadata overhead.
	MaxUsableStorageGiB float64 `json:"maxUsableStorageGiB"`
	// UsableStorageGiB is MaxUsableStorageGiB discounted to the
	// operational-capacity target.
	UsableStorageGiB float64 `json:"usableStorageGiB"`
}

// ResourceNodes holds a per-resource node count. A zero value for a
// resource means it does not constrain the node count (external storage).
type ResourceNodes struct {
	CPU     int `json:"cpu"`
	Memory  int `json:"memory"`
	Storage int `json:"storage"`
}

// WorkloadDemand is the projected cluster-wide demand at the end of the
// planning horizon.
type WorkloadDemand struct {
	VCPUs      int     `json:"vcpus"`
	MemoryGiB  float64 `json:"memoryGiB"`
	StorageGiB float64 `json:"storageGiB"`
	VMCount    int     `json:"vmCount"`
}

// NodeRequirements is the solver output: how many nodes the demand needs.
type NodeRequirements struct {
	// Demand is the projected cluster-wide demand the counts were solved
	// for.
	Demand WorkloadDemand `json:"demand"`

	// Unconstrained are the per-resource counts at full node capacity,
	// ignoring redundancy and thresholds. Diagnostic only.
	Unconstrained ResourceNodes `json:"unconstrained"`
	// AtThreshold are the per-resource counts at the eviction threshold
	// (compute/memory) and operational target (storage); these drive the
	// surviving-node count.
	AtThreshold ResourceNodes `json:"atThreshold"`

	MinSurvivingNodes int      `json:"minSurvivingNodes"`
	TotalNodes        int      `json:"totalNodes"`
	LimitingResource  Resource `json:"limitingResource"`
}

// ResourceCheck is the utilization verdict for one resource in one cluster
// state.
type ResourceCheck struct {
	UtilizationPercent float64 `json:"utilizationPercent"`
	ThresholdPercent   float64 `json:"thresholdPercent"`
	Passes             bool    `json:"passes"`
	// Exempt marks the external-storage case where the check does not
	// apply and is treated as a pass.
	Exempt bool `json:"exempt,omitempty"`
}

// StateCheck holds the per-resource utilization for one cluster state.
type StateCheck struct {
	SurvivingNodes int           `json:"survivingNodes"`
	CPU            ResourceCheck `json:"cpu"`
	Memory         ResourceCheck `json:"memory"`
	Storage        ResourceCheck `json:"storage"`
}

// ValidationResult reports whether the sized cluster meets its thresholds
// both healthy and with the configured number of nodes failed. A failing
// validation is a normal outcome, not an error.
type ValidationResult struct {
	Healthy  StateCheck `json:"healthy"`
	Degraded StateCheck `json:"degraded"`

	QuorumPasses bool `json:"quorumPasses"`
	AllPass      bool `json:"allPass"`
}

var validate = validator.New()

// validateStruct maps the first validator tag violation to an
// InvalidConfigurationError carrying the offending field and constraint.
func validateStruct(prefix string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		reason := fmt.Sprintf("must satisfy %s", fe.Tag())
		if fe.Param() != "" {
			reason = fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param())
		}
		return srvErrors.NewInvalidConfigurationError(
			fmt.Sprintf("%s.%s", prefix, fe.Field()),
			fmt.Sprintf("%s, got %v", reason, fe.Value()),
		)
	}
	return err
}
