package capacity

import (
	"math"
)

// NodeCapacityFor computes the usable capacity of a single node of the
// given profile.
//
// Reserved CPU and memory are subtracted before overcommit is applied.
// Storage goes through two stages: a hard ceiling from replication and
// metadata overhead, then the softer operational target the storage system
// recommends staying under. A profile without local storage yields zero
// usable storage, which downstream components interpret as "storage is not
// constrained by this node type".
func NodeCapacityFor(profile HardwareProfile, overcommit OvercommitConfig, storage StorageConfig, reserve ReservationConfig) (*NodeCapacity, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := overcommit.Validate(); err != nil {
		return nil, err
	}
	if err := storage.Validate(); err != nil {
		return nil, err
	}
	if err := reserve.Validate(); err != nil {
		return nil, err
	}

	reservedCPU := reserve.SystemCPUCores
	reservedMemory := reserve.SystemMemoryGiB
	if profile.StorageDevices > 0 {
		// The storage system only runs where it has local devices.
		reservedCPU += reserve.StorageCPUBase + reserve.StorageCPUPerDevice*float64(profile.StorageDevices)
		reservedMemory += reserve.StorageMemoryBaseGiB + reserve.StorageMemoryPerDeviceGiB*float64(profile.StorageDevices)
	}

	availableCores := math.Max(0, float64(profile.PhysicalCores)-reservedCPU)
	effectiveCores := availableCores
	if overcommit.Hyperthreading {
		effectiveCores = availableCores * overcommit.HyperthreadingRatio
	}

	availableMemory := math.Max(0, profile.MemoryGiB-reservedMemory)

	maxUsable := math.Floor(profile.StorageGiB * (1 / float64(storage.ReplicaFactor)) * (1 - storage.MetadataFraction))

	return &NodeCapacity{
		VCPUs:               int(math.Floor(effectiveCores * overcommit.CPURatio)),
		MemoryGiB:           math.Floor(availableMemory * overcommit.MemoryRatio),
		MaxUsableStorageGiB: maxUsable,
		UsableStorageGiB:    math.Floor(maxUsable * storage.OperationalFraction),
	}, nil
}
