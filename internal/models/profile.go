package models

import (
	"time"

	"github.com/kubev2v/capacity-planner/pkg/capacity"
)

// HardwareProfile is a catalog record for a candidate physical node type.
type HardwareProfile struct {
	Name         string
	Manufacturer string

	PhysicalCores     int
	Threads           int
	MemoryGiB         float64
	StorageDevices    int
	DeviceCapacityGiB float64

	// Supported marks the profile as eligible for the container
	// virtualization target.
	Supported bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StorageGiB is the total raw local storage of the node.
func (p HardwareProfile) StorageGiB() float64 {
	return float64(p.StorageDevices) * p.DeviceCapacityGiB
}

// ToCapacity converts the catalog record into the engine's profile type.
func (p HardwareProfile) ToCapacity() capacity.HardwareProfile {
	return capacity.HardwareProfile{
		Name:              p.Name,
		PhysicalCores:     p.PhysicalCores,
		Threads:           p.Threads,
		MemoryGiB:         p.MemoryGiB,
		StorageDevices:    p.StorageDevices,
		DeviceCapacityGiB: p.DeviceCapacityGiB,
		StorageGiB:        p.StorageGiB(),
		Supported:         p.Supported,
	}
}
