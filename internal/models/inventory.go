package models

import (
	"time"

	"github.com/kubev2v/capacity-planner/pkg/capacity"
)

// InventorySource records how the fleet snapshot was produced.
type InventorySource string

const (
	InventorySourceManual  InventorySource = "manual"
	InventorySourceRVTools InventorySource = "rvtools"
	InventorySourceVCenter InventorySource = "vcenter"
)

// FleetSummary is the aggregate demand of the VM fleet, after upstream
// inclusion/exclusion rules. Per-VM identity never reaches the planner;
// only these totals do. Storage totals are kept per metric so the operator
// can switch metrics without re-collecting.
type FleetSummary struct {
	VMCount   int
	VCPUs     float64
	MemoryGiB float64

	ProvisionedStorageGiB float64
	UsedStorageGiB        float64
	RawDiskStorageGiB     float64

	Source InventorySource

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StorageFor returns the storage total for the selected metric.
func (f FleetSummary) StorageFor(metric capacity.StorageMetric) float64 {
	switch metric {
	case capacity.StorageMetricUsed:
		return f.UsedStorageGiB
	case capacity.StorageMetricRawDisk:
		return f.RawDiskStorageGiB
	default:
		return f.ProvisionedStorageGiB
	}
}
