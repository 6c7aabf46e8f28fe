package vsphere

import (
	"context"
	"fmt"

	"github.com/vmware/govmomi/find"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/types"

	"github.com/kubev2v/capacity-planner/internal/models"
)

const bytesPerGiB = 1024 * 1024 * 1024

// CollectFleet walks every datacenter and aggregates the VM fleet into a
// single summary. Templates are excluded; powered-off VMs count, since they
// still claim storage and come back eventually.
func (c *Client) CollectFleet(ctx context.Context) (*models.FleetSummary, error) {
	finder := find.NewFinder(c.client.Client, true)

	datacenters, err := finder.DatacenterList(ctx, "*")
	if err != nil {
		return nil, fmt.Errorf("listing datacenters: %w", err)
	}

	fleet := &models.FleetSummary{Source: models.InventorySourceVCenter}
	for _, dc := range datacenters {
		finder.SetDatacenter(dc)

		vms, err := finder.VirtualMachineList(ctx, "*")
		if err != nil {
			if _, ok := err.(*find.NotFoundError); ok {
				continue
			}
			return nil, fmt.Errorf("listing VMs in %s: %w", dc.Name(), err)
		}

		for _, vm := range vms {
			if err := c.accumulate(ctx, vm, fleet); err != nil {
				// Inaccessible or orphaned VMs are skipped, not fatal.
				c.logger.Warnw("skipping VM", "vm", vm.Name(), "error", err)
			}
		}
	}

	c.logger.Infow("fleet collection complete",
		"vm_count", fleet.VMCount,
		"vcpus", fleet.VCPUs,
		"memory_gib", fleet.MemoryGiB,
		"provisioned_gib", fleet.ProvisionedStorageGiB,
	)
	return fleet, nil
}

func (c *Client) accumulate(ctx context.Context, vm *object.VirtualMachine, fleet *models.FleetSummary) error {
	var vmMo mo.VirtualMachine
	if err := vm.Properties(ctx, vm.Reference(), []string{"summary", "config.hardware.device"}, &vmMo); err != nil {
		return err
	}

	if vmMo.Summary.Config.Template {
		return nil
	}

	fleet.VMCount++
	fleet.VCPUs += float64(vmMo.Summary.Config.NumCpu)
	fleet.MemoryGiB += float64(vmMo.Summary.Config.MemorySizeMB) / 1024

	committed := vmMo.Summary.Storage.Committed
	uncommitted := vmMo.Summary.Storage.Uncommitted
	fleet.UsedStorageGiB += float64(committed) / bytesPerGiB
	fleet.ProvisionedStorageGiB += float64(committed+uncommitted) / bytesPerGiB

	if vmMo.Config != nil {
		for _, device := range vmMo.Config.Hardware.Device {
			if disk, ok := device.(*types.VirtualDisk); ok {
				fleet.RawDiskStorageGiB += float64(disk.CapacityInBytes) / bytesPerGiB
			}
		}
	}

	return nil
}
