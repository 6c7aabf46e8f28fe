package capacity

// OverheadTotals is the additive virtualization cost for a fleet.
type OverheadTotals struct {
	VCPUs     float64 `json:"vcpus"`
	MemoryMiB float64 `json:"memoryMiB"`
}

// Overhead computes the additional compute and memory demand attributable
// to virtualization itself: a fixed cost per VM plus a fraction of the
// aggregate guest demand. Inputs are the fleet's VM count, total guest
// vCPUs, and total guest memory in MiB; all are non-negative by
// construction from upstream aggregation.
func Overhead(cfg OverheadConfig, vmCount int, vcpus, memoryMiB float64) (OverheadTotals, error) {
	if err := cfg.Validate(); err != nil {
		return OverheadTotals{}, err
	}

	n := float64(vmCount)
	return OverheadTotals{
		VCPUs:     n*cfg.CPUPerVM + vcpus*cfg.CPUFraction,
		MemoryMiB: n*cfg.MemoryMiBPerVM + memoryMiB*cfg.MemoryFraction,
	}, nil
}
