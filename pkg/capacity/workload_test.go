package capacity_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/capacity-planner/pkg/capacity"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
)

var _ = Describe("AggregateWorkload", func() {
	var (
		fleet    capacity.FleetDemand
		overhead capacity.OverheadConfig
	)

	BeforeEach(func() {
		fleet = referenceFleet()
		overhead = capacity.DefaultOverheads()
	})

	// Given the reference fleet
	// When we project demand over the planning horizon
	// Then compute/memory carry virtualization overhead and storage the
	// growth and overhead multipliers
	It("should project the reference fleet demand", func() {
		demand, err := capacity.AggregateWorkload(fleet, overhead)
		Expect(err).NotTo(HaveOccurred())

		Expect(demand.VCPUs).To(Equal(311))
		Expect(demand.MemoryGiB).To(BeNumerically("~", 1017.859375, 1e-9))
		Expect(demand.StorageGiB).To(BeNumerically("~", 2300, 1e-6))
		Expect(demand.VMCount).To(Equal(40))
	})

	It("should round vCPU demand up to the next whole vCPU", func() {
		fleet.VCPUs = 10
		fleet.VMCount = 3

		demand, err := capacity.AggregateWorkload(fleet, overhead)
		Expect(err).NotTo(HaveOccurred())

		// 10 + 3*0.2 + 10*0.01 = 10.7 -> 11
		Expect(demand.VCPUs).To(Equal(11))
	})

	// Growth identity: zero growth leaves storage demand exactly at
	// base * overhead multiplier regardless of the horizon length.
	It("should apply no growth drift with a zero growth rate", func() {
		fleet.GrowthRate = 0
		fleet.HorizonYears = 25

		demand, err := capacity.AggregateWorkload(fleet, overhead)
		Expect(err).NotTo(HaveOccurred())

		Expect(demand.StorageGiB).To(Equal(fleet.StorageGiB * (1 + fleet.StorageOverheadFraction)))
	})

	It("should apply no growth with a zero-year horizon", func() {
		fleet.GrowthRate = 0.2
		fleet.HorizonYears = 0

		demand, err := capacity.AggregateWorkload(fleet, overhead)
		Expect(err).NotTo(HaveOccurred())

		Expect(demand.StorageGiB).To(Equal(fleet.StorageGiB * (1 + fleet.StorageOverheadFraction)))
	})

	It("should compound growth over the horizon", func() {
		fleet.StorageGiB = 1000
		fleet.StorageOverheadFraction = 0
		fleet.GrowthRate = 0.1
		fleet.HorizonYears = 2

		demand, err := capacity.AggregateWorkload(fleet, overhead)
		Expect(err).NotTo(HaveOccurred())

		Expect(demand.StorageGiB).To(BeNumerically("~", 1210, 1e-6))
	})

	// Zero-VM boundary: an empty fleet demands nothing.
	It("should yield zero demand for an empty fleet", func() {
		demand, err := capacity.AggregateWorkload(capacity.FleetDemand{}, overhead)
		Expect(err).NotTo(HaveOccurred())

		Expect(demand.VCPUs).To(BeZero())
		Expect(demand.MemoryGiB).To(BeZero())
		Expect(demand.StorageGiB).To(BeZero())
	})

	It("should reject negative fleet totals", func() {
		fleet.VCPUs = -1

		_, err := capacity.AggregateWorkload(fleet, overhead)
		Expect(srvErrors.IsInvalidConfigurationError(err)).To(BeTrue())
	})
})
