package services_test

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/capacity-planner/internal/models"
	"github.com/kubev2v/capacity-planner/internal/services"
	"github.com/kubev2v/capacity-planner/internal/store"
	"github.com/kubev2v/capacity-planner/internal/store/migrations"
	"github.com/kubev2v/capacity-planner/pkg/capacity"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
	"github.com/kubev2v/capacity-planner/pkg/scheduler"
)

var _ = Describe("PlannerService", func() {
	var (
		ctx   context.Context
		db    *sql.DB
		st    *store.Store
		sched *scheduler.Scheduler
		srv   *services.PlannerService
	)

	settings := models.PlanSettings{
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

	saveFleet := func() {
		fleet := &models.FleetSummary{
			VMCount:               40,
			VCPUs:                 300,
			MemoryGiB:             1000,
			ProvisionedStorageGiB: 2000,
			UsedStorageGiB:        1200,
			RawDiskStorageGiB:     2100,
			Source:                models.InventorySourceManual,
		}
		Expect(st.Inventory().Save(ctx, fleet)).To(Succeed())
	}

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		st = store.NewStore(db)
		sched = scheduler.NewScheduler(4)
		srv = services.NewPlannerService(sched, st)
	})

	AfterEach(func() {
		if sched != nil {
			sched.Close()
		}
		if db != nil {
			db.Close()
		}
	})

	Describe("CreatePlan", func() {
		// Given a stored fleet and the seeded catalog
		// When we create a plan without naming profiles
		// Then every supported profile is evaluated and the plan is persisted
		It("should evaluate all supported profiles", func() {
			saveFleet()

			plan, err := srv.CreatePlan(ctx, settings, nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(plan.ID).NotTo(Equal(uuid.Nil))
			Expect(plan.Candidates).To(HaveLen(4))
			Expect(plan.CreatedAt).NotTo(BeZero())

			persisted, err := srv.GetPlan(ctx, plan.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(persisted.Candidates).To(HaveLen(4))
		})

		It("should compute the reference profile sizing", func() {
			saveFleet()

			plan, err := srv.CreatePlan(ctx, settings, []string{"m6-metal"})
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Candidates).To(HaveLen(1))

			candidate := plan.Candidates[0]
			Expect(candidate.Profile).To(Equal("m6-metal"))
			Expect(candidate.TotalNodes).To(Equal(8))
			Expect(candidate.LimitingResource).To(Equal(capacity.ResourceMemory))
			Expect(candidate.AllPass).To(BeTrue())
			Expect(candidate.Result.Capacity.VCPUs).To(Equal(112))
		})

		It("should rank candidates by total node count", func() {
			saveFleet()

			plan, err := srv.CreatePlan(ctx, settings, nil)
			Expect(err).NotTo(HaveOccurred())

			for i := 1; i < len(plan.Candidates); i++ {
				prev, cur := plan.Candidates[i-1], plan.Candidates[i]
				if prev.AllPass == cur.AllPass {
					Expect(prev.TotalNodes).To(BeNumerically("<=", cur.TotalNodes))
				}
			}
		})

		It("should return ResourceNotFoundError when no fleet exists", func() {
			_, err := srv.CreatePlan(ctx, settings, nil)
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should return ResourceNotFoundError for an unknown profile", func() {
			saveFleet()

			_, err := srv.CreatePlan(ctx, settings, []string{"no-such-box"})
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		// Given invalid settings
		// When we create a plan
		// Then the engine rejects them with InvalidConfigurationError
		It("should reject invalid settings", func() {
			saveFleet()

			bad := settings
			bad.Overcommit.CPURatio = 0.5
			_, err := srv.CreatePlan(ctx, bad, []string{"m6-metal"})
			Expect(srvErrors.IsInvalidConfigurationError(err)).To(BeTrue())

			plans, err := srv.ListPlans(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(plans).To(BeEmpty())
		})

		It("should use the storage metric selected in the settings", func() {
			saveFleet()

			used := settings
			used.StorageMetric = capacity.StorageMetricUsed
			plan, err := srv.CreatePlan(ctx, used, []string{"m6-metal"})
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Fleet.StorageGiB).To(Equal(1200.0))
		})
	})

	Describe("ListPlans and DeletePlan", func() {
		It("should list and delete persisted plans", func() {
			saveFleet()

			plan, err := srv.CreatePlan(ctx, settings, []string{"m6-metal"})
			Expect(err).NotTo(HaveOccurred())

			plans, err := srv.ListPlans(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(plans).To(HaveLen(1))

			Expect(srv.DeletePlan(ctx, plan.ID)).To(Succeed())

			_, err = srv.GetPlan(ctx, plan.ID)
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})
})
