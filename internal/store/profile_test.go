package store_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/capacity-planner/internal/models"
	"github.com/kubev2v/capacity-planner/internal/store"
	"github.com/kubev2v/capacity-planner/internal/store/migrations"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
)

var _ = Describe("ProfileStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("List", func() {
		// Given the seeded catalog
		// When we list with the default sort
		// Then all seeded profiles should come back in name order
		It("should list the seeded catalog sorted by name", func() {
			profiles, err := s.Profile().List(ctx, store.WithDefaultSort())
			Expect(err).NotTo(HaveOccurred())
			Expect(profiles).To(HaveLen(4))
			Expect(profiles[0].Name).To(Equal("c5-metal"))
			Expect(profiles[3].Name).To(Equal("r6-metal"))
		})

		It("should filter by local storage", func() {
			profiles, err := s.Profile().List(ctx, store.WithLocalStorage(), store.WithDefaultSort())
			Expect(err).NotTo(HaveOccurred())
			for _, p := range profiles {
				Expect(p.StorageDevices).To(BeNumerically(">", 0))
			}
			Expect(profiles).To(HaveLen(3))
		})

		It("should filter by minimum memory", func() {
			profiles, err := s.Profile().List(ctx, store.ByMinMemory(512), store.WithDefaultSort())
			Expect(err).NotTo(HaveOccurred())
			Expect(profiles).To(HaveLen(2))
			for _, p := range profiles {
				Expect(p.MemoryGiB).To(BeNumerically(">=", 512))
			}
		})

		It("should apply limit and offset", func() {
			profiles, err := s.Profile().List(ctx, store.WithDefaultSort(), store.WithLimit(2), store.WithOffset(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(profiles).To(HaveLen(2))
			Expect(profiles[0].Name).To(Equal("i4-metal"))
		})
	})

	Describe("Get", func() {
		It("should retrieve a seeded profile with its hardware figures", func() {
			p, err := s.Profile().Get(ctx, "m6-metal")
			Expect(err).NotTo(HaveOccurred())
			Expect(p.PhysicalCores).To(Equal(32))
			Expect(p.Threads).To(Equal(64))
			Expect(p.MemoryGiB).To(Equal(256.0))
			Expect(p.StorageGiB()).To(Equal(3200.0))
			Expect(p.Supported).To(BeTrue())
		})

		// Given a name absent from the catalog
		// When we get it
		// Then a ResourceNotFoundError should be returned
		It("should return ResourceNotFoundError for an unknown profile", func() {
			_, err := s.Profile().Get(ctx, "does-not-exist")
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	Describe("Save", func() {
		It("should create a new catalog entry", func() {
			p := &models.HardwareProfile{
				Name:              "edge-box",
				Manufacturer:      "generic",
				PhysicalCores:     16,
				Threads:           32,
				MemoryGiB:         128,
				StorageDevices:    2,
				DeviceCapacityGiB: 960,
				Supported:         true,
			}
			Expect(s.Profile().Save(ctx, p)).To(Succeed())

			saved, err := s.Profile().Get(ctx, "edge-box")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.Threads).To(Equal(32))
			Expect(saved.CreatedAt).NotTo(BeZero())
		})

		It("should update an existing entry on conflict", func() {
			p, err := s.Profile().Get(ctx, "m6-metal")
			Expect(err).NotTo(HaveOccurred())

			p.Supported = false
			Expect(s.Profile().Save(ctx, p)).To(Succeed())

			saved, err := s.Profile().Get(ctx, "m6-metal")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.Supported).To(BeFalse())

			profiles, err := s.Profile().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(profiles).To(HaveLen(4))
		})
	})

	Describe("Delete", func() {
		It("should remove a profile", func() {
			Expect(s.Profile().Delete(ctx, "c5-metal")).To(Succeed())

			_, err := s.Profile().Get(ctx, "c5-metal")
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should return ResourceNotFoundError for an unknown profile", func() {
			err := s.Profile().Delete(ctx, "does-not-exist")
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})
})
