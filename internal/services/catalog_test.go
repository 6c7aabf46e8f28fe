package services_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/capacity-planner/internal/models"
	"github.com/kubev2v/capacity-planner/internal/services"
	"github.com/kubev2v/capacity-planner/internal/store"
	"github.com/kubev2v/capacity-planner/internal/store/migrations"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
)

var _ = Describe("CatalogService", func() {
	var (
		ctx context.Context
		db  *sql.DB
		srv *services.CatalogService
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		srv = services.NewCatalogService(store.NewStore(db))
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	It("should list the seeded catalog", func() {
		profiles, err := srv.ListProfiles(ctx, store.WithDefaultSort())
		Expect(err).NotTo(HaveOccurred())
		Expect(profiles).To(HaveLen(4))
	})

	It("should save a valid profile", func() {
		p := &models.HardwareProfile{
			Name:          "dense-box",
			PhysicalCores: 64,
			Threads:       128,
			MemoryGiB:     512,
			Supported:     true,
		}
		Expect(srv.SaveProfile(ctx, p)).To(Succeed())

		saved, err := srv.GetProfile(ctx, "dense-box")
		Expect(err).NotTo(HaveOccurred())
		Expect(saved.Threads).To(Equal(128))
	})

	// Given a profile with fewer threads than physical cores
	// When we save it
	// Then the catalog rejects it with InvalidConfigurationError
	It("should reject an inconsistent profile", func() {
		p := &models.HardwareProfile{
			Name:          "impossible-box",
			PhysicalCores: 64,
			Threads:       32,
			MemoryGiB:     512,
		}
		err := srv.SaveProfile(ctx, p)
		Expect(srvErrors.IsInvalidConfigurationError(err)).To(BeTrue())

		_, err = srv.GetProfile(ctx, "impossible-box")
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})

	It("should delete a profile", func() {
		Expect(srv.DeleteProfile(ctx, "c5-metal")).To(Succeed())

		_, err := srv.GetProfile(ctx, "c5-metal")
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
	})
})
