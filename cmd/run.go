// Package cmd wires the planner's services into the run command.
package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kubev2v/capacity-planner/internal/config"
	"github.com/kubev2v/capacity-planner/internal/handlers"
	"github.com/kubev2v/capacity-planner/internal/server"
	"github.com/kubev2v/capacity-planner/internal/services"
	"github.com/kubev2v/capacity-planner/internal/store"
	"github.com/kubev2v/capacity-planner/internal/store/migrations"
	"github.com/kubev2v/capacity-planner/pkg/credentials"
	"github.com/kubev2v/capacity-planner/pkg/scheduler"
	"github.com/kubev2v/capacity-planner/pkg/vsphere"
)

const envPrefix = "PLANNER"

// NewRunCommand builds the run command. Flags overlay the defaults already
// present in cfg; environment variables with the PLANNER_ prefix fill the
// gaps between the two.
func NewRunCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the capacity planning service",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.AutomaticEnv()
			viper.SetEnvPrefix(envPrefix)
			viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			cobraflags.PresetRequiredFlags(envPrefix, make(map[*pflag.Flag]bool), cmd)

			if err := validateConfiguration(cfg); err != nil {
				return err
			}

			return runService(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.Server.HTTPPort, "server-http-port", cfg.Server.HTTPPort, "port the API listens on")
	flags.StringVar(&cfg.Server.StaticsFolder, "server-statics-folder", cfg.Server.StaticsFolder, "folder with the web console statics")
	flags.StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "server mode: dev or prod")
	flags.IntVar(&cfg.Planner.NumWorkers, "num-workers", cfg.Planner.NumWorkers, "number of scheduler workers")
	flags.StringVar(&cfg.Planner.DataFolder, "data-folder", cfg.Planner.DataFolder, "folder for planner state such as credentials")
	flags.StringVar(&cfg.Planner.DatabaseFilepath, "database-filepath", cfg.Planner.DatabaseFilepath, "path of the DuckDB database file")
	flags.BoolVar(&cfg.Auth.Enabled, "authentication-enabled", cfg.Auth.Enabled, "require bearer tokens on the API")
	flags.StringVar(&cfg.Auth.JWTFilePath, "authentication-jwt-filepath", cfg.Auth.JWTFilePath, "path of the RSA public key used to verify tokens")

	return cmd
}

func validateConfiguration(cfg *config.Configuration) error {
	switch cfg.Server.ServerMode {
	case server.DevServer:
	case server.ProductionServer:
		if cfg.Server.StaticsFolder == "" {
			return fmt.Errorf("statics folder must be set in prod mode")
		}
	default:
		return fmt.Errorf("invalid server mode: %s", cfg.Server.ServerMode)
	}

	if cfg.Server.HTTPPort < 1 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http-port: %d", cfg.Server.HTTPPort)
	}

	if cfg.Planner.NumWorkers < 1 {
		return fmt.Errorf("invalid num-workers: %d", cfg.Planner.NumWorkers)
	}

	if cfg.Planner.DatabaseFilepath == "" {
		return fmt.Errorf("database-filepath cannot be empty")
	}

	if cfg.Auth.Enabled && cfg.Auth.JWTFilePath == "" {
		return fmt.Errorf("authentication-jwt-filepath must be set when authentication is enabled")
	}

	return nil
}

func runService(ctx context.Context, cfg *config.Configuration) error {
	initLogger(cfg.Server.ServerMode)
	logger := zap.S().Named("run")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.NewDB(cfg.Planner.DatabaseFilepath)
	if err != nil {
		return fmt.Errorf("failed to open the database: %w", err)
	}

	if err := migrations.Run(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	st := store.NewStore(db)
	defer func() { _ = st.Close() }()

	sched := scheduler.NewScheduler(cfg.Planner.NumWorkers)
	defer sched.Close()

	catalogSrv := services.NewCatalogService(st)
	inventorySrv := services.NewInventoryService(st)
	collectorSrv := services.NewCollectorService(sched, st, credentials.NewDiskStore(cfg.Planner.DataFolder), vsphere.NewCollector())
	plannerSrv := services.NewPlannerService(sched, st)

	handler := handlers.New(catalogSrv, inventorySrv, collectorSrv, plannerSrv)

	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
		router.GET("/profiles", handler.ListProfiles)
		router.GET("/profiles/:name", handler.GetProfile)
		router.PUT("/profiles/:name", handler.PutProfile)
		router.DELETE("/profiles/:name", handler.DeleteProfile)

		router.GET("/inventory", handler.GetInventory)
		router.PUT("/inventory", handler.UpdateInventory)
		router.POST("/inventory/rvtools", handler.ImportRVTools)

		router.GET("/collector", handler.GetCollectorStatus)
		router.POST("/collector", handler.StartCollector)
		router.DELETE("/collector", handler.StopCollector)

		router.GET("/credentials", handler.GetCredentials)
		router.PUT("/credentials", handler.PutCredentials)
		router.DELETE("/credentials", handler.DeleteCredentials)

		router.POST("/plans", handler.CreatePlan)
		router.GET("/plans", handler.ListPlans)
		router.GET("/plans/:id", handler.GetPlan)
		router.DELETE("/plans/:id", handler.DeletePlan)
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("server starting", "port", cfg.Server.HTTPPort, "mode", cfg.Server.ServerMode)
		errCh <- srv.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		return err
	}

	shutdownCtx := context.Background()
	if err := collectorSrv.Stop(shutdownCtx); err != nil {
		logger.Errorw("collector shutdown", "error", err)
	}
	srv.Stop(shutdownCtx)

	return nil
}

func initLogger(mode string) {
	var logger *zap.Logger
	if mode == server.ProductionServer {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	zap.ReplaceGlobals(logger)
}
