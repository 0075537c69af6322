// Package main is the entry point for the Permission Service
// Permission Service translates between backend permissions and frontend capabilities
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/openidx/permmap/internal/api"
	"github.com/openidx/permmap/internal/common/config"
	apperrors "github.com/openidx/permmap/internal/common/errors"
	"github.com/openidx/permmap/internal/common/health"
	"github.com/openidx/permmap/internal/common/logger"
	"github.com/openidx/permmap/internal/common/middleware"
	"github.com/openidx/permmap/internal/common/shutdown"
	"github.com/openidx/permmap/internal/common/tracing"
	"github.com/openidx/permmap/internal/metrics"
	"github.com/openidx/permmap/internal/translation"
)

const serviceName = "permission-service"

var (
	Version    = "dev"
	BuildTime  = "unknown"
	CommitHash = "unknown"
)

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.WithService(logger.New(cfg.Environment, cfg.LogLevel), serviceName)
	defer func() { _ = log.Sync() }()

	log.Info("Starting Permission Service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit", CommitHash),
		zap.String("environment", cfg.Environment),
	)

	shutdownTracing, err := tracing.Init(context.Background(), tracing.FromConfig(cfg), log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	translator, err := translation.LoadTranslator(cfg.MappingTableFile, cfg.StrictMappingTable, log)
	if err != nil {
		log.Fatal("Failed to load mapping table", zap.Error(err))
	}
	svc := translation.NewService(translator, log)

	healthService := health.NewHealthService(log)
	healthService.SetVersion(Version)
	healthService.RegisterCheck(health.NewMappingTableChecker(translator.Table()))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(apperrors.ErrorHandler())
	if cfg.Tracing.Enabled {
		router.Use(otelgin.Middleware(serviceName))
	}
	router.Use(middleware.RequestID())
	router.Use(logger.GinMiddleware(log))
	router.Use(middleware.CORS(cfg.GetCORSOrigins()...))
	router.Use(metrics.Middleware(serviceName))

	router.GET("/metrics", metrics.Handler())
	healthService.RegisterStandardRoutes(router)

	v1 := router.Group("/api/v1")
	v1.Use(api.VersionMiddleware(api.V1, api.V1))
	{
		translation.RegisterRoutes(v1, svc)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	mgr := shutdown.NewManager(log, cfg.ShutdownTimeout)
	mgr.RegisterHook("logger", func(ctx context.Context) error {
		_ = log.Sync()
		return nil
	})
	mgr.RegisterHook("tracing", shutdownTracing)

	if err := mgr.Serve("http", server); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}

	mgr.Wait(context.Background())
}
