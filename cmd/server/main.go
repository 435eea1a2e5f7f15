package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/reddaiahsirigireddy/shortt/config"
	appmodel "github.com/reddaiahsirigireddy/shortt/internal/app/model"
	apprepository "github.com/reddaiahsirigireddy/shortt/internal/app/repository"
	appserver "github.com/reddaiahsirigireddy/shortt/internal/app/server"
	appservice "github.com/reddaiahsirigireddy/shortt/internal/app/service"
	"github.com/reddaiahsirigireddy/shortt/internal/infra/logger"
	infraNATS "github.com/reddaiahsirigireddy/shortt/internal/infra/nats"
	infraPostgres "github.com/reddaiahsirigireddy/shortt/internal/infra/postgres"
	infraPrometheus "github.com/reddaiahsirigireddy/shortt/internal/infra/prometheus"
	infraRedis "github.com/reddaiahsirigireddy/shortt/internal/infra/redis"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	isDev := os.Getenv("APP_ENV") != "production"
	log := logger.MustInit(logger.Config{
		Development: isDev,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	if cfg.Link.SiteToken == "" {
		log.Warn("SITE_TOKEN is not set; every caller will be treated as public tier")
	}

	log.Info("Configuration loaded successfully",
		zap.Int("server_port", cfg.Server.Port),
		zap.Bool("case_sensitive", cfg.Link.CaseSensitive),
		zap.String("redis_host", cfg.Redis.Host),
		zap.Int("redis_port", cfg.Redis.Port),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("nats_host", cfg.NATS.Host),
		zap.Int("nats_port", cfg.NATS.Port),
	)

	// Redis holds the link records themselves.
	redisClient, err := infraRedis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("Connected to Redis successfully")

	// Postgres only stores click analytics.
	gormDB, err := infraPostgres.NewGorm(cfg.Postgres)
	if err != nil {
		log.Fatal("Failed to open GORM connection", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal("Failed to access underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := infraPostgres.AutoMigrate(ctx, gormDB, &appmodel.ClickEvent{}); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	pool, err := infraPostgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer pool.Close()
	log.Info("Connected to Postgres successfully")

	natsConn, js, err := infraNATS.Connect(cfg.NATS)
	if err != nil {
		log.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer natsConn.Drain()
	log.Info("Connected to NATS successfully", zap.Bool("jetstream_ready", js != nil))

	if !isDev {
		promServer := infraPrometheus.NewServer(cfg.Prometheus)
		go func() {
			log.Info("Starting Prometheus metrics server",
				zap.Int("port", cfg.Prometheus.Port))
			if err := promServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Prometheus metrics server stopped unexpectedly", zap.Error(err))
			}
		}()
		defer func() {
			if err := promServer.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("Failed to close Prometheus server", zap.Error(err))
			}
		}()
	} else {
		log.Info("Skipping Prometheus metrics server in development mode")
	}

	linkStore := apprepository.NewLinkStore(redisClient)

	slugFilter := appservice.NewSlugFilter()
	seeded, err := slugFilter.Seed(ctx, linkStore)
	if err != nil {
		log.Fatal("Failed to seed slug filter", zap.Error(err))
	}
	log.Info("Slug filter seeded", zap.Int("slugs", seeded))

	slugValidator, err := appservice.NewSlugValidator(cfg.Link)
	if err != nil {
		log.Fatal("Failed to build slug validator", zap.Error(err))
	}

	linkService := appservice.NewLinkService(linkStore, slugFilter, cfg.Link)

	clickRepo := apprepository.NewClickEventRepository(gormDB)

	clickPublisher := appservice.NewClickPublisher(js)
	clickConsumer := appservice.NewClickConsumer(js, log, clickRepo)
	if err := clickConsumer.Start(); err != nil {
		log.Fatal("Failed to start click consumer", zap.Error(err))
	}

	retention, err := time.ParseDuration(cfg.Analytics.Retention)
	if err != nil {
		log.Fatal("Invalid analytics retention", zap.String("retention", cfg.Analytics.Retention), zap.Error(err))
	}
	clickPruner := appservice.NewClickPruner(log, clickRepo, retention)
	clickPruner.Start()
	defer clickPruner.Stop()

	server := appserver.New(appserver.Dependencies{
		Logger:         log,
		Config:         cfg,
		Redis:          redisClient,
		Postgres:       pool,
		LinkService:    linkService,
		SlugValidator:  slugValidator,
		ClickPublisher: clickPublisher,
	})

	if err := server.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatal("Fiber server exited", zap.Error(err))
	}
}
