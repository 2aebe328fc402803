package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
)

const notificationChannel = "barber-booking.notifications"

func main() {

	cfg := config.Load()
	logger.Init(cfg.LogLevel, os.Getenv("LOG_PRETTY") == "true")

	deps, err := buildStores(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise storage")
	}

	publisher, closeRedis := buildPublisher(cfg)
	defer closeRedis()

	auditDispatcher := audit.NewDispatcher(audit.New(deps.AuditStore))
	notifier := notify.NewDispatcher(publisher)

	deps.Audit = auditDispatcher
	deps.Notifier = notifier

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinLogger(), middleware.CORSMiddleware())

	routes.RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("storage", cfg.StorageDriver).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	auditDispatcher.Close()
	notifier.Close()

	log.Info().Msg("server stopped")
}

func buildStores(cfg *config.Config) (routes.Deps, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		store := memstore.New()
		return routes.Deps{
			Bookings:   store,
			Schedule:   store,
			AuditStore: store,
		}, nil
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return routes.Deps{}, err
	}

	return routes.Deps{
		Bookings:   repository.NewBookingGormRepository(db),
		Schedule:   repository.NewScheduleGormRepository(db),
		AuditStore: repository.NewAuditGormStore(db),
	}, nil
}

// buildPublisher falls back to logging notifications when no broker is
// configured or the URL is unusable.
func buildPublisher(cfg *config.Config) (notify.Publisher, func()) {
	if cfg.RedisURL == "" {
		return notify.LogPublisher{}, func() {}
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("invalid REDIS_URL, notifications will only be logged")
		return notify.LogPublisher{}, func() {}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, publishing will be retried per notification")
	}

	return notify.NewRedisPublisher(client, notificationChannel), func() {
		_ = client.Close()
	}
}
