package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GraftonJ/repsy-be/config"
	"github.com/GraftonJ/repsy-be/internal/handler"
	doctorHandler "github.com/GraftonJ/repsy-be/internal/handler/doctor"
	medicationHandler "github.com/GraftonJ/repsy-be/internal/handler/medication"
	"github.com/GraftonJ/repsy-be/internal/middleware"
	"github.com/GraftonJ/repsy-be/internal/repository/postgres"
	"github.com/GraftonJ/repsy-be/internal/router"
	doctorService "github.com/GraftonJ/repsy-be/internal/service/doctor"
	medicationService "github.com/GraftonJ/repsy-be/internal/service/medication"
	"github.com/GraftonJ/repsy-be/pkg/logger"
	"github.com/GraftonJ/repsy-be/pkg/security"
	"github.com/GraftonJ/repsy-be/pkg/token"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Log.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	doctorRepo := postgres.NewDoctorRepository(db)
	medicationRepo := postgres.NewMedicationRepository(db)

	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	issuer := token.NewIssuer(cfg.JWT.Secret, cfg.JWT.TokenExpiry())

	revoker := token.NewMemoryRevoker()
	if cfg.Redis.URL != "" {
		revoker, err = token.NewRedisRevoker(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		log.Info().Msg("using Redis token revocation store")
	}

	doctorSvc := doctorService.NewService(doctorRepo, hasher, issuer, revoker)
	medicationSvc := medicationService.NewService(medicationRepo)

	authMiddleware := middleware.NewAuthMiddleware(issuer, revoker)

	r := router.NewRouter(
		authMiddleware,
		doctorHandler.NewHandler(doctorSvc),
		medicationHandler.NewHandler(medicationSvc),
		handler.NewHealthHandler(db),
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
			RateLimitBurst: cfg.RateLimit.Burst,
			RequestTimeout: cfg.Server.RequestTimeout,
			CORSConfig:     middleware.DefaultCORSConfig(),
			MetricsPrefix:  "repsy",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
