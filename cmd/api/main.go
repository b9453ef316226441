package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"

	"github.com/miguelmlop25/gestion-vacantes/config"
	v1 "github.com/miguelmlop25/gestion-vacantes/internal/delivery/http/v1"
	"github.com/miguelmlop25/gestion-vacantes/internal/domain"
	"github.com/miguelmlop25/gestion-vacantes/internal/repository/postgres"
	"github.com/miguelmlop25/gestion-vacantes/internal/usecase"
	"github.com/miguelmlop25/gestion-vacantes/pkg/database"
	"github.com/miguelmlop25/gestion-vacantes/pkg/email"
	"github.com/miguelmlop25/gestion-vacantes/pkg/logger"
	"github.com/miguelmlop25/gestion-vacantes/pkg/storage"
	"github.com/miguelmlop25/gestion-vacantes/pkg/validation"
)

// @title           Vacancy Management API
// @version         1.0
// @description     Job board backend: vacancy lifecycle, applications and search.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting vacancy management backend", "port", cfg.Port)

	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Log.Info("Database connection established")

	userRepo := postgres.NewUserRepository(dbPool)
	vacancyRepo := postgres.NewVacancyRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	notifier := email.NewNotifier(cfg)
	if !notifier.IsConfigured() {
		logger.Log.Warn("SMTP not fully configured - notifications will be dropped")
	}

	documents, err := newDocumentStore(cfg)
	if err != nil {
		logger.Log.Error("Failed to initialize attachment storage", "error", err)
		os.Exit(1)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	authUC := usecase.NewAuthUsecase(userRepo, notifier, cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	vacancyUC := usecase.NewVacancyUsecase(vacancyRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, vacancyRepo, userRepo, documents, notifier)

	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		opts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Log.Warn("Invalid REDIS_URL, rate limiting falls back to in-memory", "error", err)
		} else {
			if cfg.RedisPassword != "" {
				opts.Password = cfg.RedisPassword
			}
			redisClient = goredis.NewClient(opts)
		}
	}

	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		VacancyUC:     vacancyUC,
		ApplicationUC: applicationUC,
		Redis:         redisClient,
		Config:        cfg,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func newDocumentStore(cfg *config.Config) (domain.DocumentStore, error) {
	if cfg.StorageBackend == "s3" {
		return storage.NewS3Store(context.Background(), storage.S3Config{
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			KeyPrefix:       "cv/",
		})
	}
	return storage.NewLocalStore(cfg.UploadDir)
}
