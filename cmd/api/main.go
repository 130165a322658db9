package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobtracker-backend/config"
	_ "go-jobtracker-backend/docs"
	"go-jobtracker-backend/internal/delivery/http/middleware"
	v1 "go-jobtracker-backend/internal/delivery/http/v1"
	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/internal/repository/memory"
	"go-jobtracker-backend/internal/repository/postgres"
	"go-jobtracker-backend/internal/usecase"
	"go-jobtracker-backend/pkg/audit"
	"go-jobtracker-backend/pkg/auth"
	"go-jobtracker-backend/pkg/database"
	"go-jobtracker-backend/pkg/dateutil"
	"go-jobtracker-backend/pkg/logger"
	"go-jobtracker-backend/pkg/redis"
	"go-jobtracker-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type repositories struct {
	users        domain.UserRepository
	jobs         domain.JobRepository
	applications domain.ApplicationRepository
	contacts     domain.ContactRepository
	interviews   domain.InterviewRepository
	store        usecase.Pinger
	close        func()
}

// @title           Job Tracker API
// @version         1.0
// @description     Per-user job search tracker: jobs, applications, contacts and interviews.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job tracker backend", "port", cfg.Port, "storage", cfg.StorageDriver)
	auditor := audit.New("job-tracker-api", cfg.AppEnv)
	defer auditor.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	dateutil.SetDefaultLocation(cfg.DefaultTimezone)

	// 3. Setup Storage
	repos, err := openRepositories(context.Background(), cfg)
	if err != nil {
		logger.Log.Error("Failed to open storage", "error", err)
		os.Exit(1)
	}
	defer repos.close()

	// 4. Setup Redis (optional)
	health := map[string]usecase.Pinger{"database": repos.store}
	redisClient, err := redis.New(context.Background(), redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	if err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, rate limiting in memory", "error", err)
		}
		redisClient = nil
	} else {
		defer redisClient.Close()
		health["redis"] = redis.Health{Client: redisClient}
	}

	// 5. Setup UseCases
	validate := validation.New()
	guard := usecase.NewOwnershipGuard(repos.jobs, repos.applications, repos.contacts, repos.interviews, auditor)
	refs := usecase.NewReferenceChecker(guard)

	authUC := usecase.NewAuthUsecase(repos.users)
	jobUC := usecase.NewJobUsecase(repos.jobs, repos.interviews, guard, validate)
	applicationUC := usecase.NewApplicationUsecase(repos.applications, guard, refs, validate, cfg.EnforceContactOwnership)
	contactUC := usecase.NewContactUsecase(repos.contacts, repos.applications, guard, validate)
	interviewUC := usecase.NewInterviewUsecase(repos.interviews, guard, refs, validate)
	dashboardUC := usecase.NewDashboardUsecase(repos.jobs, repos.applications, repos.interviews)
	healthUC := usecase.NewHealthUsecase(health)

	// 6. Setup Auth
	var keys *auth.KeySet
	if cfg.JWKSURL != "" {
		keys = auth.NewKeySet(cfg.JWKSURL)
	}
	verifier := auth.NewVerifier(cfg.JWTSecret, keys)

	limiter := middleware.NewRateLimiter(
		middleware.DefaultRateLimitConfig(cfg.RateLimitThreshold, time.Duration(cfg.RateLimitWindowSeconds)*time.Second),
		redisClient,
		auditor,
	)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		ContactUC:     contactUC,
		InterviewUC:   interviewUC,
		DashboardUC:   dashboardUC,
		HealthUC:      healthUC,
		Verifier:      verifier,
		RateLimiter:   limiter,
		Auditor:       auditor,
		FrontendURL:   cfg.FrontendURL,
		IsProduction:  cfg.IsProduction(),
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
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

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Log.Warn("Using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			users:        store.Users(),
			jobs:         store.Jobs(),
			applications: store.Applications(),
			contacts:     store.Contacts(),
			interviews:   store.Interviews(),
			store:        store,
			close:        func() {},
		}, nil
	}

	pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		return nil, err
	}
	return &repositories{
		users:        postgres.NewUserRepository(pool),
		jobs:         postgres.NewJobRepository(pool),
		applications: postgres.NewApplicationRepository(pool),
		contacts:     postgres.NewContactRepository(pool),
		interviews:   postgres.NewInterviewRepository(pool),
		store:        pool,
		close:        pool.Close,
	}, nil
}
