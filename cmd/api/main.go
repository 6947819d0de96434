package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-careercompass-backend/config"
	_ "go-careercompass-backend/docs" // Important for Swagger
	v1 "go-careercompass-backend/internal/delivery/http/v1"
	"go-careercompass-backend/internal/repository/postgres"
	"go-careercompass-backend/internal/usecase"
	"go-careercompass-backend/pkg/assistant"
	"go-careercompass-backend/pkg/auth"
	"go-careercompass-backend/pkg/database"
	"go-careercompass-backend/pkg/events"
	"go-careercompass-backend/pkg/logger"
	"go-careercompass-backend/pkg/planner"
	"go-careercompass-backend/pkg/redis"
	"go-careercompass-backend/pkg/storage"

	"github.com/go-playground/validator/v10"
)

// @title           CareerCompass Orchestrator API
// @version         1.0
// @description     Session, questionnaire and career plan orchestration backend.
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
	logger.Init()
	logger.Log.Info("Starting careercompass backend", "port", cfg.Port)
	ev := events.Init("careercompass-api")
	defer ev.Sync()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limiting falls back to in-memory)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		} else {
			defer redis.Close()
		}
	}

	// 5. Setup Repositories
	statusRepo := postgres.NewStatusRepository(dbPool)
	answersRepo := postgres.NewAnswersRepository(dbPool)
	planRepo := postgres.NewPlanRepository(dbPool)

	// 6. Setup External Clients
	resumeStore := storage.NewResumeStore(storage.NewClient(cfg.SupabaseUrl, cfg.SupabaseKey, cfg.ResumeBucket))
	plannerClient := planner.NewClient(cfg.PlannerBaseURL)
	assistantClient := assistant.NewClient(cfg.AssistantBaseURL)

	// 7. Setup UseCases
	validate := validator.New()
	questionnaireUC := usecase.NewQuestionnaireUsecase(answersRepo, statusRepo, resumeStore, validate, ev)
	planUC := usecase.NewPlanUsecase(
		planRepo,
		answersRepo,
		statusRepo,
		plannerClient,
		ev,
		time.Duration(cfg.PlanPollIntervalSeconds)*time.Second,
		time.Duration(cfg.PlanTimeoutMinutes)*time.Minute,
	)
	chatUC := usecase.NewChatUsecase(assistantClient, ev)
	workflowUC := usecase.NewWorkflowUsecase(
		statusRepo,
		answersRepo,
		planRepo,
		questionnaireUC,
		planUC,
		chatUC,
		ev,
		time.Duration(cfg.SessionResolveTimeoutSeconds)*time.Second,
		time.Duration(cfg.PlanTimeoutMinutes)*time.Minute,
	)

	// 8. Setup Auth Provider (JWKS)
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		WorkflowUC:      workflowUC,
		QuestionnaireUC: questionnaireUC,
		PlanUC:          planUC,
		ChatUC:          chatUC,
		JWKSProvider:    jwksProvider,
		Config:          cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// Stop plan polling goroutines before the listener closes.
	planUC.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
