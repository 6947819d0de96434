package v1

import (
	"net/http"
	"time"

	"go-careercompass-backend/config"
	"go-careercompass-backend/internal/delivery/http/middleware"
	"go-careercompass-backend/internal/delivery/http/response"
	"go-careercompass-backend/internal/domain"
	"go-careercompass-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	WorkflowUC      domain.WorkflowUsecase
	QuestionnaireUC domain.QuestionnaireUsecase
	PlanUC          domain.PlanUsecase
	ChatUC          domain.ChatUsecase
	JWKSProvider    *auth.Provider
	Config          *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config))
	{
		chatLimit := middleware.RateLimitMiddleware(middleware.ChatRateLimitConfig(deps.Config.RateLimitChatThreshold, window))
		planLimit := middleware.RateLimitMiddleware(middleware.PlanRequestRateLimitConfig(deps.Config.RateLimitPlanThreshold, window))

		NewWorkflowHandler(protected, deps.WorkflowUC)
		NewQuestionnaireHandler(protected, deps.QuestionnaireUC)
		NewPlanHandler(protected, deps.PlanUC, planLimit)
		NewChatHandler(protected, deps.ChatUC, chatLimit)
	}

	return r
}
