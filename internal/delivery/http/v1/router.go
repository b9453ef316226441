package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/miguelmlop25/gestion-vacantes/config"
	"github.com/miguelmlop25/gestion-vacantes/internal/delivery/http/middleware"
	"github.com/miguelmlop25/gestion-vacantes/internal/delivery/http/response"
	"github.com/miguelmlop25/gestion-vacantes/internal/domain"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	VacancyUC     domain.VacancyUsecase
	ApplicationUC domain.ApplicationUsecase
	Redis         *goredis.Client
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middlewares; CORS must run first
	r.Use(middleware.CORSMiddleware())
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimit(deps.Redis, middleware.RateLimitConfig{
		Limit:  deps.Config.RateLimitGlobalThreshold,
		Window: time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second,
	}))

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Login gets a tighter limit than the rest of the API; registration
	// stays under the global limiter only.
	loginLimiter := middleware.RateLimit(deps.Redis, middleware.RateLimitConfig{
		Limit:     deps.Config.RateLimitLoginThreshold,
		Window:    time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second,
		KeyPrefix: "rl:login:",
	})

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))

	candidates := protected.Group("/candidates")
	candidates.Use(middleware.RequireRole(domain.RoleCandidate))

	employers := protected.Group("/employers")
	employers.Use(middleware.RequireRole(domain.RoleEmployer))

	NewAuthHandler(v1, protected, loginLimiter, deps.AuthUC)
	NewVacancyHandler(v1, employers, deps.VacancyUC)
	NewApplicationHandler(candidates, employers, deps.ApplicationUC)

	return r
}
