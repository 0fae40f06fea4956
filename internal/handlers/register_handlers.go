package handlers

import (
	"log/slog"
	"time"

	"github.com/fundline/mca_backend/internal/core/domain"
	portssvc "github.com/fundline/mca_backend/internal/core/ports/services"
	"github.com/fundline/mca_backend/internal/middleware"
	"github.com/fundline/mca_backend/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// apiUpdater is recorded on audit fields for changes made through the API.
const apiUpdater = "api"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", corsMiddleware(cfg), rateLimitMiddleware(cfg))

	registerBusinessRoutes(v1, services.Business)
	registerProcessingRoutes(v1, services.Processing, cfg.MaxUploadBytes)
	registerHistoryRoutes(v1, services.History)
}

// corsMiddleware builds the CORS policy from configuration.
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	return cors.New(corsConfig)
}

// rateLimitMiddleware builds an in-memory rate limiter from the configured
// rate (e.g. "100-M" for 100 requests per minute).
func rateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		slog.Warn("Invalid rate limit format, falling back to 100-M",
			slog.String("rate_limit", cfg.RateLimit),
			slog.String("error", err.Error()))
		rate = limiter.Rate{Period: time.Minute, Limit: 100}
	}
	limiterInstance := limiter.New(memory.NewStore(), rate)
	return middleware.RateLimit(limiterInstance)
}

// registerCustomValidators attaches domain-specific binding validators.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("periodpreset", func(fl validator.FieldLevel) bool {
		return domain.PeriodPreset(fl.Field().String()).Valid()
	})
}
