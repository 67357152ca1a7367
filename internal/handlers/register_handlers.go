package handlers

import (
	"github.com/biblioteca-multimedia/bm_backend/cmd/docs"
	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/middleware"
	"github.com/biblioteca-multimedia/bm_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/", getHome)
	r.GET("/ping", getPing)
	r.GET("/health", getHealth)

	// Public authentication routes
	registerAuthRoutes(r, cfg, services)
	registerGoogleOAuthRoutes(r, cfg, services)

	// Authenticated catalog and account routes
	setupAPIRoutes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the authenticated /api group and delegates to the
// per-entity route registrations.
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	api := r.Group("/api", middleware.AuthMiddleware(cfg.JWTSecret))

	authHandler := NewAuthHandler(services.User, services.TokenService, cfg)
	api.GET("/perfil", authHandler.Perfil)
	api.POST("/cambiar-password", authHandler.CambiarPassword)

	registerBookRoutes(api, services)
	registerMovieRoutes(api, services)
	registerSeriesRoutes(api, services)
	registerPendingRoutes(api, services)
	registerStatsRoutes(api, services)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
