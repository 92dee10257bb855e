package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/pawhaven/shelter-api/internal/handler"
	"github.com/pawhaven/shelter-api/internal/middleware"
	"github.com/pawhaven/shelter-api/internal/service"
	"github.com/pawhaven/shelter-api/pkg/config"
	"github.com/pawhaven/shelter-api/pkg/logger"
	corsmiddleware "github.com/pawhaven/shelter-api/pkg/middleware/cors"
	reqidmiddleware "github.com/pawhaven/shelter-api/pkg/middleware/requestid"

	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Pets         *handler.PetHandler
	Species      *handler.SpeciesHandler
	Applications *handler.ApplicationHandler
	Adoptions    *handler.AdoptionHandler
	Images       *handler.ImageHandler
	Metrics      *handler.MetricsHandler
}

// New assembles the gin engine with all middleware and routes mounted.
func New(cfg *config.Config, logr *zap.Logger, handlers Handlers, auth *service.AuthService, metrics *service.MetricsService, uploadsDir string) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", handlers.Metrics.Health)
	r.GET("/ready", handlers.Metrics.Ready)
	r.GET("/metrics", handlers.Metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if uploadsDir != "" {
		r.Static("/uploads", uploadsDir)
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/pets", handlers.Pets.List)
		api.GET("/pets/:id", handlers.Pets.Get)
		api.GET("/species", handlers.Species.List)
		api.POST("/applications", handlers.Applications.Submit)
		api.POST("/auth/login", handlers.Auth.Login)

		admin := api.Group("/admin", middleware.JWT(auth))
		{
			admin.GET("/pets", handlers.Pets.ListAdmin)
			admin.POST("/pets", handlers.Pets.Create)
			admin.PUT("/pets/:id", handlers.Pets.Update)
			admin.DELETE("/pets/:id", handlers.Pets.Delete)
			admin.POST("/pets/:id/image", handlers.Images.Upload)

			admin.GET("/applications", handlers.Applications.List)
			admin.POST("/applications/:id/approve", handlers.Applications.Approve)
			admin.POST("/applications/:id/reject", handlers.Applications.Reject)

			admin.GET("/adoptions", handlers.Adoptions.List)
			admin.POST("/adoptions/:id/confirm", handlers.Adoptions.Confirm)
			admin.POST("/adoptions/:id/cancel", handlers.Adoptions.Cancel)
			admin.POST("/adoptions/:id/return", handlers.Adoptions.Return)
			admin.GET("/adoptions/export", handlers.Adoptions.Export)
			admin.GET("/adoptions/export/:token", handlers.Adoptions.Download)
		}
	}

	return r
}
