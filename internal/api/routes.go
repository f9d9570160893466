package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/jroosing/hydrazone/internal/api/docs" // swagger docs
	"github.com/jroosing/hydrazone/internal/api/handlers"
	"github.com/jroosing/hydrazone/internal/api/middleware"
	"github.com/jroosing/hydrazone/internal/config"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	if cfg.API.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api/v1")
	api.GET("/health", h.Health)

	protected := api.Group("")
	if cfg.RateLimit.Enabled {
		protected.Use(middleware.RateLimit(middleware.NewRateLimiter(middleware.RateLimitSettings{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
			IdleTimeout:       cfg.RateLimit.CleanupInterval,
		})))
	}
	if cfg.API.APIKey != "" {
		protected.Use(middleware.RequireAPIKey(cfg.API.APIKey))
	}

	protected.GET("/servers", h.ListServers)

	srv := protected.Group("/servers/:server_id", h.RequireServer())
	srv.GET("", h.GetServer)
	srv.GET("/statistics", h.Statistics)
	srv.GET("/config", h.GetConfig)
	srv.GET("/search-data", h.SearchData)
	srv.PUT("/cache/flush", h.FlushCache)

	srv.GET("/zones", h.ListZones)
	srv.POST("/zones", h.CreateZone)
	srv.GET("/zones/:zone_id", h.GetZone)
	srv.PATCH("/zones/:zone_id", h.PatchZone)
	srv.PUT("/zones/:zone_id", h.UpdateZone)
	srv.DELETE("/zones/:zone_id", h.DeleteZone)
	srv.GET("/zones/:zone_id/export", h.ExportZone)
}
