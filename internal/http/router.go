package http

import (
	"github.com/gin-gonic/gin"

	"github.com/alexkarpov/timeline-convert/internal/history"
	"github.com/alexkarpov/timeline-convert/internal/services"
)

// RouterConfig receives all router dependencies, improving testability
// and reducing parameter count.
type RouterConfig struct {
	Service         *services.ConvertService
	History         *history.Store
	Version         string
	MaxUploadSizeMB int64
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if cfg.MaxUploadSizeMB > 0 {
		router.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20
	}

	convert := NewConvertController(cfg.Service)
	runs := NewRunsController(cfg.History)
	health := NewHealthController(cfg.History, cfg.Version)

	api := router.Group("/api")
	{
		api.POST("/convert", convert.Convert)
		api.GET("/runs", runs.List)
	}

	router.GET("/health", health.Status)

	return router
}
