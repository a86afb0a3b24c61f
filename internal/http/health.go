package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alexkarpov/timeline-convert/internal/history"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	store   *history.Store
	version string
}

func NewHealthController(store *history.Store, version string) *HealthController {
	return &HealthController{
		store:   store,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// The pipeline has no dependencies; only the optional history store
	// can be unhealthy.
	if h.store != nil {
		sqlDB, err := h.store.DB().DB()
		if err != nil {
			checks["history"] = "error: " + err.Error()
			status = "unhealthy"
		} else if err := sqlDB.Ping(); err != nil {
			checks["history"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["history"] = "ok"
		}
	} else {
		checks["history"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
