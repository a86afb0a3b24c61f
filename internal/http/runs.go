package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alexkarpov/timeline-convert/internal/history"
)

type RunsController struct {
	store *history.Store
}

func NewRunsController(store *history.Store) *RunsController {
	return &RunsController{store: store}
}

// List handles GET /api/runs, most recent first.
func (ctrl *RunsController) List(c *gin.Context) {
	if ctrl.store == nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "run history is not enabled"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	runs, err := ctrl.store.RecentRuns(limit)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}
