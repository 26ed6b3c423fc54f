// api/handlers/stats_handlers.go
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"brightfolio/api/analytics"
	"brightfolio/api/utils"

	"github.com/gin-gonic/gin"
)

// StatsHandlers serves the admin-facing report endpoints. The routes sit
// behind AuthRequired + AdminRequired, so by the time these run the caller
// is a resolved admin identity.
type StatsHandlers struct {
	Service *analytics.Service
}

func NewStatsHandlers(service *analytics.Service) *StatsHandlers {
	return &StatsHandlers{Service: service}
}

func (h *StatsHandlers) GetOverview(c *gin.Context) {
	days := utils.ParseDays(c.Query("days"), 30)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	report, err := h.Service.Overview(ctx, days)
	if err != nil {
		log.Printf("Error building overview report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve overview statistics"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *StatsHandlers) GetTrending(c *gin.Context) {
	days := utils.ParseDays(c.Query("days"), 7)
	limit := utils.ParseLimit(c.Query("limit"))
	typeFilter := c.Query("type")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	items, err := h.Service.Trending(ctx, days, typeFilter, limit)
	if err != nil {
		log.Printf("Error building trending report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trending statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"period": days, "trending": items})
}

func (h *StatsHandlers) GetContentPerformance(c *gin.Context) {
	contentType := c.Query("type")
	contentID := c.Query("id")
	days := utils.ParseDays(c.Query("days"), 30)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	report, err := h.Service.ContentPerformance(ctx, contentType, contentID, days)
	if err != nil {
		if errors.Is(err, analytics.ErrBadRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type and id query parameters are required"})
			return
		}
		log.Printf("Error building content performance report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve content performance statistics"})
		return
	}

	c.JSON(http.StatusOK, report)
}
