// api/handlers/public_handlers.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"brightfolio/api/analytics"
	"brightfolio/api/utils"

	"github.com/gin-gonic/gin"
)

// PublicHandlers serves the unauthenticated dashboard widget. Its one
// endpoint never fails the caller: the service degrades internal errors to
// an empty report, so this handler always writes a 200.
type PublicHandlers struct {
	Service *analytics.Service
}

func NewPublicHandlers(service *analytics.Service) *PublicHandlers {
	return &PublicHandlers{Service: service}
}

func (h *PublicHandlers) GetSummary(c *gin.Context) {
	days := utils.ParseDays(c.Query("days"), 30)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	c.JSON(http.StatusOK, h.Service.PublicSummary(ctx, days))
}
