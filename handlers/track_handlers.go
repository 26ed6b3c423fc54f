// api/handlers/track_handlers.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"brightfolio/api/models"
	"brightfolio/api/store"
	"brightfolio/api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TrackHandlers struct {
	EventStore *store.EventStore
}

func NewTrackHandlers(s *store.EventStore) *TrackHandlers {
	return &TrackHandlers{EventStore: s}
}

// TrackEvent ingests a batch of interaction events from the site widget.
// Event IDs, timestamps and client IPs are stamped server-side; whatever the
// widget sent for those fields is ignored.
func (h *TrackHandlers) TrackEvent(c *gin.Context) {
	var incomingEvents []models.Event
	if err := c.ShouldBindJSON(&incomingEvents); err != nil {
		log.Printf("Error binding incoming event JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(incomingEvents) == 0 {
		c.Status(http.StatusOK)
		return
	}

	eventsToInsert := make([]models.Event, 0, len(incomingEvents))
	for _, event := range incomingEvents {
		// A content id without a content type is a malformed widget payload;
		// drop the association rather than the event.
		if event.ContentID != nil && event.ContentType == nil {
			log.Printf("Dropping content id %q from event with no content type", *event.ContentID)
			event.ContentID = nil
		}
		if event.ContentType != nil && !models.IsValidContentType(*event.ContentType) {
			log.Printf("Skipping event with unknown content type %q", *event.ContentType)
			continue
		}
		event.EventID = uuid.New().String()
		event.CreatedAt = time.Now().UTC()
		event.IPAddress = c.ClientIP()
		eventsToInsert = append(eventsToInsert, event)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := h.EventStore.InsertEvents(ctx, eventsToInsert); err != nil {
		log.Printf("Error inserting interaction events into ClickHouse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record events"})
		return
	}

	c.Status(http.StatusOK)
}

// VisitorToken hands the widget an anonymous client_id for visitors that
// should not be tracked by IP.
func (h *TrackHandlers) VisitorToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"client_id": utils.GenerateVisitorToken()})
}
