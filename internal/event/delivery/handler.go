package delivery

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	eventdto "calmirror-backend/internal/event/dto"
	"calmirror-backend/internal/event/usecase"

	"github.com/gin-gonic/gin"
)

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	eventUsecase usecase.EventUsecase
}

func NewEventHandler(eventUsecase usecase.EventUsecase) *EventHandler {
	return &EventHandler{
		eventUsecase: eventUsecase,
	}
}

// Refresh pulls provider events into local storage.
// POST /api/events/refresh
func (h *EventHandler) Refresh(c *gin.Context) {
	userID := c.GetString("userID")

	count, err := h.eventUsecase.FetchAndStoreEvents(c.Request.Context(), userID, nil)
	if err != nil {
		// A missing refresh token also lands here as a 500 today.
		log.Printf("[ERROR] /api/events/refresh: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to refresh events"})
		return
	}

	c.JSON(http.StatusOK, eventdto.RefreshResponse{OK: true, Imported: count})
}

// List returns events grouped by day or ISO week.
// GET /api/events?range=1|7|30
func (h *EventHandler) List(c *gin.Context) {
	userID := c.GetString("userID")

	rangeDays, err := strconv.Atoi(c.DefaultQuery("range", "7"))
	if err != nil {
		rangeDays = 7
	}

	result, err := h.eventUsecase.ListEvents(userID, rangeDays)
	if err != nil {
		log.Printf("[ERROR] GET /api/events: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Create pushes a new event to the provider and mirrors it locally.
// POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var req eventdto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing fields"})
		return
	}

	event, deduped, err := h.eventUsecase.CreateEvent(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[ERROR] POST /api/events: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to create event"})
		return
	}

	if deduped {
		c.JSON(http.StatusOK, eventdto.CreateEventResponse{OK: true, Event: event, Deduped: true})
		return
	}

	c.JSON(http.StatusCreated, eventdto.CreateEventResponse{OK: true, Event: event})
}
