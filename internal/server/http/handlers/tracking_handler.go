package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/domain/model"
	"github.com/conzooming/mealsub/internal/server/http/dto"
)

// TrackingHandler manages order tracking endpoints.
type TrackingHandler struct {
	facade TrackingFacade
}

// NewTrackingHandler constructs TrackingHandler.
func NewTrackingHandler(facade TrackingFacade) *TrackingHandler {
	return &TrackingHandler{facade: facade}
}

// Track handles POST /api/orders/:ref/track.
func (h *TrackingHandler) Track(c *gin.Context) {
	orderRef := c.Param("ref")
	if orderRef == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	tracked, err := h.facade.TrackOrder(c.Request.Context(), CurrentUserID(c), orderRef)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusAccepted, dto.TrackResponse{
		OrderReferenceCode: tracked.OrderRef,
		Status:             tracked.Status,
		Step:               tracked.Step,
	})
}

// Timeline handles GET /api/orders/:ref/timeline.
func (h *TrackingHandler) Timeline(c *gin.Context) {
	orderRef := c.Param("ref")
	if orderRef == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	timeline, err := h.facade.OrderTimeline(c.Request.Context(), CurrentToken(c), CurrentUserID(c), orderRef)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, dto.TimelineResponse{
		Order:        timeline.Order,
		Step:         int(timeline.Step),
		StepCount:    model.TrackingStepCount,
		Known:        timeline.Known,
		Delivered:    timeline.Delivered,
		PromptRating: timeline.PromptRating,
	})
}
