package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/domain/model"
	"github.com/conzooming/mealsub/internal/server/http/dto"
)

// SubscriptionHandler manages draft endpoints.
type SubscriptionHandler struct {
	facade SubscriptionFacade
}

// NewSubscriptionHandler constructs SubscriptionHandler.
func NewSubscriptionHandler(facade SubscriptionFacade) *SubscriptionHandler {
	return &SubscriptionHandler{facade: facade}
}

// Start handles PUT /api/subscription/draft.
func (h *SubscriptionHandler) Start(c *gin.Context) {
	var req dto.StartDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	draft, err := h.facade.StartDraft(c.Request.Context(), CurrentToken(c), CurrentUserID(c), req.MealPlanID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusCreated, dto.NewDraftResponse(draft))
}

// Get handles GET /api/subscription/draft.
func (h *SubscriptionHandler) Get(c *gin.Context) {
	draft, err := h.facade.Draft(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNoContent)
		case errors.Is(err, domainErrors.ErrDraftSchema):
			// An incompatible stored draft means starting over.
			c.Status(http.StatusGone)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.NewDraftResponse(draft))
}

// Abandon handles DELETE /api/subscription/draft.
func (h *SubscriptionHandler) Abandon(c *gin.Context) {
	if err := h.facade.AbandonDraft(c.Request.Context(), CurrentUserID(c)); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetFrequency handles POST /api/subscription/draft/frequency.
func (h *SubscriptionHandler) SetFrequency(c *gin.Context) {
	var req dto.FrequencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	days := make([]model.Weekday, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, model.Weekday(d))
	}
	freq := model.DeliveryFrequency{Frequency: req.Frequency, Days: days}
	draft, err := h.facade.SetDeliverySchedule(c.Request.Context(), CurrentUserID(c), freq, req.StartDate)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrUnknownDay), errors.Is(err, domainErrors.ErrNoMatchingDays):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.NewDraftResponse(draft))
}

// RemoveMeal handles DELETE /api/subscription/draft/meals.
func (h *SubscriptionHandler) RemoveMeal(c *gin.Context) {
	var req dto.RemoveMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	day, ok := model.ParseWeekday(req.Day)
	if !ok {
		c.Status(http.StatusUnprocessableEntity)
		return
	}
	draft, err := h.facade.RemoveMeal(c.Request.Context(), CurrentUserID(c), day, req.Index)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrUnknownDay):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.NewDraftResponse(draft))
}
