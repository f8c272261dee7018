package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/domain/model"
	"github.com/conzooming/mealsub/internal/server/http/dto"
)

// MealPlanHandler manages meal plan endpoints.
type MealPlanHandler struct {
	facade MealPlanFacade
}

// NewMealPlanHandler constructs MealPlanHandler.
func NewMealPlanHandler(facade MealPlanFacade) *MealPlanHandler {
	return &MealPlanHandler{facade: facade}
}

// List handles GET /api/meal-plans. An empty result is the onboarding state,
// not an error.
func (h *MealPlanHandler) List(c *gin.Context) {
	plans, err := h.facade.ListMealPlans(c.Request.Context(), CurrentToken(c), CurrentUserID(c))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNoMealPlans) {
			c.JSON(http.StatusOK, dto.MealPlansResponse{Plans: []model.MealPlan{}, Onboarding: true})
			return
		}
		c.Status(http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, dto.MealPlansResponse{Plans: plans})
}

// Current handles GET /api/meal-plans/current. Returns the newest plan,
// composing one on the fly when the user has none yet.
func (h *MealPlanHandler) Current(c *gin.Context) {
	plan, err := h.facade.CurrentMealPlan(c.Request.Context(), CurrentToken(c), CurrentUserID(c))
	if err != nil {
		var incomplete domainErrors.ProfileIncompleteError
		if errors.As(err, &incomplete) {
			c.JSON(http.StatusConflict, dto.ProfileIncompleteResponse{
				Error:    "nutritional profile required",
				ReturnTo: incomplete.ReturnTo,
			})
			return
		}
		c.Status(http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// Create handles POST /api/meal-plans. A missing or incomplete nutritional
// profile redirects to preference creation instead of failing.
func (h *MealPlanHandler) Create(c *gin.Context) {
	plan, err := h.facade.ComposeMealPlan(c.Request.Context(), CurrentToken(c), CurrentUserID(c))
	if err != nil {
		var incomplete domainErrors.ProfileIncompleteError
		if errors.As(err, &incomplete) {
			c.JSON(http.StatusConflict, dto.ProfileIncompleteResponse{
				Error:    "nutritional profile required",
				ReturnTo: incomplete.ReturnTo,
			})
			return
		}
		c.Status(http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// CreateHealthProfile handles POST /api/create-health-profile. The user id
// comes from the token, never from the request payload.
func (h *MealPlanHandler) CreateHealthProfile(c *gin.Context) {
	var req dto.HealthProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	profile := model.HealthProfile{
		UserID:             CurrentUserID(c),
		Allergies:          req.Allergies,
		DietaryPreferences: req.DietaryPreferences,
		HealthGoals:        req.HealthGoals,
	}
	plan, err := h.facade.SaveHealthProfile(c.Request.Context(), CurrentToken(c), CurrentUserID(c), profile)
	if err != nil {
		var incomplete domainErrors.ProfileIncompleteError
		if errors.As(err, &incomplete) {
			c.JSON(http.StatusUnprocessableEntity, dto.ProfileIncompleteResponse{
				Error:    "dietary preferences and health goals are required",
				ReturnTo: incomplete.ReturnTo,
			})
			return
		}
		c.Status(http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusCreated, plan)
}
