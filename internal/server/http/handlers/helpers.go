package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/conzooming/mealsub/internal/server/http/middleware"
)

// CurrentUserID extracts the authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

// CurrentToken extracts the raw bearer token for upstream forwarding.
func CurrentToken(c *gin.Context) string {
	val, ok := c.Get(middleware.AuthTokenContextKey)
	if !ok {
		return ""
	}
	token, _ := val.(string)
	return token
}
