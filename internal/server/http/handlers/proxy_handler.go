package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conzooming/mealsub/internal/adapter/gateway"
)

// ProxyHandler forwards storefront requests verbatim to the delivery backend
// and mirrors the upstream status and body.
type ProxyHandler struct {
	facade ProxyFacade
}

// NewProxyHandler constructs ProxyHandler.
func NewProxyHandler(facade ProxyFacade) *ProxyHandler {
	return &ProxyHandler{facade: facade}
}

// Addresses handles GET /api/addresses.
func (h *ProxyHandler) Addresses(c *gin.Context) {
	h.forward(c, "/api/user/address/"+CurrentUserID(c))
}

// WalletBalance handles GET /api/wallet/balance.
func (h *ProxyHandler) WalletBalance(c *gin.Context) {
	h.forward(c, "/api/user/wallet/balance/"+CurrentUserID(c))
}

// PassThrough handles ANY /api/proxy/*path.
func (h *ProxyHandler) PassThrough(c *gin.Context) {
	h.forward(c, "/api"+c.Param("path"))
}

func (h *ProxyHandler) forward(c *gin.Context, upstreamPath string) {
	resp, err := h.facade.Forward(c.Request.Context(), gateway.ForwardRequest{
		Method: c.Request.Method,
		Path:   upstreamPath,
		Query:  c.Request.URL.RawQuery,
		Body:   c.Request.Body,
		Header: c.Request.Header,
	})
	if err != nil {
		c.Status(http.StatusBadGateway)
		return
	}
	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, resp.Body)
}
