package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/server/http/dto"
	"github.com/conzooming/mealsub/internal/server/http/middleware"
)

// CheckoutHandler manages the review-and-pay endpoints.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Summary handles GET /api/subscription/summary.
func (h *CheckoutHandler) Summary(c *gin.Context) {
	summary, err := h.facade.CheckoutSummary(c.Request.Context(), CurrentToken(c), CurrentUserID(c))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, dto.CheckoutSummaryResponse{
		Draft:         dto.NewDraftResponse(summary.Draft),
		Subtotal:      summary.Subtotal,
		DeliveryFee:   summary.DeliveryFee,
		ServiceFee:    summary.ServiceFee,
		Total:         summary.Total,
		WalletBalance: summary.WalletBalance,
		Addresses:     summary.Addresses,
	})
}

// Submit handles POST /api/subscriptions/checkout.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	result, err := h.facade.SubmitCheckout(c.Request.Context(), CurrentToken(c), CurrentUserID(c), req.PaymentMethodID, req.DeliveryAddress)
	if err != nil {
		var failed domainErrors.PaymentFailedError
		switch {
		case errors.Is(err, domainErrors.ErrPaymentMethodRequired),
			errors.Is(err, domainErrors.ErrAddressRequired),
			errors.Is(err, domainErrors.ErrInvalidAmount):
			middleware.RecordCheckoutOutcome("rejected")
			c.JSON(http.StatusUnprocessableEntity, dto.PaymentErrorResponse{Error: err.Error()})
		case errors.Is(err, domainErrors.ErrNotFound):
			middleware.RecordCheckoutOutcome("rejected")
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInsufficientBalance):
			middleware.RecordCheckoutOutcome("insufficient_balance")
			c.JSON(http.StatusPaymentRequired, dto.PaymentErrorResponse{Error: "insufficient wallet balance"})
		case errors.As(err, &failed):
			middleware.RecordCheckoutOutcome("payment_failed")
			c.JSON(http.StatusBadGateway, dto.PaymentErrorResponse{Error: "payment failed", Message: failed.Message})
		default:
			middleware.RecordCheckoutOutcome("error")
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	if result.Settled {
		middleware.RecordCheckoutOutcome("settled")
	} else {
		middleware.RecordCheckoutOutcome("redirected")
	}
	c.JSON(http.StatusOK, dto.CheckoutResponse{
		Settled:            result.Settled,
		OrderReferenceCode: result.OrderReferenceCode,
		AuthorizationURL:   result.AuthorizationURL,
	})
}
