package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	checkoutsvc "marketplace/internal/service/checkout"
)

// checkoutHandler creates a hosted payment session for the submitted
// cart and returns its redirect URL.
func checkoutHandler(svc checkoutService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutsvc.InitiateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			jsonError(c, http.StatusBadRequest, "Missing user or items")
			return
		}
		url, err := svc.Initiate(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, checkoutsvc.ErrMissingInput) {
				jsonError(c, http.StatusBadRequest, "Missing user or items")
				return
			}
			logger.Printf("checkout: create session err=%v", err)
			jsonError(c, http.StatusInternalServerError, "Failed to create session")
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}

// checkoutSuccessHandler turns a paid session into an order.
func checkoutSuccessHandler(svc checkoutService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			SessionID string `json:"session_id"`
		}
		if err := c.ShouldBindJSON(&in); err != nil || in.SessionID == "" {
			jsonError(c, http.StatusBadRequest, "Missing session_id")
			return
		}
		orderID, err := svc.Finalize(c.Request.Context(), in.SessionID)
		if err != nil {
			switch {
			case errors.Is(err, checkoutsvc.ErrMissingInput):
				jsonError(c, http.StatusBadRequest, "Missing session_id")
			case errors.Is(err, checkoutsvc.ErrPaymentIncomplete):
				jsonError(c, http.StatusBadRequest, "Payment not completed")
			case errors.Is(err, checkoutsvc.ErrMissingMetadata):
				jsonError(c, http.StatusBadRequest, "Missing metadata")
			default:
				logger.Printf("checkout: finalize session_id=%s err=%v", in.SessionID, err)
				jsonError(c, http.StatusInternalServerError, "Server error")
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "order_id": orderID})
	}
}
