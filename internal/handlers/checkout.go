// checkout.go handles Stripe Checkout session creation and the success
// callback.
package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/concerro/ScoreWise/internal/models"
)

// CreateCheckoutSession creates a checkout session for the premium PDF.
// POST /create-checkout-session
//
// Stateless pass-through to the payment gateway: fixed product, quantity
// one. The response carries the opaque session id (for Stripe.js) and the
// hosted checkout URL (for a plain redirect).
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	s, err := h.Payments.CreateCheckoutSession(c.Request.Context())
	if err != nil {
		log.Printf("Checkout session creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "checkout_failed",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, models.CheckoutResponse{ID: s.ID, URL: s.URL})
}

// PaymentSuccess is the redirect target after Stripe Checkout completes.
// GET /success?session_id=...
//
// With STRIPE_VERIFY_PAYMENTS on, the session's payment status is checked
// against Stripe before granting access; an unpaid or unknown session goes
// back to the upload page. With it off (default), this keeps the soft
// paywall: an unconditional redirect to the analysis view.
func (h *Handler) PaymentSuccess(c *gin.Context) {
	if h.Cfg.StripeVerifyPayments {
		sessionID := c.Query("session_id")
		if sessionID == "" {
			c.Redirect(http.StatusFound, "/")
			return
		}
		paid, err := h.Payments.SessionPaid(c.Request.Context(), sessionID)
		if err != nil {
			log.Printf("Payment verification for %s failed: %v", sessionID, err)
			c.Redirect(http.StatusFound, "/")
			return
		}
		if !paid {
			c.Redirect(http.StatusFound, "/")
			return
		}
	}

	c.Redirect(http.StatusFound, "/analysis")
}
