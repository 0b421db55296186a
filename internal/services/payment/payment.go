// Package payment wraps Stripe Checkout for the premium PDF purchase.
//
// The product is a single fixed line item; the handler only needs an opaque
// session ID (for Stripe.js redirect) and optionally a paid/unpaid answer
// for the success callback.
package payment

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
)

const (
	productName        = "Premium Credit Analysis PDF"
	productDescription = "Personalized, actionable credit analysis and PDF report."
	priceCents         = 9900
	currency           = "usd"
)

// Gateway creates and inspects Stripe Checkout sessions.
type Gateway struct {
	baseURL string
}

// New configures the Stripe client and returns a gateway. baseURL is the
// public root used to build the success and cancel redirect targets.
func New(apiKey, baseURL string) *Gateway {
	stripe.Key = apiKey
	return &Gateway{baseURL: baseURL}
}

// Session is the subset of a checkout session the handlers care about.
type Session struct {
	ID  string
	URL string
}

// CreateCheckoutSession creates a payment-mode checkout session for the
// fixed report product: one line item, quantity one.
func (g *Gateway) CreateCheckoutSession(ctx context.Context) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(priceCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(productName),
						Description: stripe.String(productDescription),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(g.baseURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(g.baseURL + "/"),
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return &Session{ID: s.ID, URL: s.URL}, nil
}

// SessionPaid reports whether the given checkout session has been paid.
// Used by the success callback when payment verification is enabled.
func (g *Gateway) SessionPaid(ctx context.Context, sessionID string) (bool, error) {
	s, err := checkoutsession.Get(sessionID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return false, fmt.Errorf("failed to fetch checkout session: %w", err)
	}
	return s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, nil
}
