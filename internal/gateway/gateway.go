// Package gateway hides provider-specific payment protocols behind one
// contract: given an external payment identifier, either confirm the payment
// succeeded or report a typed failure.
package gateway

import (
	"context"

	"github.com/Zxen1/Events-Platform-sub005/internal/domain"
)

// Confirmation is the normalized result of a provider call that completed at
// the protocol level. Paid is true only for a provider-confirmed success;
// any other provider-reported status is carried verbatim in Status and is a
// business outcome, not an error.
type Confirmation struct {
	PaymentID string
	Status    string
	Paid      bool

	// Raw holds the provider's own response payload for payment-method
	// extraction. Its concrete type is private to each client.
	Raw any
}

// Client is implemented once per payment provider.
//
// VerifyOrCapture drives the provider's protocol for the given payment or
// order identifier. Stripe's implementation is a read-only confirmation (the
// charge already happened client-side); PayPal's performs the actual fund
// capture. An error return always means the gateway could not be consulted
// (transport, auth, not-found); it never means "payment incomplete".
//
// ExtractPaymentMethod produces a human-readable descriptor from the
// confirmation's raw payload ("visa •••• 4242", "paypal"). It must not fail:
// unrecognizable payloads degrade to an empty string.
type Client interface {
	Name() domain.Gateway
	VerifyOrCapture(ctx context.Context, paymentID string) (*Confirmation, error)
	ExtractPaymentMethod(c *Confirmation) string
}
