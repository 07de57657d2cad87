package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	stripe "github.com/stripe/stripe-go/v74"
	stripeclient "github.com/stripe/stripe-go/v74/client"

	"github.com/Zxen1/Events-Platform-sub005/internal/config"
	"github.com/Zxen1/Events-Platform-sub005/internal/domain"
)

// intentRetriever is the slice of the Stripe SDK this client needs.
// Satisfied by client.API.PaymentIntents.
type intentRetriever interface {
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeClient confirms payments that were already charged client-side.
// VerifyOrCapture is read-only: it retrieves the payment intent and has no
// side effect on the provider, so retrying it is always safe.
type StripeClient struct {
	intents intentRetriever
}

func NewStripeClient(cfg config.StripeConfig) *StripeClient {
	backends := stripe.NewBackends(&http.Client{
		Timeout: cfg.Timeout,
	})

	api := &stripeclient.API{}
	api.Init(cfg.APIKey, backends)

	return &StripeClient{intents: api.PaymentIntents}
}

func (c *StripeClient) Name() domain.Gateway {
	return domain.GatewayStripe
}

func (c *StripeClient) VerifyOrCapture(ctx context.Context, paymentID string) (*Confirmation, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	params.AddExpand("latest_charge")

	intent, err := c.intents.Get(paymentID, params)
	if err != nil {
		return nil, stripeGatewayError(err)
	}

	return &Confirmation{
		PaymentID: intent.ID,
		Status:    string(intent.Status),
		Paid:      intent.Status == stripe.PaymentIntentStatusSucceeded,
		Raw:       intent,
	}, nil
}

// ExtractPaymentMethod reads the card or wallet details off the intent's
// latest charge. Absence of any recognizable field yields "".
func (c *StripeClient) ExtractPaymentMethod(conf *Confirmation) string {
	if conf == nil {
		return ""
	}
	intent, ok := conf.Raw.(*stripe.PaymentIntent)
	if !ok || intent == nil || intent.LatestCharge == nil {
		return ""
	}

	details := intent.LatestCharge.PaymentMethodDetails
	if details == nil {
		return ""
	}

	if details.Card != nil && details.Card.Last4 != "" {
		return fmt.Sprintf("%s •••• %s", details.Card.Brand, details.Card.Last4)
	}

	return string(details.Type)
}

func stripeGatewayError(err error) *GatewayError {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &GatewayError{
			Gateway:    domain.GatewayStripe,
			Code:       string(stripeErr.Code),
			Message:    stripeErr.Msg,
			StatusCode: stripeErr.HTTPStatusCode,
		}
	}
	return &GatewayError{
		Gateway: domain.GatewayStripe,
		Code:    "request_failed",
		Message: err.Error(),
	}
}
