package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/Zxen1/Events-Platform-sub005/internal/config"
	"github.com/Zxen1/Events-Platform-sub005/internal/domain"
)

const paypalCompletedStatus = "COMPLETED"

// PayPalClient performs the actual server-side fund capture. Unlike the
// Stripe path this call moves money, so it is never retried by this service;
// the ledger's uniqueness constraint is what makes a client retry safe.
type PayPalClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

func NewPayPalClient(cfg config.PayPalConfig) *PayPalClient {
	return &PayPalClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *PayPalClient) Name() domain.Gateway {
	return domain.GatewayPayPal
}

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type paypalCaptureResponse struct {
	ID            string               `json:"id"`
	Status        string               `json:"status"`
	Payer         *paypalPayer         `json:"payer"`
	PaymentSource *paypalPaymentSource `json:"payment_source"`
}

type paypalPayer struct {
	EmailAddress string `json:"email_address"`
}

type paypalPaymentSource struct {
	Card   *paypalCardSource `json:"card"`
	PayPal *json.RawMessage  `json:"paypal"`
	Venmo  *json.RawMessage  `json:"venmo"`
}

type paypalCardSource struct {
	Brand      string `json:"brand"`
	LastDigits string `json:"last_digits"`
}

type paypalErrorResponse struct {
	Name             string `json:"name"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (c *PayPalClient) VerifyOrCapture(ctx context.Context, orderID string) (*Confirmation, error) {
	token, err := c.fetchAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	capture, err := c.captureOrder(ctx, token, orderID)
	if err != nil {
		return nil, err
	}

	return &Confirmation{
		PaymentID: capture.ID,
		Status:    capture.Status,
		Paid:      capture.Status == paypalCompletedStatus,
		Raw:       capture,
	}, nil
}

// fetchAccessToken performs the client-credentials exchange. The token is
// short-lived and fetched per capture; this service has no token cache to
// share across requests.
func (c *PayPalClient) fetchAccessToken(ctx context.Context) (string, error) {
	endpoint := fmt.Sprintf("%s/v1/oauth2/token", c.baseURL)
	form := url.Values{"grant_type": {"client_credentials"}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", c.gatewayError("token_request", err.Error(), 0)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.gatewayError("token_request", err.Error(), 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.errorFromResponse("token_exchange", resp)
	}

	var tokenResp paypalTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", c.gatewayError("token_decode", err.Error(), resp.StatusCode)
	}
	if tokenResp.AccessToken == "" {
		return "", c.gatewayError("token_exchange", "empty access token", resp.StatusCode)
	}

	return tokenResp.AccessToken, nil
}

func (c *PayPalClient) captureOrder(ctx context.Context, token, orderID string) (*paypalCaptureResponse, error) {
	endpoint := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.baseURL, url.PathEscape(orderID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader("{}"))
	if err != nil {
		return nil, c.gatewayError("capture_request", err.Error(), 0)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("PayPal-Request-Id", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.gatewayError("capture_request", err.Error(), 0)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.errorFromResponse("capture", resp)
	}

	var capture paypalCaptureResponse
	if err := json.NewDecoder(resp.Body).Decode(&capture); err != nil {
		return nil, c.gatewayError("capture_decode", err.Error(), resp.StatusCode)
	}

	return &capture, nil
}

// ExtractPaymentMethod inspects the capture's payment_source. PayPal wallet
// payments normalize to "paypal"; card payments to "<brand> •••• <last4>".
func (c *PayPalClient) ExtractPaymentMethod(conf *Confirmation) string {
	if conf == nil {
		return ""
	}
	capture, ok := conf.Raw.(*paypalCaptureResponse)
	if !ok || capture == nil {
		return ""
	}

	if src := capture.PaymentSource; src != nil {
		if src.Card != nil && src.Card.LastDigits != "" {
			brand := strings.ToLower(src.Card.Brand)
			if brand == "" {
				brand = "card"
			}
			return fmt.Sprintf("%s •••• %s", brand, src.Card.LastDigits)
		}
		if src.Venmo != nil {
			return "venmo"
		}
		if src.PayPal != nil {
			return "paypal"
		}
	}

	if capture.Payer != nil && capture.Payer.EmailAddress != "" {
		return "paypal"
	}

	return ""
}

func (c *PayPalClient) errorFromResponse(code string, resp *http.Response) *GatewayError {
	body, _ := io.ReadAll(resp.Body)

	var errResp paypalErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		message := errResp.Message
		if message == "" {
			message = errResp.ErrorDescription
		}
		if errResp.Name != "" {
			code = errResp.Name
		}
		if message != "" {
			return c.gatewayError(code, message, resp.StatusCode)
		}
	}

	return c.gatewayError(code, fmt.Sprintf("paypal returned status %d: %s", resp.StatusCode, string(body)), resp.StatusCode)
}

func (c *PayPalClient) gatewayError(code, message string, statusCode int) *GatewayError {
	return &GatewayError{
		Gateway:    domain.GatewayPayPal,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}
