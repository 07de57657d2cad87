package gateway

import (
	"errors"
	"fmt"

	"github.com/Zxen1/Events-Platform-sub005/internal/domain"
)

// GatewayError is a communication failure with a payment provider: transport,
// auth, not-found, or a provider-side outage. Provider messages are kept so
// they can be passed through where safe.
type GatewayError struct {
	Gateway    domain.Gateway
	Code       string
	Message    string
	StatusCode int
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s gateway error [%s]: %s (status: %d)", e.Gateway, e.Code, e.Message, e.StatusCode)
}

func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	ok := errors.As(err, &gwErr)
	return gwErr, ok
}
