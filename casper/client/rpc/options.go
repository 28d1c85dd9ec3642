package rpc

import (
	"errors"
	"net/http"
	"time"

	"github.com/casper-ecosystem/casper-client-go/casper/common"
)

type config struct {
	retry   *common.RetryConfig
	id      string
	timeout time.Duration
}

type Option func(*config)

func RPCRetryConfig(rcfg *common.RetryConfig) Option {
	return func(cfg *config) {
		cfg.retry = rcfg
	}
}

// WithRequestID fixes the JSON-RPC id of every request. Numeric values are
// sent as numbers, anything else as a string.
func WithRequestID(id string) Option {
	return func(cfg *config) {
		cfg.id = id
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(cfg *config) {
		cfg.timeout = timeout
	}
}

// DefaultRetryConfig retries transport failures and 5xx answers a few times.
// Errors reported by the node and other status codes are final.
func DefaultRetryConfig() *common.RetryConfig {
	return &common.RetryConfig{
		ShouldRetry: common.ComposeRetryPolicies(
			common.LimitRetries(3),
			common.DoNotRetryIf(ErrRPCError, ErrFailedToMarshalRequest, ErrFailedToUnmarshalResponse, ErrUnsupportedAPIVersion),
			retryServerErrors,
		),
		NextDelay: common.DelayExponential(100*time.Millisecond, time.Second),
	}
}

// retryServerErrors rejects status code failures below 500.
func retryServerErrors(_ uint32, err error) bool {
	var statusErr *StatusCodeError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= http.StatusInternalServerError
	}
	return true
}
