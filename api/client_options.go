package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
)

type option struct {
	httpClient *http.Client
	logger     *zap.Logger
}

type OptionFunc func(*option) error

// WithHTTPClient sets the http.Client used to reach the API.
// Timeouts and transports are configured on it.
func WithHTTPClient(c *http.Client) OptionFunc {
	return func(o *option) error {
		if c == nil {
			return errors.New("`httpClient` must not be nil")
		}
		o.httpClient = c
		return nil
	}
}

func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) error {
		if logger == nil {
			return errors.New("`logger` must not be nil")
		}
		o.logger = logger
		return nil
	}
}
