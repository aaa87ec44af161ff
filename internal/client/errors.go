package client

import (
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/storefront-sync/internal/domain"
)

func setupError(err error) *domain.APIError {
	return domain.NewAPIError(domain.MsgRequestSetup, 0, nil, fmt.Errorf("%w: %w", domain.ErrRequestSetup, err))
}

func noResponseError(err error) *domain.APIError {
	return domain.NewAPIError(domain.MsgNoResponse, 0, nil, fmt.Errorf("%w: %w", domain.ErrNoResponse, err))
}

func malformedError(status int, err error) *domain.APIError {
	return domain.NewAPIError(domain.MsgMalformed, status, nil, fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err))
}

// responseError builds the error for a non-2xx response. The server's message wins
// over the generic transport text when present. Field errors are kept only when
// they have the {field: [messages]} shape; any other shape is dropped without
// discarding the message.
func responseError(status int, body []byte) *domain.APIError {
	message := fmt.Sprintf("Request failed with status code %d", status)

	var eb struct {
		Message string          `json:"message"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &eb); err != nil {
		return domain.NewAPIError(message, status, nil, nil)
	}

	if eb.Message != "" {
		message = eb.Message
	}

	var fieldErrors map[string][]string
	if len(eb.Errors) > 0 {
		if err := json.Unmarshal(eb.Errors, &fieldErrors); err != nil {
			fieldErrors = nil
		}
	}

	return domain.NewAPIError(message, status, fieldErrors, nil)
}
