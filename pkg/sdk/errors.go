package sdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors mapped from API status codes. Use errors.Is().
var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrNotFound             = errors.New("game not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")
	ErrStoreUnavailable     = errors.New("store unavailable")
	ErrTimeout              = errors.New("server timeout")
)

// APIError carries the server's structured error body.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return ErrInvalidRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadGateway:
		return ErrEmbeddingUnavailable
	case http.StatusServiceUnavailable:
		return ErrStoreUnavailable
	case http.StatusGatewayTimeout:
		return ErrTimeout
	default:
		return nil
	}
}

func apiErrorFrom(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	} else {
		apiErr.Code = "unknown"
		apiErr.Message = resp.Status
	}
	return apiErr
}
