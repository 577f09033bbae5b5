package websearch

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"google.golang.org/api/googleapi"
)

// Provider errors.
var (
	// ErrUnauthorized indicates a missing, invalid or revoked API key.
	ErrUnauthorized = errors.New("websearch: unauthorised (check the API key)")

	// ErrRateLimited indicates the provider asked us to slow down.
	ErrRateLimited = errors.New("websearch: rate limit exceeded")

	// ErrQuotaExceeded indicates the account's search quota is used up.
	ErrQuotaExceeded = errors.New("websearch: quota exceeded")
)

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	return false
}

// wrapGoogleError converts a Google API error to a provider error.
func wrapGoogleError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch gerr.Code {
	case http.StatusUnauthorized, http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrUnauthorized, gerr.Message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, gerr.Message)
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return err
	}
}

// statusError maps an HTTP status from a JSON API to a provider error.
func statusError(provider string, status int, body string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s returned status %d", ErrUnauthorized, provider, status)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s returned status %d", ErrRateLimited, provider, status)
	default:
		if body != "" {
			return fmt.Errorf("%s returned status %d: %s", provider, status, body)
		}
		return fmt.Errorf("%s returned status %d", provider, status)
	}
}

// retryAfter parses a Retry-After header given in seconds. Zero means unset.
func retryAfter(h http.Header) int {
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs < 0 {
		return 0
	}
	return secs
}
