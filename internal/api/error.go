package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// -- Transport --
	ErrNetwork = errors.New("network failure")
	ErrServer  = errors.New("server error")

	// -- Authentication/Authorization --
	ErrSessionExpired = errors.New("session expired")
	ErrForbidden      = errors.New("forbidden")

	// -- Resource State --
	ErrNotFound = errors.New("resource not found")

	// -- Validation --
	ErrBadRequest = errors.New("request rejected")
)

// errorDetail is the shape of backend error payloads: {"detail": "..."}.
type errorDetail struct {
	Detail string `json:"detail"`
}

// mapStatus converts a non-2xx response into one of the package sentinels,
// carrying the backend's detail message when it sent one.
func mapStatus(statusCode int, body []byte) error {
	detail := ""
	var payload errorDetail
	if err := json.Unmarshal(body, &payload); err == nil {
		detail = payload.Detail
	}
	if detail == "" {
		detail = string(body)
	}

	switch {
	case statusCode == 400:
		return fmt.Errorf("%w: %s", ErrBadRequest, detail)
	case statusCode == 401:
		return fmt.Errorf("%w: %s", ErrSessionExpired, detail)
	case statusCode == 403:
		return fmt.Errorf("%w: %s", ErrForbidden, detail)
	case statusCode == 404:
		return fmt.Errorf("%w: %s", ErrNotFound, detail)
	case statusCode >= 500:
		return fmt.Errorf("%w: status %d", ErrServer, statusCode)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrBadRequest, statusCode, detail)
	}
}
