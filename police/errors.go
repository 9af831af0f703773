// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package police

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrInvalidMonth is returned when a month isn't in YYYY-MM form.
var ErrInvalidMonth = errors.New("month must be formatted as YYYY-MM")

// ErrorType classifies failures talking to the API.
type ErrorType int

const (
	// ErrorTypeUnknown unclassified error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeInvalidRequest the API rejected the query.
	ErrorTypeInvalidRequest
	// ErrorTypeNotFound unknown endpoint or crime category.
	ErrorTypeNotFound
	// ErrorTypeRateLimit too many requests.
	ErrorTypeRateLimit
	// ErrorTypeTooManyResults the area holds more records than the API returns.
	ErrorTypeTooManyResults
	// ErrorTypeUnavailable the service is down or overloaded.
	ErrorTypeUnavailable
	// ErrorTypeTimeout the request didn't complete in time.
	ErrorTypeTimeout
	// ErrorTypeNetwork the request never got a response.
	ErrorTypeNetwork
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeInvalidRequest:
		return "invalid request"
	case ErrorTypeNotFound:
		return "not found"
	case ErrorTypeRateLimit:
		return "rate limit"
	case ErrorTypeTooManyResults:
		return "too many results"
	case ErrorTypeUnavailable:
		return "unavailable"
	case ErrorTypeTimeout:
		return "timeout"
	case ErrorTypeNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// APIError describes a failed call to the API.
type APIError struct {
	Type       ErrorType
	StatusCode int // zero when no response was received
	Endpoint   string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	var sb strings.Builder

	if e.Endpoint != "" {
		sb.WriteString(e.Endpoint)
		sb.WriteString(": ")
	}

	sb.WriteString(e.Message)

	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}

	return sb.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func isType(err error, t ErrorType) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Type == t
	}

	return false
}

// IsTooManyResults reports whether the query area was too busy for the API.
// Shrinking the radius or narrowing the crime category usually helps.
func IsTooManyResults(err error) bool {
	return isType(err, ErrorTypeTooManyResults)
}

// IsRateLimit reports whether the API throttled the request.
func IsRateLimit(err error) bool {
	return isType(err, ErrorTypeRateLimit)
}

// IsTimeout reports whether the request timed out.
func IsTimeout(err error) bool {
	return isType(err, ErrorTypeTimeout)
}

// ClassifyHTTPError turns a non-200 status into an APIError.
func ClassifyHTTPError(statusCode int, body string) *APIError {
	e := &APIError{StatusCode: statusCode}

	switch statusCode {
	case http.StatusBadRequest:
		e.Type, e.Message = ErrorTypeInvalidRequest, "invalid request"
	case http.StatusNotFound:
		e.Type, e.Message = ErrorTypeNotFound, "not found"
	case http.StatusTooManyRequests:
		e.Type, e.Message = ErrorTypeRateLimit, "rate limit reached"
	case http.StatusServiceUnavailable:
		// data.police.uk answers 503 when a custom area holds more than
		// 10,000 records.
		e.Type, e.Message = ErrorTypeTooManyResults, "too many results for the area (HTTP 503)"
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusGatewayTimeout:
		e.Type, e.Message = ErrorTypeUnavailable, fmt.Sprintf("service unavailable (HTTP %d)", statusCode)
	default:
		e.Type, e.Message = ErrorTypeUnknown, fmt.Sprintf("HTTP %d", statusCode)
	}

	if body = strings.TrimSpace(body); body != "" {
		e.Message += " - " + body
	}

	return e
}

// classifyTransportError wraps an error returned by http.Client.Do.
func classifyTransportError(err error) *APIError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &APIError{Type: ErrorTypeTimeout, Message: "request timed out", Err: err}
	}

	return &APIError{Type: ErrorTypeNetwork, Message: "request failed", Err: err}
}
