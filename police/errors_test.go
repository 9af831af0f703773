// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package police

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyHTTPError(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorType
	}{
		{http.StatusBadRequest, ErrorTypeInvalidRequest},
		{http.StatusNotFound, ErrorTypeNotFound},
		{http.StatusTooManyRequests, ErrorTypeRateLimit},
		{http.StatusServiceUnavailable, ErrorTypeTooManyResults},
		{http.StatusInternalServerError, ErrorTypeUnavailable},
		{http.StatusBadGateway, ErrorTypeUnavailable},
		{http.StatusGatewayTimeout, ErrorTypeUnavailable},
		{http.StatusTeapot, ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			got := ClassifyHTTPError(tt.status, "")
			assert.Equal(t, tt.want, got.Type)
			assert.Equal(t, tt.status, got.StatusCode)
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	e := ClassifyHTTPError(http.StatusServiceUnavailable, "  busy \n")
	e.Endpoint = "stops-street"
	assert.Equal(t, "stops-street: too many results for the area (HTTP 503) - busy", e.Error())

	cause := errors.New("connection refused")
	e = &APIError{Type: ErrorTypeNetwork, Message: "request failed", Err: cause}
	assert.Equal(t, "request failed: connection refused", e.Error())
	assert.ErrorIs(t, e, cause)
}

func TestErrorPredicates(t *testing.T) {
	tooMany := fmt.Errorf("fetching: %w", ClassifyHTTPError(http.StatusServiceUnavailable, ""))
	limited := ClassifyHTTPError(http.StatusTooManyRequests, "")
	timeout := classifyTransportError(fmt.Errorf("get: %w", context.DeadlineExceeded))
	plain := errors.New("503 too many results")

	assert.True(t, IsTooManyResults(tooMany))
	assert.False(t, IsTooManyResults(limited))
	assert.False(t, IsTooManyResults(plain))

	assert.True(t, IsRateLimit(limited))
	assert.False(t, IsRateLimit(tooMany))

	assert.True(t, IsTimeout(timeout))
	assert.False(t, IsTimeout(classifyTransportError(errors.New("dial tcp: refused"))))
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "too many results", ErrorTypeTooManyResults.String())
	assert.Equal(t, "unknown", ErrorType(42).String())
}
