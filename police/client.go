// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package police is a small client for the data.police.uk API.
package police

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/policemap/policemap/spatial"
	"github.com/policemap/policemap/utils/httputils"
)

// DefaultBaseURL is the root of the public API.
const DefaultBaseURL = "https://data.police.uk/api/"

// AllCrime is the category that matches every street crime.
const AllCrime = "all-crime"

// ClientOptions configuration for Client.
type ClientOptions struct {
	// BaseURL is the API root, DefaultBaseURL when empty
	BaseURL string

	// UserAgent is the User-Agent header to use in HTTP requests
	UserAgent string

	// Timeout bounds each request, including reading the body
	Timeout time.Duration

	// Enables light tracing of HTTP requests and responses
	EnableHTTPTrace bool

	// Enables full HTTP body tracing
	EnableHTTPBodyTrace bool

	// TraceWriter receives the traces, os.Stderr when nil
	TraceWriter io.Writer
}

// Client queries the data.police.uk API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new client with the provided options.
func NewClient(options *ClientOptions) *Client {
	if options == nil {
		options = &ClientOptions{}
	}

	var httpLogWriter io.Writer
	if options.EnableHTTPTrace || options.EnableHTTPBodyTrace {
		httpLogWriter = options.TraceWriter
		if httpLogWriter == nil {
			httpLogWriter = os.Stderr
		}
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          4,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       30 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
	}

	loggingTransport := &httputils.LoggingRoundTripper{
		Writer:          httpLogWriter,
		DumpBody:        options.EnableHTTPBodyTrace,
		Transport:       transport,
		SummarizeParams: []string{"poly"},
	}

	userAgent := "policemap/unknown"
	if options.UserAgent != "" {
		userAgent = options.UserAgent
	}

	headerTransport := &httputils.AppendRequestHeadersRoundTripper{
		Headers: map[string]string{
			"User-Agent": userAgent,
			"Accept":     "application/json",
		},
		Transport: loggingTransport,
	}

	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   timeout,
			Transport: headerTransport,
		},
	}
}

// get issues a GET against endpoint and decodes the JSON response into v.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values, v any) error {
	u, err := url.JoinPath(c.baseURL, endpoint)
	if err != nil {
		return fmt.Errorf("building %s URL: %w", endpoint, err)
	}

	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", endpoint, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		apiErr := classifyTransportError(err)
		apiErr.Endpoint = endpoint

		return apiErr
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		apiErr := ClassifyHTTPError(resp.StatusCode, string(body))
		apiErr.Endpoint = endpoint

		return apiErr
	}

	if !httputils.HasMediaType(resp, "application/json") {
		return fmt.Errorf("%s: unexpected media type %s", endpoint, resp.Header.Get("Content-Type"))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}

	return nil
}

// ValidateMonth checks that month is a YYYY-MM string.
func ValidateMonth(month string) error {
	if _, err := time.Parse("2006-01", month); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}

	return nil
}

func areaQuery(month string, area spatial.Polygon) (url.Values, error) {
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}

	if len(area) < 3 {
		return nil, spatial.ErrTooFewVertices
	}

	return url.Values{
		"date": {month},
		"poly": {area.QueryString()},
	}, nil
}

// StopsStreet returns the stop and searches within area during month.
func (c *Client) StopsStreet(ctx context.Context, month string, area spatial.Polygon) ([]StopAndSearch, error) {
	query, err := areaQuery(month, area)
	if err != nil {
		return nil, err
	}

	var ret []StopAndSearch
	if err := c.get(ctx, "stops-street", query, &ret); err != nil {
		return nil, err
	}

	return ret, nil
}

// CrimesStreet returns the street crimes of category within area during
// month. An empty category means AllCrime.
func (c *Client) CrimesStreet(
	ctx context.Context,
	category, month string,
	area spatial.Polygon,
) ([]StreetCrime, error) {
	query, err := areaQuery(month, area)
	if err != nil {
		return nil, err
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = AllCrime
	}

	var ret []StreetCrime
	if err := c.get(ctx, "crimes-street/"+url.PathEscape(category), query, &ret); err != nil {
		return nil, err
	}

	return ret, nil
}

// LastUpdated returns the date the crime data was last refreshed, as sent by
// the API.
func (c *Client) LastUpdated(ctx context.Context) (string, error) {
	var resp struct {
		Date string `json:"date"`
	}

	if err := c.get(ctx, "crime-last-updated", nil, &resp); err != nil {
		return "", err
	}

	if resp.Date == "" {
		return "", errors.New("crime-last-updated: response has no date")
	}

	return resp.Date, nil
}
