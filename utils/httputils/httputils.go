// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package httputils provides utility functions for working with HTTP.
package httputils

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"
)

/////////////////////////////////////////
/// RountTrippers

// LoggingRoundTripper adds a very primitive logging to a http transaction.
type LoggingRoundTripper struct {
	Transport http.RoundTripper
	Writer    io.Writer
	DumpBody  bool

	// SummarizeParams lists query parameters whose values are replaced by a
	// short summary in the dump. Area queries carry hundreds of coordinates.
	SummarizeParams []string
}

// reduce the content the liens.
func abbreviate(lines []string, prefix rune) []string {
	const maxLines, maxChars = 2048, 512

	for i, line := range lines {
		if i < maxLines {
			lines[i] = fmt.Sprintf("%c %s", prefix, line)
		} else {
			break
		}
	}

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines = append(lines, "…")
	}

	for i, line := range lines {
		if len(line) > maxChars {
			lines[i] = line[0:maxChars] + "…"
		}
	}

	return lines
}

// summarize rewrites the request line so that the values of the given query
// parameters show only their size. Colon separated values are counted as
// items, anything else by length.
func summarize(line string, params []string) string {
	for _, param := range params {
		key := param + "="

		start := strings.Index(line, "?"+key)
		if start == -1 {
			start = strings.Index(line, "&"+key)
		}

		if start == -1 {
			continue
		}

		start += 1 + len(key)

		end := strings.IndexAny(line[start:], "& ")
		if end == -1 {
			end = len(line) - start
		}

		value := line[start : start+end]

		var summary string
		if n := strings.Count(value, "%3A") + strings.Count(value, ":"); n > 0 {
			summary = fmt.Sprintf("<%d items>", n+1)
		} else {
			summary = fmt.Sprintf("<%d chars>", len(value))
		}

		line = line[:start] + summary + line[start+end:]
	}

	return line
}

func (t *LoggingRoundTripper) dumpRequest(req *http.Request) error {
	dump, err := httputil.DumpRequestOut(req, t.DumpBody)
	if err != nil {
		return fmt.Errorf("tracing HTTP request: %w", err)
	}

	lines := strings.Split(string(dump), "\n")
	if len(lines) > 0 && len(t.SummarizeParams) > 0 {
		lines[0] = summarize(lines[0], t.SummarizeParams)
	}

	for i, line := range lines {
		if strings.HasPrefix(strings.ToLower(line), "authorization:") {
			lines[i] = "Authorization: <redacted>"
		}
	}

	lines = abbreviate(lines, '>')
	lines = append(lines, "")
	_, err = fmt.Fprint(t.Writer, strings.Join(lines, "\n"))

	return err
}

func (t *LoggingRoundTripper) dumpResponse(resp *http.Response, duration time.Duration) error {
	dump, err := httputil.DumpResponse(resp, t.DumpBody)
	if err != nil {
		return fmt.Errorf("tracing HTTP request: %w", err)
	}

	lines := abbreviate(strings.Split(string(dump), "\n"), '<')

	_, err = fmt.Fprintf(t.Writer, "< RESPONSE: [%v]\n", duration)
	if err != nil {
		return fmt.Errorf("tracing HTTP request: %w", err)
	}

	lines = append(lines, "")
	_, err = fmt.Fprint(t.Writer, strings.Join(lines, "\n"))

	return err
}

// RoundTrip implements the http.RoundTripper interface.
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Writer == nil {
		return t.Transport.RoundTrip(req)
	}

	if err := t.dumpRequest(req); err != nil {
		return nil, err
	}

	start := time.Now()

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if err := t.dumpResponse(resp, time.Since(start)); err != nil {
		return nil, err
	}

	return resp, nil
}

// AppendRequestHeadersRoundTripper adds headers to the request.
type AppendRequestHeadersRoundTripper struct {
	Transport http.RoundTripper
	Headers   map[string]string
}

// RoundTrip implements the http.RoundTripper interface.
func (t *AppendRequestHeadersRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range t.Headers {
		req.Header.Set(k, v)
	}

	resp, err := t.Transport.RoundTrip(req)

	return resp, err
}

////////////////////////////////////////////////////

// HasMediaType reports whether the Content-Type header of resp names the
// expected media type, ignoring parameters such as charset. A missing header
// is accepted: some endpoints don't bother to send it.
func HasMediaType(resp *http.Response, expected string) bool {
	header := resp.Header.Get("Content-Type")
	if header == "" {
		return true
	}

	media, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}

	return strings.EqualFold(media, expected)
}
