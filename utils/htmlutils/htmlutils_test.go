// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package htmlutils

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaContent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		found    bool
	}{
		{"found", `<html><head><meta name="kind" content="map"></head></html>`, "map", true},
		{"self closing", `<head><meta content="charts" name="kind"/></head>`, "charts", true},
		{"case insensitive name", `<head><META NAME="Kind" CONTENT="map"></head>`, "map", true},
		{"first wins", `<head><meta name="kind" content="a"><meta name="kind" content="b"></head>`, "a", true},
		{"other meta", `<head><meta charset="utf-8"><meta name="author" content="x"></head>`, "", false},
		{"after head", `<head></head><meta name="kind" content="map">`, "", false},
		{"in body", `<body><meta name="kind" content="map"></body>`, "", false},
		{"empty", ``, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, found, err := MetaContent(strings.NewReader(tt.input), "kind")
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, content)
		})
	}
}

func TestMetaContent_ReadError(t *testing.T) {
	boom := errors.New("boom")

	_, found, err := MetaContent(iotest.ErrReader(boom), "kind")
	require.ErrorIs(t, err, boom)
	assert.False(t, found)
}
