// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/policemap/policemap/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentKind_Rendered(t *testing.T) {
	var buf bytes.Buffer

	doc := NewMapDocument(MapOptions{Center: spatial.Point{Lat: 51, Lng: 0}})
	require.NoError(t, doc.Render(&buf))

	kind, err := DocumentKind(&buf)
	require.NoError(t, err)
	assert.Equal(t, KindMap, kind)

	buf.Reset()

	charts := &ChartDocument{Title: "Charts", Tally: NewStopAndSearchTally()}
	require.NoError(t, charts.Render(&buf))

	kind, err = DocumentKind(&buf)
	require.NoError(t, err)
	assert.Equal(t, KindCharts, kind)
}

func TestDocumentKind_Untagged(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{"no meta", `<html><head><title>x</title></head><body></body></html>`},
		{"other meta", `<html><head><meta name="author" content="map"></head></html>`},
		{"meta in body", `<html><body><meta name="policemap-document" content="map"></body></html>`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := DocumentKind(strings.NewReader(tt.page))
			require.NoError(t, err)
			assert.Empty(t, kind)
		})
	}
}
