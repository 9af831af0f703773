// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

package preview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/policemap/policemap/report"
	"github.com/policemap/policemap/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUpdater struct {
	date string
	err  error
}

func (s *stubUpdater) LastUpdated(_ context.Context) (string, error) {
	return s.date, s.err
}

func writeDocument(t *testing.T, path string, render func(*os.File) error) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, render(f))
	require.NoError(t, f.Close())
}

// setupServerTest writes a map, a chart page and an unrelated page to a
// temporary directory and serves it.
func setupServerTest(t *testing.T, source LastUpdater) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()

	writeDocument(t, filepath.Join(dir, "crimedata.html"), func(f *os.File) error {
		return report.NewMapDocument(report.MapOptions{Center: spatial.Point{Lat: 51, Lng: 0}}).Render(f)
	})
	writeDocument(t, filepath.Join(dir, "graphs.html"), func(f *os.File) error {
		return (&report.ChartDocument{Title: "Charts", Tally: report.NewStopAndSearchTally()}).Render(f)
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.html"), []byte("<html><head></head></html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "map.geojson"), []byte("{}"), 0o600))

	return NewServer(dir, source).Router()
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)

	return w
}

func TestListDocuments(t *testing.T) {
	router := setupServerTest(t, &stubUpdater{})

	w := get(router, "/api/documents")
	require.Equal(t, http.StatusOK, w.Code)

	var docs []Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docs))

	want := []Document{
		{Name: "crimedata.html", Kind: "map", URL: "/map/crimedata.html"},
		{Name: "graphs.html", Kind: "charts", URL: "/charts/graphs.html"},
	}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Errorf("documents mismatch (-want +got):\n%s", diff)
	}
}

func TestIndexView(t *testing.T) {
	router := setupServerTest(t, &stubUpdater{})

	w := get(router, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<a href="/map/crimedata.html">crimedata.html</a>`)
	assert.Contains(t, w.Body.String(), `<a href="/charts/graphs.html">graphs.html</a>`)
	assert.NotContains(t, w.Body.String(), "notes.html")
}

func TestIndexView_Empty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewServer(t.TempDir(), &stubUpdater{}).Router()

	w := get(router, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No documents yet")

	w = get(router, "/api/documents")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestDocumentView(t *testing.T) {
	router := setupServerTest(t, &stubUpdater{})

	tests := []struct {
		target string
		code   int
		body   string
	}{
		{"/map/crimedata.html", http.StatusOK, "L.map("},
		{"/charts/graphs.html", http.StatusOK, "Plotly.newPlot"},
		{"/charts/crimedata.html", http.StatusNotFound, "no charts named crimedata.html"},
		{"/map/graphs.html", http.StatusNotFound, "no map named graphs.html"},
		{"/map/notes.html", http.StatusNotFound, "no map named notes.html"},
		{"/map/missing.html", http.StatusNotFound, "no map named missing.html"},
		{"/map/..", http.StatusBadRequest, "invalid document name"},
		{"/map/.hidden.html", http.StatusBadRequest, "invalid document name"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := get(router, tt.target)
			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestLastUpdated(t *testing.T) {
	router := setupServerTest(t, &stubUpdater{date: "2025-03-01"})

	w := get(router, "/api/last-updated")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"date":"2025-03-01"}`, w.Body.String())
}

func TestLastUpdated_Failure(t *testing.T) {
	router := setupServerTest(t, &stubUpdater{err: errors.New("crime-last-updated: HTTP 500")})

	w := get(router, "/api/last-updated")
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"crime-last-updated: HTTP 500"}`, w.Body.String())
}
