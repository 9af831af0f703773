// Copyright 2025 The PoliceMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package preview serves generated documents on a local web server.
package preview

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/policemap/policemap/report"
)

// DefaultAddr keeps the server local only.
const DefaultAddr = "localhost:8080"

//go:embed templates/*.html
var templatesFS embed.FS

// LastUpdater reports when the crime data was last refreshed.
// *police.Client implements it.
type LastUpdater interface {
	LastUpdated(ctx context.Context) (string, error)
}

// Document is a generated page found in the served directory.
type Document struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

type Server struct {
	dir    string
	source LastUpdater
}

func NewServer(dir string, source LastUpdater) *Server {
	return &Server{dir: dir, source: source}
}

// Router returns the engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	r.GET("/", s.indexView)
	r.GET("/map/:name", s.documentView(report.KindMap))
	r.GET("/charts/:name", s.documentView(report.KindCharts))
	r.GET("/api/documents", s.listDocuments)
	r.GET("/api/last-updated", s.lastUpdated)

	return r
}

func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

// documentKind reads the kind tag of the page at path.
func documentKind(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	defer f.Close()

	return report.DocumentKind(f)
}

// documents lists the generated pages in the served directory, by name.
func (s *Server) documents() ([]Document, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.dir, err)
	}

	var docs []Document

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".html") {
			continue
		}

		kind, err := documentKind(filepath.Join(s.dir, e.Name()))
		if err != nil {
			log.Printf("Skipping %s: %s", e.Name(), err)

			continue
		}

		if kind != report.KindMap && kind != report.KindCharts {
			continue
		}

		docs = append(docs, Document{
			Name: e.Name(),
			Kind: kind,
			URL:  "/" + kind + "/" + e.Name(),
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })

	return docs, nil
}

func (s *Server) indexView(ctx *gin.Context) {
	docs, err := s.documents()
	if err != nil {
		ctx.String(http.StatusInternalServerError, err.Error())

		return
	}

	ctx.HTML(http.StatusOK, "index.html", gin.H{
		"Dir":       s.dir,
		"Documents": docs,
	})
}

func (s *Server) listDocuments(ctx *gin.Context) {
	docs, err := s.documents()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	if docs == nil {
		docs = []Document{}
	}

	ctx.JSON(http.StatusOK, docs)
}

// documentView serves a page of the given kind. Names are plain file names
// inside the served directory.
func (s *Server) documentView(kind string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		name := ctx.Param("name")
		if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid document name"})

			return
		}

		path := filepath.Join(s.dir, name)

		got, err := documentKind(path)
		if errors.Is(err, fs.ErrNotExist) || (err == nil && got != kind) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no %s named %s", kind, name)})

			return
		}

		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

			return
		}

		ctx.File(path)
	}
}

func (s *Server) lastUpdated(ctx *gin.Context) {
	date, err := s.source.LastUpdated(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"date": date})
}
