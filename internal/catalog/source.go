package catalog

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/buffercalc/internal/repository/mongodb"
)

// Source loads a complete catalog from some backing store.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
	Name() string
}

// StaticSource always returns the same catalog.
type StaticSource struct {
	catalog *Catalog
}

// NewStaticSource wraps a fixed catalog. A nil catalog means Default().
func NewStaticSource(c *Catalog) *StaticSource {
	if c == nil {
		c = Default()
	}
	return &StaticSource{catalog: c}
}

func (s *StaticSource) Load(context.Context) (*Catalog, error) { return s.catalog, nil }

func (s *StaticSource) Name() string { return "static" }

// FileSource reads a YAML catalog document from disk.
type FileSource struct {
	path string
}

// NewFileSource builds a source for the YAML file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load(context.Context) (*Catalog, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", s.path, err)
	}
	return Parse(raw)
}

func (s *FileSource) Name() string { return "file" }

// Parse decodes a YAML (or JSON) catalog document.
func Parse(raw []byte) (*Catalog, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog document: %w", err)
	}
	return FromDocument(doc)
}

// HTTPSource fetches a JSON catalog document from a URL.
type HTTPSource struct {
	client *resty.Client
	url    string
}

// NewHTTPSource builds a source polling url.
func NewHTTPSource(url string) *HTTPSource {
	client := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second).
		SetRetryCount(2)

	return &HTTPSource{client: client, url: url}
}

func (s *HTTPSource) Load(ctx context.Context) (*Catalog, error) {
	var doc Document
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&doc).
		Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog %s: %w", s.url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch catalog %s: status %d", s.url, resp.StatusCode())
	}
	return FromDocument(doc)
}

func (s *HTTPSource) Name() string { return "http" }

// MongoSource reads both reagent tables from MongoDB.
type MongoSource struct {
	repo mongodb.Repository
}

// NewMongoSource builds a source over the reagent collections.
func NewMongoSource(repo mongodb.Repository) *MongoSource {
	return &MongoSource{repo: repo}
}

func (s *MongoSource) Load(ctx context.Context) (*Catalog, error) {
	stocks, err := s.repo.StockSolutions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stock solutions: %w", err)
	}
	solids, err := s.repo.SolidReagents(ctx)
	if err != nil {
		return nil, fmt.Errorf("load solid reagents: %w", err)
	}
	return New(stocks, solids)
}

func (s *MongoSource) Name() string { return "mongodb" }
