// Package taxonomy holds the skill pattern catalog: a mapping from category
// names to text patterns used to recognize skill mentions. The catalog is
// loaded once at startup and is read-only afterwards, so it is safe to share
// between concurrent batches.
package taxonomy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/mitchellh/mapstructure"
)

//go:embed default_catalog.json
var defaultCatalogJSON []byte

// Source tells which path the loader took.
type Source string

const (
	// SourceFile means the catalog came from the configured file.
	SourceFile Source = "file"
	// SourceEmbedded means the loader fell back to the built-in catalog.
	SourceEmbedded Source = "embedded"
)

// Category is a named, ordered list of patterns.
type Category struct {
	Name     string
	Patterns []string
}

// Catalog is an immutable set of pattern categories.
type Catalog struct {
	Categories []Category
}

// LoadResult carries the catalog together with the source it was loaded
// from. Err holds the underlying load failure when the embedded fallback was
// used; it is informational, never fatal.
type LoadResult struct {
	Catalog *Catalog
	Source  Source
	Err     error
}

// Load reads the catalog from path. A missing or unparsable file is not an
// error for the caller: the embedded default catalog is substituted and the
// failure is reported through the tagged result.
func Load(path string) LoadResult {
	if path == "" {
		return LoadResult{Catalog: mustDefault(), Source: SourceEmbedded}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return LoadResult{Catalog: mustDefault(), Source: SourceEmbedded, Err: err}
	}

	catalog, err := parse(data)
	if err != nil {
		return LoadResult{Catalog: mustDefault(), Source: SourceEmbedded, Err: err}
	}

	return LoadResult{Catalog: catalog, Source: SourceFile}
}

// parse decodes raw JSON into a catalog. The JSON shape is validated
// leniently first, then decoded into the typed form. Categories are ordered
// by name so extraction order is deterministic across runs.
func parse(data []byte) (*Catalog, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog json: %w", err)
	}

	categories := make(map[string][]string, len(raw))
	cfg := &mapstructure.DecoderConfig{
		Result:      &categories,
		ErrorUnused: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	catalog := &Catalog{Categories: make([]Category, 0, len(names))}
	for _, name := range names {
		catalog.Categories = append(catalog.Categories, Category{
			Name:     name,
			Patterns: categories[name],
		})
	}

	return catalog, nil
}

func mustDefault() *Catalog {
	catalog, err := parse(defaultCatalogJSON)
	if err != nil {
		// The embedded catalog is part of the binary and covered by tests.
		panic(fmt.Sprintf("taxonomy: embedded catalog is invalid: %v", err))
	}
	return catalog
}
