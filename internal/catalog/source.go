package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
)

//go:embed data/catalog.json
var embeddedCatalog []byte

//go:embed data/visa_links.json
var embeddedVisaLinks []byte

// DocumentSource supplies a raw catalog document.
type DocumentSource interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, Format, error)
}

// LoadFrom fetches a document from src and loads it.
func LoadFrom(ctx context.Context, src DocumentSource) (*Catalog, error) {
	data, format, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog from %s: %w", src.Name(), err)
	}
	cat, err := Load(data, format)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", src.Name(), err)
	}
	return cat, nil
}

// EmbeddedSource serves the catalog compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Name() string { return "embedded" }

func (EmbeddedSource) Fetch(context.Context) ([]byte, Format, error) {
	return embeddedCatalog, FormatJSON, nil
}

// FileSource reads a JSON or YAML catalog from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file " + s.Path }

func (s FileSource) Fetch(context.Context) ([]byte, Format, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, "", err
	}
	return data, FormatFromPath(s.Path), nil
}

// EmbeddedVisaLinks loads the visa-link table compiled into the binary.
func EmbeddedVisaLinks() (*VisaLinks, error) {
	return LoadVisaLinks(embeddedVisaLinks)
}

// LoadVisaLinksFile loads a visa-link table from disk.
func LoadVisaLinksFile(path string) (*VisaLinks, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read visa links: %w", err)
	}
	return LoadVisaLinks(data)
}
