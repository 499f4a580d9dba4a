// Package api embeds the OpenAPI document describing herald's HTTP surface.
package api

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var document []byte

// Raw returns the embedded document.
func Raw() []byte {
	return document
}

// Load parses the embedded document.
func Load() (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}
	return doc, nil
}

// Version returns the document's info.version, or "unknown".
func Version() string {
	doc, err := Load()
	if err != nil || doc.Info == nil {
		return "unknown"
	}
	return doc.Info.Version
}
