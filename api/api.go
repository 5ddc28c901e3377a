// Package api holds the OpenAPI contract of the HTTP surface.
package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var spec []byte

// Spec returns the raw YAML document.
func Spec() []byte {
	out := make([]byte, len(spec))
	copy(out, spec)
	return out
}

// Load parses and validates the contract.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("parse openapi contract: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi contract: %w", err)
	}
	return doc, nil
}

var registerOnce sync.Once

type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string { return d.json }

// RegisterSwagger publishes doc under the default swag name so that the
// swagger UI handler can serve it as doc.json. Only the first call registers.
func RegisterSwagger(doc *openapi3.T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	registerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(data)})
	})
	return nil
}
