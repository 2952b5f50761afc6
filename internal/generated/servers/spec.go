package servers

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiYAML []byte

// GetSwagger returns the validated OpenAPI document of the API.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("error loading openapi document: %w", err)
	}

	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("error validating openapi document: %w", err)
	}

	return doc, nil
}

type swaggerDoc string

func (d swaggerDoc) ReadDoc() string {
	return string(d)
}

var registerOnce sync.Once

// RegisterSwaggerDoc publishes the document in the swag registry under
// swag.Name, where echo-swagger serves it as doc.json. Repeated calls are
// no-ops.
func RegisterSwaggerDoc() error {
	var err error

	registerOnce.Do(func() {
		var doc *openapi3.T
		if doc, err = GetSwagger(); err != nil {
			return
		}

		var raw []byte
		if raw, err = json.Marshal(doc); err != nil {
			return
		}

		swag.Register(swag.Name, swaggerDoc(raw))
	})

	return err
}
