// Package docs documento Swagger de la API (servido en /docs).
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

// SwaggerJSON documento OpenAPI 2.0 generado a partir de las anotaciones de los handlers.
//
//go:embed swagger.json
var SwaggerJSON []byte

type doc struct{}

func (doc) ReadDoc() string { return string(SwaggerJSON) }

func init() {
	swag.Register(swag.Name, doc{})
}
