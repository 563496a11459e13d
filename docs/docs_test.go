package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/jhoicas/swifthomes-api/docs"
)

func TestSwaggerDocument(t *testing.T) {
	var doc struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(docs.SwaggerJSON, &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	for _, p := range []string{"/api/auth/login", "/api/auth/register", "/api/access/check", "/api/onboarding/{id}/complete"} {
		assert.Contains(t, doc.Paths, p)
	}

	registered, err := swag.ReadDoc()
	require.NoError(t, err)
	assert.JSONEq(t, string(docs.SwaggerJSON), registered)
}
