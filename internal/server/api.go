package server

import (
	"net/http"

	"github.com/mpilhlt/dhamps-relay/internal/models"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
)

// Version is reported in the OpenAPI document.
const Version = "0.1.0"

// NewAPI creates a huma API on router. Response bodies carry no $schema link,
// and the OpenAPI/docs/schema routes exist only when docs is set.
func NewAPI(router *http.ServeMux, title string, docs bool) huma.API {
	// huma.NewError is package global; both services share one error envelope.
	huma.NewError = models.NewErrorBody

	config := huma.DefaultConfig(title, Version)
	config.CreateHooks = nil
	if !docs {
		config.OpenAPIPath = ""
		config.DocsPath = ""
		config.SchemasPath = ""
	}
	return humago.New(router, config)
}
