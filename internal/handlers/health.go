package handlers

import (
	"context"
	"net/http"

	"github.com/mpilhlt/dhamps-relay/internal/models"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterHealthRoutes registers the liveness endpoint, reporting service as its name.
func RegisterHealthRoutes(service string, api huma.API) error {
	getHealthOp := huma.Operation{
		OperationID: "getHealth",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Report that the service is up",
		Tags:        []string{"health"},
	}

	huma.Register(api, getHealthOp, func(ctx context.Context, input *models.HealthRequest) (*models.HealthResponse, error) {
		response := &models.HealthResponse{}
		response.Body.Status = "ok"
		response.Body.Service = service
		return response, nil
	})
	return nil
}
