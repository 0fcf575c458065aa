package models

import "net/http"

// Health check
// GET Path: "/healthz"

type HealthRequest struct{}

type HealthResponse struct {
	Header []http.Header `json:"header,omitempty" doc:"Response headers"`
	Body   struct {
		Status  string `json:"status" example:"ok" doc:"Service status"`
		Service string `json:"service" example:"relay" doc:"Name of the answering service"`
	}
}
