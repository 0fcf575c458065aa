package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mpilhlt/dhamps-relay/internal/llm"
	"github.com/mpilhlt/dhamps-relay/internal/metrics"
	"github.com/mpilhlt/dhamps-relay/internal/models"
	"github.com/mpilhlt/dhamps-relay/internal/server"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

type promptHandler struct {
	log *zap.Logger
	m   *metrics.Metrics
}

// Define handler functions for each route
func (h *promptHandler) postPromptFunc(ctx context.Context, input *models.PromptRequest) (*models.PromptResponse, error) {
	log := h.log.With(zap.String("request_id", server.RequestIDFromContext(ctx)))

	if input.Body.Prompt == "" {
		h.m.PromptRejected.Inc()
		log.Debug("rejected prompt request without prompt")
		return nil, huma.Error400BadRequest(models.ErrNoPrompt)
	}

	completer, err := GetCompleter(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	select {
	case res := <-llm.CompleteAsync(ctx, completer, input.Body.Prompt):
		h.m.UpstreamDuration.Observe(time.Since(start).Seconds())
		if res.Err != nil {
			if errors.Is(res.Err, context.DeadlineExceeded) {
				h.m.UpstreamRequests.WithLabelValues(metrics.OutcomeTimeout).Inc()
				log.Warn("chat completion timed out", zap.Error(res.Err))
				return nil, huma.Error504GatewayTimeout(models.ErrUpstreamTimeout)
			}
			h.m.UpstreamRequests.WithLabelValues(metrics.OutcomeError).Inc()
			log.Error("chat completion failed", zap.Error(res.Err))
			return nil, huma.Error502BadGateway(models.ErrUpstreamFailed)
		}
		h.m.UpstreamRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
		log.Debug("chat completion succeeded",
			zap.Int("prompt_length", len(input.Body.Prompt)),
			zap.Int("response_length", len(res.Content)),
		)
		response := &models.PromptResponse{}
		response.Body.Response = res.Content
		return response, nil

	case <-ctx.Done():
		h.m.UpstreamDuration.Observe(time.Since(start).Seconds())
		h.m.UpstreamRequests.WithLabelValues(metrics.OutcomeTimeout).Inc()
		log.Warn("request finished before chat completion", zap.Error(ctx.Err()))
		return nil, huma.Error504GatewayTimeout(models.ErrUpstreamTimeout)
	}
}

// RegisterPromptRoutes registers the route of the prompt relay.
// m must not be nil.
func RegisterPromptRoutes(completer llm.Completer, log *zap.Logger, m *metrics.Metrics, api huma.API) error {
	h := &promptHandler{log: log, m: m}

	// Define huma.Operations for each route
	postPromptOp := huma.Operation{
		OperationID: "postPrompt",
		Method:      http.MethodPost,
		Path:        "/prompt",
		Summary:     "Send a prompt to the chat completion API and return its reply",
		Errors: []int{
			http.StatusBadRequest,
			http.StatusBadGateway,
			http.StatusGatewayTimeout,
		},
		Tags: []string{"prompt"},
	}

	// Register the routes with middleware
	huma.Register(api, postPromptOp, addCompleterToContext(completer, h.postPromptFunc))
	return nil
}
