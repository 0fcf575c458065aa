package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mpilhlt/dhamps-relay/internal/llm"
	"github.com/mpilhlt/dhamps-relay/internal/metrics"

	huma "github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

type contextKey string

// Context keys
const (
	CompleterKey = contextKey("completer")
)

// Error responses
var (
	ErrCompleterNotFound = errors.New("chat completer not found in context")
)

// Service names reported by the health endpoint
const (
	ServiceRelay  = "relay"
	ServiceStatic = "static"
)

// AddRelayRoutes adds all the routes of the prompt relay to the API
func AddRelayRoutes(completer llm.Completer, log *zap.Logger, m *metrics.Metrics, api huma.API) error {
	err := RegisterPromptRoutes(completer, log, m, api)
	if err != nil {
		log.Error("unable to register prompt routes", zap.Error(err))
		return err
	}
	err = RegisterHealthRoutes(ServiceRelay, api)
	if err != nil {
		log.Error("unable to register health routes", zap.Error(err))
		return err
	}
	return nil
}

// Middleware to add the chat completer to the context
func addCompleterToContext[I any, O any](completer llm.Completer, next func(context.Context, *I) (*O, error)) func(context.Context, *I) (*O, error) {
	return func(ctx context.Context, input *I) (*O, error) {
		if completer == nil {
			return nil, fmt.Errorf("provided completer is nil")
		}
		ctx = context.WithValue(ctx, CompleterKey, completer)
		return next(ctx, input)
	}
}

// Get the chat completer from the context
// (exported helper function so that blackbox testing can access it)
func GetCompleter(ctx context.Context) (llm.Completer, error) {
	completer, ok := ctx.Value(CompleterKey).(llm.Completer)
	if !ok {
		return nil, huma.NewError(http.StatusInternalServerError, ErrCompleterNotFound.Error())
	}
	return completer, nil
}
