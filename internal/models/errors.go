package models

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// ErrorBody is the error envelope shared by every endpoint of both services.
// The HTTP status carries the error class, the body only the message.
type ErrorBody struct {
	status  int
	Message string   `json:"error" doc:"Error message"`
	Details []string `json:"details,omitempty" doc:"Optional list of individual problems, e.g. validation failures"`
}

// NewErrorBody has the signature of huma.NewError so it can replace it.
func NewErrorBody(status int, message string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		details = append(details, err.Error())
	}
	if len(details) == 0 {
		details = nil
	}
	return &ErrorBody{status: status, Message: message, Details: details}
}

func (e *ErrorBody) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *ErrorBody) GetStatus() int {
	if e.status == 0 {
		return http.StatusInternalServerError
	}
	return e.status
}

// ContentType keeps the negotiated type instead of huma's application/problem+json.
func (e *ErrorBody) ContentType(ct string) string {
	return ct
}
