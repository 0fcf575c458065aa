package models

import "net/http"

// Request and Response structs for the prompt relay API
// The request structs must be structs with fields for the request path/query/header/cookie parameters and/or body.
// The response structs must be structs with fields for the output headers and body of the operation, if any.

// Relay a prompt
// POST Path: "/prompt"

// The body is optional and unknown fields are ignored, so that a missing
// prompt is reported by the handler and not by schema validation.
type PromptRequest struct {
	Body struct {
		_      struct{} `json:"-" additionalProperties:"true"`
		Prompt string   `json:"prompt,omitempty" example:"Write a haiku about Go" doc:"Prompt sent verbatim as a single user message"`
	} `required:"false"`
}

type PromptResponse struct {
	Header []http.Header `json:"header,omitempty" doc:"Response headers"`
	Body   struct {
		Response string `json:"response" doc:"Content of the first choice returned by the chat completion API"`
	}
}

// ErrNoPrompt is the message returned when the request carries no prompt.
const ErrNoPrompt = "No prompt provided"

// Messages returned when the chat completion call does not succeed.
const (
	ErrUpstreamFailed  = "Upstream chat completion failed"
	ErrUpstreamTimeout = "Upstream chat completion timed out"
)
