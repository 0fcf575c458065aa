package models

import (
	"os"
	"time"
)

// APIKeyEnv is read when no API key option is given.
const APIKeyEnv = "OPENAI_API_KEY"

// RelayOptions for the prompt relay CLI.
type RelayOptions struct {
	Debug           bool   `doc:"Enable debug logging" short:"d" default:"false"`
	LogFormat       string `doc:"Log format (console or json)" default:"console"`
	Host            string `doc:"Hostname to listen on" default:"localhost"`
	Port            int    `doc:"Port to listen on" short:"p" default:"8000"`
	OpenAIAPIKey    string `name:"openai-api-key" doc:"Chat completion API key (falls back to OPENAI_API_KEY)"`
	OpenAIBaseURL   string `name:"openai-base-url" doc:"Chat completion API base URL (empty for the provider default)"`
	Model           string `doc:"Chat completion model" default:"gpt-4"`
	UpstreamTimeout int    `doc:"Upstream request timeout in seconds (0 disables)" default:"0"`
	Metrics         bool   `doc:"Expose prometheus metrics on /metrics" default:"true"`
	Docs            bool   `doc:"Serve OpenAPI document and docs UI" default:"true"`
}

// StaticOptions for the static asset CLI.
type StaticOptions struct {
	Debug        bool   `doc:"Enable debug logging" short:"d" default:"false"`
	LogFormat    string `doc:"Log format (console or json)" default:"console"`
	Host         string `doc:"Hostname to listen on" default:"localhost"`
	Port         int    `doc:"Port to listen on" short:"p" default:"8080"`
	Root         string `doc:"Directory that SPA paths are resolved against" default:"."`
	Index        string `doc:"Index document served for / and unmatched paths (relative to root)" default:"index.html"`
	StaticDir    string `doc:"Directory mounted under the static prefix" default:"static"`
	StaticPrefix string `doc:"URL prefix of the static directory" default:"/static"`
	Metrics      bool   `doc:"Expose prometheus metrics on /metrics" default:"false"`
}

// APIKey returns the configured key, falling back to $OPENAI_API_KEY.
func (o *RelayOptions) APIKey() string {
	if o.OpenAIAPIKey != "" {
		return o.OpenAIAPIKey
	}
	return os.Getenv(APIKeyEnv)
}

// Timeout returns UpstreamTimeout as a duration. Negative values count as zero.
func (o *RelayOptions) Timeout() time.Duration {
	if o.UpstreamTimeout <= 0 {
		return 0
	}
	return time.Duration(o.UpstreamTimeout) * time.Second
}
