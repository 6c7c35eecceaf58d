// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-server/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ArxivConfig holds settings for the arXiv provider.
type ArxivConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the arXiv API query endpoint.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// RequestInterval is the minimum spacing between API requests (default 3s,
	// as requested by the arXiv API terms of use). Zero disables pacing.
	RequestInterval time.Duration `json:"request_interval" yaml:"request_interval" mapstructure:"request_interval" validate:"gte=0"`

	// Burst is the number of requests allowed back to back before pacing applies.
	Burst int `json:"burst" yaml:"burst" mapstructure:"burst" validate:"gte=1"`
}

// Transport names accepted by ServerConfig.Transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// ServerConfig holds settings for the MCP host process.
type ServerConfig struct {
	// Transport selects stdio or streamable HTTP.
	Transport string `json:"transport" yaml:"transport" mapstructure:"transport" validate:"oneof=stdio http"`

	// Addr is the listen address for the HTTP transport.
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr" validate:"required_if=Transport http"`

	// Stateless serves each HTTP request without a persistent MCP session.
	Stateless bool `json:"stateless" yaml:"stateless" mapstructure:"stateless"`

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"oneof=trace debug info warn warning error"`

	// Format is json or console.
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"oneof=json console"`

	// Output is stdout or stderr. The stdio transport always logs to stderr.
	Output string `json:"output" yaml:"output" mapstructure:"output" validate:"oneof=stdout stderr"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" yaml:"path" mapstructure:"path" validate:"required_if=Enabled true"`
}

// HistoryConfig holds settings for the search history database.
type HistoryConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path" mapstructure:"path" validate:"required_if=Enabled true"`
}

// Config groups all settings of the research server.
type Config struct {
	// PapersDir is the root of the per-topic paper store.
	PapersDir string `json:"papers_dir" yaml:"papers_dir" mapstructure:"papers_dir" validate:"required"`

	Arxiv   ArxivConfig   `json:"arxiv" yaml:"arxiv" mapstructure:"arxiv"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Logging LoggingConfig `json:"logging" yaml:"logging" mapstructure:"logging"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" mapstructure:"metrics"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}

// DefaultConfig returns the configuration used when no file, flag or
// environment variable overrides a setting.
func DefaultConfig() Config {
	return Config{
		PapersDir: "papers",
		Arxiv: ArxivConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "research-server/0.1",
			},
			BaseURL:         "https://export.arxiv.org/api/query",
			RequestInterval: 3 * time.Second,
			Burst:           1,
		},
		Server: ServerConfig{
			Transport:       TransportStdio,
			Addr:            ":8000",
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "papers/history.db",
		},
	}
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports every violation in one error.
func (c Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
