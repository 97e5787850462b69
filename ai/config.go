// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for the text-generation service.
type Config struct {
	// Host is the base URL of the generation service.
	// Example: "http://localhost:11434" for a local Ollama server
	Host string

	// Model is the default model identifier used when a request does not name one.
	// Example: "gemma3:latest", "qwen2.5:3b"
	Model string

	// APIKey is sent as a bearer token by backends that need one.
	// Local services ignore it.
	APIKey string

	// ConnectTimeout bounds dialing and the TLS handshake.
	ConnectTimeout time.Duration

	// ReadTimeout bounds the wait for a response once the request is sent.
	// Generation can be very slow, so this is usually much larger than the others.
	ReadTimeout time.Duration

	// WriteTimeout bounds sending the request body.
	WriteTimeout time.Duration

	// PoolTimeout bounds how long an idle connection is kept for reuse.
	PoolTimeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the generation service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the default model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithTimeouts sets the connect, read, write and pool timeouts.
// Zero values leave the current setting untouched.
func WithTimeouts(connect, read, write, pool time.Duration) ConfigOption {
	return func(c *Config) {
		if connect > 0 {
			c.ConnectTimeout = connect
		}
		if read > 0 {
			c.ReadTimeout = read
		}
		if write > 0 {
			c.WriteTimeout = write
		}
		if pool > 0 {
			c.PoolTimeout = pool
		}
	}
}

// DefaultConfig returns a Config with sensible defaults for a local Ollama server.
func DefaultConfig() *Config {
	return &Config{
		Host:           "http://localhost:11434",
		Model:          "gemma3:latest",
		ConnectTimeout: 60 * time.Second,
		ReadTimeout:    3600 * time.Second,
		WriteTimeout:   60 * time.Second,
		PoolTimeout:    60 * time.Second,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("http://gpu-box:11434"),
//	    WithModel("qwen2.5:14b"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize puts the configuration in canonical form.
// Trailing slashes are removed from the host so paths can be appended safely.
func (c *Config) Normalize() {
	c.Host = strings.TrimRight(strings.TrimSpace(c.Host), "/")
	c.Model = strings.TrimSpace(c.Model)
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.ConnectTimeout <= 0 {
		return errors.New("ai config: ConnectTimeout must be positive")
	}
	if c.ReadTimeout <= 0 {
		return errors.New("ai config: ReadTimeout must be positive")
	}
	if c.WriteTimeout <= 0 {
		return errors.New("ai config: WriteTimeout must be positive")
	}
	if c.PoolTimeout <= 0 {
		return errors.New("ai config: PoolTimeout must be positive")
	}
	return nil
}
