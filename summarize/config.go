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


package summarize

import (
	"fmt"
	"time"

	"github.com/poiesic/sumry/chunk"
	"github.com/poiesic/sumry/retry"
)

// Config holds the tuning parameters of a Summarizer.
type Config struct {
	// Model is sent with every generation request.
	// Empty means the generator's configured model.
	Model string

	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int

	// ChunkOverlap is the number of characters shared by consecutive chunks.
	ChunkOverlap int

	// MaxRetries is the number of retries after a failed generation call.
	MaxRetries int

	// BackoffBase is the wait before the first retry; later waits double.
	BackoffBase time.Duration

	// Concurrency bounds in-flight chunk summaries.
	// Zero runs every chunk at once.
	Concurrency int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithModel sets the model sent with generation requests.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithChunking sets the chunk size and overlap.
func WithChunking(size, overlap int) ConfigOption {
	return func(c *Config) {
		c.ChunkSize = size
		c.ChunkOverlap = overlap
	}
}

// WithRetry sets the retry count and backoff base.
func WithRetry(maxRetries int, backoffBase time.Duration) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = maxRetries
		c.BackoffBase = backoffBase
	}
}

// WithConcurrency sets the in-flight limit for chunk summaries.
func WithConcurrency(n int) ConfigOption {
	return func(c *Config) {
		c.Concurrency = n
	}
}

// DefaultConfig returns the default tuning: 10000-character chunks with a
// 100-character overlap, two retries from a five second base, eight workers.
func DefaultConfig() *Config {
	return &Config{
		ChunkSize:    10000,
		ChunkOverlap: 100,
		MaxRetries:   2,
		BackoffBase:  5 * time.Second,
		Concurrency:  8,
	}
}

// NewConfig creates a Config with default values and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Policy returns the retry policy described by the config.
func (c *Config) Policy() retry.Policy {
	return retry.Policy{MaxRetries: c.MaxRetries, BackoffBase: c.BackoffBase}
}

// Fingerprint identifies the settings that shape a summary's content:
// chunking and the prompt set. Retry and concurrency settings are excluded.
func (c *Config) Fingerprint() string {
	return fmt.Sprintf("chunk=%d/%d prompts=%s", c.ChunkSize, c.ChunkOverlap, promptDigest())
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, err := chunk.New(c.ChunkSize, c.ChunkOverlap); err != nil {
		return err
	}
	if err := c.Policy().Validate(); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return ErrInvalidConcurrency
	}
	return nil
}
