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


package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/poiesic/sumry/ai"
)

// maxErrorBody caps how much of a failed response body is kept in a StatusError.
const maxErrorBody = 4096

type chatRequest struct {
	Model    string       `json:"model"`
	Messages []ai.Message `json:"messages"`
	Stream   bool         `json:"stream"`
}

type chatResponse struct {
	Message *struct {
		Role    string  `json:"role"`
		Content *string `json:"content"`
	} `json:"message"`
}

// Generator implements ai.Generator using Ollama's /api/chat endpoint.
type Generator struct {
	endpoint string
	model    string
	client   *http.Client
	logger   *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithHTTPClient replaces the client built from the config timeouts.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Generator) {
		g.client = client
	}
}

// NewGenerator creates a generator for the Ollama server at config.Host.
// The config is validated and normalized before use.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config, opts ...Option) (ai.Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		endpoint: config.Host + "/api/chat",
		model:    config.Model,
		client:   ai.NewHTTPClient(config),
		logger:   slog.Default().With("component", "ollama-generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate performs one chat call and returns message.content from the response.
func (g *Generator) Generate(ctx context.Context, req ai.Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", ai.ErrEmptyMessages
	}

	model := req.Model
	if model == "" {
		model = g.model
	}

	payload, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: req.Messages,
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		g.logger.Debug("chat call rejected", "model", model, "status", resp.StatusCode)
		return "", &ai.StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: %v", ai.ErrMalformedResponse, err)
	}
	if decoded.Message == nil || decoded.Message.Content == nil {
		return "", fmt.Errorf("%w: missing message.content", ai.ErrMalformedResponse)
	}

	return *decoded.Message.Content, nil
}

var _ ai.Generator = (*Generator)(nil)
