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


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/sumry/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator using an OpenAI-compatible chat API.
type Generator struct {
	client llms.Model
	model  string
	logger *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	token := config.APIKey
	if token == "" {
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(baseURL(config.Host)),
		openai.WithToken(token),
		openai.WithModel(config.Model),
		openai.WithHTTPClient(newRecordingClient(config)),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client: client,
		model:  config.Model,
		logger: slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewGenerator creates a new generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// Generate sends the messages as a single non-streaming chat completion.
func (g *Generator) Generate(ctx context.Context, req ai.Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", ai.ErrEmptyMessages
	}

	model := req.Model
	if model == "" {
		model = g.model
	}

	ctx, rec := withCallRecord(ctx)
	response, err := g.client.GenerateContent(ctx, toMessageContent(req.Messages), llms.WithModel(model))
	if err != nil {
		err = translateError(err, rec)
		g.logger.Debug("chat completion failed", "model", model, "cause", ai.Classify(err), "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", fmt.Errorf("%w: no choices returned", ai.ErrMalformedResponse)
	}

	return response.Choices[0].Content, nil
}

func toMessageContent(msgs []ai.Message) []llms.MessageContent {
	content := make([]llms.MessageContent, 0, len(msgs))
	for _, m := range msgs {
		content = append(content, llms.MessageContent{
			Role:  chatMessageType(m.Role),
			Parts: []llms.ContentPart{llms.TextPart(m.Content)},
		})
	}
	return content
}

func chatMessageType(role ai.Role) llms.ChatMessageType {
	switch role {
	case ai.RoleSystem:
		return llms.ChatMessageTypeSystem
	case ai.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}

// baseURL returns the host with the /v1 suffix OpenAI-compatible endpoints expect.
func baseURL(host string) string {
	host = strings.TrimRight(host, "/")
	if !strings.HasSuffix(host, "/v1") {
		host += "/v1"
	}
	return host
}

var _ ai.Generator = (*Generator)(nil)
