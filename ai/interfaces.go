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

import "context"

// Role tags a message with its author.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry of a generation request.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemMessage returns a message with the system role.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage returns a message with the user role.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Request is a single non-streaming generation request.
type Request struct {
	// Model overrides the generator's configured model when non-empty.
	Model string

	// Messages is the ordered conversation sent to the model.
	Messages []Message
}

// Generator produces text from a sequence of messages.
// Implementations must be safe for concurrent use; a single summarization
// issues many calls in parallel.
type Generator interface {
	// Generate sends the request and returns the generated text.
	// Transport failures, non-2xx responses and malformed bodies are returned
	// as errors that Classify can map to a Cause.
	Generate(ctx context.Context, req Request) (string, error)
}
