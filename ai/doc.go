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


// Package ai provides the text-generation abstraction used by sumry.
//
// The summarization core only ever talks to a Generator: it hands over an
// ordered list of role-tagged messages and receives the generated text.
// Everything about the wire protocol lives in the implementation packages.
//
// # Implementation Packages
//
//   - ai/ollama: native client for the Ollama /api/chat endpoint
//   - ai/openai: OpenAI-compatible chat completions via langchaingo
//   - ai/mock: test double with call recording and behavior injection
//
// Public constructors (ollama.NewGenerator, openai.NewGenerator) return the
// ai.Generator interface. mock.NewMockGenerator returns the concrete type so
// tests can inspect recorded requests.
//
// # Errors
//
// Backends report non-2xx responses as *StatusError and undecodable bodies as
// ErrMalformedResponse. Classify maps any error returned by a Generator to a
// short Cause ("timeout", "connection error", "protocol error", ...) that is
// recorded on failed chunks.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithModel("gemma3:latest"))
//	gen, err := ollama.NewGenerator(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	text, err := gen.Generate(ctx, ai.Request{
//	    Messages: []ai.Message{
//	        ai.SystemMessage("Extract only technical details."),
//	        ai.UserMessage("Extract technical content: ..."),
//	    },
//	})
package ai
