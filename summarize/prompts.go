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
	"hash/fnv"
	"strings"

	"github.com/poiesic/sumry/ai"
	"github.com/poiesic/sumry/chunk"
)

const (
	chunkSystemPrompt = "Extract only technical details. No citations or references."
	chunkUserPrefix   = "Extract technical content: "

	synthesisSystemPrompt = "You are a technical writer. No citations. Technical focus only."
	synthesisUserTemplate = `Create a technical document structured into:
1. System Architecture
2. Technical Implementation
3. Infrastructure & Setup
4. Performance Analysis
5. Optimization Techniques

Only use the following content:
%s
`
)

// promptDigest changes whenever any prompt text changes.
func promptDigest() string {
	h := fnv.New64a()
	for _, p := range []string{chunkSystemPrompt, chunkUserPrefix, synthesisSystemPrompt, synthesisUserTemplate} {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func chunkRequest(model string, ch chunk.Chunk) ai.Request {
	return ai.Request{
		Model: model,
		Messages: []ai.Message{
			ai.SystemMessage(chunkSystemPrompt),
			ai.UserMessage(chunkUserPrefix + ch.Text),
		},
	}
}

// combineExtracts labels each successful extract with its original chunk index.
// Failed results are skipped without renumbering.
func combineExtracts(results []ChunkResult) string {
	sections := make([]string, 0, len(results))
	for _, r := range results {
		if !r.OK() {
			continue
		}
		sections = append(sections, fmt.Sprintf("Section %d:\n%s", r.Index, r.Extract))
	}
	return strings.Join(sections, "\n\n")
}

func synthesisRequest(model, combined string) ai.Request {
	return ai.Request{
		Model: model,
		Messages: []ai.Message{
			ai.SystemMessage(synthesisSystemPrompt),
			ai.UserMessage(fmt.Sprintf(synthesisUserTemplate, combined)),
		},
	}
}
