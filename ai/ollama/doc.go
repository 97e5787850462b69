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


// Package ollama implements ai.Generator against Ollama's native chat API.
//
// Each call is one non-streaming POST to {host}/api/chat. The HTTP client is
// built from the ai.Config timeouts, so a slow model can take as long as the
// read timeout allows while a dead host fails after the connect timeout.
package ollama
