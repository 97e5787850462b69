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


// Package storage provides the storage abstraction for cached summaries.
//
// The summarization core never touches storage. The service layer consults a
// SummaryRepository before running a summarization and stores complete
// results afterwards, so repeated requests for the same document and model
// are answered without calling the generation service.
//
// # Constructor Return Type Pattern
//
// Public constructors in implementation packages return the
// SummaryRepository interface:
//
//	backend, err := badger.OpenBackend("/path/to/cache", false)
//	repo, err := badger.NewSummaryRepository(backend)  // returns storage.SummaryRepository
//
// # Serialization
//
// Records are encoded with mus-go. MarshalSummaryRecord and
// UnmarshalSummaryRecord are the only encoding entry points backends use.
//
// # Thread Safety
//
// All repository implementations must be safe for concurrent use; the HTTP
// server handles many requests at once against one repository.
package storage
