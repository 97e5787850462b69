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


// Package badger implements storage.SummaryRepository on BadgerDB.
//
// Summaries are stored under "sumrec:<id>" with a secondary index
// "sumdate:<created micros><id>" (big-endian, so keys sort chronologically)
// that backs RecentSummaries.
//
//	backend, err := badger.OpenBackend(dir, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	repo, err := badger.NewSummaryRepository(backend)
package badger
