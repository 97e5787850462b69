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


package storage

import (
	"context"

	"github.com/poiesic/sumry/core"
)

// SummaryRepository provides operations for cached summaries.
type SummaryRepository interface {
	// PutSummary stores a summary, replacing any record with the same ID.
	// Records with ID=0 are rejected. Sets CreatedAt if not already set.
	// Returns the stored record.
	PutSummary(ctx context.Context, record *core.SummaryRecord) (*core.SummaryRecord, error)

	// GetSummary retrieves a summary by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetSummary(ctx context.Context, id core.ID) (*core.SummaryRecord, error)

	// DeleteSummary removes a summary by ID.
	// Returns ErrNotFound if the record doesn't exist.
	DeleteSummary(ctx context.Context, id core.ID) error

	// RecentSummaries returns up to limit summaries, most recent first.
	RecentSummaries(ctx context.Context, limit int) ([]*core.SummaryRecord, error)

	// Close releases resources held by the repository.
	Close() error
}
