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


package core

import (
	"fmt"
	"time"
)

// ValidateSummaryRecord validates a SummaryRecord according to domain rules.
//
// Validation rules:
//   - Summary must not be empty
//   - Model must not be empty
//   - Chunks must be positive and Failed must be in [0, Chunks)
//   - CreatedAt must not be in the future
//
// NOT validated:
//   - Source (free-form)
//   - ID (assigned from content when zero)
func ValidateSummaryRecord(record *SummaryRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidSummaryRecord)
	}

	if record.Summary == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSummaryRecord, ErrEmptySummary)
	}

	if record.Model == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSummaryRecord, ErrEmptyModel)
	}

	if record.Chunks <= 0 || record.Failed < 0 || record.Failed >= record.Chunks {
		return fmt.Errorf("%w: %w: %d failed of %d", ErrInvalidSummaryRecord, ErrInvalidChunkCount, record.Failed, record.Chunks)
	}

	if !IsValidTimestamp(record.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidSummaryRecord, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
