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


package retry

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMaxRetries is returned when a policy has a negative retry count.
	ErrInvalidMaxRetries = errors.New("max retries must be non-negative")

	// ErrInvalidBackoff is returned when a policy has a non-positive backoff base.
	ErrInvalidBackoff = errors.New("backoff base must be positive")
)

// ExhaustedError reports that every allowed attempt failed.
type ExhaustedError struct {
	// Attempts is the number of attempts made.
	Attempts int

	// Err is the error returned by the last attempt.
	Err error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}
