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


package source

import (
	"errors"
	"fmt"
)

var (
	// ErrURLNotAllowed is returned when a URL does not match any allowed prefix.
	ErrURLNotAllowed = errors.New("url not allowed")

	// ErrDownloadFailed is returned when a document cannot be downloaded.
	ErrDownloadFailed = errors.New("download failed")

	// ErrNotPDF is returned when a response or file is not a PDF.
	ErrNotPDF = errors.New("content is not a PDF")

	// ErrTooLarge is returned when a document exceeds the size limit.
	ErrTooLarge = errors.New("document too large")

	// ErrInvalidPDF is returned when PDF bytes cannot be parsed.
	ErrInvalidPDF = errors.New("invalid PDF")

	// ErrNoText is returned when no text could be extracted.
	ErrNoText = errors.New("no text extracted")
)

// StatusError reports a non-2xx download response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("download %s: status %d", e.URL, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrDownloadFailed
}
