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
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultAllowedPrefix is the only URL prefix accepted by default.
	DefaultAllowedPrefix = "https://arxiv.org/pdf/"

	// DefaultMaxBytes caps downloaded documents at 100 MiB.
	DefaultMaxBytes = 100 << 20
)

// Fetcher downloads PDF documents from allowed URLs.
// A Fetcher is safe for concurrent use.
type Fetcher struct {
	client   *http.Client
	prefixes []string
	maxBytes int64
	logger   *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets the client used for downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithAllowedPrefixes replaces the allowed URL prefixes.
func WithAllowedPrefixes(prefixes ...string) Option {
	return func(f *Fetcher) {
		f.prefixes = append([]string(nil), prefixes...)
	}
}

// WithMaxBytes sets the maximum document size.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a Fetcher that accepts arXiv PDF URLs by default.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: 2 * time.Minute},
		prefixes: []string{DefaultAllowedPrefix},
		maxBytes: DefaultMaxBytes,
		logger:   slog.Default().With("component", "fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CheckURL reports whether rawURL starts with an allowed prefix.
func (f *Fetcher) CheckURL(rawURL string) error {
	for _, prefix := range f.prefixes {
		if strings.HasPrefix(rawURL, prefix) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q must start with one of %v", ErrURLNotAllowed, rawURL, f.prefixes)
}

// Fetch downloads the PDF at rawURL and returns its bytes.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := f.CheckURL(rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	req.Header.Set("Accept", "application/pdf")

	f.logger.Info("downloading document", "url", rawURL)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if mediaType, _, _ := mime.ParseMediaType(contentType); mediaType != "application/pdf" {
		return nil, fmt.Errorf("%w: content type %q", ErrNotPDF, contentType)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, f.maxBytes)
	}

	f.logger.Debug("downloaded document", "url", rawURL, "bytes", len(data))
	return data, nil
}

// FetchText downloads the PDF at rawURL and extracts its text.
func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	data, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return ExtractText(data)
}
