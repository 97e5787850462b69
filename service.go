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


package sumry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/sumry/ai"
	"github.com/poiesic/sumry/ai/ollama"
	"github.com/poiesic/sumry/ai/openai"
	"github.com/poiesic/sumry/core"
	"github.com/poiesic/sumry/source"
	"github.com/poiesic/sumry/storage"
	"github.com/poiesic/sumry/storage/badger"
	"github.com/poiesic/sumry/summarize"
)

// Generation backends understood by NewService.
const (
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
)

var (
	// ErrUnknownBackend is returned for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown generation backend")

	// ErrCacheDisabled is returned by cache queries when no cache is configured.
	ErrCacheDisabled = errors.New("summary cache is disabled")
)

// Service summarizes documents from URLs, files or raw text.
type Service struct {
	generator  ai.Generator
	summarizer *summarize.Summarizer
	fetcher    *source.Fetcher
	backend    *badger.Backend
	cache      storage.SummaryRepository
	model      string
	profile    string
	logger     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig        *ai.Config
	summarizeConfig *summarize.Config
	backendName     string
	generator       ai.Generator
	cacheDir        string
	inMemoryCache   bool
	fetcherOpts     []source.Option
	summarizerOpts  []summarize.Option
}

// WithAIConfig sets the generation service configuration.
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = cfg
	}
}

// WithSummarizeConfig sets the summarizer tuning.
func WithSummarizeConfig(cfg *summarize.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.summarizeConfig = cfg
	}
}

// WithBackend selects the generation backend ("ollama" or "openai").
func WithBackend(name string) ServiceOption {
	return func(o *serviceOptions) {
		o.backendName = name
	}
}

// WithGenerator uses gen instead of building a backend from the AI config.
func WithGenerator(gen ai.Generator) ServiceOption {
	return func(o *serviceOptions) {
		o.generator = gen
	}
}

// WithCacheDir enables the summary cache stored in dir.
func WithCacheDir(dir string) ServiceOption {
	return func(o *serviceOptions) {
		o.cacheDir = dir
	}
}

// WithInMemoryCache enables a summary cache that lives as long as the Service.
func WithInMemoryCache() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemoryCache = true
	}
}

// WithFetcherOptions configures the document fetcher.
func WithFetcherOptions(opts ...source.Option) ServiceOption {
	return func(o *serviceOptions) {
		o.fetcherOpts = append(o.fetcherOpts, opts...)
	}
}

// WithSummarizerOptions configures the summarizer.
func WithSummarizerOptions(opts ...summarize.Option) ServiceOption {
	return func(o *serviceOptions) {
		o.summarizerOpts = append(o.summarizerOpts, opts...)
	}
}

// NewService builds a Service from the given options.
func NewService(opts ...ServiceOption) (*Service, error) {
	// Apply options
	options := &serviceOptions{
		aiConfig:        ai.DefaultConfig(),
		summarizeConfig: summarize.DefaultConfig(),
		backendName:     BackendOllama,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.aiConfig == nil {
		options.aiConfig = ai.DefaultConfig()
	}

	generator := options.generator
	if generator == nil {
		var err error
		generator, err = newGenerator(options.backendName, options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	summarizer, err := summarize.NewSummarizer(generator, options.summarizeConfig, options.summarizerOpts...)
	if err != nil {
		return nil, err
	}

	sumConfig := summarizer.Config()
	model := sumConfig.Model
	if model == "" {
		model = options.aiConfig.Model
	}

	svc := &Service{
		generator:  generator,
		summarizer: summarizer,
		fetcher:    source.NewFetcher(options.fetcherOpts...),
		model:      model,
		profile:    model + " " + sumConfig.Fingerprint(),
		logger:     slog.Default().With("component", "service"),
	}

	// Open the cache last so earlier failures leave nothing to clean up
	if options.cacheDir != "" || options.inMemoryCache {
		backend, err := badger.OpenBackend(options.cacheDir, options.inMemoryCache)
		if err != nil {
			summarizer.Release()
			return nil, fmt.Errorf("open summary cache: %w", err)
		}
		cache, err := badger.NewSummaryRepository(backend)
		if err != nil {
			backend.Close()
			summarizer.Release()
			return nil, err
		}
		svc.backend = backend
		svc.cache = cache
	}

	return svc, nil
}

func newGenerator(name string, cfg *ai.Config) (ai.Generator, error) {
	switch name {
	case BackendOllama, "":
		return ollama.NewGenerator(cfg)
	case BackendOpenAI:
		return openai.NewGenerator(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// Close releases the worker pool and the cache.
// Both the repository and its storage are closed even if one of them fails.
func (s *Service) Close() error {
	s.summarizer.Release()

	var errs []error
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Error("error closing summary repository", "err", err)
			errs = append(errs, err)
		}
	}
	if s.backend != nil {
		if err := s.backend.Close(); err != nil {
			s.logger.Error("error closing cache storage", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Model returns the model name used for cache keys.
func (s *Service) Model() string {
	return s.model
}

// CacheEnabled reports whether summaries are cached.
func (s *Service) CacheEnabled() bool {
	return s.cache != nil
}

// Result is the outcome of a Service summarization.
type Result struct {
	Report     *summarize.Report
	Cached     bool
	DocumentID core.ID
	Source     string
}

// RunOption customizes a single summarization.
type RunOption func(*runOptions)

type runOptions struct {
	monitor   summarize.Monitor
	skipCache bool
}

// WithMonitor reports progress of the run to m.
func WithMonitor(m summarize.Monitor) RunOption {
	return func(o *runOptions) {
		o.monitor = m
	}
}

// WithoutCache forces a fresh summarization; the result is still stored.
func WithoutCache() RunOption {
	return func(o *runOptions) {
		o.skipCache = true
	}
}

// SummarizeURL downloads the PDF at url and summarizes its text.
func (s *Service) SummarizeURL(ctx context.Context, url string, opts ...RunOption) (*Result, error) {
	text, err := s.fetcher.FetchText(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, url, text, opts)
}

// SummarizeFile summarizes a local PDF or text file.
func (s *Service) SummarizeFile(ctx context.Context, path string, opts ...RunOption) (*Result, error) {
	text, err := source.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, path, text, opts)
}

// SummarizeText summarizes text supplied by the caller.
func (s *Service) SummarizeText(ctx context.Context, text string, opts ...RunOption) (*Result, error) {
	return s.summarize(ctx, "text", text, opts)
}

func (s *Service) summarize(ctx context.Context, src, text string, opts []RunOption) (*Result, error) {
	run := &runOptions{}
	for _, opt := range opts {
		opt(run)
	}

	id := core.SummaryKey(s.profile, text)

	if s.cache != nil && !run.skipCache {
		record, err := s.cache.GetSummary(ctx, id)
		switch {
		case err == nil:
			s.logger.Info("serving cached summary", "source", src, "id", id)
			return &Result{Report: reportFromRecord(record), Cached: true, DocumentID: id, Source: src}, nil
		case !errors.Is(err, storage.ErrNotFound):
			s.logger.Warn("summary cache lookup failed", "id", id, "err", err)
		}
	}

	report, err := s.summarizer.RunWithMonitor(ctx, text, run.monitor)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && report.Complete() {
		record := &core.SummaryRecord{
			Id:      id,
			Source:  src,
			Model:   s.model,
			Summary: report.Text,
			Chunks:  report.Chunks,
			Failed:  report.Failed,
		}
		if _, err := s.cache.PutSummary(ctx, record); err != nil {
			s.logger.Warn("failed to cache summary", "id", id, "err", err)
		}
	}

	return &Result{Report: report, DocumentID: id, Source: src}, nil
}

// RecentSummaries lists cached summaries, most recent first.
func (s *Service) RecentSummaries(ctx context.Context, limit int) ([]*core.SummaryRecord, error) {
	if s.cache == nil {
		return nil, ErrCacheDisabled
	}
	return s.cache.RecentSummaries(ctx, limit)
}

func reportFromRecord(record *core.SummaryRecord) *summarize.Report {
	return &summarize.Report{
		Text:      record.Summary,
		Status:    summarize.StatusComplete,
		Chunks:    record.Chunks,
		Succeeded: record.Chunks - record.Failed,
		Failed:    record.Failed,
	}
}
