package sumry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/sumry/ai"
	"github.com/poiesic/sumry/ai/mock"
	"github.com/poiesic/sumry/retry"
	"github.com/poiesic/sumry/source"
	"github.com/poiesic/sumry/storage"
	"github.com/poiesic/sumry/summarize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, gen ai.Generator, opts ...ServiceOption) *Service {
	t.Helper()
	opts = append([]ServiceOption{
		WithGenerator(gen),
		WithSummarizerOptions(summarize.WithClock(retry.NewRecordingClock())),
	}, opts...)
	svc, err := NewService(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestNewService_UnknownBackend(t *testing.T) {
	_, err := NewService(WithBackend("llamafile"))
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestNewService_Backends(t *testing.T) {
	for _, name := range []string{BackendOllama, BackendOpenAI} {
		t.Run(name, func(t *testing.T) {
			svc, err := NewService(WithBackend(name))
			require.NoError(t, err)
			assert.Equal(t, ai.DefaultConfig().Model, svc.Model())
			assert.False(t, svc.CacheEnabled())
			require.NoError(t, svc.Close())
		})
	}
}

func TestNewService_InvalidAIConfig(t *testing.T) {
	_, err := NewService(WithAIConfig(ai.NewConfig(ai.WithHost(""))))
	assert.Error(t, err)
}

func TestNewService_SummarizeModelOverridesCacheModel(t *testing.T) {
	svc := newTestService(t, mock.NewMockGenerator(),
		WithSummarizeConfig(summarize.NewConfig(summarize.WithModel("llama3"))))
	assert.Equal(t, "llama3", svc.Model())
}

func TestSummarizeText(t *testing.T) {
	gen := mock.NewMockGenerator()
	svc := newTestService(t, gen)

	result, err := svc.SummarizeText(context.Background(), "A short paper about caching.")
	require.NoError(t, err)

	assert.False(t, result.Cached)
	assert.True(t, result.Report.Complete())
	assert.Equal(t, 1, result.Report.Chunks)
	assert.NotEmpty(t, result.Report.Text)
	assert.NotZero(t, result.DocumentID)
	assert.Equal(t, 2, gen.CallCount())
}

func TestSummarizeText_Empty(t *testing.T) {
	svc := newTestService(t, mock.NewMockGenerator())

	_, err := svc.SummarizeText(context.Background(), "  \n ")
	assert.ErrorIs(t, err, summarize.ErrNoContent)
}

func TestSummarizeText_Cache(t *testing.T) {
	gen := mock.NewMockGenerator()
	svc := newTestService(t, gen, WithInMemoryCache())
	require.True(t, svc.CacheEnabled())
	ctx := context.Background()

	first, err := svc.SummarizeText(ctx, "Cached document body.")
	require.NoError(t, err)
	require.False(t, first.Cached)
	require.Equal(t, 2, gen.CallCount())

	second, err := svc.SummarizeText(ctx, "Cached document body.")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Report.Text, second.Report.Text)
	assert.Equal(t, first.DocumentID, second.DocumentID)
	assert.Equal(t, summarize.StatusComplete, second.Report.Status)
	assert.Equal(t, 1, second.Report.Succeeded)
	assert.Equal(t, 2, gen.CallCount(), "cache hit must not call the generator")

	third, err := svc.SummarizeText(ctx, "Cached document body.", WithoutCache())
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Equal(t, 4, gen.CallCount())

	recent, err := svc.RecentSummaries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, first.DocumentID, recent[0].Id)
	assert.Equal(t, "text", recent[0].Source)
}

func TestSummarizeText_IncompleteReportNotCached(t *testing.T) {
	gen := mock.NewMockGenerator().WithGenerateFunc(func(ctx context.Context, req ai.Request) (string, error) {
		return "", errors.New("backend down")
	})
	svc := newTestService(t, gen, WithInMemoryCache())
	ctx := context.Background()

	result, err := svc.SummarizeText(ctx, "Nothing will work.")
	require.NoError(t, err)
	assert.Equal(t, summarize.StatusAllChunksFailed, result.Report.Status)
	assert.Equal(t, summarize.AllChunksFailed, result.Report.Text)

	recent, err := svc.RecentSummaries(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestRecentSummaries_CacheDisabled(t *testing.T) {
	svc := newTestService(t, mock.NewMockGenerator())

	_, err := svc.RecentSummaries(context.Background(), 5)
	assert.ErrorIs(t, err, ErrCacheDisabled)
}

func TestSummarizeFile(t *testing.T) {
	gen := mock.NewMockGenerator()
	svc := newTestService(t, gen)

	path := filepath.Join(t.TempDir(), "paper.pdf")
	require.NoError(t, os.WriteFile(path, source.BuildTestPDF("Attention is all you need"), 0o644))

	result, err := svc.SummarizeFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, result.Source)
	assert.True(t, result.Report.Complete())

	reqs := gen.Requests()
	require.NotEmpty(t, reqs)
	assert.Contains(t, reqs[0].Messages[1].Content, "Attention is all you need")
}

func TestSummarizeFile_Missing(t *testing.T) {
	svc := newTestService(t, mock.NewMockGenerator())

	_, err := svc.SummarizeFile(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestSummarizeURL(t *testing.T) {
	pdf := source.BuildTestPDF("Scaling laws for language models")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	}))
	defer srv.Close()

	gen := mock.NewMockGenerator()
	svc := newTestService(t, gen, WithFetcherOptions(
		source.WithHTTPClient(srv.Client()),
		source.WithAllowedPrefixes(srv.URL+"/"),
	))

	result, err := svc.SummarizeURL(context.Background(), srv.URL+"/paper.pdf")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/paper.pdf", result.Source)
	assert.True(t, result.Report.Complete())
}

func TestSummarizeURL_NotAllowed(t *testing.T) {
	gen := mock.NewMockGenerator()
	svc := newTestService(t, gen)

	_, err := svc.SummarizeURL(context.Background(), "https://example.com/paper.pdf")
	assert.ErrorIs(t, err, source.ErrURLNotAllowed)
	assert.Zero(t, gen.CallCount())
}

type failingCloseRepository struct {
	storage.SummaryRepository
	err error
}

func (r *failingCloseRepository) Close() error {
	return r.err
}

func TestClose_ClosesStorageWhenRepositoryFails(t *testing.T) {
	svc, err := NewService(WithGenerator(mock.NewMockGenerator()), WithInMemoryCache())
	require.NoError(t, err)

	closeErr := errors.New("repository close failed")
	svc.cache = &failingCloseRepository{SummaryRepository: svc.cache, err: closeErr}

	err = svc.Close()
	assert.ErrorIs(t, err, closeErr)
	assert.True(t, svc.backend.IsClosed())
}

func TestSummarizeText_CacheKeyIncludesChunking(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	text := "A document that is summarized under several settings."

	run := func(cfg *summarize.Config) *Result {
		t.Helper()
		svc, err := NewService(
			WithGenerator(mock.NewMockGenerator()),
			WithSummarizeConfig(cfg),
			WithCacheDir(dir),
		)
		require.NoError(t, err)
		defer svc.Close()

		result, err := svc.SummarizeText(ctx, text)
		require.NoError(t, err)
		return result
	}

	first := run(summarize.DefaultConfig())
	require.False(t, first.Cached)

	smaller := run(summarize.NewConfig(summarize.WithChunking(2000, 100)))
	assert.False(t, smaller.Cached, "different chunking must not reuse the cached summary")
	assert.NotEqual(t, first.DocumentID, smaller.DocumentID)

	again := run(summarize.DefaultConfig())
	assert.True(t, again.Cached)
	assert.Equal(t, first.DocumentID, again.DocumentID)

	// retry tuning does not change the summary content
	retried := run(summarize.NewConfig(summarize.WithRetry(5, time.Second)))
	assert.True(t, retried.Cached)
}
