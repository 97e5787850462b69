package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/poiesic/sumry/core"
	"github.com/poiesic/sumry/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.SummaryRepository {
	t.Helper()
	repo, backend, err := NewMemorySummaryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func testRecord(text string, createdAt time.Time) *core.SummaryRecord {
	return &core.SummaryRecord{
		Id:        core.SummaryKey("gemma3:latest", text),
		Source:    "text",
		Model:     "gemma3:latest",
		Summary:   "summary of " + text,
		Chunks:    2,
		CreatedAt: createdAt,
	}
}

func TestSummaryBasics(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	record := testRecord("doc", time.Time{})
	stored, err := repo.PutSummary(ctx, record)
	require.NoError(t, err)
	assert.False(t, stored.CreatedAt.IsZero(), "CreatedAt is set on insert")

	got, err := repo.GetSummary(ctx, record.Id)
	require.NoError(t, err)
	assert.Equal(t, record.Summary, got.Summary)
	assert.Equal(t, record.Model, got.Model)
	assert.Equal(t, 2, got.Chunks)
	assert.Equal(t, stored.CreatedAt.UnixMicro(), got.CreatedAt.UnixMicro())
}

func TestGetSummary_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetSummary(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPutSummary_Invalid(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.PutSummary(ctx, nil)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)

	noID := testRecord("doc", time.Now())
	noID.Id = 0
	_, err = repo.PutSummary(ctx, noID)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)

	empty := testRecord("doc", time.Now())
	empty.Summary = ""
	_, err = repo.PutSummary(ctx, empty)
	assert.ErrorIs(t, err, core.ErrEmptySummary)
}

func TestPutSummary_Replace(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := testRecord("doc", time.Now().Add(-time.Hour))
	_, err := repo.PutSummary(ctx, first)
	require.NoError(t, err)

	second := testRecord("doc", time.Now())
	second.Summary = "newer summary"
	_, err = repo.PutSummary(ctx, second)
	require.NoError(t, err)

	got, err := repo.GetSummary(ctx, first.Id)
	require.NoError(t, err)
	assert.Equal(t, "newer summary", got.Summary)

	recent, err := repo.RecentSummaries(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 1, "replacing must not leave a stale index entry")
}

func TestDeleteSummary(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	record := testRecord("doc", time.Now())
	_, err := repo.PutSummary(ctx, record)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteSummary(ctx, record.Id))

	_, err = repo.GetSummary(ctx, record.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteSummary(ctx, record.Id), storage.ErrNotFound)

	recent, err := repo.RecentSummaries(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestRecentSummaries(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		_, err := repo.PutSummary(ctx, testRecord(fmt.Sprintf("doc-%d", i), base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	recent, err := repo.RecentSummaries(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "summary of doc-4", recent[0].Summary)
	assert.Equal(t, "summary of doc-3", recent[1].Summary)
	assert.Equal(t, "summary of doc-2", recent[2].Summary)

	all, err := repo.RecentSummaries(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	_, err = repo.RecentSummaries(ctx, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestSummaryRepository_Closed(t *testing.T) {
	repo, backend, err := NewMemorySummaryRepository()
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	_, err = repo.GetSummary(context.Background(), 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	_, err = repo.PutSummary(context.Background(), testRecord("doc", time.Now()))
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestKeys(t *testing.T) {
	now := time.Now()
	key := makeSummaryDateKey(now, core.ID(42))

	id, ok := idFromSummaryDateKey(key)
	require.True(t, ok)
	assert.Equal(t, core.ID(42), id)

	_, ok = idFromSummaryDateKey([]byte("sumdate:short"))
	assert.False(t, ok)

	earlier := makeSummaryDateKey(now.Add(-time.Second), core.ID(99))
	assert.Less(t, string(earlier), string(key), "date keys sort chronologically")
	assert.Equal(t, "sumrec:42", string(makeSummaryKey(42)))
}
