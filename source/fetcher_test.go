package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPDFServer(t *testing.T, contentType string, status int, body []byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheckURL(t *testing.T) {
	f := NewFetcher()

	require.NoError(t, f.CheckURL("https://arxiv.org/pdf/2401.00001"))

	for _, u := range []string{
		"http://arxiv.org/pdf/2401.00001",
		"https://arxiv.org/abs/2401.00001",
		"https://example.com/paper.pdf",
		"",
	} {
		assert.ErrorIs(t, f.CheckURL(u), ErrURLNotAllowed, u)
	}
}

func TestFetch_Success(t *testing.T) {
	data := BuildTestPDF("hello")
	server := newPDFServer(t, "application/pdf", http.StatusOK, data)
	f := NewFetcher(WithAllowedPrefixes(server.URL + "/pdf/"))

	got, err := f.Fetch(context.Background(), server.URL+"/pdf/1234")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestFetch_ContentTypeWithParameters(t *testing.T) {
	server := newPDFServer(t, "application/pdf; charset=binary", http.StatusOK, BuildTestPDF("hello"))
	f := NewFetcher(WithAllowedPrefixes(server.URL))

	_, err := f.Fetch(context.Background(), server.URL+"/x")
	require.NoError(t, err)
}

func TestFetch_URLNotAllowed(t *testing.T) {
	server := newPDFServer(t, "application/pdf", http.StatusOK, nil)
	f := NewFetcher()

	_, err := f.Fetch(context.Background(), server.URL+"/pdf/1234")
	assert.ErrorIs(t, err, ErrURLNotAllowed)
}

func TestFetch_NotPDF(t *testing.T) {
	server := newPDFServer(t, "text/html", http.StatusOK, []byte("<html></html>"))
	f := NewFetcher(WithAllowedPrefixes(server.URL))

	_, err := f.Fetch(context.Background(), server.URL+"/abs/1234")
	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestFetch_StatusError(t *testing.T) {
	server := newPDFServer(t, "text/plain", http.StatusNotFound, []byte("missing"))
	f := NewFetcher(WithAllowedPrefixes(server.URL))

	_, err := f.Fetch(context.Background(), server.URL+"/pdf/0000")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.ErrorIs(t, err, ErrDownloadFailed)
}

func TestFetch_TooLarge(t *testing.T) {
	server := newPDFServer(t, "application/pdf", http.StatusOK, BuildTestPDF("a fairly long page of text"))
	f := NewFetcher(WithAllowedPrefixes(server.URL), WithMaxBytes(64))

	_, err := f.Fetch(context.Background(), server.URL+"/pdf/1")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestFetch_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	f := NewFetcher(WithAllowedPrefixes(url))
	_, err := f.Fetch(context.Background(), url+"/pdf/1")
	assert.ErrorIs(t, err, ErrDownloadFailed)
}

func TestFetchText(t *testing.T) {
	server := newPDFServer(t, "application/pdf", http.StatusOK, BuildTestPDF("Sharded parameter server"))
	f := NewFetcher(WithAllowedPrefixes(server.URL))

	text, err := f.FetchText(context.Background(), server.URL+"/pdf/1")
	require.NoError(t, err)
	assert.Contains(t, text, "Sharded parameter server")
}
