package sources

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastHTTPSource(url string) *HTTPSource {
	s := NewHTTPSource(http.DefaultClient, url)
	s.httpCfg.Backoff.InitialInterval = time.Millisecond
	s.httpCfg.Backoff.MaxInterval = 5 * time.Millisecond
	return s
}

func TestNewPicksSourceByScheme(t *testing.T) {
	assert.IsType(t, &HTTPSource{}, New("https://example.com/day.csv", http.DefaultClient))
	assert.IsType(t, &HTTPSource{}, New("HTTP://example.com/day.csv", http.DefaultClient))
	assert.IsType(t, &FileSource{}, New("Dashboard/clean_day.csv", http.DefaultClient))
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "day.csv")
	require.NoError(t, os.WriteFile(path, []byte("dteday\n"), 0o600))

	rc, err := NewFileSource(path).Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "dteday\n", string(b))
}

func TestFileSourceMissing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.csv")).Open(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHTTPSourceRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("dteday\n2011-01-01\n"))
	}))
	defer srv.Close()

	rc, err := fastHTTPSource(srv.URL).Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "dteday\n2011-01-01\n", string(b))
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPSourceDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := fastHTTPSource(srv.URL).Open(context.Background())
	assert.ErrorIs(t, err, errUnexpected)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPSourceGivesUpAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := fastHTTPSource(srv.URL).Open(context.Background())
	assert.ErrorIs(t, err, errRateLimited)
}

func TestHTTPSourceHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fastHTTPSource(srv.URL).Open(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPSourceWithoutClient(t *testing.T) {
	_, err := NewHTTPSource(nil, "http://example.com").Open(context.Background())
	assert.ErrorIs(t, err, errNoHTTPClient)
}
