package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
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

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestRunWorkerFunc(t *testing.T) {
	var runs int32
	ctx, cancel := context.WithTimeout(context.Background(), 130*time.Millisecond)
	defer cancel()

	err := RunWorkerFunc(ctx, testLogger(), 20*time.Millisecond, func(context.Context, *slog.Logger) {
		atomic.AddInt32(&runs, 1)
	})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&runs), int32(3))

	err = RunWorkerFunc(context.Background(), testLogger(), 0, func(context.Context, *slog.Logger) {})
	assert.Error(t, err)
}

type fakeReloader struct {
	calls int32
	err   error
}

func (f *fakeReloader) Load(ctx context.Context) error {
	atomic.AddInt32(&f.calls, 1)
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("missing deadline")
	}
	return f.err
}

func TestMakeReloadWorkerFunc(t *testing.T) {
	r := &fakeReloader{}
	f := MakeReloadWorkerFunc(r, time.Second)
	f(context.Background(), testLogger())
	r.err = errors.New("load https://api/listings: unexpected status 500")
	f(context.Background(), testLogger())
	assert.Equal(t, int32(2), atomic.LoadInt32(&r.calls))
}

func TestRequestReload(t *testing.T) {
	var gotAuth atomic.Value
	var fail atomic.Bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/reload", r.URL.Path)
		gotAuth.Store(r.Header.Get("Authorization"))
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]string{"error": "load listings.json: unexpected status 404"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "loaded 2 listings from listings.json"})
	}))
	defer ts.Close()

	msg, err := RequestReload(context.Background(), ts.URL+"/", GetDefaultHeaders("tok"))
	require.NoError(t, err)
	assert.Equal(t, "loaded 2 listings from listings.json", msg)
	assert.Equal(t, "Bearer tok", gotAuth.Load())

	fail.Store(true)
	_, err = RequestReload(context.Background(), ts.URL, GetDefaultHeaders("tok"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "unexpected status 404")
}

type fakeSearch struct {
	page string
	err  error
}

func (f fakeSearch) SearchPage(ctx context.Context, searchURL string) ([]byte, error) {
	return []byte(f.page), f.err
}

const onePage = `<div data-test="sl.card-container">
  <div class="Card__ContentZone"><a name="classified-link" href="/annonces/1234.htm">x</a></div>
  <div data-test="sl.title">Studio</div>
  <div data-test="sl.price-label">650 €</div>
  <div data-test="sl.localisation">Lyon 7ème</div>
</div>`

func TestScrapeToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "listings.json")

	n, err := ScrapeToFile(context.Background(), fakeSearch{page: onePage}, "https://example/search", out)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	var got []map[string]string
	require.NoError(t, json.Unmarshal(b, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "1234", got[0]["id"])
	assert.Equal(t, "Studio", got[0]["title"])

	// an empty page keeps the previous snapshot
	_, err = ScrapeToFile(context.Background(), fakeSearch{page: "<html></html>"}, "https://example/search", out)
	assert.ErrorIs(t, err, errNoCards)
	after, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, b, after)

	_, err = ScrapeToFile(context.Background(), fakeSearch{err: errors.New("boom")}, "https://example/search", out)
	assert.Error(t, err)
}
