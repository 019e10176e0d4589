package seloger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brojonat/annonces/listing"
)

const searchPage = `<html><body>
<div data-test="sl.card-container">
  <div class="Card__ContentZone-sc-7insep-3">
    <a name="classified-link" href="/annonces/locations/appartement/lyon-3eme-69/254871123.htm?projects=1">link</a>
    <div data-test="sl.title">Appartement  3 pièces</div>
    <div data-test="sl.price-label">1 150 € / mois</div>
    <div data-test="sl.localisation">Lyon 3ème (69003)</div>
  </div>
</div>
<div data-test="sl.card-container">
  <div class="Card__ContentZone-sc-7insep-3">
    <div data-test="sl.title">Maison avec jardin</div>
    <div data-test="sl.price-label">1 900 €</div>
    <div data-test="sl.localisation">Tassin-la-Demi-Lune</div>
  </div>
</div>
<div class="ad-banner">not a card</div>
</body></html>`

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestParseListings(t *testing.T) {
	cards, err := ParseListings(strings.NewReader(searchPage))
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, Card{
		ID:       "254871123",
		URL:      "https://www.seloger.com/annonces/locations/appartement/lyon-3eme-69/254871123.htm?projects=1",
		Title:    "Appartement 3 pièces",
		Price:    "1 150 € / mois",
		Location: "Lyon 3ème (69003)",
	}, cards[0])

	// no link: the id falls back to the card position
	assert.Equal(t, "2", cards[1].ID)
	assert.Empty(t, cards[1].URL)
	assert.Equal(t, "Maison avec jardin", cards[1].Title)
}

func TestParseListingsEmptyPage(t *testing.T) {
	cards, err := ParseListings(strings.NewReader("<html><body>captcha</body></html>"))
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestWriteJSONIsLoadable(t *testing.T) {
	cards, err := ParseListings(strings.NewReader(searchPage))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, cards))
	assert.Contains(t, buf.String(), "1 150 € / mois")

	var raw []any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	ls := listing.NormalizeAll(raw)
	require.Len(t, ls, 2)
	assert.Equal(t, "254871123", ls[0].ID)
	assert.Equal(t, 1150.0, ls[0].PriceValue)
	assert.Equal(t, listing.SchemaFlat, ls[0].Schema)

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestBuildSearchURL(t *testing.T) {
	u, err := url.Parse(BuildSearchURL(nil))
	require.NoError(t, err)
	assert.Equal(t, "/classified-search", u.Path)
	q := u.Query()
	assert.Equal(t, "Rent", q.Get("distributionTypes"))
	assert.Equal(t, "House,Apartment", q.Get("estateTypes"))
	assert.Equal(t, "FR069123,FR069244", q.Get("locations"))
	assert.Equal(t, "28", q.Get("spaceMin"))

	u, err = url.Parse(BuildSearchURL(map[string]string{"spaceMin": "40", "distributionTypes": "Buy", "locations": ""}))
	require.NoError(t, err)
	q = u.Query()
	assert.Equal(t, "40", q.Get("spaceMin"))
	assert.Equal(t, "Buy", q.Get("distributionTypes"))
	assert.False(t, q.Has("locations"))

	// overrides never leak into the defaults
	assert.Equal(t, "28", DefaultFilters["spaceMin"])
}

func cookieNames(cs []*http.Cookie) []string {
	names := []string{}
	for _, c := range cs {
		names = append(names, c.Name+"="+c.Value)
	}
	sort.Strings(names)
	return names
}

func TestParseCookies(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"object", `{"datadome": "abc", "visitId": "42"}`, []string{"datadome=abc", "visitId=42"}},
		{"browser export", `[{"name": "datadome", "value": "abc", "domain": ".seloger.com"}, {"name": "", "value": "x"}]`, []string{"datadome=abc"}},
		{"header string", "datadome=abc; visitId=4=2 ; junk", []string{"datadome=abc", "visitId=4=2"}},
		{"empty", "  ", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cs, err := ParseCookies([]byte(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.want, cookieNames(cs))
			for _, c := range cs {
				assert.NotEmpty(t, c.Domain)
				assert.Equal(t, "/", c.Path)
			}
		})
	}

	_, err := ParseCookies([]byte(`[{"name": 1}]`))
	assert.Error(t, err)
}

func TestLoadCookies(t *testing.T) {
	cs, err := LoadCookies(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, cs)

	p := filepath.Join(t.TempDir(), ".cookies")
	require.NoError(t, os.WriteFile(p, []byte("datadome=abc"), 0o600))
	cs, err = LoadCookies(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"datadome=abc"}, cookieNames(cs))

	hc, err := NewHTTPClient(cs)
	require.NoError(t, err)
	u, _ := url.Parse(BaseURL + "/classified-search")
	assert.Equal(t, []string{"datadome=abc"}, cookieNames(hc.Jar.Cookies(u)))
}

func TestScrape(t *testing.T) {
	var gotUA atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		w.Write([]byte(searchPage))
	}))
	defer ts.Close()

	c := NewClient(testLogger(), ts.Client(), "")
	cards, err := Scrape(context.Background(), c, ts.URL+"/classified-search")
	require.NoError(t, err)
	assert.Len(t, cards, 2)
	assert.Equal(t, DefaultUserAgent, gotUA.Load())
}

func TestScrapeBlocked(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	c := NewClient(testLogger(), ts.Client(), "test-agent")
	_, err := Scrape(context.Background(), c, ts.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBlocked))
	// a 403 is not worth retrying
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestScrapeUnexpectedStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := NewClient(testLogger(), ts.Client(), "test-agent")
	_, err := Scrape(context.Background(), c, ts.URL)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrBlocked))
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestNewClientLeavesCallerClientUntouched(t *testing.T) {
	hc := &http.Client{}
	c := NewClient(testLogger(), hc, "").(*client)
	assert.Zero(t, hc.Timeout)
	assert.NotSame(t, hc, c.http.HTTPClient)
	assert.Equal(t, 30*time.Second, c.http.HTTPClient.Timeout)
}
