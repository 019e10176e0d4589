package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brojonat/annonces/listing"
	"github.com/brojonat/annonces/loader"
)

type fakeLoader struct {
	mu    sync.Mutex
	res   loader.Result
	err   error
	calls int
}

func (f *fakeLoader) Load(ctx context.Context) (loader.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.res, f.err
}

func twoListings() []listing.Listing {
	return listing.NormalizeAll([]any{
		map[string]any{"id": "A", "title": "T3", "price": "250 000 €", "ville": "Lyon", "surface": "62 m²"},
		map[string]any{"id": "B", "title": "T2", "price": "180 000 €", "ville": "Villeurbanne", "surface": "45 m²"},
	})
}

func loadedController(t *testing.T, debounce time.Duration) *Controller {
	t.Helper()
	fl := &fakeLoader{res: loader.Result{Listings: twoListings(), Source: "primary", LoadedAt: time.Now()}}
	c := NewController(nil, fl, debounce)
	require.NoError(t, c.Load(context.Background()))
	return c
}

func viewIDs(s *State) []string {
	ids := []string{}
	for _, l := range s.View {
		ids = append(ids, l.ID)
	}
	return ids
}

func TestControllerLoad(t *testing.T) {
	c := NewController(nil, &fakeLoader{}, DefaultDebounce)
	assert.Equal(t, StatusLoading, c.Snapshot().Status)

	c = loadedController(t, DefaultDebounce)
	s := c.Snapshot()
	assert.Equal(t, StatusReady, s.Status)
	assert.Equal(t, []string{"A", "B"}, viewIDs(s))
	assert.Equal(t, []string{"Lyon", "Villeurbanne"}, s.Cities)
	assert.Equal(t, "primary", s.Source)
	total, visible := s.Counts()
	assert.Equal(t, 2, total)
	assert.Equal(t, 2, visible)
}

func TestControllerLoadFailureEmptiesCollection(t *testing.T) {
	fl := &fakeLoader{res: loader.Result{Listings: twoListings()}}
	c := NewController(nil, fl, DefaultDebounce)
	require.NoError(t, c.Load(context.Background()))

	fl.err = &loader.LoadFailure{Source: "https://api/listings", StatusCode: 500}
	err := c.Load(context.Background())
	var lf *loader.LoadFailure
	require.True(t, errors.As(err, &lf))

	s := c.Snapshot()
	assert.Equal(t, StatusError, s.Status)
	assert.Contains(t, s.Err, "unexpected status 500")
	assert.Empty(t, s.All)
	assert.Empty(t, s.View)
	assert.Empty(t, s.Cities)
}

func TestControllerSortScenario(t *testing.T) {
	c := loadedController(t, DefaultDebounce)
	c.SetSort(listing.SortPriceAsc)
	assert.Equal(t, []string{"B", "A"}, viewIDs(c.Snapshot()))
	assert.Equal(t, listing.SortPriceAsc, c.Snapshot().Sort)
}

func TestControllerSelectInputIsImmediate(t *testing.T) {
	c := loadedController(t, time.Hour)
	before := c.FilterPasses()

	c.Input(InputSelect, listing.Criteria{City: "Lyon"})
	assert.Equal(t, []string{"A"}, viewIDs(c.Snapshot()))
	assert.Equal(t, before+1, c.FilterPasses())
}

func TestControllerDebouncesTextInput(t *testing.T) {
	c := loadedController(t, 50*time.Millisecond)
	before := c.FilterPasses()

	var changes int32
	c.OnChange(func(*State) { atomic.AddInt32(&changes, 1) })

	for _, q := range []string{"T", "T2", "T3"} {
		c.Input(InputText, listing.Criteria{Query: q})
		time.Sleep(5 * time.Millisecond)
	}
	// nothing applied while the burst is running
	assert.Equal(t, before, c.FilterPasses())
	assert.Equal(t, []string{"A", "B"}, viewIDs(c.Snapshot()))

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, before+1, c.FilterPasses())
	assert.Equal(t, int32(1), atomic.LoadInt32(&changes))
	assert.Equal(t, []string{"A"}, viewIDs(c.Snapshot()))
	assert.Equal(t, "T3", c.Snapshot().Criteria.Query)
}

func TestControllerSelectCancelsPendingRun(t *testing.T) {
	c := loadedController(t, 50*time.Millisecond)
	before := c.FilterPasses()

	c.Input(InputRange, listing.Criteria{PriceMax: 200000})
	c.Input(InputSelect, listing.Criteria{City: "Lyon"})
	time.Sleep(120 * time.Millisecond)

	assert.Equal(t, before+1, c.FilterPasses())
	assert.Equal(t, listing.Criteria{City: "Lyon"}, c.Snapshot().Criteria)
}

func TestControllerSetSortFoldsPendingCriteria(t *testing.T) {
	c := loadedController(t, time.Hour)
	c.Input(InputRange, listing.Criteria{PriceMin: 100000})
	c.SetSort(listing.SortPriceDesc)

	s := c.Snapshot()
	assert.Equal(t, 100000.0, s.Criteria.PriceMin)
	assert.Equal(t, []string{"A", "B"}, viewIDs(s))
}

func TestControllerFlushAndReset(t *testing.T) {
	c := loadedController(t, time.Hour)
	c.Input(InputText, listing.Criteria{Query: "villeurbanne"})
	assert.Equal(t, []string{"A", "B"}, viewIDs(c.Snapshot()))

	c.Flush()
	assert.Equal(t, []string{"B"}, viewIDs(c.Snapshot()))

	c.SetSort(listing.SortSurfaceAsc)
	c.Reset()
	s := c.Snapshot()
	assert.True(t, s.Criteria.IsZero())
	assert.Equal(t, listing.SortNone, s.Sort)
	assert.Equal(t, []string{"A", "B"}, viewIDs(s))
}

func TestControllerReloadKeepsCriteria(t *testing.T) {
	c := loadedController(t, time.Hour)
	c.Apply(listing.Criteria{City: "villeurbanne"}, listing.SortNone)
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, []string{"B"}, viewIDs(c.Snapshot()))
}

func TestSnapshotsAreNotMutated(t *testing.T) {
	c := loadedController(t, time.Hour)
	first := c.Snapshot()
	c.Apply(listing.Criteria{City: "Lyon"}, listing.SortPriceAsc)
	assert.Equal(t, []string{"A", "B"}, viewIDs(first))
	assert.True(t, first.Criteria.IsZero())
}

func TestApplyReturnsPublishedState(t *testing.T) {
	c := loadedController(t, time.Hour)
	lyon := c.Apply(listing.Criteria{City: "Lyon"}, listing.SortNone)
	other := c.Apply(listing.Criteria{City: "villeurbanne"}, listing.SortNone)

	assert.Equal(t, []string{"A"}, viewIDs(lyon))
	assert.Equal(t, []string{"B"}, viewIDs(other))
	assert.Same(t, other, c.Snapshot())

	reset := c.Reset()
	assert.Equal(t, []string{"A", "B"}, viewIDs(reset))
	sorted := c.SetSort(listing.SortPriceAsc)
	assert.Equal(t, []string{"B", "A"}, viewIDs(sorted))
}

func TestParseInputKind(t *testing.T) {
	k, err := ParseInputKind("Select")
	require.NoError(t, err)
	assert.Equal(t, InputSelect, k)
	k, err = ParseInputKind("")
	require.NoError(t, err)
	assert.Equal(t, InputText, k)
	_, err = ParseInputKind("checkbox")
	assert.Error(t, err)
}
