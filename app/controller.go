package app

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brojonat/annonces/listing"
	"github.com/brojonat/annonces/loader"
)

// Loader is the data source the controller refreshes from.
type Loader interface {
	Load(ctx context.Context) (loader.Result, error)
}

// Controller is the single writer of the application state. Readers take
// snapshots; every change publishes a new State.
type Controller struct {
	logger    *slog.Logger
	loader    Loader
	debouncer *Debouncer
	state     atomic.Pointer[State]
	passes    atomic.Int64

	// mu serializes state writers; loadMu keeps loads from overlapping.
	mu       sync.Mutex
	loadMu   sync.Mutex
	pending  *listing.Criteria
	onChange func(*State)
}

func NewController(logger *slog.Logger, ld Loader, debounce time.Duration) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	c := &Controller{
		logger:    logger,
		loader:    ld,
		debouncer: NewDebouncer(debounce),
	}
	c.state.Store(&State{
		All:    []listing.Listing{},
		View:   []listing.Listing{},
		Cities: []string{},
		Status: StatusLoading,
	})
	return c
}

// OnChange registers f to be called with every newly published state. It
// must be set before the controller is used concurrently.
func (c *Controller) OnChange(f func(*State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = f
}

func (c *Controller) Snapshot() *State {
	return c.state.Load()
}

// FilterPasses counts how many times the view has been recomputed.
func (c *Controller) FilterPasses() int64 {
	return c.passes.Load()
}

// Load replaces the collection with a fresh load. On failure the collection
// is emptied and the error is kept on the state.
func (c *Controller) Load(ctx context.Context) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	c.publish(func(s *State) { s.Status = StatusLoading })

	res, err := c.loader.Load(ctx)
	if err != nil {
		c.logger.Error("error loading listings", "error", err.Error())
		c.publish(func(s *State) {
			s.All = []listing.Listing{}
			s.View = []listing.Listing{}
			s.Cities = []string{}
			s.Err = err.Error()
			s.Status = StatusError
			s.Source = ""
			s.UsedFallback = false
		})
		return err
	}

	c.publish(func(s *State) {
		s.All = res.Listings
		s.Cities = listing.DistinctCities(res.Listings)
		s.Source = res.Source
		s.UsedFallback = res.UsedFallback
		s.LoadedAt = res.LoadedAt
		s.Err = ""
		s.Status = StatusReady
		s.View = c.recompute(s.All, s.Criteria, s.Sort)
	})
	return nil
}

// Input records new criteria. Text and range inputs are applied once the
// burst settles; select inputs apply at once and drop any pending run.
func (c *Controller) Input(kind InputKind, crit listing.Criteria) {
	if !kind.Debounced() {
		c.debouncer.Immediate(func() { c.apply(&crit, nil) })
		return
	}
	c.mu.Lock()
	c.pending = &crit
	c.mu.Unlock()
	c.debouncer.Debounce(func() { c.apply(nil, nil) })
}

// SetSort reorders the view immediately, folding in criteria that were still
// waiting on the debounce timer. It returns the state it published.
func (c *Controller) SetSort(key listing.SortKey) *State {
	key = listing.ParseSortKey(string(key))
	c.debouncer.Cancel()
	return c.apply(nil, &key)
}

// Apply sets criteria and sort in one immediate pass and returns the state it
// published. Callers answering a request should read from that state rather
// than a later Snapshot, which may already hold another writer's view.
func (c *Controller) Apply(crit listing.Criteria, key listing.SortKey) *State {
	key = listing.ParseSortKey(string(key))
	c.debouncer.Cancel()
	return c.apply(&crit, &key)
}

// Reset clears criteria and sort.
func (c *Controller) Reset() *State {
	return c.Apply(listing.Criteria{}, listing.SortNone)
}

// Flush applies pending criteria without waiting for the timer.
func (c *Controller) Flush() {
	c.debouncer.Flush()
}

// apply recomputes the view. A nil crit takes the pending criteria, else the
// current ones; a nil key keeps the current sort.
func (c *Controller) apply(crit *listing.Criteria, key *listing.SortKey) *State {
	return c.publish(func(s *State) {
		switch {
		case crit != nil:
			s.Criteria = *crit
			c.pending = nil
		case c.pending != nil:
			s.Criteria = *c.pending
			c.pending = nil
		}
		if key != nil {
			s.Sort = *key
		}
		s.View = c.recompute(s.All, s.Criteria, s.Sort)
	})
}

func (c *Controller) recompute(all []listing.Listing, crit listing.Criteria, key listing.SortKey) []listing.Listing {
	c.passes.Add(1)
	return listing.Sort(listing.Filter(all, crit), key)
}

// publish copies the current state, lets mutate edit the copy under the
// writer lock and stores it.
func (c *Controller) publish(mutate func(*State)) *State {
	c.mu.Lock()
	next := *c.state.Load()
	mutate(&next)
	next.FilterPasses = c.passes.Load()
	c.state.Store(&next)
	hook := c.onChange
	c.mu.Unlock()

	if hook != nil {
		hook(&next)
	}
	return &next
}
