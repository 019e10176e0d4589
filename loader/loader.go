// Package loader fetches the listings document from a primary source, falling
// back once to a secondary source, and normalizes it into listings.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/brojonat/annonces/listing"
)

// DefaultBodyLimit caps the size of a listings document.
const DefaultBodyLimit = 32 << 20

// LoadFailure reports that a source could not be fetched or parsed. When the
// fallback source failed as well, Fallback carries its failure.
type LoadFailure struct {
	Source     string
	StatusCode int
	Err        error
	Fallback   *LoadFailure
}

func (e *LoadFailure) Error() string {
	msg := fmt.Sprintf("load %s: %s", e.Source, e.cause())
	if e.Fallback != nil {
		msg += fmt.Sprintf("; fallback %s: %s", e.Fallback.Source, e.Fallback.cause())
	}
	return msg
}

func (e *LoadFailure) cause() string {
	if e.StatusCode != 0 && e.Err == nil {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

func (e *LoadFailure) Unwrap() []error {
	errs := []error{}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Fallback != nil {
		errs = append(errs, e.Fallback)
	}
	return errs
}

// Result is one successful load.
type Result struct {
	Listings     []listing.Listing
	Source       string
	UsedFallback bool
	LoadedAt     time.Time
}

type Loader struct {
	primary   string
	fallback  string
	logger    *slog.Logger
	http      *http.Client
	s3        S3API
	archiver  *Archiver
	bodyLimit int64
	now       func() time.Time
}

type Option func(*Loader)

func WithLogger(l *slog.Logger) Option {
	return func(ld *Loader) { ld.logger = l }
}

func WithHTTPClient(c *http.Client) Option {
	return func(ld *Loader) { ld.http = c }
}

// WithS3 enables s3://bucket/key source references.
func WithS3(api S3API) Option {
	return func(ld *Loader) { ld.s3 = api }
}

// WithArchiver stores a copy of every successfully loaded document.
func WithArchiver(a *Archiver) Option {
	return func(ld *Loader) { ld.archiver = a }
}

func WithBodyLimit(n int64) Option {
	return func(ld *Loader) { ld.bodyLimit = n }
}

// New returns a Loader reading primary, then fallback when primary fails. Both
// are source references: an http(s) URL, an s3://bucket/key object or a
// local file path. An empty fallback disables the retry.
func New(primary, fallback string, opts ...Option) *Loader {
	ld := &Loader{
		primary:   primary,
		fallback:  fallback,
		logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		http:      http.DefaultClient,
		bodyLimit: DefaultBodyLimit,
		now:       time.Now,
	}
	for _, o := range opts {
		o(ld)
	}
	return ld
}

func (ld *Loader) Primary() string  { return ld.primary }
func (ld *Loader) Fallback() string { return ld.fallback }

// Load fetches and normalizes the listings document. The fallback is tried
// exactly once; the returned error is always a *LoadFailure.
func (ld *Loader) Load(ctx context.Context) (Result, error) {
	res, pf := ld.loadFrom(ctx, ld.primary)
	if pf == nil {
		return res, nil
	}
	if ld.fallback == "" {
		return Result{}, pf
	}
	ld.logger.Warn("primary listings source failed, using fallback",
		"source", ld.primary, "fallback", ld.fallback, "error", pf.Error())

	res, ff := ld.loadFrom(ctx, ld.fallback)
	if ff != nil {
		pf.Fallback = ff
		return Result{}, pf
	}
	res.UsedFallback = true
	return res, nil
}

func (ld *Loader) loadFrom(ctx context.Context, ref string) (Result, *LoadFailure) {
	body, err := ld.fetch(ctx, ref)
	if err != nil {
		lf := &LoadFailure{Source: ref, Err: err}
		var se *statusError
		if errors.As(err, &se) {
			lf.StatusCode = se.code
		}
		return Result{}, lf
	}
	ls, err := Decode(body)
	if err != nil {
		return Result{}, &LoadFailure{Source: ref, Err: err}
	}
	if ld.archiver != nil {
		key, err := ld.archiver.Archive(ctx, ref, body)
		if err != nil {
			ld.logger.Error("error archiving listings snapshot", "source", ref, "error", err.Error())
		} else {
			ld.logger.Info("archived listings snapshot", "key", key)
		}
	}
	ld.logger.Info("loaded listings", "source", ref, "count", len(ls))
	return Result{Listings: ls, Source: ref, LoadedAt: ld.now()}, nil
}

// Decode parses a listings document. A bare object is treated as a
// one-element array.
func Decode(b []byte) ([]listing.Listing, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("parse listings json: %w", err)
	}
	switch t := v.(type) {
	case []any:
		return listing.NormalizeAll(t), nil
	case map[string]any:
		return listing.NormalizeAll([]any{t}), nil
	default:
		return nil, fmt.Errorf("unexpected listings payload of type %T", v)
	}
}
