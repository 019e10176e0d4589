package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/brojonat/histogram"

	"github.com/brojonat/annonces/app"
	"github.com/brojonat/annonces/listing"
)

const (
	defaultBins = 10
	maxBins     = 100
)

// Writes a list of { min, count } objects binning field over the current
// view. Listings without a value for field are left out.
func handlePlotData(l *slog.Logger, c *app.Controller, field listing.SortKey) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch v := q.Get("version"); v {
		case "", "1":
		default:
			writeBadRequestError(w, fmt.Errorf("unsupported version: %s", v))
			return
		}
		n, err := intParam(q, "bins", defaultBins)
		if err != nil || n == 0 || n > maxBins {
			writeBadRequestError(w, fmt.Errorf("bad value for bins, want 1 to %d", maxBins))
			return
		}

		vals := []float64{}
		for _, ls := range c.Snapshot().View {
			if v := ls.Value(field); v > 0 {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			writeEmptyResultError(w)
			return
		}

		bins, err := binValues(vals, n)
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(bins)
	}
}

func binValues(vals []float64, n int) ([]HistogramBin, error) {
	// a single distinct value has no span to divide
	if allEqual(vals) {
		return []HistogramBin{{Min: vals[0], Count: len(vals)}}, nil
	}
	bs, err := histogram.BSExactSpan(n)(vals)
	if err != nil {
		return nil, err
	}
	h, err := histogram.Hist(vals, bs, histogram.DefaultBucketer)
	if err != nil {
		return nil, err
	}
	bins := []HistogramBin{}
	for _, b := range h.Buckets {
		bins = append(bins, HistogramBin{Min: b.Min, Count: b.Count})
	}
	return bins, nil
}

func allEqual(vals []float64) bool {
	for _, v := range vals[1:] {
		if v != vals[0] {
			return false
		}
	}
	return true
}
