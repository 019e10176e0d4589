package worker

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/brojonat/annonces/seloger"
)

// MakeScrapeWorkerFunc scrapes searchURL into the JSON file at out. A page
// without cards leaves the previous file in place, since that is what a
// blocked session usually looks like.
func MakeScrapeWorkerFunc(sc seloger.Client, searchURL, out string) func(context.Context, *slog.Logger) {
	f := func(ctx context.Context, logger *slog.Logger) {
		logger.Info("running scrape worker", "url", searchURL)
		n, err := ScrapeToFile(ctx, sc, searchURL, out)
		if err != nil {
			logger.Error("error scraping", "error", err.Error())
			return
		}
		logger.Info("wrote listings", "count", n, "path", out)
	}
	return f
}

var errNoCards = errors.New("no listings found on the search page")

// ScrapeToFile writes the cards of one search page to out, replacing the file
// atomically.
func ScrapeToFile(ctx context.Context, sc seloger.Client, searchURL, out string) (int, error) {
	cards, err := seloger.Scrape(ctx, sc, searchURL)
	if err != nil {
		return 0, err
	}
	if len(cards) == 0 {
		return 0, errNoCards
	}

	var buf bytes.Buffer
	if err := seloger.WriteJSON(&buf, cards); err != nil {
		return 0, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(out), ".listings-*.json")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), out); err != nil {
		return 0, err
	}
	return len(cards), nil
}
