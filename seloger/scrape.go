package seloger

import (
	"bytes"
	"context"
	"fmt"
)

// Scrape fetches one search page and parses its cards.
func Scrape(ctx context.Context, c Client, searchURL string) ([]Card, error) {
	b, err := c.SearchPage(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", searchURL, err)
	}
	cards, err := ParseListings(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", searchURL, err)
	}
	return cards, nil
}
