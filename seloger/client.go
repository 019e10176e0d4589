// Package seloger scrapes search result pages into flat listing records the
// loader can serve.
package seloger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	BaseURL          = "https://www.seloger.com"
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

	maxPageBytes = 8 << 20
)

// ErrBlocked is returned when the site answers 403, which in practice means
// the anti-bot layer rejected the session cookies.
var ErrBlocked = errors.New("access denied (403): anti-bot protection, refresh the session cookies")

type Client interface {
	// SearchPage fetches the raw HTML of a search result page.
	SearchPage(ctx context.Context, searchURL string) ([]byte, error)
}

type client struct {
	http      *retryablehttp.Client
	userAgent string
}

// NewClient wraps hc, whose cookie jar carries the session, in a retrying
// client. Only transport errors and 5xx/429 answers are retried.
func NewClient(logger *slog.Logger, hc *http.Client, userAgent string) Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.RetryMax = 3
	if hc != nil {
		// copied so the caller's client keeps its own timeout
		cp := *hc
		rc.HTTPClient = &cp
	}
	if rc.HTTPClient.Timeout == 0 {
		rc.HTTPClient.Timeout = 30 * time.Second
	}
	rc.Logger = logger
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &client{http: rc, userAgent: userAgent}
}

func (c *client) SearchPage(ctx context.Context, searchURL string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Referer", BaseURL+"/")
	req.Header.Set("User-Agent", c.userAgent)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	switch {
	case res.StatusCode == http.StatusForbidden:
		return nil, ErrBlocked
	case res.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %d from %s", res.StatusCode, searchURL)
	}
	return readAllLimit(res.Body, maxPageBytes)
}

func readAllLimit(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errors.New("payload too large")
	}
	return b, nil
}
