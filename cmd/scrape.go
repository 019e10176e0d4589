package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/brojonat/annonces/seloger"
	"github.com/brojonat/annonces/worker"
)

func run_scrape(ctx *cli.Context) error {
	logger := getLogger()
	cookies, err := seloger.LoadCookies(ctx.String("cookies"))
	if err != nil {
		return fmt.Errorf("could not load cookies: %w", err)
	}
	if len(cookies) == 0 {
		logger.Warn("no cookies loaded, continuing without a session", "path", ctx.String("cookies"))
	}
	hc, err := seloger.NewHTTPClient(cookies)
	if err != nil {
		return err
	}
	sc := seloger.NewClient(logger, hc, "")

	searchURL := ctx.String("search-url")
	if searchURL == "" {
		overrides, err := parseFilterOverrides(ctx.StringSlice("filter"))
		if err != nil {
			return err
		}
		if n := ctx.Int("surface-min"); n > 0 {
			overrides["spaceMin"] = strconv.Itoa(n)
		}
		searchURL = seloger.BuildSearchURL(overrides)
	}
	out := ctx.String("output")

	if interval := ctx.Duration("interval"); interval > 0 {
		return worker.RunWorkerFunc(
			ctx.Context,
			logger,
			interval,
			worker.MakeScrapeWorkerFunc(sc, searchURL, out),
		)
	}

	n, err := worker.ScrapeToFile(ctx.Context, sc, searchURL, out)
	if err != nil {
		return err
	}
	logger.Info("wrote listings", "count", n, "path", out, "url", searchURL)
	return nil
}

func parseFilterOverrides(vals []string) (map[string]string, error) {
	overrides := map[string]string{}
	for _, v := range vals {
		k, val, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("bad filter %q, want key=value", v)
		}
		overrides[strings.TrimSpace(k)] = strings.TrimSpace(val)
	}
	return overrides, nil
}
