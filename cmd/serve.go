package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/brojonat/annonces/app"
	"github.com/brojonat/annonces/geo"
	"github.com/brojonat/annonces/server"
	"github.com/brojonat/annonces/worker"
)

const reloadTimeout = 2 * time.Minute

func serve_http(ctx *cli.Context) error {
	logger := getLogger()
	ld, err := buildLoader(ctx.Context, logger, ctx.String("listings-url"), ctx.String("listings-fallback"))
	if err != nil {
		return err
	}

	table := geo.DefaultTable()
	if p := ctx.String("centroids-file"); p != "" {
		table, err = geo.LoadTable(p, table)
		if err != nil {
			return fmt.Errorf("could not load centroids: %w", err)
		}
	}
	resolver := geo.NewTableResolver(table, ctx.Bool("allow-city-fallback"))

	c := app.NewController(logger, ld, ctx.Duration("debounce"))
	// a failed first load still serves the page, which shows the error
	if err := c.Load(ctx.Context); err != nil {
		logger.Error("initial load failed", "error", err.Error())
	}

	if interval := ctx.Duration("reload-interval"); interval > 0 {
		go worker.RunWorkerFunc(
			ctx.Context,
			logger,
			interval,
			worker.MakeReloadWorkerFunc(c, reloadTimeout),
		)
	}

	return server.RunHTTPServer(
		ctx.Context,
		logger,
		c,
		resolver,
		ctx.String("listen-port"),
		ctx.String("tile-url"),
	)
}
