package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/brojonat/annonces/app"
	"github.com/brojonat/annonces/listing"
	"github.com/brojonat/annonces/render"
)

func main() {
	// flag defaults read the environment, so .env has to be loaded first
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env: %v", err)
	}

	cliApp := &cli.App{
		Name:  "annonces",
		Usage: "Browse real estate listings.",
		Commands: []*cli.Command{
			{
				Name:  "run-http-server",
				Usage: "Run the HTTP server on the specified port.",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "listen-port",
						Aliases: []string{"port", "p"},
						Value:   "8080",
						Usage:   "Port to listen on.",
					},
					&cli.DurationFlag{
						Name:    "reload-interval",
						Aliases: []string{"i"},
						Value:   envDuration("RELOAD_INTERVAL", 0),
						Usage:   "Reload the listings on this interval; zero disables periodic reloads.",
					},
					&cli.DurationFlag{
						Name:  "debounce",
						Value: app.DefaultDebounce,
						Usage: "Settle time of text and range filter inputs.",
					},
					&cli.StringFlag{
						Name:    "centroids-file",
						Aliases: []string{"centroids"},
						Value:   os.Getenv("CENTROIDS_FILE"),
						Usage:   "YAML file of district and city centroids merged over the built-in table.",
					},
					&cli.StringFlag{
						Name:    "tile-url",
						EnvVars: []string{"MAP_TILE_URL"},
						Value:   render.DefaultTileURL,
						Usage:   "Map tile URL template with {s}, {z}, {x} and {y} placeholders.",
					},
					&cli.BoolFlag{
						Name:  "allow-city-fallback",
						Value: true,
						Usage: "Place listings without a known district at their city centroid.",
					},
				}, sourceFlags()...),
				Action: func(ctx *cli.Context) error {
					return serve_http(ctx)
				},
			},
			{
				Name:  "list",
				Usage: "Load the listings once and print them as a table.",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Free text search."},
					&cli.StringFlag{Name: "city", Usage: "Exact city."},
					&cli.Float64Flag{Name: "price-min", Usage: "Minimum price."},
					&cli.Float64Flag{Name: "price-max", Usage: "Maximum price."},
					&cli.Float64Flag{Name: "surface-min", Usage: "Minimum surface in m²."},
					&cli.Float64Flag{Name: "surface-max", Usage: "Maximum surface in m²."},
					&cli.IntFlag{Name: "min-bedrooms", Usage: "Minimum number of bedrooms."},
					&cli.IntFlag{Name: "min-rooms", Usage: "Minimum number of rooms."},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "One of price-asc, price-desc, surface-asc, surface-desc.",
					},
				}, sourceFlags()...),
				Action: func(ctx *cli.Context) error {
					return list_listings(ctx)
				},
			},
			{
				Name:  "scrape",
				Usage: "Scrape a search result page into a listings document.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "search-url",
						Usage: "Search page to scrape; built from the default filters when empty.",
					},
					&cli.StringFlag{
						Name:    "cookies",
						Aliases: []string{"c"},
						Value:   envOr("SELOGER_COOKIES", ".cookies"),
						Usage:   "Cookie file (JSON object, browser export or raw header).",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   "annonces.json",
						Usage:   "Output JSON file.",
					},
					&cli.IntFlag{
						Name:  "surface-min",
						Usage: "Minimum surface in m², overriding the default filter.",
					},
					&cli.StringSliceFlag{
						Name:  "filter",
						Usage: "Search filter override as key=value; repeatable.",
					},
					&cli.DurationFlag{
						Name:    "interval",
						Aliases: []string{"i"},
						Usage:   "Scrape on this interval instead of once.",
					},
				},
				Action: func(ctx *cli.Context) error {
					return run_scrape(ctx)
				},
			},
			{
				Name:  "reload",
				Usage: "Ask a running server to reload its listings.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "server-endpoint",
						Aliases: []string{"server", "s"},
						Value:   envOr("SERVER_ENDPOINT", "http://localhost:8080"),
						Usage:   "Server endpoint.",
					},
					&cli.StringFlag{
						Name:    "auth-token",
						Aliases: []string{"token", "t"},
						Value:   os.Getenv("AUTH_TOKEN"),
						Usage:   "Auth token for server requests.",
					},
					&cli.DurationFlag{
						Name:    "interval",
						Aliases: []string{"i"},
						Usage:   "Request a reload on this interval instead of once.",
					},
				},
				Action: func(ctx *cli.Context) error {
					return request_reload(ctx)
				},
			},
		}}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// sourceFlags are shared by the commands that load listings.
func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "listings-url",
			Aliases: []string{"url", "u"},
			Value:   os.Getenv("LISTINGS_URL"),
			Usage:   "Primary listings document (http(s) URL, s3://bucket/key or file path).",
		},
		&cli.StringFlag{
			Name:    "listings-fallback",
			Aliases: []string{"fallback", "f"},
			Value:   os.Getenv("LISTINGS_FALLBACK"),
			Usage:   "Listings document tried once when the primary fails.",
		},
	}
}

func getLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("ignoring bad %s=%q: %v", key, v, err)
		return def
	}
	return d
}

func criteriaFromFlags(ctx *cli.Context) (listing.Criteria, listing.SortKey) {
	return listing.Criteria{
		Query:       ctx.String("query"),
		City:        ctx.String("city"),
		PriceMin:    ctx.Float64("price-min"),
		PriceMax:    ctx.Float64("price-max"),
		SurfaceMin:  ctx.Float64("surface-min"),
		SurfaceMax:  ctx.Float64("surface-max"),
		MinBedrooms: ctx.Int("min-bedrooms"),
		MinRooms:    ctx.Int("min-rooms"),
	}, listing.ParseSortKey(ctx.String("sort"))
}
