package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/brojonat/annonces/listing"
	"github.com/brojonat/annonces/render"
)

func list_listings(ctx *cli.Context) error {
	logger := getLogger()
	ld, err := buildLoader(ctx.Context, logger, ctx.String("listings-url"), ctx.String("listings-fallback"))
	if err != nil {
		return err
	}
	res, err := ld.Load(ctx.Context)
	if err != nil {
		return err
	}

	crit, key := criteriaFromFlags(ctx)
	ls := listing.Sort(listing.Filter(res.Listings, crit), key)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Title", "Price", "Surface", "Rooms", "Bedrooms", "City"})
	for _, l := range ls {
		t.AppendRow(table.Row{
			l.ID,
			render.Truncate(l.Title, 48),
			l.Price,
			l.Surface,
			l.Rooms,
			l.Bedrooms,
			l.City,
		})
	}
	source := res.Source
	if res.UsedFallback {
		source += " (fallback)"
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%s of %d", render.CountLabel(len(ls)), len(res.Listings)), "", "", "", "", source})
	t.Render()
	return nil
}
