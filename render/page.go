package render

import (
	"html/template"

	"github.com/brojonat/annonces/listing"
)

// PageView is everything the listings page shows.
type PageView struct {
	Listings     []listing.Listing
	Total        int
	Cities       []string
	Criteria     listing.Criteria
	Sort         listing.SortKey
	Status       string
	Err          string
	Source       string
	UsedFallback bool
	TileURL      string
}

type sortOption struct {
	Key      listing.SortKey
	Label    string
	Selected bool
}

type cityOption struct {
	Name     string
	Selected bool
}

type pageData struct {
	PageView
	Count       string
	Cards       []template.HTML
	CityOptions []cityOption
	SortOptions []sortOption
}

var sortLabels = map[listing.SortKey]string{
	listing.SortNone:        "Sort by",
	listing.SortPriceAsc:    "Price ascending",
	listing.SortPriceDesc:   "Price descending",
	listing.SortSurfaceAsc:  "Surface ascending",
	listing.SortSurfaceDesc: "Surface descending",
}

// DefaultTileURL is the OpenStreetMap tile template used when none is set.
const DefaultTileURL = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"

// Page renders the full listings page for v.
func Page(v PageView) template.HTML {
	if v.TileURL == "" {
		v.TileURL = DefaultTileURL
	}
	d := pageData{PageView: v, Count: CountLabel(len(v.Listings))}
	for _, l := range v.Listings {
		d.Cards = append(d.Cards, Card(l))
	}
	for _, c := range v.Cities {
		d.CityOptions = append(d.CityOptions, cityOption{Name: c, Selected: c == v.Criteria.City})
	}
	for _, k := range listing.SortKeys() {
		d.SortOptions = append(d.SortOptions, sortOption{Key: k, Label: sortLabels[k], Selected: k == v.Sort})
	}
	return execute("page", d)
}
