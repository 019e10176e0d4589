package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"

	"github.com/brojonat/annonces/listing"
)

// Marker is a listing projected onto the map.
type Marker struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Price      string    `json:"price"`
	PriceValue float64   `json:"price_value"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Precision  Precision `json:"precision"`
}

// Markers projects every resolvable listing, in input order. Listings the
// resolver cannot place are left out.
func Markers(ls []listing.Listing, r Resolver) []Marker {
	out := make([]Marker, 0, len(ls))
	for _, l := range ls {
		p, ok := r.Resolve(l)
		if !ok {
			continue
		}
		out = append(out, Marker{
			ID:         l.ID,
			Title:      l.Title,
			Price:      l.Price,
			PriceValue: l.PriceValue,
			Lat:        p.Lat,
			Lng:        p.Lng,
			Precision:  p.Precision,
		})
	}
	return out
}

type SizeClass string

const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

// ClassifySize picks the cluster icon class for a member count.
func ClassifySize(n int) SizeClass {
	switch {
	case n < 10:
		return SizeSmall
	case n <= 100:
		return SizeMedium
	default:
		return SizeLarge
	}
}

type Cluster struct {
	Lat      float64
	Lng      float64
	Count    int
	Size     SizeClass
	MinPrice float64
	MaxPrice float64
	IDs      []string
	Bounds   *geom.Bounds
}

const (
	maxZoom      = 22
	cellsPerTile = 4
)

// ClusterMarkers groups markers on a square grid whose cell size halves with each
// zoom level. Clusters come out in the order their first member appears.
func ClusterMarkers(ms []Marker, zoom int) []Cluster {
	zoom = max(0, min(zoom, maxZoom))
	cell := 360.0 / math.Exp2(float64(zoom)) / cellsPerTile

	type acc struct {
		sumLat, sumLng float64
		c              Cluster
	}
	cells := map[[2]int64]*acc{}
	order := [][2]int64{}
	for _, m := range ms {
		k := [2]int64{int64(math.Floor(m.Lng / cell)), int64(math.Floor(m.Lat / cell))}
		a, ok := cells[k]
		if !ok {
			a = &acc{c: Cluster{Bounds: geom.NewBounds(geom.XY), MinPrice: math.Inf(1)}}
			cells[k] = a
			order = append(order, k)
		}
		a.sumLat += m.Lat
		a.sumLng += m.Lng
		a.c.Count++
		a.c.IDs = append(a.c.IDs, m.ID)
		a.c.Bounds.Extend(geom.NewPointFlat(geom.XY, []float64{m.Lng, m.Lat}))
		if m.PriceValue > 0 {
			a.c.MinPrice = math.Min(a.c.MinPrice, m.PriceValue)
			a.c.MaxPrice = math.Max(a.c.MaxPrice, m.PriceValue)
		}
	}

	out := make([]Cluster, 0, len(order))
	for _, k := range order {
		a := cells[k]
		a.c.Lat = a.sumLat / float64(a.c.Count)
		a.c.Lng = a.sumLng / float64(a.c.Count)
		a.c.Size = ClassifySize(a.c.Count)
		if math.IsInf(a.c.MinPrice, 1) {
			a.c.MinPrice = 0
		}
		out = append(out, a.c)
	}
	return out
}

// ParseBBox reads "minLng,minLat,maxLng,maxLat".
func ParseBBox(s string) (*geom.Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bbox must have 4 comma separated values, got %d", len(parts))
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad bbox value %q: %w", p, err)
		}
		vals[i] = f
	}
	if vals[0] > vals[2] || vals[1] > vals[3] {
		return nil, fmt.Errorf("bbox min exceeds max")
	}
	return geom.NewBounds(geom.XY).Set(vals...), nil
}

// Within keeps the markers inside b.
func Within(ms []Marker, b *geom.Bounds) []Marker {
	out := make([]Marker, 0, len(ms))
	for _, m := range ms {
		if b.OverlapsPoint(geom.XY, geom.Coord{m.Lng, m.Lat}) {
			out = append(out, m)
		}
	}
	return out
}
