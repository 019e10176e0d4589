package geo

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// MarkersGeoJSON encodes markers as Point features carrying the listing
// summary in their properties.
func MarkersGeoJSON(ms []Marker) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(ms))}
	for _, m := range ms {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       m.ID,
			Geometry: geom.NewPointFlat(geom.XY, []float64{m.Lng, m.Lat}),
			Properties: map[string]interface{}{
				"title":       m.Title,
				"price":       m.Price,
				"price_value": m.PriceValue,
				"precision":   string(m.Precision),
			},
		})
	}
	return fc
}

// ClustersGeoJSON encodes clusters as Point features at their mean position,
// with the member bounds as the feature bbox.
func ClustersGeoJSON(cs []Cluster) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(cs))}
	for _, c := range cs {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{c.Lng, c.Lat}),
			BBox:     c.Bounds,
			Properties: map[string]interface{}{
				"count":     c.Count,
				"size":      string(c.Size),
				"min_price": c.MinPrice,
				"max_price": c.MaxPrice,
				"ids":       c.IDs,
			},
		})
	}
	return fc
}
