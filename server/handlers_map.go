package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/brojonat/annonces/app"
	"github.com/brojonat/annonces/geo"
)

const defaultZoom = 12

// markersInView resolves the current view and narrows it to the optional
// bbox parameter.
func markersInView(c *app.Controller, gr geo.Resolver, r *http.Request) ([]geo.Marker, error) {
	ms := geo.Markers(c.Snapshot().View, gr)
	bb := r.URL.Query().Get("bbox")
	if bb == "" {
		return ms, nil
	}
	b, err := geo.ParseBBox(bb)
	if err != nil {
		return nil, err
	}
	return geo.Within(ms, b), nil
}

func handleMapMarkers(l *slog.Logger, c *app.Controller, gr geo.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ms, err := markersInView(c, gr, r)
		if err != nil {
			writeBadRequestError(w, err)
			return
		}
		b, err := json.Marshal(geo.MarkersGeoJSON(ms))
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		w.Write(b)
	}
}

func handleMapClusters(l *slog.Logger, c *app.Controller, gr geo.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		zoom, err := intParam(r.URL.Query(), "zoom", defaultZoom)
		if err != nil {
			writeBadRequestError(w, err)
			return
		}
		ms, err := markersInView(c, gr, r)
		if err != nil {
			writeBadRequestError(w, err)
			return
		}
		b, err := json.Marshal(geo.ClustersGeoJSON(geo.ClusterMarkers(ms, zoom)))
		if err != nil {
			writeInternalError(l, w, err)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		w.Write(b)
	}
}
