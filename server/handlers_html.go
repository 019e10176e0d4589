package server

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/brojonat/annonces/app"
	"github.com/brojonat/annonces/listing"
	"github.com/brojonat/annonces/render"
)

// handlePage renders the listings page. Query parameters from the filter
// form are applied before rendering.
func handlePage(l *slog.Logger, c *app.Controller, tileURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := applyQuery(c, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		total, _ := s.Counts()
		page := render.Page(render.PageView{
			Listings:     s.View,
			Total:        total,
			Cities:       s.Cities,
			Criteria:     s.Criteria,
			Sort:         s.Sort,
			Status:       string(s.Status),
			Err:          s.Err,
			Source:       s.Source,
			UsedFallback: s.UsedFallback,
			TileURL:      tileURL,
		})
		if _, err := io.WriteString(w, string(page)); err != nil {
			l.Error("error writing page", "error", err.Error())
		}
	}
}

func handleView(l *slog.Logger, c *app.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ls, ok := listing.Find(c.Snapshot().All, mux.Vars(r)["id"])
		if !ok {
			http.Error(w, "listing not found", http.StatusNotFound)
			return
		}
		if _, err := io.WriteString(w, string(render.Detail(ls))); err != nil {
			l.Error("error writing detail", "error", err.Error())
		}
	}
}
