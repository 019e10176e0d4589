package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"

	"github.com/brojonat/annonces/app"
	"github.com/brojonat/annonces/geo"
	"github.com/brojonat/annonces/listing"
)

const (
	maxBytes          = int64(1048576)
	requestsPerMinute = 300
)

// getRootHandler wires every route. tileURL is the map tile template handed
// to the page; empty means the default provider.
func getRootHandler(l *slog.Logger, c *app.Controller, gr geo.Resolver, allowedOrigins []string, tileURL string) http.Handler {
	r := mux.NewRouter()
	r.Use(httprate.LimitByIP(requestsPerMinute, 1*time.Minute))

	allowedHeaders := []string{"Authorization", "Content-Type"}
	allowedMethods := []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	api := apiMode(l, maxBytes, allowedHeaders, allowedMethods, allowedOrigins)

	// helper routes
	r.Handle("/ping", adaptHandler(
		handlePing(c),
		api,
	)).Methods(http.MethodGet)
	r.Handle("/token", adaptHandler(
		handleIssueToken(l),
		api,
		// no token required here
	)).Methods(http.MethodPost)
	r.Handle("/reload", adaptHandler(
		handleReload(l, c),
		api,
		mustAuth(),
	)).Methods(http.MethodPost)

	// listing routes
	r.Handle("/listings", adaptHandler(
		handleListings(c),
		api,
	)).Methods(http.MethodGet)
	r.Handle("/listings/{id}", adaptHandler(
		handleListingGet(c),
		api,
	)).Methods(http.MethodGet)
	r.Handle("/options/cities", adaptHandler(
		handleCities(c),
		api,
	)).Methods(http.MethodGet)

	// view state routes
	r.Handle("/state", adaptHandler(
		handleState(c),
		api,
	)).Methods(http.MethodGet)
	r.Handle("/criteria", adaptHandler(
		handleCriteriaPost(l, c),
		api,
	)).Methods(http.MethodPost)
	r.Handle("/sort", adaptHandler(
		handleSortPost(c),
		api,
	)).Methods(http.MethodPost)
	r.Handle("/reset", adaptHandler(
		handleReset(c),
		api,
	)).Methods(http.MethodPost)

	// map routes
	r.Handle("/map/markers", adaptHandler(
		handleMapMarkers(l, c, gr),
		api,
	)).Methods(http.MethodGet)
	r.Handle("/map/clusters", adaptHandler(
		handleMapClusters(l, c, gr),
		api,
	)).Methods(http.MethodGet)

	// plot data routes
	r.Handle("/plot-data/prices", adaptHandler(
		handlePlotData(l, c, listing.SortPriceAsc),
		api,
	)).Methods(http.MethodGet)
	r.Handle("/plot-data/surfaces", adaptHandler(
		handlePlotData(l, c, listing.SortSurfaceAsc),
		api,
	)).Methods(http.MethodGet)

	// pages
	r.Handle("/", adaptHandler(
		handlePage(l, c, tileURL),
		htmlMode(l),
	)).Methods(http.MethodGet)
	r.Handle("/view/{id}", adaptHandler(
		handleView(l, c),
		htmlMode(l),
	)).Methods(http.MethodGet)
	return r
}
