package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/brojonat/annonces/app"
	"github.com/brojonat/annonces/listing"
)

// applyQuery applies criteria and sort from the query string when any are
// present, so a shared link reproduces the view it was taken from. The
// returned state is the one the request produced; answer from it.
func applyQuery(c *app.Controller, r *http.Request) (*app.State, error) {
	q := r.URL.Query()
	if q.Has("reset") {
		return c.Reset(), nil
	}
	if !hasCriteriaParams(q) {
		return c.Snapshot(), nil
	}
	crit, key, err := parseCriteria(q)
	if err != nil {
		return nil, err
	}
	return c.Apply(crit, key), nil
}

func handleListings(c *app.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := applyQuery(c, r)
		if err != nil {
			writeBadRequestError(w, err)
			return
		}
		json.NewEncoder(w).Encode(s.View)
	}
}

func handleListingGet(c *app.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, ok := listing.Find(c.Snapshot().All, mux.Vars(r)["id"])
		if !ok {
			writeEmptyResultError(w)
			return
		}
		json.NewEncoder(w).Encode(l)
	}
}

func handleState(c *app.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(newStateResponse(c.Snapshot()))
	}
}

// handleCriteriaPost accepts a filter input event. Text and range inputs are
// applied once the debounce window passes, so the response only acknowledges
// receipt.
func handleCriteriaPost(l *slog.Logger, c *app.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body PostCriteriaBody
		if err := decodeJSONBody(r, &body); err != nil {
			writeDecodeError(l, w, err)
			return
		}
		kind, err := app.ParseInputKind(body.Input)
		if err != nil {
			writeBadRequestError(w, err)
			return
		}
		c.Input(kind, body.Criteria)
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(DefaultJSONResponse{Message: "accepted"})
	}
}

func handleSortPost(c *app.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := parseSortParam(r.URL.Query().Get("key"))
		if err != nil {
			writeBadRequestError(w, err)
			return
		}
		json.NewEncoder(w).Encode(newStateResponse(c.SetSort(key)))
	}
}

func handleReset(c *app.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(newStateResponse(c.Reset()))
	}
}

func handleCities(c *app.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(c.Snapshot().Cities)
	}
}
