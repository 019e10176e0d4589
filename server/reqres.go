package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/golang/gddo/httputil/header"

	"github.com/brojonat/annonces/app"
	"github.com/brojonat/annonces/listing"
)

type DefaultJSONResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type PingResponse struct {
	Message string     `json:"message"`
	Status  app.Status `json:"status"`
	Total   int        `json:"total"`
	Visible int        `json:"visible"`
}

// PostCriteriaBody is a filter input event. Input is one of text, range or
// select and decides whether the criteria wait for the debounce window.
type PostCriteriaBody struct {
	Input    string           `json:"input"`
	Criteria listing.Criteria `json:"criteria"`
}

type StateResponse struct {
	*app.State
	Total   int `json:"total"`
	Visible int `json:"visible"`
}

func newStateResponse(s *app.State) StateResponse {
	total, visible := s.Counts()
	return StateResponse{State: s, Total: total, Visible: visible}
}

type HistogramBin struct {
	Min   float64 `json:"min"`
	Count int     `json:"count"`
}

type MalformedRequest struct {
	status int
	msg    string
}

func (mr *MalformedRequest) Error() string {
	return mr.msg
}

// decodeJSONBody decodes a single JSON object from the request body into
// dst, rejecting unknown fields and trailing data.
func decodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Header.Get("Content-Type") != "" {
		value, _ := header.ParseValueAndParams(r.Header, "Content-Type")
		if value != "application/json" {
			return &MalformedRequest{status: http.StatusUnsupportedMediaType, msg: "Content-Type header is not application/json"}
		}
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(&dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			msg := fmt.Sprintf("request body contains badly-formed JSON (at position %d)", syntaxError.Offset)
			return &MalformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.Is(err, io.ErrUnexpectedEOF):
			return &MalformedRequest{status: http.StatusBadRequest, msg: "request body contains badly-formed JSON"}

		case errors.As(err, &unmarshalTypeError):
			msg := fmt.Sprintf("request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)
			return &MalformedRequest{status: http.StatusBadRequest, msg: msg}

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			msg := fmt.Sprintf("request body contains unknown field %s", fieldName)
			return &MalformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.Is(err, io.EOF):
			return &MalformedRequest{status: http.StatusBadRequest, msg: "request body must not be empty"}

		case errors.As(err, &maxBytesError):
			msg := fmt.Sprintf("request body must not be larger than %d bytes", maxBytesError.Limit)
			return &MalformedRequest{status: http.StatusRequestEntityTooLarge, msg: msg}

		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return &MalformedRequest{status: http.StatusBadRequest, msg: "request body must only contain a single JSON object"}
	}
	return nil
}

// criteriaParams are the query parameters parseCriteria reads.
var criteriaParams = []string{
	"q", "price_min", "price_max", "surface_min", "surface_max",
	"min_bedrooms", "min_rooms", "city", "sort",
}

func hasCriteriaParams(q url.Values) bool {
	for _, p := range criteriaParams {
		if q.Has(p) {
			return true
		}
	}
	return false
}

// parseCriteria reads filter criteria and the sort key from query
// parameters. Empty values are ignored.
func parseCriteria(q url.Values) (listing.Criteria, listing.SortKey, error) {
	var c listing.Criteria
	c.Query = strings.TrimSpace(q.Get("q"))
	c.City = strings.TrimSpace(q.Get("city"))

	floats := []struct {
		name string
		dst  *float64
	}{
		{"price_min", &c.PriceMin},
		{"price_max", &c.PriceMax},
		{"surface_min", &c.SurfaceMin},
		{"surface_max", &c.SurfaceMax},
	}
	for _, f := range floats {
		v := strings.TrimSpace(q.Get(f.name))
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n < 0 {
			return listing.Criteria{}, listing.SortNone, fmt.Errorf("bad value for %s", f.name)
		}
		*f.dst = n
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"min_bedrooms", &c.MinBedrooms},
		{"min_rooms", &c.MinRooms},
	}
	for _, i := range ints {
		v := strings.TrimSpace(q.Get(i.name))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return listing.Criteria{}, listing.SortNone, fmt.Errorf("bad value for %s", i.name)
		}
		*i.dst = n
	}

	key, err := parseSortParam(q.Get("sort"))
	if err != nil {
		return listing.Criteria{}, listing.SortNone, err
	}
	return c, key, nil
}

// parseSortParam rejects keys that are neither empty nor supported.
func parseSortParam(s string) (listing.SortKey, error) {
	key := listing.ParseSortKey(s)
	if key == listing.SortNone && strings.TrimSpace(s) != "" {
		return listing.SortNone, fmt.Errorf("unsupported sort key: %s", s)
	}
	return key, nil
}

// intParam reads a positive integer parameter, falling back to def when the
// parameter is absent.
func intParam(q url.Values, name string, def int) (int, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("bad value for %s", name)
	}
	return n, nil
}
