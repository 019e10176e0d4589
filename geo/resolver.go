// Package geo places listings on a map: it resolves display coordinates,
// groups nearby markers into clusters and encodes both as GeoJSON.
package geo

import (
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/brojonat/annonces/listing"
)

// DefaultJitter is the maximum offset, in degrees, applied to centroid
// positions so listings resolved to the same centroid do not overlap.
const DefaultJitter = 0.004

// Precision records how a position was obtained.
type Precision string

const (
	PrecisionDirect   Precision = "direct"
	PrecisionDistrict Precision = "district"
	PrecisionCity     Precision = "city"
)

type Point struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Precision Precision `json:"precision"`
}

// Resolver finds the display position of a listing.
type Resolver interface {
	Resolve(l listing.Listing) (Point, bool)
}

// TableResolver resolves listings against a static centroid table.
type TableResolver struct {
	districts         []centroidKey
	cities            []centroidKey
	allowCityFallback bool
	jitter            float64
}

type centroidKey struct {
	key string
	c   Centroid
}

func NewTableResolver(t Table, allowCityFallback bool) *TableResolver {
	return &TableResolver{
		districts:         indexCentroids(t.Districts),
		cities:            indexCentroids(t.Cities),
		allowCityFallback: allowCityFallback,
		jitter:            DefaultJitter,
	}
}

func indexCentroids(cs []Centroid) []centroidKey {
	out := []centroidKey{}
	for _, c := range cs {
		for _, k := range c.keys() {
			out = append(out, centroidKey{key: k, c: c})
		}
	}
	return out
}

// Resolve prefers the listing's own coordinates, then the most specific
// (longest) district centroid found in its district, location and postal
// code, then, when enabled, its city centroid. Centroid positions are
// jittered deterministically from the listing ID.
func (r *TableResolver) Resolve(l listing.Listing) (Point, bool) {
	if l.HasCoordinates() {
		return Point{Lat: *l.Latitude, Lng: *l.Longitude, Precision: PrecisionDirect}, true
	}

	text := foldText(strings.Join([]string{l.City, l.District, l.Location, l.PostalCode}, " "))
	if c, ok := longestMatch(r.districts, text); ok {
		return r.jittered(l.ID, c, PrecisionDistrict), true
	}
	if !r.allowCityFallback {
		return Point{}, false
	}

	city := foldText(l.City)
	for _, ck := range r.cities {
		if city != "" && ck.key == city {
			return r.jittered(l.ID, ck.c, PrecisionCity), true
		}
	}
	if c, ok := longestMatch(r.cities, text); ok {
		return r.jittered(l.ID, c, PrecisionCity), true
	}
	return Point{}, false
}

func (r *TableResolver) jittered(id string, c Centroid, p Precision) Point {
	dLat, dLng := jitter(id, r.jitter)
	return Point{Lat: c.Lat + dLat, Lng: c.Lng + dLng, Precision: p}
}

// longestMatch returns the centroid whose key is the longest whole-word
// substring of text.
func longestMatch(keys []centroidKey, text string) (Centroid, bool) {
	best := -1
	for i, ck := range keys {
		if !containsWord(text, ck.key) {
			continue
		}
		if best < 0 || len(ck.key) > len(keys[best].key) {
			best = i
		}
	}
	if best < 0 {
		return Centroid{}, false
	}
	return keys[best].c, true
}

func containsWord(text, word string) bool {
	for i := 0; ; {
		j := strings.Index(text[i:], word)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(word)
		if (start == 0 || text[start-1] == ' ') && (end == len(text) || text[end] == ' ') {
			return true
		}
		i = start + 1
	}
}

// jitter maps id onto a stable offset in [-max, max] for each axis.
func jitter(id string, max float64) (float64, float64) {
	h := fnv.New64a()
	h.Write([]byte(id))
	sum := h.Sum64()
	a := float64(sum&0xffff) / 0xffff
	b := float64((sum>>16)&0xffff) / 0xffff
	return (a*2 - 1) * max, (b*2 - 1) * max
}

// foldText lowercases s and turns punctuation other than apostrophes and
// hyphens into single spaces.
func foldText(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-' {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
