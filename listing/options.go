package listing

import (
	"slices"
	"strings"
)

// DistinctCities returns the non-empty city values of ls, deduplicated
// case-insensitively (first spelling wins) and sorted alphabetically.
func DistinctCities(ls []Listing) []string {
	seen := map[string]struct{}{}
	cities := []string{}
	for _, l := range ls {
		c := strings.TrimSpace(l.City)
		if c == "" {
			continue
		}
		k := strings.ToLower(c)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		cities = append(cities, c)
	}
	slices.SortFunc(cities, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return cities
}

// Find returns the listing with the given ID.
func Find(ls []Listing, id string) (Listing, bool) {
	for _, l := range ls {
		if l.ID == id {
			return l, true
		}
	}
	return Listing{}, false
}
