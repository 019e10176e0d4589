package seloger

import (
	"maps"
	"net/url"
)

// DefaultFilters searches rentals of houses and apartments of at least 28m²
// in Lyon and Tassin-la-Demi-Lune.
var DefaultFilters = map[string]string{
	"distributionTypes": "Rent",
	"estateTypes":       "House,Apartment",
	"locations":         "FR069123,FR069244",
	"spaceMin":          "28",
}

// BuildSearchURL merges overrides onto DefaultFilters. An empty override
// removes the default.
func BuildSearchURL(overrides map[string]string) string {
	filters := maps.Clone(DefaultFilters)
	for k, v := range overrides {
		if v == "" {
			delete(filters, k)
			continue
		}
		filters[k] = v
	}
	q := url.Values{}
	for k, v := range filters {
		q.Set(k, v)
	}
	q.Set("m", "homepage_relaunch_my_last_search_classified_search_result")
	return BaseURL + "/classified-search?" + q.Encode()
}
