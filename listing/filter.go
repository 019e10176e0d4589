package listing

import "strings"

// Criteria is a conjunction of optional predicates. A zero field is a no-op;
// a max of zero (or less) means the range is unbounded above.
type Criteria struct {
	Query       string  `json:"query,omitempty"`
	PriceMin    float64 `json:"price_min,omitempty"`
	PriceMax    float64 `json:"price_max,omitempty"`
	SurfaceMin  float64 `json:"surface_min,omitempty"`
	SurfaceMax  float64 `json:"surface_max,omitempty"`
	MinBedrooms int     `json:"min_bedrooms,omitempty"`
	MinRooms    int     `json:"min_rooms,omitempty"`
	City        string  `json:"city,omitempty"`
}

func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Filter returns the listings of ls matching every criterion, in input order.
// The result is always a new slice.
func Filter(ls []Listing, c Criteria) []Listing {
	q := strings.ToLower(strings.TrimSpace(c.Query))
	city := strings.TrimSpace(c.City)
	out := make([]Listing, 0, len(ls))
	for _, l := range ls {
		if q != "" && !matchesText(l, q) {
			continue
		}
		if !inRange(l.PriceValue, c.PriceMin, c.PriceMax) {
			continue
		}
		if !inRange(l.SurfaceValue, c.SurfaceMin, c.SurfaceMax) {
			continue
		}
		if c.MinBedrooms > 0 && l.Bedrooms < c.MinBedrooms {
			continue
		}
		if c.MinRooms > 0 && l.Rooms < c.MinRooms {
			continue
		}
		if city != "" && !strings.EqualFold(strings.TrimSpace(l.City), city) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func inRange(v, min, max float64) bool {
	if v < min {
		return false
	}
	if max > 0 && v > max {
		return false
	}
	return true
}

func matchesText(l Listing, q string) bool {
	for _, field := range []string{l.Title, l.Location, l.City, l.District, l.PostalCode, l.Price, l.Description} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
