package listing

import (
	"cmp"
	"slices"
	"strings"
)

type SortKey string

const (
	SortNone        SortKey = ""
	SortPriceAsc    SortKey = "price-asc"
	SortPriceDesc   SortKey = "price-desc"
	SortSurfaceAsc  SortKey = "surface-asc"
	SortSurfaceDesc SortKey = "surface-desc"
)

// SortKeys lists the supported keys in display order.
func SortKeys() []SortKey {
	return []SortKey{SortNone, SortPriceAsc, SortPriceDesc, SortSurfaceAsc, SortSurfaceDesc}
}

// ParseSortKey maps user input onto a key; unknown input is SortNone.
func ParseSortKey(s string) SortKey {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range SortKeys() {
		if k == v {
			return k
		}
	}
	return SortNone
}

// Value returns the numeric field k orders by; absent values count as 0.
func (l Listing) Value(k SortKey) float64 {
	switch k {
	case SortPriceAsc, SortPriceDesc:
		return l.PriceValue
	case SortSurfaceAsc, SortSurfaceDesc:
		return l.SurfaceValue
	default:
		return 0
	}
}

func (k SortKey) descending() bool {
	return k == SortPriceDesc || k == SortSurfaceDesc
}

// Sort returns a copy of ls ordered by key. Equal values keep their input
// order; SortNone returns the copy unchanged.
func Sort(ls []Listing, key SortKey) []Listing {
	out := slices.Clone(ls)
	if out == nil {
		out = []Listing{}
	}
	key = ParseSortKey(string(key))
	if key == SortNone {
		return out
	}
	slices.SortStableFunc(out, func(a, b Listing) int {
		c := cmp.Compare(a.Value(key), b.Value(key))
		if key.descending() {
			return -c
		}
		return c
	})
	return out
}
