package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixtures() []Listing {
	return []Listing{
		{ID: "A", Title: "T3 Part-Dieu", City: "Lyon", District: "Part-Dieu", PostalCode: "69003",
			Price: "250 000 €", PriceValue: 250000, SurfaceValue: 62, Rooms: 3, Bedrooms: 2,
			Description: "Proche métro"},
		{ID: "B", Title: "T2 Gratte-Ciel", City: "Villeurbanne", PostalCode: "69100",
			Price: "180 000 €", PriceValue: 180000, SurfaceValue: 45, Rooms: 2, Bedrooms: 1},
		{ID: "C", Title: "Maison avec jardin", City: " lyon ", Location: "Vaise à Lyon (69009)",
			Price: "480 000 €", PriceValue: 480000, SurfaceValue: 120, Rooms: 5, Bedrooms: 3},
		{ID: "D", Title: "Parking", Price: "Prix sur demande"},
	}
}

func ids(ls []Listing) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"zero criteria", Criteria{}, []string{"A", "B", "C", "D"}},
		{"text in title", Criteria{Query: "gratte"}, []string{"B"}},
		{"text in location", Criteria{Query: "VAISE"}, []string{"C"}},
		{"text in postal code", Criteria{Query: "69003"}, []string{"A"}},
		{"text in price", Criteria{Query: "180 000"}, []string{"B"}},
		{"text in description", Criteria{Query: "métro"}, []string{"A"}},
		{"blank text", Criteria{Query: "   "}, []string{"A", "B", "C", "D"}},
		{"price min", Criteria{PriceMin: 200000}, []string{"A", "C"}},
		{"price range", Criteria{PriceMin: 100000, PriceMax: 300000}, []string{"A", "B"}},
		{"price max only", Criteria{PriceMax: 200000}, []string{"B", "D"}},
		{"surface range", Criteria{SurfaceMin: 50, SurfaceMax: 100}, []string{"A"}},
		{"min bedrooms", Criteria{MinBedrooms: 2}, []string{"A", "C"}},
		{"min rooms", Criteria{MinRooms: 5}, []string{"C"}},
		{"city exact", Criteria{City: "Lyon"}, []string{"A", "C"}},
		{"city no substring", Criteria{City: "Ly"}, []string{}},
		{"conjunction", Criteria{City: "lyon", PriceMax: 300000}, []string{"A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(fixtures(), tt.c)))
		})
	}
}

func TestFilterCityScenario(t *testing.T) {
	ls := []Listing{
		{ID: "A", City: "Lyon", PriceValue: 250000},
		{ID: "B", City: "Villeurbanne", PriceValue: 180000},
	}
	assert.Equal(t, []string{"A"}, ids(Filter(ls, Criteria{City: "Lyon"})))
}

func TestFilterIsIdempotent(t *testing.T) {
	criteria := []Criteria{
		{},
		{Query: "t"},
		{PriceMin: 150000, SurfaceMax: 100},
		{City: "Lyon", MinBedrooms: 2},
	}
	for _, c := range criteria {
		once := Filter(fixtures(), c)
		assert.Equal(t, once, Filter(once, c))
	}
}

func TestFilterRangeProperty(t *testing.T) {
	ls := fixtures()
	bounds := []float64{0, 1, 45, 62, 100, 180000, 250000, 500000}
	for _, min := range bounds {
		for _, max := range bounds {
			for _, l := range Filter(ls, Criteria{PriceMin: min, PriceMax: max}) {
				assert.GreaterOrEqual(t, l.PriceValue, min)
				if max > 0 {
					assert.LessOrEqual(t, l.PriceValue, max)
				}
			}
			for _, l := range Filter(ls, Criteria{SurfaceMin: min, SurfaceMax: max}) {
				assert.GreaterOrEqual(t, l.SurfaceValue, min)
				if max > 0 {
					assert.LessOrEqual(t, l.SurfaceValue, max)
				}
			}
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	ls := fixtures()
	before := ids(ls)
	_ = Filter(ls, Criteria{City: "Villeurbanne"})
	assert.Equal(t, before, ids(ls))
}

func TestCriteriaIsZero(t *testing.T) {
	assert.True(t, Criteria{}.IsZero())
	assert.False(t, Criteria{MinRooms: 1}.IsZero())
}
