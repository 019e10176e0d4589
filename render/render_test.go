package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brojonat/annonces/listing"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 100))
	long := strings.Repeat("é", 120)
	got := Truncate(long, 100)
	assert.Equal(t, strings.Repeat("é", 100)+"...", got)
	assert.Equal(t, strings.Repeat("a", 100), Truncate(strings.Repeat("a", 100), 100))
}

func TestCountLabel(t *testing.T) {
	assert.Equal(t, "0 listings", CountLabel(0))
	assert.Equal(t, "1 listing", CountLabel(1))
	assert.Equal(t, "42 listings", CountLabel(42))
}

func TestFactIcon(t *testing.T) {
	assert.Equal(t, "📐", FactIcon(listing.FactLivingSpace))
	assert.Equal(t, "🚪", FactIcon(listing.FactNumberOfRooms))
	assert.Equal(t, "🛏️", FactIcon(listing.FactNumberOfBedrooms))
	assert.Equal(t, "🏢", FactIcon(listing.FactNumberOfFloors))
	assert.Equal(t, "•", FactIcon("hasGarden"))
}

func TestMainImage(t *testing.T) {
	tests := []struct {
		name   string
		images []string
		want   string
	}{
		{"first valid", []string{"https://cdn/map-tile.png", "https://cdn/a.jpg", "https://cdn/b.jpg"}, "https://cdn/a.jpg"},
		{"skips travel time and thumbnails", []string{"https://x/travel-time.png", "https://abc.cloudimg.io/v7/x.jpg", "https://cdn/c.jpg"}, "https://cdn/c.jpg"},
		{"falls back to first", []string{"https://cdn/map.png"}, "https://cdn/map.png"},
		{"placeholder", nil, PlaceholderImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MainImage(listing.Listing{Images: tt.images}))
		})
	}
}

func TestCardWithoutImagesUsesPlaceholder(t *testing.T) {
	var html string
	assert.NotPanics(t, func() { html = string(Card(listing.Listing{})) })
	assert.Contains(t, html, `src="data:image/svg+xml,`)
	assert.Contains(t, html, "Untitled")
	assert.Contains(t, html, "Not specified")
	assert.Contains(t, html, "Price not specified")
	assert.NotContains(t, html, "ZgotmplZ")
}

func TestCard(t *testing.T) {
	l := listing.Listing{
		ID:       "42",
		Title:    strings.Repeat("Appartement lumineux ", 10),
		City:     "Lyon",
		Price:    "250 000 €",
		Surface:  "62 m²",
		Bedrooms: 2,
		Images:   []string{"https://cdn/a.jpg"},
		Tags:     []string{"Balcon", "Parking", "Cave", "Ascenseur"},
	}
	html := string(Card(l))
	assert.Contains(t, html, `href="/view/42"`)
	assert.Contains(t, html, `src="https://cdn/a.jpg"`)
	assert.Contains(t, html, "...")
	assert.Contains(t, html, "📍 Lyon")
	assert.Contains(t, html, "2 bedrooms")
	assert.Contains(t, html, "250 000 €")
	assert.Contains(t, html, "Cave")
	assert.NotContains(t, html, "Ascenseur")
}

func TestCardEscapesContent(t *testing.T) {
	html := string(Card(listing.Listing{
		Title:  `<script>alert(1)</script>`,
		Images: []string{"javascript:alert(1)"},
	}))
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "javascript:")
	assert.Contains(t, html, "data:image/svg+xml,")
}

func TestDetail(t *testing.T) {
	lat, lng := 45.76, 4.85
	images := []string{"https://cdn/map.png"}
	for i := 0; i < 8; i++ {
		images = append(images, "https://cdn/photo.jpg")
	}
	l := listing.Listing{
		ID:          "7",
		Title:       "Maison",
		Location:    "Vaise à Lyon (69009)",
		Price:       "480 000 €",
		Description: `<p>Belle <b>maison</b></p><script>alert(1)</script>`,
		Latitude:    &lat,
		Longitude:   &lng,
		DPE:         "C",
		GES:         "D",
		URL:         "https://www.seloger.com/annonces/7.htm",
		Images:      images,
		Tags:        []string{"New", "Exclusive", "3D visit", "No brokerage fee"},
		Facts: []listing.Fact{
			{Type: listing.FactLivingSpace, Label: "Surface", Value: "120 m²"},
			{Type: listing.FactNumberOfRooms, Label: "Rooms", Value: "5"},
			{Type: "hasGarden", Label: "Garden", Value: "yes"},
		},
	}
	html := string(Detail(l))
	assert.Equal(t, 6, strings.Count(html, `class="detail-image"`))
	assert.NotContains(t, html, "cdn/map.png")
	assert.Contains(t, html, "📐 120 m²")
	assert.Contains(t, html, "🚪 5")
	assert.Contains(t, html, "• yes")
	assert.Contains(t, html, "GPS: 45.76000, 4.85000")
	assert.Contains(t, html, "DPE: C")
	assert.Contains(t, html, "GES: D")
	assert.Contains(t, html, "No brokerage fee")
	assert.Contains(t, html, "<b>maison</b>")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, `href="https://www.seloger.com/annonces/7.htm" target="_blank" rel="noopener noreferrer"`)
}

func TestDetailFallbacks(t *testing.T) {
	html := string(Detail(listing.Listing{Title: "Studio <neuf>"}))
	assert.Contains(t, html, "Studio &lt;neuf&gt;")
	assert.NotContains(t, html, "GPS")
	assert.NotContains(t, html, "DPE")
	assert.NotContains(t, html, "detail-link")
	assert.NotContains(t, html, "detail-images")

	html = string(Detail(listing.Listing{}))
	assert.Contains(t, html, "No description available")
}

func TestPage(t *testing.T) {
	ls := []listing.Listing{
		{ID: "A", Title: "T3", City: "Lyon", Price: "250 000 €"},
		{ID: "B", Title: "T2", City: "Villeurbanne", Price: "180 000 €"},
	}
	html := string(Page(PageView{
		Listings: ls,
		Total:    2,
		Cities:   []string{"Lyon", "Villeurbanne"},
		Criteria: listing.Criteria{City: "Lyon", PriceMax: 300000},
		Sort:     listing.SortPriceAsc,
		Status:   "ready",
	}))
	assert.Contains(t, html, "2 listings")
	assert.Equal(t, 2, strings.Count(html, `class="listing-card"`))
	assert.Contains(t, html, `<option value="Lyon" selected>Lyon</option>`)
	assert.Contains(t, html, `<option value="price-asc" selected>Price ascending</option>`)
	assert.Contains(t, html, `value="300000"`)
	assert.NotContains(t, html, "No listings found")

	html = string(Page(PageView{Listings: ls[:1], Status: "ready"}))
	assert.Contains(t, html, "1 listing<")

	html = string(Page(PageView{Status: "ready"}))
	assert.Contains(t, html, "No listings found")
	assert.Contains(t, html, "0 listings")
}

func TestPageMapView(t *testing.T) {
	html := string(Page(PageView{Status: "ready"}))
	assert.Contains(t, html, `data-tab="list"`)
	assert.Contains(t, html, `data-tab="map"`)
	assert.Contains(t, html, `data-panel="map" hidden`)
	assert.Contains(t, html, `data-tiles="https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"`)
	assert.Contains(t, html, `data-clusters="/map/clusters"`)
	assert.Contains(t, html, "leaflet.js")
	for _, size := range []string{"small", "medium", "large"} {
		assert.Contains(t, html, ".marker-cluster-"+size)
	}
	assert.Contains(t, html, "refreshMap()")

	html = string(Page(PageView{Status: "ready", TileURL: "https://tiles.test/{z}/{x}/{y}.png"}))
	assert.Contains(t, html, `data-tiles="https://tiles.test/{z}/{x}/{y}.png"`)
}

func TestPageError(t *testing.T) {
	html := string(Page(PageView{Status: "error", Err: "load https://api/listings: unexpected status 500"}))
	assert.Contains(t, html, `class="error-panel"`)
	assert.Contains(t, html, "unexpected status 500")
	assert.NotContains(t, html, "No listings found")
	assert.NotContains(t, html, `class="listing-card"`)
}
