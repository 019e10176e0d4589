package render

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/brojonat/annonces/listing"
)

type cardData struct {
	ID       string
	Image    template.URL
	Title    string
	Location string
	Surface  string
	Bedrooms string
	Price    string
	Tags     []string
}

// Card renders the grid tile of a listing.
func Card(l listing.Listing) template.HTML {
	tags := l.Tags
	if len(tags) > CardTagLimit {
		tags = tags[:CardTagLimit]
	}
	return execute("card", cardData{
		ID:       l.ID,
		Image:    imageURL(MainImage(l)),
		Title:    Truncate(orDefault(l.Title, "Untitled"), TitleLimit),
		Location: locationText(l),
		Surface:  surfaceText(l),
		Bedrooms: bedroomsText(l),
		Price:    orDefault(l.Price, "Price not specified"),
		Tags:     tags,
	})
}

func surfaceText(l listing.Listing) string {
	if l.Surface != "" {
		return l.Surface
	}
	if l.SurfaceValue > 0 {
		return strconv.FormatFloat(l.SurfaceValue, 'f', -1, 64) + " m²"
	}
	return "Surface not specified"
}

func bedroomsText(l listing.Listing) string {
	switch {
	case l.Bedrooms == 1:
		return "1 bedroom"
	case l.Bedrooms > 1:
		return fmt.Sprintf("%d bedrooms", l.Bedrooms)
	default:
		return "Not specified"
	}
}
