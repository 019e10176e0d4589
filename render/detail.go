package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/brojonat/annonces/listing"
)

type factLine struct {
	Icon  string
	Label string
	Value string
}

type detailData struct {
	ID          string
	Images      []template.URL
	Title       string
	Location    string
	Facts       []factLine
	GPS         string
	DPE         string
	GES         string
	Price       string
	Tags        []string
	Description template.HTML
	URL         string
}

// Detail renders the extended view of a listing.
func Detail(l listing.Listing) template.HTML {
	images := []template.URL{}
	for _, img := range ValidImages(l.Images) {
		if len(images) == DetailImageCap {
			break
		}
		images = append(images, imageURL(img))
	}

	facts := make([]factLine, 0, len(l.Facts))
	for _, f := range l.Facts {
		if f.Value == "" {
			continue
		}
		facts = append(facts, factLine{Icon: FactIcon(f.Type), Label: f.Label, Value: f.Value})
	}

	gps := ""
	if l.HasCoordinates() {
		gps = fmt.Sprintf("%.5f, %.5f", *l.Latitude, *l.Longitude)
	}

	return execute("detail", detailData{
		ID:          l.ID,
		Images:      images,
		Title:       orDefault(l.Title, "Untitled"),
		Location:    locationText(l),
		Facts:       facts,
		GPS:         gps,
		DPE:         l.DPE,
		GES:         l.GES,
		Price:       orDefault(l.Price, "Price not specified"),
		Tags:        l.Tags,
		Description: description(l),
		URL:         externalURL(l.URL),
	})
}

// description sanitizes the listing's HTML description, falling back to the
// escaped title.
func description(l listing.Listing) template.HTML {
	if s := strings.TrimSpace(descriptionPolicy.Sanitize(l.Description)); s != "" {
		return template.HTML(s)
	}
	return template.HTML(template.HTMLEscapeString(orDefault(l.Title, "No description available")))
}

func externalURL(u string) string {
	if strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "http://") {
		return u
	}
	return ""
}
