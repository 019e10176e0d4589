// Package render projects listings into HTML fragments and pages.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/brojonat/annonces/listing"
)

const (
	TitleLimit     = 100
	CardTagLimit   = 3
	DetailImageCap = 6
)

// PlaceholderImage is shown when a listing has no usable image.
const PlaceholderImage = "data:image/svg+xml,%3Csvg%20xmlns=%22http://www.w3.org/2000/svg%22%20width=%22400%22%20height=%22240%22%3E%3Crect%20fill=%22%23e2e8f0%22%20width=%22400%22%20height=%22240%22/%3E%3Ctext%20x=%2250%25%22%20y=%2250%25%22%20dominant-baseline=%22middle%22%20text-anchor=%22middle%22%20font-family=%22sans-serif%22%20font-size=%2220%22%20fill=%22%2364748b%22%3EImage%20not%20available%3C/text%3E%3C/svg%3E"

// substrings identifying map tiles, travel time widgets and CDN thumbnails
var skippedImageMarkers = []string{"map", "travel-time", "cloudimg.io"}

var factIcons = map[string]string{
	listing.FactLivingSpace:      "📐",
	listing.FactNumberOfRooms:    "🚪",
	listing.FactNumberOfBedrooms: "🛏️",
	listing.FactNumberOfFloors:   "🏢",
}

var descriptionPolicy = bluemonday.UGCPolicy()

// FactIcon returns the display icon of a fact type tag.
func FactIcon(t string) string {
	if icon, ok := factIcons[t]; ok {
		return icon
	}
	return "•"
}

// Truncate shortens s to n characters, marking the cut with "...".
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// CountLabel is the human readable size of a result set.
func CountLabel(n int) string {
	if n == 1 {
		return "1 listing"
	}
	return fmt.Sprintf("%d listings", n)
}

// ValidImages drops map, travel time and thumbnail images.
func ValidImages(images []string) []string {
	out := []string{}
outer:
	for _, img := range images {
		for _, m := range skippedImageMarkers {
			if strings.Contains(img, m) {
				continue outer
			}
		}
		out = append(out, img)
	}
	return out
}

// MainImage is the first valid image, else the first image, else the
// placeholder.
func MainImage(l listing.Listing) string {
	if valid := ValidImages(l.Images); len(valid) > 0 {
		return valid[0]
	}
	if len(l.Images) > 0 {
		return l.Images[0]
	}
	return PlaceholderImage
}

// imageURL only lets web URLs through to src attributes.
func imageURL(u string) template.URL {
	switch {
	case u == PlaceholderImage:
		return template.URL(u)
	case strings.HasPrefix(u, "https://"), strings.HasPrefix(u, "http://"), strings.HasPrefix(u, "//"), strings.HasPrefix(u, "/"):
		return template.URL(u)
	default:
		return template.URL(PlaceholderImage)
	}
}

func locationText(l listing.Listing) string {
	switch {
	case l.Location != "":
		return l.Location
	case l.City != "":
		return l.City
	default:
		return "Not specified"
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func execute(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return template.HTML("<!-- render error: " + template.HTMLEscapeString(err.Error()) + " -->")
	}
	return template.HTML(buf.String())
}
