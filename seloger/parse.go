package seloger

import (
	"bytes"
	"encoding/json"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Card is one search result, written in the flat listing schema.
type Card struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Location string `json:"location"`
}

const (
	cardSelector     = `div[data-test="sl.card-container"]`
	linkSelector     = `div[class*="Card__ContentZone"] a[name*="classified-link"]`
	priceSelector    = `div[data-test="sl.price-label"]`
	titleSelector    = `div[data-test="sl.title"]`
	locationSelector = `div[data-test="sl.localisation"]`
)

// ParseListings extracts the result cards of a search page in page order.
func ParseListings(r io.Reader) ([]Card, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	cards := []Card{}
	doc.Find(cardSelector).Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Find(linkSelector).First().Attr("href")
		u := absoluteURL(strings.TrimSpace(href))
		cards = append(cards, Card{
			ID:       cardID(u, i+1),
			URL:      u,
			Title:    text(sel.Find(titleSelector)),
			Price:    text(sel.Find(priceSelector)),
			Location: text(sel.Find(locationSelector)),
		})
	})
	return cards, nil
}

func text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.First().Text()), " ")
}

func absoluteURL(href string) string {
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	default:
		return BaseURL + "/" + strings.TrimPrefix(href, "/")
	}
}

// cardID is the classified number at the end of the listing URL so ids stay
// stable across scrapes; cards without one fall back to their position.
func cardID(u string, pos int) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	base := strings.TrimSuffix(path.Base(u), path.Ext(u))
	if _, err := strconv.ParseUint(base, 10, 64); err == nil {
		return base
	}
	return strconv.Itoa(pos)
}

// WriteJSON writes cards as an indented JSON array.
func WriteJSON(w io.Writer, cards []Card) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if cards == nil {
		cards = []Card{}
	}
	if err := enc.Encode(cards); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
