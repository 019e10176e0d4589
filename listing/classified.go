package listing

import (
	"fmt"
	"strconv"

	"github.com/jmespath/go-jmespath"
)

var factLabels = map[string]string{
	FactLivingSpace:      "Surface",
	FactNumberOfRooms:    "Rooms",
	FactNumberOfBedrooms: "Bedrooms",
	FactNumberOfFloors:   "Floors",
}

// jmesParseClassified pulls a single parameter out of a classified payload.
// Missing paths yield a nil result rather than an error.
func jmesParseClassified(p string, data interface{}) (interface{}, error) {
	switch p {
	case "id":
		return jmespath.Search("id || legacyId", data)
	case "url":
		return jmespath.Search("url || links.self", data)
	case "title":
		return jmespath.Search("hardFacts.title || mainDescription.headline || title", data)
	case "description":
		return jmespath.Search("mainDescription.description || description", data)
	case "price":
		return jmespath.Search("hardFacts.price.formatted || hardFacts.price.value || price", data)
	case "price_value":
		return jmespath.Search("hardFacts.price.value || hardFacts.price.formatted || price", data)
	case "city":
		return jmespath.Search("location.address.city || ville || city", data)
	case "district":
		return jmespath.Search("location.address.district || quartier || district", data)
	case "postal_code":
		return jmespath.Search("location.address.zipCode || location.address.postalCode || code_postal", data)
	case "latitude":
		return jmespath.Search("location.coordinates.lat || location.coordinates.latitude", data)
	case "longitude":
		return jmespath.Search("location.coordinates.lng || location.coordinates.lon || location.coordinates.longitude", data)
	case "images":
		return jmespath.Search("gallery.images || images", data)
	case "tags":
		return jmespath.Search("tags", data)
	case "facts":
		return jmespath.Search("hardFacts.facts", data)
	case "dpe":
		return jmespath.Search("energy.dpe || dpe", data)
	case "ges":
		return jmespath.Search("energy.ges || ges", data)
	default:
		return nil, fmt.Errorf("unsupported param: %s", p)
	}
}

// jmesParseFact returns the value of the first fact with the given type tag,
// preferring the split (numeric) value over the display value.
func jmesParseFact(factType string, data interface{}) (display interface{}, split interface{}) {
	path := fmt.Sprintf("hardFacts.facts[?type=='%s'] | [0]", factType)
	res, err := jmespath.Search(path, data)
	if err != nil || res == nil {
		return nil, nil
	}
	f, ok := res.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	split = f["splitValue"]
	if split == nil {
		split = f["value"]
	}
	return f["value"], split
}

func normalizeClassified(raw map[string]any) Listing {
	// ignore errors here; an unresolvable path simply leaves the field empty
	get := func(p string) interface{} {
		v, _ := jmesParseClassified(p, raw)
		return v
	}

	l := Listing{
		Schema:      SchemaClassified,
		ID:          ExtractString(get("id")),
		URL:         ExtractString(get("url")),
		Title:       ExtractString(get("title")),
		Description: ExtractString(get("description")),
		Price:       ExtractString(get("price")),
		PriceValue:  ExtractNumber(get("price_value")),
		City:        ExtractString(get("city")),
		District:    ExtractString(get("district")),
		PostalCode:  ExtractString(get("postal_code")),
		DPE:         ExtractString(get("dpe")),
		GES:         ExtractString(get("ges")),
		Images:      ExtractImages(get("images")),
	}
	if l.Price == "" {
		l.Price = formatPrice(l.PriceValue)
	}
	l.Latitude, l.Longitude = coordinatePair(get("latitude"), get("longitude"))
	l.Location = joinNonEmpty(" ", l.District, l.City, l.PostalCode)

	display, split := jmesParseFact(FactLivingSpace, raw)
	l.Surface = ExtractString(display)
	l.SurfaceValue = ExtractNumber(split)
	if l.SurfaceValue == 0 {
		l.Surface = firstNonEmpty(l.Surface, ExtractString(raw["surface"]))
		l.SurfaceValue = ExtractNumber(raw["surface"])
	}
	_, split = jmesParseFact(FactNumberOfRooms, raw)
	l.Rooms = ExtractInt(split)
	if l.Rooms == 0 {
		l.Rooms = ExtractInt(raw["rooms"])
	}
	_, split = jmesParseFact(FactNumberOfBedrooms, raw)
	l.Bedrooms = ExtractInt(split)
	if l.Bedrooms == 0 {
		l.Bedrooms = ExtractInt(raw["bedrooms"])
	}
	_, split = jmesParseFact(FactNumberOfFloors, raw)
	l.Floors = ExtractInt(split)

	l.Facts = classifiedFacts(get("facts"))
	if len(l.Facts) == 0 {
		l.Facts = synthesizeFacts(l)
	}

	switch t := get("tags").(type) {
	case map[string]interface{}:
		l.Flags = Flags{
			New:            extractBool(t["isNew"]),
			Exclusive:      extractBool(t["isExclusive"]),
			Has3DVisit:     extractBool(t["has3DVisit"]),
			NoBrokerageFee: extractBool(t["brokerageFeeFree"]),
		}
		l.Tags = flagTags(l.Flags)
	default:
		l.Tags = ExtractTags(t)
	}
	return l
}

func classifiedFacts(v interface{}) []Fact {
	items, ok := v.([]interface{})
	if !ok {
		return []Fact{}
	}
	facts := make([]Fact, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]interface{})
		if !ok {
			continue
		}
		t := ExtractString(m["type"])
		if t == "" {
			continue
		}
		split := m["splitValue"]
		if split == nil {
			split = m["value"]
		}
		label := factLabels[t]
		if label == "" {
			label = firstNonEmpty(ExtractString(m["label"]), t)
		}
		facts = append(facts, Fact{
			Type:    t,
			Label:   label,
			Value:   firstNonEmpty(ExtractString(m["value"]), ExtractString(split)),
			Numeric: ExtractNumber(split),
		})
	}
	return facts
}

func flagTags(f Flags) []string {
	tags := []string{}
	if f.New {
		tags = append(tags, "New")
	}
	if f.Exclusive {
		tags = append(tags, "Exclusive")
	}
	if f.Has3DVisit {
		tags = append(tags, "3D visit")
	}
	if f.NoBrokerageFee {
		tags = append(tags, "No brokerage fee")
	}
	return tags
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}

// formatPrice is the display price used when a record only carries a number.
func formatPrice(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 0, 64) + " €"
}
