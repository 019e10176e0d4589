package listing

import (
	"fmt"
	"strconv"
)

// Normalize maps one decoded source record onto the canonical Listing. The
// classified shape is recognized by its "hardFacts" key; everything else is
// read as a flat record.
func Normalize(raw map[string]any) Listing {
	if raw == nil {
		return Listing{Schema: SchemaFlat, Images: []string{}, Tags: []string{}, Facts: []Fact{}}
	}
	if _, ok := raw["hardFacts"]; ok {
		return normalizeClassified(raw)
	}
	return normalizeFlat(raw)
}

// NormalizeAll normalizes every object in items, preserving order. Elements
// that are not objects are skipped. Listings without an identifier get
// "idx-" plus their 1-based position, suffixed further if a record in the
// same document already uses that ID.
func NormalizeAll(items []any) []Listing {
	out := make([]Listing, 0, len(items))
	taken := map[string]bool{}
	for _, it := range items {
		raw, ok := it.(map[string]any)
		if !ok {
			continue
		}
		l := Normalize(raw)
		if l.ID != "" {
			taken[l.ID] = true
		}
		out = append(out, l)
	}
	for i := range out {
		if out[i].ID != "" {
			continue
		}
		id := "idx-" + strconv.Itoa(i+1)
		for n := 2; taken[id]; n++ {
			id = fmt.Sprintf("idx-%d-%d", i+1, n)
		}
		taken[id] = true
		out[i].ID = id
	}
	return out
}

func normalizeFlat(raw map[string]any) Listing {
	l := Listing{
		Schema:      SchemaFlat,
		ID:          ExtractString(raw["id"]),
		URL:         ExtractString(raw["url"]),
		Title:       ExtractString(raw["title"]),
		Description: ExtractString(raw["description"]),
		Price:       ExtractString(raw["price"]),
		PriceValue:  ExtractNumber(raw["price"]),
		Surface:     ExtractString(raw["surface"]),
		Rooms:       ExtractInt(raw["rooms"]),
		Bedrooms:    ExtractInt(raw["bedrooms"]),
		Floors:      ExtractInt(raw["floors"]),
		Location:    ExtractString(raw["location"]),
		City:        firstNonEmpty(ExtractString(raw["ville"]), ExtractString(raw["city"])),
		District:    firstNonEmpty(ExtractString(raw["quartier"]), ExtractString(raw["district"])),
		PostalCode:  firstNonEmpty(ExtractString(raw["code_postal"]), ExtractString(raw["postal_code"])),
		DPE:         ExtractString(raw["dpe"]),
		GES:         ExtractString(raw["ges"]),
		Images:      ExtractImages(raw["images"]),
		Tags:        ExtractTags(raw["tags"]),
		PublishedAt: ExtractString(raw["date_publication"]),
		RetrievedAt: ExtractString(raw["date_recuperation"]),
	}

	if _, isNumber := raw["price"].(float64); isNumber || l.Price == "" {
		l.Price = formatPrice(l.PriceValue)
	}

	l.SurfaceValue = ExtractNumber(raw["surface_clean"])
	if l.SurfaceValue == 0 {
		l.SurfaceValue = CleanSurface(l.Surface)
	}
	if l.SurfaceValue == 0 {
		l.SurfaceValue = ExtractNumber(raw["surface"])
	}

	if l.City == "" || l.District == "" || l.PostalCode == "" {
		city, district, postal := CleanLocation(l.Location)
		l.City = firstNonEmpty(l.City, city)
		l.District = firstNonEmpty(l.District, district)
		l.PostalCode = firstNonEmpty(l.PostalCode, postal)
	}

	l.Latitude, l.Longitude = coordinatePair(raw["gps_latitude"], raw["gps_longitude"])
	if l.Latitude == nil {
		l.Latitude, l.Longitude = coordinatePair(raw["latitude"], raw["longitude"])
	}
	l.Facts = synthesizeFacts(l)
	return l
}

// synthesizeFacts builds the fact list of a flat record from its top level
// fields so renderers only ever read Facts.
func synthesizeFacts(l Listing) []Fact {
	facts := []Fact{}
	if l.Surface != "" || l.SurfaceValue > 0 {
		facts = append(facts, Fact{
			Type:    FactLivingSpace,
			Label:   "Surface",
			Value:   firstNonEmpty(l.Surface, strconv.FormatFloat(l.SurfaceValue, 'f', -1, 64)+" m²"),
			Numeric: l.SurfaceValue,
		})
	}
	if l.Rooms > 0 {
		facts = append(facts, Fact{Type: FactNumberOfRooms, Label: "Rooms", Value: strconv.Itoa(l.Rooms), Numeric: float64(l.Rooms)})
	}
	if l.Bedrooms > 0 {
		facts = append(facts, Fact{Type: FactNumberOfBedrooms, Label: "Bedrooms", Value: strconv.Itoa(l.Bedrooms), Numeric: float64(l.Bedrooms)})
	}
	if l.Floors > 0 {
		facts = append(facts, Fact{Type: FactNumberOfFloors, Label: "Floors", Value: strconv.Itoa(l.Floors), Numeric: float64(l.Floors)})
	}
	return facts
}

// coordinatePair only keeps a position when both halves parse and fall in
// range.
func coordinatePair(lat, lng any) (*float64, *float64) {
	la := ExtractCoordinate(lat)
	lo := ExtractCoordinate(lng)
	if la == nil || lo == nil {
		return nil, nil
	}
	if *la < -90 || *la > 90 || *lo < -180 || *lo > 180 {
		return nil, nil
	}
	return la, lo
}
