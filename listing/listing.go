// Package listing holds the canonical listing record and the pure functions
// that operate on collections of them: normalization of the source payloads,
// field extraction, filtering and sorting.
package listing

// Schema identifies which source shape a listing was normalized from.
type Schema string

const (
	SchemaFlat       Schema = "flat"
	SchemaClassified Schema = "classified"
)

// Fact type tags used by the classified payloads. Flat records get the same
// tags synthesized from their top level fields.
const (
	FactLivingSpace      = "livingSpace"
	FactNumberOfRooms    = "numberOfRooms"
	FactNumberOfBedrooms = "numberOfBedrooms"
	FactNumberOfFloors   = "numberOfFloors"
)

type Fact struct {
	Type    string  `json:"type"`
	Label   string  `json:"label"`
	Value   string  `json:"value"`
	Numeric float64 `json:"numeric"`
}

type Flags struct {
	New            bool `json:"new"`
	Exclusive      bool `json:"exclusive"`
	Has3DVisit     bool `json:"has_3d_visit"`
	NoBrokerageFee bool `json:"no_brokerage_fee"`
}

// Listing is the single internal shape every downstream component depends on.
// Values are copied out of the source payload at load time and never mutated
// afterwards.
type Listing struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	Price        string  `json:"price"`
	PriceValue   float64 `json:"price_value"`
	Surface      string  `json:"surface"`
	SurfaceValue float64 `json:"surface_value"`
	Rooms        int     `json:"rooms"`
	Bedrooms     int     `json:"bedrooms"`
	Floors       int     `json:"floors"`

	City       string   `json:"city"`
	District   string   `json:"district"`
	PostalCode string   `json:"postal_code"`
	Location   string   `json:"location"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`

	Images []string `json:"images"`
	Tags   []string `json:"tags"`
	Flags  Flags    `json:"flags"`
	Facts  []Fact   `json:"facts"`

	DPE         string `json:"dpe,omitempty"`
	GES         string `json:"ges,omitempty"`
	URL         string `json:"url,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	RetrievedAt string `json:"retrieved_at,omitempty"`

	Schema Schema `json:"schema"`
}

// HasCoordinates reports whether the listing carries a direct position.
func (l Listing) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Fact returns the first fact with the given type tag.
func (l Listing) Fact(t string) (Fact, bool) {
	for _, f := range l.Facts {
		if f.Type == t {
			return f, true
		}
	}
	return Fact{}, false
}
