package geo

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Centroid is a named position used when a listing has no coordinates of its
// own. Aliases are alternative spellings matched the same way as Name.
type Centroid struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases,omitempty"`
	Lat     float64  `yaml:"lat"`
	Lng     float64  `yaml:"lng"`
}

func (c Centroid) keys() []string {
	keys := make([]string, 0, len(c.Aliases)+1)
	for _, k := range append([]string{c.Name}, c.Aliases...) {
		if k = foldText(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Table is the static lookup the TableResolver matches against.
type Table struct {
	Districts []Centroid `yaml:"districts"`
	Cities    []Centroid `yaml:"cities"`
}

// DefaultTable covers Lyon (arrondissements and well known quarters) and the
// surrounding communes.
func DefaultTable() Table {
	return Table{
		Districts: []Centroid{
			{Name: "Lyon 1er", Aliases: []string{"lyon 1", "1er arrondissement", "69001"}, Lat: 45.7675, Lng: 4.8345},
			{Name: "Lyon 2e", Aliases: []string{"lyon 2eme", "lyon 2ème", "2e arrondissement", "69002"}, Lat: 45.7485, Lng: 4.8270},
			{Name: "Lyon 3e", Aliases: []string{"lyon 3eme", "lyon 3ème", "3e arrondissement", "69003"}, Lat: 45.7595, Lng: 4.8505},
			{Name: "Lyon 4e", Aliases: []string{"lyon 4eme", "lyon 4ème", "4e arrondissement", "69004"}, Lat: 45.7790, Lng: 4.8270},
			{Name: "Lyon 5e", Aliases: []string{"lyon 5eme", "lyon 5ème", "5e arrondissement", "69005"}, Lat: 45.7590, Lng: 4.8050},
			{Name: "Lyon 6e", Aliases: []string{"lyon 6eme", "lyon 6ème", "6e arrondissement", "69006"}, Lat: 45.7725, Lng: 4.8520},
			{Name: "Lyon 7e", Aliases: []string{"lyon 7eme", "lyon 7ème", "7e arrondissement", "69007"}, Lat: 45.7450, Lng: 4.8420},
			{Name: "Lyon 8e", Aliases: []string{"lyon 8eme", "lyon 8ème", "8e arrondissement", "69008"}, Lat: 45.7345, Lng: 4.8695},
			{Name: "Lyon 9e", Aliases: []string{"lyon 9eme", "lyon 9ème", "9e arrondissement", "69009"}, Lat: 45.7740, Lng: 4.8050},
			{Name: "Part-Dieu", Aliases: []string{"part dieu"}, Lat: 45.7606, Lng: 4.8595},
			{Name: "Presqu'île", Aliases: []string{"presqu'ile", "presquile"}, Lat: 45.7600, Lng: 4.8330},
			{Name: "Bellecour", Lat: 45.7578, Lng: 4.8320},
			{Name: "Terreaux", Aliases: []string{"hôtel de ville", "hotel de ville"}, Lat: 45.7675, Lng: 4.8340},
			{Name: "Croix-Rousse", Aliases: []string{"croix rousse"}, Lat: 45.7769, Lng: 4.8310},
			{Name: "Vieux Lyon", Aliases: []string{"vieux-lyon", "saint-jean", "saint jean"}, Lat: 45.7620, Lng: 4.8270},
			{Name: "Fourvière", Aliases: []string{"fourviere"}, Lat: 45.7622, Lng: 4.8220},
			{Name: "Confluence", Aliases: []string{"perrache"}, Lat: 45.7430, Lng: 4.8180},
			{Name: "Brotteaux", Aliases: []string{"les brotteaux"}, Lat: 45.7680, Lng: 4.8560},
			{Name: "Guillotière", Aliases: []string{"guillotiere"}, Lat: 45.7530, Lng: 4.8430},
			{Name: "Jean Macé", Aliases: []string{"jean mace", "jean-macé"}, Lat: 45.7460, Lng: 4.8420},
			{Name: "Gerland", Lat: 45.7300, Lng: 4.8330},
			{Name: "Monplaisir", Lat: 45.7440, Lng: 4.8710},
			{Name: "Montchat", Lat: 45.7560, Lng: 4.8890},
			{Name: "Sans Souci", Aliases: []string{"sans-souci"}, Lat: 45.7500, Lng: 4.8650},
			{Name: "Vaise", Lat: 45.7790, Lng: 4.8050},
			{Name: "Gratte-Ciel", Aliases: []string{"gratte ciel"}, Lat: 45.7690, Lng: 4.8820},
		},
		Cities: []Centroid{
			{Name: "Lyon", Lat: 45.7640, Lng: 4.8357},
			{Name: "Villeurbanne", Lat: 45.7719, Lng: 4.8902},
			{Name: "Caluire-et-Cuire", Aliases: []string{"caluire"}, Lat: 45.7953, Lng: 4.8464},
			{Name: "Vénissieux", Aliases: []string{"venissieux"}, Lat: 45.6975, Lng: 4.8867},
			{Name: "Bron", Lat: 45.7386, Lng: 4.9131},
			{Name: "Écully", Aliases: []string{"ecully"}, Lat: 45.7747, Lng: 4.7764},
			{Name: "Oullins", Lat: 45.7147, Lng: 4.8075},
			{Name: "Sainte-Foy-lès-Lyon", Aliases: []string{"sainte-foy-les-lyon", "ste foy"}, Lat: 45.7336, Lng: 4.7947},
			{Name: "Tassin-la-Demi-Lune", Aliases: []string{"tassin"}, Lat: 45.7636, Lng: 4.7800},
			{Name: "Vaulx-en-Velin", Lat: 45.7786, Lng: 4.9220},
			{Name: "Saint-Fons", Lat: 45.7086, Lng: 4.8533},
			{Name: "Rillieux-la-Pape", Aliases: []string{"rillieux"}, Lat: 45.8214, Lng: 4.8983},
		},
	}
}

// LoadTable reads a YAML table from path and merges it over base. Entries
// with the same name (case-insensitive) replace the base entry.
func LoadTable(path string, base Table) (Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read centroid table: %w", err)
	}
	var override Table
	if err := yaml.Unmarshal(b, &override); err != nil {
		return Table{}, fmt.Errorf("parse centroid table %s: %w", path, err)
	}
	return Table{
		Districts: mergeCentroids(base.Districts, override.Districts),
		Cities:    mergeCentroids(base.Cities, override.Cities),
	}, nil
}

func mergeCentroids(base, override []Centroid) []Centroid {
	out := make([]Centroid, 0, len(base)+len(override))
	idx := map[string]int{}
	for _, c := range append(append([]Centroid{}, base...), override...) {
		k := strings.ToLower(strings.TrimSpace(c.Name))
		if k == "" {
			continue
		}
		if i, ok := idx[k]; ok {
			out[i] = c
			continue
		}
		idx[k] = len(out)
		out = append(out, c)
	}
	return out
}
