package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanLocation(t *testing.T) {
	tests := []struct {
		in                       string
		city, district, postcode string
	}{
		{"Part-Dieu à Lyon (69003)", "Lyon", "Part-Dieu", "69003"},
		{"  Croix-Rousse   à Lyon  (69004) ", "Lyon", "Croix-Rousse", "69004"},
		{"Lyon 69007", "Lyon", "", "69007"},
		{"Villeurbanne (69100)", "Villeurbanne", "", "69100"},
		{"Lyon, 3e", "Lyon", "3e", ""},
		{"Lyon 1er", "Lyon", "1er", ""},
		{"Caluire-et-Cuire", "Caluire-et-Cuire", "", ""},
		{"", "", "", ""},
		{"#42", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			city, district, postal := CleanLocation(tt.in)
			assert.Equal(t, tt.city, city)
			assert.Equal(t, tt.district, district)
			assert.Equal(t, tt.postcode, postal)
		})
	}
}

func TestCleanSurface(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"62,5 m²", 62.5},
		{"45m2", 45},
		{"Appartement 3 pièces 70 m²", 70},
		{"70", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanSurface(tt.in), tt.in)
	}
}
