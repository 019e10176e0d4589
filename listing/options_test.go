package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistinctCities(t *testing.T) {
	ls := []Listing{
		{City: "Villeurbanne"},
		{City: "Lyon"},
		{City: ""},
		{City: "lyon"},
		{City: " Écully "},
		{City: "caluire-et-cuire"},
	}
	assert.Equal(t, []string{"caluire-et-cuire", "Lyon", "Villeurbanne", "Écully"}, DistinctCities(ls))
	assert.Equal(t, []string{}, DistinctCities(nil))
}

func TestFind(t *testing.T) {
	l, ok := Find(fixtures(), "C")
	assert.True(t, ok)
	assert.Equal(t, "Maison avec jardin", l.Title)
	_, ok = Find(fixtures(), "Z")
	assert.False(t, ok)
}
