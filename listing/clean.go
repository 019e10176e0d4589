package listing

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// "Part-Dieu à Lyon (69003)"
	reDistrictCityPostal = regexp.MustCompile(`^(.+?)\s+à\s+(.+?)\s*\((\d{5})\)`)
	// "Lyon 69003" or "Lyon (69003)"
	reCityPostal = regexp.MustCompile(`^(.+?)\s+\(?(\d{5})\)?`)
	// "Lyon, 3e" or "Lyon 3ème"
	reCityArrondissement = regexp.MustCompile(`^([\p{L}\s'-]+?)(?:,\s*|\s+)(\d+(?:er|ème|eme|e))\b`)
	reCityOnly           = regexp.MustCompile(`^[\p{L}\s'-]+$`)
	reSurface            = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*m(?:²|2)`)
)

// CleanLocation splits a free-text location into city, district and postal
// code. Parts that cannot be recognized are left empty.
func CleanLocation(s string) (city, district, postal string) {
	s = normaliseText(s)
	if s == "" {
		return "", "", ""
	}
	if m := reDistrictCityPostal.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[2]), strings.TrimSpace(m[1]), m[3]
	}
	if m := reCityPostal.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(strings.TrimSuffix(m[1], ",")), "", m[2]
	}
	if m := reCityArrondissement.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), m[2], ""
	}
	if reCityOnly.MatchString(s) {
		return s, "", ""
	}
	return "", "", ""
}

// CleanSurface reads an area expressed in square meters ("62,5 m²").
func CleanSurface(s string) float64 {
	m := reSurface.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return 0
	}
	return f
}

func normaliseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
