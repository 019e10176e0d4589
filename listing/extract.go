package listing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ExtractNumber returns the numeric value of v. Numbers pass through; strings
// yield the first digit run, with thousands separators (spaces, apostrophes,
// or a dot/comma followed by exactly three digits) skipped. Anything else is 0.
func ExtractNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		return finite(t)
	case float32:
		return finite(float64(t))
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return parseFirstNumber(t.String())
		}
		return finite(f)
	case string:
		return parseFirstNumber(t)
	default:
		return 0
	}
}

// ExtractInt is ExtractNumber truncated toward zero.
func ExtractInt(v any) int {
	return int(ExtractNumber(v))
}

// ExtractString returns the trimmed textual form of a scalar, or "".
func ExtractString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// ExtractCoordinate returns a pointer to the parsed coordinate, or nil when
// the value is absent, zero or unparseable.
func ExtractCoordinate(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case json.Number:
		var err error
		if f, err = t.Float64(); err != nil {
			return nil
		}
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", ".")
		var err error
		if f, err = strconv.ParseFloat(s, 64); err != nil {
			return nil
		}
	default:
		return nil
	}
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ExtractImages accepts a list of URL strings or of objects carrying the URL
// under "url", "src" or "href".
func ExtractImages(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		var u string
		switch t := it.(type) {
		case string:
			u = strings.TrimSpace(t)
		case map[string]any:
			u = firstNonEmpty(ExtractString(t["url"]), ExtractString(t["src"]), ExtractString(t["href"]))
		}
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}

// ExtractTags accepts a list of strings; other element types are dropped.
func ExtractTags(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := ExtractString(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func extractBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(t))
		return b
	default:
		return false
	}
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseFirstNumber(s string) float64 {
	rs := []rune(s)
	start := -1
	for i, r := range rs {
		if isDigit(r) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0
	}

	var digits strings.Builder
	frac := ""
	i := start
scan:
	for i < len(rs) {
		r := rs[i]
		switch {
		case isDigit(r):
			digits.WriteRune(r)
			i++
		case isGroupSeparator(r) && digitRun(rs, i+1) == 3:
			i++
		case r == '.' || r == ',':
			n := digitRun(rs, i+1)
			if n == 0 {
				break scan
			}
			if n == 3 {
				i++
				continue
			}
			frac = string(rs[i+1 : i+1+n])
			break scan
		default:
			break scan
		}
	}

	num := digits.String()
	if frac != "" {
		num += "." + frac
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	return f
}

func digitRun(rs []rune, i int) int {
	n := 0
	for i+n < len(rs) && isDigit(rs[i+n]) {
		n++
	}
	return n
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isGroupSeparator(r rune) bool {
	return r == '\'' || unicode.IsSpace(r)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
