package seloger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"

	"golang.org/x/net/publicsuffix"
)

const cookieDomain = ".seloger.com"

// browserCookie is one entry of a browser cookie export.
type browserCookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain"`
	Path   string `json:"path"`
}

// LoadCookies reads a cookie file. A missing file yields no cookies.
func LoadCookies(path string) ([]*http.Cookie, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseCookies(b)
}

// ParseCookies accepts a JSON object of name to value, a JSON array of
// browser export entries, or a raw "a=b; c=d" header string.
func ParseCookies(b []byte) ([]*http.Cookie, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, nil
	}

	switch b[0] {
	case '{':
		var m map[string]string
		if err := json.Unmarshal(b, &m); err == nil {
			cookies := make([]*http.Cookie, 0, len(m))
			for name, value := range m {
				cookies = append(cookies, &http.Cookie{Name: name, Value: value, Domain: cookieDomain, Path: "/"})
			}
			return cookies, nil
		}
	case '[':
		var entries []browserCookie
		if err := json.Unmarshal(b, &entries); err != nil {
			return nil, fmt.Errorf("parse cookie export: %w", err)
		}
		cookies := make([]*http.Cookie, 0, len(entries))
		for _, e := range entries {
			if e.Name == "" {
				continue
			}
			c := &http.Cookie{Name: e.Name, Value: e.Value, Domain: e.Domain, Path: e.Path}
			if c.Domain == "" {
				c.Domain = cookieDomain
			}
			if c.Path == "" {
				c.Path = "/"
			}
			cookies = append(cookies, c)
		}
		return cookies, nil
	}

	cookies := []*http.Cookie{}
	for _, pair := range strings.Split(string(b), ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: name, Value: value, Domain: cookieDomain, Path: "/"})
	}
	return cookies, nil
}

// NewHTTPClient returns a client whose jar holds cookies for the site.
func NewHTTPClient(cookies []*http.Cookie) (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	u, err := url.ParseRequestURI(BaseURL)
	if err != nil {
		return nil, err
	}
	jar.SetCookies(u, cookies)
	return &http.Client{Jar: jar}, nil
}
