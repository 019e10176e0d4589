// Package app owns the application state: the loaded collection, the current
// filter criteria and sort, and the view derived from them.
package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/brojonat/annonces/listing"
)

type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// State is an immutable snapshot. The controller replaces it wholesale; no
// field or slice of a published State is ever modified.
type State struct {
	All          []listing.Listing `json:"-"`
	View         []listing.Listing `json:"-"`
	Criteria     listing.Criteria  `json:"criteria"`
	Sort         listing.SortKey   `json:"sort"`
	Cities       []string          `json:"cities"`
	Source       string            `json:"source"`
	UsedFallback bool              `json:"used_fallback"`
	Err          string            `json:"error,omitempty"`
	LoadedAt     time.Time         `json:"loaded_at"`
	Status       Status            `json:"status"`
	FilterPasses int64             `json:"filter_passes"`
}

// Counts is a convenience for status payloads.
func (s *State) Counts() (total, visible int) {
	return len(s.All), len(s.View)
}

// InputKind tells the controller how eagerly to apply new criteria.
type InputKind string

const (
	InputText   InputKind = "text"
	InputRange  InputKind = "range"
	InputSelect InputKind = "select"
)

func ParseInputKind(s string) (InputKind, error) {
	switch k := InputKind(strings.ToLower(strings.TrimSpace(s))); k {
	case InputText, InputRange, InputSelect:
		return k, nil
	case "":
		return InputText, nil
	default:
		return "", fmt.Errorf("unsupported input kind: %s", s)
	}
}

// Debounced reports whether inputs of this kind wait for the burst to settle.
func (k InputKind) Debounced() bool {
	return k != InputSelect
}
