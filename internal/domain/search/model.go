package search

import (
	"strings"

	"github.com/yanqian/home-solutions/internal/domain/catalog"
	"github.com/yanqian/home-solutions/pkg/geo"
)

// SortMode selects the ordering of ranked results.
type SortMode string

const (
	// SortRating orders by rating, best first.
	SortRating SortMode = "rating"
	// SortDistance orders by distance from the query origin, nearest first.
	SortDistance SortMode = "distance"
)

// ParseSortMode accepts the wire values; an empty value means rating.
func ParseSortMode(raw string) (SortMode, bool) {
	switch SortMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", SortRating:
		return SortRating, true
	case SortDistance:
		return SortDistance, true
	default:
		return "", false
	}
}

// Query is the pure input of Rank.
type Query struct {
	Category catalog.CategoryFilter
	Text     string
	Origin   *geo.Coordinate
	Sort     SortMode
}

// Ranked pairs an untouched provider with its per-query distance.
type Ranked struct {
	Provider   catalog.Provider `json:"provider"`
	DistanceKm *float64         `json:"distanceKm,omitempty"`
}

// Request is accepted by the search service.
type Request struct {
	Category string
	Text     string
	Lat      *float64
	Lng      *float64
	Sort     string
}

// Response is serialized back to API consumers.
type Response struct {
	Results []Ranked `json:"results"`
	Total   int      `json:"total"`
	Sort    SortMode `json:"sort"`
	Notice  string   `json:"notice,omitempty"`
}

// DetailResponse is a single provider plus its optional distance.
type DetailResponse struct {
	Provider   catalog.Provider `json:"provider"`
	DistanceKm *float64         `json:"distanceKm,omitempty"`
}
