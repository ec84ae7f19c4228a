package search

import (
	"sort"
	"strings"

	"github.com/yanqian/home-solutions/internal/domain/catalog"
	"github.com/yanqian/home-solutions/pkg/geo"
)

// Rank filters, annotates and orders providers. It never mutates its input.
//
// Distance sort without an origin falls back to rating order; providers
// lacking a usable coordinate always sort after those with a distance.
func Rank(providers []catalog.Provider, q Query) []Ranked {
	category := q.Category
	if category == "" {
		category = catalog.CategoryAll
	}
	needle := strings.ToLower(q.Text)

	out := make([]Ranked, 0, len(providers))
	for _, p := range providers {
		if !category.Matches(p.Category) {
			continue
		}
		if !matchesText(p, needle) {
			continue
		}
		out = append(out, Ranked{Provider: p, DistanceKm: distanceFrom(q.Origin, p)})
	}

	switch EffectiveSort(q) {
	case SortDistance:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].DistanceKm, out[j].DistanceKm
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return *a < *b
			}
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Provider.Rating > out[j].Provider.Rating
		})
	}
	return out
}

// EffectiveSort reports the ordering Rank actually applies for q.
func EffectiveSort(q Query) SortMode {
	if q.Sort == SortDistance && q.Origin != nil {
		return SortDistance
	}
	return SortRating
}

func matchesText(p catalog.Provider, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.BusinessName), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}

func distanceFrom(origin *geo.Coordinate, p catalog.Provider) *float64 {
	if origin == nil {
		return nil
	}
	pos, ok := p.Position()
	if !ok {
		return nil
	}
	d := geo.Haversine(*origin, pos)
	return &d
}
