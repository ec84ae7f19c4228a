package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/home-solutions/internal/domain/catalog"
	"github.com/yanqian/home-solutions/pkg/geo"
)

func fixtureProviders() []catalog.Provider {
	return []catalog.Provider{
		{
			ID:           "1",
			Name:         "John Smith",
			BusinessName: "Smith Plumbing Solutions",
			Category:     catalog.CategoryPlumbing,
			Description:  "Expert plumber with 15 years of experience in Leak detection and pipe repair.",
			Coordinates:  &geo.Coordinate{Lat: 40.7128, Lng: -74.0060},
			Rating:       4.8,
		},
		{
			ID:           "2",
			Name:         "Sarah Jenkins",
			BusinessName: "Sparkle Cleaners",
			Category:     catalog.CategoryCleaning,
			Description:  "Professional home cleaning services.",
			Coordinates:  &geo.Coordinate{Lat: 40.7300, Lng: -74.0500},
			Rating:       4.9,
		},
		{
			ID:           "3",
			Name:         "Mike Ross",
			BusinessName: "Volt Electric",
			Category:     catalog.CategoryElectrical,
			Description:  "Licensed electrician specializing in home wiring.",
			Coordinates:  &geo.Coordinate{Lat: 40.7500, Lng: -73.9800},
			Rating:       4.7,
		},
		{
			ID:          "4",
			Name:        "Emma Stone",
			Category:    catalog.CategoryPainting,
			Description: "Interior and exterior painting.",
			Coordinates: &geo.Coordinate{Lat: 40.7200, Lng: -73.9900},
			Rating:      4.6,
		},
	}
}

func rankedIDs(results []Ranked) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Provider.ID)
	}
	return out
}

func TestRankCategoryFilterKeepsOnlyThatCategory(t *testing.T) {
	providers := fixtureProviders()
	for _, c := range catalog.Categories() {
		got := Rank(providers, Query{Category: catalog.CategoryFilter(c), Sort: SortRating})
		for _, r := range got {
			require.Equal(t, c, r.Provider.Category)
		}
	}
}

func TestRankAllIsPermutation(t *testing.T) {
	providers := fixtureProviders()
	got := Rank(providers, Query{Category: catalog.CategoryAll, Sort: SortRating})
	require.ElementsMatch(t, []string{"1", "2", "3", "4"}, rankedIDs(got))
}

func TestRankUnknownCategoryMatchesNothing(t *testing.T) {
	got := Rank(fixtureProviders(), Query{Category: "Roofing"})
	require.NotNil(t, got)
	require.Empty(t, got)

	got = Rank(fixtureProviders(), Query{Category: "plumbing"})
	require.Empty(t, got)
}

func TestRankEmptyInput(t *testing.T) {
	got := Rank(nil, Query{Category: catalog.CategoryAll})
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestRankTextFilterIsCaseInsensitive(t *testing.T) {
	got := Rank(fixtureProviders(), Query{Category: catalog.CategoryAll, Text: "leak"})
	require.Equal(t, []string{"1"}, rankedIDs(got))

	got = Rank(fixtureProviders(), Query{Category: catalog.CategoryAll, Text: "SPARKLE"})
	require.Equal(t, []string{"2"}, rankedIDs(got))

	got = Rank(fixtureProviders(), Query{Category: catalog.CategoryAll, Text: "mike"})
	require.Equal(t, []string{"3"}, rankedIDs(got))
}

func TestRankTextFilterIgnoresMissingBusinessName(t *testing.T) {
	got := Rank(fixtureProviders(), Query{Category: catalog.CategoryAll, Text: "emma"})
	require.Equal(t, []string{"4"}, rankedIDs(got))
}

func TestRankRatingSortIsDescendingAndStable(t *testing.T) {
	providers := []catalog.Provider{
		{ID: "a", Category: catalog.CategoryPlumbing, Rating: 4.8},
		{ID: "b", Category: catalog.CategoryCleaning, Rating: 4.9},
		{ID: "c", Category: catalog.CategoryPainting, Rating: 4.8},
	}
	got := Rank(providers, Query{Category: catalog.CategoryAll, Sort: SortRating})
	require.Equal(t, []string{"b", "a", "c"}, rankedIDs(got))
}

func TestRankWithoutOriginHasNoDistance(t *testing.T) {
	got := Rank(fixtureProviders(), Query{Category: catalog.CategoryAll})
	for _, r := range got {
		require.Nil(t, r.DistanceKm)
	}
}

func TestRankDistanceSort(t *testing.T) {
	origin := geo.Coordinate{Lat: 40.7128, Lng: -74.0060}
	got := Rank(fixtureProviders(), Query{Category: catalog.CategoryAll, Origin: &origin, Sort: SortDistance})

	require.Equal(t, []string{"1", "4", "2", "3"}, rankedIDs(got))
	require.InDelta(t, 0.0, *got[0].DistanceKm, 1e-9)
	require.InDelta(t, 4.68, *got[3].DistanceKm, 0.01)
}

func TestRankDistanceSortPutsUnknownDistancesLast(t *testing.T) {
	providers := fixtureProviders()
	providers = append([]catalog.Provider{{ID: "nowhere", Category: catalog.CategoryMoving, Rating: 5}}, providers...)
	origin := geo.Coordinate{Lat: 40.7128, Lng: -74.0060}

	got := Rank(providers, Query{Category: catalog.CategoryAll, Origin: &origin, Sort: SortDistance})
	require.Equal(t, "nowhere", got[len(got)-1].Provider.ID)
	require.Nil(t, got[len(got)-1].DistanceKm)
}

func TestRankDistanceSortWithoutOriginFallsBackToRating(t *testing.T) {
	q := Query{Category: catalog.CategoryAll, Sort: SortDistance}
	got := Rank(fixtureProviders(), q)
	require.Equal(t, []string{"2", "1", "3", "4"}, rankedIDs(got))
	require.Equal(t, SortRating, EffectiveSort(q))
}

func TestRankDoesNotMutateInput(t *testing.T) {
	providers := fixtureProviders()
	before := rankedIDs(Rank(providers, Query{Category: catalog.CategoryAll, Sort: "none"}))
	origin := geo.Coordinate{Lat: 40.8, Lng: -74.1}

	_ = Rank(providers, Query{Category: catalog.CategoryAll, Origin: &origin, Sort: SortDistance})

	require.Equal(t, "1", providers[0].ID)
	require.Equal(t, "4", providers[3].ID)
	require.Equal(t, before, rankedIDs(Rank(providers, Query{Category: catalog.CategoryAll, Sort: "none"})))
}

func TestRankEndToEndPlumbing(t *testing.T) {
	providers := []catalog.Provider{
		{ID: "p", Category: catalog.CategoryPlumbing, Rating: 4.8},
		{ID: "c", Category: catalog.CategoryCleaning, Rating: 4.9},
	}
	got := Rank(providers, Query{Category: "Plumbing", Sort: SortRating})
	require.Equal(t, []string{"p"}, rankedIDs(got))
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		raw  string
		want SortMode
		ok   bool
	}{
		{"", SortRating, true},
		{"rating", SortRating, true},
		{" Distance ", SortDistance, true},
		{"price", "", false},
	}
	for _, tc := range tests {
		got, ok := ParseSortMode(tc.raw)
		require.Equal(t, tc.ok, ok, tc.raw)
		require.Equal(t, tc.want, got, tc.raw)
	}
}
