package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/home-solutions/pkg/geo"
)

func TestParseCategoryIsExact(t *testing.T) {
	c, ok := ParseCategory("Plumbing")
	require.True(t, ok)
	require.Equal(t, CategoryPlumbing, c)

	_, ok = ParseCategory("plumbing")
	require.False(t, ok)
	_, ok = ParseCategory("All")
	require.False(t, ok)
}

func TestMatchCategoryIsLenient(t *testing.T) {
	c, ok := MatchCategory("  eLectrical ")
	require.True(t, ok)
	require.Equal(t, CategoryElectrical, c)

	_, ok = MatchCategory("Roofing")
	require.False(t, ok)
	_, ok = MatchCategory("Unknown")
	require.False(t, ok)
}

func TestCategoriesOrderAndCopy(t *testing.T) {
	got := Categories()
	require.Len(t, got, 9)
	require.Equal(t, CategoryPlumbing, got[0])
	require.Equal(t, CategoryOther, got[8])

	got[0] = "mutated"
	require.Equal(t, CategoryPlumbing, Categories()[0])
}

func TestCategoryFilterMatches(t *testing.T) {
	require.True(t, CategoryAll.Matches(CategoryGardening))
	require.True(t, CategoryFilter("Gardening").Matches(CategoryGardening))
	require.False(t, CategoryFilter("gardening").Matches(CategoryGardening))
	require.False(t, CategoryFilter("Roofing").Matches(Category("Roofing")))
}

func TestProviderStars(t *testing.T) {
	tests := []struct {
		rating float64
		want   int
	}{
		{4.8, 5},
		{4.5, 5},
		{4.49, 4},
		{0, 0},
		{-1, 0},
		{7.2, 5},
		{math.NaN(), 0},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, Provider{Rating: tc.rating}.Stars(), "rating %v", tc.rating)
	}
}

func TestProviderPosition(t *testing.T) {
	_, ok := Provider{}.Position()
	require.False(t, ok)

	_, ok = Provider{Coordinates: &geo.Coordinate{Lat: 120, Lng: 0}}.Position()
	require.False(t, ok)

	pos, ok := Provider{Coordinates: &geo.Coordinate{Lat: 40.7, Lng: -74}}.Position()
	require.True(t, ok)
	require.Equal(t, 40.7, pos.Lat)
}

func TestProviderDisplayName(t *testing.T) {
	require.Equal(t, "Volt Electric", Provider{Name: "Mike Ross", BusinessName: "Volt Electric"}.DisplayName())
	require.Equal(t, "Mike Ross", Provider{Name: "Mike Ross", BusinessName: "  "}.DisplayName())
}
