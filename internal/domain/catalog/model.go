package catalog

import (
	"math"
	"strings"

	"github.com/yanqian/home-solutions/pkg/geo"
)

// Category is the closed set of services a provider can offer.
type Category string

const (
	CategoryPlumbing   Category = "Plumbing"
	CategoryElectrical Category = "Electrical"
	CategoryPainting   Category = "Painting"
	CategoryCleaning   Category = "Cleaning"
	CategoryCarpentry  Category = "Carpentry"
	CategoryMoving     Category = "Moving"
	CategoryDecorating Category = "Decorating"
	CategoryGardening  Category = "Gardening"
	CategoryOther      Category = "Other"
)

var categories = []Category{
	CategoryPlumbing,
	CategoryElectrical,
	CategoryPainting,
	CategoryCleaning,
	CategoryCarpentry,
	CategoryMoving,
	CategoryDecorating,
	CategoryGardening,
	CategoryOther,
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory is an exact, case-sensitive membership test.
func ParseCategory(raw string) (Category, bool) {
	for _, c := range categories {
		if string(c) == raw {
			return c, true
		}
	}
	return "", false
}

// MatchCategory maps loosely formatted text (model output, query params) onto the enumeration.
func MatchCategory(raw string) (Category, bool) {
	clean := strings.TrimSpace(raw)
	for _, c := range categories {
		if strings.EqualFold(string(c), clean) {
			return c, true
		}
	}
	return "", false
}

// CategoryFilter selects either every category or a single raw category value.
type CategoryFilter string

// CategoryAll disables category filtering.
const CategoryAll CategoryFilter = "All"

// Matches reports whether c passes the filter. Values outside the enumeration match nothing.
func (f CategoryFilter) Matches(c Category) bool {
	if f == CategoryAll {
		return true
	}
	want, ok := ParseCategory(string(f))
	return ok && want == c
}

// Review is a single customer review attached to a provider.
type Review struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
}

// Provider is a service professional listing as served by the backend.
type Provider struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	BusinessName    string          `json:"businessName,omitempty"`
	Category        Category        `json:"category"`
	Description     string          `json:"description"`
	Location        string          `json:"location"`
	Coordinates     *geo.Coordinate `json:"coordinates,omitempty"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	Rating          float64         `json:"rating"`
	ReviewCount     int             `json:"reviewCount"`
	Reviews         []Review        `json:"reviews"`
	ImageURL        string          `json:"imageUrl"`
	PortfolioImages []string        `json:"portfolioImages"`
	IsAvailable     bool            `json:"isAvailable"`
	HourlyRate      float64         `json:"hourlyRate"`
}

// Stars is the rating rounded to whole display stars.
func (p Provider) Stars() int {
	if math.IsNaN(p.Rating) || p.Rating <= 0 {
		return 0
	}
	stars := int(math.Round(p.Rating))
	if stars > 5 {
		return 5
	}
	return stars
}

// DisplayName prefers the business name.
func (p Provider) DisplayName() string {
	if strings.TrimSpace(p.BusinessName) != "" {
		return p.BusinessName
	}
	return p.Name
}

// Position returns the provider coordinate when it is usable for distance math.
func (p Provider) Position() (geo.Coordinate, bool) {
	if p.Coordinates == nil || !p.Coordinates.Valid() {
		return geo.Coordinate{}, false
	}
	return *p.Coordinates, true
}
