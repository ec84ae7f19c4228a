package catalog

// Config holds runtime knobs for the catalog service.
type Config struct {
	FeaturedMinRating float64
}
