package search

import (
	"context"
	"log/slog"

	"github.com/yanqian/home-solutions/internal/domain/catalog"
	apperrors "github.com/yanqian/home-solutions/pkg/errors"
	"github.com/yanqian/home-solutions/pkg/geo"
)

const noticeLocationUnavailable = "Location unavailable; sorted by rating."

// Service ranks catalog providers for a caller.
type Service interface {
	Search(ctx context.Context, req Request) (Response, error)
	Detail(ctx context.Context, id string, lat, lng *float64) (DetailResponse, error)
}

type service struct {
	catalog catalog.Service
	logger  *slog.Logger
}

// NewService wires up the search domain.
func NewService(catalogSvc catalog.Service, logger *slog.Logger) Service {
	return &service{
		catalog: catalogSvc,
		logger:  logger.With("component", "search.service"),
	}
}

func (s *service) Search(ctx context.Context, req Request) (Response, error) {
	mode, ok := ParseSortMode(req.Sort)
	if !ok {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "sort must be rating or distance", nil)
	}
	origin, err := resolveOrigin(req.Lat, req.Lng)
	if err != nil {
		return Response{}, err
	}
	category := catalog.CategoryFilter(req.Category)
	if req.Category == "" {
		category = catalog.CategoryAll
	}

	providers, err := s.catalog.List(ctx)
	if err != nil {
		return Response{}, err
	}

	q := Query{Category: category, Text: req.Text, Origin: origin, Sort: mode}
	results := Rank(providers, q)
	res := Response{
		Results: results,
		Total:   len(results),
		Sort:    EffectiveSort(q),
	}
	if mode == SortDistance && origin == nil {
		res.Notice = noticeLocationUnavailable
	}
	s.logger.Debug("providers ranked", "category", category, "sort", res.Sort, "candidates", len(providers), "results", res.Total)
	return res, nil
}

func (s *service) Detail(ctx context.Context, id string, lat, lng *float64) (DetailResponse, error) {
	origin, err := resolveOrigin(lat, lng)
	if err != nil {
		return DetailResponse{}, err
	}
	provider, err := s.catalog.Get(ctx, id)
	if err != nil {
		return DetailResponse{}, err
	}
	return DetailResponse{Provider: provider, DistanceKm: distanceFrom(origin, provider)}, nil
}

func resolveOrigin(lat, lng *float64) (*geo.Coordinate, error) {
	if lat == nil && lng == nil {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "lat and lng must be provided together", nil)
	}
	origin := geo.Coordinate{Lat: *lat, Lng: *lng}
	if !origin.Valid() {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "lat must be within [-90,90] and lng within [-180,180]", nil)
	}
	return &origin, nil
}
