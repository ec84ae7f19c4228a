package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	apperrors "github.com/yanqian/home-solutions/pkg/errors"
)

const defaultFeaturedMinRating = 4.7

// Service exposes read access to the provider catalog.
type Service interface {
	List(ctx context.Context) ([]Provider, error)
	Get(ctx context.Context, id string) (Provider, error)
	Featured(ctx context.Context) ([]Provider, error)
	Categories() []Category
}

type service struct {
	cfg    Config
	source ProviderSource
	logger *slog.Logger
}

// NewService wires up the catalog domain.
func NewService(cfg Config, source ProviderSource, logger *slog.Logger) Service {
	if cfg.FeaturedMinRating <= 0 {
		cfg.FeaturedMinRating = defaultFeaturedMinRating
	}
	return &service{
		cfg:    cfg,
		source: source,
		logger: logger.With("component", "catalog.service"),
	}
}

func (s *service) List(ctx context.Context) ([]Provider, error) {
	providers, err := s.source.List(ctx)
	if err != nil {
		s.logger.Error("provider list fetch failed", "error", err)
		return nil, apperrors.Wrap(apperrors.CodeBackend, "Failed to fetch providers", err)
	}
	if providers == nil {
		providers = []Provider{}
	}
	return providers, nil
}

func (s *service) Get(ctx context.Context, id string) (Provider, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Provider{}, apperrors.Wrap(apperrors.CodeInvalidInput, "provider id cannot be empty", nil)
	}
	provider, err := s.source.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProviderNotFound) {
			return Provider{}, apperrors.Wrap(apperrors.CodeNotFound, "Provider not found", err)
		}
		s.logger.Error("provider fetch failed", "id", id, "error", err)
		return Provider{}, apperrors.Wrap(apperrors.CodeBackend, "Provider not found", err)
	}
	return provider, nil
}

func (s *service) Featured(ctx context.Context) ([]Provider, error) {
	providers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	featured := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p.Rating >= s.cfg.FeaturedMinRating {
			featured = append(featured, p)
		}
	}
	sort.SliceStable(featured, func(i, j int) bool {
		return featured[i].Rating > featured[j].Rating
	})
	return featured, nil
}

func (s *service) Categories() []Category {
	return Categories()
}
