package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/home-solutions/internal/domain/catalog"
	apperrors "github.com/yanqian/home-solutions/pkg/errors"
)

func TestServiceSearchDefaultsToAllAndRating(t *testing.T) {
	svc := NewService(&stubCatalog{providers: fixtureProviders()}, newTestLogger())

	resp, err := svc.Search(context.Background(), Request{})
	require.NoError(t, err)
	require.Equal(t, SortRating, resp.Sort)
	require.Equal(t, 4, resp.Total)
	require.Equal(t, []string{"2", "1", "3", "4"}, rankedIDs(resp.Results))
	require.Empty(t, resp.Notice)
}

func TestServiceSearchDistanceWithOrigin(t *testing.T) {
	svc := NewService(&stubCatalog{providers: fixtureProviders()}, newTestLogger())
	lat, lng := 40.7128, -74.0060

	resp, err := svc.Search(context.Background(), Request{Lat: &lat, Lng: &lng, Sort: "distance"})
	require.NoError(t, err)
	require.Equal(t, SortDistance, resp.Sort)
	require.Equal(t, "1", resp.Results[0].Provider.ID)
	require.NotNil(t, resp.Results[0].DistanceKm)
}

func TestServiceSearchDistanceWithoutOriginAddsNotice(t *testing.T) {
	svc := NewService(&stubCatalog{providers: fixtureProviders()}, newTestLogger())

	resp, err := svc.Search(context.Background(), Request{Sort: "distance"})
	require.NoError(t, err)
	require.Equal(t, SortRating, resp.Sort)
	require.Equal(t, noticeLocationUnavailable, resp.Notice)
}

func TestServiceSearchRejectsBadInput(t *testing.T) {
	svc := NewService(&stubCatalog{providers: fixtureProviders()}, newTestLogger())
	lat, badLng := 40.0, 200.0

	_, err := svc.Search(context.Background(), Request{Sort: "price"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Search(context.Background(), Request{Lat: &lat})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Search(context.Background(), Request{Lat: &lat, Lng: &badLng})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestServiceSearchPropagatesCatalogError(t *testing.T) {
	failure := apperrors.Wrap(apperrors.CodeBackend, "Failed to fetch providers", errors.New("down"))
	svc := NewService(&stubCatalog{err: failure}, newTestLogger())

	_, err := svc.Search(context.Background(), Request{Category: "Plumbing"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeBackend))
}

func TestServiceDetailAttachesDistance(t *testing.T) {
	svc := NewService(&stubCatalog{providers: fixtureProviders()}, newTestLogger())
	lat, lng := 40.7128, -74.0060

	resp, err := svc.Detail(context.Background(), "3", &lat, &lng)
	require.NoError(t, err)
	require.Equal(t, "3", resp.Provider.ID)
	require.InDelta(t, 4.68, *resp.DistanceKm, 0.01)

	resp, err = svc.Detail(context.Background(), "3", nil, nil)
	require.NoError(t, err)
	require.Nil(t, resp.DistanceKm)
}

type stubCatalog struct {
	providers []catalog.Provider
	err       error
}

func (s *stubCatalog) List(ctx context.Context) ([]catalog.Provider, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.providers, nil
}

func (s *stubCatalog) Get(ctx context.Context, id string) (catalog.Provider, error) {
	if s.err != nil {
		return catalog.Provider{}, s.err
	}
	for _, p := range s.providers {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Provider{}, apperrors.Wrap(apperrors.CodeNotFound, "Provider not found", catalog.ErrProviderNotFound)
}

func (s *stubCatalog) Featured(ctx context.Context) ([]catalog.Provider, error) {
	return s.providers, s.err
}

func (s *stubCatalog) Categories() []catalog.Category {
	return catalog.Categories()
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
