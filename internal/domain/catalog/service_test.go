package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/home-solutions/pkg/errors"
)

func TestServiceListWrapsBackendFailure(t *testing.T) {
	svc := NewService(Config{}, &stubSource{listErr: errors.New("status=503")}, newTestLogger())

	_, err := svc.List(context.Background())
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeBackend))
	require.Equal(t, "Failed to fetch providers", apperrors.PublicMessage(err))
}

func TestServiceListNeverReturnsNil(t *testing.T) {
	svc := NewService(Config{}, &stubSource{}, newTestLogger())

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestServiceGetNotFound(t *testing.T) {
	svc := NewService(Config{}, &stubSource{getErr: ErrProviderNotFound}, newTestLogger())

	_, err := svc.Get(context.Background(), "42")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	require.Equal(t, "Provider not found", apperrors.PublicMessage(err))
}

func TestServiceGetBackendFailure(t *testing.T) {
	svc := NewService(Config{}, &stubSource{getErr: errors.New("timeout")}, newTestLogger())

	_, err := svc.Get(context.Background(), "42")
	require.True(t, apperrors.IsCode(err, apperrors.CodeBackend))
}

func TestServiceGetRejectsBlankID(t *testing.T) {
	src := &stubSource{}
	svc := NewService(Config{}, src, newTestLogger())

	_, err := svc.Get(context.Background(), "  ")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Zero(t, src.getCalls)
}

func TestServiceFeaturedUsesThreshold(t *testing.T) {
	src := &stubSource{providers: []Provider{
		{ID: "1", Rating: 4.8},
		{ID: "2", Rating: 4.9},
		{ID: "3", Rating: 4.7},
		{ID: "4", Rating: 4.6},
		{ID: "5", Rating: 4.9},
	}}
	svc := NewService(Config{}, src, newTestLogger())

	got, err := svc.Featured(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"2", "5", "1", "3"}, ids(got))

	svc = NewService(Config{FeaturedMinRating: 4.85}, src, newTestLogger())
	got, err = svc.Featured(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"2", "5"}, ids(got))
}

type stubSource struct {
	providers []Provider
	listErr   error
	getErr    error
	getCalls  int
}

func (s *stubSource) List(ctx context.Context) ([]Provider, error) {
	return s.providers, s.listErr
}

func (s *stubSource) Get(ctx context.Context, id string) (Provider, error) {
	s.getCalls++
	if s.getErr != nil {
		return Provider{}, s.getErr
	}
	for _, p := range s.providers {
		if p.ID == id {
			return p, nil
		}
	}
	return Provider{}, ErrProviderNotFound
}

func ids(providers []Provider) []string {
	out := make([]string, 0, len(providers))
	for _, p := range providers {
		out = append(out, p.ID)
	}
	return out
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
