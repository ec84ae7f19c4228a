package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/home-solutions/internal/domain/catalog"
	"github.com/yanqian/home-solutions/internal/domain/classifier"
	"github.com/yanqian/home-solutions/internal/domain/search"
	apperrors "github.com/yanqian/home-solutions/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	catalogSvc    catalog.Service
	searchSvc     search.Service
	classifierSvc classifier.Service
	logger        *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(catalogSvc catalog.Service, searchSvc search.Service, classifierSvc classifier.Service, logger *slog.Logger) *Handler {
	return &Handler{
		catalogSvc:    catalogSvc,
		searchSvc:     searchSvc,
		classifierSvc: classifierSvc,
		logger:        logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Categories lists the service categories.
func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalogSvc.Categories()})
}

// SearchProviders filters and ranks providers.
func (h *Handler) SearchProviders(c *gin.Context) {
	lat, lng, err := parseOrigin(c)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	resp, err := h.searchSvc.Search(c.Request.Context(), search.Request{
		Category: c.Query("category"),
		Text:     c.Query("q"),
		Lat:      lat,
		Lng:      lng,
		Sort:     c.Query("sort"),
	})
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FeaturedProviders returns the top rated providers.
func (h *Handler) FeaturedProviders(c *gin.Context) {
	providers, err := h.catalogSvc.Featured(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// ProviderDetail returns one provider, with distance when the caller sent a location.
func (h *Handler) ProviderDetail(c *gin.Context) {
	lat, lng, err := parseOrigin(c)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	resp, err := h.searchSvc.Detail(c.Request.Context(), c.Param("id"), lat, lng)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Classify maps a free text need onto a service category.
func (h *Handler) Classify(c *gin.Context) {
	var req classifier.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, err.Error(), err))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, "query cannot be empty", nil))
		return
	}
	c.JSON(http.StatusOK, h.classifierSvc.Classify(c.Request.Context(), req.Query))
}

// TrendingQueries returns the most common classifier queries.
func (h *Handler) TrendingQueries(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	items, err := h.classifierSvc.Trending(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"queries": items})
}

// ClassificationHistory returns recent classifier outcomes.
func (h *Handler) ClassificationHistory(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	entries, err := h.classifierSvc.History(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func parseOrigin(c *gin.Context) (*float64, *float64, error) {
	lat, err := parseOptionalFloat(c, "lat")
	if err != nil {
		return nil, nil, err
	}
	lng, err := parseOptionalFloat(c, "lng")
	if err != nil {
		return nil, nil, err
	}
	return lat, lng, nil
}

func parseOptionalFloat(c *gin.Context, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, key+" must be a number", err)
	}
	return &v, nil
}

func parseLimit(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apperrors.Wrap(apperrors.CodeInvalidInput, "limit must be a non-negative integer", err)
	}
	return v, nil
}
