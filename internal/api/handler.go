// Package api serves the enriched catalog read-only over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"enrichprj/internal/logger"
	"enrichprj/internal/model"
	"enrichprj/internal/repository"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type ProductReader interface {
	Get(ctx context.Context, marketplaceID string) (*model.Product, error)
	List(ctx context.Context, f repository.ListFilter) ([]model.Product, error)
}

type FeatureReader interface {
	List(ctx context.Context, productID string) ([]model.Feature, error)
}

type LinkReader interface {
	ListByProduct(ctx context.Context, productID string) ([]model.AffiliateLink, error)
}

type ScoreReader interface {
	Get(ctx context.Context, productID string) (*model.ScoreSet, error)
}

// Handler holds the stores behind the catalog endpoints.
type Handler struct {
	Products ProductReader
	Features FeatureReader
	Links    LinkReader
	Scores   ScoreReader

	// Ping checks the backing store for /healthz. Nil means always healthy.
	Ping func(ctx context.Context) error
	Log  *logger.Logger
}

func (h *Handler) Health(c *gin.Context) {
	if h.Ping != nil {
		if err := h.Ping(c.Request.Context()); err != nil {
			respondError(c, http.StatusServiceUnavailable, "store_unavailable", err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "enrich-catalog"})
}

// ListProducts handles GET /products?category=&brand=&limit=&offset=.
func (h *Handler) ListProducts(c *gin.Context) {
	limit, err := intQuery(c, "limit", defaultPageSize)
	if err != nil || limit <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_limit", errors.New("limit must be a positive integer"))
		return
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, err := intQuery(c, "offset", 0)
	if err != nil || offset < 0 {
		respondError(c, http.StatusBadRequest, "invalid_offset", errors.New("offset must be a non-negative integer"))
		return
	}

	products, err := h.Products.List(c.Request.Context(), repository.ListFilter{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.internal(c, err)
		return
	}
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, productView(&products[i]))
	}
	c.JSON(http.StatusOK, gin.H{"products": views, "limit": limit, "offset": offset})
}

// GetProduct handles GET /products/:id with scores and affiliate links.
func (h *Handler) GetProduct(c *gin.Context) {
	ctx := c.Request.Context()
	p, ok := h.product(c)
	if !ok {
		return
	}

	detail := ProductDetail{Product: productView(p)}
	set, err := h.Scores.Get(ctx, p.MarketplaceID)
	switch {
	case err == nil:
		detail.Score = &ScoreView{Method: set.Method, Overall: set.Overall, SubScores: set.SubScores, ComputedAt: set.ComputedAt}
	case !errors.Is(err, model.ErrNotFound):
		h.internal(c, err)
		return
	}

	links, err := h.Links.ListByProduct(ctx, p.MarketplaceID)
	if err != nil {
		h.internal(c, err)
		return
	}
	detail.Links = linkViews(links)
	c.JSON(http.StatusOK, detail)
}

// ListFeatures handles GET /products/:id/features, optionally filtered by
// ?polarity=pro|con|info.
func (h *Handler) ListFeatures(c *gin.Context) {
	var want *model.Polarity
	if raw := c.Query("polarity"); raw != "" {
		pol, err := model.ParsePolarity(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid_polarity", err)
			return
		}
		want = &pol
	}

	p, ok := h.product(c)
	if !ok {
		return
	}
	fs, err := h.Features.List(c.Request.Context(), p.MarketplaceID)
	if err != nil {
		h.internal(c, err)
		return
	}
	if want != nil {
		kept := fs[:0]
		for _, f := range fs {
			if f.Polarity == *want {
				kept = append(kept, f)
			}
		}
		fs = kept
	}
	c.JSON(http.StatusOK, gin.H{"product_id": p.MarketplaceID, "features": featureViews(fs)})
}

func (h *Handler) product(c *gin.Context) (*model.Product, bool) {
	p, err := h.Products.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, model.ErrNotFound) {
		respondError(c, http.StatusNotFound, "not_found", err)
		return nil, false
	}
	if err != nil {
		h.internal(c, err)
		return nil, false
	}
	return p, true
}

func (h *Handler) internal(c *gin.Context, err error) {
	logger.OrNop(h.Log).Error("catalog request failed", "path", c.FullPath(), "error", err)
	respondError(c, http.StatusInternalServerError, "internal", errors.New("internal error"))
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
