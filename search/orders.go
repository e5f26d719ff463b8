package search

import (
	"context"
	"encoding/json"
	"time"

	"getpetback/models"

	"github.com/umakantv/go-utils/cache"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// OrdersAPI is the slice of the API client full search needs.
type OrdersAPI interface {
	SearchOrders(ctx context.Context, district, kind string) ([]models.Listing, error)
}

const ordersCacheTTL = 5 * time.Minute

// Searcher runs the full district/kind search, paginating client-side
// and caching full result sets when a cache is available.
type Searcher struct {
	api      OrdersAPI
	cache    cache.Cache
	pageSize int
}

// NewSearcher creates a Searcher. c may be nil to run uncached.
func NewSearcher(api OrdersAPI, c cache.Cache, pageSize int) *Searcher {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Searcher{api: api, cache: c, pageSize: pageSize}
}

// Search fetches all matches for the filters and returns the requested
// page. At least one filter must be set; the server does the matching.
func (s *Searcher) Search(ctx context.Context, district, kind string, page int) (Page, error) {
	listings, err := s.fetch(ctx, district, kind)
	if err != nil {
		return Page{}, err
	}
	return Paginate(listings, page, s.pageSize), nil
}

func (s *Searcher) fetch(ctx context.Context, district, kind string) ([]models.Listing, error) {
	cacheKey := "search:order:" + district + ":" + kind

	if s.cache != nil {
		if cached, err := s.cache.Get(cacheKey); err == nil {
			if data, ok := cached.([]byte); ok {
				var listings []models.Listing
				if err := json.Unmarshal(data, &listings); err == nil {
					logger.Debug("Serving search results from cache", zap.String("key", cacheKey))
					return listings, nil
				}
			}
		}
	}

	listings, err := s.api.SearchOrders(ctx, district, kind)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(listings); err == nil {
			s.cache.Set(cacheKey, data, ordersCacheTTL)
		}
	}
	return listings, nil
}
