package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"getpetback/api"
	"getpetback/config"
	"getpetback/models"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umakantv/go-utils/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})
	os.Exit(m.Run())
}

// newFakePetsAPI serves /api/search/order the way the real API does:
// the kind filter matches case-insensitively by substring and the full
// result set comes back in one response.
func newFakePetsAPI(t *testing.T, listings []models.Listing) *api.Client {
	t.Helper()

	r := mux.NewRouter()
	r.HandleFunc("/api/search/order", func(w http.ResponseWriter, req *http.Request) {
		kind := strings.ToLower(req.URL.Query().Get("kind"))
		district := req.URL.Query().Get("district")

		var matched []models.Listing
		for _, l := range listings {
			if kind != "" && !strings.Contains(strings.ToLower(l.Kind), kind) {
				continue
			}
			if district != "" && l.District != district {
				continue
			}
			matched = append(matched, l)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"orders": matched},
		})
	}).Methods("GET")

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return api.New(config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, nil)
}

func TestSearchByKindPaginates(t *testing.T) {
	var listings []models.Listing
	for i := 1; i <= 15; i++ {
		listings = append(listings, models.Listing{
			ID:   int64(i),
			Kind: "Кот домашний",
		})
	}
	// Non-matching noise must never show up.
	listings = append(listings,
		models.Listing{ID: 100, Kind: "собака"},
		models.Listing{ID: 101, Kind: "попугай"},
	)

	client := newFakePetsAPI(t, listings)
	searcher := NewSearcher(client, nil, 10)
	ctx := context.Background()

	page1, err := searcher.Search(ctx, "", "кот", 1)
	require.NoError(t, err)
	assert.Equal(t, 15, page1.TotalItems)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Len(t, page1.Items, 10)
	for _, l := range page1.Items {
		assert.Contains(t, strings.ToLower(l.Kind), "кот")
	}

	page2, err := searcher.Search(ctx, "", "кот", 2)
	require.NoError(t, err)
	require.Len(t, page2.Items, 5)
	assert.Equal(t, int64(11), page2.Items[0].ID)
	assert.Equal(t, int64(15), page2.Items[4].ID)
}

func TestSearchNoMatches(t *testing.T) {
	client := newFakePetsAPI(t, []models.Listing{{ID: 1, Kind: "собака"}})
	searcher := NewSearcher(client, nil, 10)

	page, err := searcher.Search(context.Background(), "", "кот", 1)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.TotalItems)
}
