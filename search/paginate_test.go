package search

import (
	"fmt"
	"testing"

	"getpetback/models"

	"github.com/stretchr/testify/assert"
)

func makeListings(n int) []models.Listing {
	out := make([]models.Listing, n)
	for i := range out {
		out[i] = models.Listing{ID: int64(i + 1), Kind: "кот", Description: fmt.Sprintf("Кот номер %d", i+1)}
	}
	return out
}

func TestPaginate(t *testing.T) {
	items := makeListings(15)

	page := Paginate(items, 1, 10)
	assert.Equal(t, 15, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, int64(1), page.Items[0].ID)

	// Page 2 of 15 results holds items 11–15.
	page = Paginate(items, 2, 10)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, int64(11), page.Items[0].ID)
	assert.Equal(t, int64(15), page.Items[4].ID)
}

func TestPaginateEdges(t *testing.T) {
	page := Paginate(nil, 1, 10)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.TotalPages)

	// Past the end and below the start are clamped, not errors.
	items := makeListings(3)
	assert.Empty(t, Paginate(items, 5, 10).Items)
	assert.Len(t, Paginate(items, 0, 10).Items, 3)
}
