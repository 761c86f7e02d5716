package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingRank(t *testing.T) {
	assert.Equal(t, 5.0, RatingRank("Sovereign"))
	assert.Equal(t, 4.0, RatingRank("AAA/Stable"))
	assert.Equal(t, 3.0, RatingRank("AA+"))
	assert.Equal(t, 1.0, RatingRank("BBB"))
}

func TestSearchDocuments(t *testing.T) {
	c := loadCatalog(t)
	docs, err := SearchDocuments(context.Background(), c, c)
	require.NoError(t, err)

	kinds := map[string]int{}
	for _, d := range docs {
		kinds[d.Kind]++
	}
	assert.Equal(t, map[string]int{KindFund: 10, KindBond: 5, KindFD: 5}, kinds)
}

func TestSearchService(t *testing.T) {
	c := loadCatalog(t)
	s, err := NewSearchService(context.Background(), c, c, 20)
	require.NoError(t, err)
	defer s.Close()

	hits, err := s.Search(SearchRequest{Query: "hdfc", Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	for _, h := range hits {
		assert.Contains(t, []string{KindFund, KindFD}, h.Kind)
	}

	hits, err = s.Search(SearchRequest{Query: "hdfc", Kind: KindFD, Limit: 10})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "fd4", hits[0].ID)

	_, err = s.Search(SearchRequest{Query: "", Limit: 10})
	requireAppError(t, err, http.StatusBadRequest)
}
