package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocs() []Document {
	return []Document{
		{ID: "1", Kind: "fund", Name: "HDFC Mid-Cap Opportunities Fund", Issuer: "HDFC Mutual Fund", Category: "Equity", Popularity: 5},
		{ID: "2", Kind: "fund", Name: "SBI Bluechip Fund", Issuer: "SBI Mutual Fund", Category: "Equity", Popularity: 4},
		{ID: "1", Kind: "bond", Name: "NHAI Tax Free Bond", Issuer: "National Highways Authority", Category: "Government", Popularity: 10},
		{ID: "3", Kind: "fd", Name: "Bajaj Finance FD", Issuer: "Bajaj Finance", Category: "NBFC", Popularity: 9},
		{ID: "", Kind: "fd", Name: "skipped"},
	}
}

func TestIndexSearchesNamesAndIssuers(t *testing.T) {
	idx, err := NewIndex(sampleDocs())
	require.NoError(t, err)
	defer idx.Close()

	n, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), n)

	hits, err := idx.Search("bluechip", "", 0)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "2", hits[0].ID)
	assert.Equal(t, "fund", hits[0].Kind)

	hits, err = idx.Search("high", "", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "bond", hits[0].Kind)
	assert.Equal(t, "NHAI Tax Free Bond", hits[0].Name)
}

func TestIndexFiltersByKind(t *testing.T) {
	idx, err := NewIndex(sampleDocs())
	require.NoError(t, err)
	defer idx.Close()

	hits, err := idx.Search("bajaj", "fund", 0)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = idx.Search("bajaj", "fd", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "3", hits[0].ID)
}

func TestIndexCapsResults(t *testing.T) {
	idx, err := NewIndex(sampleDocs(), WithMaxResults(1))
	require.NoError(t, err)
	defer idx.Close()

	hits, err := idx.Search("fund", "", 10)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	_, err = idx.Search("   ", "", 10)
	assert.Error(t, err)
}
