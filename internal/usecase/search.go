package usecase

import (
	"context"
	"fmt"
	"strings"

	domrepo "Tickfunds/internal/domain/repository"
	xhttp "Tickfunds/pkg/http"
	"Tickfunds/pkg/search"
)

// Searchable instrument kinds.
const (
	KindFund = "fund"
	KindBond = "bond"
	KindFD   = "fd"
)

// ratingRank orders credit ratings for search popularity.
var ratingRank = map[string]float64{
	"Sovereign": 5,
	"AAA":       4,
	"AA+":       3,
	"AA":        2,
}

// RatingRank maps a rating such as "AAA/Stable" to its rank, 1 when unknown.
func RatingRank(rating string) float64 {
	base := strings.TrimSpace(strings.SplitN(rating, "/", 2)[0])
	if r, ok := ratingRank[base]; ok {
		return r
	}
	return 1
}

// SearchDocuments flattens the catalogs into search documents.
func SearchDocuments(ctx context.Context, funds domrepo.FundCatalog, fixed domrepo.FixedIncomeCatalog) ([]search.Document, error) {
	all, err := funds.Funds(ctx)
	if err != nil {
		return nil, err
	}
	bonds, fds := fixed.Bonds(), fixed.FixedDeposits()
	docs := make([]search.Document, 0, len(all)+len(bonds)+len(fds))
	for _, f := range all {
		docs = append(docs, search.Document{
			ID: f.ID, Kind: KindFund, Name: f.Name, Issuer: f.FundHouse,
			Category: f.Category, Popularity: float64(f.Rating),
		})
	}
	for _, b := range bonds {
		docs = append(docs, search.Document{
			ID: b.ID, Kind: KindBond, Name: b.Name, Issuer: b.Issuer,
			Category: b.Type, Popularity: RatingRank(b.Rating),
		})
	}
	for _, fd := range fds {
		docs = append(docs, search.Document{
			ID: fd.ID, Kind: KindFD, Name: fd.Company, Issuer: fd.Company,
			Category: fd.Type, Popularity: RatingRank(fd.Rating),
		})
	}
	return docs, nil
}

// SearchService answers instrument search over an index built at startup.
type SearchService struct {
	idx *search.Index
}

func NewSearchService(ctx context.Context, funds domrepo.FundCatalog, fixed domrepo.FixedIncomeCatalog, maxResults int) (*SearchService, error) {
	docs, err := SearchDocuments(ctx, funds, fixed)
	if err != nil {
		return nil, fmt.Errorf("collect search documents: %w", err)
	}
	idx, err := search.NewIndex(docs, search.WithMaxResults(maxResults))
	if err != nil {
		return nil, err
	}
	return &SearchService{idx: idx}, nil
}

type SearchRequest struct {
	Query string `json:"q" query:"q" validate:"required"`
	Kind  string `json:"kind" query:"kind" validate:"omitempty,oneof=fund bond fd"`
	Limit int    `json:"limit" query:"limit" default:"10" validate:"gte=1,lte=50"`
}

func (s *SearchService) Search(req SearchRequest) ([]search.Hit, error) {
	hits, err := s.idx.Search(req.Query, req.Kind, req.Limit)
	if err != nil {
		return nil, xhttp.BadRequestError(err.Error()).WithError(err)
	}
	return hits, nil
}

func (s *SearchService) Close() error {
	return s.idx.Close()
}

