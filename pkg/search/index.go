package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Document is one searchable instrument.
type Document struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	Name       string  `json:"name"`
	Issuer     string  `json:"issuer"`
	Category   string  `json:"category"`
	Popularity float64 `json:"popularity"`
}

// Hit is a scored search result.
type Hit struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"`
	Name     string  `json:"name"`
	Issuer   string  `json:"issuer"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// Index is an in-memory bleve index over instruments.
type Index struct {
	idx     bleve.Index
	maxSize int
}

// Option configures Index.
type Option func(*Index)

// WithMaxResults caps the number of hits returned by Search.
func WithMaxResults(n int) Option {
	return func(i *Index) {
		if n > 0 {
			i.maxSize = n
		}
	}
}

// NewIndex builds a memory-only index and loads docs in one batch.
func NewIndex(docs []Document, opts ...Option) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	batch := idx.NewBatch()
	for _, d := range docs {
		if d.ID == "" {
			continue
		}
		if err := batch.Index(docKey(d.Kind, d.ID), d); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("index %s: %w", d.ID, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("execute batch: %w", err)
	}

	i := &Index{idx: idx, maxSize: 20}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Fund and bond ids overlap, so the kind is part of the key.
func docKey(kind, id string) string {
	return kind + ":" + id
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	doc := bleve.NewDocumentMapping()

	text := bleve.NewTextFieldMapping()
	text.Store = true
	doc.AddFieldMappingsAt("name", text)
	doc.AddFieldMappingsAt("issuer", text)

	keyword := bleve.NewKeywordFieldMapping()
	keyword.Store = true
	doc.AddFieldMappingsAt("id", keyword)
	doc.AddFieldMappingsAt("kind", keyword)
	doc.AddFieldMappingsAt("category", keyword)

	popularity := bleve.NewNumericFieldMapping()
	popularity.Store = true
	doc.AddFieldMappingsAt("popularity", popularity)

	indexMapping.DefaultMapping = doc
	return indexMapping
}

// Search matches q against names and issuers. An empty kind searches every kind.
func (i *Index) Search(q, kind string, limit int) ([]Hit, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, errors.New("query is required")
	}
	if limit <= 0 || limit > i.maxSize {
		limit = i.maxSize
	}
	lower := strings.ToLower(q)

	name := bleve.NewMatchQuery(q)
	name.SetField("name")
	name.SetBoost(3)

	prefix := bleve.NewPrefixQuery(lastToken(lower))
	prefix.SetField("name")
	prefix.SetBoost(2)

	issuer := bleve.NewWildcardQuery("*" + lastToken(lower) + "*")
	issuer.SetField("issuer")
	issuer.SetBoost(1)

	var root query.Query = bleve.NewDisjunctionQuery(name, prefix, issuer)
	if kind != "" {
		kindQuery := bleve.NewTermQuery(kind)
		kindQuery.SetField("kind")
		root = bleve.NewConjunctionQuery(root, kindQuery)
	}

	req := bleve.NewSearchRequestOptions(root, limit, 0, false)
	req.Fields = []string{"id", "kind", "name", "issuer", "category"}
	req.SortBy([]string{"-_score", "-popularity", "_id"})

	res, err := i.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, Hit{
			ID:       field(h.Fields, "id"),
			Kind:     field(h.Fields, "kind"),
			Name:     field(h.Fields, "name"),
			Issuer:   field(h.Fields, "issuer"),
			Category: field(h.Fields, "category"),
			Score:    h.Score,
		})
	}
	return hits, nil
}

// Count returns the number of indexed documents.
func (i *Index) Count() (uint64, error) {
	return i.idx.DocCount()
}

func (i *Index) Close() error {
	return i.idx.Close()
}

func lastToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	return fields[len(fields)-1]
}

func field(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
