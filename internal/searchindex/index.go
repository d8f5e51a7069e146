package searchindex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"git.home.luguber.info/inful/docmeta/internal/docmodel"
)

// ErrEmptyQuery is returned by Search for a blank query.
var ErrEmptyQuery = errors.New("empty search query")

const defaultLimit = 10

// Index is an in-memory full-text index over search records.
type Index struct {
	index   bleve.Index
	records map[string]docmodel.SearchRecord
}

// Hit is one search result.
type Hit struct {
	Record docmodel.SearchRecord
	Score  float64
}

// Query selects records.
type Query struct {
	// Text is matched word by word; "quoted text" is matched as a phrase.
	Text string
	// Category restricts hits to an exact category label.
	Category string
	// Limit caps the number of hits; zero means 10.
	Limit int
}

// indexedRecord is the document stored in bleve.
type indexedRecord struct {
	Title      string `json:"title"`
	Category   string `json:"category"`
	SearchText string `json:"searchText"`
}

func buildMapping() *mapping.IndexMappingImpl {
	im := bleve.NewIndexMapping()
	doc := bleve.NewDocumentMapping()

	text := bleve.NewTextFieldMapping()
	text.Store = false
	text.IncludeInAll = true
	doc.AddFieldMappingsAt("searchText", text)

	title := bleve.NewTextFieldMapping()
	title.Store = false
	title.IncludeInAll = true
	doc.AddFieldMappingsAt("title", title)

	category := bleve.NewKeywordFieldMapping()
	category.Store = false
	category.IncludeInAll = false
	doc.AddFieldMappingsAt("category", category)

	im.DefaultMapping = doc
	return im
}

// New indexes records keyed by their path.
func New(records []docmodel.SearchRecord) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}
	byPath := make(map[string]docmodel.SearchRecord, len(records))
	batch := idx.NewBatch()
	for _, r := range records {
		byPath[r.Path] = r
		if err := batch.Index(r.Path, indexedRecord{Title: r.Title, Category: r.Category, SearchText: r.SearchText}); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("index %s: %w", r.Path, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("commit search index: %w", err)
	}
	return &Index{index: idx, records: byPath}, nil
}

// Search returns matching records, best first, and the total hit count.
func (i *Index) Search(q Query) ([]Hit, uint64, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, 0, ErrEmptyQuery
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var bq query.Query = textQuery(text)
	if q.Category != "" {
		cat := bleve.NewTermQuery(q.Category)
		cat.SetField("category")
		bq = bleve.NewConjunctionQuery(bq, cat)
	}

	req := bleve.NewSearchRequestOptions(bq, limit, 0, false)
	res, err := i.index.Search(req)
	if err != nil {
		return nil, 0, fmt.Errorf("search %q: %w", text, err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		r, ok := i.records[h.ID]
		if !ok {
			continue
		}
		hits = append(hits, Hit{Record: r, Score: h.Score})
	}
	return hits, res.Total, nil
}

// Close releases the index.
func (i *Index) Close() error {
	return i.index.Close()
}

func textQuery(text string) query.Query {
	if len(text) > 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		pq := bleve.NewMatchPhraseQuery(strings.ToLower(text[1 : len(text)-1]))
		pq.SetField("searchText")
		return pq
	}
	mq := bleve.NewMatchQuery(strings.ToLower(text))
	mq.SetField("searchText")
	return mq
}
