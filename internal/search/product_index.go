// Package search maintains the Elasticsearch index of the product catalog.
// The index only ever holds public fields and search only ever returns
// product ids; callers load and redact the products themselves.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/platform/elasticsearch"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/platform/metrics"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductsIndexName is the index holding catalog products.
const ProductsIndexName = "catalog_products"

// MaxHits caps the number of ids one search returns.
const MaxHits = 500

// ProductDocument is the indexed form of a product.
type ProductDocument struct {
	ID               uuid.UUID `json:"-"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	ShortDescription string    `json:"short_description"`
	CategoryName     string    `json:"category_name,omitempty"`
	CategorySlug     string    `json:"category_slug,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func productsMapping() map[string]interface{} {
	keyword := map[string]interface{}{"type": "keyword"}
	text := map[string]interface{}{"type": "text"}
	return map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"name":              text,
				"slug":              keyword,
				"short_description": text,
				"category_name":     text,
				"category_slug":     keyword,
				"updated_at":        map[string]interface{}{"type": "date"},
			},
		},
	}
}

// ProductIndex reads and writes the catalog_products index. A ProductIndex
// without a client is disabled: writes are no-ops and Enabled is false.
type ProductIndex struct {
	client *elasticsearch.ESClientWrapper
	logger *zap.Logger
}

// NewProductIndex creates the index when needed. client may be nil.
func NewProductIndex(ctx context.Context, client *elasticsearch.ESClientWrapper, logger *zap.Logger) (*ProductIndex, error) {
	idx := &ProductIndex{client: client, logger: logger.Named("ProductIndex")}
	if client == nil {
		return idx, nil
	}
	if err := elasticsearch.CreateIndexIfNotExists(ctx, client, ProductsIndexName, productsMapping(), idx.logger); err != nil {
		return nil, err
	}
	return idx, nil
}

// Enabled reports whether searches go to Elasticsearch.
func (i *ProductIndex) Enabled() bool {
	return i != nil && i.client != nil
}

// SearchIDs returns the ids of products matching query, best match first.
func (i *ProductIndex) SearchIDs(ctx context.Context, query string) ([]uuid.UUID, error) {
	if !i.Enabled() {
		return nil, fmt.Errorf("product index is disabled")
	}
	metrics.CatalogSearchesTotal.WithLabelValues("elasticsearch").Inc()

	body, err := json.Marshal(map[string]interface{}{
		"size":    MaxHits,
		"_source": false,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     strings.TrimSpace(query),
				"fields":    []string{"name^3", "short_description", "category_name"},
				"fuzziness": "AUTO",
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error building search body: %w", err)
	}

	res, err := i.client.Search(
		i.client.Search.WithContext(ctx),
		i.client.Search.WithIndex(ProductsIndexName),
		i.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("error searching %s: %w", ProductsIndexName, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("error searching %s: %w", ProductsIndexName, elasticsearch.ResponseError(res))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("error decoding search response: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			i.logger.Warn("Skipping search hit with invalid id", zap.String("id", hit.ID))
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// IndexProduct adds or replaces one document.
func (i *ProductIndex) IndexProduct(ctx context.Context, doc ProductDocument) error {
	if !i.Enabled() {
		return nil
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshalling product %s for ES: %w", doc.ID, err)
	}
	res, err := esapi.IndexRequest{
		Index:      ProductsIndexName,
		DocumentID: doc.ID.String(),
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}.Do(ctx, i.client.Client)
	if err != nil {
		return fmt.Errorf("error indexing product %s: %w", doc.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("error indexing product %s: %w", doc.ID, elasticsearch.ResponseError(res))
	}
	return nil
}

// DeleteProduct removes a document. A missing document is not an error.
func (i *ProductIndex) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if !i.Enabled() {
		return nil
	}
	res, err := esapi.DeleteRequest{Index: ProductsIndexName, DocumentID: id.String()}.Do(ctx, i.client.Client)
	if err != nil {
		return fmt.Errorf("error deleting product %s from index: %w", id, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("error deleting product %s from index: %w", id, elasticsearch.ResponseError(res))
	}
	return nil
}

// Rebuild recreates the index from docs and returns how many were indexed.
func (i *ProductIndex) Rebuild(ctx context.Context, docs []ProductDocument) (int, error) {
	if !i.Enabled() {
		return 0, nil
	}
	if err := elasticsearch.RecreateIndex(ctx, i.client, ProductsIndexName, productsMapping(), i.logger); err != nil {
		metrics.CatalogReindexTotal.WithLabelValues("error").Inc()
		return 0, err
	}

	indexer, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:     i.client.Client,
		Index:      ProductsIndexName,
		NumWorkers: 2,
		OnError: func(_ context.Context, err error) {
			i.logger.Error("Bulk indexer error", zap.Error(err))
		},
	})
	if err != nil {
		return 0, fmt.Errorf("error creating bulk indexer: %w", err)
	}

	for _, doc := range docs {
		body, err := json.Marshal(doc)
		if err != nil {
			i.logger.Error("Skipping unserializable product", zap.String("id", doc.ID.String()), zap.Error(err))
			continue
		}
		id := doc.ID.String()
		err = indexer.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: id,
			Body:       bytes.NewReader(body),
			OnFailure: func(_ context.Context, _ esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				i.logger.Warn("Failed to index product",
					zap.String("id", id),
					zap.Error(err),
					zap.String("reason", res.Error.Reason),
				)
			},
		})
		if err != nil {
			indexer.Close(ctx)
			metrics.CatalogReindexTotal.WithLabelValues("error").Inc()
			return 0, fmt.Errorf("error queueing product %s: %w", id, err)
		}
	}

	if err := indexer.Close(ctx); err != nil {
		metrics.CatalogReindexTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("error flushing bulk indexer: %w", err)
	}

	stats := indexer.Stats()
	result := "success"
	if stats.NumFailed > 0 {
		result = "partial"
	}
	metrics.CatalogReindexTotal.WithLabelValues(result).Inc()
	i.logger.Info("Catalog index rebuilt",
		zap.Uint64("indexed", stats.NumIndexed),
		zap.Uint64("failed", stats.NumFailed),
	)
	return int(stats.NumIndexed), nil
}
