package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// CreateIndexIfNotExists creates index with the given mapping unless it is
// already present.
func CreateIndexIfNotExists(ctx context.Context, client *ESClientWrapper, index string, mapping map[string]interface{}, logger *zap.Logger) error {
	log := logger.Named("elasticsearch_index_setup").With(zap.String("index_name", index))

	res, err := esapi.IndicesExistsRequest{Index: []string{index}}.Do(ctx, client.Client)
	if err != nil {
		return fmt.Errorf("error checking if index %s exists: %w", index, err)
	}
	res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		log.Debug("Index already exists")
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("error checking if index %s exists: status %s", index, res.Status())
	}

	return CreateIndex(ctx, client, index, mapping, logger)
}

// RecreateIndex drops index if present and creates it again empty.
func RecreateIndex(ctx context.Context, client *ESClientWrapper, index string, mapping map[string]interface{}, logger *zap.Logger) error {
	ignoreMissing := true
	res, err := esapi.IndicesDeleteRequest{Index: []string{index}, IgnoreUnavailable: &ignoreMissing}.Do(ctx, client.Client)
	if err != nil {
		return fmt.Errorf("error deleting index %s: %w", index, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("error deleting index %s: %w", index, ResponseError(res))
	}
	return CreateIndex(ctx, client, index, mapping, logger)
}

// CreateIndex creates index with mapping.
func CreateIndex(ctx context.Context, client *ESClientWrapper, index string, mapping map[string]interface{}, logger *zap.Logger) error {
	body, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("error marshalling %s mapping to JSON: %w", index, err)
	}

	res, err := esapi.IndicesCreateRequest{Index: index, Body: bytes.NewReader(body)}.Do(ctx, client.Client)
	if err != nil {
		return fmt.Errorf("error creating index %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to create index %s: %w", index, ResponseError(res))
	}

	logger.Info("Elasticsearch index created", zap.String("index_name", index))
	return nil
}
