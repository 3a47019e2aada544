package elasticsearch

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"

	"github.com/elastic/elastic-transport-go/v8/elastictransport"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// ESClientWrapper wraps the elasticsearch.Client so Wire can inject it.
type ESClientWrapper struct {
	*elasticsearch.Client
}

// ZapLogger is an adapter from zap.Logger to elastictransport.Logger.
type ZapLogger struct {
	logger *zap.Logger
}

var _ elastictransport.Logger = (*ZapLogger)(nil)

// LogRoundTrip logs each request to the cluster at debug level.
func (l *ZapLogger) LogRoundTrip(req *http.Request, res *http.Response, err error, start time.Time, dur time.Duration) error {
	var statusCode int
	if res != nil {
		statusCode = res.StatusCode
	}
	l.logger.Debug("Elasticsearch RoundTrip",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", statusCode),
		zap.Duration("duration", dur),
		zap.Error(err),
	)
	return nil
}

// RequestBodyEnabled is false: catalog documents are not worth logging.
func (l *ZapLogger) RequestBodyEnabled() bool { return false }

// ResponseBodyEnabled is false for the same reason.
func (l *ZapLogger) ResponseBodyEnabled() bool { return false }

// NewClient creates and pings an Elasticsearch client. The index is
// optional: with ELASTICSEARCH_URL unset it returns nil, nil and callers
// fall back to database search.
func NewClient(cfg *config.Config, logger *zap.Logger) (*ESClientWrapper, error) {
	if cfg.ElasticsearchURL == "" {
		logger.Info("ELASTICSEARCH_URL not set, catalog search uses the database")
		return nil, nil
	}

	esCfg := elasticsearch.Config{
		Addresses:     []string{cfg.ElasticsearchURL},
		Logger:        &ZapLogger{logger: logger.Named("elasticsearch_client")},
		RetryOnStatus: []int{502, 503, 504, 429},
		RetryBackoff: func(i int) time.Duration {
			return time.Duration(i) * 100 * time.Millisecond
		},
		MaxRetries: 5,
	}

	esClient, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		logger.Error("Error creating Elasticsearch client", zap.Error(err))
		return nil, fmt.Errorf("elasticsearch.NewClient: %w", err)
	}

	res, err := esClient.Info()
	if err != nil {
		logger.Error("Error pinging Elasticsearch", zap.Error(err))
		return nil, fmt.Errorf("esClient.Info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch client initialization error: %w", ResponseError(res))
	}

	logger.Info("Elasticsearch client initialized and connected successfully",
		zap.String("url", cfg.ElasticsearchURL),
		zap.String("es_version", elasticsearch.Version),
	)
	return &ESClientWrapper{Client: esClient}, nil
}

// ResponseError turns an error response into a Go error carrying the
// cluster's reason when the body has one.
func ResponseError(res *esapi.Response) error {
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("status %s (unreadable body: %v)", res.Status(), err)
	}
	var parsed struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Error.Reason != "" {
		return fmt.Errorf("status %s: %s: %s", res.Status(), parsed.Error.Type, parsed.Error.Reason)
	}
	return fmt.Errorf("status %s", res.Status())
}
