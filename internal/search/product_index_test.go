package search

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"
	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/platform/elasticsearch"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCluster answers the handful of endpoints the index uses.
type fakeCluster struct {
	mu          sync.Mutex
	indexExists bool
	docs        map[string]json.RawMessage
	searchHits  []string
	lastSearch  map[string]interface{}
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	path := strings.TrimSuffix(r.URL.Path, "/")

	switch {
	case path == "" && r.Method == http.MethodGet:
		fmt.Fprint(w, `{"version":{"number":"8.18.0"},"tagline":"You Know, for Search"}`)
	case path == "/"+ProductsIndexName && r.Method == http.MethodHead:
		if !f.indexExists {
			w.WriteHeader(http.StatusNotFound)
		}
	case path == "/"+ProductsIndexName && r.Method == http.MethodPut:
		f.indexExists = true
		fmt.Fprint(w, `{"acknowledged":true}`)
	case path == "/"+ProductsIndexName && r.Method == http.MethodDelete:
		f.indexExists = false
		f.docs = map[string]json.RawMessage{}
		fmt.Fprint(w, `{"acknowledged":true}`)
	case path == "/"+ProductsIndexName+"/_search":
		_ = json.NewDecoder(r.Body).Decode(&f.lastSearch)
		hits := make([]string, len(f.searchHits))
		for i, id := range f.searchHits {
			hits[i] = fmt.Sprintf(`{"_id":%q}`, id)
		}
		fmt.Fprintf(w, `{"hits":{"hits":[%s]}}`, strings.Join(hits, ","))
	case strings.HasPrefix(path, "/"+ProductsIndexName+"/_doc/"):
		id := strings.TrimPrefix(path, "/"+ProductsIndexName+"/_doc/")
		if r.Method == http.MethodDelete {
			if _, ok := f.docs[id]; !ok {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"result":"not_found"}`)
				return
			}
			delete(f.docs, id)
			fmt.Fprint(w, `{"result":"deleted"}`)
			return
		}
		var raw json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&raw)
		f.docs[id] = raw
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"result":"created"}`)
	case strings.HasSuffix(path, "/_bulk"):
		var items []string
		scanner := bufio.NewScanner(r.Body)
		for scanner.Scan() {
			var meta map[string]map[string]string
			if err := json.Unmarshal(scanner.Bytes(), &meta); err != nil || meta["index"] == nil {
				continue
			}
			id := meta["index"]["_id"]
			scanner.Scan()
			f.docs[id] = append(json.RawMessage(nil), scanner.Bytes()...)
			items = append(items, fmt.Sprintf(`{"index":{"_id":%q,"status":201}}`, id))
		}
		fmt.Fprintf(w, `{"took":1,"errors":false,"items":[%s]}`, strings.Join(items, ","))
	default:
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, `{"error":{"type":"unexpected","reason":"%s %s"}}`, r.Method, path)
	}
}

func setupIndex(t *testing.T) (*ProductIndex, *fakeCluster) {
	cluster := &fakeCluster{docs: map[string]json.RawMessage{}}
	server := httptest.NewServer(cluster)
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(&config.Config{ElasticsearchURL: server.URL}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, client)

	idx, err := NewProductIndex(context.Background(), client, zap.NewNop())
	require.NoError(t, err)
	return idx, cluster
}

func TestProductIndex_Disabled(t *testing.T) {
	client, err := elasticsearch.NewClient(&config.Config{}, zap.NewNop())
	require.NoError(t, err)
	require.Nil(t, client)

	idx, err := NewProductIndex(context.Background(), client, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	assert.False(t, idx.Enabled())
	assert.NoError(t, idx.IndexProduct(ctx, ProductDocument{ID: uuid.New()}))
	assert.NoError(t, idx.DeleteProduct(ctx, uuid.New()))
	n, err := idx.Rebuild(ctx, []ProductDocument{{ID: uuid.New()}})
	assert.NoError(t, err)
	assert.Zero(t, n)
	_, err = idx.SearchIDs(ctx, "lampu")
	assert.Error(t, err)

	var nilIndex *ProductIndex
	assert.False(t, nilIndex.Enabled())
}

func TestProductIndex_CreatesIndexOnStart(t *testing.T) {
	_, cluster := setupIndex(t)
	assert.True(t, cluster.indexExists)
}

func TestProductIndex_SearchIDs(t *testing.T) {
	idx, cluster := setupIndex(t)
	first, second := uuid.New(), uuid.New()
	cluster.searchHits = []string{first.String(), "not-a-uuid", second.String()}

	ids, err := idx.SearchIDs(context.Background(), "  traffic light ")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first, second}, ids)

	query := cluster.lastSearch["query"].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "traffic light", query["query"])
	assert.Equal(t, false, cluster.lastSearch["_source"])
}

func TestProductIndex_IndexAndDelete(t *testing.T) {
	idx, cluster := setupIndex(t)
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, idx.IndexProduct(ctx, ProductDocument{ID: id, Name: "Warning Light", Slug: "warning-light"}))
	require.Contains(t, cluster.docs, id.String())

	var stored map[string]interface{}
	require.NoError(t, json.Unmarshal(cluster.docs[id.String()], &stored))
	assert.Equal(t, "Warning Light", stored["name"])
	assert.NotContains(t, stored, "description", "only public fields are indexed")

	require.NoError(t, idx.DeleteProduct(ctx, id))
	assert.NotContains(t, cluster.docs, id.String())

	assert.NoError(t, idx.DeleteProduct(ctx, uuid.New()), "missing document is not an error")
}

func TestProductIndex_Rebuild(t *testing.T) {
	idx, cluster := setupIndex(t)
	ctx := context.Background()
	stale := uuid.New()
	require.NoError(t, idx.IndexProduct(ctx, ProductDocument{ID: stale, Name: "Old"}))

	docs := []ProductDocument{
		{ID: uuid.New(), Name: "Traffic Light 300mm"},
		{ID: uuid.New(), Name: "Countdown Timer"},
	}
	n, err := idx.Rebuild(ctx, docs)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Len(t, cluster.docs, 2)
	assert.NotContains(t, cluster.docs, stale.String())
	assert.True(t, cluster.indexExists)
}
