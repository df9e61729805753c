package azure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cprchat/internal/core/domain"
)

func newTestRetriever(t *testing.T, handler http.HandlerFunc) *Retriever {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	r, err := New(Config{
		Endpoint:              server.URL,
		Index:                 "cpr-index",
		APIKey:                "test-key",
		SemanticConfiguration: "default",
	})
	require.NoError(t, err)
	return r
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{Index: "i", APIKey: "k"})
	assert.Error(t, err)

	_, err = New(Config{Endpoint: "https://s.example", APIKey: "k"})
	assert.Error(t, err)

	_, err = New(Config{Endpoint: "https://s.example", Index: "i"})
	assert.Error(t, err)
}

func TestRetrieve_MapsWireFields(t *testing.T) {
	r := newTestRetriever(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/indexes/cpr-index/docs/search", req.URL.Path)
		assert.Equal(t, "test-key", req.Header.Get("api-key"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]any{{
				"id":                    "doc1",
				"content":               "31.6 Standard disclosure.",
				"sourcepage":            "CPR Part 31#page=4",
				"sourcefile":            "CPR Part 31",
				"category":              "cpr",
				"storageUrl":            "https://blobs.example/cpr31.pdf",
				"groups":                []string{"public"},
				"updated":               "2026-01-10T12:00:00Z",
				"@search.score":         3.2,
				"@search.rerankerScore": 2.5,
				"@search.captions": []map[string]any{{
					"text":       "Standard disclosure.",
					"highlights": "<em>disclosure</em>",
				}},
			}},
		})
	})

	docs, err := r.Retrieve(context.Background(), "disclosure", domain.RetrievalOptions{Top: 3})
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "doc1", doc.ID)
	assert.Equal(t, "CPR Part 31#page=4", doc.SourcePage)
	assert.Equal(t, "CPR Part 31", doc.SourceFile)
	assert.Equal(t, "cpr", doc.Category)
	assert.Equal(t, "https://blobs.example/cpr31.pdf", doc.StorageURL)
	assert.Equal(t, []string{"public"}, doc.Groups)
	assert.InDelta(t, 3.2, doc.Score, 0.001)
	assert.InDelta(t, 2.5, doc.RerankerScore, 0.001)
	assert.False(t, doc.UpdatedAt.IsZero())
	require.Len(t, doc.Captions, 1)
	assert.Equal(t, "Standard disclosure.", doc.Captions[0].Text)
}

func TestRetrieve_SemanticOptions(t *testing.T) {
	var captured searchRequest
	r := newTestRetriever(t, func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewDecoder(req.Body).Decode(&captured)
		_, _ = w.Write([]byte(`{"value":[]}`))
	})

	_, err := r.Retrieve(context.Background(), "disclosure", domain.RetrievalOptions{
		Top:              5,
		SemanticRanking:  true,
		SemanticCaptions: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "semantic", captured.QueryType)
	assert.Equal(t, "default", captured.SemanticConfiguration)
	assert.Equal(t, "extractive", captured.Captions)
}

func TestRetrieve_GroupFilter(t *testing.T) {
	var captured searchRequest
	r := newTestRetriever(t, func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewDecoder(req.Body).Decode(&captured)
		_, _ = w.Write([]byte(`{"value":[]}`))
	})

	_, err := r.Retrieve(context.Background(), "q", domain.RetrievalOptions{
		Filter: "category eq 'cpr'",
		Groups: []string{"litigants", "judiciary"},
	})
	require.NoError(t, err)

	assert.Contains(t, captured.Filter, "category eq 'cpr'")
	assert.Contains(t, captured.Filter, "groups/any(g: search.in(g, 'litigants','judiciary'))")
}

func TestRetrieve_SkipsHitsWithoutID(t *testing.T) {
	r := newTestRetriever(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"value":[{"content":"orphan"},{"id":"doc1","content":"kept"}]}`))
	})

	docs, err := r.Retrieve(context.Background(), "q", domain.RetrievalOptions{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "doc1", docs[0].ID)
}

func TestRetrieve_APIError(t *testing.T) {
	r := newTestRetriever(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":"Forbidden","message":"invalid key"}}`))
	})

	_, err := r.Retrieve(context.Background(), "q", domain.RetrievalOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid key")
}

func TestPing(t *testing.T) {
	r := newTestRetriever(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/indexes/cpr-index/stats", req.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	})

	assert.NoError(t, r.Ping(context.Background()))
}

func TestPing_Unreachable(t *testing.T) {
	r := newTestRetriever(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	assert.Error(t, r.Ping(context.Background()))
}
