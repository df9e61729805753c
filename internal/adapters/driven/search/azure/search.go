// Package azure provides a Retriever adapter for Azure AI Search.
package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/cprchat/internal/core/domain"
	"github.com/custodia-labs/cprchat/internal/core/ports/driven"
)

// Ensure Retriever implements the interface.
var _ driven.Retriever = (*Retriever)(nil)

// Default configuration values.
const (
	DefaultAPIVersion = "2023-11-01"
	DefaultTimeout    = 30 * time.Second

	// DefaultRequestsPerSecond matches the basic-tier query throttle.
	DefaultRequestsPerSecond = 15
)

// Config holds configuration for the Azure AI Search retriever.
type Config struct {
	// Endpoint is the search service URL, e.g. https://myservice.search.windows.net (required).
	Endpoint string

	// Index is the index name to query (required).
	Index string

	// APIKey is the query key (required).
	APIKey string

	// APIVersion is the REST API version (default: 2023-11-01).
	APIVersion string

	// SemanticConfiguration names the semantic ranking configuration to
	// use when semantic ranking is requested.
	SemanticConfiguration string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing queries (default: 15).
	RequestsPerSecond int
}

// Retriever queries an Azure AI Search index for ranked chunks.
type Retriever struct {
	client         *http.Client
	limiter        *rate.Limiter
	endpoint       string
	index          string
	apiKey         string
	apiVersion     string
	semanticConfig string
}

// searchRequest is the /docs/search request format.
type searchRequest struct {
	Search                string `json:"search"`
	Top                   int    `json:"top,omitempty"`
	Filter                string `json:"filter,omitempty"`
	QueryType             string `json:"queryType,omitempty"`
	SemanticConfiguration string `json:"semanticConfiguration,omitempty"`
	Captions              string `json:"captions,omitempty"`
}

// searchDocument is one hit in the /docs/search response.
type searchDocument struct {
	ID            string          `json:"id"`
	Content       string          `json:"content"`
	SourcePage    string          `json:"sourcepage"`
	SourceFile    string          `json:"sourcefile"`
	Category      string          `json:"category"`
	StorageURL    string          `json:"storageUrl"`
	Groups        []string        `json:"groups"`
	Updated       string          `json:"updated"`
	Score         float64         `json:"@search.score"`
	RerankerScore float64         `json:"@search.rerankerScore"`
	Captions      []searchCaption `json:"@search.captions"`
}

// searchCaption is a semantic caption on a hit.
type searchCaption struct {
	Text       string         `json:"text"`
	Highlights string         `json:"highlights"`
	Additional map[string]any `json:"additionalProperties"`
}

// searchResponse is the /docs/search response format.
type searchResponse struct {
	Value []searchDocument `json:"value"`
	Error *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// New creates a new Azure AI Search retriever.
func New(cfg Config) (*Retriever, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("azure search: endpoint is required")
	}
	if cfg.Index == "" {
		return nil, fmt.Errorf("azure search: index is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("azure search: API key is required")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Retriever{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:        rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestsPerSecond),
		endpoint:       strings.TrimRight(cfg.Endpoint, "/"),
		index:          cfg.Index,
		apiKey:         cfg.APIKey,
		apiVersion:     cfg.APIVersion,
		semanticConfig: cfg.SemanticConfiguration,
	}, nil
}

// Retrieve returns the ranked chunks for a query.
func (r *Retriever) Retrieve(
	ctx context.Context, query string, opts domain.RetrievalOptions,
) ([]domain.RetrievedDocument, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	reqBody := searchRequest{
		Search: query,
		Top:    opts.Top,
		Filter: r.buildFilter(opts),
	}
	if opts.SemanticRanking && r.semanticConfig != "" {
		reqBody.QueryType = "semantic"
		reqBody.SemanticConfiguration = r.semanticConfig
		if opts.SemanticCaptions {
			reqBody.Captions = "extractive"
		}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s", r.endpoint, r.index, r.apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if searchResp.Error != nil {
		return nil, fmt.Errorf("azure search error: %s", searchResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("azure search error (status %d): %s", resp.StatusCode, string(body))
	}

	docs := make([]domain.RetrievedDocument, 0, len(searchResp.Value))
	for _, hit := range searchResp.Value {
		doc := r.toDomain(hit)
		if err := doc.Validate(); err != nil {
			// Hits without an index key cannot be cited; skip them.
			continue
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// buildFilter combines the caller filter with the security group filter.
func (r *Retriever) buildFilter(opts domain.RetrievalOptions) string {
	filters := make([]string, 0, 2)
	if opts.Filter != "" {
		filters = append(filters, opts.Filter)
	}
	if len(opts.Groups) > 0 {
		quoted := make([]string, len(opts.Groups))
		for i, g := range opts.Groups {
			quoted[i] = "'" + strings.ReplaceAll(g, "'", "''") + "'"
		}
		filters = append(filters, fmt.Sprintf("groups/any(g: search.in(g, %s))", strings.Join(quoted, ",")))
	}
	return strings.Join(filters, " and ")
}

// toDomain maps a wire hit onto the domain type.
func (r *Retriever) toDomain(hit searchDocument) domain.RetrievedDocument {
	doc := domain.RetrievedDocument{
		ID:            hit.ID,
		Content:       hit.Content,
		SourcePage:    hit.SourcePage,
		SourceFile:    hit.SourceFile,
		Category:      hit.Category,
		StorageURL:    hit.StorageURL,
		Groups:        hit.Groups,
		Score:         hit.Score,
		RerankerScore: hit.RerankerScore,
	}

	if hit.Updated != "" {
		if ts, err := time.Parse(time.RFC3339, hit.Updated); err == nil {
			doc.UpdatedAt = ts
		}
	}

	for _, c := range hit.Captions {
		caption := domain.Caption{
			Text:       c.Text,
			Additional: c.Additional,
		}
		if c.Highlights != "" {
			caption.Highlights = []string{c.Highlights}
		}
		doc.Captions = append(doc.Captions, caption)
	}

	return doc
}

// Ping validates the index is reachable by requesting its statistics.
func (r *Retriever) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/indexes/%s/stats?api-version=%s", r.endpoint, r.index, r.apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("azure search: failed to create ping request: %w", err)
	}
	req.Header.Set("api-key", r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("azure search: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("azure search: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("azure search: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
