package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"zenpeople/internal/config"
)

// UpstreamError is any non-2xx response from the content store API.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("sanity API error: status=%d, body=%s", e.Status, e.Body)
}

// Mutation is one operation in a mutate batch: a single-key map whose key is
// create, createOrReplace, patch, or delete.
type Mutation map[string]interface{}

// CreateOrReplace builds an idempotent full-document upsert mutation.
func CreateOrReplace(doc interface{}) Mutation {
	return Mutation{"createOrReplace": doc}
}

// Delete builds a delete-by-ID mutation.
func Delete(id string) Mutation {
	return Mutation{"delete": map[string]string{"id": id}}
}

// PatchSet builds a field-set patch mutation for one document.
func PatchSet(id string, fields map[string]interface{}) Mutation {
	return Mutation{"patch": map[string]interface{}{
		"id":  id,
		"set": fields,
	}}
}

// AssetRef identifies an uploaded binary asset.
type AssetRef struct {
	ID  string `json:"_id"`
	URL string `json:"url"`
}

// Client talks to the content store's query, mutate, and asset APIs. Batching
// of mutations is the caller's responsibility; this client sends whatever it
// is given in one call.
type Client interface {
	// Query runs a GROQ query with JSON-encoded $params and unmarshals the
	// result into result.
	Query(ctx context.Context, query string, params map[string]interface{}, result interface{}) error

	// Mutate submits a batch of mutations in one call.
	Mutate(ctx context.Context, mutations []Mutation) error

	// UploadAsset uploads a binary file asset and returns its reference.
	UploadAsset(ctx context.Context, data []byte, filename, contentType string) (*AssetRef, error)

	// DownloadAsset fetches a binary from the asset CDN.
	DownloadAsset(ctx context.Context, assetURL string) ([]byte, error)
}

type client struct {
	config     *config.Config
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg *config.Config, logger *zap.Logger) Client {
	return &client{
		config: cfg,
		baseURL: fmt.Sprintf("https://%s.api.sanity.io/%s",
			cfg.Sanity.ProjectID, cfg.Sanity.APIVersion),
		httpClient: &http.Client{
			Timeout: cfg.Sanity.Timeout,
		},
		logger: logger,
	}
}

func (c *client) Query(ctx context.Context, query string, params map[string]interface{}, result interface{}) error {
	values := url.Values{}
	values.Set("query", query)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode query param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	queryURL := fmt.Sprintf("%s/data/query/%s?%s", c.baseURL, c.config.Sanity.Dataset, values.Encode())

	respBody, err := c.do(ctx, http.MethodGet, queryURL, nil, "")
	if err != nil {
		return err
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal query response: %w", err)
	}

	if result != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("failed to unmarshal query result: %w", err)
		}
	}

	return nil
}

func (c *client) Mutate(ctx context.Context, mutations []Mutation) error {
	if len(mutations) == 0 {
		return nil
	}

	body, err := json.Marshal(map[string]interface{}{"mutations": mutations})
	if err != nil {
		return fmt.Errorf("failed to marshal mutations: %w", err)
	}

	mutateURL := fmt.Sprintf("%s/data/mutate/%s", c.baseURL, c.config.Sanity.Dataset)

	if _, err := c.do(ctx, http.MethodPost, mutateURL, body, "application/json"); err != nil {
		return err
	}

	c.logger.Debug("Mutations applied", zap.Int("count", len(mutations)))

	return nil
}

func (c *client) UploadAsset(ctx context.Context, data []byte, filename, contentType string) (*AssetRef, error) {
	uploadURL := fmt.Sprintf("%s/assets/files/%s?filename=%s",
		c.baseURL, c.config.Sanity.Dataset, url.QueryEscape(filename))

	respBody, err := c.do(ctx, http.MethodPost, uploadURL, data, contentType)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Document AssetRef `json:"document"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal asset response: %w", err)
	}

	c.logger.Info("Asset uploaded",
		zap.String("filename", filename),
		zap.String("asset_id", envelope.Document.ID),
	)

	return &envelope.Document, nil
}

func (c *client) DownloadAsset(ctx context.Context, assetURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset body: %w", err)
	}

	return content, nil
}

func (c *client) do(ctx context.Context, method, fullURL string, body []byte, contentType string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Sanity.Token)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("Sanity API response",
		zap.String("method", method),
		zap.String("url", fullURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(startTime)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}
