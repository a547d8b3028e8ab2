package jobadder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"zenpeople/internal/config"
	"zenpeople/internal/domain/entity"
	"zenpeople/internal/domain/repository"
)

const (
	// TokenName keys the singleton token record in the token store.
	TokenName = "jobadder"

	// expiryMargin is how close to expiry a stored access token may be
	// before a request proactively refreshes it.
	expiryMargin = 60 * time.Second

	maxBodyLogLength = 500
)

// Client is the authenticated JobAdder job board API client. It owns the
// OAuth token lifecycle: proactive refresh near expiry and a single
// refresh-and-retry on 401.
type Client interface {
	// AuthorizationURL builds the OAuth authorize redirect. The state
	// value is caller-supplied and must be verified on callback.
	AuthorizationURL(redirectURI, state string) string

	// ExchangeCode trades an authorization code for a token pair and
	// persists it.
	ExchangeCode(ctx context.Context, code, redirectURI string) (*entity.TokenRecord, error)

	// Refresh trades the stored refresh token for a new token pair and
	// persists it. Fails with AuthError when no refresh token is stored.
	Refresh(ctx context.Context) (*entity.TokenRecord, error)

	// ListAds follows pagination links and returns every ad currently
	// published on the job board. Partial results are never returned.
	ListAds(ctx context.Context) ([]entity.Ad, error)

	// GetAd fetches a single ad. Returns ErrAdNotFound on 404.
	GetAd(ctx context.Context, adID int) (*entity.Ad, error)

	// SubmitApplication creates an application against an ad and returns
	// the upstream application ID.
	SubmitApplication(ctx context.Context, adID int, candidate entity.Candidate) (int64, error)

	// AttachResume uploads a resume against an already-created
	// application.
	AttachResume(ctx context.Context, adID int, applicationID int64, file entity.FileUpload) error
}

type client struct {
	config     *config.Config
	tokens     repository.TokenRepository
	httpClient *http.Client
	logger     *zap.Logger

	// refreshMu single-flights token refreshes so concurrent near-expiry
	// requests share one refresh call.
	refreshMu sync.Mutex
}

func NewClient(cfg *config.Config, tokens repository.TokenRepository, logger *zap.Logger) Client {
	return &client{
		config: cfg,
		tokens: tokens,
		httpClient: &http.Client{
			Timeout: cfg.JobAdder.Timeout,
		},
		logger: logger,
	}
}

func (c *client) AuthorizationURL(redirectURI, state string) string {
	params := url.Values{}
	params.Set("client_id", c.config.JobAdder.ClientID)
	params.Set("response_type", "code")
	params.Set("scope", "read write offline_access")
	params.Set("redirect_uri", redirectURI)
	params.Set("state", state)

	return c.config.JobAdder.AuthBaseURL + "/connect/authorize?" + params.Encode()
}

func (c *client) ExchangeCode(ctx context.Context, code, redirectURI string) (*entity.TokenRecord, error) {
	c.logger.Info("Exchanging authorization code for tokens")

	form := url.Values{}
	form.Set("client_id", c.config.JobAdder.ClientID)
	form.Set("client_secret", c.config.JobAdder.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)

	record, err := c.requestToken(ctx, form)
	if err != nil {
		return nil, &AuthError{Reason: "failed to exchange code", Err: err}
	}

	if err := c.tokens.Save(ctx, TokenName, record); err != nil {
		return nil, fmt.Errorf("failed to store tokens: %w", err)
	}

	c.logger.Info("Successfully exchanged code for tokens",
		zap.Time("expires_at", record.ExpiresAt),
	)

	return record, nil
}

func (c *client) Refresh(ctx context.Context) (*entity.TokenRecord, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	return c.refreshLocked(ctx)
}

// refreshLocked performs the refresh; refreshMu must be held.
func (c *client) refreshLocked(ctx context.Context) (*entity.TokenRecord, error) {
	record, err := c.tokens.Get(ctx, TokenName)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored token: %w", err)
	}
	if record == nil || record.RefreshToken == "" {
		return nil, &AuthError{Reason: "no refresh token stored, re-authorization required"}
	}

	c.logger.Info("Refreshing access token")

	form := url.Values{}
	form.Set("client_id", c.config.JobAdder.ClientID)
	form.Set("client_secret", c.config.JobAdder.ClientSecret)
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", record.RefreshToken)

	refreshed, err := c.requestToken(ctx, form)
	if err != nil {
		return nil, &AuthError{Reason: "failed to refresh token", Err: err}
	}

	if err := c.tokens.Save(ctx, TokenName, refreshed); err != nil {
		return nil, fmt.Errorf("failed to store refreshed tokens: %w", err)
	}

	c.logger.Info("Successfully refreshed tokens",
		zap.Time("expires_at", refreshed.ExpiresAt),
	)

	return refreshed, nil
}

// tokenResponse is the OAuth2 token endpoint response.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // seconds
	RefreshToken string `json:"refresh_token"`
}

func (c *client) requestToken(ctx context.Context, form url.Values) (*entity.TokenRecord, error) {
	tokenURL := c.config.JobAdder.AuthBaseURL + "/connect/token"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Info("Token endpoint response",
		zap.String("grant_type", form.Get("grant_type")),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token request failed: status=%d, body=%s", resp.StatusCode, truncateString(string(respBody), maxBodyLogLength))
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(respBody, &tokenResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token response: %w", err)
	}

	return &entity.TokenRecord{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
	}, nil
}

// accessToken returns a usable bearer token, refreshing proactively when the
// stored token expires within the margin.
func (c *client) accessToken(ctx context.Context) (string, error) {
	record, err := c.tokens.Get(ctx, TokenName)
	if err != nil {
		return "", fmt.Errorf("failed to read stored token: %w", err)
	}
	if record == nil || record.AccessToken == "" {
		return "", &AuthError{Reason: "no token stored, authorization required"}
	}

	if time.Until(record.ExpiresAt) >= expiryMargin {
		return record.AccessToken, nil
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Re-read under the lock: another caller may have refreshed already.
	record, err = c.tokens.Get(ctx, TokenName)
	if err != nil {
		return "", fmt.Errorf("failed to read stored token: %w", err)
	}
	if record != nil && time.Until(record.ExpiresAt) >= expiryMargin {
		return record.AccessToken, nil
	}

	refreshed, err := c.refreshLocked(ctx)
	if err != nil {
		return "", err
	}
	return refreshed.AccessToken, nil
}

// doJSON performs an authenticated JSON request against an absolute URL. On
// 401 it refreshes once and retries exactly once; whatever the second
// attempt yields is returned without further retry.
func (c *client) doJSON(ctx context.Context, method, fullURL string, body, result interface{}) error {
	var jsonBody []byte
	if body != nil {
		var err error
		jsonBody, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	build := func() (*http.Request, error) {
		var reader io.Reader
		if jsonBody != nil {
			reader = bytes.NewReader(jsonBody)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	return c.doAuthenticated(ctx, build, result)
}

// doAuthenticated runs one request plus at most one refresh-and-retry.
func (c *client) doAuthenticated(ctx context.Context, build func() (*http.Request, error), result interface{}) error {
	status, respBody, err := c.attempt(ctx, build)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		c.logger.Info("Received 401 Unauthorized, attempting to refresh token")

		if _, err := c.Refresh(ctx); err != nil {
			return err
		}

		c.logger.Info("Token refreshed, retrying request")
		status, respBody, err = c.attempt(ctx, build)
		if err != nil {
			return err
		}
	}

	if status < 200 || status >= 300 {
		return &UpstreamError{Status: status, Body: truncateString(string(respBody), maxBodyLogLength)}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

func (c *client) attempt(ctx context.Context, build func() (*http.Request, error)) (int, []byte, error) {
	req, err := build()
	if err != nil {
		return 0, nil, err
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("JobAdder API response",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(startTime)),
		zap.String("body", truncateString(string(respBody), maxBodyLogLength)),
	)

	return resp.StatusCode, respBody, nil
}

func (c *client) boardURL(parts ...string) string {
	u := fmt.Sprintf("%s/jobboards/%s/ads", c.config.JobAdder.APIBaseURL, c.config.JobAdder.BoardID)
	for _, p := range parts {
		u += "/" + p
	}
	return u
}

func (c *client) ListAds(ctx context.Context) ([]entity.Ad, error) {
	var ads []entity.Ad

	next := c.boardURL()
	for next != "" {
		var page entity.AdListPage
		if err := c.doJSON(ctx, http.MethodGet, next, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list ads: %w", err)
		}

		ads = append(ads, page.Items...)
		next = page.Links.Next
	}

	c.logger.Info("Listed job board ads", zap.Int("count", len(ads)))

	return ads, nil
}

func (c *client) GetAd(ctx context.Context, adID int) (*entity.Ad, error) {
	var ad entity.Ad
	err := c.doJSON(ctx, http.MethodGet, c.boardURL(fmt.Sprintf("%d", adID)), nil, &ad)
	if err != nil {
		var upstream *UpstreamError
		if errors.As(err, &upstream) && upstream.Status == http.StatusNotFound {
			return nil, fmt.Errorf("ad %d: %w", adID, ErrAdNotFound)
		}
		return nil, fmt.Errorf("failed to get ad %d: %w", adID, err)
	}
	return &ad, nil
}

func (c *client) SubmitApplication(ctx context.Context, adID int, candidate entity.Candidate) (int64, error) {
	c.logger.Info("Submitting application",
		zap.Int("ad_id", adID),
		zap.String("email", candidate.Email),
	)

	var receipt entity.ApplicationReceipt
	url := c.boardURL(fmt.Sprintf("%d", adID), "applications")
	if err := c.doJSON(ctx, http.MethodPost, url, candidate, &receipt); err != nil {
		return 0, fmt.Errorf("failed to submit application for ad %d: %w", adID, err)
	}

	c.logger.Info("Application submitted",
		zap.Int("ad_id", adID),
		zap.Int64("application_id", receipt.ApplicationID),
	)

	return receipt.ApplicationID, nil
}

func (c *client) AttachResume(ctx context.Context, adID int, applicationID int64, file entity.FileUpload) error {
	c.logger.Info("Attaching resume",
		zap.Int("ad_id", adID),
		zap.Int64("application_id", applicationID),
		zap.String("filename", file.Filename),
		zap.Int("size_bytes", len(file.Content)),
	)

	fullURL := c.boardURL(fmt.Sprintf("%d", adID), "applications", fmt.Sprintf("%d", applicationID), "attachments", "resume")

	build := func() (*http.Request, error) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)

		part, err := writer.CreateFormFile("fileData", file.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, fmt.Errorf("failed to write file content: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("failed to close multipart writer: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, &buf)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	if err := c.doAuthenticated(ctx, build, nil); err != nil {
		return fmt.Errorf("failed to attach resume to application %d: %w", applicationID, err)
	}

	return nil
}

// truncateString truncates a string if it exceeds maxLength
func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength] + fmt.Sprintf("... [truncated, total %d chars]", len(s))
}
