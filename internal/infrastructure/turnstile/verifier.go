package turnstile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"zenpeople/internal/config"
)

// Verifier checks bot-verification tokens against the challenge provider.
type Verifier interface {
	// Verify returns nil when the token passes. A disabled verifier
	// accepts everything.
	Verify(ctx context.Context, token, remoteIP string) error
}

type verifier struct {
	config     *config.Config
	httpClient *http.Client
	logger     *zap.Logger
}

func NewVerifier(cfg *config.Config, logger *zap.Logger) Verifier {
	return &verifier{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (v *verifier) Verify(ctx context.Context, token, remoteIP string) error {
	if !v.config.Turnstile.Enabled {
		v.logger.Debug("Bot verification disabled, skipping check")
		return nil
	}

	form := url.Values{}
	form.Set("secret", v.config.Turnstile.SecretKey)
	form.Set("response", token)
	form.Set("remoteip", remoteIP)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.config.Turnstile.VerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create verification request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read verification response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("verification request failed: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("failed to unmarshal verification response: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("bot verification failed")
	}

	return nil
}
