package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"zenpeople/internal/config"
	"zenpeople/internal/domain/entity"
)

// Mailer sends notification emails through the email provider's HTTP API.
type Mailer interface {
	Send(ctx context.Context, email *entity.Email) error
}

type mailer struct {
	config     *config.Config
	httpClient *http.Client
	logger     *zap.Logger
}

func NewMailer(cfg *config.Config, logger *zap.Logger) Mailer {
	timeout := cfg.Mailer.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &mailer{
		config: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (m *mailer) Send(ctx context.Context, email *entity.Email) error {
	if email.From == "" {
		email.From = m.config.Mailer.From
	}
	if email.To == "" {
		email.To = m.config.Mailer.To
	}

	reqBody, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	sendURL := m.config.Mailer.BaseURL + "/emails"

	m.logger.Info("Sending notification email",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.config.Mailer.APIKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read email response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email request failed: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	m.logger.Info("Notification email sent",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
	)

	return nil
}
