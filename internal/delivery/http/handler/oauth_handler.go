package handler

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"zenpeople/internal/config"
	"zenpeople/internal/domain/entity"
	"zenpeople/internal/infrastructure/jobadder"
	"zenpeople/internal/infrastructure/redis"
)

const (
	stateKeyPrefix = "jobadder:oauth:state:"
	stateTTL       = 10 * time.Minute
)

// OAuthHandler drives the one-time JobAdder authorization handshake. Once
// the callback stores a token pair the client refreshes it on its own.
type OAuthHandler struct {
	ats    jobadder.Client
	redis  *redis.RedisClient
	cfg    *config.Config
	logger *zap.Logger
}

func NewOAuthHandler(ats jobadder.Client, rc *redis.RedisClient, cfg *config.Config, logger *zap.Logger) *OAuthHandler {
	return &OAuthHandler{
		ats:    ats,
		redis:  rc,
		cfg:    cfg,
		logger: logger,
	}
}

func (h *OAuthHandler) redirectURI() string {
	return h.cfg.App.BaseURL + "/callback"
}

// Authorize godoc
// @Summary Start JobAdder authorization
// @Description Redirects the operator to the JobAdder consent screen
// @Tags oauth
// @Success 302 "Redirect to JobAdder"
// @Failure 500 {object} entity.APIResponse
// @Router /authorize [get]
func (h *OAuthHandler) Authorize(c *fiber.Ctx) error {
	ctx := c.UserContext()

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		h.logger.Error("Failed to generate OAuth state", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", "Failed to start authorization"),
		)
	}
	state := hex.EncodeToString(buf)

	if err := h.redis.Set(ctx, stateKeyPrefix+state, "1", stateTTL); err != nil {
		h.logger.Error("Failed to store OAuth state", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", "Failed to start authorization"),
		)
	}

	url := h.ats.AuthorizationURL(h.redirectURI(), state)
	h.logger.Info("Redirecting to JobAdder authorization", zap.String("state", state))
	return c.Redirect(url, fiber.StatusFound)
}

// Callback godoc
// @Summary JobAdder authorization callback
// @Description Exchanges the authorization code for a token pair and stores it
// @Tags oauth
// @Param code query string true "Authorization code"
// @Param state query string true "State previously issued by /authorize"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /callback [get]
func (h *OAuthHandler) Callback(c *fiber.Ctx) error {
	ctx := c.UserContext()

	code := c.Query("code")
	state := c.Query("state")

	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Authorization code is required"),
		)
	}
	if state == "" {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "State is required"),
		)
	}

	// GetDel makes the state single-use.
	if _, err := h.redis.GetDel(ctx, stateKeyPrefix+state); err != nil {
		h.logger.Warn("OAuth callback with unknown state", zap.String("state", state))
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Unknown or expired state"),
		)
	}

	record, err := h.ats.ExchangeCode(ctx, code, h.redirectURI())
	if err != nil {
		h.logger.Error("Failed to exchange authorization code", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", "Failed to exchange authorization code"),
		)
	}

	h.logger.Info("JobAdder authorization complete",
		zap.Time("expires_at", record.ExpiresAt),
	)

	return c.JSON(entity.NewSuccessResponse(map[string]interface{}{
		"expires_at": record.ExpiresAt.Format(time.RFC3339),
	}, fmt.Sprintf("Authorization complete, token valid until %s", record.ExpiresAt.Format(time.RFC3339))))
}
