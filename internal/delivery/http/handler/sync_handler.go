package handler

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"zenpeople/internal/config"
	"zenpeople/internal/domain/entity"
	"zenpeople/internal/usecase"
)

// SyncHandler exposes the manual full-sync trigger used by deploy hooks
// and operators.
type SyncHandler struct {
	sync   usecase.SyncUsecase
	secret string
	logger *zap.Logger
}

func NewSyncHandler(syncUsecase usecase.SyncUsecase, cfg *config.Config, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{
		sync:   syncUsecase,
		secret: cfg.Sync.TriggerSecret,
		logger: logger,
	}
}

func (h *SyncHandler) authorized(c *fiber.Ctx) bool {
	if h.secret == "" {
		return false
	}
	auth := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.secret)) == 1
}

// TriggerSync godoc
// @Summary Run a full job sync
// @Description Upserts every live ad and removes stale job documents
// @Tags sync
// @Produce json
// @Security BearerAuth
// @Success 200 {object} entity.APIResponse
// @Failure 401 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/sync [post]
func (h *SyncHandler) TriggerSync(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if !h.authorized(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(
			entity.NewErrorResponse("UNAUTHORIZED", "Invalid or missing trigger secret"),
		)
	}

	h.logger.Info("Manual sync triggered", zap.String("ip", c.IP()))

	result, err := h.sync.SyncAll(ctx)
	if err != nil {
		h.logger.Error("Manual sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", "Sync failed"),
		)
	}

	return c.JSON(entity.NewSuccessResponse(result, "Sync complete"))
}
