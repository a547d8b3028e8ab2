package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"zenpeople/internal/config"
	"zenpeople/internal/domain/entity"
	"zenpeople/internal/infrastructure/mailer"
	"zenpeople/internal/infrastructure/sanity"
	"zenpeople/internal/queue"
)

// WebhookHandler receives change notifications from JobAdder and from the
// content store. Verified events are put on the queue; the 200 is only
// returned once the task is durably enqueued, so a failed enqueue makes
// the sender retry the delivery.
type WebhookHandler struct {
	enqueuer queue.Enqueuer
	mail     mailer.Mailer
	cfg      *config.Config
	logger   *zap.Logger
}

func NewWebhookHandler(enqueuer queue.Enqueuer, mail mailer.Mailer, cfg *config.Config, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		enqueuer: enqueuer,
		mail:     mail,
		cfg:      cfg,
		logger:   logger,
	}
}

func (h *WebhookHandler) verifyJobAdderSignature(c *fiber.Ctx) bool {
	secret := h.cfg.JobAdder.WebhookSecret
	if secret == "" {
		return false
	}

	header := c.Get("x-jobadder-signature")
	if header == "" {
		header = c.Get("x-webhook-signature")
	}
	if header == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(c.Body())
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(header))
}

// JobAdderCallback godoc
// @Summary JobAdder job ad webhook
// @Description Receives posted/expired events and queues an incremental sync
// @Tags webhook
// @Accept json
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 401 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /webhook/jobadder [post]
func (h *WebhookHandler) JobAdderCallback(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if !h.verifyJobAdderSignature(c) {
		h.logger.Warn("JobAdder webhook with invalid signature", zap.String("ip", c.IP()))
		return c.Status(fiber.StatusUnauthorized).JSON(
			entity.NewErrorResponse("UNAUTHORIZED", "Invalid webhook signature"),
		)
	}

	var event entity.JobAdderWebhookEvent
	if err := json.Unmarshal(c.Body(), &event); err != nil {
		h.logger.Error("Failed to parse JobAdder webhook payload", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid webhook payload"),
		)
	}

	adID := event.AdIdentifier()
	if adID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Missing ad identifier"),
		)
	}

	var err error
	switch event.Event {
	case entity.EventJobAdPosted:
		err = h.enqueuer.EnqueueSyncAd(ctx, adID)
	case entity.EventJobAdExpired:
		err = h.enqueuer.EnqueueRemoveAd(ctx, adID)
	default:
		// Unknown events are acknowledged so JobAdder stops resending them.
		h.logger.Info("Ignoring unhandled JobAdder event",
			zap.String("event", event.Event),
			zap.Int("ad_id", adID),
		)
		return c.JSON(entity.NewSuccessResponse(nil, "Event ignored"))
	}

	if err != nil {
		h.logger.Error("Failed to enqueue JobAdder event",
			zap.String("event", event.Event),
			zap.Int("ad_id", adID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", "Failed to queue event"),
		)
	}

	return c.JSON(entity.NewSuccessResponse(map[string]interface{}{
		"event": event.Event,
		"ad_id": adID,
	}, "Event queued"))
}

// SanityCallback godoc
// @Summary Content store document webhook
// @Description Dispatches new job applications to JobAdder and lead documents
//
//	to the notification mailbox
//
// @Tags webhook
// @Accept json
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 401 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /webhook/sanity [post]
func (h *WebhookHandler) SanityCallback(c *fiber.Ctx) error {
	ctx := c.UserContext()

	header := c.Get(sanity.SignatureHeader)
	if !sanity.VerifySignature(h.cfg.Sanity.WebhookSecret, c.Body(), header) {
		h.logger.Warn("Content store webhook with invalid signature", zap.String("ip", c.IP()))
		return c.Status(fiber.StatusUnauthorized).JSON(
			entity.NewErrorResponse("UNAUTHORIZED", "Invalid webhook signature"),
		)
	}

	var doc entity.SanityWebhookDoc
	if err := json.Unmarshal(c.Body(), &doc); err != nil {
		h.logger.Error("Failed to parse content store webhook payload", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid webhook payload"),
		)
	}

	switch doc.Type {
	case entity.DocTypeJobApplication:
		if err := h.enqueuer.EnqueueForwardApplication(ctx, &doc); err != nil {
			h.logger.Error("Failed to enqueue application forward",
				zap.String("document_id", doc.ID),
				zap.Error(err),
			)
			return c.Status(fiber.StatusInternalServerError).JSON(
				entity.NewErrorResponse("INTERNAL_ERROR", "Failed to queue application"),
			)
		}
		return c.JSON(entity.NewSuccessResponse(map[string]string{
			"document_id": doc.ID,
		}, "Application queued"))

	case entity.DocTypeLead:
		h.notifyLead(c, &doc)
		return c.JSON(entity.NewSuccessResponse(map[string]string{
			"document_id": doc.ID,
		}, "Lead notified"))

	default:
		h.logger.Info("Ignoring unhandled content store document",
			zap.String("type", doc.Type),
			zap.String("document_id", doc.ID),
		)
		return c.JSON(entity.NewSuccessResponse(nil, "Document ignored"))
	}
}

// notifyLead emails the team about a new lead document. Delivery failure
// is logged but not surfaced: the lead already exists in the content
// store, a retried webhook would only duplicate the email.
func (h *WebhookHandler) notifyLead(c *fiber.Ctx, doc *entity.SanityWebhookDoc) {
	body := fmt.Sprintf(
		"<h2>New lead</h2><p><strong>Name:</strong> %s<br><strong>Email:</strong> %s<br><strong>Phone:</strong> %s</p><p>%s</p>",
		html.EscapeString(doc.Name),
		html.EscapeString(doc.Email),
		html.EscapeString(doc.Phone),
		html.EscapeString(doc.Message),
	)

	err := h.mail.Send(c.UserContext(), &entity.Email{
		Subject: "New website lead: " + doc.Name,
		HTML:    body,
		ReplyTo: doc.Email,
	})
	if err != nil {
		h.logger.Error("Failed to send lead notification",
			zap.String("document_id", doc.ID),
			zap.Error(err),
		)
	}
}
