package queue

import "zenpeople/internal/domain/entity"

// Task type names. Tasks carry the webhook-triggered work so failures are
// retried with backoff and land in the archived set instead of vanishing.
const (
	TaskTypeSyncAd             = "sync:ad"
	TaskTypeRemoveAd           = "sync:remove"
	TaskTypeForwardApplication = "application:forward"
)

// QueueName is the asynq queue all sync tasks run on.
const QueueName = "sync"

type SyncAdPayload struct {
	AdID int `json:"ad_id"`
}

type ForwardApplicationPayload struct {
	Document entity.SanityWebhookDoc `json:"document"`
}
