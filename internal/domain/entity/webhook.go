package entity

// JobAdderWebhookEvent is the payload JobAdder posts when an ad changes.
// Depending on the event type the ad identifier arrives in one of three
// fields; AdIdentifier picks the first one present.
type JobAdderWebhookEvent struct {
	Event      string `json:"event"`
	AdID       int    `json:"adId,omitempty"`
	ResourceID int    `json:"resourceId,omitempty"`
	ID         int    `json:"id,omitempty"`
}

// Known JobAdder webhook event types.
const (
	EventJobAdPosted  = "jobad_posted"
	EventJobAdExpired = "jobad_expired"
)

// AdIdentifier returns the ad ID carried by the event, or 0 when absent.
func (e *JobAdderWebhookEvent) AdIdentifier() int {
	if e.AdID != 0 {
		return e.AdID
	}
	if e.ResourceID != 0 {
		return e.ResourceID
	}
	return e.ID
}

// SanityWebhookDoc is the document payload delivered by the content store
// webhook. Type discriminates between job applications and lead documents.
type SanityWebhookDoc struct {
	ID        string     `json:"_id"`
	Type      string     `json:"_type"`
	JobSlug   string     `json:"jobSlug,omitempty"`
	FirstName string     `json:"firstName,omitempty"`
	LastName  string     `json:"lastName,omitempty"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Message   string     `json:"message,omitempty"`
	Resume    *ResumeRef `json:"resumeFile,omitempty"`
}

// Content store document types dispatched by the webhook handler.
const (
	DocTypeJobApplication = "jobApplication"
	DocTypeLead           = "lead"
)

// ResumeRef points at an uploaded resume binary on the content store CDN.
type ResumeRef struct {
	URL      string `json:"url"`
	Filename string `json:"originalFilename,omitempty"`
}
