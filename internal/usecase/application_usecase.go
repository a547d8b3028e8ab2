package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"zenpeople/internal/domain/entity"
	"zenpeople/internal/infrastructure/jobadder"
	"zenpeople/internal/infrastructure/sanity"
	"zenpeople/internal/mapper"
)

// ApplicationUsecase forwards job applications captured in the content store
// to the ATS. Only ATS-sourced jobs (sync-prefixed document IDs) receive
// forwarded applications; locally-authored jobs are skipped.
type ApplicationUsecase interface {
	Forward(ctx context.Context, doc *entity.SanityWebhookDoc) error
}

type applicationUsecase struct {
	ats    jobadder.Client
	store  sanity.Client
	logger *zap.Logger
}

func NewApplicationUsecase(ats jobadder.Client, store sanity.Client, logger *zap.Logger) ApplicationUsecase {
	return &applicationUsecase{
		ats:    ats,
		store:  store,
		logger: logger,
	}
}

func (u *applicationUsecase) Forward(ctx context.Context, doc *entity.SanityWebhookDoc) error {
	if doc.JobSlug == "" {
		return entity.NewValidationError("jobSlug", "missing job slug on application document")
	}

	u.logger.Info("Forwarding job application",
		zap.String("document_id", doc.ID),
		zap.String("job_slug", doc.JobSlug),
		zap.String("email", doc.Email),
	)

	jobID, err := u.resolveJobDocumentID(ctx, doc.JobSlug)
	if err != nil {
		return err
	}

	adID, ok := mapper.AdIDFromDocumentID(jobID)
	if !ok {
		// Locally-authored job; nothing to forward upstream.
		u.logger.Info("Job is not ATS-sourced, skipping application forward",
			zap.String("job_document_id", jobID),
			zap.String("job_slug", doc.JobSlug),
		)
		return nil
	}

	applicationID, err := u.ats.SubmitApplication(ctx, adID, candidateFromDoc(doc))
	if err != nil {
		return fmt.Errorf("failed to forward application for ad %d: %w", adID, err)
	}

	// The application is the durable side effect; the resume attachment is
	// best effort and never rolls it back.
	if doc.Resume != nil && doc.Resume.URL != "" {
		u.attachResume(ctx, adID, applicationID, doc.Resume)
	}

	u.logger.Info("Application forwarded",
		zap.Int("ad_id", adID),
		zap.Int64("application_id", applicationID),
	)

	return nil
}

func (u *applicationUsecase) resolveJobDocumentID(ctx context.Context, slug string) (string, error) {
	var jobID string
	query := `*[_type == $type && slug.current == $slug][0]._id`
	params := map[string]interface{}{
		"type": mapper.DocumentType,
		"slug": slug,
	}
	if err := u.store.Query(ctx, query, params, &jobID); err != nil {
		return "", fmt.Errorf("failed to resolve job for slug %q: %w", slug, err)
	}
	if jobID == "" {
		return "", entity.NewValidationError("jobSlug", fmt.Sprintf("no job found for slug %q", slug))
	}
	return jobID, nil
}

func (u *applicationUsecase) attachResume(ctx context.Context, adID int, applicationID int64, resume *entity.ResumeRef) {
	content, err := u.store.DownloadAsset(ctx, resume.URL)
	if err != nil {
		u.logger.Error("Failed to download resume, application kept without attachment",
			zap.Int64("application_id", applicationID),
			zap.String("url", resume.URL),
			zap.Error(err),
		)
		return
	}

	filename := resume.Filename
	if filename == "" {
		filename = "resume.pdf"
	}

	file := entity.FileUpload{Filename: filename, Content: content}
	if err := u.ats.AttachResume(ctx, adID, applicationID, file); err != nil {
		u.logger.Error("Failed to attach resume, application kept without attachment",
			zap.Int64("application_id", applicationID),
			zap.Error(err),
		)
	}
}

// candidateFromDoc builds the ATS candidate payload, splitting a single name
// field when first/last are absent.
func candidateFromDoc(doc *entity.SanityWebhookDoc) entity.Candidate {
	first, last := doc.FirstName, doc.LastName
	if first == "" && doc.Name != "" {
		first = doc.Name
		if idx := strings.LastIndex(doc.Name, " "); idx > 0 {
			first = doc.Name[:idx]
			last = doc.Name[idx+1:]
		}
	}
	return entity.Candidate{
		FirstName: first,
		LastName:  last,
		Email:     doc.Email,
		Phone:     doc.Phone,
	}
}
