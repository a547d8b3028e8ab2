package usecase

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"zenpeople/internal/config"
	"zenpeople/internal/domain/entity"
	"zenpeople/internal/infrastructure/mailer"
	"zenpeople/internal/infrastructure/turnstile"
)

// FormUsecase validates public form submissions and relays them to the
// notification mailbox. Nothing is persisted; a failed send fails the
// request.
type FormUsecase interface {
	SubmitContact(ctx context.Context, form *entity.ContactForm, remoteIP string) error
	SubmitQuote(ctx context.Context, form *entity.QuoteForm, remoteIP string) error
	SubmitResume(ctx context.Context, form *entity.ResumeForm, remoteIP string) error
	SubmitApplication(ctx context.Context, form *entity.ApplicationForm, remoteIP string) error
}

type formUsecase struct {
	config   *config.Config
	mailer   mailer.Mailer
	verifier turnstile.Verifier
	logger   *zap.Logger
}

func NewFormUsecase(cfg *config.Config, m mailer.Mailer, verifier turnstile.Verifier, logger *zap.Logger) FormUsecase {
	return &formUsecase{
		config:   cfg,
		mailer:   m,
		verifier: verifier,
		logger:   logger,
	}
}

func (u *formUsecase) SubmitContact(ctx context.Context, form *entity.ContactForm, remoteIP string) error {
	form.Name = sanitize(form.Name)
	form.Email = sanitize(form.Email)
	form.Phone = sanitize(form.Phone)
	form.Message = sanitize(form.Message)

	if err := u.validateCommon(ctx, form.Name, form.Email, form.Phone, form.Token, remoteIP); err != nil {
		return err
	}
	if err := validateMessage("message", form.Message); err != nil {
		return err
	}

	return u.notify(ctx, "New contact enquiry", form.Email, [][2]string{
		{"Name", form.Name},
		{"Email", form.Email},
		{"Phone", form.Phone},
		{"Message", form.Message},
	})
}

func (u *formUsecase) SubmitQuote(ctx context.Context, form *entity.QuoteForm, remoteIP string) error {
	form.Name = sanitize(form.Name)
	form.Company = sanitize(form.Company)
	form.Email = sanitize(form.Email)
	form.Phone = sanitize(form.Phone)
	form.Details = sanitize(form.Details)

	if err := u.validateCommon(ctx, form.Name, form.Email, form.Phone, form.Token, remoteIP); err != nil {
		return err
	}
	if err := validateMessage("details", form.Details); err != nil {
		return err
	}

	return u.notify(ctx, "New quote request", form.Email, [][2]string{
		{"Name", form.Name},
		{"Company", form.Company},
		{"Email", form.Email},
		{"Phone", form.Phone},
		{"Details", form.Details},
	})
}

func (u *formUsecase) SubmitResume(ctx context.Context, form *entity.ResumeForm, remoteIP string) error {
	form.Name = sanitize(form.Name)
	form.Email = sanitize(form.Email)
	form.Phone = sanitize(form.Phone)
	form.Message = sanitize(form.Message)

	if err := u.validateCommon(ctx, form.Name, form.Email, form.Phone, form.Token, remoteIP); err != nil {
		return err
	}
	if err := validateMessage("message", form.Message); err != nil {
		return err
	}
	if err := validateResumeFile(form.File); err != nil {
		return err
	}

	rows := [][2]string{
		{"Name", form.Name},
		{"Email", form.Email},
		{"Phone", form.Phone},
		{"Message", form.Message},
	}
	if form.File != nil {
		rows = append(rows, [2]string{"Resume", fmt.Sprintf("%s (%d bytes)", form.File.Filename, len(form.File.Content))})
	}

	return u.notify(ctx, "New resume submission", form.Email, rows)
}

func (u *formUsecase) SubmitApplication(ctx context.Context, form *entity.ApplicationForm, remoteIP string) error {
	form.Name = sanitize(form.Name)
	form.Email = sanitize(form.Email)
	form.Phone = sanitize(form.Phone)
	form.JobTitle = sanitize(form.JobTitle)
	form.CoverNote = sanitize(form.CoverNote)

	if err := u.validateCommon(ctx, form.Name, form.Email, form.Phone, form.Token, remoteIP); err != nil {
		return err
	}
	if form.JobTitle == "" {
		return entity.NewValidationError("jobTitle", "job title is required")
	}
	if err := validateMessage("coverNote", form.CoverNote); err != nil {
		return err
	}
	if err := validateResumeFile(form.File); err != nil {
		return err
	}

	rows := [][2]string{
		{"Name", form.Name},
		{"Email", form.Email},
		{"Phone", form.Phone},
		{"Job", form.JobTitle},
		{"Cover note", form.CoverNote},
	}
	if form.File != nil {
		rows = append(rows, [2]string{"Resume", fmt.Sprintf("%s (%d bytes)", form.File.Filename, len(form.File.Content))})
	}

	return u.notify(ctx, "New job application: "+form.JobTitle, form.Email, rows)
}

func (u *formUsecase) validateCommon(ctx context.Context, name, email, phone, token, remoteIP string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePhone(phone); err != nil {
		return err
	}

	if err := u.verifier.Verify(ctx, token, remoteIP); err != nil {
		u.logger.Warn("Bot verification rejected submission",
			zap.String("email", email),
			zap.Error(err),
		)
		return entity.NewValidationError("token", "verification failed")
	}

	return nil
}

func (u *formUsecase) notify(ctx context.Context, subject, replyTo string, rows [][2]string) error {
	email := &entity.Email{
		Subject: subject,
		HTML:    htmlTable(rows),
		ReplyTo: replyTo,
	}

	if err := u.mailer.Send(ctx, email); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	return nil
}

// htmlTable renders label/value rows as the notification email body. Values
// are escaped; sanitize has already stripped tags but escaping keeps the
// mail renderer safe regardless.
func htmlTable(rows [][2]string) string {
	var sb strings.Builder
	sb.WriteString(`<table cellpadding="6" border="1" style="border-collapse:collapse">`)
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		sb.WriteString("<tr><td><strong>")
		sb.WriteString(html.EscapeString(row[0]))
		sb.WriteString("</strong></td><td>")
		sb.WriteString(html.EscapeString(row[1]))
		sb.WriteString("</td></tr>")
	}
	sb.WriteString("</table>")
	return sb.String()
}
