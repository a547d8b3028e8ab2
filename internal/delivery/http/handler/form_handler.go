package handler

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"zenpeople/internal/domain/entity"
	"zenpeople/internal/usecase"
)

// FormHandler relays public website forms to the notification mailbox.
// Contact and quote arrive as JSON; resume and application are multipart
// because they carry a file.
type FormHandler struct {
	forms  usecase.FormUsecase
	logger *zap.Logger
}

func NewFormHandler(forms usecase.FormUsecase, logger *zap.Logger) *FormHandler {
	return &FormHandler{
		forms:  forms,
		logger: logger,
	}
}

func (h *FormHandler) respond(c *fiber.Ctx, err error, okMessage string) error {
	if err == nil {
		return c.JSON(entity.NewSuccessResponse(nil, okMessage))
	}

	var vErr *entity.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("VALIDATION_ERROR", vErr.Message),
		)
	}

	h.logger.Error("Form submission failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(
		entity.NewErrorResponse("INTERNAL_ERROR", "Failed to process submission"),
	)
}

func readUpload(header *multipart.FileHeader) (*entity.FileUpload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &entity.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

// Contact godoc
// @Summary Submit the contact form
// @Tags forms
// @Accept json
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/forms/contact [post]
func (h *FormHandler) Contact(c *fiber.Ctx) error {
	var form entity.ContactForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}
	return h.respond(c, h.forms.SubmitContact(c.UserContext(), &form, c.IP()), "Message sent")
}

// Quote godoc
// @Summary Submit the request-a-quote form
// @Tags forms
// @Accept json
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/forms/quote [post]
func (h *FormHandler) Quote(c *fiber.Ctx) error {
	var form entity.QuoteForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}
	return h.respond(c, h.forms.SubmitQuote(c.UserContext(), &form, c.IP()), "Quote request sent")
}

// Resume godoc
// @Summary Submit a general resume
// @Tags forms
// @Accept mpfd
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/forms/resume [post]
func (h *FormHandler) Resume(c *fiber.Ctx) error {
	form := entity.ResumeForm{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Phone:   c.FormValue("phone"),
		Message: c.FormValue("message"),
		Token:   c.FormValue("token"),
	}

	if header, err := c.FormFile("resume"); err == nil {
		upload, err := readUpload(header)
		if err != nil {
			h.logger.Error("Failed to read resume upload", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(
				entity.NewErrorResponse("BAD_REQUEST", "Could not read uploaded file"),
			)
		}
		form.File = upload
	}

	return h.respond(c, h.forms.SubmitResume(c.UserContext(), &form, c.IP()), "Resume submitted")
}

// Application godoc
// @Summary Submit a job application form
// @Tags forms
// @Accept mpfd
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/forms/application [post]
func (h *FormHandler) Application(c *fiber.Ctx) error {
	form := entity.ApplicationForm{
		Name:      c.FormValue("name"),
		Email:     c.FormValue("email"),
		Phone:     c.FormValue("phone"),
		JobTitle:  c.FormValue("jobTitle"),
		CoverNote: c.FormValue("coverNote"),
		Token:     c.FormValue("token"),
	}

	if header, err := c.FormFile("resume"); err == nil {
		upload, err := readUpload(header)
		if err != nil {
			h.logger.Error("Failed to read resume upload", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(
				entity.NewErrorResponse("BAD_REQUEST", "Could not read uploaded file"),
			)
		}
		form.File = upload
	}

	return h.respond(c, h.forms.SubmitApplication(c.UserContext(), &form, c.IP()), "Application submitted")
}
