package usecase

import (
	"path/filepath"
	"regexp"
	"strings"

	"zenpeople/internal/domain/entity"
)

const (
	maxNameLength    = 120
	maxMessageLength = 5000
	maxFileSize      = 5 << 20 // 5 MiB
)

var (
	tagRe   = regexp.MustCompile(`<[^>]*>`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)
	// Australian landline/mobile numbers, with or without country code.
	auPhoneRe = regexp.MustCompile(`^(\+?61|0)[2-478]\d{8}$`)
)

var allowedResumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// sanitize strips HTML tags and trims whitespace from user input.
func sanitize(s string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(s, ""))
}

func validateName(name string) error {
	if name == "" {
		return entity.NewValidationError("name", "name is required")
	}
	if len(name) > maxNameLength {
		return entity.NewValidationError("name", "name is too long")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return entity.NewValidationError("email", "email is required")
	}
	if !emailRe.MatchString(email) {
		return entity.NewValidationError("email", "email address is invalid")
	}
	return nil
}

// validatePhone accepts Australian numbers; spaces and parentheses are
// stripped before matching. Empty is allowed - phone is optional on all
// forms.
func validatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	compact := strings.NewReplacer(" ", "", "(", "", ")", "", "-", "").Replace(phone)
	if !auPhoneRe.MatchString(compact) {
		return entity.NewValidationError("phone", "phone number is invalid")
	}
	return nil
}

func validateMessage(field, message string) error {
	if len(message) > maxMessageLength {
		return entity.NewValidationError(field, "message is too long")
	}
	return nil
}

func validateResumeFile(file *entity.FileUpload) error {
	if file == nil {
		return nil
	}
	if len(file.Content) == 0 {
		return entity.NewValidationError("file", "file is empty")
	}
	if len(file.Content) > maxFileSize {
		return entity.NewValidationError("file", "file exceeds the 5MB limit")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedResumeExtensions[ext] {
		return entity.NewValidationError("file", "file must be a PDF or Word document")
	}
	return nil
}
