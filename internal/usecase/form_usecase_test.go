package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"zenpeople/internal/config"
	"zenpeople/internal/domain/entity"
)

type fakeMailer struct {
	sent    []*entity.Email
	sendErr error
}

func (f *fakeMailer) Send(ctx context.Context, email *entity.Email) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, email)
	return nil
}

type fakeVerifier struct {
	rejectErr error
	tokens    []string
}

func (f *fakeVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	f.tokens = append(f.tokens, token)
	return f.rejectErr
}

func newFormForTest(m *fakeMailer, v *fakeVerifier) FormUsecase {
	return NewFormUsecase(&config.Config{}, m, v, zap.NewNop())
}

func validContact() *entity.ContactForm {
	return &entity.ContactForm{
		Name:    "Jamie Curtis",
		Email:   "jamie@example.com",
		Phone:   "0412 345 678",
		Message: "Looking for glazier work.",
		Token:   "tok",
	}
}

func TestSubmitContact(t *testing.T) {
	m := &fakeMailer{}
	v := &fakeVerifier{}

	err := newFormForTest(m, v).SubmitContact(context.Background(), validContact(), "1.2.3.4")

	require.NoError(t, err)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "New contact enquiry", m.sent[0].Subject)
	assert.Equal(t, "jamie@example.com", m.sent[0].ReplyTo)
	assert.Contains(t, m.sent[0].HTML, "Looking for glazier work.")
	assert.Equal(t, []string{"tok"}, v.tokens)
}

func TestSubmitContactValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*entity.ContactForm)
		wantField string
	}{
		{name: "missing name", mutate: func(f *entity.ContactForm) { f.Name = "" }, wantField: "name"},
		{name: "name only tags", mutate: func(f *entity.ContactForm) { f.Name = "<b></b>" }, wantField: "name"},
		{name: "missing email", mutate: func(f *entity.ContactForm) { f.Email = "" }, wantField: "email"},
		{name: "bad email", mutate: func(f *entity.ContactForm) { f.Email = "not-an-email" }, wantField: "email"},
		{name: "bad phone", mutate: func(f *entity.ContactForm) { f.Phone = "12345" }, wantField: "phone"},
		{name: "overlong message", mutate: func(f *entity.ContactForm) { f.Message = strings.Repeat("x", 5001) }, wantField: "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMailer{}
			form := validContact()
			tt.mutate(form)

			err := newFormForTest(m, &fakeVerifier{}).SubmitContact(context.Background(), form, "1.2.3.4")

			var vErr *entity.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Empty(t, m.sent)
		})
	}
}

func TestSubmitContactOptionalPhone(t *testing.T) {
	m := &fakeMailer{}
	form := validContact()
	form.Phone = ""

	require.NoError(t, newFormForTest(m, &fakeVerifier{}).SubmitContact(context.Background(), form, "1.2.3.4"))
	require.Len(t, m.sent, 1)
}

func TestSubmitContactStripsTags(t *testing.T) {
	m := &fakeMailer{}
	form := validContact()
	form.Message = `<script>alert(1)</script>Hello`

	require.NoError(t, newFormForTest(m, &fakeVerifier{}).SubmitContact(context.Background(), form, "1.2.3.4"))

	require.Len(t, m.sent, 1)
	assert.NotContains(t, m.sent[0].HTML, "<script>")
	assert.Contains(t, m.sent[0].HTML, "alert(1)Hello")
}

func TestSubmitContactBotRejected(t *testing.T) {
	m := &fakeMailer{}
	v := &fakeVerifier{rejectErr: errors.New("challenge failed")}

	err := newFormForTest(m, v).SubmitContact(context.Background(), validContact(), "1.2.3.4")

	var vErr *entity.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "token", vErr.Field)
	assert.Empty(t, m.sent)
}

func TestSubmitContactMailerFailure(t *testing.T) {
	m := &fakeMailer{sendErr: errors.New("provider down")}

	err := newFormForTest(m, &fakeVerifier{}).SubmitContact(context.Background(), validContact(), "1.2.3.4")

	require.Error(t, err)
	var vErr *entity.ValidationError
	assert.False(t, errors.As(err, &vErr), "mailer failures are not validation errors")
}

func TestSubmitQuote(t *testing.T) {
	m := &fakeMailer{}
	form := &entity.QuoteForm{
		Name:    "Jamie Curtis",
		Company: "Acme Glass",
		Email:   "jamie@example.com",
		Details: "Need three glaziers for six weeks.",
		Token:   "tok",
	}

	require.NoError(t, newFormForTest(m, &fakeVerifier{}).SubmitQuote(context.Background(), form, "1.2.3.4"))

	require.Len(t, m.sent, 1)
	assert.Equal(t, "New quote request", m.sent[0].Subject)
	assert.Contains(t, m.sent[0].HTML, "Acme Glass")
}

func TestSubmitResumeFileRules(t *testing.T) {
	base := func() *entity.ResumeForm {
		return &entity.ResumeForm{
			Name:  "Jamie Curtis",
			Email: "jamie@example.com",
			Token: "tok",
		}
	}

	tests := []struct {
		name    string
		file    *entity.FileUpload
		wantErr bool
	}{
		{name: "no file", file: nil, wantErr: false},
		{name: "pdf", file: &entity.FileUpload{Filename: "cv.pdf", Content: []byte("x")}, wantErr: false},
		{name: "docx", file: &entity.FileUpload{Filename: "CV.DOCX", Content: []byte("x")}, wantErr: false},
		{name: "executable", file: &entity.FileUpload{Filename: "cv.exe", Content: []byte("x")}, wantErr: true},
		{name: "empty file", file: &entity.FileUpload{Filename: "cv.pdf"}, wantErr: true},
		{name: "oversized", file: &entity.FileUpload{Filename: "cv.pdf", Content: make([]byte, 5<<20+1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMailer{}
			form := base()
			form.File = tt.file

			err := newFormForTest(m, &fakeVerifier{}).SubmitResume(context.Background(), form, "1.2.3.4")

			if tt.wantErr {
				var vErr *entity.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "file", vErr.Field)
				assert.Empty(t, m.sent)
			} else {
				require.NoError(t, err)
				require.Len(t, m.sent, 1)
			}
		})
	}
}

func TestSubmitApplicationRequiresJobTitle(t *testing.T) {
	m := &fakeMailer{}
	form := &entity.ApplicationForm{
		Name:  "Jamie Curtis",
		Email: "jamie@example.com",
		Token: "tok",
	}

	err := newFormForTest(m, &fakeVerifier{}).SubmitApplication(context.Background(), form, "1.2.3.4")

	var vErr *entity.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "jobTitle", vErr.Field)
}

func TestSubmitApplication(t *testing.T) {
	m := &fakeMailer{}
	form := &entity.ApplicationForm{
		Name:     "Jamie Curtis",
		Email:    "jamie@example.com",
		JobTitle: "Senior Glazier",
		Token:    "tok",
		File:     &entity.FileUpload{Filename: "cv.pdf", Content: []byte("pdf")},
	}

	require.NoError(t, newFormForTest(m, &fakeVerifier{}).SubmitApplication(context.Background(), form, "1.2.3.4"))

	require.Len(t, m.sent, 1)
	assert.Equal(t, "New job application: Senior Glazier", m.sent[0].Subject)
	assert.Contains(t, m.sent[0].HTML, "cv.pdf")
}

func TestHTMLTableEscapesAndSkipsEmpty(t *testing.T) {
	out := htmlTable([][2]string{
		{"Name", "<Jamie>"},
		{"Phone", ""},
	})

	assert.Contains(t, out, "&lt;Jamie&gt;")
	assert.NotContains(t, out, "Phone")
}
