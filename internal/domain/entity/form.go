package entity

// Public form submissions relayed to the notification mailbox. None of these
// are persisted; they exist only for the duration of the request.

type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

type QuoteForm struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Details string `json:"details"`
	Token   string `json:"token"`
}

type ResumeForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Token   string `json:"token"`
	File    *FileUpload
}

type ApplicationForm struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	JobTitle  string `json:"jobTitle"`
	CoverNote string `json:"coverNote"`
	Token     string `json:"token"`
	File      *FileUpload
}

// Email is the payload sent to the email provider API.
type Email struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	ReplyTo string `json:"reply_to,omitempty"`
}
