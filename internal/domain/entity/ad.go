package entity

// Ad is a job advertisement as returned by the JobAdder job board API.
// It is externally owned; this system only reads ads and submits
// applications against them.
type Ad struct {
	AdID         int      `json:"adId"`
	Title        string   `json:"title"`
	Summary      string   `json:"summary,omitempty"`
	BulletPoints []string `json:"bulletPoints,omitempty"`
	Description  string   `json:"description,omitempty"`
	WorkType     string   `json:"workType,omitempty"`
	Location     string   `json:"location,omitempty"`
	Salary       string   `json:"salary,omitempty"`
}

// AdListPage is one page of the paginated ad listing endpoint.
type AdListPage struct {
	Items      []Ad `json:"items"`
	TotalCount int  `json:"totalCount"`
	Links      struct {
		Next string `json:"next,omitempty"`
	} `json:"links"`
}

// Candidate is the applicant payload forwarded to JobAdder. It exists only
// as a relay payload and is never persisted by this system.
type Candidate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// ApplicationReceipt is JobAdder's response to an application submission.
type ApplicationReceipt struct {
	ApplicationID int64 `json:"applicationId"`
}

// FileUpload is an in-memory file relayed to an upstream API.
type FileUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}
