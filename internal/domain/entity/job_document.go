package entity

// JobDocument is the job posting document upserted into the content store.
// The ID is derived deterministically from the source ad ID, so repeated
// syncs of the same ad always target the same document.
type JobDocument struct {
	ID             string  `json:"_id"`
	Type           string  `json:"_type"`
	Title          string  `json:"title"`
	Slug           Slug    `json:"slug"`
	IsActive       bool    `json:"isActive"`
	SourceAdID     int     `json:"sourceAdId"`
	Summary        string  `json:"summary,omitempty"`
	City           string  `json:"city,omitempty"`
	EmploymentType string  `json:"employmentType,omitempty"`
	Salary         string  `json:"salary,omitempty"`
	RoleDesc       []Block `json:"roleDescription,omitempty"`
}

// Slug is the content store's slug object.
type Slug struct {
	Type    string `json:"_type"`
	Current string `json:"current"`
}

// Block is a rich text paragraph block. The mapper only ever emits plain
// "normal" style blocks with a single unmarked span per paragraph.
type Block struct {
	Key      string        `json:"_key"`
	Type     string        `json:"_type"`
	Style    string        `json:"style"`
	MarkDefs []interface{} `json:"markDefs"`
	Children []Span        `json:"children"`
}

// Span is a run of text inside a Block.
type Span struct {
	Type  string   `json:"_type"`
	Text  string   `json:"text"`
	Marks []string `json:"marks"`
}
