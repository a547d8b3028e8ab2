package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenpeople/internal/domain/entity"
)

func TestDocumentID(t *testing.T) {
	assert.Equal(t, "jobadder-42", DocumentID(42))
	assert.Equal(t, "jobadder-0", DocumentID(0))
}

func TestIsSyncID(t *testing.T) {
	assert.True(t, IsSyncID("jobadder-42"))
	assert.False(t, IsSyncID("drafts.jobadder-42"))
	assert.False(t, IsSyncID("job-42"))
	assert.False(t, IsSyncID(""))
}

func TestAdIDFromDocumentID(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		wantID int
		wantOK bool
	}{
		{name: "sync prefixed", id: "jobadder-42", wantID: 42, wantOK: true},
		{name: "locally authored", id: "senior-glazier-sydney", wantID: 0, wantOK: false},
		{name: "prefix without number", id: "jobadder-", wantID: 0, wantOK: false},
		{name: "prefix with garbage", id: "jobadder-abc", wantID: 0, wantOK: false},
		{name: "empty", id: "", wantID: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adID, ok := AdIDFromDocumentID(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, adID)
		})
	}
}

func TestMapWorkType(t *testing.T) {
	tests := []struct {
		raw       string
		wantKnown bool
		wantValue string
	}{
		{raw: "Full Time", wantKnown: true, wantValue: "full_time"},
		{raw: "full-time", wantKnown: true, wantValue: "full_time"},
		{raw: "Permanent / Full Time", wantKnown: true, wantValue: "full_time"},
		{raw: "Part Time", wantKnown: true, wantValue: "part_time"},
		{raw: "Casual", wantKnown: true, wantValue: "casual"},
		{raw: "Contract or Temp", wantKnown: true, wantValue: "contract"},
		{raw: "Temporary", wantKnown: true, wantValue: "temporary"},
		{raw: "  casual  ", wantKnown: true, wantValue: "casual"},
		{raw: "Fly-in Fly-out", wantKnown: false},
		{raw: "", wantKnown: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			result := MapWorkType(tt.raw)
			assert.Equal(t, tt.wantKnown, result.Known)
			assert.Equal(t, tt.wantValue, result.Value)
			assert.Equal(t, tt.raw, result.Raw)
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "Senior Glazier", want: "senior-glazier"},
		{title: "Glazier / Installer - Sydney", want: "glazier-installer-sydney"},
		{title: "  Fitter & Turner  ", want: "fitter-turner"},
		{title: "100% Remote!", want: "100-remote"},
		{title: "", want: ""},
		{title: "---", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugifyTruncates(t *testing.T) {
	long := Slugify(testLongTitle(120))
	assert.LessOrEqual(t, len(long), maxSlugLength)
	assert.NotEqual(t, "-", long[len(long)-1:])
}

func testLongTitle(words int) string {
	title := ""
	for i := 0; i < words; i++ {
		title += "word "
	}
	return title
}

func TestMapAdToDocument(t *testing.T) {
	ad := entity.Ad{
		AdID:        42,
		Title:       "Senior Glazier",
		Summary:     "Install and repair glass.",
		WorkType:    "Casual",
		Location:    "Sydney",
		Salary:      "$45/hr",
		Description: "<p>Great role.</p>",
	}

	doc := MapAdToDocument(ad)

	assert.Equal(t, "jobadder-42", doc.ID)
	assert.Equal(t, "job", doc.Type)
	assert.Equal(t, "Senior Glazier", doc.Title)
	assert.Equal(t, "senior-glazier", doc.Slug.Current)
	assert.True(t, doc.IsActive)
	assert.Equal(t, 42, doc.SourceAdID)
	assert.Equal(t, "Install and repair glass.", doc.Summary)
	assert.Equal(t, "casual", doc.EmploymentType)
	assert.Equal(t, "Sydney", doc.City)
	assert.Equal(t, "$45/hr", doc.Salary)
	require.Len(t, doc.RoleDesc, 1)
	assert.Equal(t, "Great role.", doc.RoleDesc[0].Children[0].Text)
}

func TestMapAdToDocumentUnknownWorkType(t *testing.T) {
	doc := MapAdToDocument(entity.Ad{AdID: 7, Title: "Driver", WorkType: "Fly-in Fly-out"})

	assert.Empty(t, doc.EmploymentType)
	assert.Equal(t, "jobadder-7", doc.ID)
}

func TestMapAdToDocumentSummaryFallback(t *testing.T) {
	doc := MapAdToDocument(entity.Ad{
		AdID:         9,
		Title:        "Fitter",
		BulletPoints: []string{"Immediate start.", "Weekly pay."},
	})

	assert.Equal(t, "Immediate start. Weekly pay.", doc.Summary)
}

func TestMapAdToDocumentDeterministic(t *testing.T) {
	ad := entity.Ad{
		AdID:        42,
		Title:       "Senior Glazier",
		WorkType:    "Casual",
		Description: "<p>One</p><p>Two</p>",
	}

	assert.Equal(t, MapAdToDocument(ad), MapAdToDocument(ad))
}
