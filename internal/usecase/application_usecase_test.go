package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"zenpeople/internal/domain/entity"
)

// slugQuery answers the slug-to-document-ID lookup.
func slugQuery(docID string) func(string, map[string]interface{}, interface{}) error {
	return func(query string, params map[string]interface{}, result interface{}) error {
		out, ok := result.(*string)
		if !ok {
			return errors.New("unexpected result type")
		}
		*out = docID
		return nil
	}
}

func applicationDoc() *entity.SanityWebhookDoc {
	return &entity.SanityWebhookDoc{
		ID:      "app-1",
		Type:    entity.DocTypeJobApplication,
		JobSlug: "senior-glazier",
		Name:    "Jamie Lee Curtis",
		Email:   "jamie@example.com",
		Phone:   "0412345678",
	}
}

func TestForwardSubmitsOnce(t *testing.T) {
	ats := &fakeATS{submitID: 1001}
	store := &fakeStore{queryFn: slugQuery("jobadder-42")}
	uc := NewApplicationUsecase(ats, store, zap.NewNop())

	err := uc.Forward(context.Background(), applicationDoc())

	require.NoError(t, err)
	require.Len(t, ats.submitted, 1)
	assert.Equal(t, "jamie@example.com", ats.submitted[0].Email)
	assert.Empty(t, ats.attached, "no resume means no attach call")
	assert.Empty(t, store.downloaded)
}

func TestForwardSplitsNameOnLastSpace(t *testing.T) {
	ats := &fakeATS{submitID: 1}
	store := &fakeStore{queryFn: slugQuery("jobadder-42")}
	uc := NewApplicationUsecase(ats, store, zap.NewNop())

	require.NoError(t, uc.Forward(context.Background(), applicationDoc()))

	require.Len(t, ats.submitted, 1)
	assert.Equal(t, "Jamie Lee", ats.submitted[0].FirstName)
	assert.Equal(t, "Curtis", ats.submitted[0].LastName)
}

func TestForwardPrefersExplicitNameFields(t *testing.T) {
	ats := &fakeATS{submitID: 1}
	store := &fakeStore{queryFn: slugQuery("jobadder-42")}
	uc := NewApplicationUsecase(ats, store, zap.NewNop())

	doc := applicationDoc()
	doc.FirstName = "Jamie"
	doc.LastName = "Curtis"

	require.NoError(t, uc.Forward(context.Background(), doc))

	require.Len(t, ats.submitted, 1)
	assert.Equal(t, "Jamie", ats.submitted[0].FirstName)
	assert.Equal(t, "Curtis", ats.submitted[0].LastName)
}

func TestForwardWithResume(t *testing.T) {
	ats := &fakeATS{submitID: 1001}
	store := &fakeStore{
		queryFn:   slugQuery("jobadder-42"),
		assetData: []byte("pdf bytes"),
	}
	uc := NewApplicationUsecase(ats, store, zap.NewNop())

	doc := applicationDoc()
	doc.Resume = &entity.ResumeRef{URL: "https://cdn.example.com/resume.pdf", Filename: "cv.pdf"}

	require.NoError(t, uc.Forward(context.Background(), doc))

	assert.Equal(t, []string{"https://cdn.example.com/resume.pdf"}, store.downloaded)
	assert.Equal(t, []int64{1001}, ats.attached)
}

func TestForwardAttachFailureIsNotFatal(t *testing.T) {
	ats := &fakeATS{submitID: 1001, attachErr: errors.New("upload rejected")}
	store := &fakeStore{
		queryFn:   slugQuery("jobadder-42"),
		assetData: []byte("pdf bytes"),
	}
	uc := NewApplicationUsecase(ats, store, zap.NewNop())

	doc := applicationDoc()
	doc.Resume = &entity.ResumeRef{URL: "https://cdn.example.com/resume.pdf"}

	err := uc.Forward(context.Background(), doc)

	require.NoError(t, err, "submitted application survives a failed attachment")
	require.Len(t, ats.submitted, 1)
}

func TestForwardDownloadFailureIsNotFatal(t *testing.T) {
	ats := &fakeATS{submitID: 1001}
	store := &fakeStore{
		queryFn:  slugQuery("jobadder-42"),
		assetErr: errors.New("cdn unavailable"),
	}
	uc := NewApplicationUsecase(ats, store, zap.NewNop())

	doc := applicationDoc()
	doc.Resume = &entity.ResumeRef{URL: "https://cdn.example.com/resume.pdf"}

	require.NoError(t, uc.Forward(context.Background(), doc))
	require.Len(t, ats.submitted, 1)
	assert.Empty(t, ats.attached)
}

func TestForwardSkipsLocallyAuthoredJob(t *testing.T) {
	ats := &fakeATS{}
	store := &fakeStore{queryFn: slugQuery("hand-written-job")}
	uc := NewApplicationUsecase(ats, store, zap.NewNop())

	err := uc.Forward(context.Background(), applicationDoc())

	require.NoError(t, err)
	assert.Empty(t, ats.submitted)
}

func TestForwardUnknownSlug(t *testing.T) {
	ats := &fakeATS{}
	store := &fakeStore{queryFn: slugQuery("")}
	uc := NewApplicationUsecase(ats, store, zap.NewNop())

	err := uc.Forward(context.Background(), applicationDoc())

	var vErr *entity.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, ats.submitted)
}

func TestForwardMissingSlug(t *testing.T) {
	uc := NewApplicationUsecase(&fakeATS{}, &fakeStore{}, zap.NewNop())

	err := uc.Forward(context.Background(), &entity.SanityWebhookDoc{
		ID:   "app-2",
		Type: entity.DocTypeJobApplication,
	})

	var vErr *entity.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestForwardSubmitFailure(t *testing.T) {
	ats := &fakeATS{submitErr: errors.New("ats down")}
	store := &fakeStore{queryFn: slugQuery("jobadder-42")}
	uc := NewApplicationUsecase(ats, store, zap.NewNop())

	err := uc.Forward(context.Background(), applicationDoc())

	require.Error(t, err)
	assert.Empty(t, ats.attached)
}
