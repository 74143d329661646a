// AngelaMos | 2026
// service_test.go

package library

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/adlib/internal/core"
	"github.com/carterperez-dev/adlib/internal/store"
)

type recordedEvent struct {
	Type     string
	UserID   string
	Metadata map[string]any
}

type fakeRecorder struct {
	events []recordedEvent
}

func (r *fakeRecorder) Record(
	_ context.Context,
	eventType string,
	userID string,
	metadata map[string]any,
) {
	r.events = append(r.events, recordedEvent{
		Type:     eventType,
		UserID:   userID,
		Metadata: metadata,
	})
}

func (r *fakeRecorder) typesSeen() []string {
	types := make([]string, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}

func newTestLibrary(t *testing.T) (*Service, Repository, *fakeRecorder) {
	t.Helper()

	st, err := store.New(t.TempDir())
	require.NoError(t, err)

	repo := NewRepository(st)
	recorder := &fakeRecorder{}

	return NewService(repo, recorder), repo, recorder
}

func seedImage(t *testing.T, repo Repository, title, species, organ, severity string, approved bool) *Image {
	t.Helper()

	img, err := repo.UpsertImage(context.Background(), Image{
		FileName:           title + ".jpg",
		Title:              title,
		Description:        "description of " + title,
		Species:            species,
		Organ:              organ,
		Severity:           severity,
		ConditionDiseaseID: "disease-1",
		UsageRights:        "educational use",
		Source:             "field sample",
		CreatedByUserID:    "admin-1",
	})
	require.NoError(t, err)

	if approved {
		img, err = repo.SetImageApproval(context.Background(), img.ID, true)
		require.NoError(t, err)
	}

	return img
}

func TestBrowseReturnsOnlyApprovedImages(t *testing.T) {
	svc, repo, _ := newTestLibrary(t)
	approved := seedImage(t, repo, "liver lesion", "bovine", "liver", SeveritySevere, true)
	seedImage(t, repo, "pending upload", "ovine", "lung", SeverityMild, false)

	images, err := svc.Browse(context.Background(), "user-1", BrowseParams{})
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, approved.ID, images[0].ID)
}

func TestBrowseRecordsSearchEvent(t *testing.T) {
	svc, repo, recorder := newTestLibrary(t)
	seedImage(t, repo, "liver lesion", "bovine", "liver", SeveritySevere, true)

	images, err := svc.Browse(context.Background(), "user-1", BrowseParams{
		Query: "liver",
	})
	require.NoError(t, err)
	assert.Len(t, images, 1)

	require.Len(t, recorder.events, 1)
	assert.Equal(t, "SEARCH", recorder.events[0].Type)
	assert.Equal(t, "liver", recorder.events[0].Metadata["query"])
}

func TestBrowseRecordsFilterEvent(t *testing.T) {
	svc, repo, recorder := newTestLibrary(t)
	seedImage(t, repo, "liver lesion", "bovine", "liver", SeveritySevere, true)
	seedImage(t, repo, "lung lesion", "ovine", "lung", SeverityMild, true)

	images, err := svc.Browse(context.Background(), "user-1", BrowseParams{
		Species: "bovine",
	})
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "bovine", images[0].Species)

	assert.Equal(t, []string{"FILTER_USE"}, recorder.typesSeen())
}

func TestBrowseWithoutQueryOrFiltersRecordsNothing(t *testing.T) {
	svc, repo, recorder := newTestLibrary(t)
	seedImage(t, repo, "liver lesion", "bovine", "liver", SeveritySevere, true)

	_, err := svc.Browse(context.Background(), "user-1", BrowseParams{})
	require.NoError(t, err)
	assert.Empty(t, recorder.events)
}

func TestGetImageRecordsView(t *testing.T) {
	svc, repo, recorder := newTestLibrary(t)
	img := seedImage(t, repo, "liver lesion", "bovine", "liver", SeveritySevere, true)

	got, err := svc.GetImage(context.Background(), "user-1", img.ID)
	require.NoError(t, err)
	assert.Equal(t, img.ID, got.ID)

	require.Len(t, recorder.events, 1)
	assert.Equal(t, "IMAGE_VIEW", recorder.events[0].Type)
	assert.Equal(t, img.ID, recorder.events[0].Metadata["imageId"])
}

func TestGetImageHidesUnapproved(t *testing.T) {
	svc, repo, recorder := newTestLibrary(t)
	img := seedImage(t, repo, "pending upload", "bovine", "liver", SeverityMild, false)

	_, err := svc.GetImage(context.Background(), "user-1", img.ID)
	require.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, recorder.events)
}

func TestCompare(t *testing.T) {
	svc, repo, recorder := newTestLibrary(t)
	a := seedImage(t, repo, "lesion a", "bovine", "liver", SeveritySevere, true)
	b := seedImage(t, repo, "lesion b", "bovine", "liver", SeverityNormal, true)

	images, err := svc.Compare(
		context.Background(),
		"user-1",
		[]string{a.ID, b.ID, "missing-id"},
	)
	require.NoError(t, err)
	require.Len(t, images, 2)

	require.Len(t, recorder.events, 1)
	assert.Equal(t, "IMAGE_COMPARE", recorder.events[0].Type)
	assert.Equal(t, []string{a.ID, b.ID}, recorder.events[0].Metadata["imageIds"])
}

func TestCompareRequiresTwoResolvableImages(t *testing.T) {
	svc, repo, recorder := newTestLibrary(t)
	a := seedImage(t, repo, "lesion a", "bovine", "liver", SeveritySevere, true)

	_, err := svc.Compare(context.Background(), "user-1", []string{a.ID})
	require.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.Compare(
		context.Background(),
		"user-1",
		[]string{a.ID, "missing-id"},
	)
	require.ErrorIs(t, err, core.ErrInvalidInput)

	assert.Empty(t, recorder.events)
}

func TestUpsertImageNewStartsUnapproved(t *testing.T) {
	svc, _, _ := newTestLibrary(t)

	img, err := svc.UpsertImage(context.Background(), "admin-1", UpsertImageRequest{
		FileName:           "new.jpg",
		Title:              "new image",
		Description:        "freshly uploaded",
		Species:            "bovine",
		Organ:              "liver",
		Severity:           SeverityModerate,
		ConditionDiseaseID: "disease-1",
		UsageRights:        "educational use",
		Source:             "field sample",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, img.ID)
	assert.False(t, img.IsApproved)
	assert.Equal(t, "admin-1", img.CreatedByUserID)
	assert.WithinDuration(t, time.Now(), img.CreatedAt, time.Minute)
}

func TestUpsertImageClientIDStartsUnapproved(t *testing.T) {
	svc, _, _ := newTestLibrary(t)

	img, err := svc.UpsertImage(context.Background(), "admin-1", UpsertImageRequest{
		ID:                 "img-client-chosen",
		FileName:           "new.jpg",
		Title:              "new image",
		Description:        "uploaded with a caller-assigned id",
		Species:            "ovine",
		Organ:              "lung",
		Severity:           SeverityMild,
		ConditionDiseaseID: "disease-1",
		UsageRights:        "educational use",
		Source:             "field sample",
	})
	require.NoError(t, err)
	assert.Equal(t, "img-client-chosen", img.ID)
	assert.False(t, img.IsApproved)
	assert.Equal(t, "admin-1", img.CreatedByUserID)
	assert.WithinDuration(t, time.Now(), img.CreatedAt, time.Minute)
}

func TestUpsertImageEditPreservesApprovalAndProvenance(t *testing.T) {
	svc, repo, _ := newTestLibrary(t)
	original := seedImage(t, repo, "liver lesion", "bovine", "liver", SeveritySevere, true)

	edited, err := svc.UpsertImage(context.Background(), "admin-2", UpsertImageRequest{
		ID:                 original.ID,
		FileName:           original.FileName,
		Title:              "revised title",
		Description:        original.Description,
		Species:            original.Species,
		Organ:              original.Organ,
		Severity:           SeverityModerate,
		ConditionDiseaseID: original.ConditionDiseaseID,
		UsageRights:        original.UsageRights,
		Source:             original.Source,
	})
	require.NoError(t, err)

	assert.Equal(t, "revised title", edited.Title)
	assert.Equal(t, SeverityModerate, edited.Severity)
	assert.True(t, edited.IsApproved)
	assert.Equal(t, original.CreatedByUserID, edited.CreatedByUserID)
	assert.Equal(t, original.CreatedAt.Unix(), edited.CreatedAt.Unix())
}

func TestSetImageApproval(t *testing.T) {
	svc, repo, _ := newTestLibrary(t)
	img := seedImage(t, repo, "pending upload", "bovine", "liver", SeverityMild, false)

	approved, err := svc.SetImageApproval(context.Background(), img.ID, true)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	_, err = svc.SetImageApproval(context.Background(), "missing-id", true)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpsertDisease(t *testing.T) {
	svc, _, _ := newTestLibrary(t)

	disease, err := svc.UpsertDisease(context.Background(), UpsertDiseaseRequest{
		Name:             "Foot and mouth disease",
		Description:      "highly contagious viral disease",
		Relevance:        "major trade impact",
		NotifiableStatus: StatusNotifiable,
		Species:          []string{"bovine", "ovine", "porcine"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, disease.ID)

	diseases, err := svc.ListDiseases(context.Background())
	require.NoError(t, err)
	assert.Len(t, diseases, 1)
}
