package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cafe/internal/models"
	"cafe/internal/notify"
)

func TestCreateCommentStoresUnapprovedReview(t *testing.T) {
	store := &fakeStore[models.Comment]{}
	notifier := &recordingNotifier{}

	w := perform(http.MethodPost, "/comments", "/comments",
		`{"userName": "سارة", "rating": 5, "text": "ممتاز"}`,
		CreateComment(store, notifier))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, store.created, 1)
	assert.False(t, store.created[0].Approved)
	assert.Equal(t, 5, store.created[0].Rating)
	assert.Equal(t, "ممتاز", store.created[0].Text)

	require.Len(t, notifier.records, 1)
	review, ok := notifier.records[0].(notify.ReviewRecord)
	require.True(t, ok)
	assert.Equal(t, "سارة", review.Comment.UserName)
	assert.Equal(t, decode(t, w)["id"], notifier.ids[0])
}

func TestCreateCommentRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"rating zero", `{"userName": "a", "rating": 0, "text": "ok"}`},
		{"rating six", `{"userName": "a", "rating": 6, "text": "ok"}`},
		{"blank text", `{"userName": "a", "rating": 3, "text": "   "}`},
		{"bad item id", `{"userName": "a", "rating": 3, "text": "ok", "itemId": "x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore[models.Comment]{}
			notifier := &recordingNotifier{}
			w := perform(http.MethodPost, "/comments", "/comments", tt.body, CreateComment(store, notifier))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, store.created)
			assert.Empty(t, notifier.records)
		})
	}
}

func TestCreateCommentIgnoresPushFailures(t *testing.T) {
	notifier := &recordingNotifier{results: []notify.Result{{Recipient: "1", Err: errors.New("blocked")}}}

	w := perform(http.MethodPost, "/comments", "/comments",
		`{"userName": "a", "rating": 4, "text": "good"}`,
		CreateComment(&fakeStore[models.Comment]{}, notifier))

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateContactMessage(t *testing.T) {
	store := &fakeStore[models.ContactMessage]{}
	notifier := &recordingNotifier{}
	h := CreateContactMessage(store, notifier)

	w := perform(http.MethodPost, "/messages", "/messages", `{"name": "Omar", "message": "hello"}`, h)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.created, 1)
	assert.False(t, store.created[0].Read)
	require.Len(t, notifier.records, 1)
	assert.Equal(t, notify.KindContact, notifier.records[0].Kind())

	w = perform(http.MethodPost, "/messages", "/messages", `{"name": "Omar"}`, h)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, store.created, 1)
}

func TestCreateJobApplication(t *testing.T) {
	open := models.Job{ID: primitive.NewObjectID(), Title: "Barista", Active: true}
	closed := models.Job{ID: primitive.NewObjectID(), Title: "Baker"}
	jobs := &fakeStore[models.Job]{byID: map[primitive.ObjectID]models.Job{open.ID: open, closed.ID: closed}}
	body := `{"applicantName": "Huda", "applicantPhone": "0911111111"}`

	tests := []struct {
		name   string
		jobID  string
		status int
	}{
		{"open job", open.ID.Hex(), http.StatusCreated},
		{"closed job", closed.ID.Hex(), http.StatusConflict},
		{"missing job", primitive.NewObjectID().Hex(), http.StatusNotFound},
		{"malformed id", "nope", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore[models.JobApplication]{}
			notifier := &recordingNotifier{}
			w := perform(http.MethodPost, "/jobs/:id/applications", "/jobs/"+tt.jobID+"/applications", body,
				CreateJobApplication(jobs, store, notifier))

			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status != http.StatusCreated {
				assert.Empty(t, store.created)
				assert.Empty(t, notifier.records)
				return
			}
			require.Len(t, store.created, 1)
			app := store.created[0]
			assert.Equal(t, "Barista", app.JobTitle)
			assert.Equal(t, models.ApplicationStatusNew, app.Status)
			assert.False(t, app.Read)
			require.Len(t, notifier.records, 1)
			assert.Equal(t, notify.KindApplication, notifier.records[0].Kind())
		})
	}
}
