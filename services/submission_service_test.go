package services

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyQuestAPI/internal/apperr"
	"dailyQuestAPI/internal/clock"
	"dailyQuestAPI/internal/submission"
	"dailyQuestAPI/internal/user"
)

func validSubmitRequest(userID string) *submission.SubmitRequest {
	lat, lng := 42.6977, 23.3219
	return &submission.SubmitRequest{
		UserID:    userID,
		ImageData: base64.StdEncoding.EncodeToString([]byte("fake-jpeg-bytes")),
		Latitude:  &lat,
		Longitude: &lng,
		Note:      "done before sunrise",
	}
}

func TestSubmitCreatesSubmission(t *testing.T) {
	subs := newFakeSubmissionStore()
	users := newFakeUserStore(user.User{ID: "user_1", Submissions: []string{}})
	blobs := newFakeBlobStore()
	svc := NewSubmissionService(subs, users, blobs)

	sub, err := svc.Submit(context.Background(), validSubmitRequest("user_1"))
	require.NoError(t, err)

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "user_1", sub.UserID)
	assert.Equal(t, int64(0), sub.Votes)
	assert.Contains(t, sub.ImageURL, "submissions/user_1/")
	require.NotNil(t, sub.Location)
	assert.InDelta(t, 42.6977, sub.Location.Latitude, 1e-9)

	start, end := clock.New(time.UTC).Window(time.Now())
	assert.False(t, sub.SubmissionTime.Before(start))
	assert.True(t, sub.SubmissionTime.Before(end))

	// Linked into the owner's history and persisted.
	assert.Equal(t, []string{sub.ID}, users.submissions("user_1"))
	_, err = subs.Get(context.Background(), sub.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, blobs.count())
}

func TestSubmitValidationRejectsWithoutSideEffects(t *testing.T) {
	lat, lng := 10.0, 20.0
	badLat, badLng := 91.0, -200.0

	tests := []struct {
		name   string
		mutate func(*submission.SubmitRequest)
	}{
		{"missing userId", func(r *submission.SubmitRequest) { r.UserID = "" }},
		{"missing imageData", func(r *submission.SubmitRequest) { r.ImageData = "" }},
		{"empty note", func(r *submission.SubmitRequest) { r.Note = "" }},
		{"missing latitude", func(r *submission.SubmitRequest) { r.Latitude = nil }},
		{"missing longitude", func(r *submission.SubmitRequest) { r.Longitude = nil }},
		{"latitude out of range", func(r *submission.SubmitRequest) { r.Latitude = &badLat }},
		{"longitude out of range", func(r *submission.SubmitRequest) { r.Longitude = &badLng }},
		{"invalid base64", func(r *submission.SubmitRequest) { r.ImageData = "not base64!!!" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := newFakeSubmissionStore()
			users := newFakeUserStore(user.User{ID: "user_1"})
			blobs := newFakeBlobStore()
			svc := NewSubmissionService(subs, users, blobs)

			req := validSubmitRequest("user_1")
			req.Latitude, req.Longitude = &lat, &lng
			tt.mutate(req)

			_, err := svc.Submit(context.Background(), req)
			assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

			// No blob written, no submission created, nothing linked.
			assert.Equal(t, 0, blobs.count())
			assert.Empty(t, subs.subs)
			assert.Empty(t, users.submissions("user_1"))
		})
	}
}

func TestSubmitAcceptsDataURIPrefix(t *testing.T) {
	subs := newFakeSubmissionStore()
	users := newFakeUserStore(user.User{ID: "user_1"})
	blobs := newFakeBlobStore()
	svc := NewSubmissionService(subs, users, blobs)

	req := validSubmitRequest("user_1")
	req.ImageData = "data:image/jpeg;base64," + req.ImageData

	_, err := svc.Submit(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, 1, blobs.count())
}

func TestSubmitDoesNotRejectSecondSameDaySubmission(t *testing.T) {
	subs := newFakeSubmissionStore()
	users := newFakeUserStore(user.User{ID: "user_1"})
	blobs := newFakeBlobStore()
	svc := NewSubmissionService(subs, users, blobs)

	first, err := svc.Submit(context.Background(), validSubmitRequest("user_1"))
	require.NoError(t, err)

	second, err := svc.Submit(context.Background(), validSubmitRequest("user_1"))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, users.submissions("user_1"), 2)
}

func TestSubmitBlobFailureAbortsEverything(t *testing.T) {
	subs := newFakeSubmissionStore()
	users := newFakeUserStore(user.User{ID: "user_1"})
	blobs := newFakeBlobStore()
	blobs.err = apperr.Unavailablef("bucket offline")
	svc := NewSubmissionService(subs, users, blobs)

	_, err := svc.Submit(context.Background(), validSubmitRequest("user_1"))
	assert.ErrorIs(t, err, apperr.ErrUnavailable)

	assert.Empty(t, subs.subs)
	assert.Empty(t, users.submissions("user_1"))
}

func TestSubmitLinkFailureIsPartialFailure(t *testing.T) {
	subs := newFakeSubmissionStore()
	users := newFakeUserStore(user.User{ID: "user_1"})
	users.appendErr = apperr.Unavailablef("write contention")
	blobs := newFakeBlobStore()
	svc := NewSubmissionService(subs, users, blobs)

	sub, err := svc.Submit(context.Background(), validSubmitRequest("user_1"))
	require.Error(t, err)

	var pf *apperr.PartialFailure
	require.True(t, errors.As(err, &pf), "expected PartialFailure, got %v", err)
	require.NotNil(t, sub)
	assert.Equal(t, sub.ID, pf.SubmissionID)

	// The submission itself was committed and stays queryable; only the
	// user's history list is stale.
	stored, getErr := subs.Get(context.Background(), sub.ID)
	require.NoError(t, getErr)
	assert.Equal(t, "user_1", stored.UserID)
	assert.Empty(t, users.submissions("user_1"))
}

func TestSubmitToUnknownUserIsPartialFailure(t *testing.T) {
	subs := newFakeSubmissionStore()
	users := newFakeUserStore()
	blobs := newFakeBlobStore()
	svc := NewSubmissionService(subs, users, blobs)

	sub, err := svc.Submit(context.Background(), validSubmitRequest("ghost"))

	var pf *apperr.PartialFailure
	require.True(t, errors.As(err, &pf))
	assert.Equal(t, sub.ID, pf.SubmissionID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
