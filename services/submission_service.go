package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"time"

	"dailyQuestAPI/internal/apperr"
	"dailyQuestAPI/internal/submission"

	"github.com/google/uuid"
	"google.golang.org/genproto/googleapis/type/latlng"
)

// SubmissionService is the write side of quest completion. A submit is a
// three-step saga: image to blob store, submission document, then the
// atomic link-append onto the owning user. The steps are not transactional
// across stores; a failed final step surfaces as PartialFailure with the
// created submission id so the client can retry just the link.
type SubmissionService struct {
	submissions SubmissionStore
	users       UserStore
	blobs       BlobStore
	now         func() time.Time
}

func NewSubmissionService(submissions SubmissionStore, users UserStore, blobs BlobStore) *SubmissionService {
	return &SubmissionService{
		submissions: submissions,
		users:       users,
		blobs:       blobs,
		now:         time.Now,
	}
}

// Submit validates and persists a new quest submission.
//
// Deliberately NOT checked here: whether the user already completed today's
// quest. Multiple submissions per day are permitted at this layer; the
// one-per-day product rule belongs to callers consulting HasCompletedToday.
func (s *SubmissionService) Submit(ctx context.Context, req *submission.SubmitRequest) (*submission.Submission, error) {
	img, err := validateSubmitRequest(req)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	now := s.now().UTC()

	// Key is scoped by user and creation instant so concurrent submits by
	// the same user cannot collide.
	key := fmt.Sprintf("submissions/%s/%d-%s.jpg", req.UserID, now.UnixNano(), id)
	imageURL, err := s.blobs.Put(ctx, key, img, "image/jpeg")
	if err != nil {
		log.Printf("Submit: image upload failed for user %s: %v", req.UserID, err)
		return nil, err
	}

	sub := &submission.Submission{
		ID:             id,
		UserID:         req.UserID,
		SubmissionTime: now,
		ImageURL:       imageURL,
		Location:       &latlng.LatLng{Latitude: *req.Latitude, Longitude: *req.Longitude},
		Note:           req.Note,
		Votes:          0,
	}

	if err := s.submissions.Create(ctx, sub); err != nil {
		log.Printf("Submit: create submission %s for user %s failed: %v", id, req.UserID, err)
		return nil, err
	}

	if err := s.users.AppendSubmission(ctx, req.UserID, id); err != nil {
		log.Printf("Submit: submission %s created but not linked to user %s: %v", id, req.UserID, err)
		return sub, &apperr.PartialFailure{
			Op:           "submit",
			SubmissionID: id,
			Remaining:    "linking the submission to the user's history",
			Err:          err,
		}
	}

	return sub, nil
}

func validateSubmitRequest(req *submission.SubmitRequest) ([]byte, error) {
	if req.UserID == "" {
		return nil, apperr.InvalidArgumentf("userId is required")
	}
	if req.ImageData == "" {
		return nil, apperr.InvalidArgumentf("imageData is required")
	}
	if req.Note == "" {
		return nil, apperr.InvalidArgumentf("note is required")
	}
	if req.Latitude == nil || req.Longitude == nil {
		return nil, apperr.InvalidArgumentf("latitude and longitude are required")
	}
	if *req.Latitude < -90 || *req.Latitude > 90 {
		return nil, apperr.InvalidArgumentf("latitude %v out of range", *req.Latitude)
	}
	if *req.Longitude < -180 || *req.Longitude > 180 {
		return nil, apperr.InvalidArgumentf("longitude %v out of range", *req.Longitude)
	}

	// Clients sometimes send the full data URI; keep just the payload.
	data := req.ImageData
	if idx := strings.Index(data, ";base64,"); idx >= 0 {
		data = data[idx+len(";base64,"):]
	}

	img, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, apperr.InvalidArgumentf("imageData is not valid base64: %v", err)
	}
	return img, nil
}
