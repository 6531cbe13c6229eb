package store

import (
	"context"
	"time"

	"dailyQuestAPI/internal/submission"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type SubmissionStore struct {
	client *firestore.Client
}

func NewSubmissionStore(client *firestore.Client) *SubmissionStore {
	return &SubmissionStore{client: client}
}

// Create writes a brand new submission document. The document id is the
// submission id, so a retried create of the same id fails instead of
// silently duplicating.
func (s *SubmissionStore) Create(ctx context.Context, sub *submission.Submission) error {
	_, err := s.client.Collection(submissionsCollection).Doc(sub.ID).Create(ctx, sub)
	if err != nil {
		return mapErr("create submission", sub.ID, err)
	}
	return nil
}

func (s *SubmissionStore) Get(ctx context.Context, id string) (*submission.Submission, error) {
	doc, err := s.client.Collection(submissionsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr("get submission", id, err)
	}
	var sub submission.Submission
	if err := doc.DataTo(&sub); err != nil {
		return nil, mapErr("decode submission", id, err)
	}
	return &sub, nil
}

// InWindow returns the submissions with submissionTime in [start, end),
// most recent first.
func (s *SubmissionStore) InWindow(ctx context.Context, start, end time.Time) ([]submission.Submission, error) {
	iter := s.client.Collection(submissionsCollection).
		Where("submissionTime", ">=", start).
		Where("submissionTime", "<", end).
		OrderBy("submissionTime", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var subs []submission.Submission
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("query submissions", "window", err)
		}
		var sub submission.Submission
		if err := doc.DataTo(&sub); err != nil {
			return nil, mapErr("decode submission", doc.Ref.ID, err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// UserHasInWindow reports whether the user has at least one submission with
// submissionTime in [start, end).
func (s *SubmissionStore) UserHasInWindow(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	iter := s.client.Collection(submissionsCollection).
		Where("userId", "==", userID).
		Where("submissionTime", ">=", start).
		Where("submissionTime", "<", end).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, mapErr("query submissions", userID, err)
	}
	return true, nil
}

// IncrementVotes applies an atomic numeric increment to the submission's
// vote counter. Concurrent increments serialize inside Firestore, so the
// final value is always the sum of the applied deltas.
func (s *SubmissionStore) IncrementVotes(ctx context.Context, id string, delta int64) error {
	_, err := s.client.Collection(submissionsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "votes", Value: firestore.Increment(delta)},
	})
	if err != nil {
		return mapErr("increment submission votes", id, err)
	}
	return nil
}
