package services

import (
	"context"
	"log"

	"dailyQuestAPI/internal/apperr"
)

// VoteService applies up/down votes. A vote is two atomic increments: one
// on the submission's counter, one on the owner's aggregate total. The
// owner is always read from the submission document itself, never from the
// caller-supplied userId, so a caller cannot redirect the credit. If the
// second increment fails the first is kept and the call reports
// PartialFailure.
//
// There is intentionally no one-vote-per-user rule here: repeated votes
// compound. Abuse prevention is out of scope for this layer.
type VoteService struct {
	submissions SubmissionStore
	users       UserStore
}

func NewVoteService(submissions SubmissionStore, users UserStore) *VoteService {
	return &VoteService{submissions: submissions, users: users}
}

func (s *VoteService) Upvote(ctx context.Context, submissionID, callerID string) error {
	return s.vote(ctx, submissionID, callerID, 1)
}

func (s *VoteService) Downvote(ctx context.Context, submissionID, callerID string) error {
	return s.vote(ctx, submissionID, callerID, -1)
}

func (s *VoteService) vote(ctx context.Context, submissionID, callerID string, delta int64) error {
	if submissionID == "" {
		return apperr.InvalidArgumentf("postId is required")
	}

	sub, err := s.submissions.Get(ctx, submissionID)
	if err != nil {
		log.Printf("vote: get submission %s: %v", submissionID, err)
		return err
	}

	if err := s.submissions.IncrementVotes(ctx, submissionID, delta); err != nil {
		log.Printf("vote: increment submission %s by %d: %v", submissionID, delta, err)
		return err
	}

	if sub.UserID == "" {
		// Legacy documents without an owner; the submission counter is the
		// whole vote in that case.
		log.Printf("vote: submission %s has no owner, skipping user total (caller %s)", submissionID, callerID)
		return nil
	}

	if err := s.users.IncrementVotes(ctx, sub.UserID, delta); err != nil {
		log.Printf("vote: submission %s incremented but owner %s total failed (caller %s): %v",
			submissionID, sub.UserID, callerID, err)
		return &apperr.PartialFailure{
			Op:           "vote",
			SubmissionID: submissionID,
			Remaining:    "incrementing the owner's vote total",
			Err:          err,
		}
	}

	return nil
}
