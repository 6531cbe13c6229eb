package services

import (
	"context"
	"time"

	"dailyQuestAPI/internal/quest"
	"dailyQuestAPI/internal/submission"
	"dailyQuestAPI/internal/user"
)

// Store and resolver interfaces consumed by the services. The Firestore,
// Cloud Storage and Clerk implementations live under internal/; tests
// substitute in-memory fakes.

type QuestStore interface {
	InWindow(ctx context.Context, start, end time.Time) ([]quest.Quest, error)
}

type SubmissionStore interface {
	Create(ctx context.Context, sub *submission.Submission) error
	Get(ctx context.Context, id string) (*submission.Submission, error)
	InWindow(ctx context.Context, start, end time.Time) ([]submission.Submission, error)
	UserHasInWindow(ctx context.Context, userID string, start, end time.Time) (bool, error)
	IncrementVotes(ctx context.Context, id string, delta int64) error
}

type UserStore interface {
	Create(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id string) (*user.User, error)
	AppendSubmission(ctx context.Context, userID, submissionID string) error
	IncrementVotes(ctx context.Context, userID string, delta int64) error
	TopByVotes(ctx context.Context, limit int) ([]user.User, error)
	TopByStreak(ctx context.Context, limit int) ([]user.User, error)
}

type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type NameResolver interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}
