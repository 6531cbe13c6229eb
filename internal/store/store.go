package store

import (
	"fmt"

	"dailyQuestAPI/internal/apperr"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Collection names in the Firestore project. These match the original
// mobile app's schema, so the backend works against existing data.
const (
	questsCollection      = "quests"
	submissionsCollection = "submissions"
	usersCollection       = "users"
)

// mapErr translates a Firestore RPC error into the service error taxonomy.
// Deadline and transport failures come back retryable; everything else is
// wrapped with the operation and entity for the logs.
func mapErr(op, id string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return apperr.NotFoundf("%s: %s", op, id)
	case codes.AlreadyExists:
		return apperr.InvalidArgumentf("%s: %s already exists", op, id)
	case codes.DeadlineExceeded, codes.Unavailable, codes.Canceled:
		return apperr.Unavailablef("%s: %s: %v", op, id, err)
	}
	return fmt.Errorf("%s %s: %w", op, id, err)
}
