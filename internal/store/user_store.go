package store

import (
	"context"

	"dailyQuestAPI/internal/user"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

const leaderboardLimit = 100

type UserStore struct {
	client *firestore.Client
}

func NewUserStore(client *firestore.Client) *UserStore {
	return &UserStore{client: client}
}

// Create writes a new user document keyed by the user id. Creating an
// existing user fails with an already-exists error rather than resetting
// the document.
func (s *UserStore) Create(ctx context.Context, u *user.User) error {
	_, err := s.client.Collection(usersCollection).Doc(u.ID).Create(ctx, u)
	if err != nil {
		return mapErr("create user", u.ID, err)
	}
	return nil
}

func (s *UserStore) Get(ctx context.Context, id string) (*user.User, error) {
	doc, err := s.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr("get user", id, err)
	}
	var u user.User
	if err := doc.DataTo(&u); err != nil {
		return nil, mapErr("decode user", id, err)
	}
	return &u, nil
}

// AppendSubmission links a submission id into the user's submissions list
// with an atomic array-union. Concurrent appends from parallel submits both
// land; the same id is never added twice.
func (s *UserStore) AppendSubmission(ctx context.Context, userID, submissionID string) error {
	_, err := s.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "submissions", Value: firestore.ArrayUnion(submissionID)},
	})
	if err != nil {
		return mapErr("append submission to user", userID, err)
	}
	return nil
}

// IncrementVotes applies an atomic numeric increment to the user's
// aggregate vote total. The total is allowed to go negative.
func (s *UserStore) IncrementVotes(ctx context.Context, userID string, delta int64) error {
	_, err := s.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "votes", Value: firestore.Increment(delta)},
	})
	if err != nil {
		return mapErr("increment user votes", userID, err)
	}
	return nil
}

func (s *UserStore) TopByVotes(ctx context.Context, limit int) ([]user.User, error) {
	return s.top(ctx, "votes", limit)
}

func (s *UserStore) TopByStreak(ctx context.Context, limit int) ([]user.User, error) {
	return s.top(ctx, "streak", limit)
}

func (s *UserStore) top(ctx context.Context, field string, limit int) ([]user.User, error) {
	if limit <= 0 || limit > leaderboardLimit {
		limit = leaderboardLimit
	}
	iter := s.client.Collection(usersCollection).
		OrderBy(field, firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var users []user.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("query users", field, err)
		}
		var u user.User
		if err := doc.DataTo(&u); err != nil {
			return nil, mapErr("decode user", doc.Ref.ID, err)
		}
		users = append(users, u)
	}
	return users, nil
}
