package services

import (
	"context"
	"log"

	"dailyQuestAPI/internal/apperr"
	"dailyQuestAPI/internal/user"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// CreateUser creates the per-player aggregate document with zeroed
// counters. Creating an id that already exists is rejected rather than
// resetting the player's streak and votes.
func (s *UserService) CreateUser(ctx context.Context, userID string) (*user.User, error) {
	if userID == "" {
		return nil, apperr.InvalidArgumentf("userId is required")
	}

	u := &user.User{
		ID:          userID,
		Streak:      0,
		Votes:       0,
		Submissions: []string{},
	}
	if err := s.users.Create(ctx, u); err != nil {
		log.Printf("CreateUser: %s: %v", userID, err)
		return nil, err
	}
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*user.User, error) {
	if userID == "" {
		return nil, apperr.InvalidArgumentf("userId is required")
	}

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		log.Printf("GetUser: %s: %v", userID, err)
		return nil, err
	}
	return u, nil
}
