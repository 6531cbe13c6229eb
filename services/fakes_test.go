package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"dailyQuestAPI/internal/apperr"
	"dailyQuestAPI/internal/quest"
	"dailyQuestAPI/internal/submission"
	"dailyQuestAPI/internal/user"
)

// In-memory fakes for the store interfaces. The mutexes give them the same
// serialization guarantees the real stores' atomic primitives provide, so
// the concurrency tests exercise real interleavings.

type fakeQuestStore struct {
	quests []quest.Quest
	err    error
}

func (f *fakeQuestStore) InWindow(_ context.Context, start, end time.Time) ([]quest.Quest, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []quest.Quest
	for _, q := range f.quests {
		if !q.StartTime.Before(start) && q.StartTime.Before(end) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

type fakeSubmissionStore struct {
	mu           sync.Mutex
	subs         map[string]submission.Submission
	createErr    error
	incrementErr error
	getErr       error
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{subs: make(map[string]submission.Submission)}
}

func (f *fakeSubmissionStore) Create(_ context.Context, sub *submission.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.subs[sub.ID]; ok {
		return apperr.InvalidArgumentf("create submission: %s already exists", sub.ID)
	}
	f.subs[sub.ID] = *sub
	return nil
}

func (f *fakeSubmissionStore) Get(_ context.Context, id string) (*submission.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	sub, ok := f.subs[id]
	if !ok {
		return nil, apperr.NotFoundf("get submission: %s", id)
	}
	return &sub, nil
}

func (f *fakeSubmissionStore) InWindow(_ context.Context, start, end time.Time) ([]submission.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []submission.Submission
	for _, sub := range f.subs {
		if !sub.SubmissionTime.Before(start) && sub.SubmissionTime.Before(end) {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmissionTime.After(out[j].SubmissionTime) })
	return out, nil
}

func (f *fakeSubmissionStore) UserHasInWindow(_ context.Context, userID string, start, end time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.subs {
		if sub.UserID == userID && !sub.SubmissionTime.Before(start) && sub.SubmissionTime.Before(end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSubmissionStore) IncrementVotes(_ context.Context, id string, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.incrementErr != nil {
		return f.incrementErr
	}
	sub, ok := f.subs[id]
	if !ok {
		return apperr.NotFoundf("increment submission votes: %s", id)
	}
	sub.Votes += delta
	f.subs[id] = sub
	return nil
}

func (f *fakeSubmissionStore) votes(id string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subs[id].Votes
}

type fakeUserStore struct {
	mu           sync.Mutex
	users        map[string]user.User
	appendErr    error
	incrementErr error
}

func newFakeUserStore(users ...user.User) *fakeUserStore {
	f := &fakeUserStore{users: make(map[string]user.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) Create(_ context.Context, u *user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; ok {
		return apperr.InvalidArgumentf("create user: %s already exists", u.ID)
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserStore) Get(_ context.Context, id string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFoundf("get user: %s", id)
	}
	return &u, nil
}

func (f *fakeUserStore) AppendSubmission(_ context.Context, userID, submissionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	u, ok := f.users[userID]
	if !ok {
		return apperr.NotFoundf("append submission to user: %s", userID)
	}
	for _, id := range u.Submissions {
		if id == submissionID {
			return nil
		}
	}
	u.Submissions = append(u.Submissions, submissionID)
	f.users[userID] = u
	return nil
}

func (f *fakeUserStore) IncrementVotes(_ context.Context, userID string, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.incrementErr != nil {
		return f.incrementErr
	}
	u, ok := f.users[userID]
	if !ok {
		return apperr.NotFoundf("increment user votes: %s", userID)
	}
	u.Votes += delta
	f.users[userID] = u
	return nil
}

func (f *fakeUserStore) TopByVotes(_ context.Context, limit int) ([]user.User, error) {
	return f.top(limit, func(a, b user.User) bool { return a.Votes > b.Votes })
}

func (f *fakeUserStore) TopByStreak(_ context.Context, limit int) ([]user.User, error) {
	return f.top(limit, func(a, b user.User) bool { return a.Streak > b.Streak })
}

func (f *fakeUserStore) top(limit int, less func(a, b user.User) bool) ([]user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]user.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeUserStore) votes(id string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id].Votes
}

func (f *fakeUserStore) submissions(id string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.users[id].Submissions...)
}

type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.objects[key] = data
	return fmt.Sprintf("https://storage.example.com/%s", key), nil
}

func (f *fakeBlobStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

type fakeResolver struct {
	names map[string]string
}

func (f *fakeResolver) DisplayName(_ context.Context, userID string) (string, error) {
	name, ok := f.names[userID]
	if !ok {
		return "", fmt.Errorf("no clerk profile for %s", userID)
	}
	return name, nil
}
