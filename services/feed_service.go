package services

import (
	"context"
	"log"
	"time"

	"dailyQuestAPI/internal/apperr"
	"dailyQuestAPI/internal/clock"
	"dailyQuestAPI/internal/quest"
	"dailyQuestAPI/internal/submission"
	"dailyQuestAPI/internal/user"
)

// FallbackDisplayName is shown when the identity resolver cannot produce a
// name for a user. Resolution is best-effort and never retried; a missing
// name must not fail a feed or leaderboard response.
const FallbackDisplayName = "Anonymous"

const leaderboardSize = 100

// FeedService serves the read side: today's quest, the daily feed, the
// leaderboards and per-user submission history. All operations are
// side-effect-free.
type FeedService struct {
	quests      QuestStore
	submissions SubmissionStore
	users       UserStore
	names       NameResolver
	clock       clock.Clock
	now         func() time.Time
}

func NewFeedService(quests QuestStore, submissions SubmissionStore, users UserStore, names NameResolver, clk clock.Clock) *FeedService {
	return &FeedService{
		quests:      quests,
		submissions: submissions,
		users:       users,
		names:       names,
		clock:       clk,
		now:         time.Now,
	}
}

// TodaysQuest returns the quest scheduled in today's window. With zero
// quests it returns not-found; with more than one (unexpected content
// pipeline state) it returns the earliest startTime and logs the rest.
// Callers must not rely on which quest wins the tie.
func (s *FeedService) TodaysQuest(ctx context.Context) (*quest.Quest, error) {
	start, end := s.clock.Window(s.now())

	quests, err := s.quests.InWindow(ctx, start, end)
	if err != nil {
		log.Printf("TodaysQuest: query failed: %v", err)
		return nil, err
	}
	if len(quests) == 0 {
		return nil, apperr.NotFoundf("no quest scheduled for today")
	}
	if len(quests) > 1 {
		log.Printf("TodaysQuest: %d quests share today's window, returning earliest %s", len(quests), quests[0].ID)
	}
	return &quests[0], nil
}

// TodaysFeed returns today's submissions, most recent first, each enriched
// with the submitter's display name.
func (s *FeedService) TodaysFeed(ctx context.Context) ([]submission.FeedItem, error) {
	start, end := s.clock.Window(s.now())

	subs, err := s.submissions.InWindow(ctx, start, end)
	if err != nil {
		log.Printf("TodaysFeed: query failed: %v", err)
		return nil, err
	}

	feed := make([]submission.FeedItem, 0, len(subs))
	for _, sub := range subs {
		feed = append(feed, submission.FeedItem{
			Submission:  sub,
			DisplayName: s.resolveName(ctx, sub.UserID),
		})
	}
	return feed, nil
}

// Leaderboard returns users ranked descending by vote total or streak.
func (s *FeedService) Leaderboard(ctx context.Context, sortKey string) ([]user.LeaderboardEntry, error) {
	var users []user.User
	var err error

	switch sortKey {
	case "votes":
		users, err = s.users.TopByVotes(ctx, leaderboardSize)
	case "streak":
		users, err = s.users.TopByStreak(ctx, leaderboardSize)
	default:
		return nil, apperr.InvalidArgumentf("unknown leaderboard sort key %q", sortKey)
	}
	if err != nil {
		log.Printf("Leaderboard(%s): query failed: %v", sortKey, err)
		return nil, err
	}

	entries := make([]user.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, user.LeaderboardEntry{
			User:        u,
			DisplayName: s.resolveName(ctx, u.ID),
		})
	}
	return entries, nil
}

// UserSubmissionHistory resolves each id in the user's submissions list.
// Ids that no longer resolve (deleted or not-yet-linked documents) are
// dropped, not errors.
func (s *FeedService) UserSubmissionHistory(ctx context.Context, userID string) ([]submission.Submission, error) {
	if userID == "" {
		return nil, apperr.InvalidArgumentf("userId is required")
	}

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		log.Printf("UserSubmissionHistory: get user %s: %v", userID, err)
		return nil, err
	}

	history := make([]submission.Submission, 0, len(u.Submissions))
	for _, id := range u.Submissions {
		sub, err := s.submissions.Get(ctx, id)
		if err != nil {
			log.Printf("UserSubmissionHistory: dropping unresolvable submission %s for user %s: %v", id, userID, err)
			continue
		}
		history = append(history, *sub)
	}
	return history, nil
}

// HasCompletedToday reports whether the user has a submission in today's
// window. "Not completed" is a false result, never an error.
func (s *FeedService) HasCompletedToday(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, apperr.InvalidArgumentf("userId is required")
	}

	start, end := s.clock.Window(s.now())
	completed, err := s.submissions.UserHasInWindow(ctx, userID, start, end)
	if err != nil {
		log.Printf("HasCompletedToday: query for user %s failed: %v", userID, err)
		return false, err
	}
	return completed, nil
}

func (s *FeedService) resolveName(ctx context.Context, userID string) string {
	name, err := s.names.DisplayName(ctx, userID)
	if err != nil {
		log.Printf("resolveName: falling back for user %s: %v", userID, err)
		return FallbackDisplayName
	}
	return name
}
