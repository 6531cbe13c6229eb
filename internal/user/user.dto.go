package user

// LeaderboardEntry is a user enriched with a display name for the
// votes/streak leaderboards.
type LeaderboardEntry struct {
	User
	DisplayName string `json:"displayName"`
}
