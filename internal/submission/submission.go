package submission

import (
	"time"

	"google.golang.org/genproto/googleapis/type/latlng"
)

// Submission is a user's proof of completing the day's quest.
// Votes is only ever changed through the vote workflow's atomic increment;
// the submit workflow writes it once, as zero.
type Submission struct {
	ID             string         `json:"submissionId" firestore:"submissionId"`
	UserID         string         `json:"userId" firestore:"userId"`
	SubmissionTime time.Time      `json:"submissionTime" firestore:"submissionTime"`
	ImageURL       string         `json:"imageUrl" firestore:"imageUrl"`
	Location       *latlng.LatLng `json:"location,omitempty" firestore:"location"`
	Note           string         `json:"note" firestore:"note"`
	Votes          int64          `json:"votes" firestore:"votes"`
}

// FeedItem is a submission enriched with the submitter's display name for
// the daily feed.
type FeedItem struct {
	Submission
	DisplayName string `json:"displayName"`
}
