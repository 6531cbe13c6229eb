package quest

import "time"

// Quest is a single daily challenge. Quest documents are written by the
// content-management pipeline; this service only reads them.
// The firestore tags match the original collection schema ("location" is the
// is-location-quest flag, not a coordinate).
type Quest struct {
	ID              string    `json:"questId" firestore:"questId"`
	Description     string    `json:"description" firestore:"description"`
	StartTime       time.Time `json:"startTime" firestore:"startTime"`
	IsLocationQuest bool      `json:"isLocationQuest" firestore:"location"`
}
