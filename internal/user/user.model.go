package user

// User is the per-player aggregate document. Submissions holds the ids of
// the player's quest submissions in creation order; the submit workflow
// appends to it with an atomic array-union, never a read-modify-write.
// Votes may go negative under repeated downvotes.
type User struct {
	ID          string   `json:"userId" firestore:"userId"`
	Streak      int64    `json:"streak" firestore:"streak"`
	Votes       int64    `json:"votes" firestore:"votes"`
	Submissions []string `json:"submissions" firestore:"submissions"`
}
