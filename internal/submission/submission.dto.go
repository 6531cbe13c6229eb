package submission

// SubmitRequest is the POST body for a new submission. Latitude and
// longitude are pointers so that a missing coordinate can be told apart
// from a valid zero.
type SubmitRequest struct {
	UserID    string   `json:"userId"`
	ImageData string   `json:"imageData"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Note      string   `json:"note"`
}
