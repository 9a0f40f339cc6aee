package entities

// Feedback is a message the mascot says after being fed.
type Feedback struct {
	ID      int64  `json:"id" db:"id"`
	Message string `json:"message" db:"message"`
}

// FeedView is what the home page shows: the message picked for this visit
// (empty when the visitor did not feed) and the feed count.
type FeedView struct {
	Message   string `json:"message"`
	FeedCount int64  `json:"feed_count"`
}
