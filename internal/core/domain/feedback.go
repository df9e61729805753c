package domain

import "time"

// FeedbackRating is a user verdict on an answer.
type FeedbackRating string

// Available feedback ratings.
const (
	FeedbackPositive FeedbackRating = "positive"
	FeedbackNegative FeedbackRating = "negative"
)

// IsValid returns true if the rating is recognised.
func (r FeedbackRating) IsValid() bool {
	return r == FeedbackPositive || r == FeedbackNegative
}

// Feedback records a user verdict on a generated answer, together with
// enough context to review it later.
type Feedback struct {
	// ID is the unique identifier for this feedback record.
	ID string

	// Question is the question that produced the answer.
	Question string

	// Answer is the generated answer text being rated.
	Answer string

	// Citations are the citation tokens the answer carried.
	Citations []string

	// Rating is the user's verdict.
	Rating FeedbackRating

	// Comment is an optional free-text remark.
	Comment string

	// CreatedAt is when the feedback was recorded.
	CreatedAt time.Time
}
