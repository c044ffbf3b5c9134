package domain

import "time"

// RawPost represents a social-media post as fetched from the source.
// It is immutable once received.
type RawPost struct {
	SourceID  string    `json:"source_id"` // stable external id, used for dedup; may be empty
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	Permalink string    `json:"permalink"`
	Subreddit string    `json:"subreddit"`
	Score     int       `json:"score"` // engagement score
	CreatedAt time.Time `json:"created_at"`
}

// CitizenContact holds optional contact details supplied by the reporting citizen.
type CitizenContact struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
