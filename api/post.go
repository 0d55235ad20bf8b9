package api

import "time"

// PostRequest is the caller-supplied shape for creating or updating a post.
// Title, Content and Category are pointers so that a field absent from (or
// null in) the JSON body can be told apart from an empty string.
type PostRequest struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	Category *string  `json:"category"`
	Tags     []string `json:"tags"`
}

// PostResponse is the server-produced shape for a persisted post. ID and
// both timestamps are server-derived; timestamps serialize as RFC 3339 UTC.
type PostResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
