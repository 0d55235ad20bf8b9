package domain

import "context"

// PostRepository is the persistence engine contract. Implementations own
// every transaction boundary; callers never see a connection or
// transaction.
//
// Update and DeleteByID report "no matching row" through their boolean
// result rather than an error, so that callers can tell a missing row
// apart from a storage failure. FindByID reports an absent post as
// (nil, nil) for the same reason; only the service layer turns absence
// into a not-found error.
type PostRepository interface {
	// Save inserts a fresh post and its tag rows atomically and returns
	// the post as re-read from storage, identity assigned.
	Save(ctx context.Context, post *Post) (*Post, error)

	// Update rewrites the post row and replaces its tag rows wholesale,
	// atomically, and returns the post as re-read from storage. When no
	// row matches the post's identity it returns (nil, false, nil) and
	// leaves the tag rows untouched.
	Update(ctx context.Context, post *Post) (*Post, bool, error)

	// DeleteByID removes the post row and, through the cascade, its tag
	// rows. It reports whether exactly one row was deleted.
	DeleteByID(ctx context.Context, id int64) (bool, error)

	// FindByID fetches a post with its tags in insertion order.
	FindByID(ctx context.Context, id int64) (*Post, error)

	// FindBySearchTerm fetches every post whose title, content or
	// category contains term as a case-insensitive substring. An empty
	// term matches everything.
	FindBySearchTerm(ctx context.Context, term string) ([]*Post, error)
}
