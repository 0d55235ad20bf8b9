package application

import (
	"time"

	"github.com/rfenwick/blogapi/api"
	"github.com/rfenwick/blogapi/blog/domain"
)

// The mapper is the only place that looks at the request's pointer fields:
// a nil field is the wire-level null and becomes a null-argument error
// before the entity constructor ever runs. Everything else (blank checks,
// trimming, tag normalization, time ordering) is the entity's job.

func newPostFromRequest(req *api.PostRequest, createdAt time.Time) (*domain.Post, error) {
	title, content, category, err := requiredFields(req)
	if err != nil {
		return nil, err
	}
	return domain.NewPost(title, content, category, req.Tags, createdAt)
}

// updatedPostFromRequest builds the next revision of an existing post:
// identity and creation time come from the stored post, everything else
// from the request, with updatedAt stamped by the caller.
func updatedPostFromRequest(req *api.PostRequest, existing *domain.Post, updatedAt time.Time) (*domain.Post, error) {
	title, content, category, err := requiredFields(req)
	if err != nil {
		return nil, err
	}
	return domain.ReconstitutePost(existing.ID(), title, content, category, req.Tags, existing.CreatedAt(), updatedAt)
}

func requiredFields(req *api.PostRequest) (title, content, category string, err error) {
	if req.Title == nil {
		return "", "", "", domain.NullArgumentError("Title")
	}
	if req.Content == nil {
		return "", "", "", domain.NullArgumentError("Content")
	}
	if req.Category == nil {
		return "", "", "", domain.NullArgumentError("Category")
	}
	return *req.Title, *req.Content, *req.Category, nil
}

// toResponse copies a persisted post field for field.
func toResponse(post *domain.Post) api.PostResponse {
	return api.PostResponse{
		ID:        post.ID(),
		Title:     post.Title(),
		Content:   post.Content(),
		Category:  post.Category(),
		Tags:      post.Tags(),
		CreatedAt: post.CreatedAt(),
		UpdatedAt: post.UpdatedAt(),
	}
}

func toResponses(posts []*domain.Post) []api.PostResponse {
	responses := make([]api.PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, toResponse(post))
	}
	return responses
}
