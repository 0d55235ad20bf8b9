package application

import (
	"context"
	"time"

	"github.com/rfenwick/blogapi/api"
	"github.com/rfenwick/blogapi/blog/domain"
	"github.com/rs/zerolog/log"
)

// PostService orchestrates entity construction, persistence calls and
// not-found semantics. It holds no state of its own beyond its
// collaborators; every operation is a single request/response.
type PostService struct {
	repo domain.PostRepository

	// now stamps createdAt/updatedAt; swappable in tests.
	now func() time.Time
}

func NewPostService(repo domain.PostRepository) *PostService {
	return &PostService{
		repo: repo,
		now:  time.Now,
	}
}

// CreatePost validates and persists a fresh post and returns it as stored,
// identity assigned and tags normalized.
func (s *PostService) CreatePost(ctx context.Context, req *api.PostRequest) (api.PostResponse, error) {
	if req == nil {
		return api.PostResponse{}, domain.NullArgumentError("Requested Post Data")
	}

	post, err := newPostFromRequest(req, s.now().UTC())
	if err != nil {
		return api.PostResponse{}, err
	}

	saved, err := s.repo.Save(ctx, post)
	if err != nil {
		log.Error().Err(err).Msg("Failed to save post")
		return api.PostResponse{}, err
	}

	return toResponse(saved), nil
}

// UpdatePost replaces an existing post's content and tags. A missing post
// surfaces as not-found whether it is caught by the initial lookup or by
// the zero-rows-affected result of the update itself (the row may vanish
// between the two).
func (s *PostService) UpdatePost(ctx context.Context, id int64, req *api.PostRequest) (api.PostResponse, error) {
	if req == nil {
		return api.PostResponse{}, domain.NullArgumentError("Requested Post Data")
	}

	existing, err := s.fetchPost(ctx, id)
	if err != nil {
		return api.PostResponse{}, err
	}

	post, err := updatedPostFromRequest(req, existing, s.now().UTC())
	if err != nil {
		return api.PostResponse{}, err
	}

	updated, found, err := s.repo.Update(ctx, post)
	if err != nil {
		log.Error().Err(err).Int64("postID", id).Msg("Failed to update post")
		return api.PostResponse{}, err
	}
	if !found {
		return api.PostResponse{}, domain.NotFoundError()
	}

	return toResponse(updated), nil
}

// DeletePost removes a post and its tags.
func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("postID", id).Msg("Failed to delete post")
		return err
	}
	if !deleted {
		return domain.NotFoundError()
	}

	return nil
}

// GetPost fetches a single post by identity.
func (s *PostService) GetPost(ctx context.Context, id int64) (api.PostResponse, error) {
	post, err := s.fetchPost(ctx, id)
	if err != nil {
		return api.PostResponse{}, err
	}

	return toResponse(post), nil
}

// SearchPosts returns every post matching term; no match is an empty
// list, never an error.
func (s *PostService) SearchPosts(ctx context.Context, term string) ([]api.PostResponse, error) {
	posts, err := s.repo.FindBySearchTerm(ctx, term)
	if err != nil {
		log.Error().Err(err).Str("term", term).Msg("Failed to search posts")
		return nil, err
	}

	return toResponses(posts), nil
}

func (s *PostService) fetchPost(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("postID", id).Msg("Failed to find post")
		return nil, err
	}
	if post == nil {
		return nil, domain.NotFoundError()
	}

	return post, nil
}
