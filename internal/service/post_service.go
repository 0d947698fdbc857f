package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const (
	maxTitleLen   = 300
	maxContentLen = 50000

	defaultListLimit = 10
	maxListLimit     = 100
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	UserID    uint
	Title     string
	Content   string
	Published bool
}

type UpdatePostInput struct {
	PostID    uint
	CallerID  uint
	Title     string
	Content   string
	Published bool
}

type ListPostsInput struct {
	Search string
	Limit  int
	Skip   int
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func validatePostFields(title, content string) error {
	if title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 300 characters)")
	}
	if content == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxContentLen {
		return models.NewValidationError("Content too long (max 50000 characters)")
	}
	return nil
}

// CreatePost stores a new post. The owner always comes from the
// authenticated caller, never from the request body.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:     in.Title,
		Content:   in.Content,
		Published: in.Published,
		UserID:    in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts clamps the page size to [1, 100] with a default of 10 and
// ignores a negative skip.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	skip := in.Skip
	if skip < 0 {
		skip = 0
	}
	return s.postRepo.List(ctx, in.Search, limit, skip)
}

// UpdatePost replaces all mutable fields of the post. Ownership is
// enforced by the repository so the missing-post and wrong-owner cases
// keep their relative order.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if err := validatePostFields(in.Title, in.Content); err != nil {
		return nil, err
	}
	return s.postRepo.UpdateOwned(ctx, in.PostID, in.CallerID, repository.PostFields{
		Title:     in.Title,
		Content:   in.Content,
		Published: in.Published,
	})
}

func (s *PostService) DeletePost(ctx context.Context, postID, callerID uint) error {
	return s.postRepo.DeleteOwned(ctx, postID, callerID)
}
