// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostFields holds the mutable fields of a post. Updates replace all of
// them wholesale.
type PostFields struct {
	Title     string
	Content   string
	Published bool
}

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, search string, limit, offset int) ([]*models.Post, error)
	UpdateOwned(ctx context.Context, id, callerID uint, fields PostFields) (*models.Post, error)
	DeleteOwned(ctx context.Context, id, callerID uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyVoteCount adds a subquery to fetch the vote count in a single query,
// instead of lazily loading vote rows per post.
func (r *postRepository) applyVoteCount(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM votes WHERE votes.post_id = posts.id) as votes_count")
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(post).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.applyVoteCount(r.db.WithContext(ctx)).
			Preload("User").
			First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// cachedListLimit mirrors the listing default; only that page is cached.
const cachedListLimit = 10

// List returns posts ordered by id, optionally filtered by a
// case-insensitive title substring match. The unfiltered first page is
// served cache-aside; every write path invalidates it.
func (r *postRepository) List(ctx context.Context, search string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	fetch := func() error {
		query := r.applyVoteCount(r.db.WithContext(ctx)).Preload("User")
		if search != "" {
			query = query.Where("title ILIKE ?", "%"+search+"%")
		}
		err := query.
			Order("id ASC").
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	if search == "" && offset == 0 && limit == cachedListLimit {
		if err := cache.Aside(ctx, cache.PostsListKey, &posts, cache.ListTTL, fetch); err != nil {
			return nil, err
		}
		return posts, nil
	}

	if err := fetch(); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateOwned replaces the mutable fields of the post, enforcing ownership.
// The existence check runs before the ownership check so a missing post is
// always NotFound, never Forbidden.
func (r *postRepository) UpdateOwned(ctx context.Context, id, callerID uint, fields PostFields) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		if post.UserID != callerID {
			return models.NewForbiddenError("Not authorised to perform requested action")
		}

		post.Title = fields.Title
		post.Content = fields.Content
		post.Published = fields.Published
		if err := tx.Save(&post).Error; err != nil {
			return models.NewInternalError(err)
		}

		// Reload in the same shape a GET serves: vote count and author included.
		var updated models.Post
		if err := r.applyVoteCount(tx).Preload("User").First(&updated, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		post = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidatePost(ctx, id)
	return &post, nil
}

// DeleteOwned deletes the post, enforcing the same existence-then-ownership
// check order as UpdateOwned.
func (r *postRepository) DeleteOwned(ctx context.Context, id, callerID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		if post.UserID != callerID {
			return models.NewForbiddenError("Not authorised to perform requested action")
		}
		if err := tx.Delete(&post).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
