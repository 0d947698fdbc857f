// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// VoteRepository defines persistence operations for the vote ledger.
type VoteRepository interface {
	Find(ctx context.Context, userID, postID uint) (*models.Vote, error)
	Add(ctx context.Context, userID, postID uint) error
	Remove(ctx context.Context, userID, postID uint) error
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository returns a new VoteRepository implementation.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Find returns (nil, nil) when no vote exists for the pair.
func (r *voteRepository) Find(ctx context.Context, userID, postID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &vote, nil
}

// Add inserts a vote row. The composite unique index on (user_id, post_id)
// is the final arbiter under concurrent inserts; a duplicate-key error is
// surfaced as Conflict rather than absorbed.
func (r *voteRepository) Add(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&models.Vote{UserID: userID, PostID: postID}).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Already voted on this post")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

// Remove hard-deletes the vote row so the pair can be voted again later.
// Deleting an absent row is NotFound.
func (r *voteRepository) Remove(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Vote{})
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundMessageError("Vote does not exist")
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}
