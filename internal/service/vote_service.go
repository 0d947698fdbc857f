package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// Vote directions accepted by Toggle.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

type VoteService struct {
	voteRepo repository.VoteRepository
	postRepo repository.PostRepository
}

func NewVoteService(voteRepo repository.VoteRepository, postRepo repository.PostRepository) *VoteService {
	return &VoteService{voteRepo: voteRepo, postRepo: postRepo}
}

// Toggle casts or retracts the caller's vote on a post. It returns true
// when a vote was added and false when one was removed.
//
// Up on an already-voted post is Conflict; down on an unvoted post is
// NotFound. The pre-check is advisory only: the insert still maps a
// duplicate-key error to Conflict, leaving the unique index as the final
// arbiter under concurrent requests.
func (s *VoteService) Toggle(ctx context.Context, callerID, postID uint, direction string) (bool, error) {
	if direction != DirectionUp && direction != DirectionDown {
		return false, models.NewValidationError("Direction must be \"up\" or \"down\"")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return false, err
	}

	existing, err := s.voteRepo.Find(ctx, callerID, postID)
	if err != nil {
		return false, err
	}

	if direction == DirectionUp {
		if existing != nil {
			return false, models.NewConflictError("Already voted on this post")
		}
		if err := s.voteRepo.Add(ctx, callerID, postID); err != nil {
			return false, err
		}
		return true, nil
	}

	if existing == nil {
		return false, models.NewNotFoundMessageError("Vote does not exist")
	}
	if err := s.voteRepo.Remove(ctx, callerID, postID); err != nil {
		return false, err
	}
	return false, nil
}
