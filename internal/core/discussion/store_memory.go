// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discussion

import (
	"context"
	"sync"

	"github.com/taibuivan/bookhub/internal/platform/apperr"
	"github.com/taibuivan/bookhub/pkg/pointer"
)

// MemoryRepository is the process-local [Repository].
type MemoryRepository struct {
	mu          sync.RWMutex
	discussions []*Discussion
	byID        map[string]*Discussion
	likers      map[string]map[string]struct{}
}

// NewMemoryRepository creates an empty board.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:   make(map[string]*Discussion),
		likers: make(map[string]map[string]struct{}),
	}
}

// List implements [Repository].
func (repository *MemoryRepository) List(_ context.Context, q Query) ([]*Discussion, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	result := make([]*Discussion, 0, len(repository.discussions))
	for _, discussion := range repository.discussions {
		if q.matches(discussion) {
			result = append(result, discussion.Clone())
		}
	}
	return result, nil
}

func (q Query) matches(discussion *Discussion) bool {
	switch {
	case q.BookID != nil && discussion.BookID != *q.BookID:
		return false
	case q.ChapterID != nil && !pointer.Equal(discussion.ChapterID, q.ChapterID):
		return false
	case q.AuthorID != nil && discussion.AuthorID != *q.AuthorID:
		return false
	case q.CommenterID != nil && !discussion.CommentedBy(*q.CommenterID):
		return false
	}
	return true
}

// FindByID implements [Repository].
func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Discussion, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	discussion, ok := repository.byID[id]
	if !ok {
		return nil, apperr.NotFound("Discussion")
	}
	return discussion.Clone(), nil
}

// Create implements [Repository].
func (repository *MemoryRepository) Create(_ context.Context, discussion *Discussion) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.byID[discussion.ID]; exists {
		return apperr.Conflict("Discussion already exists")
	}

	stored := discussion.Clone()
	stored.IsLiked = nil
	repository.discussions = append(repository.discussions, stored)
	repository.byID[stored.ID] = stored
	return nil
}

// AddComment implements [Repository].
func (repository *MemoryRepository) AddComment(_ context.Context, comment Comment) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	discussion, ok := repository.byID[comment.DiscussionID]
	if !ok {
		return apperr.NotFound("Discussion")
	}
	discussion.Comments = append(discussion.Comments, comment)
	return nil
}

// ToggleLike implements [Repository].
func (repository *MemoryRepository) ToggleLike(_ context.Context, discussionID, userID string) (bool, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	discussion, ok := repository.byID[discussionID]
	if !ok {
		return false, 0, apperr.NotFound("Discussion")
	}

	likers := repository.likers[discussionID]
	if likers == nil {
		likers = make(map[string]struct{})
		repository.likers[discussionID] = likers
	}

	_, liked := likers[userID]
	liked, discussion.Likes = ToggleLike(liked, discussion.Likes)
	if liked {
		likers[userID] = struct{}{}
	} else {
		delete(likers, userID)
	}

	return liked, discussion.Likes, nil
}

// LikedBy implements [Repository].
func (repository *MemoryRepository) LikedBy(_ context.Context, userID string, discussionIDs []string) (map[string]bool, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	liked := make(map[string]bool, len(discussionIDs))
	for _, id := range discussionIDs {
		if _, ok := repository.likers[id][userID]; ok {
			liked[id] = true
		}
	}
	return liked, nil
}
