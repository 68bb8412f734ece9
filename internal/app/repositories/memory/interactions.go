package memory

import (
	"context"
	"sort"
	"time"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
)

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[comment.ReviewID]; !ok {
		return nil, apperrors.ErrReviewNotFound
	}
	c := *comment
	c.ID = s.idOr(c.ID)
	c.CreatedAt = s.timeOr(c.CreatedAt)

	s.comments[c.ID] = &c
	s.commentsByRev[c.ReviewID] = append(s.commentsByRev[c.ReviewID], c.ID)
	out := c
	return &out, nil
}

func (s *Store) ListCommentsByReviewID(ctx context.Context, reviewID string) ([]*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.commentsByRev[reviewID]
	out := make([]*models.Comment, 0, len(ids))
	for _, id := range ids {
		c := *s.comments[id]
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) CountCommentsByReviewIDs(ctx context.Context, reviewIDs []string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int, len(reviewIDs))
	for _, id := range reviewIDs {
		out[id] = len(s.commentsByRev[id])
	}
	return out, nil
}

func (s *Store) ToggleReaction(ctx context.Context, userID, reviewID, emoji string) (*models.Reaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[reviewID]
	if !ok {
		return nil, false, apperrors.ErrReviewNotFound
	}

	key := reactionKey{userID, reviewID, emoji}
	if id, exists := s.reactionByKey[key]; exists {
		removed := s.reactions[id]
		delete(s.reactions, id)
		delete(s.reactionByKey, key)
		removeFromSet(s.reactionsByRev, reviewID, id)

		review.Reactions[emoji]--
		if review.Reactions[emoji] <= 0 {
			delete(review.Reactions, emoji)
		}
		out := *removed
		return &out, false, nil
	}

	reaction := &models.Reaction{
		ID:        s.newID(),
		UserID:    userID,
		ReviewID:  reviewID,
		Emoji:     emoji,
		CreatedAt: s.now(),
	}
	s.reactions[reaction.ID] = reaction
	s.reactionByKey[key] = reaction.ID
	addToSet(s.reactionsByRev, reviewID, reaction.ID)
	review.Reactions[emoji]++

	out := *reaction
	return &out, true, nil
}

func (s *Store) ListReactionsByReviewID(ctx context.Context, reviewID string) ([]*models.Reaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Reaction, 0, len(s.reactionsByRev[reviewID]))
	for id := range s.reactionsByRev[reviewID] {
		r := *s.reactions[id]
		out = append(out, &r)
	}
	newestFirst(out,
		func(r *models.Reaction) time.Time { return r.CreatedAt },
		func(r *models.Reaction) string { return r.ID })
	return out, nil
}

func (s *Store) ToggleBookmark(ctx context.Context, userID, reviewID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[reviewID]; !ok {
		return false, apperrors.ErrReviewNotFound
	}

	key := pairKey{userID, reviewID}
	if _, exists := s.bookmarks[key]; exists {
		delete(s.bookmarks, key)
		removeFromSet(s.bookmarkUsersBy, reviewID, userID)
		removeFromSet(s.bookmarksByUser, userID, reviewID)
		return false, nil
	}

	s.bookmarks[key] = &models.Bookmark{
		ID:        s.newID(),
		UserID:    userID,
		ReviewID:  reviewID,
		CreatedAt: s.now(),
	}
	addToSet(s.bookmarkUsersBy, reviewID, userID)
	addToSet(s.bookmarksByUser, userID, reviewID)
	return true, nil
}

func (s *Store) ListBookmarksByUserID(ctx context.Context, userID string) ([]*models.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Bookmark, 0, len(s.bookmarksByUser[userID]))
	for reviewID := range s.bookmarksByUser[userID] {
		b := *s.bookmarks[pairKey{userID, reviewID}]
		out = append(out, &b)
	}
	newestFirst(out,
		func(b *models.Bookmark) time.Time { return b.CreatedAt },
		func(b *models.Bookmark) string { return b.ID })
	return out, nil
}

func (s *Store) IsBookmarked(ctx context.Context, userID, reviewID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.bookmarks[pairKey{userID, reviewID}]
	return ok, nil
}
