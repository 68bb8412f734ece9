package memory

import (
	"context"
	"time"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
)

func (s *Store) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := review.Clone()
	r.ID = s.idOr(r.ID)
	if _, exists := s.reviews[r.ID]; exists {
		return nil, apperrors.NewConflictError("review already exists")
	}
	r.CreatedAt = s.timeOr(r.CreatedAt)
	r.UpdatedAt = r.CreatedAt
	r.Reactions = make(map[string]int)
	if r.Tags == nil {
		r.Tags = []string{}
	}

	s.reviews[r.ID] = r
	addToSet(s.reviewsByColl, r.CollegeID, r.ID)
	addToSet(s.reviewsByUser, r.UserID, r.ID)
	return r.Clone(), nil
}

func (s *Store) FindReviewByID(ctx context.Context, id string) (*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reviews[id]
	if !ok {
		return nil, apperrors.ErrReviewNotFound
	}
	return r.Clone(), nil
}

func (s *Store) ListReviews(ctx context.Context, filter repositories.ReviewFilter) ([]*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var candidates []string
	switch {
	case len(filter.IDs) > 0:
		candidates = filter.IDs
	case filter.CollegeID != "":
		candidates = keys(s.reviewsByColl[filter.CollegeID])
	case filter.UserID != "":
		candidates = keys(s.reviewsByUser[filter.UserID])
	default:
		candidates = make([]string, 0, len(s.reviews))
		for id := range s.reviews {
			candidates = append(candidates, id)
		}
	}

	out := make([]*models.Review, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, id := range candidates {
		r, ok := s.reviews[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if filter.CollegeID != "" && r.CollegeID != filter.CollegeID {
			continue
		}
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.DepartmentID != "" && r.DepartmentID != filter.DepartmentID {
			continue
		}
		out = append(out, r.Clone())
	}

	newestFirst(out,
		func(r *models.Review) time.Time { return r.CreatedAt },
		func(r *models.Review) string { return r.ID })
	return out, nil
}

func (s *Store) UpdateReview(ctx context.Context, id string, update models.ReviewUpdate) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[id]
	if !ok {
		return nil, apperrors.ErrReviewNotFound
	}
	update.Apply(r)
	r.UpdatedAt = s.now()
	return r.Clone(), nil
}

func (s *Store) DeleteReview(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[id]
	if !ok {
		return apperrors.ErrReviewNotFound
	}

	for _, cid := range s.commentsByRev[id] {
		delete(s.comments, cid)
	}
	delete(s.commentsByRev, id)

	for rid := range s.reactionsByRev[id] {
		reaction := s.reactions[rid]
		delete(s.reactionByKey, reactionKey{reaction.UserID, reaction.ReviewID, reaction.Emoji})
		delete(s.reactions, rid)
	}
	delete(s.reactionsByRev, id)

	for userID := range s.bookmarkUsersBy[id] {
		delete(s.bookmarks, pairKey{userID, id})
		removeFromSet(s.bookmarksByUser, userID, id)
	}
	delete(s.bookmarkUsersBy, id)

	removeFromSet(s.reviewsByColl, r.CollegeID, id)
	removeFromSet(s.reviewsByUser, r.UserID, id)
	delete(s.reviews, id)
	return nil
}

func (s *Store) RatingStats(ctx context.Context, group repositories.RatingGroup) (map[string]models.RatingStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sums := make(map[string]float64)
	out := make(map[string]models.RatingStats)
	for _, r := range s.reviews {
		key := r.CollegeID
		if group == repositories.GroupByDepartment {
			key = r.DepartmentID
		}
		if key == "" {
			continue
		}
		st := out[key]
		st.Count++
		out[key] = st
		sums[key] += r.Rating
	}
	for key, st := range out {
		st.Average = sums[key] / float64(st.Count)
		out[key] = st
	}
	return out, nil
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
