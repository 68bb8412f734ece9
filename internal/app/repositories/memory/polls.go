package memory

import (
	"context"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
)

func (s *Store) CreatePoll(ctx context.Context, poll *models.Poll) (*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := poll.Clone()
	p.ID = s.idOr(p.ID)
	if _, exists := s.polls[p.ID]; exists {
		return nil, apperrors.NewConflictError("poll already exists")
	}
	p.CreatedAt = s.timeOr(p.CreatedAt)
	for i := range p.Options {
		p.Options[i].ID = s.idOr(p.Options[i].ID)
	}

	s.polls[p.ID] = p
	if p.CollegeID != "" {
		s.pollsByColl[p.CollegeID] = append(s.pollsByColl[p.CollegeID], p.ID)
	}
	return p.Clone(), nil
}

func (s *Store) FindPollByID(ctx context.Context, id string) (*models.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.polls[id]
	if !ok {
		return nil, apperrors.ErrPollNotFound
	}
	return p.Clone(), nil
}

func (s *Store) ListPollsByCollegeID(ctx context.Context, collegeID string) ([]*models.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.pollsByColl[collegeID]
	out := make([]*models.Poll, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.polls[id].Clone())
	}
	return out, nil
}

func (s *Store) VoteInPoll(ctx context.Context, pollID, optionID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.polls[pollID]
	if !ok {
		return false, apperrors.ErrPollNotFound
	}
	option := p.Option(optionID)
	if option == nil {
		return false, apperrors.ErrPollOptionNotFound
	}

	key := pairKey{userID, pollID}
	if _, voted := s.votes[key]; voted {
		return false, nil
	}

	s.votes[key] = &models.Vote{
		ID:        s.newID(),
		UserID:    userID,
		PollID:    pollID,
		OptionID:  optionID,
		CreatedAt: s.now(),
	}
	option.Votes++
	return true, nil
}

func (s *Store) FindVote(ctx context.Context, pollID, userID string) (*models.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.votes[pairKey{userID, pollID}]
	if !ok {
		return nil, nil
	}
	out := *v
	return &out, nil
}
