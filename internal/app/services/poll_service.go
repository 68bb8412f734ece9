package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/campuscope/campuscope/internal/pkg/realtime"
	"github.com/rs/zerolog"
)

// PollService handles polls and voting
type PollService struct {
	pollRepo    repositories.PollRepository
	collegeRepo repositories.CollegeRepository
	broadcaster Broadcaster
	now         func() time.Time
	logger      zerolog.Logger
}

// NewPollService creates a new PollService. now decides poll expiry.
func NewPollService(
	pollRepo repositories.PollRepository,
	collegeRepo repositories.CollegeRepository,
	broadcaster Broadcaster,
	now func() time.Time,
	logger zerolog.Logger,
) *PollService {
	return &PollService{
		pollRepo:    pollRepo,
		collegeRepo: collegeRepo,
		broadcaster: broadcaster,
		now:         now,
		logger:      logger,
	}
}

func (s *PollService) response(ctx context.Context, poll *models.Poll, viewerID string) (*dto.PollResponse, error) {
	resp := &dto.PollResponse{
		Poll:       poll,
		TotalVotes: poll.TotalVotes(),
		Expired:    poll.IsExpired(s.now()),
	}
	if viewerID == "" {
		return resp, nil
	}

	vote, err := s.pollRepo.FindVote(ctx, poll.ID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("finding vote: %w", err)
	}
	if vote != nil {
		resp.VotedOptionID = vote.OptionID
	}
	return resp, nil
}

// Get returns a poll with the viewer's vote, if any. viewerID may be empty.
func (s *PollService) Get(ctx context.Context, pollID, viewerID string) (*dto.PollResponse, error) {
	poll, err := s.pollRepo.FindPollByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	return s.response(ctx, poll, viewerID)
}

// ListByCollege returns the polls of a college
func (s *PollService) ListByCollege(ctx context.Context, collegeID, viewerID string) ([]*dto.PollResponse, error) {
	if _, err := s.collegeRepo.FindCollegeByID(ctx, collegeID); err != nil {
		return nil, err
	}
	polls, err := s.pollRepo.ListPollsByCollegeID(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("listing polls: %w", err)
	}

	out := make([]*dto.PollResponse, 0, len(polls))
	for _, p := range polls {
		resp, err := s.response(ctx, p, viewerID)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Vote records userID's single vote in a poll
func (s *PollService) Vote(ctx context.Context, userID, pollID, optionID string) (*dto.VoteResponse, error) {
	optionID = strings.TrimSpace(optionID)
	if optionID == "" {
		return nil, apperrors.NewValidationError("optionId", "Option is required")
	}

	poll, err := s.pollRepo.FindPollByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if poll.IsExpired(s.now()) {
		return nil, apperrors.ErrPollClosed
	}

	voted, err := s.pollRepo.VoteInPoll(ctx, pollID, optionID, userID)
	if err != nil {
		return nil, err
	}
	if !voted {
		return nil, apperrors.ErrAlreadyVoted
	}

	updated, err := s.Get(ctx, pollID, userID)
	if err != nil {
		return nil, err
	}

	view := realtime.FeedView
	if poll.CollegeID != "" {
		view = CollegeView(poll.CollegeID)
	}
	s.broadcaster.Invalidate(view)
	s.broadcaster.Publish(view, realtime.EventPollUpdated, updated)

	s.logger.Info().Str("pollID", pollID).Str("userID", userID).Msg("Vote recorded")
	return &dto.VoteResponse{Voted: true, Poll: updated}, nil
}
