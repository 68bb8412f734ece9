package repositories

import (
	"context"

	"github.com/campuscope/campuscope/internal/app/models"
)

// PollRepository stores polls and votes
type PollRepository interface {
	CreatePoll(ctx context.Context, poll *models.Poll) (*models.Poll, error)
	FindPollByID(ctx context.Context, id string) (*models.Poll, error)
	ListPollsByCollegeID(ctx context.Context, collegeID string) ([]*models.Poll, error)
	// VoteInPoll records the user's vote and increments the option counter. It returns false,
	// leaving every counter unchanged, when the user already voted in the poll. Unknown polls
	// and options fail with apperrors.ErrPollNotFound and apperrors.ErrPollOptionNotFound.
	VoteInPoll(ctx context.Context, pollID, optionID, userID string) (bool, error)
	// FindVote returns the user's vote in the poll, or nil when they have not voted
	FindVote(ctx context.Context, pollID, userID string) (*models.Vote, error)
}
