package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/campuscope/campuscope/internal/pkg/dberrors"
	"github.com/campuscope/campuscope/internal/pkg/helpers"
	"github.com/jackc/pgx/v5"
)

var pollColumns = []string{"id", "college_id", "question", "created_at", "expires_at"}

func scanPoll(row pgx.Row) (*models.Poll, error) {
	var (
		p         models.Poll
		collegeID sql.NullString
		expiresAt *time.Time
	)
	if err := row.Scan(&p.ID, &collegeID, &p.Question, &p.CreatedAt, &expiresAt); err != nil {
		return nil, err
	}
	p.CollegeID = helpers.StringFromNull(collegeID)
	p.CreatedAt = p.CreatedAt.UTC()
	p.ExpiresAt = timeFromNull(expiresAt)
	p.Options = []models.PollOption{}
	return &p, nil
}

// attachOptions loads the options of polls in position order
func (s *Store) attachOptions(ctx context.Context, q querier, polls []*models.Poll) error {
	if len(polls) == 0 {
		return nil
	}
	byID := make(map[string]*models.Poll, len(polls))
	ids := make([]string, 0, len(polls))
	for _, p := range polls {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	query, args, err := build("list poll options", s.sb.Select("poll_id", "id", "text", "votes").
		From("poll_options").
		Where(squirrel.Eq{"poll_id": ids}).
		OrderBy("poll_id", "position ASC"))
	if err != nil {
		return err
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error querying poll options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			pollID string
			o      models.PollOption
		)
		if err := rows.Scan(&pollID, &o.ID, &o.Text, &o.Votes); err != nil {
			return fmt.Errorf("error scanning poll option: %w", err)
		}
		if p, ok := byID[pollID]; ok {
			p.Options = append(p.Options, o)
		}
	}
	return rows.Err()
}

func (s *Store) CreatePoll(ctx context.Context, poll *models.Poll) (*models.Poll, error) {
	p := poll.Clone()
	p.ID = s.idOr(p.ID)
	p.CreatedAt = s.timeOr(p.CreatedAt)
	for i := range p.Options {
		p.Options[i].ID = s.idOr(p.Options[i].ID)
	}
	p.Options = nonNil(p.Options)

	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query, args, err := build("create poll", s.sb.Insert("polls").Columns(pollColumns...).Values(
			p.ID, helpers.GetContentNullString(p.CollegeID), p.Question, p.CreatedAt, nullTime(p.ExpiresAt),
		))
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			switch {
			case dberrors.IsUniqueViolation(err):
				return apperrors.NewConflictError("poll already exists")
			case dberrors.IsForeignKeyError(err, ""):
				return apperrors.ErrCollegeNotFound
			}
			return fmt.Errorf("error creating poll: %w", err)
		}

		if len(p.Options) == 0 {
			return nil
		}
		insert := s.sb.Insert("poll_options").Columns("poll_id", "id", "position", "text", "votes")
		for i, o := range p.Options {
			insert = insert.Values(p.ID, o.ID, i, o.Text, o.Votes)
		}
		query, args, err = build("create poll options", insert)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("error creating poll options: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) findPoll(ctx context.Context, q querier, id string) (*models.Poll, error) {
	query, args, err := build("get poll", s.sb.Select(pollColumns...).From("polls").Where(squirrel.Eq{"id": id}).Limit(1))
	if err != nil {
		return nil, err
	}
	p, err := scanPoll(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPollNotFound
		}
		return nil, fmt.Errorf("error getting poll by ID: %w", err)
	}
	if err := s.attachOptions(ctx, q, []*models.Poll{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) FindPollByID(ctx context.Context, id string) (*models.Poll, error) {
	return s.findPoll(ctx, s.db.Pool, id)
}

func (s *Store) ListPollsByCollegeID(ctx context.Context, collegeID string) ([]*models.Poll, error) {
	query, args, err := build("list polls", s.sb.Select(pollColumns...).
		From("polls").
		Where(squirrel.Eq{"college_id": collegeID}).
		OrderBy("seq ASC"))
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying polls: %w", err)
	}
	polls, err := collect(rows, scanPoll)
	if err != nil {
		return nil, err
	}
	if err := s.attachOptions(ctx, s.db.Pool, polls); err != nil {
		return nil, err
	}
	return polls, nil
}

// VoteInPoll locks the poll row so the vote insert and counter bump commit together
func (s *Store) VoteInPoll(ctx context.Context, pollID, optionID, userID string) (bool, error) {
	var voted bool
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query, args, err := build("lock poll", s.sb.Select("id").From("polls").Where(squirrel.Eq{"id": pollID}).Suffix("FOR UPDATE"))
		if err != nil {
			return err
		}
		var id string
		if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrPollNotFound
			}
			return fmt.Errorf("error locking poll: %w", err)
		}

		query, args, err = build("find poll option", s.sb.Select("id").From("poll_options").
			Where(squirrel.Eq{"poll_id": pollID, "id": optionID}))
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrPollOptionNotFound
			}
			return fmt.Errorf("error finding poll option: %w", err)
		}

		query, args, err = build("record vote", s.sb.Insert("votes").
			Columns("id", "user_id", "poll_id", "option_id", "created_at").
			Values(s.newID(), userID, pollID, optionID, s.now()).
			Suffix("ON CONFLICT ON CONSTRAINT " + dberrors.ConstraintVotesUserPoll + " DO NOTHING"))
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("error recording vote: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		query, args, err = build("count vote", s.sb.Update("poll_options").
			Set("votes", squirrel.Expr("votes + 1")).
			Where(squirrel.Eq{"poll_id": pollID, "id": optionID}))
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("error counting vote: %w", err)
		}
		voted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return voted, nil
}

func (s *Store) FindVote(ctx context.Context, pollID, userID string) (*models.Vote, error) {
	query, args, err := build("find vote", s.sb.Select("id", "user_id", "poll_id", "option_id", "created_at").
		From("votes").
		Where(squirrel.Eq{"poll_id": pollID, "user_id": userID}).
		Limit(1))
	if err != nil {
		return nil, err
	}
	var v models.Vote
	err = s.db.Pool.QueryRow(ctx, query, args...).Scan(&v.ID, &v.UserID, &v.PollID, &v.OptionID, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding vote: %w", err)
	}
	v.CreatedAt = v.CreatedAt.UTC()
	return &v, nil
}
