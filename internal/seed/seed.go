// Package seed loads reference colleges and demo activity into an empty store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/campuscope/campuscope/internal/pkg/auth"
	"github.com/campuscope/campuscope/internal/pkg/tags"
)

// Seeder writes seed data through the repositories so every backend gets the same rows
type Seeder struct {
	repos  *repositories.Repositories
	logger zerolog.Logger
	now    func() time.Time
	hash   func(string) (string, error)
}

// NewSeeder creates a seeder. now anchors poll expiry.
func NewSeeder(repos *repositories.Repositories, now func() time.Time, logger zerolog.Logger) *Seeder {
	return &Seeder{
		repos:  repos,
		logger: logger,
		now:    now,
		hash:   auth.HashPassword,
	}
}

// Run loads the reference data once. A store that already holds the first
// reference college is left untouched.
func (s *Seeder) Run(ctx context.Context) error {
	_, err := s.repos.College.FindCollegeByID(ctx, colleges[0].ID)
	switch {
	case err == nil:
		s.logger.Info().Msg("Reference data already present, skipping seed")
		return nil
	case !errors.Is(err, apperrors.ErrCollegeNotFound):
		return fmt.Errorf("check existing seed: %w", err)
	}

	s.logger.Info().Msg("Seeding reference data...")
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"users", s.seedUsers},
		{"colleges", s.seedColleges},
		{"reviews", s.seedReviews},
		{"interactions", s.seedInteractions},
		{"polls", s.seedPolls},
		{"notifications", s.seedNotifications},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			s.logger.Error().Err(err).Str("step", step.name).Msg("Seeding failed")
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
	}
	s.logger.Info().Msg("Reference data seeded")
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	for _, demo := range demoUsers {
		hash, err := s.hash(demo.password)
		if err != nil {
			return err
		}
		user := demo.user.Clone()
		user.PasswordHash = hash
		_, err = s.repos.User.CreateUser(ctx, user)
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			s.logger.Info().Str("email", user.Email).Msg("Demo user already exists, skipping")
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedColleges(ctx context.Context) error {
	for i := range colleges {
		if _, err := s.repos.College.CreateCollege(ctx, colleges[i].Clone()); err != nil {
			return err
		}
	}
	for i := range departments {
		if _, err := s.repos.College.CreateDepartment(ctx, departments[i].Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedReviews(ctx context.Context) error {
	for i := range reviews {
		review := reviews[i].Clone()
		review.UpdatedAt = review.CreatedAt
		review.Tags = tags.Normalize(review.Tags)
		if _, err := s.repos.Review.CreateReview(ctx, review); err != nil {
			return err
		}
	}
	return nil
}

// seedInteractions goes through the toggles so review reaction counters match the reaction records
func (s *Seeder) seedInteractions(ctx context.Context) error {
	for i := range comments {
		c := comments[i]
		if _, err := s.repos.Interaction.CreateComment(ctx, &c); err != nil {
			return err
		}
	}
	for _, r := range reactions {
		if _, _, err := s.repos.Interaction.ToggleReaction(ctx, r.UserID, r.ReviewID, r.Emoji); err != nil {
			return err
		}
	}
	for _, b := range bookmarks {
		if _, err := s.repos.Interaction.ToggleBookmark(ctx, b.UserID, b.ReviewID); err != nil {
			return err
		}
	}
	return nil
}

// seedPolls keeps the historical option tallies and adds the demo users' votes on top
func (s *Seeder) seedPolls(ctx context.Context) error {
	for i := range polls {
		poll := polls[i].Clone()
		poll.ExpiresAt = s.now().Add(pollLifetime)
		if _, err := s.repos.Poll.CreatePoll(ctx, poll); err != nil {
			return err
		}
	}
	for _, v := range votes {
		if _, err := s.repos.Poll.VoteInPoll(ctx, v.PollID, v.OptionID, v.UserID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedNotifications(ctx context.Context) error {
	for i := range notifications {
		n := notifications[i]
		if _, err := s.repos.Notification.CreateNotification(ctx, &n); err != nil {
			return err
		}
	}
	return nil
}
