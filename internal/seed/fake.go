package seed

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jaswdr/faker"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/pkg/tags"
)

// FakePassword is the password of every generated demo account
const FakePassword = "campuscope-demo"

var fakeTags = []string{
	"Academics", "Placements", "Faculty", "Research", "Labs", "Curriculum",
	"Campus", "Hostel", "Food", "Sports", "Networking", "Fests",
}

// Fake generates demo accounts and reviews spread over the existing colleges.
// Reviews are attributed to the generated accounts, or to the reference users when none are generated.
func (s *Seeder) Fake(ctx context.Context, userCount, reviewCount int) error {
	if userCount == 0 && reviewCount == 0 {
		return nil
	}
	fake := faker.New()

	authors, err := s.fakeUsers(ctx, fake, userCount)
	if err != nil {
		return fmt.Errorf("generate users: %w", err)
	}
	if len(authors) == 0 {
		for _, demo := range demoUsers {
			authors = append(authors, demo.user.ID)
		}
	}

	if err := s.fakeReviews(ctx, fake, authors, reviewCount); err != nil {
		return fmt.Errorf("generate reviews: %w", err)
	}
	s.logger.Info().Int("users", userCount).Int("reviews", reviewCount).Msg("Demo data generated")
	return nil
}

func (s *Seeder) fakeUsers(ctx context.Context, fake faker.Faker, count int) ([]string, error) {
	if count == 0 {
		return nil, nil
	}
	hash, err := s.hash(FakePassword)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, count)
	batch := s.now().UnixNano()
	for i := 0; i < count; i++ {
		first, last := fake.Person().FirstName(), fake.Person().LastName()
		user := &models.User{
			Name:         first + " " + last,
			Email:        fmt.Sprintf("%s.%s.%d.%d@demo.campuscope.dev", strings.ToLower(first), strings.ToLower(last), batch, i),
			PasswordHash: hash,
			Role:         models.RoleUser,
			Location:     fake.Address().City(),
		}
		if fake.IntBetween(0, 2) == 0 {
			user.IsAnonymous = true
			user.Username = fmt.Sprintf("%s%d", strings.ToLower(fake.Person().FirstName()), fake.IntBetween(10, 99))
			user.AvatarStyle = models.AvatarStyles[fake.IntBetween(0, len(models.AvatarStyles)-1)]
			user.AvatarColor = models.AvatarColors[fake.IntBetween(0, len(models.AvatarColors)-1)]
		}
		created, err := s.repos.User.CreateUser(ctx, user)
		if err != nil {
			return nil, err
		}
		ids = append(ids, created.ID)
	}
	return ids, nil
}

func (s *Seeder) fakeReviews(ctx context.Context, fake faker.Faker, authors []string, count int) error {
	if count == 0 {
		return nil
	}
	colleges, err := s.repos.College.ListColleges(ctx)
	if err != nil {
		return err
	}
	if len(colleges) == 0 {
		return fmt.Errorf("no colleges to review")
	}

	for i := 0; i < count; i++ {
		college := colleges[fake.IntBetween(0, len(colleges)-1)]
		departments, err := s.repos.College.ListDepartmentsByCollegeID(ctx, college.ID)
		if err != nil {
			return err
		}

		createdAt := s.now().Add(-time.Duration(fake.IntBetween(0, 365*24)) * time.Hour)
		review := &models.Review{
			UserID:      authors[fake.IntBetween(0, len(authors)-1)],
			CollegeID:   college.ID,
			Content:     fake.Lorem().Paragraph(2),
			Rating:      float64(fake.IntBetween(2, 10)) / 2,
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
			IsAnonymous: fake.IntBetween(0, 3) == 0,
			Tags:        pickTags(fake),
		}
		if len(departments) > 0 && fake.Bool() {
			review.DepartmentID = departments[fake.IntBetween(0, len(departments)-1)].ID
		}
		if _, err := s.repos.Review.CreateReview(ctx, review); err != nil {
			return err
		}
	}
	return nil
}

func pickTags(fake faker.Faker) []string {
	n := fake.IntBetween(1, 3)
	picked := make([]string, 0, n)
	for len(picked) < n {
		tag := fake.RandomStringElement(fakeTags)
		if !slices.Contains(picked, tag) {
			picked = append(picked, tag)
		}
	}
	return tags.Normalize(picked)
}
