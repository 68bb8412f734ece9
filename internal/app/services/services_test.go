package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/app/repositories/memory"
	"github.com/campuscope/campuscope/internal/pkg/auth"
	"github.com/stretchr/testify/require"
)

type published struct {
	view, eventType string
	payload         any
}

// recordingBroadcaster remembers every invalidation and event
type recordingBroadcaster struct {
	mu          sync.Mutex
	invalidated []string
	events      []published
}

func (b *recordingBroadcaster) Invalidate(views ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invalidated = append(b.invalidated, views...)
}

func (b *recordingBroadcaster) Publish(view, eventType string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, published{view, eventType, payload})
}

func (b *recordingBroadcaster) Views() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.invalidated...)
}

func (b *recordingBroadcaster) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invalidated = nil
	b.events = nil
}

type fixture struct {
	store       *memory.Store
	services    *Services
	broadcaster *recordingBroadcaster
	jwt         *auth.JWTService

	college    *models.College
	department *models.Department
	owner      *models.User
	reader     *models.User
	admin      *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		store:       memory.New(),
		broadcaster: &recordingBroadcaster{},
		jwt: auth.NewJWTService(auth.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenExp: time.Hour,
			TokenIssuer:    "campuscope-test",
		}),
	}
	f.services = NewServices(repositories.NewRepositories(repositories.BackendMemory, f.store), f.jwt, f.broadcaster)

	var err error
	f.college, err = f.store.CreateCollege(ctx, &models.College{
		ID:        "1",
		Name:      "IIT Delhi",
		ShortName: "IITD",
		Location:  "New Delhi",
		Country:   "India",
		Type:      "Public",
		Ranking:   2,
	})
	require.NoError(t, err)
	f.department, err = f.store.CreateDepartment(ctx, &models.Department{ID: "d1", CollegeID: "1", Name: "Computer Science"})
	require.NoError(t, err)

	f.owner = f.createUser(t, "Owner Person", "owner@example.com", models.RoleUser)
	f.reader = f.createUser(t, "Reader Person", "reader@example.com", models.RoleUser)
	f.admin = f.createUser(t, "Admin Person", "admin@example.com", models.RoleAdmin)
	return f
}

func (f *fixture) createUser(t *testing.T, name, email string, role models.RoleType) *models.User {
	t.Helper()
	u, err := f.store.CreateUser(context.Background(), &models.User{Name: name, Email: email, Role: role})
	require.NoError(t, err)
	return u
}

func (f *fixture) createReview(t *testing.T, userID string, rating float64, createdAt time.Time, reviewTags ...string) *models.Review {
	t.Helper()
	r, err := f.store.CreateReview(context.Background(), &models.Review{
		UserID:    userID,
		CollegeID: f.college.ID,
		Content:   "Review content",
		Rating:    rating,
		CreatedAt: createdAt,
		Tags:      reviewTags,
	})
	require.NoError(t, err)
	return r
}
