package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

type fixture struct {
	store   *Store
	college *models.College
	owner   *models.User
	reader  *models.User
}

func newTestStore() *Store {
	var seq int64
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return New(
		WithIDGenerator(func() string { return fmt.Sprintf("id-%d", atomic.AddInt64(&seq, 1)) }),
		WithClock(func() time.Time { return base.Add(time.Duration(atomic.AddInt64(&seq, 1)) * time.Minute) }),
	)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := newTestStore()

	college, err := s.CreateCollege(ctx, &models.College{ID: "1", Name: "Indian Institute of Technology, Delhi", ShortName: "IIT Delhi", Location: "New Delhi, Delhi"})
	require.NoError(t, err)
	owner, err := s.CreateUser(ctx, &models.User{ID: "1", Name: "John Doe", Email: "john@example.com"})
	require.NoError(t, err)
	reader, err := s.CreateUser(ctx, &models.User{ID: "2", Name: "Jane Smith", Email: "jane@example.com"})
	require.NoError(t, err)

	return &fixture{store: s, college: college, owner: owner, reader: reader}
}

func (f *fixture) review(t *testing.T, rating float64) *models.Review {
	t.Helper()
	r, err := f.store.CreateReview(context.Background(), &models.Review{
		UserID:    f.owner.ID,
		CollegeID: f.college.ID,
		Content:   "Great labs",
		Rating:    rating,
		Tags:      []string{"academics"},
	})
	require.NoError(t, err)
	return r
}

// ---------------------------------------------------------------------------
// users
// ---------------------------------------------------------------------------

func TestCreateUser_Defaults(t *testing.T) {
	s := newTestStore()
	u, err := s.CreateUser(context.Background(), &models.User{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, models.RoleUser, u.Role)
}

func TestCreateUser_EmailUniqueness(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.CreateUser(context.Background(), &models.User{Name: "Impostor", Email: "john@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	// Exact match only: a different case is a different email
	_, err = f.store.CreateUser(context.Background(), &models.User{Name: "Other", Email: "John@example.com"})
	assert.NoError(t, err)
}

func TestCreateUser_ConcurrentSameEmail(t *testing.T) {
	s := newTestStore()
	var wg sync.WaitGroup
	var created int64
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.CreateUser(context.Background(), &models.User{Name: "X", Email: "race@example.com"}); err == nil {
				atomic.AddInt64(&created, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1), created)
}

func TestFindUserByEmail(t *testing.T) {
	f := newFixture(t)
	u, err := f.store.FindUserByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "2", u.ID)

	_, err = f.store.FindUserByEmail(context.Background(), "JANE@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	bio := "CS student"
	anon := true
	name := "quietfox"

	u, err := f.store.UpdateUser(context.Background(), f.owner.ID, models.UserUpdate{Bio: &bio, IsAnonymous: &anon, Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "CS student", u.Bio)
	assert.True(t, u.IsAnonymous)
	assert.Equal(t, "John Doe", u.Name, "unset fields are kept")

	_, err = f.store.UpdateUser(context.Background(), "missing", models.UserUpdate{Bio: &bio})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	f := newFixture(t)
	u, err := f.store.FindUserByID(context.Background(), f.owner.ID)
	require.NoError(t, err)
	u.Name = "mutated"

	again, err := f.store.FindUserByID(context.Background(), f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", again.Name)
}

// ---------------------------------------------------------------------------
// colleges
// ---------------------------------------------------------------------------

func TestSearchColleges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.store.CreateCollege(ctx, &models.College{ID: "2", Name: "Indian Institute of Management, Ahmedabad", ShortName: "IIM-A", Location: "Ahmedabad, Gujarat"})
	require.NoError(t, err)

	got, err := f.store.SearchColleges(ctx, "ahmedabad")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got, err = f.store.SearchColleges(ctx, "iit")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	got, err = f.store.SearchColleges(ctx, "INDIAN")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCreateDepartment_RequiresCollege(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.CreateDepartment(context.Background(), &models.Department{CollegeID: "nope", Name: "X"})
	assert.ErrorIs(t, err, apperrors.ErrCollegeNotFound)

	d, err := f.store.CreateDepartment(context.Background(), &models.Department{CollegeID: "1", Name: "CSE"})
	require.NoError(t, err)
	depts, err := f.store.ListDepartmentsByCollegeID(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, depts, 1)
	assert.Equal(t, d.ID, depts[0].ID)
}

// ---------------------------------------------------------------------------
// reviews
// ---------------------------------------------------------------------------

func TestCreateReview_StartsWithoutReactions(t *testing.T) {
	f := newFixture(t)
	r := f.review(t, 4.5)

	assert.NotEmpty(t, r.ID)
	assert.NotNil(t, r.Reactions)
	assert.Empty(t, r.Reactions)
	assert.Equal(t, r.CreatedAt, r.UpdatedAt)
}

func TestListReviews_NewestFirstAndFiltered(t *testing.T) {
	f := newFixture(t)
	first := f.review(t, 3)
	second := f.review(t, 4)
	ctx := context.Background()

	other, err := f.store.CreateReview(ctx, &models.Review{UserID: f.reader.ID, CollegeID: "elsewhere", Content: "x", Rating: 2})
	require.NoError(t, err)

	got, err := f.store.ListReviews(ctx, repositories.ReviewFilter{CollegeID: f.college.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)

	got, err = f.store.ListReviews(ctx, repositories.ReviewFilter{UserID: f.reader.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, other.ID, got[0].ID)

	got, err = f.store.ListReviews(ctx, repositories.ReviewFilter{IDs: []string{first.ID, "missing", first.ID}})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestUpdateReview(t *testing.T) {
	f := newFixture(t)
	r := f.review(t, 3)
	content := "Edited"

	updated, err := f.store.UpdateReview(context.Background(), r.ID, models.ReviewUpdate{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Content)
	assert.Equal(t, 3.0, updated.Rating)
	assert.True(t, updated.UpdatedAt.After(r.UpdatedAt))

	_, err = f.store.UpdateReview(context.Background(), "missing", models.ReviewUpdate{Content: &content})
	assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)
}

func TestDeleteReview_Cascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.review(t, 4.5)
	keep := f.review(t, 2)

	_, err := f.store.CreateComment(ctx, &models.Comment{UserID: f.reader.ID, ReviewID: r.ID, Content: "Nice"})
	require.NoError(t, err)
	_, _, err = f.store.ToggleReaction(ctx, f.reader.ID, r.ID, "🔥")
	require.NoError(t, err)
	_, err = f.store.ToggleBookmark(ctx, f.reader.ID, r.ID)
	require.NoError(t, err)
	_, err = f.store.ToggleBookmark(ctx, f.reader.ID, keep.ID)
	require.NoError(t, err)

	require.NoError(t, f.store.DeleteReview(ctx, r.ID))

	_, err = f.store.FindReviewByID(ctx, r.ID)
	assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)

	comments, err := f.store.ListCommentsByReviewID(ctx, r.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	reactions, err := f.store.ListReactionsByReviewID(ctx, r.ID)
	require.NoError(t, err)
	assert.Empty(t, reactions)

	bookmarked, err := f.store.IsBookmarked(ctx, f.reader.ID, r.ID)
	require.NoError(t, err)
	assert.False(t, bookmarked)

	bookmarks, err := f.store.ListBookmarksByUserID(ctx, f.reader.ID)
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, keep.ID, bookmarks[0].ReviewID)

	assert.ErrorIs(t, f.store.DeleteReview(ctx, r.ID), apperrors.ErrReviewNotFound)
}

func TestRatingStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.review(t, 4)
	f.review(t, 5)
	_, err := f.store.CreateReview(ctx, &models.Review{UserID: "1", CollegeID: "1", DepartmentID: "d1", Content: "x", Rating: 3})
	require.NoError(t, err)

	byCollege, err := f.store.RatingStats(ctx, repositories.GroupByCollege)
	require.NoError(t, err)
	assert.Equal(t, 3, byCollege["1"].Count)
	assert.InDelta(t, 4.0, byCollege["1"].Average, 1e-9)

	byDept, err := f.store.RatingStats(ctx, repositories.GroupByDepartment)
	require.NoError(t, err)
	assert.Len(t, byDept, 1)
	assert.Equal(t, 1, byDept["d1"].Count)
}

// ---------------------------------------------------------------------------
// reactions & bookmarks
// ---------------------------------------------------------------------------

func TestToggleReaction_TwiceRestoresCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.review(t, 4.5)

	reaction, added, err := f.store.ToggleReaction(ctx, f.reader.ID, r.ID, "🔥")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "🔥", reaction.Emoji)

	got, err := f.store.FindReviewByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Reactions["🔥"])

	removed, added, err := f.store.ToggleReaction(ctx, f.reader.ID, r.ID, "🔥")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, reaction.ID, removed.ID)

	got, err = f.store.FindReviewByID(ctx, r.ID)
	require.NoError(t, err)
	_, present := got.Reactions["🔥"]
	assert.False(t, present, "key is removed at zero")
}

func TestToggleReaction_MissingReview(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.store.ToggleReaction(context.Background(), f.reader.ID, "missing", "🔥")
	assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)
}

func TestToggleReaction_CounterMatchesRecordsUnderConcurrency(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.review(t, 4)
	emojis := []string{"🔥", "💀", "👍"}

	var wg sync.WaitGroup
	for u := 0; u < 8; u++ {
		for i := 0; i < 25; i++ {
			wg.Add(1)
			go func(user, i int) {
				defer wg.Done()
				_, _, err := f.store.ToggleReaction(ctx, fmt.Sprintf("u%d", user), r.ID, emojis[i%len(emojis)])
				assert.NoError(t, err)
			}(u, i)
		}
	}
	wg.Wait()

	got, err := f.store.FindReviewByID(ctx, r.ID)
	require.NoError(t, err)
	reactions, err := f.store.ListReactionsByReviewID(ctx, r.ID)
	require.NoError(t, err)

	live := make(map[string]int)
	for _, rc := range reactions {
		live[rc.Emoji]++
	}
	for _, e := range emojis {
		assert.Equal(t, live[e], got.Reactions[e], e)
	}
}

func TestToggleBookmark(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.review(t, 4)

	on, err := f.store.ToggleBookmark(ctx, f.reader.ID, r.ID)
	require.NoError(t, err)
	assert.True(t, on)

	is, err := f.store.IsBookmarked(ctx, f.reader.ID, r.ID)
	require.NoError(t, err)
	assert.True(t, is)

	on, err = f.store.ToggleBookmark(ctx, f.reader.ID, r.ID)
	require.NoError(t, err)
	assert.False(t, on)

	bookmarks, err := f.store.ListBookmarksByUserID(ctx, f.reader.ID)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)

	_, err = f.store.ToggleBookmark(ctx, f.reader.ID, "missing")
	assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)
}

func TestComments_OldestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.review(t, 4)

	first, err := f.store.CreateComment(ctx, &models.Comment{UserID: f.reader.ID, ReviewID: r.ID, Content: "first"})
	require.NoError(t, err)
	_, err = f.store.CreateComment(ctx, &models.Comment{UserID: f.owner.ID, ReviewID: r.ID, Content: "second"})
	require.NoError(t, err)

	comments, err := f.store.ListCommentsByReviewID(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)

	counts, err := f.store.CountCommentsByReviewIDs(ctx, []string{r.ID, "none"})
	require.NoError(t, err)
	assert.Equal(t, 2, counts[r.ID])
	assert.Equal(t, 0, counts["none"])

	_, err = f.store.CreateComment(ctx, &models.Comment{UserID: f.reader.ID, ReviewID: "missing", Content: "x"})
	assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)
}

// ---------------------------------------------------------------------------
// polls
// ---------------------------------------------------------------------------

func newPoll(t *testing.T, s *Store) *models.Poll {
	t.Helper()
	p, err := s.CreatePoll(context.Background(), &models.Poll{
		ID:        "1",
		CollegeID: "1",
		Question:  "Which aspect do you value the most?",
		Options: []models.PollOption{
			{ID: "1", Text: "Academic Excellence", Votes: 145},
			{ID: "2", Text: "Campus Life", Votes: 76},
		},
	})
	require.NoError(t, err)
	return p
}

func TestVoteInPoll_SecondVoteRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	newPoll(t, f.store)

	ok, err := f.store.VoteInPoll(ctx, "1", "1", f.reader.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	before, err := f.store.FindPollByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 146, before.Options[0].Votes)

	ok, err = f.store.VoteInPoll(ctx, "1", "2", f.reader.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	after, err := f.store.FindPollByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, before.Options, after.Options)

	vote, err := f.store.FindVote(ctx, "1", f.reader.ID)
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.Equal(t, "1", vote.OptionID)

	none, err := f.store.FindVote(ctx, "1", f.owner.ID)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestVoteInPoll_UnknownPollOrOption(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	newPoll(t, f.store)

	_, err := f.store.VoteInPoll(ctx, "missing", "1", f.reader.ID)
	assert.ErrorIs(t, err, apperrors.ErrPollNotFound)

	_, err = f.store.VoteInPoll(ctx, "1", "99", f.reader.ID)
	assert.ErrorIs(t, err, apperrors.ErrPollOptionNotFound)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	p, err := f.store.FindPollByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 221, p.TotalVotes())
}

func TestVoteInPoll_ConcurrentSingleVote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	newPoll(t, f.store)

	var wg sync.WaitGroup
	var accepted int64
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := f.store.VoteInPoll(ctx, "1", "2", f.reader.ID)
			assert.NoError(t, err)
			if ok {
				atomic.AddInt64(&accepted, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), accepted)
	p, err := f.store.FindPollByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 77, p.Options[1].Votes)
}

// ---------------------------------------------------------------------------
// notifications
// ---------------------------------------------------------------------------

func TestMarkNotificationsAsRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.store.CreateNotification(ctx, &models.Notification{UserID: f.owner.ID, Type: models.NotificationComment, Message: "m"})
		require.NoError(t, err)
	}
	_, err := f.store.CreateNotification(ctx, &models.Notification{UserID: f.reader.ID, Type: models.NotificationSystem, Message: "m"})
	require.NoError(t, err)

	require.NoError(t, f.store.MarkNotificationsAsRead(ctx, f.owner.ID))

	mine, err := f.store.ListNotificationsByUserID(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	for _, n := range mine {
		assert.True(t, n.Read)
	}
	assert.True(t, mine[0].CreatedAt.After(mine[2].CreatedAt), "newest first")

	theirs, err := f.store.ListNotificationsByUserID(ctx, f.reader.ID)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.False(t, theirs[0].Read)
}
