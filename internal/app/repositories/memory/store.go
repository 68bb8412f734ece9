// Package memory is the in-process storage backend. A single RWMutex guards every
// collection, so each toggle and vote runs its existence check and counter update
// as one step.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/google/uuid"
)

type reactionKey struct {
	userID, reviewID, emoji string
}

type pairKey struct {
	userID, otherID string
}

// Store implements repositories.Store in memory
type Store struct {
	mu    sync.RWMutex
	now   func() time.Time
	newID func() string

	users        map[string]*models.User
	userByEmail  map[string]string
	colleges     map[string]*models.College
	collegeOrder []string
	departments  map[string]*models.Department
	deptsByColl  map[string][]string

	reviews         map[string]*models.Review
	reviewsByColl   map[string]map[string]struct{}
	reviewsByUser   map[string]map[string]struct{}
	comments        map[string]*models.Comment
	commentsByRev   map[string][]string
	reactions       map[string]*models.Reaction
	reactionByKey   map[reactionKey]string
	reactionsByRev  map[string]map[string]struct{}
	bookmarks       map[pairKey]*models.Bookmark   // keyed by (user, review)
	bookmarkUsersBy map[string]map[string]struct{} // review -> users
	bookmarksByUser map[string]map[string]struct{} // user -> reviews

	polls        map[string]*models.Poll
	pollsByColl  map[string][]string
	votes        map[pairKey]*models.Vote // keyed by (user, poll)
	notifs       map[string]*models.Notification
	notifsByUser map[string][]string
}

var _ repositories.Store = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides id generation
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New returns an empty store
func New(opts ...Option) *Store {
	s := &Store{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,

		users:       make(map[string]*models.User),
		userByEmail: make(map[string]string),
		colleges:    make(map[string]*models.College),
		departments: make(map[string]*models.Department),
		deptsByColl: make(map[string][]string),

		reviews:         make(map[string]*models.Review),
		reviewsByColl:   make(map[string]map[string]struct{}),
		reviewsByUser:   make(map[string]map[string]struct{}),
		comments:        make(map[string]*models.Comment),
		commentsByRev:   make(map[string][]string),
		reactions:       make(map[string]*models.Reaction),
		reactionByKey:   make(map[reactionKey]string),
		reactionsByRev:  make(map[string]map[string]struct{}),
		bookmarks:       make(map[pairKey]*models.Bookmark),
		bookmarkUsersBy: make(map[string]map[string]struct{}),
		bookmarksByUser: make(map[string]map[string]struct{}),

		polls:        make(map[string]*models.Poll),
		pollsByColl:  make(map[string][]string),
		votes:        make(map[pairKey]*models.Vote),
		notifs:       make(map[string]*models.Notification),
		notifsByUser: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) idOr(id string) string {
	if id != "" {
		return id
	}
	return s.newID()
}

func (s *Store) timeOr(t time.Time) time.Time {
	if !t.IsZero() {
		return t
	}
	return s.now()
}

func addToSet(index map[string]map[string]struct{}, key, member string) {
	set, ok := index[key]
	if !ok {
		set = make(map[string]struct{})
		index[key] = set
	}
	set[member] = struct{}{}
}

func removeFromSet(index map[string]map[string]struct{}, key, member string) {
	set, ok := index[key]
	if !ok {
		return
	}
	delete(set, member)
	if len(set) == 0 {
		delete(index, key)
	}
}

// newestFirst orders by createdAt descending, id ascending on ties
func newestFirst[T any](items []T, createdAt func(T) time.Time, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := createdAt(items[i]), createdAt(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return id(items[i]) < id(items[j])
	})
}
