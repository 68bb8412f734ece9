package repositories

import "context"

// Backend names accepted by the storage.backend setting
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Store is implemented by every storage backend. One value serves all repository interfaces.
type Store interface {
	UserRepository
	CollegeRepository
	ReviewRepository
	InteractionRepository
	PollRepository
	NotificationRepository

	// Ping reports whether the backend is reachable
	Ping(ctx context.Context) error
}

// Repositories holds all the repository instances
type Repositories struct {
	Backend      string
	User         UserRepository
	College      CollegeRepository
	Review       ReviewRepository
	Interaction  InteractionRepository
	Poll         PollRepository
	Notification NotificationRepository
	store        Store
}

// NewRepositories exposes a backend through the per-entity interfaces
func NewRepositories(backend string, store Store) *Repositories {
	return &Repositories{
		Backend:      backend,
		User:         store,
		College:      store,
		Review:       store,
		Interaction:  store,
		Poll:         store,
		Notification: store,
		store:        store,
	}
}

// Ping checks the underlying backend
func (r *Repositories) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
