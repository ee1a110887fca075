package session

import "context"

// ItemRepository is the persistence contract RepoStore binds to.
type ItemRepository interface {
	GetItem(ctx context.Context, sessionID, key string) (string, bool, error)
	SetItem(ctx context.Context, sessionID, key, value string) error
}

// RepoStore is a Store scoped to one session ID, backed by a repository.
type RepoStore struct {
	repo      ItemRepository
	sessionID string
}

// NewRepoStore binds a repository to a single session's items.
func NewRepoStore(repo ItemRepository, sessionID string) *RepoStore {
	return &RepoStore{
		repo:      repo,
		sessionID: sessionID,
	}
}

func (s *RepoStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	return s.repo.GetItem(ctx, s.sessionID, key)
}

func (s *RepoStore) SetItem(ctx context.Context, key, value string) error {
	return s.repo.SetItem(ctx, s.sessionID, key, value)
}
