package repository

import (
	"context"
	"sync"

	"giftcases-rest-api/internal/model"
)

// MemoryStore is an in-memory implementation of Store. Used in tests and
// acceptable for throwaway single-instance deployments; nothing survives
// a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[string]*model.User
	leaders []model.LeaderboardEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*model.User),
	}
}

func cloneUser(u *model.User) *model.User {
	cp := *u
	cp.Inventory = append([]model.Item(nil), u.Inventory...)
	cp.Achievements = append([]string(nil), u.Achievements...)
	if u.LastBonusDate != nil {
		t := *u.LastBonusDate
		cp.LastBonusDate = &t
	}
	return &cp
}

// GetUserByID retrieves a user record by id.
func (s *MemoryStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

// GetUserByEmail retrieves a user record by email.
func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// GetUserByUsername retrieves a user record by username.
func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// SaveUser inserts or overwrites a user record.
func (s *MemoryStore) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = cloneUser(user)
	return nil
}

// LoadLeaders reads the full leaderboard document.
func (s *MemoryStore) LoadLeaders(ctx context.Context) ([]model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.LeaderboardEntry, len(s.leaders))
	copy(out, s.leaders)
	return out, nil
}

// SaveLeaders overwrites the full leaderboard document.
func (s *MemoryStore) SaveLeaders(ctx context.Context, leaders []model.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.leaders = make([]model.LeaderboardEntry, len(leaders))
	copy(s.leaders, leaders)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
