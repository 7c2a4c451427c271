package repository

import (
	"context"

	"giftcases-rest-api/internal/model"
)

// Store defines data access for the users and leaders collections.
// User records are addressed individually; the leaderboard is written as
// a whole document on every mutation, since it is derived data that gets
// re-sorted wholesale anyway.
//
// Lookups return (nil, nil) when no record matches.
type Store interface {
	// GetUserByID retrieves a user record by opaque id.
	GetUserByID(ctx context.Context, id string) (*model.User, error)

	// GetUserByEmail retrieves a user record by email.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// GetUserByUsername retrieves a user record by username.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// SaveUser inserts or overwrites a user record.
	SaveUser(ctx context.Context, user *model.User) error

	// LoadLeaders reads the full leaderboard document. An absent document
	// is an empty board, not an error.
	LoadLeaders(ctx context.Context) ([]model.LeaderboardEntry, error)

	// SaveLeaders overwrites the full leaderboard document.
	SaveLeaders(ctx context.Context, leaders []model.LeaderboardEntry) error

	// Close closes the store connection.
	Close() error
}
