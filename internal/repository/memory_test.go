package repository

import (
	"context"
	"testing"

	"giftcases-rest-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Users(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	missing, err := s.GetUserByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing, "absent users come back as nil, not an error")

	user := &model.User{ID: "u1", Email: "a@example.com", Username: "alice", Balance: 100}
	require.NoError(t, s.SaveUser(ctx, user))

	byID, err := s.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice", byID.Username)

	byEmail, err := s.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "u1", byEmail.ID)

	byName, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, "u1", byName.ID)
}

func TestMemoryStore_SaveOverwrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	user := &model.User{ID: "u1", Email: "a@example.com", Username: "alice", Balance: 100}
	require.NoError(t, s.SaveUser(ctx, user))

	user.Balance = 250
	require.NoError(t, s.SaveUser(ctx, user))

	stored, err := s.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 250, stored.Balance)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	user := &model.User{
		ID: "u1", Email: "a@example.com", Username: "alice",
		Inventory: []model.Item{{ID: "i1", Name: "Rose", Value: 12}},
	}
	require.NoError(t, s.SaveUser(ctx, user))

	loaded, err := s.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	loaded.Inventory[0].Value = 999
	loaded.Balance = 999

	again, err := s.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 12, again.Inventory[0].Value, "mutating a loaded record must not leak into the store")
	assert.Equal(t, 0, again.Balance)
}

func TestMemoryStore_Leaders(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	leaders, err := s.LoadLeaders(ctx)
	require.NoError(t, err)
	assert.Empty(t, leaders, "absent board is an empty board")

	board := []model.LeaderboardEntry{
		{ID: "u1", Username: "alice", Balance: 200},
		{ID: "u2", Username: "bob", Balance: 100},
	}
	require.NoError(t, s.SaveLeaders(ctx, board))

	loaded, err := s.LoadLeaders(ctx)
	require.NoError(t, err)
	assert.Equal(t, board, loaded)
}
