package service

import (
	"testing"

	"giftcases-rest-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectLeader_EmptyInventory(t *testing.T) {
	user := newTestUser()

	entry := ProjectLeader(user)
	assert.Equal(t, user.ID, entry.ID)
	assert.Equal(t, user.Username, entry.Username)
	assert.Equal(t, 100, entry.Balance)
	assert.Equal(t, model.NoItemsSentinel, entry.BestItem)
	assert.Equal(t, 0, entry.BestItemValue)
}

func TestProjectLeader_BestItemFirstWinsTies(t *testing.T) {
	user := newTestUser()
	user.Inventory = []model.Item{
		{ID: "a", Name: "Rose", Value: 12},
		{ID: "b", Name: "Top Hat", Value: 35},
		{ID: "c", Name: "Other Hat", Value: 35},
	}

	entry := ProjectLeader(user)
	assert.Equal(t, "Top Hat", entry.BestItem, "first occurrence wins on value ties")
	assert.Equal(t, 35, entry.BestItemValue)
}

func TestUpsertLeader_ReplacesAndSorts(t *testing.T) {
	board := []model.LeaderboardEntry{
		{ID: "u1", Username: "alice", Balance: 300},
		{ID: "u2", Username: "bob", Balance: 200},
		{ID: "u3", Username: "carol", Balance: 100},
	}

	board = UpsertLeader(board, model.LeaderboardEntry{ID: "u3", Username: "carol", Balance: 500})

	require.Len(t, board, 3, "at most one entry per user id")
	assert.Equal(t, "u3", board[0].ID)
	assert.Equal(t, "u1", board[1].ID)
	assert.Equal(t, "u2", board[2].ID)

	for i := 1; i < len(board); i++ {
		assert.GreaterOrEqual(t, board[i-1].Balance, board[i].Balance)
	}
}

func TestUpsertLeader_NewEntry(t *testing.T) {
	var board []model.LeaderboardEntry

	board = UpsertLeader(board, model.LeaderboardEntry{ID: "u1", Balance: 50})
	board = UpsertLeader(board, model.LeaderboardEntry{ID: "u2", Balance: 150})

	require.Len(t, board, 2)
	assert.Equal(t, "u2", board[0].ID)
}

func TestTopLeaders(t *testing.T) {
	board := make([]model.LeaderboardEntry, 0, 60)
	for i := 0; i < 60; i++ {
		board = UpsertLeader(board, model.LeaderboardEntry{ID: string(rune('A' + i)), Balance: i})
	}

	top := TopLeaders(board, 50)
	assert.Len(t, top, 50)

	small := TopLeaders(board[:3], 50)
	assert.Len(t, small, 3, "top is capped at collection size")
}
