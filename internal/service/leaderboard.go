package service

import (
	"sort"

	"giftcases-rest-api/internal/model"
)

// ProjectLeader derives a leaderboard entry from a user record. Best item
// is the inventory entry with maximum value; first occurrence wins on
// ties. An empty inventory projects the sentinel name with value 0.
func ProjectLeader(user *model.User) model.LeaderboardEntry {
	entry := model.LeaderboardEntry{
		ID:          user.ID,
		Username:    user.Username,
		Balance:     user.Balance,
		CasesOpened: user.CasesOpened,
		BestItem:    model.NoItemsSentinel,
	}

	if len(user.Inventory) > 0 {
		best := user.Inventory[0]
		for _, item := range user.Inventory[1:] {
			if item.Value > best.Value {
				best = item
			}
		}
		entry.BestItem = best.Name
		entry.BestItemValue = best.Value
	}

	return entry
}

// UpsertLeader replaces any entry with the same user id, appends the new
// one and re-sorts descending by balance. The sort is stable, but since
// the replaced entry is re-appended at the end, equal-balance ordering
// shifts across upserts.
func UpsertLeader(leaders []model.LeaderboardEntry, entry model.LeaderboardEntry) []model.LeaderboardEntry {
	out := leaders[:0]
	for _, l := range leaders {
		if l.ID != entry.ID {
			out = append(out, l)
		}
	}
	out = append(out, entry)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Balance > out[j].Balance
	})
	return out
}

// TopLeaders returns the first n entries of the already-sorted board.
func TopLeaders(leaders []model.LeaderboardEntry, n int) []model.LeaderboardEntry {
	if n > len(leaders) {
		n = len(leaders)
	}
	return leaders[:n]
}
