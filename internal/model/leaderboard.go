package model

// NoItemsSentinel is the best-item name shown for users with an empty inventory.
const NoItemsSentinel = "No items"

// LeaderboardEntry is derived ranking data, recomputed wholesale from the
// user record on every balance-affecting mutation. Never authoritative.
type LeaderboardEntry struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Balance       int    `json:"balance"`
	CasesOpened   int    `json:"casesOpened"`
	BestItem      string `json:"bestItem"`
	BestItemValue int    `json:"bestItemValue"`
}
