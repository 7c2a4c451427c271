package model

// AchievementKind selects which user counter an achievement rule checks.
type AchievementKind string

const (
	// AchievementCasesOpened unlocks at a cases-opened threshold.
	AchievementCasesOpened AchievementKind = "cases_opened"
	// AchievementBalance unlocks at a balance threshold.
	AchievementBalance AchievementKind = "balance"
	// AchievementDistinctItems unlocks at a distinct-item-name threshold.
	AchievementDistinctItems AchievementKind = "distinct_items"
)

// Achievement is a fixed catalog rule: when Kind's counter reaches
// Threshold, the achievement unlocks once and credits Reward stars.
type Achievement struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Kind      AchievementKind `json:"-"`
	Threshold int             `json:"threshold"`
	Reward    int             `json:"reward"`
}
