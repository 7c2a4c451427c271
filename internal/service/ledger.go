package service

import (
	"errors"
	"strings"
	"time"

	"giftcases-rest-api/internal/model"
	"giftcases-rest-api/pkg/uid"
)

var (
	// ErrInsufficientBalance means a debit would push the balance negative.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrItemNotFound means no inventory entry matches the given item id.
	ErrItemNotFound = errors.New("item not found")
	// ErrBonusAlreadyClaimed means the daily bonus was already taken today.
	ErrBonusAlreadyClaimed = errors.New("daily bonus already claimed today")
	// ErrInvalidPromoCode means the code matches nothing in the promo table.
	ErrInvalidPromoCode = errors.New("invalid promo code")
	// ErrPermissionDenied means the actor lacks admin privilege.
	ErrPermissionDenied = errors.New("permission denied")
)

// DefaultPromoCodes maps promo codes (upper case) to the stars they credit.
// Codes are matched case-insensitively and carry no per-user redemption
// tracking, so a code stays redeemable indefinitely.
var DefaultPromoCodes = map[string]int{
	"TELEGRAM2023": 50,
	"GIFTS2023":    30,
}

// DefaultAchievements is the fixed achievement catalog.
var DefaultAchievements = []model.Achievement{
	{ID: "first_case", Name: "First Case", Kind: model.AchievementCasesOpened, Threshold: 1, Reward: 10},
	{ID: "case_veteran", Name: "Case Veteran", Kind: model.AchievementCasesOpened, Threshold: 10, Reward: 50},
	{ID: "case_addict", Name: "Case Addict", Kind: model.AchievementCasesOpened, Threshold: 50, Reward: 200},
	{ID: "high_roller", Name: "High Roller", Kind: model.AchievementBalance, Threshold: 500, Reward: 50},
	{ID: "collector", Name: "Collector", Kind: model.AchievementDistinctItems, Threshold: 5, Reward: 100},
}

// Ledger holds balance and inventory mutation logic for a single user
// record. All operations mutate the record in memory only; persisting the
// result is the caller's responsibility (load-mutate-save).
type Ledger struct {
	dailyBonus   int
	promoCodes   map[string]int
	achievements []model.Achievement
}

// NewLedger creates a ledger with the default promo and achievement tables.
func NewLedger(dailyBonus int) *Ledger {
	return &Ledger{
		dailyBonus:   dailyBonus,
		promoCodes:   DefaultPromoCodes,
		achievements: DefaultAchievements,
	}
}

// Achievements returns the fixed achievement catalog.
func (l *Ledger) Achievements() []model.Achievement {
	return l.achievements
}

// Grant appends an item to the inventory under a freshly generated grant
// id and returns the granted entry. Nothing else is touched.
func (l *Ledger) Grant(user *model.User, tpl model.ItemTemplate) model.Item {
	item := model.Item{
		ID:    uid.New(),
		Name:  tpl.Name,
		Emoji: tpl.Emoji,
		Value: tpl.Value,
	}
	user.Inventory = append(user.Inventory, item)
	return item
}

// Debit subtracts amount from the balance. The balance never goes
// negative; an uncovered debit fails with ErrInsufficientBalance.
func (l *Ledger) Debit(user *model.User, amount int) error {
	if user.Balance < amount {
		return ErrInsufficientBalance
	}
	user.Balance -= amount
	return nil
}

// Credit adds amount to the balance. No upper bound is enforced.
func (l *Ledger) Credit(user *model.User, amount int) {
	user.Balance += amount
}

// SellItem removes the inventory entry with the given id and credits its
// value to the balance. Returns the removed item.
func (l *Ledger) SellItem(user *model.User, itemID string) (model.Item, error) {
	for i, item := range user.Inventory {
		if item.ID == itemID {
			user.Inventory = append(user.Inventory[:i], user.Inventory[i+1:]...)
			user.Balance += item.Value
			return item, nil
		}
	}
	return model.Item{}, ErrItemNotFound
}

// sameDay compares two timestamps at calendar-day granularity.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ClaimDailyBonus credits the fixed daily bonus once per calendar day.
// Returns the credited amount.
func (l *Ledger) ClaimDailyBonus(user *model.User, now time.Time) (int, error) {
	if user.LastBonusDate != nil && sameDay(*user.LastBonusDate, now) {
		return 0, ErrBonusAlreadyClaimed
	}
	user.Balance += l.dailyBonus
	user.LastBonusDate = &now
	return l.dailyBonus, nil
}

// ActivatePromo matches code case-insensitively against the promo table
// and credits its amount. Redemption is not tracked per user, so a valid
// code succeeds every call.
func (l *Ledger) ActivatePromo(user *model.User, code string) (int, error) {
	amount, ok := l.promoCodes[strings.ToUpper(code)]
	if !ok {
		return 0, ErrInvalidPromoCode
	}
	user.Balance += amount
	return amount, nil
}

func distinctItemCount(user *model.User) int {
	seen := make(map[string]struct{}, len(user.Inventory))
	for _, item := range user.Inventory {
		seen[item.Name] = struct{}{}
	}
	return len(seen)
}

func (l *Ledger) achievementMet(user *model.User, a model.Achievement) bool {
	switch a.Kind {
	case model.AchievementCasesOpened:
		return user.CasesOpened >= a.Threshold
	case model.AchievementBalance:
		return user.Balance >= a.Threshold
	case model.AchievementDistinctItems:
		return distinctItemCount(user) >= a.Threshold
	}
	return false
}

// EvaluateAchievements walks the catalog, unlocks every rule whose
// condition holds and is not yet recorded, credits each reward, and
// returns the newly unlocked achievements.
func (l *Ledger) EvaluateAchievements(user *model.User) []model.Achievement {
	var unlocked []model.Achievement
	for _, a := range l.achievements {
		if user.HasAchievement(a.ID) {
			continue
		}
		if !l.achievementMet(user, a) {
			continue
		}
		user.Achievements = append(user.Achievements, a.ID)
		user.Balance += a.Reward
		unlocked = append(unlocked, a)
	}
	return unlocked
}

// AdminSetBalance overwrites the target balance unconditionally. There is
// no floor check; a negative balance is allowed here. Non-admin actors
// fail with ErrPermissionDenied.
func (l *Ledger) AdminSetBalance(actorIsAdmin bool, target *model.User, newBalance int) error {
	if !actorIsAdmin {
		return ErrPermissionDenied
	}
	target.Balance = newBalance
	return nil
}
