package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"giftcases-rest-api/internal/cache"
	"giftcases-rest-api/internal/model"
	"giftcases-rest-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHasher keeps game tests fast; bcrypt itself is covered in hasher_test.go.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("hash mismatch")
	}
	return nil
}

func newTestGame() (*GameService, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	ledger := NewLedger(25)
	resolver := NewResolver(DefaultCatalog(), ledger)
	gs := NewGameService(store, nil, ledger, resolver, fakeHasher{}, GameParams{
		StartingBalance: 100,
		AdminUsername:   "@BayRex",
		LeaderboardSize: 50,
		CacheTTL:        30 * time.Second,
	})
	return gs, store
}

func mustRegister(t *testing.T, gs *GameService, email, username string) *model.User {
	t.Helper()
	user, err := gs.Register(context.Background(), RegisterInput{
		Email:        email,
		Username:     username,
		Password:     "secret-pass",
		CaptchaInput: "AB12CD",
		Captcha:      "AB12CD",
	})
	require.NoError(t, err)
	return user
}

func TestGameService_Register(t *testing.T) {
	gs, store := newTestGame()
	ctx := context.Background()

	user := mustRegister(t, gs, "a@example.com", "alice")

	assert.Equal(t, 100, user.Balance)
	assert.Empty(t, user.Inventory)
	assert.Equal(t, 0, user.CasesOpened)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "secret-pass", user.PasswordHash)
	assert.False(t, user.RegistrationDate.IsZero())

	// registration lands on the leaderboard
	leaders, err := store.LoadLeaders(ctx)
	require.NoError(t, err)
	require.Len(t, leaders, 1)
	assert.Equal(t, user.ID, leaders[0].ID)
	assert.Equal(t, model.NoItemsSentinel, leaders[0].BestItem)
}

func TestGameService_Register_AdminFlag(t *testing.T) {
	gs, _ := newTestGame()

	admin := mustRegister(t, gs, "boss@example.com", "@BayRex")
	assert.True(t, admin.IsAdmin)

	normal := mustRegister(t, gs, "b@example.com", "bob")
	assert.False(t, normal.IsAdmin)
}

func TestGameService_Register_Validation(t *testing.T) {
	gs, _ := newTestGame()
	ctx := context.Background()

	_, err := gs.Register(ctx, RegisterInput{
		Email: "a@example.com", Username: "alice", Password: "pw",
		CaptchaInput: "WRONG1", Captcha: "AB12CD",
	})
	assert.ErrorIs(t, err, ErrCaptchaMismatch)

	_, err = gs.Register(ctx, RegisterInput{
		Email: "", Username: "alice", Password: "pw",
		CaptchaInput: "AB12CD", Captcha: "AB12CD",
	})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestGameService_Register_Duplicates(t *testing.T) {
	gs, _ := newTestGame()
	ctx := context.Background()

	mustRegister(t, gs, "a@example.com", "alice")

	_, err := gs.Register(ctx, RegisterInput{
		Email: "a@example.com", Username: "other", Password: "different",
		CaptchaInput: "AB12CD", Captcha: "AB12CD",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = gs.Register(ctx, RegisterInput{
		Email: "fresh@example.com", Username: "alice", Password: "different",
		CaptchaInput: "AB12CD", Captcha: "AB12CD",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestGameService_Login(t *testing.T) {
	gs, _ := newTestGame()
	ctx := context.Background()

	registered := mustRegister(t, gs, "a@example.com", "alice")

	user, err := gs.Login(ctx, "a@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = gs.Login(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = gs.Login(ctx, "nobody@example.com", "secret-pass")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGameService_OpenCase_Persists(t *testing.T) {
	gs, store := newTestGame()
	ctx := context.Background()

	user := mustRegister(t, gs, "a@example.com", "alice")

	result, err := gs.OpenCase(ctx, user.ID, "daily")
	require.NoError(t, err)
	assert.Equal(t, 100, result.NewBalance, "the daily case is free")
	assert.Equal(t, 1, result.CasesOpened)
	assert.Contains(t, []int{10, 15, 20}, result.Reward.Value)

	stored, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, stored.Inventory, 1)
	assert.Equal(t, result.Reward.ID, stored.Inventory[0].ID)
	assert.Equal(t, 1, stored.CasesOpened)

	leaders, err := store.LoadLeaders(ctx)
	require.NoError(t, err)
	require.Len(t, leaders, 1)
	assert.Equal(t, result.Reward.Name, leaders[0].BestItem)
}

func TestGameService_OpenCase_InsufficientBalance(t *testing.T) {
	gs, store := newTestGame()
	ctx := context.Background()

	user := mustRegister(t, gs, "a@example.com", "alice")

	_, err := gs.OpenCase(ctx, user.ID, "bayrex") // costs 150, balance 100
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	stored, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stored.Balance)
	assert.Empty(t, stored.Inventory)
	assert.Equal(t, 0, stored.CasesOpened)
}

func TestGameService_OpenCase_UnknownUser(t *testing.T) {
	gs, _ := newTestGame()

	_, err := gs.OpenCase(context.Background(), "ghost", "daily")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGameService_SellItem(t *testing.T) {
	gs, store := newTestGame()
	ctx := context.Background()

	user := mustRegister(t, gs, "a@example.com", "alice")
	opened, err := gs.OpenCase(ctx, user.ID, "daily")
	require.NoError(t, err)

	result, err := gs.SellItem(ctx, user.ID, opened.Reward.ID)
	require.NoError(t, err)
	assert.Equal(t, opened.Reward.ID, result.SoldItem.ID)
	assert.Equal(t, 100+opened.Reward.Value, result.NewBalance)

	stored, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Inventory)

	_, err = gs.SellItem(ctx, user.ID, opened.Reward.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestGameService_ChangeAvatar(t *testing.T) {
	gs, store := newTestGame()
	ctx := context.Background()

	user := mustRegister(t, gs, "a@example.com", "alice")

	err := gs.ChangeAvatar(ctx, user.ID, "https://example.com/avatar.png")
	require.NoError(t, err)

	stored, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/avatar.png", stored.Avatar)
}

func TestGameService_ActivatePromo(t *testing.T) {
	gs, _ := newTestGame()
	ctx := context.Background()

	user := mustRegister(t, gs, "a@example.com", "alice")

	amount, newBalance, err := gs.ActivatePromo(ctx, user.ID, "telegram2023")
	require.NoError(t, err)
	assert.Equal(t, 50, amount)
	assert.Equal(t, 150, newBalance)

	_, _, err = gs.ActivatePromo(ctx, user.ID, "NOPE")
	assert.ErrorIs(t, err, ErrInvalidPromoCode)
}

func TestGameService_ClaimDailyBonus(t *testing.T) {
	gs, _ := newTestGame()
	ctx := context.Background()

	now := time.Date(2023, 6, 15, 9, 0, 0, 0, time.UTC)
	gs.now = func() time.Time { return now }

	user := mustRegister(t, gs, "a@example.com", "alice")

	amount, newBalance, err := gs.ClaimDailyBonus(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, amount)
	assert.Equal(t, 125, newBalance)

	now = now.Add(2 * time.Hour)
	_, _, err = gs.ClaimDailyBonus(ctx, user.ID)
	assert.ErrorIs(t, err, ErrBonusAlreadyClaimed)

	now = now.AddDate(0, 0, 1)
	_, newBalance, err = gs.ClaimDailyBonus(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 150, newBalance)
}

func TestGameService_Achievements(t *testing.T) {
	gs, _ := newTestGame()
	ctx := context.Background()

	user := mustRegister(t, gs, "a@example.com", "alice")
	_, err := gs.OpenCase(ctx, user.ID, "daily")
	require.NoError(t, err)

	result, err := gs.Achievements(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, result.NewlyUnlocked, 1)
	assert.Equal(t, "first_case", result.NewlyUnlocked[0].ID)

	var firstCase *AchievementStatus
	for i := range result.Achievements {
		if result.Achievements[i].ID == "first_case" {
			firstCase = &result.Achievements[i]
		}
	}
	require.NotNil(t, firstCase)
	assert.True(t, firstCase.Unlocked)

	// a second evaluation unlocks nothing new
	result, err = gs.Achievements(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, result.NewlyUnlocked)
}

func TestGameService_AdminSetBalance(t *testing.T) {
	gs, store := newTestGame()
	ctx := context.Background()

	target := mustRegister(t, gs, "a@example.com", "alice")

	_, err := gs.AdminSetBalance(ctx, &model.Identity{UserID: "x", Username: "bob", IsAdmin: false}, "alice", 9999)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	stored, err := store.GetUserByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stored.Balance, "denied override leaves the target unchanged")

	updated, err := gs.AdminSetBalance(ctx, &model.Identity{UserID: "y", Username: "@BayRex", IsAdmin: true}, "alice", -5)
	require.NoError(t, err)
	assert.Equal(t, -5, updated.Balance)

	leaders, err := store.LoadLeaders(ctx)
	require.NoError(t, err)
	require.Len(t, leaders, 1)
	assert.Equal(t, -5, leaders[0].Balance)
}

func TestGameService_AdminSetBalance_TargetMissing(t *testing.T) {
	gs, _ := newTestGame()

	_, err := gs.AdminSetBalance(context.Background(), &model.Identity{IsAdmin: true}, "nobody", 10)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGameService_Leaders_SortedAndCapped(t *testing.T) {
	gs, _ := newTestGame()
	ctx := context.Background()

	admin := mustRegister(t, gs, "boss@example.com", "@BayRex")
	actor := &model.Identity{UserID: admin.ID, Username: admin.Username, IsAdmin: true}

	for i := 0; i < 55; i++ {
		username := fmt.Sprintf("player%02d", i)
		mustRegister(t, gs, fmt.Sprintf("p%02d@example.com", i), username)
		_, err := gs.AdminSetBalance(ctx, actor, username, i*10)
		require.NoError(t, err)
	}

	leaders, err := gs.Leaders(ctx)
	require.NoError(t, err)
	assert.Len(t, leaders, 50)
	for i := 1; i < len(leaders); i++ {
		assert.GreaterOrEqual(t, leaders[i-1].Balance, leaders[i].Balance)
	}
}

func TestGameService_Leaders_CacheInvalidation(t *testing.T) {
	store := repository.NewMemoryStore()
	ledger := NewLedger(25)
	resolver := NewResolver(DefaultCatalog(), ledger)
	memCache := cache.NewMemoryCache()
	defer memCache.Stop()
	gs := NewGameService(store, memCache, ledger, resolver, fakeHasher{}, GameParams{
		StartingBalance: 100,
		AdminUsername:   "@BayRex",
		LeaderboardSize: 50,
		CacheTTL:        time.Minute,
	})
	ctx := context.Background()

	user := mustRegister(t, gs, "a@example.com", "alice")

	leaders, err := gs.Leaders(ctx)
	require.NoError(t, err)
	require.Len(t, leaders, 1)
	assert.Equal(t, 100, leaders[0].Balance)

	// a mutation must bust the cached snapshot
	_, _, err = gs.ActivatePromo(ctx, user.ID, "TELEGRAM2023")
	require.NoError(t, err)

	leaders, err = gs.Leaders(ctx)
	require.NoError(t, err)
	require.Len(t, leaders, 1)
	assert.Equal(t, 150, leaders[0].Balance)
}
