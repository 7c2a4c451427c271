package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"giftcases-rest-api/internal/cache"
	"giftcases-rest-api/internal/model"
	"giftcases-rest-api/internal/repository"
)

const leadersCacheKey = "leaderboard:top"

// GameParams holds gameplay tunables for the game service.
type GameParams struct {
	StartingBalance int
	AdminUsername   string
	LeaderboardSize int
	CacheTTL        time.Duration
}

// GameService orchestrates gameplay operations: it loads the user record,
// applies ledger/resolver mutations in memory, persists the record and
// re-projects the leaderboard. A single mutex serializes every
// read-modify-write cycle so concurrent requests cannot lose updates.
type GameService struct {
	store    repository.Store
	cache    cache.Cache // leaderboard read cache, may be nil
	ledger   *Ledger
	resolver *Resolver
	hasher   PasswordHasher
	params   GameParams

	mu  sync.Mutex
	now func() time.Time
}

// NewGameService creates the game orchestrator.
func NewGameService(
	store repository.Store,
	leaderCache cache.Cache,
	ledger *Ledger,
	resolver *Resolver,
	hasher PasswordHasher,
	params GameParams,
) *GameService {
	return &GameService{
		store:    store,
		cache:    leaderCache,
		ledger:   ledger,
		resolver: resolver,
		hasher:   hasher,
		params:   params,
		now:      time.Now,
	}
}

// Catalog returns the full case catalog.
func (s *GameService) Catalog() map[string]model.Case {
	return s.resolver.Catalog()
}

// updateLeaders re-projects the user onto the board and persists it.
// Caller must hold s.mu.
func (s *GameService) updateLeaders(ctx context.Context, user *model.User) error {
	leaders, err := s.store.LoadLeaders(ctx)
	if err != nil {
		return err
	}
	leaders = UpsertLeader(leaders, ProjectLeader(user))
	if err := s.store.SaveLeaders(ctx, leaders); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, leadersCacheKey)
	}
	return nil
}

// mutateUser runs a ledger mutation against the loaded user record under
// the serializing guard, then persists the record and the re-projected
// leaderboard. The mutation fn must not touch the store.
func (s *GameService) mutateUser(ctx context.Context, userID string, fn func(*model.User) error) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := fn(user); err != nil {
		return nil, err
	}

	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist user: %w", err)
	}
	if err := s.updateLeaders(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update leaderboard: %w", err)
	}
	return user, nil
}

// OpenCaseResult is the outcome of a successful case opening.
type OpenCaseResult struct {
	Reward      model.Item `json:"reward"`
	NewBalance  int        `json:"newBalance"`
	CasesOpened int        `json:"casesOpened"`
}

// OpenCase opens the identified case for the user.
func (s *GameService) OpenCase(ctx context.Context, userID, caseID string) (*OpenCaseResult, error) {
	var reward model.Item
	user, err := s.mutateUser(ctx, userID, func(u *model.User) error {
		var err error
		reward, err = s.resolver.OpenCase(u, caseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &OpenCaseResult{
		Reward:      reward,
		NewBalance:  user.Balance,
		CasesOpened: user.CasesOpened,
	}, nil
}

// SellItemResult is the outcome of a successful item sale.
type SellItemResult struct {
	NewBalance int        `json:"newBalance"`
	SoldItem   model.Item `json:"soldItem"`
}

// SellItem removes the item from the user's inventory and credits its value.
func (s *GameService) SellItem(ctx context.Context, userID, itemID string) (*SellItemResult, error) {
	var sold model.Item
	user, err := s.mutateUser(ctx, userID, func(u *model.User) error {
		var err error
		sold, err = s.ledger.SellItem(u, itemID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &SellItemResult{NewBalance: user.Balance, SoldItem: sold}, nil
}

// ChangeAvatar updates the avatar reference. The leaderboard does not
// carry avatars, so the board is left alone.
func (s *GameService) ChangeAvatar(ctx context.Context, userID, avatarURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	user.Avatar = avatarURL
	return s.store.SaveUser(ctx, user)
}

// ActivatePromo redeems a promo code and returns the credited amount and
// the resulting balance.
func (s *GameService) ActivatePromo(ctx context.Context, userID, code string) (amount, newBalance int, err error) {
	user, err := s.mutateUser(ctx, userID, func(u *model.User) error {
		var err error
		amount, err = s.ledger.ActivatePromo(u, code)
		return err
	})
	if err != nil {
		return 0, 0, err
	}
	return amount, user.Balance, nil
}

// ClaimDailyBonus credits the daily bonus, once per calendar day.
func (s *GameService) ClaimDailyBonus(ctx context.Context, userID string) (amount, newBalance int, err error) {
	user, err := s.mutateUser(ctx, userID, func(u *model.User) error {
		var err error
		amount, err = s.ledger.ClaimDailyBonus(u, s.now())
		return err
	})
	if err != nil {
		return 0, 0, err
	}
	return amount, user.Balance, nil
}

// AchievementStatus is one catalog entry with the user's unlock state.
type AchievementStatus struct {
	model.Achievement
	Unlocked bool `json:"unlocked"`
}

// AchievementsResult is the full catalog view plus anything unlocked by
// this evaluation pass.
type AchievementsResult struct {
	Achievements  []AchievementStatus `json:"achievements"`
	NewlyUnlocked []model.Achievement `json:"newlyUnlocked"`
}

// Achievements evaluates the rules against the user, persists any newly
// unlocked rewards and returns the catalog with unlock flags.
func (s *GameService) Achievements(ctx context.Context, userID string) (*AchievementsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	unlocked := s.ledger.EvaluateAchievements(user)
	if len(unlocked) > 0 {
		if err := s.store.SaveUser(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to persist user: %w", err)
		}
		if err := s.updateLeaders(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update leaderboard: %w", err)
		}
	}

	catalog := s.ledger.Achievements()
	statuses := make([]AchievementStatus, 0, len(catalog))
	for _, a := range catalog {
		statuses = append(statuses, AchievementStatus{
			Achievement: a,
			Unlocked:    user.HasAchievement(a.ID),
		})
	}

	if unlocked == nil {
		unlocked = []model.Achievement{}
	}
	return &AchievementsResult{Achievements: statuses, NewlyUnlocked: unlocked}, nil
}

// AdminSetBalance overwrites the target's balance. Only admins may call
// it; the privilege comes from the actor's token, not the live record.
func (s *GameService) AdminSetBalance(ctx context.Context, actor *model.Identity, targetUsername string, newBalance int) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !actor.IsAdmin {
		return nil, ErrPermissionDenied
	}

	target, err := s.store.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	if err := s.ledger.AdminSetBalance(actor.IsAdmin, target, newBalance); err != nil {
		return nil, err
	}

	if err := s.store.SaveUser(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to persist user: %w", err)
	}
	if err := s.updateLeaders(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to update leaderboard: %w", err)
	}
	return target, nil
}

// Leaders returns the top of the leaderboard, serving a cached snapshot
// when one is fresh.
func (s *GameService) Leaders(ctx context.Context) ([]model.LeaderboardEntry, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, leadersCacheKey); err == nil {
			var leaders []model.LeaderboardEntry
			if err := json.Unmarshal(data, &leaders); err == nil {
				return leaders, nil
			}
		}
	}

	leaders, err := s.store.LoadLeaders(ctx)
	if err != nil {
		return nil, err
	}
	top := TopLeaders(leaders, s.params.LeaderboardSize)

	if s.cache != nil {
		if data, err := json.Marshal(top); err == nil {
			_ = s.cache.Set(ctx, leadersCacheKey, data, s.params.CacheTTL)
		}
	}
	return top, nil
}
