package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"giftcases-rest-api/internal/model"
	"giftcases-rest-api/pkg/uid"
)

var (
	// ErrCaptchaMismatch means the echoed captcha does not match the input.
	ErrCaptchaMismatch = errors.New("captcha mismatch")
	// ErrMissingFields means a required registration field is empty.
	ErrMissingFields = errors.New("all fields are required")
	// ErrEmailTaken means the email is already registered.
	ErrEmailTaken = errors.New("email already in use")
	// ErrUsernameTaken means the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUserNotFound means no user record matches the identifier.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword means the password does not match the stored hash.
	ErrWrongPassword = errors.New("wrong password")
)

// RegisterInput carries the registration form fields. Captcha is the
// challenge the client received, CaptchaInput what the user typed.
type RegisterInput struct {
	Email        string
	Username     string
	Password     string
	CaptchaInput string
	Captcha      string
}

// Register creates a user record. New accounts start with the configured
// balance, an empty inventory and zero opened cases; the admin flag is
// fixed here from the username match and never recomputed afterwards.
func (s *GameService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if in.CaptchaInput != in.Captcha {
		return nil, ErrCaptchaMismatch
	}
	if in.Email == "" || in.Username == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, err := s.store.GetUserByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}
	if existing, err := s.store.GetUserByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:               uid.New(),
		Email:            in.Email,
		Username:         in.Username,
		PasswordHash:     hash,
		Balance:          s.params.StartingBalance,
		Inventory:        []model.Item{},
		CasesOpened:      0,
		RegistrationDate: time.Now(),
		IsAdmin:          in.Username == s.params.AdminUsername,
	}

	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist user: %w", err)
	}
	if err := s.updateLeaders(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update leaderboard: %w", err)
	}
	return user, nil
}

// Login verifies email and password and returns the user record.
func (s *GameService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrWrongPassword
	}
	return user, nil
}

// GetUser loads a user record by id.
func (s *GameService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
